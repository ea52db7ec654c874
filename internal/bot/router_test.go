package bot

import (
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
)

func testRouter() *Router {
	noop := func(s *discordgo.Session, m *discordgo.MessageCreate, args []string) {}
	isAdmin := func(s *discordgo.Session, m *discordgo.MessageCreate) bool { return false }
	return NewRouter(isAdmin,
		&Command{Name: "!sethoneypot", Usage: "!sethoneypot <channel_id>", MinArgs: 1, AdminOnly: true, Handler: noop},
		&Command{Name: "!createhoneypot", Usage: "!createhoneypot [name]", AdminOnly: true, Handler: noop},
		&Command{Name: "!honeypothelp", Usage: "!honeypothelp", Handler: noop},
	)
}

func TestRouterMatch(t *testing.T) {
	assert := assert.New(t)
	router := testRouter()

	cmd, args := router.Match("!sethoneypot 12345")
	assert.NotNil(cmd)
	assert.Equal("!sethoneypot", cmd.Name)
	assert.Equal([]string{"12345"}, args)

	cmd, args = router.Match("!createhoneypot my trap channel")
	assert.NotNil(cmd)
	assert.Equal([]string{"my", "trap", "channel"}, args)
}

func TestCommandArgument(t *testing.T) {
	assert := assert.New(t)

	fixtures := []struct {
		content string
		out     string
	}{
		{content: "!createhoneypot", out: ""},
		{content: "!createhoneypot trap", out: "trap"},
		// interior whitespace is part of the argument, not token separators
		{content: "!createhoneypot my  trap   channel", out: "my  trap   channel"},
		{content: "  !createlog   audit logs  ", out: "audit logs"},
	}

	for _, fix := range fixtures {
		assert.Equal(fix.out, commandArgument(fix.content), "content %q", fix.content)
	}
}

func TestRouterMatchIsExact(t *testing.T) {
	assert := assert.New(t)
	router := testRouter()

	// only a full first-token match counts; "!sethoneypotx" is not a command
	cmd, _ := router.Match("!sethoneypotx 12345")
	assert.Nil(cmd)

	cmd, _ = router.Match("!honeypot")
	assert.Nil(cmd)

	cmd, _ = router.Match("just chatting about !sethoneypot")
	assert.Nil(cmd)

	cmd, _ = router.Match("")
	assert.Nil(cmd)
}
