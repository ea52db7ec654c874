package bot

import (
	"log/slog"
	"strings"

	"github.com/bwmarrin/discordgo"
)

// Handler runs one admin command. args holds the tokens after the command word.
type Handler func(s *discordgo.Session, m *discordgo.MessageCreate, args []string)

// Command maps one literal command word to its handler.
type Command struct {
	Name      string // first message token, e.g. "!sethoneypot"
	Usage     string
	MinArgs   int
	AdminOnly bool
	Handler   Handler
}

// Router dispatches prefix commands by exact first-token match.
type Router struct {
	commands map[string]*Command
	isAdmin  func(s *discordgo.Session, m *discordgo.MessageCreate) bool
}

// NewRouter builds a router over the given command set.
func NewRouter(isAdmin func(s *discordgo.Session, m *discordgo.MessageCreate) bool, commands ...*Command) *Router {
	r := &Router{
		commands: make(map[string]*Command, len(commands)),
		isAdmin:  isAdmin,
	}
	for _, cmd := range commands {
		r.commands[cmd.Name] = cmd
	}
	return r
}

// Match resolves a message to its command and arguments. Unrecognized "!"
// text is not a command, just chat.
func (r *Router) Match(content string) (*Command, []string) {
	fields := strings.Fields(content)
	if len(fields) == 0 {
		return nil, nil
	}
	cmd, ok := r.commands[fields[0]]
	if !ok {
		return nil, nil
	}
	return cmd, fields[1:]
}

// commandArgument returns everything after the command word, with interior
// whitespace intact. Commands that take a free-form argument (channel names)
// use this instead of the tokenized args.
func commandArgument(content string) string {
	rest := strings.TrimSpace(content)
	if i := strings.IndexAny(rest, " \t\n"); i >= 0 {
		return strings.TrimSpace(rest[i:])
	}
	return ""
}

// Dispatch runs the command named by the message, gating on privilege and
// argument arity. A panicking handler is contained here so one bad command
// never takes down the event loop.
func (r *Router) Dispatch(s *discordgo.Session, m *discordgo.MessageCreate) {
	cmd, args := r.Match(m.Content)
	if cmd == nil {
		return
	}

	defer func() {
		if rec := recover(); rec != nil {
			slog.Error("Command handler panicked", "command", cmd.Name, "panic", rec)
			s.ChannelMessageSend(m.ChannelID, "Something went wrong running that command.")
		}
	}()

	if cmd.AdminOnly && !r.isAdmin(s, m) {
		s.ChannelMessageSend(m.ChannelID, "You need administrator permissions.")
		return
	}

	if len(args) < cmd.MinArgs {
		s.ChannelMessageSend(m.ChannelID, "Usage: `"+cmd.Usage+"`")
		return
	}

	cmd.Handler(s, m, args)
}
