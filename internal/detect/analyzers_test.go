package detect

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAnalyzeUsername(t *testing.T) {
	assert := assert.New(t)

	fixtures := []struct {
		name string
		out  []string
	}{
		{
			name: "normaluser",
			out:  nil,
		},
		{
			name: "free-nitro",
			out:  []string{"Suspicious username: 'free'"},
		},
		{
			name: "CLICKHERE",
			out:  []string{"Suspicious username: 'click'"},
		},
		{
			// multiple patterns present: only the first in scan order is reported
			name: "xxx-free-click",
			out:  []string{"Suspicious username: 'xxx'"},
		},
		{
			// 'http' precedes '.com' in the scan order
			name: "http-site.com",
			out:  []string{"Suspicious username: 'http'"},
		},
		{
			name: "someone111",
			out:  []string{"Suspicious username: '111'"},
		},
		{
			name: "an-extremely-long-username-here",
			out:  []string{"Very long username"},
		},
		{
			// 'click' precedes 'free' in the scan order
			name: "free-nitro-giveaway-click-here",
			out:  []string{"Suspicious username: 'click'", "Very long username"},
		},
	}

	for _, fix := range fixtures {
		assert.Equal(fix.out, AnalyzeUsername(fix.name), "username %q", fix.name)
	}
}

func TestAnalyzeUsernameLengthCountsCharacters(t *testing.T) {
	assert := assert.New(t)

	// nine characters of a 3-byte symbol: well under the limit even though
	// the byte count is not
	assert.Equal([]string{"Suspicious username: '♛'"}, AnalyzeUsername(strings.Repeat("♛", 9)))

	// 26 characters is over the limit regardless of encoding width
	assert.Equal([]string{"Suspicious username: '♛'", "Very long username"},
		AnalyzeUsername(strings.Repeat("♛", 26)))
	assert.Equal([]string{"Very long username"}, AnalyzeUsername(strings.Repeat("é", 26)))
	assert.Empty(AnalyzeUsername(strings.Repeat("é", 25)))
}

func TestAnalyzeUsernameCaseInsensitive(t *testing.T) {
	assert := assert.New(t)

	assert.Equal([]string{"Suspicious username: 'nsfw'"}, AnalyzeUsername("NSFW"))
	assert.Equal([]string{"Suspicious username: 'free'"}, AnalyzeUsername("FrEe-Stuff"))
}

func TestAnalyzeRoles(t *testing.T) {
	assert := assert.New(t)

	assert.Equal([]string{"No custom roles"}, AnalyzeRoles(MembershipSnapshot{}))
	assert.Equal([]string{"No custom roles"}, AnalyzeRoles(MembershipSnapshot{RoleIDs: []string{"everyone"}}))
	assert.Empty(AnalyzeRoles(MembershipSnapshot{RoleIDs: []string{"everyone", "member"}}))
}

func TestAnalyzeAccountAge(t *testing.T) {
	assert := assert.New(t)
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	fixtures := []struct {
		age time.Duration
		out []string
	}{
		{age: 2 * time.Hour, out: []string{"Account <1 day old"}},
		{age: 23 * time.Hour, out: []string{"Account <1 day old"}},
		{age: 3 * 24 * time.Hour, out: []string{"Account <7 days old"}},
		{age: 30 * 24 * time.Hour, out: nil},
	}

	for _, fix := range fixtures {
		account := AccountSnapshot{CreatedAt: now.Add(-fix.age)}
		assert.Equal(fix.out, AnalyzeAccountAge(account, now), "age %s", fix.age)
	}
}

func TestAnalyzeAccountAgeBucketsAreExclusive(t *testing.T) {
	assert := assert.New(t)
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	// 2 hours old is inside both thresholds; only the tighter bucket fires
	account := AccountSnapshot{CreatedAt: now.Add(-2 * time.Hour)}
	out := AnalyzeAccountAge(account, now)
	assert.Contains(out, "Account <1 day old")
	assert.NotContains(out, "Account <7 days old")
}

func TestAnalyzeJoinRecency(t *testing.T) {
	assert := assert.New(t)
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	fixtures := []struct {
		since time.Duration
		out   []string
	}{
		{since: 5 * time.Minute, out: []string{"Joined <1 hour ago"}},
		{since: 5 * time.Hour, out: []string{"Joined <24 hours ago"}},
		{since: 48 * time.Hour, out: nil},
	}

	for _, fix := range fixtures {
		joined := now.Add(-fix.since)
		membership := MembershipSnapshot{JoinedAt: &joined}
		assert.Equal(fix.out, AnalyzeJoinRecency(membership, now), "joined %s ago", fix.since)
	}
}

func TestAnalyzeJoinRecencyMissingTimestamp(t *testing.T) {
	assert := assert.New(t)
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	assert.Empty(AnalyzeJoinRecency(MembershipSnapshot{}, now))
}

func TestAnalyzeAvatar(t *testing.T) {
	assert := assert.New(t)

	assert.Equal([]string{"Default avatar"}, AnalyzeAvatar(AccountSnapshot{}))
	assert.Empty(AnalyzeAvatar(AccountSnapshot{HasCustomAvatar: true}))
}
