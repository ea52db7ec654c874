package detect

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

// suspiciousPatterns is scanned in order; the username analyzer reports only
// the first match. The order is part of the detection contract.
var suspiciousPatterns = []string{
	"⛧", "卐", "••", "||", "[]", "()", "⚡", "♛", "✪", "http", ".com", ".gg",
	"discord.gg", "000", "111", "222", "333", "444", "555", "xxx", "nsfw",
	"click", "free",
}

const maxUsernameLength = 25

// AnalyzeUsername checks the username against known spam/compromise patterns.
// It reports at most one pattern match (the first in scan order), plus a
// separate indicator for unusually long names.
func AnalyzeUsername(username string) []string {
	var indicators []string
	lower := strings.ToLower(username)
	for _, pattern := range suspiciousPatterns {
		if strings.Contains(lower, pattern) {
			indicators = append(indicators, fmt.Sprintf("Suspicious username: '%s'", pattern))
			break
		}
	}
	// counted in characters, not bytes: symbol-heavy names are common here
	if utf8.RuneCountInString(username) > maxUsernameLength {
		indicators = append(indicators, "Very long username")
	}
	return indicators
}

// AnalyzeRoles flags members with no roles beyond the implicit @everyone role.
func AnalyzeRoles(membership MembershipSnapshot) []string {
	if len(membership.RoleIDs) <= 1 {
		return []string{"No custom roles"}
	}
	return nil
}

// AnalyzeAccountAge buckets the account's age at time now. The buckets are
// mutually exclusive: an account under a day old is not also reported as
// under a week old.
func AnalyzeAccountAge(account AccountSnapshot, now time.Time) []string {
	age := now.Sub(account.CreatedAt)
	switch {
	case age < 24*time.Hour:
		return []string{"Account <1 day old"}
	case age < 7*24*time.Hour:
		return []string{"Account <7 days old"}
	}
	return nil
}

// AnalyzeJoinRecency buckets how recently the member joined the guild.
// Membership records without a join timestamp produce no indicator.
func AnalyzeJoinRecency(membership MembershipSnapshot, now time.Time) []string {
	if membership.JoinedAt == nil {
		return nil
	}
	joined := now.Sub(*membership.JoinedAt)
	switch {
	case joined < time.Hour:
		return []string{"Joined <1 hour ago"}
	case joined < 24*time.Hour:
		return []string{"Joined <24 hours ago"}
	}
	return nil
}

// AnalyzeAvatar flags accounts still using the platform default avatar.
func AnalyzeAvatar(account AccountSnapshot) []string {
	if !account.HasCustomAvatar {
		return []string{"Default avatar"}
	}
	return nil
}
