// Package detect inspects account and membership metadata for signals that an
// account posting in a honeypot channel is compromised or automated. All
// functions are pure: the caller supplies the current time, and identical
// inputs always produce identical output.
package detect

import "time"

// Indicators runs every analyzer over one account+membership snapshot and
// returns their findings concatenated in a fixed order: account age, join
// recency, avatar, username, roles. The order only affects display; any
// non-empty result is treated the same by the moderation pipeline.
func Indicators(account AccountSnapshot, membership MembershipSnapshot, now time.Time) []string {
	var indicators []string
	indicators = append(indicators, AnalyzeAccountAge(account, now)...)
	indicators = append(indicators, AnalyzeJoinRecency(membership, now)...)
	indicators = append(indicators, AnalyzeAvatar(account)...)
	indicators = append(indicators, AnalyzeUsername(account.Username)...)
	indicators = append(indicators, AnalyzeRoles(membership)...)
	return indicators
}
