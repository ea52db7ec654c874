package detect

import "time"

// AccountSnapshot is a point-in-time copy of a user's account metadata,
// captured once when the honeypot triggers so the analyzers see a stable view.
type AccountSnapshot struct {
	Username        string
	ID              string
	CreatedAt       time.Time
	HasCustomAvatar bool
}

// MembershipSnapshot is a point-in-time copy of a user's guild membership.
// JoinedAt may be nil when the platform has no join data for the member.
type MembershipSnapshot struct {
	JoinedAt *time.Time
	RoleIDs  []string
}
