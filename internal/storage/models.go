package storage

import "time"

// DefaultBanReason is used when a guild has not customized its ban-reason template.
const DefaultBanReason = "Automatic ban: Suspected compromised account/bot"

// GuildConfig stores per-server honeypot configuration. Channel IDs are empty
// strings until an admin sets them.
type GuildConfig struct {
	GuildID           string
	HoneypotChannelID string
	LogChannelID      string
	BanReason         string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// Configured reports whether the guild is fully set up: the honeypot only
// operates once both the trap channel and the log channel are chosen.
func (c *GuildConfig) Configured() bool {
	return c.HoneypotChannelID != "" && c.LogChannelID != ""
}
