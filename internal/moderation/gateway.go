package moderation

import (
	"context"
	"time"

	"github.com/ammarFaris843/HoneyPot-bot/internal/detect"
	"github.com/ammarFaris843/HoneyPot-bot/internal/storage"
)

// MessageEvent carries the fields of an inbound message the pipeline needs.
// The author's account metadata is snapshotted at delivery time.
type MessageEvent struct {
	GuildID   string
	ChannelID string
	MessageID string
	Content   string
	Author    detect.AccountSnapshot
}

// Gateway is the narrow slice of platform capability the pipeline depends on.
// FetchMembership returns nil (no error) when the author has no resolvable
// membership, e.g. the account already left the guild.
type Gateway interface {
	FetchMembership(ctx context.Context, guildID, userID string) (*detect.MembershipSnapshot, error)
	DeleteMessage(ctx context.Context, channelID, messageID string) error
	BanMember(ctx context.Context, guildID, userID, reason string) error
}

// DetectionReport describes a honeypot trigger for the audit log.
type DetectionReport struct {
	GuildID      string
	LogChannelID string
	Account      detect.AccountSnapshot
	Message      string // already truncated for display
	Indicators   []string
	When         time.Time
}

// OutcomeReport describes the result of the ban attempt for the audit log.
type OutcomeReport struct {
	GuildID      string
	LogChannelID string
	Account      detect.AccountSnapshot
	Banned       bool
	Indicators   []string
	When         time.Time
}

// Reporter renders pipeline results as structured audit log entries.
// Implementations with no configured log channel should silently drop reports.
type Reporter interface {
	ReportDetection(ctx context.Context, report DetectionReport) error
	ReportOutcome(ctx context.Context, report OutcomeReport) error
}

// ConfigSource supplies per-guild configuration. Satisfied by *storage.Repository.
type ConfigSource interface {
	GetGuildConfig(guildID string) (*storage.GuildConfig, error)
}
