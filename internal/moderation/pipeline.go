// Package moderation drives the honeypot response: when a message lands in a
// guild's trap channel, the pipeline snapshots the author, runs detection,
// deletes the message, bans the account, and reports both events to the audit
// log. Every action is attempted exactly once; a failing step is logged and
// never blocks the steps after it.
package moderation

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/ammarFaris843/HoneyPot-bot/internal/detect"
)

// maxLoggedMessageLength bounds how much of the triggering message body is
// copied into the audit log.
const maxLoggedMessageLength = 500

// Outcome records what one pipeline run did. It lives only long enough to be
// rendered into log entries.
type Outcome struct {
	Triggered      bool
	Indicators     []string
	MessageDeleted bool
	Banned         bool
}

// Pipeline executes the honeypot response for triggering messages. Runs for
// different messages are independent: discordgo dispatches each event on its
// own goroutine and the pipeline holds no cross-run state, so two rapid posts
// by the same author simply race to the ban call and the loser fails
// harmlessly.
type Pipeline struct {
	gateway  Gateway
	reporter Reporter
	configs  ConfigSource
	now      func() time.Time
}

// NewPipeline wires the pipeline to its collaborators. now may be nil, in
// which case time.Now is used; tests inject a fixed clock.
func NewPipeline(gateway Gateway, reporter Reporter, configs ConfigSource, now func() time.Time) *Pipeline {
	if now == nil {
		now = time.Now
	}
	return &Pipeline{
		gateway:  gateway,
		reporter: reporter,
		configs:  configs,
		now:      now,
	}
}

// Handle runs the full response for one inbound message. It returns the run's
// outcome for observability; it never returns an error, because no failure in
// the pipeline is allowed to escape the event handler that called it.
func (p *Pipeline) Handle(ctx context.Context, event MessageEvent) Outcome {
	var outcome Outcome

	cfg, err := p.configs.GetGuildConfig(event.GuildID)
	if err != nil {
		slog.Error("Failed to load guild config", "guildID", event.GuildID, "error", err)
		return outcome
	}

	// Trigger guard: only messages in the configured trap channel matter.
	if cfg.HoneypotChannelID == "" || event.ChannelID != cfg.HoneypotChannelID {
		return outcome
	}
	outcome.Triggered = true

	membership, err := p.gateway.FetchMembership(ctx, event.GuildID, event.Author.ID)
	if err != nil {
		slog.Error("Failed to fetch membership", "guildID", event.GuildID, "userID", event.Author.ID, "error", err)
		return outcome
	}
	if membership == nil {
		// Author already left; nothing to act on.
		slog.Debug("Honeypot author has no membership", "guildID", event.GuildID, "userID", event.Author.ID)
		return outcome
	}

	now := p.now()

	// Detection is pure and cannot fail. An empty indicator list still bans:
	// posting in the trap channel is itself the decisive signal.
	outcome.Indicators = detect.Indicators(event.Author, *membership, now)

	slog.Info("Honeypot triggered",
		"guildID", event.GuildID,
		"user", event.Author.Username,
		"userID", event.Author.ID,
		"indicators", outcome.Indicators,
	)

	// Delete the message. Failure is non-fatal: the ban must happen even if
	// the message cannot be removed.
	if err := p.gateway.DeleteMessage(ctx, event.ChannelID, event.MessageID); err != nil {
		slog.Error("Failed to delete honeypot message", "messageID", event.MessageID, "error", err)
	} else {
		outcome.MessageDeleted = true
	}

	// Ban the author. Platform rejections (missing permission, role
	// hierarchy) are downgraded to a failed outcome, never propagated.
	reason := banReason(cfg.BanReason, outcome.Indicators)
	if err := p.gateway.BanMember(ctx, event.GuildID, event.Author.ID, reason); err != nil {
		slog.Error("Failed to ban user", "userID", event.Author.ID, "error", err)
	} else {
		outcome.Banned = true
		slog.Info("Banned user", "user", event.Author.Username, "userID", event.Author.ID)
	}

	// Two independent report emissions; one failing must not stop the other.
	detection := DetectionReport{
		GuildID:      event.GuildID,
		LogChannelID: cfg.LogChannelID,
		Account:      event.Author,
		Message:      truncate(event.Content, maxLoggedMessageLength),
		Indicators:   outcome.Indicators,
		When:         now,
	}
	if err := p.reporter.ReportDetection(ctx, detection); err != nil {
		slog.Error("Failed to report detection", "guildID", event.GuildID, "error", err)
	}

	result := OutcomeReport{
		GuildID:      event.GuildID,
		LogChannelID: cfg.LogChannelID,
		Account:      event.Author,
		Banned:       outcome.Banned,
		Indicators:   outcome.Indicators,
		When:         now,
	}
	if err := p.reporter.ReportOutcome(ctx, result); err != nil {
		slog.Error("Failed to report ban outcome", "guildID", event.GuildID, "error", err)
	}

	return outcome
}

// banReason renders the audit reason sent to the platform alongside the ban.
func banReason(template string, indicators []string) string {
	return fmt.Sprintf("%s | Indicators: %s", template, strings.Join(indicators, ", "))
}

// truncate shortens s to max characters, appending an ellipsis when trimmed.
// Counted in runes so a multi-byte character is never split.
func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max]) + "..."
}
