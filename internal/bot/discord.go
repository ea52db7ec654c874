package bot

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/ammarFaris843/HoneyPot-bot/internal/detect"
	"github.com/ammarFaris843/HoneyPot-bot/internal/moderation"
)

// Embed colors for audit log entries.
const (
	colorTriggered = 0xffa500
	colorBanned    = 0x00ff00
	colorFailed    = 0xff0000
	colorInfo      = 0x7289da
	colorHelp      = 0x00ff00
)

// banPurgeDays is how much of the banned account's recent message history the
// platform removes alongside the ban.
const banPurgeDays = 1

// DiscordGateway adapts a discordgo session to the narrow capability surface
// the moderation pipeline consumes, and renders its reports as embeds.
type DiscordGateway struct {
	session *discordgo.Session
}

// NewDiscordGateway wraps an open discordgo session.
func NewDiscordGateway(session *discordgo.Session) *DiscordGateway {
	return &DiscordGateway{session: session}
}

// AccountSnapshot captures a user's account metadata. Creation time is
// derived from the snowflake ID, so it is available without an extra
// API round-trip.
func AccountSnapshot(user *discordgo.User) detect.AccountSnapshot {
	createdAt, _ := discordgo.SnowflakeTimestamp(user.ID)
	return detect.AccountSnapshot{
		Username:        user.Username,
		ID:              user.ID,
		CreatedAt:       createdAt,
		HasCustomAvatar: user.Avatar != "",
	}
}

// FetchMembership snapshots the author's guild membership, preferring the
// session state cache over a REST call. A member that cannot be found (left
// already, or was never cached and the fetch 404s) yields nil, nil.
func (g *DiscordGateway) FetchMembership(ctx context.Context, guildID, userID string) (*detect.MembershipSnapshot, error) {
	member, err := g.session.State.Member(guildID, userID)
	if err != nil {
		member, err = g.session.GuildMember(guildID, userID, discordgo.WithContext(ctx))
		if err != nil {
			if isNotFound(err) {
				return nil, nil
			}
			return nil, fmt.Errorf("failed to fetch member: %w", err)
		}
	}

	snapshot := &detect.MembershipSnapshot{RoleIDs: member.Roles}
	if !member.JoinedAt.IsZero() {
		joined := member.JoinedAt
		snapshot.JoinedAt = &joined
	}
	return snapshot, nil
}

// DeleteMessage removes the triggering message from the trap channel.
func (g *DiscordGateway) DeleteMessage(ctx context.Context, channelID, messageID string) error {
	return g.session.ChannelMessageDelete(channelID, messageID, discordgo.WithContext(ctx))
}

// BanMember bans the user and purges their recent messages.
func (g *DiscordGateway) BanMember(ctx context.Context, guildID, userID, reason string) error {
	return g.session.GuildBanCreateWithReason(guildID, userID, reason, banPurgeDays, discordgo.WithContext(ctx))
}

// ReportDetection sends the "Honeypot Triggered" audit embed. A guild without
// a configured log channel gets no report.
func (g *DiscordGateway) ReportDetection(ctx context.Context, report moderation.DetectionReport) error {
	if report.LogChannelID == "" {
		return nil
	}

	embed := &discordgo.MessageEmbed{
		Title:     "Honeypot Triggered",
		Color:     colorTriggered,
		Timestamp: report.When.Format(time.RFC3339),
		Fields: []*discordgo.MessageEmbedField{
			{
				Name:   "User",
				Value:  fmt.Sprintf("<@%s>\n`%s`\nID: `%s`", report.Account.ID, report.Account.Username, report.Account.ID),
				Inline: false,
			},
			{
				Name:   "Message",
				Value:  fmt.Sprintf("```%s```", report.Message),
				Inline: false,
			},
			{
				Name:   "Account Created",
				Value:  fmt.Sprintf("<t:%d:R>", report.Account.CreatedAt.Unix()),
				Inline: true,
			},
			{
				Name:   "Indicators",
				Value:  indicatorList(report.Indicators),
				Inline: true,
			},
		},
	}

	_, err := g.session.ChannelMessageSendEmbed(report.LogChannelID, embed, discordgo.WithContext(ctx))
	return err
}

// ReportOutcome sends the "User Banned" / "Ban Failed" audit embed.
func (g *DiscordGateway) ReportOutcome(ctx context.Context, report moderation.OutcomeReport) error {
	if report.LogChannelID == "" {
		return nil
	}

	title, color := "User Banned", colorBanned
	if !report.Banned {
		title, color = "Ban Failed", colorFailed
	}

	embed := &discordgo.MessageEmbed{
		Title:     title,
		Color:     color,
		Timestamp: report.When.Format(time.RFC3339),
		Footer:    &discordgo.MessageEmbedFooter{Text: "Honeypot Protection"},
		Fields: []*discordgo.MessageEmbedField{
			{
				Name:   "User",
				Value:  fmt.Sprintf("<@%s>\n`%s`", report.Account.ID, report.Account.Username),
				Inline: false,
			},
			{
				Name:   "User ID",
				Value:  fmt.Sprintf("`%s`", report.Account.ID),
				Inline: true,
			},
			{
				Name:   "Indicators",
				Value:  fmt.Sprintf("%d", len(report.Indicators)),
				Inline: true,
			},
		},
	}

	if len(report.Indicators) > 0 {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:   "Details",
			Value:  "• " + strings.Join(report.Indicators, "\n• "),
			Inline: false,
		})
	}
	if !report.Banned {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:   "Note",
			Value:  "Check bot permissions.",
			Inline: false,
		})
	}

	_, err := g.session.ChannelMessageSendEmbed(report.LogChannelID, embed, discordgo.WithContext(ctx))
	return err
}

func indicatorList(indicators []string) string {
	if len(indicators) == 0 {
		return "None"
	}
	return strings.Join(indicators, "\n")
}

// isNotFound reports whether err is a Discord "unknown member/user" response.
func isNotFound(err error) bool {
	var restErr *discordgo.RESTError
	if errors.As(err, &restErr) && restErr.Message != nil {
		switch restErr.Message.Code {
		case discordgo.ErrCodeUnknownMember, discordgo.ErrCodeUnknownUser:
			return true
		}
	}
	return false
}
