package bot

import (
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/bwmarrin/discordgo"
)

const (
	defaultHoneypotChannelName = "🪤-honeypot"
	defaultLogChannelName      = "🔍-honeypot-logs"
	honeypotChannelTopic       = "This channel is monitored. Do not message here."
)

// buildRouter declares the admin command surface.
func (b *Bot) buildRouter() *Router {
	return NewRouter(b.isAdmin,
		&Command{
			Name:      "!sethoneypot",
			Usage:     "!sethoneypot <channel_id>",
			MinArgs:   1,
			AdminOnly: true,
			Handler:   b.handleSetHoneypot,
		},
		&Command{
			Name:      "!setlog",
			Usage:     "!setlog <channel_id>",
			MinArgs:   1,
			AdminOnly: true,
			Handler:   b.handleSetLog,
		},
		&Command{
			Name:      "!createhoneypot",
			Usage:     "!createhoneypot [name]",
			AdminOnly: true,
			Handler:   b.handleCreateHoneypot,
		},
		&Command{
			Name:      "!createlog",
			Usage:     "!createlog [name]",
			AdminOnly: true,
			Handler:   b.handleCreateLog,
		},
		&Command{
			Name:      "!honeypotconfig",
			Usage:     "!honeypotconfig",
			AdminOnly: true,
			Handler:   b.handleConfig,
		},
		&Command{
			Name:      "!honeypotstats",
			Usage:     "!honeypotstats",
			AdminOnly: true,
			Handler:   b.handleStats,
		},
		&Command{
			Name:    "!honeypothelp",
			Usage:   "!honeypothelp",
			Handler: b.handleHelp,
		},
	)
}

// isAdmin grants elevated commands to configured bot owners, the guild owner,
// and anyone holding a role with the administrator permission.
func (b *Bot) isAdmin(s *discordgo.Session, m *discordgo.MessageCreate) bool {
	for _, id := range b.config.OwnerIDs {
		if m.Author.ID == id {
			return true
		}
	}

	guild, err := s.State.Guild(m.GuildID)
	if err != nil {
		guild, err = s.Guild(m.GuildID)
		if err != nil {
			slog.Error("Failed to fetch guild for permission check", "guildID", m.GuildID, "error", err)
			return false
		}
	}

	if guild.OwnerID == m.Author.ID {
		return true
	}

	if m.Member == nil {
		return false
	}
	for _, roleID := range m.Member.Roles {
		for _, role := range guild.Roles {
			if role.ID == roleID && role.Permissions&discordgo.PermissionAdministrator != 0 {
				return true
			}
		}
	}
	return false
}

// guildChannel resolves a channel ID argument to a channel in the message's
// guild. A nil channel with nil error means "not found here".
func (b *Bot) guildChannel(s *discordgo.Session, guildID, arg string) (*discordgo.Channel, error) {
	if _, err := strconv.ParseUint(arg, 10, 64); err != nil {
		return nil, fmt.Errorf("invalid channel ID")
	}

	channel, err := s.State.Channel(arg)
	if err != nil {
		channel, err = s.Channel(arg)
		if err != nil {
			return nil, nil
		}
	}
	if channel.GuildID != guildID {
		return nil, nil
	}
	return channel, nil
}

// handleSetHoneypot handles !sethoneypot <channel_id>
func (b *Bot) handleSetHoneypot(s *discordgo.Session, m *discordgo.MessageCreate, args []string) {
	channel, err := b.guildChannel(s, m.GuildID, args[0])
	if err != nil {
		s.ChannelMessageSend(m.ChannelID, "Invalid channel ID.")
		return
	}
	if channel == nil {
		s.ChannelMessageSend(m.ChannelID, "Channel not found.")
		return
	}

	if err := b.repo.SetHoneypotChannel(m.GuildID, channel.ID); err != nil {
		slog.Error("Failed to save honeypot channel", "guildID", m.GuildID, "error", err)
		s.ChannelMessageSend(m.ChannelID, "Failed to save configuration. Please try again.")
		return
	}

	s.ChannelMessageSend(m.ChannelID, fmt.Sprintf("Honeypot channel set to <#%s>", channel.ID))
}

// handleSetLog handles !setlog <channel_id>
func (b *Bot) handleSetLog(s *discordgo.Session, m *discordgo.MessageCreate, args []string) {
	channel, err := b.guildChannel(s, m.GuildID, args[0])
	if err != nil {
		s.ChannelMessageSend(m.ChannelID, "Invalid channel ID.")
		return
	}
	if channel == nil {
		s.ChannelMessageSend(m.ChannelID, "Channel not found.")
		return
	}

	if err := b.repo.SetLogChannel(m.GuildID, channel.ID); err != nil {
		slog.Error("Failed to save log channel", "guildID", m.GuildID, "error", err)
		s.ChannelMessageSend(m.ChannelID, "Failed to save configuration. Please try again.")
		return
	}

	s.ChannelMessageSend(m.ChannelID, fmt.Sprintf("Log channel set to <#%s>", channel.ID))
}

// handleCreateHoneypot handles !createhoneypot [name]
func (b *Bot) handleCreateHoneypot(s *discordgo.Session, m *discordgo.MessageCreate, args []string) {
	name := commandArgument(m.Content)
	if name == "" {
		name = defaultHoneypotChannelName
	}

	channel, err := s.GuildChannelCreateComplex(m.GuildID, discordgo.GuildChannelCreateData{
		Name:  name,
		Type:  discordgo.ChannelTypeGuildText,
		Topic: honeypotChannelTopic,
	})
	if err != nil {
		slog.Error("Failed to create honeypot channel", "guildID", m.GuildID, "error", err)
		s.ChannelMessageSend(m.ChannelID, fmt.Sprintf("Error creating channel: %s", err))
		return
	}

	if err := b.repo.SetHoneypotChannel(m.GuildID, channel.ID); err != nil {
		slog.Error("Failed to save honeypot channel", "guildID", m.GuildID, "error", err)
		s.ChannelMessageSend(m.ChannelID, "Channel created but saving configuration failed.")
		return
	}

	s.ChannelMessageSend(m.ChannelID,
		fmt.Sprintf("Created honeypot channel: <#%s>\nChannel ID: `%s`", channel.ID, channel.ID))
}

// handleCreateLog handles !createlog [name]
func (b *Bot) handleCreateLog(s *discordgo.Session, m *discordgo.MessageCreate, args []string) {
	name := commandArgument(m.Content)
	if name == "" {
		name = defaultLogChannelName
	}

	channel, err := s.GuildChannelCreateComplex(m.GuildID, discordgo.GuildChannelCreateData{
		Name: name,
		Type: discordgo.ChannelTypeGuildText,
	})
	if err != nil {
		slog.Error("Failed to create log channel", "guildID", m.GuildID, "error", err)
		s.ChannelMessageSend(m.ChannelID, fmt.Sprintf("Error creating channel: %s", err))
		return
	}

	// Hide the audit log from ordinary members. @everyone shares the guild's ID.
	err = s.ChannelPermissionSet(channel.ID, m.GuildID, discordgo.PermissionOverwriteTypeRole,
		0, discordgo.PermissionViewChannel)
	if err != nil {
		slog.Error("Failed to restrict log channel", "channelID", channel.ID, "error", err)
	}

	if err := b.repo.SetLogChannel(m.GuildID, channel.ID); err != nil {
		slog.Error("Failed to save log channel", "guildID", m.GuildID, "error", err)
		s.ChannelMessageSend(m.ChannelID, "Channel created but saving configuration failed.")
		return
	}

	s.ChannelMessageSend(m.ChannelID,
		fmt.Sprintf("Created log channel: <#%s>\nChannel ID: `%s`", channel.ID, channel.ID))
}

// handleConfig handles !honeypotconfig
func (b *Bot) handleConfig(s *discordgo.Session, m *discordgo.MessageCreate, args []string) {
	cfg, err := b.repo.GetGuildConfig(m.GuildID)
	if err != nil {
		slog.Error("Failed to load guild config", "guildID", m.GuildID, "error", err)
		s.ChannelMessageSend(m.ChannelID, "Failed to load configuration.")
		return
	}

	embed := &discordgo.MessageEmbed{
		Title:     "Honeypot Configuration",
		Color:     colorInfo,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Footer:    &discordgo.MessageEmbedFooter{Text: "Use !honeypothelp for commands"},
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Honeypot Channel", Value: channelValue(cfg.HoneypotChannelID), Inline: false},
			{Name: "Log Channel", Value: channelValue(cfg.LogChannelID), Inline: false},
			{Name: "Ban Reason", Value: cfg.BanReason, Inline: false},
		},
	}

	s.ChannelMessageSendEmbed(m.ChannelID, embed)
}

// handleStats handles !honeypotstats
func (b *Bot) handleStats(s *discordgo.Session, m *discordgo.MessageCreate, args []string) {
	cfg, err := b.repo.GetGuildConfig(m.GuildID)
	if err != nil {
		slog.Error("Failed to load guild config", "guildID", m.GuildID, "error", err)
		s.ChannelMessageSend(m.ChannelID, "Failed to load configuration.")
		return
	}

	guildName := m.GuildID
	memberCount := 0
	if guild, err := s.State.Guild(m.GuildID); err == nil {
		guildName = guild.Name
		memberCount = guild.MemberCount
	}

	status := "Setup needed"
	if cfg.Configured() {
		status = "Active"
	}

	embed := &discordgo.MessageEmbed{
		Title:     "Honeypot Statistics",
		Color:     colorInfo,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Footer:    &discordgo.MessageEmbedFooter{Text: "Honeypot Protection System"},
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Server", Value: guildName, Inline: true},
			{Name: "Honeypot Channel", Value: channelValue(cfg.HoneypotChannelID), Inline: true},
			{Name: "Log Channel", Value: channelValue(cfg.LogChannelID), Inline: true},
			{Name: "Bot Latency", Value: fmt.Sprintf("%dms", s.HeartbeatLatency().Milliseconds()), Inline: true},
			{Name: "Members", Value: strconv.Itoa(memberCount), Inline: true},
			{Name: "Status", Value: status, Inline: true},
		},
	}

	s.ChannelMessageSendEmbed(m.ChannelID, embed)
}

// handleHelp handles !honeypothelp
func (b *Bot) handleHelp(s *discordgo.Session, m *discordgo.MessageCreate, args []string) {
	embed := &discordgo.MessageEmbed{
		Title:  "Honeypot Bot Commands",
		Color:  colorHelp,
		Footer: &discordgo.MessageEmbedFooter{Text: "All commands require administrator permissions"},
		Fields: []*discordgo.MessageEmbedField{
			{Name: "!createhoneypot [name]", Value: "Create a new honeypot channel", Inline: false},
			{Name: "!createlog [name]", Value: "Create a new log channel", Inline: false},
			{Name: "!sethoneypot <channel_id>", Value: "Set existing channel as honeypot", Inline: false},
			{Name: "!setlog <channel_id>", Value: "Set existing channel as log", Inline: false},
			{Name: "!honeypotconfig", Value: "View current configuration", Inline: false},
			{Name: "!honeypotstats", Value: "View bot statistics", Inline: false},
		},
	}

	s.ChannelMessageSendEmbed(m.ChannelID, embed)
}

func channelValue(channelID string) string {
	if channelID == "" {
		return "Not set"
	}
	return fmt.Sprintf("<#%s> (`%s`)", channelID, channelID)
}
