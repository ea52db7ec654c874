package bot

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/ammarFaris843/HoneyPot-bot/internal/config"
	"github.com/ammarFaris843/HoneyPot-bot/internal/moderation"
	"github.com/ammarFaris843/HoneyPot-bot/internal/storage"
)

const statusText = "Use !honeypothelp for setup guide."

// Bot represents the Discord bot instance
type Bot struct {
	config   *config.Config
	session  *discordgo.Session
	repo     *storage.Repository
	gateway  *DiscordGateway
	pipeline *moderation.Pipeline
	router   *Router
}

// New creates a new Bot instance
func New(cfg *config.Config) (*Bot, error) {
	// Create Discord session
	session, err := discordgo.New("Bot " + cfg.DiscordToken)
	if err != nil {
		return nil, fmt.Errorf("failed to create Discord session: %w", err)
	}

	// Trap detection needs message content and member metadata
	session.Identify.Intents = discordgo.IntentsGuilds |
		discordgo.IntentsGuildMessages |
		discordgo.IntentsMessageContent |
		discordgo.IntentsGuildMembers

	// Initialize storage
	repo, err := storage.NewRepository(cfg.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}

	gateway := NewDiscordGateway(session)

	b := &Bot{
		config:   cfg,
		session:  session,
		repo:     repo,
		gateway:  gateway,
		pipeline: moderation.NewPipeline(gateway, gateway, repo, nil),
	}
	b.router = b.buildRouter()

	// Register event handlers
	b.registerHandlers()

	return b, nil
}

// Start opens the Discord connection
func (b *Bot) Start() error {
	if err := b.session.Open(); err != nil {
		return fmt.Errorf("failed to open Discord connection: %w", err)
	}

	slog.Info("Connected to Discord", "user", b.session.State.User.Username)
	return nil
}

// Stop gracefully shuts down the bot
func (b *Bot) Stop() error {
	// Close storage
	if b.repo != nil {
		b.repo.Close()
	}

	// Close Discord session
	if b.session != nil {
		return b.session.Close()
	}

	return nil
}

// registerHandlers sets up Discord event handlers
func (b *Bot) registerHandlers() {
	b.session.AddHandler(b.handleReady)
	b.session.AddHandler(b.handleMessageCreate)
}

// handleReady sets the bot presence and prints each guild's setup state.
func (b *Bot) handleReady(s *discordgo.Session, r *discordgo.Ready) {
	slog.Info("Bot is ready", "guilds", len(r.Guilds))

	if err := s.UpdateWatchStatus(0, statusText); err != nil {
		slog.Error("Failed to set presence", "error", err)
	}

	for _, guild := range r.Guilds {
		cfg, err := b.repo.GetGuildConfig(guild.ID)
		if err != nil {
			slog.Error("Failed to load guild config", "guildID", guild.ID, "error", err)
			continue
		}

		marker := "ready"
		if !cfg.Configured() {
			marker = "setup needed"
		}
		slog.Info("Guild status",
			"guild", guild.Name,
			"guildID", guild.ID,
			"honeypot", cfg.HoneypotChannelID,
			"log", cfg.LogChannelID,
			"status", marker,
		)
	}
}

// handleMessageCreate routes each inbound message: trap-channel messages go
// through the moderation pipeline, "!" messages go to the command router.
// discordgo runs each invocation on its own goroutine, so concurrent events
// never block each other; any failure stays inside this handler.
func (b *Bot) handleMessageCreate(s *discordgo.Session, m *discordgo.MessageCreate) {
	if m.Author == nil || m.Author.Bot || m.GuildID == "" {
		return
	}

	ctx := context.Background()

	event := moderation.MessageEvent{
		GuildID:   m.GuildID,
		ChannelID: m.ChannelID,
		MessageID: m.ID,
		Content:   m.Content,
		Author:    AccountSnapshot(m.Author),
	}
	if outcome := b.pipeline.Handle(ctx, event); outcome.Triggered {
		return
	}

	if strings.HasPrefix(m.Content, "!") {
		b.router.Dispatch(s, m)
	}
}
