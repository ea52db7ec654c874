package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// Repository handles all database operations
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new repository with SQLite
func NewRepository(dbPath string) (*Repository, error) {
	// Ensure directory exists
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Test connection
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	repo := &Repository{db: db}

	// Run migrations
	if err := repo.migrate(); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return repo, nil
}

// Close closes the database connection
func (r *Repository) Close() error {
	return r.db.Close()
}

// migrate creates the database schema
func (r *Repository) migrate() error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS guild_configs (
			guild_id VARCHAR(20) PRIMARY KEY,
			honeypot_channel_id VARCHAR(20) NOT NULL DEFAULT '',
			log_channel_id VARCHAR(20) NOT NULL DEFAULT '',
			ban_reason TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`,
	}

	for _, migration := range migrations {
		if _, err := r.db.Exec(migration); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
	}

	return nil
}

// GetGuildConfig retrieves a guild's configuration, creating a default record
// on first access. Absence of configuration is never an error: callers always
// get a usable config back.
func (r *Repository) GetGuildConfig(guildID string) (*GuildConfig, error) {
	cfg, err := r.queryGuildConfig(guildID)
	if err == nil {
		return cfg, nil
	}
	if err != sql.ErrNoRows {
		return nil, err
	}

	// First access: lazily create the row. A concurrent first access may have
	// inserted it already, hence the conflict clause.
	_, err = r.db.Exec(
		`INSERT INTO guild_configs (guild_id, ban_reason) VALUES (?, ?)
		 ON CONFLICT(guild_id) DO NOTHING`,
		guildID, DefaultBanReason,
	)
	if err != nil {
		return nil, err
	}

	return r.queryGuildConfig(guildID)
}

func (r *Repository) queryGuildConfig(guildID string) (*GuildConfig, error) {
	cfg := &GuildConfig{}
	err := r.db.QueryRow(
		`SELECT guild_id, honeypot_channel_id, log_channel_id, ban_reason, created_at, updated_at
		 FROM guild_configs WHERE guild_id = ?`,
		guildID,
	).Scan(&cfg.GuildID, &cfg.HoneypotChannelID, &cfg.LogChannelID, &cfg.BanReason, &cfg.CreatedAt, &cfg.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if cfg.BanReason == "" {
		cfg.BanReason = DefaultBanReason
	}
	return cfg, nil
}

// SetHoneypotChannel persists the trap channel for a guild. Other fields are
// left untouched.
func (r *Repository) SetHoneypotChannel(guildID, channelID string) error {
	return r.upsertField(guildID, "honeypot_channel_id", channelID)
}

// SetLogChannel persists the audit log channel for a guild. Other fields are
// left untouched.
func (r *Repository) SetLogChannel(guildID, channelID string) error {
	return r.upsertField(guildID, "log_channel_id", channelID)
}

// SetBanReason persists the ban-reason template for a guild. Other fields are
// left untouched.
func (r *Repository) SetBanReason(guildID, reason string) error {
	return r.upsertField(guildID, "ban_reason", reason)
}

// upsertField writes exactly one column so that partial updates never clear
// fields the admin did not set. The column name is always one of our own
// constants, never user input.
func (r *Repository) upsertField(guildID, column, value string) error {
	query := fmt.Sprintf(
		`INSERT INTO guild_configs (guild_id, %s) VALUES (?, ?)
		 ON CONFLICT(guild_id) DO UPDATE SET %s = excluded.%s, updated_at = CURRENT_TIMESTAMP`,
		column, column, column,
	)
	_, err := r.db.Exec(query, guildID, value)
	return err
}
