package storage

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRepository(t *testing.T) *Repository {
	t.Helper()
	repo, err := NewRepository(filepath.Join(t.TempDir(), "honeypot.db"))
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })
	return repo
}

func TestGetGuildConfigDefaults(t *testing.T) {
	assert := assert.New(t)
	repo := testRepository(t)

	// first access for an unknown guild returns defaults, not an error
	cfg, err := repo.GetGuildConfig("1234")
	require.NoError(t, err)

	assert.Equal("1234", cfg.GuildID)
	assert.Empty(cfg.HoneypotChannelID)
	assert.Empty(cfg.LogChannelID)
	assert.Equal(DefaultBanReason, cfg.BanReason)
	assert.False(cfg.Configured())
}

func TestPartialUpdatesPreserveOtherFields(t *testing.T) {
	assert := assert.New(t)
	repo := testRepository(t)

	require.NoError(t, repo.SetHoneypotChannel("1", "42"))
	require.NoError(t, repo.SetLogChannel("1", "99"))

	cfg, err := repo.GetGuildConfig("1")
	require.NoError(t, err)
	assert.Equal("42", cfg.HoneypotChannelID)
	assert.Equal("99", cfg.LogChannelID)
	assert.True(cfg.Configured())

	// updating one field must not clear the others
	require.NoError(t, repo.SetHoneypotChannel("1", "43"))
	cfg, err = repo.GetGuildConfig("1")
	require.NoError(t, err)
	assert.Equal("43", cfg.HoneypotChannelID)
	assert.Equal("99", cfg.LogChannelID)
	assert.Equal(DefaultBanReason, cfg.BanReason)
}

func TestSetBanReason(t *testing.T) {
	assert := assert.New(t)
	repo := testRepository(t)

	require.NoError(t, repo.SetLogChannel("1", "99"))
	require.NoError(t, repo.SetBanReason("1", "Honeypot violation"))

	cfg, err := repo.GetGuildConfig("1")
	require.NoError(t, err)
	assert.Equal("Honeypot violation", cfg.BanReason)
	assert.Equal("99", cfg.LogChannelID)
}

func TestSetBeforeFirstRead(t *testing.T) {
	assert := assert.New(t)
	repo := testRepository(t)

	// a write for a guild with no prior record creates it
	require.NoError(t, repo.SetLogChannel("777", "99"))

	cfg, err := repo.GetGuildConfig("777")
	require.NoError(t, err)
	assert.Equal("99", cfg.LogChannelID)
	assert.Equal(DefaultBanReason, cfg.BanReason)
}

func TestGuildsAreIsolated(t *testing.T) {
	assert := assert.New(t)
	repo := testRepository(t)

	require.NoError(t, repo.SetHoneypotChannel("1", "42"))

	cfg, err := repo.GetGuildConfig("2")
	require.NoError(t, err)
	assert.Empty(cfg.HoneypotChannelID)
}
