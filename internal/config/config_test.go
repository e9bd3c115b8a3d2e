package config

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("BOT_TOKEN", "token")
	t.Setenv("DATABASE_URL", "postgres://localhost/db")
	t.Setenv("DATA_DIR", "/srv/data")
	t.Setenv("ADMIN_IDS", "1, 2")
	t.Setenv("TIMETABLE_FILE", "/tmp/tt.xlsx")
	t.Setenv("CORS_ORIGINS", "https://a.kz, ,https://b.kz")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 2}, cfg.AdminIDs)
	assert.True(t, cfg.IsAdmin(2))
	assert.False(t, cfg.IsAdmin(3))
	assert.Equal(t, filepath.Join("/srv/data", "reg.xlsx"), cfg.Files.Reg)
	assert.Equal(t, "/tmp/tt.xlsx", cfg.Files.Timetable)
	assert.Equal(t, filepath.Join("/srv/data", "recomendations_klimov.csv"), cfg.Files.Recommendations)
	assert.Equal(t, 15*time.Second, cfg.LLMTimeout)
	assert.Equal(t, time.Duration(0), cfg.ReloadInterval)
	assert.Equal(t, "gemini-2.0-flash", cfg.LLMModel)
	assert.Equal(t, []string{"https://a.kz", "https://b.kz"}, cfg.CORSOrigins)
}

func TestLoadBadValues(t *testing.T) {
	t.Setenv("BOT_TOKEN", "token")
	t.Setenv("DATABASE_URL", "postgres://localhost/db")

	t.Setenv("RELOAD_INTERVAL", "soon")
	_, err := Load()
	assert.Error(t, err)

	t.Setenv("RELOAD_INTERVAL", "10m")
	t.Setenv("ADMIN_IDS", "1,x")
	_, err = Load()
	assert.Error(t, err)
}

func TestLoadPanicsWithoutToken(t *testing.T) {
	t.Setenv("BOT_TOKEN", "")
	t.Setenv("DATABASE_URL", "postgres://localhost/db")
	assert.Panics(t, func() { _, _ = Load() })
}
