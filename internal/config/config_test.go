package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Run("should use defaults when no file and no env", func(t *testing.T) {
		// when
		cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))

		// then
		require.NoError(t, err)
		assert.Equal(t, Defaults(), cfg)
	})

	t.Run("should layer yaml file and environment over defaults", func(t *testing.T) {
		// given
		path := filepath.Join(t.TempDir(), "application.yaml")
		yaml := "families: 60\nstore:\n  driver: memory\npages:\n  source: dir\n  dir: ./pages\n"
		require.NoError(t, os.WriteFile(path, []byte(yaml), 0o644))
		t.Setenv("HUTRI_DB_HOST", "db.internal")
		t.Setenv("HUTRI_FAMILIES", "72")

		// when
		cfg, err := Load(path)

		// then
		require.NoError(t, err)
		assert.Equal(t, 72, cfg.Families)
		assert.Equal(t, "memory", cfg.Store.Driver)
		assert.Equal(t, "./pages", cfg.Pages.Dir)
		assert.Equal(t, "db.internal", cfg.Database.Host)
		assert.Equal(t, 5432, cfg.Database.Port)
		assert.Equal(t, "Asia/Jakarta", cfg.Timezone)
	})

	t.Run("should fail on malformed yaml", func(t *testing.T) {
		// given
		path := filepath.Join(t.TempDir(), "application.yaml")
		require.NoError(t, os.WriteFile(path, []byte("families: [unterminated"), 0o644))

		// when
		_, err := Load(path)

		// then
		assert.Error(t, err)
	})
}
