package openpen

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_MissingFileGivesDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "none.toml"))
	require.NoError(t, err)
	assert.Equal(t, "Times New Roman", cfg.DefaultFont)
	assert.Equal(t, 16.0, cfg.DefaultFontSize)
	assert.Equal(t, ThemeLight, cfg.Theme)
}

func TestLoadConfig_PartialFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "openpen.toml")
	require.NoError(t, os.WriteFile(path, []byte("theme = \"dark\"\nzoom = 2.5\n"), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, ThemeDark, cfg.Theme)
	assert.Equal(t, 2.5, cfg.Zoom)
	assert.Equal(t, "letter", cfg.PageSize)
}

func TestLoadConfig_Invalid(t *testing.T) {
	dir := t.TempDir()
	tests := map[string]string{
		"zoom":   "zoom = 9.0\n",
		"theme":  "theme = \"sepia\"\n",
		"syntax": "zoom = = 1\n",
	}
	for name, body := range tests {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(dir, name+".toml")
			require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
			_, err := LoadConfig(path)
			assert.Error(t, err)
		})
	}
}

func TestSaveConfig_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "openpen.toml")
	cfg := *DefaultConfig()
	cfg.DefaultFont = "Georgia"
	cfg.PageSize = "a4"

	require.NoError(t, SaveConfig(path, &cfg))
	out, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "Georgia", out.DefaultFont)
	assert.Equal(t, "a4", out.PageSize)
	assert.Equal(t, cfg.HeadingSizes, out.HeadingSizes)
}

func TestDefaultConfig_Singleton(t *testing.T) {
	assert.Same(t, DefaultConfig(), DefaultConfig())
}

func TestParseLevel(t *testing.T) {
	lvl, err := ParseLevel("")
	require.NoError(t, err)
	assert.Equal(t, zerolog.InfoLevel, lvl)

	lvl, err = ParseLevel(" DEBUG ")
	require.NoError(t, err)
	assert.Equal(t, zerolog.DebugLevel, lvl)

	_, err = ParseLevel("loud")
	assert.Error(t, err)
}
