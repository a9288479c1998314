package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, "file", cfg.Store.Backend)
	assert.Equal(t, "mindmap-save", cfg.Store.Key)
	assert.Equal(t, 0.1, cfg.View.MinZoom)
	assert.Equal(t, 2.5, cfg.View.MaxZoom)
	assert.True(t, cfg.UI.Confirmations)
	assert.True(t, cfg.UI.Autoload)
}

func TestDirUsesXDG(t *testing.T) {
	tmp := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", tmp)
	assert.Equal(t, filepath.Join(tmp, "bubblemap"), Dir())
	assert.Equal(t, filepath.Join(tmp, "bubblemap", "config.toml"), Path())
}

func TestLoadMissingFileGivesDefaults(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadFile(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[store]
backend = "sqlite"
save_directory = "~/maps"

[view]
max_zoom = 4.0

[ui]
theme = "dark"
confirmations = false
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "sqlite", cfg.Store.Backend)
	assert.Equal(t, filepath.Join(home, "maps"), cfg.Store.SaveDirectory)
	assert.Equal(t, "mindmap.db", cfg.Store.Database)
	assert.Equal(t, 0.1, cfg.View.MinZoom)
	assert.Equal(t, 4.0, cfg.View.MaxZoom)
	assert.Equal(t, "dark", cfg.UI.Theme)
	assert.False(t, cfg.UI.Confirmations)
	assert.True(t, cfg.UI.Autoload)
}

func TestLoadRejectsBadToml(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[store\nbackend = "), 0o644))
	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoadFixesZoomLimits(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[view]\nmin_zoom = 3.0\nmax_zoom = 1.0\nzoom_step = -1.0\n"), 0o644))
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, Default().View, cfg.View)
}

func TestSaveThenLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	cfg := Default()
	cfg.Store.Backend = "memory"
	cfg.Log.Level = "debug"
	require.NoError(t, Save(cfg, path))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, got)
}

func TestSavePath(t *testing.T) {
	cfg := Default()
	assert.Equal(t, "mindmap.json", cfg.SavePath("mindmap.json"))

	dir := filepath.Join(t.TempDir(), "saves")
	cfg.Store.SaveDirectory = dir
	assert.Equal(t, filepath.Join(dir, "mindmap.json"), cfg.SavePath("mindmap.json"))
	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestNewLogger(t *testing.T) {
	logger, err := NewLogger(LogConfig{Level: "info"})
	require.NoError(t, err)
	logger.Info("discarded")

	file := filepath.Join(t.TempDir(), "logs", "bubblemap.log")
	logger, err = NewLogger(LogConfig{Level: "warn", File: file})
	require.NoError(t, err)
	logger.Info("below level")
	logger.Warn("kept")
	require.NoError(t, logger.Sync())

	data, err := os.ReadFile(file)
	require.NoError(t, err)
	assert.Contains(t, string(data), "kept")
	assert.NotContains(t, string(data), "below level")

	_, err = NewLogger(LogConfig{Level: "loud", File: file})
	assert.Error(t, err)
}
