package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// Config holds bubblemap configuration.
type Config struct {
	Store StoreConfig `toml:"store"`
	View  ViewConfig  `toml:"view"`
	UI    UIConfig    `toml:"ui"`
	Log   LogConfig   `toml:"log"`
}

// StoreConfig selects where the mind map is saved.
type StoreConfig struct {
	Backend       string `toml:"backend"` // "file", "sqlite", "memory"
	SaveDirectory string `toml:"save_directory"`
	FileName      string `toml:"file_name"`
	Database      string `toml:"database"`
	Key           string `toml:"key"`
}

type ViewConfig struct {
	MinZoom  float64 `toml:"min_zoom"`
	MaxZoom  float64 `toml:"max_zoom"`
	ZoomStep float64 `toml:"zoom_step"`
}

type UIConfig struct {
	Theme         string `toml:"theme"`
	Confirmations bool   `toml:"confirmations"`
	Autoload      bool   `toml:"autoload"`
}

type LogConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Store: StoreConfig{
			Backend:  "file",
			FileName: "mindmap.json",
			Database: "mindmap.db",
			Key:      "mindmap-save",
		},
		View: ViewConfig{MinZoom: 0.1, MaxZoom: 2.5, ZoomStep: 0.1},
		UI:   UIConfig{Theme: "default", Confirmations: true, Autoload: true},
		Log:  LogConfig{Level: "info"},
	}
}

// Dir returns the bubblemap config directory path.
func Dir() string {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, _ := os.UserHomeDir()
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, "bubblemap")
}

func Path() string {
	return filepath.Join(Dir(), "config.toml")
}

// Load reads the config file at path, or the default location when path
// is empty. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		path = Path()
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	cfg.normalize()
	return cfg, nil
}

// Save writes the config to path, or the default location when path is empty.
func Save(cfg *Config, path string) error {
	if path == "" {
		path = Path()
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return toml.NewEncoder(f).Encode(cfg)
}

func (c *Config) normalize() {
	def := Default()
	if c.Store.Backend == "" {
		c.Store.Backend = def.Store.Backend
	}
	if c.Store.FileName == "" {
		c.Store.FileName = def.Store.FileName
	}
	if c.Store.Database == "" {
		c.Store.Database = def.Store.Database
	}
	if c.Store.Key == "" {
		c.Store.Key = def.Store.Key
	}
	c.Store.SaveDirectory = expand(c.Store.SaveDirectory)

	if c.View.MinZoom <= 0 || c.View.MaxZoom < c.View.MinZoom {
		c.View.MinZoom, c.View.MaxZoom = def.View.MinZoom, def.View.MaxZoom
	}
	if c.View.ZoomStep <= 0 {
		c.View.ZoomStep = def.View.ZoomStep
	}
	if c.UI.Theme == "" {
		c.UI.Theme = def.UI.Theme
	}
	c.Log.File = expand(c.Log.File)
}

// expand resolves a leading ~ and makes relative paths absolute.
func expand(path string) string {
	if path == "" {
		return ""
	}
	if strings.HasPrefix(path, "~") {
		if home, err := os.UserHomeDir(); err == nil {
			path = filepath.Join(home, strings.TrimPrefix(path, "~"))
		}
	}
	if !filepath.IsAbs(path) {
		if abs, err := filepath.Abs(path); err == nil {
			path = abs
		}
	}
	return path
}

// SavePath joins filename onto the save directory, creating the directory.
// Without a save directory the name is returned unchanged.
func (c *Config) SavePath(filename string) string {
	if c.Store.SaveDirectory == "" {
		return filename
	}
	os.MkdirAll(c.Store.SaveDirectory, 0o755)
	return filepath.Join(c.Store.SaveDirectory, filename)
}
