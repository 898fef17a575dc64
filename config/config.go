package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/BurntSushi/toml"

	"keypaste/typing"
)

type Config struct {
	Typing  TypingConfig  `toml:"typing"`
	Monitor MonitorConfig `toml:"monitor"`
	Hotkey  HotkeyConfig  `toml:"hotkey"`
	Log     LogConfig     `toml:"log"`
}

type TypingConfig struct {
	Speed     typing.Speed `toml:"speed"`
	ChunkSize int          `toml:"chunk_size"`
}

type MonitorConfig struct {
	Enabled        bool `toml:"enabled"`
	PollIntervalMs int  `toml:"poll_interval_ms"`
}

type HotkeyConfig struct {
	// Cancel is the emergency-stop key; pressing it twice within the window
	// aborts an in-flight typing job. Modifier-only combos ("ctrl+win") work
	// on Windows only; macOS and Linux require a named key ("esc", "f9").
	Cancel        string `toml:"cancel"`
	DoublePressMs int    `toml:"double_press_ms"`
}

type LogConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// Default configuration
func defaultConfig() *Config {
	return &Config{
		Typing: TypingConfig{
			Speed:     typing.Normal,
			ChunkSize: 200,
		},
		Monitor: MonitorConfig{
			Enabled:        true,
			PollIntervalMs: 500,
		},
		Hotkey: HotkeyConfig{
			Cancel:        "esc",
			DoublePressMs: 500,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "auto",
		},
	}
}

// Dir returns the per-user configuration directory, creating it if needed
func Dir() (string, error) {
	var base string
	if runtime.GOOS == "windows" {
		base = os.Getenv("APPDATA")
		if base == "" {
			base = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
		}
	} else {
		var err error
		base, err = os.UserConfigDir()
		if err != nil {
			return "", fmt.Errorf("failed to resolve config directory: %w", err)
		}
	}

	configDir := filepath.Join(base, "keypaste")
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}
	return configDir, nil
}

// Path returns the path to the configuration file
func Path() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// Load loads the configuration from the TOML file
// If the file doesn't exist, it creates it with default values
func Load() (*Config, error) {
	configPath, err := Path()
	if err != nil {
		return nil, err
	}

	// If config doesn't exist, create it with defaults
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		cfg := defaultConfig()
		if err := save(configPath, cfg); err != nil {
			return nil, fmt.Errorf("failed to create default config: %w", err)
		}
		return cfg, nil
	}

	// Load existing config
	cfg := defaultConfig()
	if _, err := toml.DecodeFile(configPath, cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	return cfg, nil
}

// Save writes the configuration back to disk. Called when a tray setting
// changes so the choice survives restarts.
func (c *Config) Save() error {
	configPath, err := Path()
	if err != nil {
		return err
	}
	return save(configPath, c)
}

// save writes the configuration to the TOML file
func save(path string, cfg *Config) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := toml.NewEncoder(f)
	return enc.Encode(cfg)
}

// KeyCombo represents a parsed keyboard combination
type KeyCombo struct {
	Ctrl  bool
	Shift bool
	Alt   bool
	Win   bool
	Key   string
}

// ParseHotkey parses a hotkey combo string like "ctrl+shift+v", "ctrl+win"
// or a bare key like "esc". Parsing is platform-neutral; whether a combo can
// actually be listened for is decided by the hotkey backend, and
// modifier-only combos are rejected there on non-Windows platforms.
func ParseHotkey(combo string) (KeyCombo, error) {
	var kc KeyCombo
	parts := strings.Split(strings.ToLower(combo), "+")

	if len(parts) == 0 {
		return kc, fmt.Errorf("empty hotkey combo")
	}

	for i, part := range parts {
		part = strings.TrimSpace(part)

		// Check if this part is a modifier
		isModifier := false
		switch part {
		case "ctrl", "control":
			kc.Ctrl = true
			isModifier = true
		case "shift":
			kc.Shift = true
			isModifier = true
		case "alt":
			kc.Alt = true
			isModifier = true
		case "win", "windows", "cmd", "super":
			kc.Win = true
			isModifier = true
		}

		// If it's not a modifier and it's the last part, it's the key
		if !isModifier {
			if i == len(parts)-1 {
				kc.Key = part
			} else {
				return kc, fmt.Errorf("unknown modifier: %s", part)
			}
		}
	}

	// A bare key is allowed (the double-press rule guards against accidental
	// triggering), but an empty combo is not.
	if kc.Key == "" && !kc.Ctrl && !kc.Shift && !kc.Alt && !kc.Win {
		return kc, fmt.Errorf("no modifiers or key specified in combo")
	}

	return kc, nil
}
