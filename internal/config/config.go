package config

import (
	"errors"
	"os"
	"path/filepath"

	toml "github.com/pelletier/go-toml/v2"
)

const (
	DefaultConfigFileName = "config.toml"
	DefaultDBName         = "tracker.db"
)

type Keymap struct {
	Quit       string `toml:"quit"`
	Add        string `toml:"add"`
	Up         string `toml:"up"`
	Down       string `toml:"down"`
	Toggle     string `toml:"toggle"`
	Exempt     string `toml:"exempt"`
	Delete     string `toml:"delete"`
	Edit       string `toml:"edit"`
	Categories string `toml:"categories"`
	History    string `toml:"history"`
	Confirm    string `toml:"confirm"`
	Cancel     string `toml:"cancel"`
	PrevDay    string `toml:"prev_day"`
	NextDay    string `toml:"next_day"`
	PrevMonth  string `toml:"prev_month"`
	NextMonth  string `toml:"next_month"`
	Today      string `toml:"today"`
}

type Config struct {
	DBPath string `toml:"db_path"`
	Keys   Keymap `toml:"keys"`
}

// ResolveConfigPath places the config next to the user's other app
// configs when XDG-style directories are available, falling back to the
// working directory.
func ResolveConfigPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return DefaultConfigFileName
	}
	return filepath.Join(dir, "daily-tasks-tracker", DefaultConfigFileName)
}

func LoadOrCreate(path string) (Config, error) {
	cfg := defaultConfig()
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		if err := write(path, cfg); err != nil {
			return cfg, err
		}
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	if cfg.DBPath == "" {
		cfg.DBPath = defaultDBPath()
	}
	return cfg, nil
}

func write(path string, cfg Config) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	data, err := toml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func defaultDBPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return DefaultDBName
	}
	return filepath.Join(dir, "daily-tasks-tracker", DefaultDBName)
}

func defaultConfig() Config {
	return Config{
		DBPath: defaultDBPath(),
		Keys: Keymap{
			Quit:       "q",
			Add:        "a",
			Up:         "k",
			Down:       "j",
			Toggle:     " ",
			Exempt:     "x",
			Delete:     "d",
			Edit:       "e",
			Categories: "c",
			History:    "tab",
			Confirm:    "enter",
			Cancel:     "esc",
			PrevDay:    "[",
			NextDay:    "]",
			PrevMonth:  "h",
			NextMonth:  "l",
			Today:      "t",
		},
	}
}
