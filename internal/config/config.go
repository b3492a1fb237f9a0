package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"
)

var ErrInvalidConfig = errors.New("invalid config")

// Config holds all configuration for the application
type Config struct {
	Board  BoardConfig  `mapstructure:"board"`
	Search SearchConfig `mapstructure:"search"`
	Match  MatchConfig  `mapstructure:"match"`
	Log    LogConfig    `mapstructure:"log"`
}

// BoardConfig holds board dimensions and the winning run length
type BoardConfig struct {
	Rows      int `mapstructure:"rows"`
	Cols      int `mapstructure:"cols"`
	RunLength int `mapstructure:"run_length"`
}

// SearchConfig holds game tree search settings
type SearchConfig struct {
	Depth          int           `mapstructure:"depth"`
	MaxNodes       int           `mapstructure:"max_nodes"`
	ScoreDiagonals bool          `mapstructure:"score_diagonals"`
	Weights        WeightsConfig `mapstructure:"weights"`
}

// WeightsConfig holds the heuristic window weights
type WeightsConfig struct {
	Win           int `mapstructure:"win"`
	BlockedThreat int `mapstructure:"blocked_threat"`
	NearWin       int `mapstructure:"near_win"`
	Two           int `mapstructure:"two"`
}

// MatchConfig holds match setup
type MatchConfig struct {
	First         string `mapstructure:"first"`
	HumanPlayer   string `mapstructure:"human_player"` // A, B or none
	RandomOpening int    `mapstructure:"random_opening"`
	Color         bool   `mapstructure:"color"`
}

// LogConfig holds logging settings
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

var (
	// Global config instance
	cfg *Config
	v   *viper.Viper
	mu  sync.RWMutex

	// settings merged by LoadEnvironmentConfig, re-applied on file reloads
	overlay map[string]interface{}
)

// setViperDefaults sets all default values using Viper's SetDefault
func setViperDefaults(v *viper.Viper) {
	// Board defaults
	v.SetDefault("board.rows", 6)
	v.SetDefault("board.cols", 7)
	v.SetDefault("board.run_length", 4)

	// Search defaults
	v.SetDefault("search.depth", 6)
	v.SetDefault("search.max_nodes", 2_000_000)
	v.SetDefault("search.score_diagonals", true)
	v.SetDefault("search.weights.win", 10)
	v.SetDefault("search.weights.blocked_threat", 5)
	v.SetDefault("search.weights.near_win", 4)
	v.SetDefault("search.weights.two", 3)

	// Match defaults
	v.SetDefault("match.first", "A")
	v.SetDefault("match.human_player", "B")
	v.SetDefault("match.random_opening", 0)
	v.SetDefault("match.color", true)

	// Log defaults
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
}

// Init initializes the configuration
func Init(configPath string) error {
	mu.Lock()
	defer mu.Unlock()

	v = viper.New()
	overlay = nil
	setViperDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		// Default config locations
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
		v.AddConfigPath("/etc/connectr")
	}

	v.SetEnvPrefix("CONNECTR")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configPath == "" && !errors.As(err, &notFound) {
			return fmt.Errorf("error reading config file: %w", err)
		}
		// a missing file falls back to defaults
	}

	loaded := &Config{}
	if err := v.Unmarshal(loaded); err != nil {
		return fmt.Errorf("unable to decode config into struct: %w", err)
	}
	if err := Validate(loaded); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}
	cfg = loaded
	return nil
}

// Get returns the global config instance
func Get() *Config {
	mu.RLock()
	c := cfg
	mu.RUnlock()
	if c == nil {
		// Initialize with defaults if not already initialized
		if err := Init(""); err != nil {
			panic("failed to initialize config with defaults: " + err.Error())
		}
		mu.RLock()
		c = cfg
		mu.RUnlock()
	}
	return c
}

// LoadEnvironmentConfig merges config.<env>.yaml over the loaded config.
// The file is looked up next to the loaded config file, or in the working
// directory when none was found. A missing file is not an error.
func LoadEnvironmentConfig(env string) error {
	if env == "" {
		return nil
	}
	mu.Lock()
	defer mu.Unlock()

	envFile := fmt.Sprintf("config.%s.yaml", env)
	if base := v.ConfigFileUsed(); base != "" {
		envFile = filepath.Join(filepath.Dir(base), envFile)
	}
	if _, err := os.Stat(envFile); errors.Is(err, fs.ErrNotExist) {
		return nil
	}

	ev := viper.New()
	ev.SetConfigFile(envFile)
	if err := ev.ReadInConfig(); err != nil {
		return fmt.Errorf("error reading environment config %s: %w", envFile, err)
	}
	settings := ev.AllSettings()
	if err := v.MergeConfigMap(settings); err != nil {
		return fmt.Errorf("error merging environment config %s: %w", envFile, err)
	}
	if err := reload(); err != nil {
		return fmt.Errorf("environment config %s: %w", envFile, err)
	}
	overlay = settings
	return nil
}

// Set allows runtime config updates. Values that fail validation are
// rejected and the previous value is restored.
func Set(key string, value interface{}) error {
	mu.Lock()
	defer mu.Unlock()

	previous := v.Get(key)
	v.Set(key, value)
	if err := reload(); err != nil {
		v.Set(key, previous)
		return err
	}
	return nil
}

// reload re-reads viper into a fresh Config. Callers hold mu.
func reload() error {
	next := &Config{}
	if err := v.Unmarshal(next); err != nil {
		return fmt.Errorf("unable to decode config into struct: %w", err)
	}
	if err := Validate(next); err != nil {
		return err
	}
	cfg = next
	return nil
}

// ConfigFilePath returns the path of the loaded config file, or "" when
// running on defaults.
func ConfigFilePath() string {
	mu.RLock()
	defer mu.RUnlock()
	if v == nil {
		return ""
	}
	return v.ConfigFileUsed()
}

// WatchConfig enables hot-reloading of the config file. onChange receives
// the new config; a changed file that fails validation is logged and the
// previous config stays in effect.
func WatchConfig(logger zerolog.Logger, onChange func(*Config)) {
	v.OnConfigChange(func(e fsnotify.Event) {
		mu.Lock()
		var err error
		if overlay != nil {
			err = v.MergeConfigMap(overlay)
		}
		if err == nil {
			err = reload()
		}
		next := cfg
		mu.Unlock()

		if err != nil {
			logger.Warn().Err(err).Str("file", e.Name).Msg("Ignoring invalid config change")
			return
		}
		logger.Info().Str("file", e.Name).Str("op", e.Op.String()).Msg("Config reloaded")
		if onChange != nil {
			onChange(next)
		}
	})
	v.WatchConfig()
}

// Validate validates the configuration values
func Validate(c *Config) error {
	// Board
	if c.Board.Rows <= 0 || c.Board.Cols <= 0 {
		return fmt.Errorf("%w: board dimensions must be positive", ErrInvalidConfig)
	}
	if c.Board.RunLength < 1 || c.Board.RunLength > min(c.Board.Rows, c.Board.Cols) {
		return fmt.Errorf("%w: board.run_length must be between 1 and %d", ErrInvalidConfig, min(c.Board.Rows, c.Board.Cols))
	}

	// Search
	if c.Search.Depth < 1 {
		return fmt.Errorf("%w: search.depth must be at least 1", ErrInvalidConfig)
	}
	if c.Search.MaxNodes < 0 {
		return fmt.Errorf("%w: search.max_nodes must be non-negative", ErrInvalidConfig)
	}
	w := c.Search.Weights
	if w.Two <= 0 || w.NearWin <= w.Two || w.BlockedThreat <= w.Two ||
		w.Win <= w.NearWin || w.Win <= w.BlockedThreat {
		return fmt.Errorf("%w: search.weights must satisfy win > near_win, blocked_threat > two > 0", ErrInvalidConfig)
	}

	// Match
	if first, err := ParsePlayerName(c.Match.First); err != nil || first == "none" {
		return fmt.Errorf("%w: match.first must be A or B", ErrInvalidConfig)
	}
	if _, err := ParsePlayerName(c.Match.HumanPlayer); err != nil {
		return fmt.Errorf("%w: match.human_player must be A, B or none", ErrInvalidConfig)
	}
	if c.Match.RandomOpening < 0 {
		return fmt.Errorf("%w: match.random_opening must be non-negative", ErrInvalidConfig)
	}

	// Log
	if _, err := zerolog.ParseLevel(strings.ToLower(c.Log.Level)); err != nil {
		return fmt.Errorf("%w: log.level %q: %w", ErrInvalidConfig, c.Log.Level, err)
	}
	switch c.Log.Format {
	case "console", "json":
	default:
		return fmt.Errorf("%w: log.format must be console or json", ErrInvalidConfig)
	}
	return nil
}

// ParsePlayerName normalizes a player setting to "A", "B" or "none".
func ParsePlayerName(s string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "a":
		return "A", nil
	case "b":
		return "B", nil
	case "none", "":
		return "none", nil
	}
	return "", fmt.Errorf("%w: unknown player %q", ErrInvalidConfig, s)
}
