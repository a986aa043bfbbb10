// Package config loads decksim settings from defaults, an optional YAML
// file, DECKSIM_ environment variables and command line flags, in increasing
// order of precedence.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/magefree/decksim/internal/game"
)

// EnvPrefix prefixes environment overrides, e.g. DECKSIM_SIMULATION_RUNS.
const EnvPrefix = "DECKSIM"

// Config is the complete configuration.
type Config struct {
	Logging    LoggingConfig    `mapstructure:"logging"`
	Simulation SimulationConfig `mapstructure:"simulation"`
	Deck       DeckConfig       `mapstructure:"deck"`
	CardDB     CardDBConfig     `mapstructure:"carddb"`
	Report     ReportConfig     `mapstructure:"report"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

type SimulationConfig struct {
	Runs            int    `mapstructure:"runs"`
	Turns           int    `mapstructure:"turns"`
	DrawOnFirstTurn bool   `mapstructure:"draw_on_first_turn"`
	Mulligan        string `mapstructure:"mulligan"`
	// Seed zero picks a seed from the clock.
	Seed    int64 `mapstructure:"seed"`
	Workers int   `mapstructure:"workers"`
}

type DeckConfig struct {
	Path string `mapstructure:"path"`
	// Commander designates a commander not marked in the deck list.
	Commander string `mapstructure:"commander"`
}

type CardDBConfig struct {
	CacheDir     string         `mapstructure:"cache_dir"`
	Overrides    string         `mapstructure:"overrides"`
	ScryfallURL  string         `mapstructure:"scryfall_url"`
	RequestDelay time.Duration  `mapstructure:"request_delay"`
	Offline      bool           `mapstructure:"offline"`
	Database     DatabaseConfig `mapstructure:"database"`
}

type DatabaseConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	URL     string `mapstructure:"url"`
}

type ReportConfig struct {
	Format string `mapstructure:"format"`
	// Output is a file path; empty writes to stdout.
	Output string `mapstructure:"output"`
}

var defaults = map[string]any{
	"logging.level":                 "warn",
	"logging.format":                "console",
	"simulation.runs":               10000,
	"simulation.turns":              10,
	"simulation.draw_on_first_turn": false,
	"simulation.mulligan":           "three-lands",
	"simulation.seed":               int64(0),
	"simulation.workers":            0,
	"deck.path":                     "",
	"deck.commander":                "",
	"carddb.cache_dir":              "cards.db",
	"carddb.overrides":              "overrides.yaml",
	"carddb.scryfall_url":           "https://api.scryfall.com",
	"carddb.request_delay":          100 * time.Millisecond,
	"carddb.offline":                false,
	"carddb.database.enabled":       false,
	"carddb.database.url":           "",
	"report.format":                 "text",
	"report.output":                 "",
}

// flag describes a command line flag and the key it overrides.
type flag struct {
	name, key, usage string
}

var flags = []flag{
	{"deck", "deck.path", "deck list file"},
	{"commander", "deck.commander", "commander name, if not marked in the deck list"},
	{"runs", "simulation.runs", "number of games to simulate"},
	{"turns", "simulation.turns", "turns per game"},
	{"draw-on-first-turn", "simulation.draw_on_first_turn", "draw a card on the first turn"},
	{"mulligan", "simulation.mulligan", "mulligan policy: none or three-lands"},
	{"seed", "simulation.seed", "random seed, 0 picks one"},
	{"workers", "simulation.workers", "parallel workers, 0 uses every CPU"},
	{"cache-dir", "carddb.cache_dir", "directory caching card data"},
	{"overrides", "carddb.overrides", "YAML file overriding card abilities"},
	{"scryfall-url", "carddb.scryfall_url", "Scryfall API base URL"},
	{"request-delay", "carddb.request_delay", "delay between Scryfall requests"},
	{"offline", "carddb.offline", "only use cached card data"},
	{"database", "carddb.database.enabled", "also cache card data in PostgreSQL"},
	{"database-url", "carddb.database.url", "PostgreSQL connection URL"},
	{"format", "report.format", "report format: text or json"},
	{"output", "report.output", "write the report to a file"},
	{"log-level", "logging.level", "log level: debug, info, warn or error"},
	{"log-format", "logging.format", "log format: console or json"},
}

// RegisterFlags defines the configuration flags on fs.
func RegisterFlags(fs *pflag.FlagSet) {
	for _, f := range flags {
		switch def := defaults[f.key].(type) {
		case string:
			fs.String(f.name, def, f.usage)
		case bool:
			fs.Bool(f.name, def, f.usage)
		case int:
			fs.Int(f.name, def, f.usage)
		case int64:
			fs.Int64(f.name, def, f.usage)
		case time.Duration:
			fs.Duration(f.name, def, f.usage)
		default:
			panic(fmt.Sprintf("config: no flag type for %s", f.key))
		}
	}
}

// Load builds the configuration. path may be empty to skip the file; fs
// may be nil when there are no flags.
func Load(path string, fs *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	if fs != nil {
		for _, f := range flags {
			if pf := fs.Lookup(f.name); pf != nil {
				if err := v.BindPFlag(f.key, pf); err != nil {
					return nil, fmt.Errorf("bind flag %s: %w", f.name, err)
				}
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects values the simulator cannot work with.
func (c *Config) Validate() error {
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level: unknown level %q", c.Logging.Level)
	}
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format: unknown format %q", c.Logging.Format)
	}
	if c.Simulation.Runs < 1 {
		return fmt.Errorf("simulation.runs must be positive, got %d", c.Simulation.Runs)
	}
	if c.Simulation.Workers < 0 {
		return fmt.Errorf("simulation.workers must not be negative, got %d", c.Simulation.Workers)
	}
	if _, err := c.Settings(); err != nil {
		return err
	}
	if c.Deck.Path == "" {
		return fmt.Errorf("deck.path is required")
	}
	if c.CardDB.RequestDelay < 0 {
		return fmt.Errorf("carddb.request_delay must not be negative")
	}
	if c.CardDB.Database.Enabled && c.CardDB.Database.URL == "" {
		return fmt.Errorf("carddb.database.url is required when the database cache is enabled")
	}
	switch c.Report.Format {
	case "text", "json":
	default:
		return fmt.Errorf("report.format: unknown format %q", c.Report.Format)
	}
	return nil
}

// Settings returns the game settings of the simulation section.
func (c *Config) Settings() (game.Settings, error) {
	mulligan, err := game.ParseMulligan(c.Simulation.Mulligan)
	if err != nil {
		return game.Settings{}, fmt.Errorf("simulation.mulligan: %w", err)
	}
	settings := game.Settings{
		Turns:           c.Simulation.Turns,
		DrawOnFirstTurn: c.Simulation.DrawOnFirstTurn,
		Mulligan:        mulligan,
	}
	if err := settings.Validate(); err != nil {
		return game.Settings{}, fmt.Errorf("simulation: %w", err)
	}
	return settings, nil
}
