package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config is the complete bot configuration.
type Config struct {
	Betting BettingConfig `yaml:"betting"`
	Riot    RiotConfig    `yaml:"riot"`
	Storage StorageConfig `yaml:"storage"`
	Discord DiscordConfig `yaml:"discord"`
	Metrics MetricsConfig `yaml:"metrics"`
	Log     LogConfig     `yaml:"log"`
}

// BettingConfig controls markets and the live-game watcher.
type BettingConfig struct {
	Enabled             bool   `yaml:"enabled"`
	AnnounceChannelID   string `yaml:"announce_channel_id"`
	AnnounceRoleID      string `yaml:"announce_role_id"` // mentioned when a market opens
	PollIntervalSeconds int    `yaml:"poll_interval_seconds"`
	DefaultBalance      int64  `yaml:"default_balance"`
	MinStake            int64  `yaml:"min_stake"`
	MaxStake            int64  `yaml:"max_stake"`
	WindowSeconds       int    `yaml:"window_seconds"`
	HistoryLimit        int    `yaml:"history_limit"`
	QueueID             int    `yaml:"queue_id"`
	RecentMatches       int    `yaml:"recent_matches"`
	EnrichDelayMillis   int    `yaml:"enrich_delay_millis"` // spacing of name/rank lookups
}

// RiotConfig holds the match-data provider settings.
type RiotConfig struct {
	APIKey         string `yaml:"api_key"`
	PlatformBase   string `yaml:"platform_base"`
	RegionalBase   string `yaml:"regional_base"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
	DataDragonBase string `yaml:"ddragon_base"`
	Locale         string `yaml:"locale"`
}

// StorageConfig selects the document store.
type StorageConfig struct {
	Driver    string `yaml:"driver"`     // sqlite | file | postgres | redis | memory
	DSN       string `yaml:"dsn"`        // sqlite path, directory, postgres or redis URL
	KeyPrefix string `yaml:"key_prefix"` // redis only
}

// DiscordConfig enables channel announcements when Token is set.
type DiscordConfig struct {
	Token string `yaml:"token"`
}

// MetricsConfig enables the /metrics, /healthz and /logs server when Addr is set.
type MetricsConfig struct {
	Addr string `yaml:"addr"`
}

// LogConfig controls log format and level.
type LogConfig struct {
	Level  string `yaml:"level"`  // debug | info | warn | error
	Format string `yaml:"format"` // text | json
	Ring   int    `yaml:"ring"`   // records kept for /logs
}

// Load reads the YAML file and the .env file if present.
// Environment variables override the YAML values they correspond to.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config.Load: read %q: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("config.Load: parse YAML: %w", err)
	}

	if err := applyEnvOverrides(&cfg); err != nil {
		return nil, fmt.Errorf("config.Load: %w", err)
	}
	setDefaults(&cfg)

	return &cfg, nil
}

// PollInterval returns the watcher cadence.
func (c *Config) PollInterval() time.Duration {
	return time.Duration(c.Betting.PollIntervalSeconds) * time.Second
}

// Window returns how long a market accepts wagers.
func (c *Config) Window() time.Duration {
	return time.Duration(c.Betting.WindowSeconds) * time.Second
}

// EnrichDelay returns the minimum spacing of name/rank lookups.
func (c *Config) EnrichDelay() time.Duration {
	return time.Duration(c.Betting.EnrichDelayMillis) * time.Millisecond
}

// RiotTimeout returns the HTTP timeout for provider calls.
func (c *Config) RiotTimeout() time.Duration {
	return time.Duration(c.Riot.TimeoutSeconds) * time.Second
}

func applyEnvOverrides(cfg *Config) error {
	if v := os.Getenv("RIOT_API_KEY"); v != "" {
		cfg.Riot.APIKey = v
	}
	if v := os.Getenv("DISCORD_TOKEN"); v != "" {
		cfg.Discord.Token = v
	}
	if v := os.Getenv("STORAGE_DRIVER"); v != "" {
		cfg.Storage.Driver = v
	}
	if v := os.Getenv("STORAGE_DSN"); v != "" {
		cfg.Storage.DSN = v
	}
	if v := os.Getenv("METRICS_ADDR"); v != "" {
		cfg.Metrics.Addr = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("LOG_FORMAT"); v != "" {
		cfg.Log.Format = v
	}
	if v := os.Getenv("BETTING_ENABLED"); v != "" {
		on, err := strconv.ParseBool(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("BETTING_ENABLED: %w", err)
		}
		cfg.Betting.Enabled = on
	}
	return nil
}

func setDefaults(cfg *Config) {
	b := &cfg.Betting
	if b.PollIntervalSeconds <= 0 {
		b.PollIntervalSeconds = 60
	}
	if b.DefaultBalance <= 0 {
		b.DefaultBalance = 1000
	}
	if b.MinStake <= 0 {
		b.MinStake = 10
	}
	if b.MaxStake <= 0 {
		b.MaxStake = 10000
	}
	if b.WindowSeconds <= 0 {
		b.WindowSeconds = 180
	}
	if b.HistoryLimit <= 0 {
		b.HistoryLimit = 100
	}
	if b.QueueID == 0 {
		b.QueueID = 420 // ranked solo/duo
	}
	if b.RecentMatches <= 0 {
		b.RecentMatches = 5
	}
	if b.EnrichDelayMillis <= 0 {
		b.EnrichDelayMillis = 1500
	}
	if cfg.Riot.PlatformBase == "" {
		cfg.Riot.PlatformBase = "https://euw1.api.riotgames.com"
	}
	if cfg.Riot.RegionalBase == "" {
		cfg.Riot.RegionalBase = "https://europe.api.riotgames.com"
	}
	if cfg.Riot.TimeoutSeconds <= 0 {
		cfg.Riot.TimeoutSeconds = 10
	}
	if cfg.Riot.DataDragonBase == "" {
		cfg.Riot.DataDragonBase = "https://ddragon.leagueoflegends.com"
	}
	if cfg.Riot.Locale == "" {
		cfg.Riot.Locale = "fr_FR"
	}
	if cfg.Storage.Driver == "" {
		cfg.Storage.Driver = "sqlite"
	}
	if cfg.Storage.DSN == "" {
		cfg.Storage.DSN = defaultDSN(cfg.Storage.Driver)
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "text"
	}
	if cfg.Log.Ring <= 0 {
		cfg.Log.Ring = 30
	}
}

func defaultDSN(driver string) string {
	switch driver {
	case "file":
		return "data"
	case "memory":
		return ""
	default:
		return "soloqbet.db"
	}
}
