package config

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	Store     StoreConfig     `yaml:"store" mapstructure:"store"`
	Anthropic AnthropicConfig `yaml:"anthropic" mapstructure:"anthropic"`
	Stacking  StackingConfig  `yaml:"stacking" mapstructure:"stacking"`
	NearMiss  NearMissConfig  `yaml:"near_miss" mapstructure:"near_miss"`
	Portal    PortalConfig    `yaml:"portal" mapstructure:"portal"`
	Reminder  ReminderConfig  `yaml:"reminder" mapstructure:"reminder"`
	Server    ServerConfig    `yaml:"server" mapstructure:"server"`
	Log       LogConfig       `yaml:"log" mapstructure:"log"`
}

// StoreConfig configures the database backend.
type StoreConfig struct {
	Driver      string `yaml:"driver" mapstructure:"driver"`
	DatabaseURL string `yaml:"database_url" mapstructure:"database_url"`
}

// AnthropicConfig holds Anthropic API settings for the advisor.
type AnthropicConfig struct {
	Key       string `yaml:"key" mapstructure:"key"`
	Model     string `yaml:"model" mapstructure:"model"`
	MaxTokens int64  `yaml:"max_tokens" mapstructure:"max_tokens"`
}

// StackingConfig bounds the stacking plan. The caps are heuristics for plan
// size, not domain rules, so they stay configurable.
type StackingConfig struct {
	MaxPrivate   int `yaml:"max_private" mapstructure:"max_private"`
	MaxCorporate int `yaml:"max_corporate" mapstructure:"max_corporate"`
	MaxCollege   int `yaml:"max_college" mapstructure:"max_college"`
}

// NearMissConfig bounds the "why not me" analysis. MinPct/MaxPct are the
// inclusive match-percentage band; Limit caps advisor fan-out per request.
type NearMissConfig struct {
	MinPct float64 `yaml:"min_pct" mapstructure:"min_pct"`
	MaxPct float64 `yaml:"max_pct" mapstructure:"max_pct"`
	Limit  int     `yaml:"limit" mapstructure:"limit"`
}

// PortalConfig configures the scholarship portal fetcher.
type PortalConfig struct {
	TimeoutSecs    int      `yaml:"timeout_secs" mapstructure:"timeout_secs"`
	MaxRetries     int      `yaml:"max_retries" mapstructure:"max_retries"`
	RequestsPerSec float64  `yaml:"requests_per_sec" mapstructure:"requests_per_sec"`
	UserAgents     []string `yaml:"user_agents" mapstructure:"user_agents"`
}

// ReminderConfig configures the deadline reminder sweep.
type ReminderConfig struct {
	Schedule   string `yaml:"schedule" mapstructure:"schedule"`
	WindowDays int    `yaml:"window_days" mapstructure:"window_days"`
}

// ServerConfig configures the HTTP API server.
type ServerConfig struct {
	Port           int      `yaml:"port" mapstructure:"port"`
	AllowedOrigins []string `yaml:"allowed_origins" mapstructure:"allowed_origins"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("SCHOLAR")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("store.driver", "sqlite")
	v.SetDefault("store.database_url", "scholar.db")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.allowed_origins", []string{"*"})
	v.SetDefault("anthropic.model", "claude-haiku-4-5-20251001")
	v.SetDefault("anthropic.max_tokens", 1024)
	v.SetDefault("stacking.max_private", 3)
	v.SetDefault("stacking.max_corporate", 2)
	v.SetDefault("stacking.max_college", 1)
	v.SetDefault("near_miss.min_pct", 40)
	v.SetDefault("near_miss.max_pct", 79)
	v.SetDefault("near_miss.limit", 5)
	v.SetDefault("portal.timeout_secs", 20)
	v.SetDefault("portal.max_retries", 3)
	v.SetDefault("portal.requests_per_sec", 1)
	v.SetDefault("reminder.schedule", "0 8 * * *")
	v.SetDefault("reminder.window_days", 7)

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
