package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/cypherlabdev/fight-odds-engine/internal/models"
)

// Config holds all configuration for fight-odds-engine
type Config struct {
	Server  ServerConfig
	Kafka   KafkaConfig
	Redis   RedisConfig
	Engine  EngineConfig
	Filter  FilterConfig
	Logging LoggingConfig
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Port         int           `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
}

// KafkaConfig holds Kafka configuration
type KafkaConfig struct {
	Brokers []string `mapstructure:"brokers"`
	Topic   string   `mapstructure:"topic"` // Topic to consume from (fight_odds_snapshots)
	GroupID string   `mapstructure:"group_id"`
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	Addr     string        `mapstructure:"addr"`
	Password string        `mapstructure:"password"`
	DB       int           `mapstructure:"db"`
	TTL      time.Duration `mapstructure:"ttl"`
}

// EngineConfig holds feature extraction thresholds
type EngineConfig struct {
	SteamMoveThresholdPct       float64       `mapstructure:"steam_move_threshold_pct"`       // Steam move trigger (5.0 = 5%)
	SignificantMoveThresholdPct float64       `mapstructure:"significant_move_threshold_pct"` // Significant move floor (2.0 = 2%)
	SharpBookmakers             []string      `mapstructure:"sharp_bookmakers"`
	PublicBookmakers            []string      `mapstructure:"public_bookmakers"`
	VolumeSpikeFactor           float64       `mapstructure:"volume_spike_factor"`
	ArbitrageMinProfitPct       float64       `mapstructure:"arbitrage_min_profit_pct"` // Minimum profit to report (1.0 = 1%)
	SteamMoveWindow             time.Duration `mapstructure:"steam_move_window"`        // Max gap between steam quotes
	ArbitrageExpiryWindow       time.Duration `mapstructure:"arbitrage_expiry_window"`  // Opportunity validity horizon
	QuoteFreshnessWindow        time.Duration `mapstructure:"quote_freshness_window"`   // Quote age before stale-risk flag
	ThinMarginPct               float64       `mapstructure:"thin_margin_pct"`          // Profit below this flags thin-margin risk
}

// FilterConfig holds sportsbook selection rules
type FilterConfig struct {
	Include  []string `mapstructure:"include"`
	Exclude  []string `mapstructure:"exclude"`
	Priority []string `mapstructure:"priority"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string `mapstructure:"level"`  // debug, info, warn, error
	Format string `mapstructure:"format"` // json, console
}

// LoadConfig loads configuration from file and environment variables
func LoadConfig(configPath string) (*Config, error) {
	v := viper.New()

	defaults := models.DefaultFeatureConfig()

	// Set defaults
	v.SetDefault("server.port", 8082)
	v.SetDefault("server.read_timeout", 30*time.Second)
	v.SetDefault("server.write_timeout", 30*time.Second)

	v.SetDefault("kafka.brokers", []string{"localhost:9092"})
	v.SetDefault("kafka.topic", "fight_odds_snapshots")
	v.SetDefault("kafka.group_id", "fight-odds-engine")

	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.ttl", 15*time.Minute)

	v.SetDefault("engine.steam_move_threshold_pct", defaults.SteamMoveThresholdPct)
	v.SetDefault("engine.significant_move_threshold_pct", defaults.SignificantMoveThresholdPct)
	v.SetDefault("engine.sharp_bookmakers", defaults.SharpBookmakers)
	v.SetDefault("engine.public_bookmakers", defaults.PublicBookmakers)
	v.SetDefault("engine.volume_spike_factor", defaults.VolumeSpikeFactor)
	v.SetDefault("engine.arbitrage_min_profit_pct", defaults.ArbitrageMinProfitPct)
	v.SetDefault("engine.steam_move_window", defaults.SteamMoveWindow)
	v.SetDefault("engine.arbitrage_expiry_window", defaults.ArbitrageExpiryWindow)
	v.SetDefault("engine.quote_freshness_window", defaults.QuoteFreshnessWindow)
	v.SetDefault("engine.thin_margin_pct", defaults.ThinMarginPct)

	v.SetDefault("filter.include", []string{})
	v.SetDefault("filter.exclude", []string{})
	v.SetDefault("filter.priority", []string{})

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")

	// Read config file if provided
	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	// Override with environment variables
	v.SetEnvPrefix("FIGHT_ODDS")
	v.AutomaticEnv()
	// Replace . with _ for environment variables
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Unmarshal to struct
	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &config, nil
}

// ToFeatureConfig converts config to engine feature parameters
func (c *EngineConfig) ToFeatureConfig() models.FeatureConfig {
	return models.FeatureConfig{
		SteamMoveThresholdPct:       c.SteamMoveThresholdPct,
		SignificantMoveThresholdPct: c.SignificantMoveThresholdPct,
		SharpBookmakers:             c.SharpBookmakers,
		PublicBookmakers:            c.PublicBookmakers,
		VolumeSpikeFactor:           c.VolumeSpikeFactor,
		ArbitrageMinProfitPct:       c.ArbitrageMinProfitPct,
		SteamMoveWindow:             c.SteamMoveWindow,
		ArbitrageExpiryWindow:       c.ArbitrageExpiryWindow,
		QuoteFreshnessWindow:        c.QuoteFreshnessWindow,
		ThinMarginPct:               c.ThinMarginPct,
	}
}

// ToFilterConfig converts config to a sportsbook filter, nil when no rule is
// set so the engine skips filtering entirely.
func (c *FilterConfig) ToFilterConfig() *models.SportsbookFilterConfig {
	if len(c.Include) == 0 && len(c.Exclude) == 0 && len(c.Priority) == 0 {
		return nil
	}
	return &models.SportsbookFilterConfig{
		Include:  c.Include,
		Exclude:  c.Exclude,
		Priority: c.Priority,
	}
}
