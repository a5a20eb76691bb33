// Package config loads the threshold knobs the priority, matching, and
// dashboard services use, from defaults overridable by a relief.yaml
// config file and environment variables, with .env loading for local
// development.
package config

import (
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/reliefgrid/coordinator/pkg/application/services/dashboard"
	"github.com/reliefgrid/coordinator/pkg/application/services/matching"
	"github.com/reliefgrid/coordinator/pkg/domain/services/priority"
)

// AgingConfig mirrors priority.AgingThresholds for unmarshalling.
type AgingConfig struct {
	LowToMedium    float64 `mapstructure:"low_to_medium"`
	MediumToHigh   float64 `mapstructure:"medium_to_high"`
	HighToCritical float64 `mapstructure:"high_to_critical"`
}

// Thresholds converts the loaded config into priority.AgingThresholds.
func (a AgingConfig) Thresholds() priority.AgingThresholds {
	return priority.AgingThresholds{
		LowToMedium:    a.LowToMedium,
		MediumToHigh:   a.MediumToHigh,
		HighToCritical: a.HighToCritical,
	}
}

// MatchingConfig mirrors matching.Config for unmarshalling.
type MatchingConfig struct {
	MaxProximityDistanceKm       float64 `mapstructure:"max_proximity_distance_km"`
	ProximityWeight              float64 `mapstructure:"proximity_weight"`
	CategoryMatchWeight          float64 `mapstructure:"category_match_weight"`
	AllowPartialFulfillment      bool    `mapstructure:"allow_partial_fulfillment"`
	MinPartialFulfillmentPercent float64 `mapstructure:"min_partial_fulfillment_percent"`
}

// ToMatchingConfig converts the loaded config into matching.Config.
func (m MatchingConfig) ToMatchingConfig() matching.Config {
	return matching.Config{
		MaxProximityDistanceKm:       m.MaxProximityDistanceKm,
		ProximityWeight:              m.ProximityWeight,
		CategoryMatchWeight:          m.CategoryMatchWeight,
		AllowPartialFulfillment:      m.AllowPartialFulfillment,
		MinPartialFulfillmentPercent: m.MinPartialFulfillmentPercent,
	}
}

// PanicConfig mirrors dashboard.PanicConfig for unmarshalling.
type PanicConfig struct {
	ThresholdHours float64 `mapstructure:"threshold_hours"`
}

// ToPanicConfig converts the loaded config into dashboard.PanicConfig.
func (p PanicConfig) ToPanicConfig() dashboard.PanicConfig {
	return dashboard.PanicConfig{ThresholdHours: p.ThresholdHours}
}

// LoggingConfig controls the logging bootstrap.
type LoggingConfig struct {
	Verbose bool   `mapstructure:"verbose"`
	Dir     string `mapstructure:"dir"`
}

// Config is the complete coordinator configuration.
type Config struct {
	Aging    AgingConfig    `mapstructure:"aging"`
	Matching MatchingConfig `mapstructure:"matching"`
	Panic    PanicConfig    `mapstructure:"panic"`
	Logging  LoggingConfig  `mapstructure:"logging"`
}

// Load reads configuration from (in ascending priority) defaults,
// relief.yaml (searched in the current directory, ./configs, and
// /etc/reliefgrid), a .env file, and RELIEF_-prefixed environment
// variables. A missing config file is not an error.
func Load(configPath string) (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("relief")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./configs")
		v.AddConfigPath("/etc/reliefgrid")
	}

	v.SetEnvPrefix("RELIEF")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	agingDefaults := priority.DefaultAgingThresholds()
	v.SetDefault("aging.low_to_medium", agingDefaults.LowToMedium)
	v.SetDefault("aging.medium_to_high", agingDefaults.MediumToHigh)
	v.SetDefault("aging.high_to_critical", agingDefaults.HighToCritical)

	matchingDefaults := matching.DefaultConfig()
	v.SetDefault("matching.max_proximity_distance_km", matchingDefaults.MaxProximityDistanceKm)
	v.SetDefault("matching.proximity_weight", matchingDefaults.ProximityWeight)
	v.SetDefault("matching.category_match_weight", matchingDefaults.CategoryMatchWeight)
	v.SetDefault("matching.allow_partial_fulfillment", matchingDefaults.AllowPartialFulfillment)
	v.SetDefault("matching.min_partial_fulfillment_percent", matchingDefaults.MinPartialFulfillmentPercent)

	panicDefaults := dashboard.DefaultPanicConfig()
	v.SetDefault("panic.threshold_hours", panicDefaults.ThresholdHours)

	v.SetDefault("logging.verbose", false)
	v.SetDefault("logging.dir", "logs")
}

func validate(cfg *Config) error {
	if cfg.Aging.LowToMedium <= 0 || cfg.Aging.MediumToHigh <= 0 || cfg.Aging.HighToCritical <= 0 {
		return fmt.Errorf("aging thresholds must be positive")
	}
	if cfg.Matching.MaxProximityDistanceKm <= 0 {
		return fmt.Errorf("matching.max_proximity_distance_km must be positive")
	}
	if cfg.Matching.MinPartialFulfillmentPercent < 0 || cfg.Matching.MinPartialFulfillmentPercent > 100 {
		return fmt.Errorf("matching.min_partial_fulfillment_percent must be between 0 and 100")
	}
	if cfg.Panic.ThresholdHours <= 0 {
		return fmt.Errorf("panic.threshold_hours must be positive")
	}
	return nil
}
