package config

import (
	"fmt"
	"strings"

	"dayflow/core/constants"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Port     int    `mapstructure:"port"`
	LogLevel string `mapstructure:"log_level"`
	Pretty   bool   `mapstructure:"pretty"`
}

// EngineConfig holds scheduling engine tunables
type EngineConfig struct {
	// MaxExpansionYears rejects recurrence expansion windows wider than this.
	MaxExpansionYears int `mapstructure:"max_expansion_years"`
	// SuggestionCap limits how many smart-scheduling suggestions are returned.
	SuggestionCap int `mapstructure:"suggestion_cap"`
	// SlotStepMinutes is the step between candidate slot starts.
	SlotStepMinutes int `mapstructure:"slot_step_minutes"`
}

// RetentionConfig controls the snapshot retention sweep
type RetentionConfig struct {
	Days int    `mapstructure:"days"`
	Cron string `mapstructure:"cron"`
}

// Config is the top-level application configuration
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Engine    EngineConfig    `mapstructure:"engine"`
	Retention RetentionConfig `mapstructure:"retention"`
}

// Load reads configuration from .env (if present), environment variables
// prefixed with DAYFLOW_, and an optional config.yaml in the working directory.
func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	v.SetEnvPrefix("DAYFLOW")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("server.port", constants.DefaultServerPort)
	v.SetDefault("server.log_level", "info")
	v.SetDefault("server.pretty", false)
	v.SetDefault("engine.max_expansion_years", constants.DefaultMaxExpansionYears)
	v.SetDefault("engine.suggestion_cap", constants.DefaultSuggestionCap)
	v.SetDefault("engine.slot_step_minutes", constants.DefaultSlotStepMinutes)
	v.SetDefault("retention.days", constants.DefaultRetentionDays)
	v.SetDefault("retention.cron", constants.DefaultRetentionCron)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &cfg, nil
}
