package config

import (
	"fmt"
	"time"

	"auction-client/internal/pricing"

	"github.com/spf13/viper"
)

type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	API     APIConfig     `mapstructure:"api"`
	Bidding BiddingConfig `mapstructure:"bidding"`
}

type ServerConfig struct {
	Port int    `mapstructure:"port"`
	Host string `mapstructure:"host"`
}

type APIConfig struct {
	BaseURL string        `mapstructure:"base_url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

type BiddingConfig struct {
	TieBreak string `mapstructure:"tie_break"`
	PageSize int    `mapstructure:"page_size"`
}

func Load() (*Config, error) {
	// Set default values
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.host", "0.0.0.0")
	viper.SetDefault("api.base_url", "http://localhost:8080")
	viper.SetDefault("api.timeout", 10*time.Second)
	viper.SetDefault("bidding.tie_break", "earliest")
	viper.SetDefault("bidding.page_size", 10)

	// Configuration file settings
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")

	// Environment variable support
	viper.AutomaticEnv()

	viper.BindEnv("server.port", "SERVER_PORT")
	viper.BindEnv("server.host", "SERVER_HOST")
	viper.BindEnv("api.base_url", "API_BASE_URL")
	viper.BindEnv("api.timeout", "HTTP_TIMEOUT")
	viper.BindEnv("bidding.tie_break", "TIE_BREAK")
	viper.BindEnv("bidding.page_size", "PAGE_SIZE")

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("config: read file: %w", err)
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config: unmarshal: %w", err)
	}
	if cfg.Bidding.TieBreak != "earliest" && cfg.Bidding.TieBreak != "latest" {
		return nil, fmt.Errorf("config: bidding.tie_break must be earliest or latest, got %q", cfg.Bidding.TieBreak)
	}
	return &cfg, nil
}

// TieBreakRule maps the configured tie-break name to the pricing rule.
func (c *Config) TieBreakRule() pricing.TieBreak {
	if c.Bidding.TieBreak == "latest" {
		return pricing.TieBreakLatest
	}
	return pricing.TieBreakEarliest
}

// Addr returns the host:port the reference server listens on.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}
