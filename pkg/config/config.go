package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	// Server
	Port string `mapstructure:"PORT"`
	Env  string `mapstructure:"ENV"`

	// ESPN fantasy league session
	LeagueID int    `mapstructure:"LEAGUE_ID"`
	Season   int    `mapstructure:"SEASON"`
	ESPNS2   string `mapstructure:"ESPN_S2"`
	SWID     string `mapstructure:"SWID"`

	// Redis
	RedisURL string `mapstructure:"REDIS_URL"`

	// CORS
	CorsOrigins []string `mapstructure:"CORS_ORIGINS"`

	// Provider client tuning
	ExternalAPITimeout      time.Duration `mapstructure:"EXTERNAL_API_TIMEOUT"`
	ESPNRateLimit           int           `mapstructure:"ESPN_RATE_LIMIT"`
	CircuitBreakerThreshold int           `mapstructure:"CIRCUIT_BREAKER_THRESHOLD"`

	// Cache
	CacheTTL time.Duration `mapstructure:"CACHE_TTL"`

	// Background refresh
	EnableBackgroundJobs bool   `mapstructure:"ENABLE_BACKGROUND_JOBS"`
	RefreshInterval      string `mapstructure:"REFRESH_INTERVAL"`

	// Bot
	BotCommandPrefix string `mapstructure:"BOT_COMMAND_PREFIX"`
}

func LoadConfig() (*Config, error) {
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")
	viper.AddConfigPath("..")

	// Set defaults
	viper.SetDefault("PORT", "8000")
	viper.SetDefault("ENV", "development")
	viper.SetDefault("LEAGUE_ID", 0)
	viper.SetDefault("SEASON", time.Now().Year())
	viper.SetDefault("ESPN_S2", "")
	viper.SetDefault("SWID", "")
	viper.SetDefault("REDIS_URL", "redis://localhost:6379/0")
	viper.SetDefault("CORS_ORIGINS", "http://localhost:5173,http://localhost:3000")
	viper.SetDefault("EXTERNAL_API_TIMEOUT", "10s")
	viper.SetDefault("ESPN_RATE_LIMIT", 10) // requests per second
	viper.SetDefault("CIRCUIT_BREAKER_THRESHOLD", 5)
	viper.SetDefault("CACHE_TTL", "5m")
	viper.SetDefault("ENABLE_BACKGROUND_JOBS", false)
	viper.SetDefault("REFRESH_INTERVAL", "15m")
	viper.SetDefault("BOT_COMMAND_PREFIX", "!")

	// Read from environment
	viper.AutomaticEnv()

	// Read config file if exists
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	// Parse CORS origins from comma-separated string
	if corsStr := viper.GetString("CORS_ORIGINS"); corsStr != "" {
		config.CorsOrigins = strings.Split(corsStr, ",")
	}

	if config.LeagueID == 0 {
		return nil, fmt.Errorf("LEAGUE_ID is required")
	}

	return &config, nil
}

func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}
