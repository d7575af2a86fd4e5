package config

import (
	"fmt"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
	"time"
)

type Config struct {
	ServiceName   string
	ServerAddress string

	DBName     string
	DBPassword string
	DBUser     string
	DBPort     string
	DBHost     string

	Env         string
	LogLevel    string
	HTTPTimeout int32

	OpenWeatherBaseURL string
	OpenWeatherAPIKey  string
	ProviderTimeout    time.Duration

	NotificationDuration   time.Duration
	SessionTTL             time.Duration
	SessionCleanupInterval time.Duration
}

func LoadConfig() (*Config, error) {
	v := viper.New()

	v.SetDefault("SERVICE_NAME", "clima")

	v.SetDefault("SERVER_ADDRESS", "0.0.0.0:3000")
	v.SetDefault("DATABASE_PORT", "5432")
	v.SetDefault("HTTP_TIMEOUT", 175)
	v.SetDefault("OPENWEATHER_BASE_URL", "http://api.openweathermap.org")
	v.SetDefault("PROVIDER_TIMEOUT", 0)
	v.SetDefault("NOTIFICATION_DURATION", 3*time.Second)
	v.SetDefault("SESSION_TTL", 30*time.Minute)
	v.SetDefault("SESSION_CLEANUP_INTERVAL", time.Minute)

	v.AutomaticEnv()

	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			log.Warn().Msg("No .env file found, using environment variables only")
		} else {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	} else {
		log.Info().Str("file", v.ConfigFileUsed()).Msg("Config file loaded")
	}

	config := &Config{
		ServiceName:            v.GetString("SERVICE_NAME"),
		ServerAddress:          v.GetString("SERVER_ADDRESS"),
		DBName:                 v.GetString("DATABASE_NAME"),
		DBPassword:             v.GetString("DATABASE_PASSWORD"),
		DBUser:                 v.GetString("DATABASE_USER"),
		DBPort:                 v.GetString("DATABASE_PORT"),
		DBHost:                 v.GetString("DATABASE_HOST"),
		Env:                    v.GetString("ENV"),
		LogLevel:               v.GetString("LOG_LEVEL"),
		HTTPTimeout:            v.GetInt32("HTTP_TIMEOUT"),
		OpenWeatherBaseURL:     v.GetString("OPENWEATHER_BASE_URL"),
		OpenWeatherAPIKey:      v.GetString("OPENWEATHER_API_KEY"),
		ProviderTimeout:        v.GetDuration("PROVIDER_TIMEOUT"),
		NotificationDuration:   v.GetDuration("NOTIFICATION_DURATION"),
		SessionTTL:             v.GetDuration("SESSION_TTL"),
		SessionCleanupInterval: v.GetDuration("SESSION_CLEANUP_INTERVAL"),
	}

	if config.OpenWeatherAPIKey == "" {
		return nil, fmt.Errorf("OPENWEATHER_API_KEY is required")
	}

	if config.NotificationDuration <= 0 {
		return nil, fmt.Errorf("NOTIFICATION_DURATION must be positive, got %s", config.NotificationDuration)
	}

	return config, nil
}

// HTTPTimeoutDuration bounds how long the server waits for request headers.
func (c *Config) HTTPTimeoutDuration() time.Duration {
	return time.Duration(c.HTTPTimeout) * time.Second
}

// DatabaseEnabled reports whether the lookup audit log should be wired.
func (c *Config) DatabaseEnabled() bool {
	return c.DBHost != ""
}
