/**
 * @description
 * This package handles the configuration management for the account service.
 * It uses the Viper library to read settings from environment variables or an
 * optional .env file.
 *
 * @dependencies
 * - github.com/spf13/viper: For configuration management.
 */
package config

import (
	"log"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all the configuration variables for the account service.
type Config struct {
	ServerPort         string `mapstructure:"SERVER_PORT"`
	DatabaseURL        string `mapstructure:"DATABASE_URL"`
	RabbitMQURL        string `mapstructure:"RABBITMQ_URL"`
	EventExchange      string `mapstructure:"EVENT_EXCHANGE"`
	CORSAllowedOrigins string `mapstructure:"CORS_ALLOWED_ORIGINS"`
	WithdrawMaxRetries int    `mapstructure:"WITHDRAW_MAX_RETRIES"`
	RateLimitPerMinute int    `mapstructure:"RATE_LIMIT_PER_MINUTE"`
}

// LoadConfig reads configuration from environment variables and the optional
// .env file in the given path.
func LoadConfig(path string) (*Config, error) {
	viper.AddConfigPath(path)
	viper.SetConfigName(".env")
	viper.SetConfigType("env")

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Set default values
	viper.SetDefault("SERVER_PORT", "5000")
	viper.SetDefault("EVENT_EXCHANGE", "account_events")
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "*")
	viper.SetDefault("WITHDRAW_MAX_RETRIES", 5)
	viper.SetDefault("RATE_LIMIT_PER_MINUTE", 120)

	// Bind envs explicitly so containers pick them up reliably
	_ = viper.BindEnv("SERVER_PORT")
	_ = viper.BindEnv("DATABASE_URL")
	_ = viper.BindEnv("RABBITMQ_URL")
	_ = viper.BindEnv("EVENT_EXCHANGE")
	_ = viper.BindEnv("CORS_ALLOWED_ORIGINS")
	_ = viper.BindEnv("WITHDRAW_MAX_RETRIES")
	_ = viper.BindEnv("RATE_LIMIT_PER_MINUTE")

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			log.Printf("Warning: Error reading config file: %s", err)
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, err
	}

	return &config, nil
}
