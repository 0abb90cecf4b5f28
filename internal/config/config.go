package config

import (
	"log"

	"github.com/spf13/viper"
)

type Config struct {
	Port        string `mapstructure:"PORT"`
	DatabaseURL string `mapstructure:"DATABASE_URL"`
	JWTSecret   string `mapstructure:"JWT_SECRET"`
	FrontendURL string `mapstructure:"FRONTEND_URL"`

	RedisAddr     string `mapstructure:"REDIS_ADDR"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`

	// SMTP (one-time login codes)
	SMTPHost string `mapstructure:"SMTP_HOST"`
	SMTPPort string `mapstructure:"SMTP_PORT"`
	SMTPUser string `mapstructure:"SMTP_USER"`
	SMTPPass string `mapstructure:"SMTP_PASS"`
	SMTPFrom string `mapstructure:"SMTP_FROM"`

	// Skip credits a fresh (or reset) user starts with.
	DefaultSkipBalance int `mapstructure:"DEFAULT_SKIP_BALANCE"`
	// Skip credits a user is left with after their streak is blocked.
	BlockedSkipBalance int `mapstructure:"BLOCKED_SKIP_BALANCE"`

	// Auth-code lifetime and resend cooldown, in seconds.
	AuthCodeTTL      int `mapstructure:"AUTH_CODE_TTL"`
	AuthCodeCooldown int `mapstructure:"AUTH_CODE_COOLDOWN"`
}

var AppConfig *Config

func LoadConfig() {
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	viper.SetDefault("DEFAULT_SKIP_BALANCE", 5)
	viper.SetDefault("BLOCKED_SKIP_BALANCE", 0)
	viper.SetDefault("AUTH_CODE_TTL", 600)
	viper.SetDefault("AUTH_CODE_COOLDOWN", 60)

	if err := viper.ReadInConfig(); err != nil {
		log.Println("No .env file found, relying on environment variables")
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("Unable to decode config: %v", err)
	}
}
