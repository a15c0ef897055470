// Package config loads process settings and opens the database connection.
package config

import (
	"fmt"
	"log"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

const (
	StoreMongo  = "mongo"
	StoreMemory = "memory"
)

type Config struct {
	Port  string `env:"PORT" envDefault:"8080"`
	Store string `env:"STORE" envDefault:"mongo"`

	MongoURI string `env:"MONGO_URI"`
	DBName   string `env:"DB_NAME" envDefault:"qa"`

	JWTSecret         string `env:"JWT_SECRET"`
	AccessTokenHours  int    `env:"ACCESS_TOKEN_EXPIRY_HOUR" envDefault:"24"`
	RefreshTokenHours int    `env:"REFRESH_TOKEN_EXPIRY_HOUR" envDefault:"168"`

	RedisAddr     string `env:"REDIS_ADDR"`
	RedisPassword string `env:"REDIS_PASSWORD"`
	RedisDB       int    `env:"REDIS_DB" envDefault:"0"`
	RedisChannel  string `env:"REDIS_CHANNEL" envDefault:"qa:events"`

	SMTPHost     string `env:"SMTP_HOST"`
	SMTPPort     int    `env:"SMTP_PORT" envDefault:"587"`
	SMTPEmail    string `env:"SMTP_EMAIL"`
	SMTPPassword string `env:"SMTP_PASSWORD"`
}

// Load reads .env when present and then the process environment.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("config: .env file not found, using process environment")
	}
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, cfg.Validate()
}

func (c Config) Validate() error {
	switch c.Store {
	case StoreMongo:
		if c.MongoURI == "" {
			return fmt.Errorf("MONGO_URI is required when STORE=%s", StoreMongo)
		}
	case StoreMemory:
	default:
		return fmt.Errorf("unknown STORE %q", c.Store)
	}
	if c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}
	if c.AccessTokenHours <= 0 {
		return fmt.Errorf("ACCESS_TOKEN_EXPIRY_HOUR must be positive")
	}
	return nil
}

func (c Config) AccessTTL() time.Duration {
	return time.Duration(c.AccessTokenHours) * time.Hour
}

func (c Config) RefreshTTL() time.Duration {
	return time.Duration(c.RefreshTokenHours) * time.Hour
}

// MailEnabled reports whether enough SMTP settings are present to send mail.
func (c Config) MailEnabled() bool {
	return c.SMTPHost != "" && c.SMTPEmail != ""
}
