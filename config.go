package main

import (
	"context"
	"crypto/ed25519"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

type Config struct {
	BotToken      string `env:"DISCORD_BOT_TOKEN"`
	ApplicationID string `env:"DISCORD_APPLICATION_ID"`
	PublicKeyHex  string `env:"DISCORD_PUBLIC_KEY"`
	// GuildID scopes command registration to one guild; empty registers globally.
	GuildID string `env:"DISCORD_GUILD_ID"`

	Port            string        `env:"PORT" envDefault:"8080"`
	LogLevel        string        `env:"LOG_LEVEL" envDefault:"info"`
	DBDriver        string        `env:"DB_DRIVER" envDefault:"sqlite"`
	DBDSN           string        `env:"DB_DSN" envDefault:"rankings.db"`
	StoreTimeout    time.Duration `env:"STORE_TIMEOUT" envDefault:"3s"`
	RegisterTimeout time.Duration `env:"REGISTER_TIMEOUT" envDefault:"10s"`

	GoogleCloudProject string `env:"GOOGLE_CLOUD_PROJECT"`
	TokenSecretName    string `env:"TOKEN_SECRET_NAME"`
	PubKeySecretName   string `env:"PUBKEY_SECRET_NAME"`

	PublicKey ed25519.PublicKey `env:"-"`
}

// ConfigError lists the settings that are missing or unusable.
type ConfigError struct {
	Missing []string
	Err     error
}

func (e *ConfigError) Error() string {
	var parts []string
	if len(e.Missing) > 0 {
		parts = append(parts, "missing "+strings.Join(e.Missing, ", "))
	}
	if e.Err != nil {
		parts = append(parts, e.Err.Error())
	}
	return "invalid configuration: " + strings.Join(parts, "; ")
}

func (e *ConfigError) Unwrap() error { return e.Err }

// loadConfig reads an optional .env file, then the environment, then secrets
// from Google Secret Manager when running in a Google Cloud project.
func loadConfig(ctx context.Context, openSecrets func(context.Context) (secretAccessor, error)) (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("no .env file found, using process environment")
	}

	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return nil, &ConfigError{Err: fmt.Errorf("parsing environment: %w", err)}
	}

	if cfg.GoogleCloudProject != "" {
		secrets, err := openSecrets(ctx)
		if err != nil {
			return nil, &ConfigError{Err: err}
		}
		defer secrets.Close()

		if err := loadSecrets(ctx, secrets, &cfg); err != nil {
			return nil, &ConfigError{Err: err}
		}
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	var missing []string
	if c.BotToken == "" {
		missing = append(missing, "DISCORD_BOT_TOKEN")
	}
	if c.ApplicationID == "" {
		missing = append(missing, "DISCORD_APPLICATION_ID")
	}
	if c.PublicKeyHex == "" {
		missing = append(missing, "DISCORD_PUBLIC_KEY")
	}
	if len(missing) > 0 {
		return &ConfigError{Missing: missing}
	}

	pk, err := parsePubKey(c.PublicKeyHex)
	if err != nil {
		return &ConfigError{Err: err}
	}
	c.PublicKey = pk
	return nil
}

func parsePubKey(data string) (ed25519.PublicKey, error) {
	pk, err := hex.DecodeString(strings.TrimSpace(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode public key: %w", err)
	} else if len(pk) != ed25519.PublicKeySize {
		return nil, errors.New("invalid public key: invalid length")
	}
	return pk, nil
}
