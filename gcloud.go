package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	secretmanager "cloud.google.com/go/secretmanager/apiv1"
	"cloud.google.com/go/secretmanager/apiv1/secretmanagerpb"
	"github.com/googleapis/gax-go/v2"
	"github.com/rs/zerolog/log"
)

const secretTimeout = 10 * time.Second

// secretAccessor is the part of the Secret Manager client the config needs.
type secretAccessor interface {
	AccessSecretVersion(ctx context.Context, req *secretmanagerpb.AccessSecretVersionRequest, opts ...gax.CallOption) (*secretmanagerpb.AccessSecretVersionResponse, error)
	Close() error
}

func newSecretAccessor(ctx context.Context) (secretAccessor, error) {
	client, err := secretmanager.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("creating secret manager client: %w", err)
	}
	return client, nil
}

// loadSecrets overrides the bot token and public key with the latest versions
// of the named secrets. Unnamed secrets keep their environment value.
func loadSecrets(ctx context.Context, client secretAccessor, cfg *Config) error {
	ctx, cancel := context.WithTimeout(ctx, secretTimeout)
	defer cancel()

	fetchSecret := func(key string) (string, error) {
		accessRequest := &secretmanagerpb.AccessSecretVersionRequest{
			Name: fmt.Sprintf("projects/%s/secrets/%s/versions/latest", cfg.GoogleCloudProject, key),
		}
		result, err := client.AccessSecretVersion(ctx, accessRequest)
		if err != nil {
			return "", fmt.Errorf("accessing secret %s: %w", key, err)
		}
		return strings.TrimSpace(string(result.GetPayload().GetData())), nil
	}

	if cfg.TokenSecretName != "" {
		token, err := fetchSecret(cfg.TokenSecretName)
		if err != nil {
			return err
		}
		cfg.BotToken = token
		log.Info().Str("secret", cfg.TokenSecretName).Msg("loaded bot token from secret manager")
	}

	if cfg.PubKeySecretName != "" {
		pubKeyHex, err := fetchSecret(cfg.PubKeySecretName)
		if err != nil {
			return err
		}
		cfg.PublicKeyHex = pubKeyHex
		log.Info().Str("secret", cfg.PubKeySecretName).Msg("loaded public key from secret manager")
	}

	return nil
}
