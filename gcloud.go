package main

import (
	"context"
	"fmt"
	"os"

	secretmanager "cloud.google.com/go/secretmanager/apiv1"
	"cloud.google.com/go/secretmanager/apiv1/secretmanagerpb"
)

// loadSecrets overrides the token and interactions key with values from
// Secret Manager when running on Google Cloud. Without GOOGLE_CLOUD_PROJECT
// set it is a no-op and plain environment variables apply.
func (cfg *Config) loadSecrets() error {
	projectID := os.Getenv("GOOGLE_CLOUD_PROJECT")
	if projectID == "" {
		return nil
	}

	ctx := context.Background()
	client, err := secretmanager.NewClient(ctx)
	if err != nil {
		return fmt.Errorf("failed to create secretmanager client: %w", err)
	}
	defer client.Close()

	fetchSecret := func(key string) (string, error) {
		result, err := client.AccessSecretVersion(ctx, &secretmanagerpb.AccessSecretVersionRequest{
			Name: fmt.Sprintf("projects/%s/secrets/%s/versions/latest", projectID, key),
		})
		if err != nil {
			return "", fmt.Errorf("failed to access secret %q: %w", key, err)
		}
		return string(result.GetPayload().GetData()), nil
	}

	if cfg.Token, err = fetchSecret(os.Getenv("TOKEN_SECRET_NAME")); err != nil {
		return err
	}
	if cfg.PubKeyHex, err = fetchSecret(os.Getenv("PUBKEY_SECRET_NAME")); err != nil {
		return err
	}
	return nil
}
