package secrets

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
)

// API is the slice of the Secrets Manager client this package uses.
type API interface {
	GetSecretValue(ctx context.Context, params *secretsmanager.GetSecretValueInput, optFns ...func(*secretsmanager.Options)) (*secretsmanager.GetSecretValueOutput, error)
}

// Cache resolves one credential from Secrets Manager and holds it for the
// life of the process. A successful fetch happens at most once; a failed
// fetch is not cached and is retried on the next call. The cached value is
// immutable, so concurrent first calls racing on the fetch are harmless,
// but the mutex keeps it to one.
type Cache struct {
	api      API
	secretID string
	jsonKey  string

	mu    sync.Mutex
	value string
}

// NewCache creates a credential cache. secretID names the secret; jsonKey
// names the field inside the secret's JSON blob that holds the credential.
func NewCache(api API, secretID, jsonKey string) *Cache {
	return &Cache{api: api, secretID: secretID, jsonKey: jsonKey}
}

// APIKey returns the cached credential, fetching it on first use.
func (c *Cache) APIKey(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.value != "" {
		return c.value, nil
	}

	out, err := c.api.GetSecretValue(ctx, &secretsmanager.GetSecretValueInput{
		SecretId: aws.String(c.secretID),
	})
	if err != nil {
		return "", fmt.Errorf("fetching secret %s: %w", c.secretID, err)
	}
	if out.SecretString == nil {
		return "", fmt.Errorf("secret %s has no string value", c.secretID)
	}

	var blob map[string]string
	if err := json.Unmarshal([]byte(*out.SecretString), &blob); err != nil {
		return "", fmt.Errorf("parsing secret %s: %w", c.secretID, err)
	}

	key, ok := blob[c.jsonKey]
	if !ok || key == "" {
		return "", fmt.Errorf("secret %s is missing key %s", c.secretID, c.jsonKey)
	}

	c.value = key
	return c.value, nil
}
