// Package metadata is the local key/value store the CLI keeps between runs:
// the signed-in user and the refresh token.
package metadata

import (
	"context"
)

type Repository interface {
	// Get returns ("", false, nil) for a missing key.
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, keys ...string) error
	List(ctx context.Context) (map[string]string, error)
	Clear(ctx context.Context) error
}
