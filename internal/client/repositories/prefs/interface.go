package prefs

import (
	"context"
)

// Repository is a small string key-value store for device-local settings
// such as the signed-in identity and the last catalog sync time.
type Repository interface {
	// Get reports ok == false when the key is absent.
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, keys ...string) error
	All(ctx context.Context) (map[string]string, error)
}
