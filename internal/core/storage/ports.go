package storage

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrKeyNotFound is returned by Get when the slot has never been written or has expired.
	ErrKeyNotFound = errors.New("key not found")
	// ErrUnavailable wraps every backend failure (connection, quota, corruption).
	ErrUnavailable = errors.New("storage unavailable")
)

// Store is the durable key-value port every persisted slot goes through
// (purchase_history, order_management, checkout_data, shopping_cart, catalog_products).
// Adapters exist for Redis, PostgreSQL (via GORM) and an embedded in-process Redis.
type Store interface {
	// Get returns the raw document stored under key.
	// Returns an error wrapping ErrKeyNotFound when the key is absent.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores value under key. A ttl of 0 keeps the value until it is deleted.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Ping checks that the backend is reachable.
	Ping(ctx context.Context) error

	// Close releases the backend connection.
	Close() error
}

// IsNotFound reports whether err means the key does not exist.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrKeyNotFound)
}
