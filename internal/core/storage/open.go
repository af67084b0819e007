package storage

import (
	"fmt"

	"storefront-checkout/internal/core/config"
)

// Open builds the Store selected by cfg.Driver and applies the namespace.
func Open(cfg config.StorageConfig) (Store, error) {
	var (
		s   Store
		err error
	)

	switch cfg.Driver {
	case config.DriverEmbedded:
		s, err = NewEmbeddedStore(cfg.EmbeddedPath)
	case config.DriverRedis:
		s, err = NewRedisStore(cfg.RedisURL)
	case config.DriverPostgres:
		s, err = OpenPostgres(cfg.Database)
	default:
		return nil, fmt.Errorf("unsupported storage driver: %q", cfg.Driver)
	}
	if err != nil {
		return nil, err
	}

	return WithNamespace(s, cfg.Namespace), nil
}
