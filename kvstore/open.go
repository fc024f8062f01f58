package kvstore

import (
	"context"
	"fmt"

	"github.com/jrsteele09/safisaude-console/internal/config"
)

func noClose() error { return nil }

// Open returns the store selected by STORAGE_DRIVER together with the
// function that releases it.
func Open(ctx context.Context, cfg config.StorageConfig) (Store, func() error, error) {
	switch driver := cfg.GetStorageDriver(); driver {
	case config.StorageMemory:
		return NewMemoryStore(), noClose, nil
	case config.StorageSQLite:
		s, err := OpenSQLite(cfg.GetSQLitePath())
		if err != nil {
			return nil, nil, err
		}
		return s, s.Close, nil
	case config.StorageRedis:
		if cfg.GetRedisURL() == "" {
			return nil, nil, fmt.Errorf("kvstore: REDIS_URL is required for the redis driver")
		}
		s, err := OpenRedis(ctx, cfg.GetRedisURL())
		if err != nil {
			return nil, nil, err
		}
		return s, s.Close, nil
	default:
		return nil, nil, fmt.Errorf("kvstore: unknown storage driver %q", driver)
	}
}
