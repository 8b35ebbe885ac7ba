package storage

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/dmitrijs2005/campushub/internal/client/config"
	"github.com/dmitrijs2005/campushub/internal/client/repositories/metadata"
)

var (
	ErrUnknownBackend = errors.New("unknown store backend")
	ErrUnavailable    = errors.New("store unavailable")
)

// Open builds the key-value store selected by cfg.StoreBackend. The returned
// closer releases the underlying database or connection pool.
func Open(ctx context.Context, cfg *config.Config) (metadata.Repository, io.Closer, error) {
	ctx, cancel := context.WithTimeout(ctx, cfg.StoreTimeout)
	defer cancel()

	switch cfg.StoreBackend {
	case config.StoreSQLite, "":
		db, err := InitDatabase(ctx, cfg.DBPath)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
		}
		return metadata.NewSQLiteRepository(db), db, nil

	case config.StoreRedis:
		client, err := NewRedisClient(ctx, cfg)
		if err != nil {
			return nil, nil, err
		}
		return metadata.NewRedisRepository(client, cfg.RedisKeyPrefix), client, nil
	}

	return nil, nil, fmt.Errorf("%w: %q", ErrUnknownBackend, cfg.StoreBackend)
}
