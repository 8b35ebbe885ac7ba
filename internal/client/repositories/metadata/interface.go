package metadata

import (
	"context"
)

// Repository is a durable string-keyed store of opaque values.
//
// Get returns (nil, nil) when the key is absent. Set overwrites any previous
// value and Delete of a missing key is not an error, so every write is
// idempotent.
//
// List returns every stored key with its value. The client never reads
// through it; it exists for diagnostics and for tests that check what a
// component left in the store.
type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	List(ctx context.Context) (map[string][]byte, error)
}
