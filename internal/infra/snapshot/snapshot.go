// Package snapshot provides the single-key persistence slot the reservation
// store mirrors itself into. Adapters only need string-keyed load/save; the
// store owns the payload encoding.
package snapshot

import "context"

type Store interface {
	// Load returns the value stored under key. The second return value is
	// false when the key has never been written.
	Load(ctx context.Context, key string) ([]byte, bool, error)
	Save(ctx context.Context, key string, value []byte) error
	Close() error
}
