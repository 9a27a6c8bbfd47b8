// Package credstore persists the client's credential entries (access token,
// refresh token) in a local SQLite database so a session survives process
// restarts. It stores opaque strings only; expiry is the backend's business.
package credstore

import (
	"context"
)

// Store is durable key/value persistence for credential entries.
//
// Contract:
//   - Set overwrites unconditionally.
//   - Get returns "" with a nil error for an absent key.
//   - Remove is idempotent; removing an absent key is a no-op.
//   - Clear removes every entry (logout helper).
type Store interface {
	Set(ctx context.Context, key, value string) error
	Get(ctx context.Context, key string) (string, error)
	Remove(ctx context.Context, key string) error
	Clear(ctx context.Context) error
}
