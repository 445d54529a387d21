// Package credstore defines the persisted credential store shared by its
// backends. Keys are the role-scoped token names ("user_token", "agent_token").
package credstore

import "context"

// Store persists credentials across process restarts.
// Get returns domain.ErrNotFound (wrapped) when the key is absent.
// Delete is idempotent: deleting absent keys is not an error.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, keys ...string) error
	Close() error
}
