package store

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned by Get when a key has no live entry.
var ErrNotFound = errors.New("key not found")

// State is the attempt history recorded for one action key.
type State struct {
	Attempts     int       `json:"attempts"`
	FirstAttempt time.Time `json:"first_attempt"`
	LockedUntil  time.Time `json:"locked_until,omitempty"`
}

// Locked reports whether the entry is in an active lockout at now.
func (s State) Locked(now time.Time) bool {
	return !s.LockedUntil.IsZero() && now.Before(s.LockedUntil)
}

type Store interface {
	// Get retrieves the ledger entry for a key, or ErrNotFound
	Get(ctx context.Context, key string) (State, error)

	// Set stores the entry with TTL (auto-expiration)
	Set(ctx context.Context, key string, s State, ttl time.Duration) error

	// Delete removes a key; deleting a missing key is not an error
	Delete(ctx context.Context, key string) error

	// Exists checks if a live entry exists for the key
	Exists(ctx context.Context, key string) (bool, error)
}

// Pruner is implemented by backends that can drop expired entries on request.
// It is never run on a timer.
type Pruner interface {
	Prune(ctx context.Context) (int64, error)
}
