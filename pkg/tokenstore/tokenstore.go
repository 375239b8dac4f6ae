// Package tokenstore persists the per-session keys of API sessions so a
// session can be resumed after a restart. Drivers live in sub-packages.
package tokenstore

import (
	"context"
	"errors"
	"time"
)

var ErrNotFound = errors.New("tokenstore: not found")

// Tokens is what gets saved for one session. Application identity keys are
// configuration and are never stored.
type Tokens struct {
	AccessToken      string
	RefreshToken     string
	SessionKey       string
	SessionSecretKey string
	UpdatedAt        time.Time
}

// Store is implemented by every driver.
type Store interface {
	// Load returns the tokens saved under id, or ErrNotFound.
	Load(ctx context.Context, id string) (Tokens, error)

	// Save creates or replaces the tokens saved under id.
	Save(ctx context.Context, id string, tokens Tokens) error

	// Delete removes id. Deleting a missing id is not an error.
	Delete(ctx context.Context, id string) error

	// Close releases any underlying resources.
	Close() error
}
