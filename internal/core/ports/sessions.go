package ports

import (
	"context"

	"parcels/internal/core/domain/model/kernel"
)

// SessionStore issues anonymous session keys and remembers which ones it issued.
type SessionStore interface {
	// Create issues and remembers a new session key.
	Create(ctx context.Context) (kernel.SessionKey, error)

	// Exists reports whether key was issued and has not expired.
	Exists(ctx context.Context, key kernel.SessionKey) (bool, error)
}
