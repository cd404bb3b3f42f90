package kernel

import (
	"strings"

	"parcels/internal/pkg/errs"

	"github.com/google/uuid"
)

// MaxSessionKeyLength bounds the stored owner identifier of a parcel.
const MaxSessionKeyLength = 40

// SessionKey is the opaque per-visitor token that owns parcels.
// The zero value means "no session established" and never owns anything.
type SessionKey struct {
	value string
}

// NewSessionKey issues a fresh random session key (32 hex characters).
func NewSessionKey() SessionKey {
	return SessionKey{value: strings.ReplaceAll(uuid.NewString(), "-", "")}
}

// SessionKeyFromString restores a session key received from a cookie or the database.
//
// Example:
//
//	key, err := kernel.SessionKeyFromString(cookie.Value)
//	if err != nil {
//	    // treat as "no session"
//	}
func SessionKeyFromString(s string) (SessionKey, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return SessionKey{}, errs.NewValueIsRequiredError("session key")
	}
	if len(s) > MaxSessionKeyLength {
		return SessionKey{}, errs.NewValueIsOutOfRangeError("session key length", len(s), 1, MaxSessionKeyLength)
	}
	return SessionKey{value: s}, nil
}

// String returns the raw key.
func (k SessionKey) String() string {
	return k.value
}

// IsEmpty reports whether no session is established.
func (k SessionKey) IsEmpty() bool {
	return k.value == ""
}

// IsEqual compares two keys. Two empty keys are not considered equal.
func (k SessionKey) IsEqual(other SessionKey) bool {
	return !k.IsEmpty() && k.value == other.value
}

// Validate rejects the empty key.
func (k SessionKey) Validate() error {
	if k.IsEmpty() {
		return errs.NewValueIsRequiredError("session key")
	}
	return nil
}
