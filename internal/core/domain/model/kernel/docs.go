// Package kernel provides the shared value objects of the parcel registry.
//
// The package includes:
//   - UUID: identifier of parcels and parcel types, wrapping github.com/google/uuid
//   - SessionKey: the anonymous visitor token that owns parcels
//
// Both are immutable, and their zero values are invalid so that an unset
// identifier or session is never mistaken for a real one.
package kernel
