package parcel

import "parcels/internal/core/domain/model/kernel"

// IsVisible reports whether caller may see p. A parcel is visible only to the
// non-empty session that registered it; every other caller must be answered
// exactly as if the parcel did not exist.
func IsVisible(p *Parcel, caller kernel.SessionKey) bool {
	if p.Validate() != nil {
		return false
	}
	return p.sessionKey.IsEqual(caller)
}
