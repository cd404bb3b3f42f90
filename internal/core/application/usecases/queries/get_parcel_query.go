package queries

import (
	"errors"

	"parcels/internal/core/domain/model/kernel"
	"parcels/internal/pkg/guard"
)

var ErrGetParcelQueryIsNotConstructed = errors.New(
	"GetParcelQuery must be created via NewGetParcelQuery constructor",
)

// GetParcelQuery looks up one parcel on behalf of a caller. It accepts any raw id and
// any session, including none: every lookup that cannot show a parcel to this caller
// ends in the same not-found result.
type GetParcelQuery struct {
	session kernel.SessionKey
	rawID   string
	guard   guard.ConstructorGuard
}

func NewGetParcelQuery(session kernel.SessionKey, rawID string) GetParcelQuery {
	return GetParcelQuery{session: session, rawID: rawID, guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
func (q GetParcelQuery) Validate() error {
	return q.guard.Validate(ErrGetParcelQueryIsNotConstructed)
}

// ParcelLookup is the outcome of a detail lookup. When Found is false the reason is
// deliberately unavailable.
type ParcelLookup struct {
	Found  bool
	Parcel ParcelView
}
