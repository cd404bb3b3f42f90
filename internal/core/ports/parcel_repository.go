// Package ports defines the contracts between the parcel registry core and its
// infrastructure: persistence, the exchange-rate source, the rate cache and sessions.
// These interfaces enable dependency inversion and testability.
package ports

import (
	"context"
	"math"

	"parcels/internal/core/domain/model/kernel"
	"parcels/internal/core/domain/model/parcel"
)

// DefaultPageSize is the number of parcels per listing page.
const DefaultPageSize = 10

// MaxPage is the highest page number a listing accepts.
const MaxPage = math.MaxInt32

// CostFilter selects parcels by whether their delivery cost is computed.
type CostFilter int

const (
	// CostAny applies no cost predicate.
	CostAny CostFilter = iota
	// CostCalculated keeps parcels whose delivery cost is present.
	CostCalculated
	// CostNotCalculated keeps parcels whose delivery cost is absent.
	CostNotCalculated
)

// ParcelFilter holds the secondary predicates applied after the session pre-filter.
type ParcelFilter struct {
	// TypeID, when set, keeps parcels of exactly this type.
	TypeID *kernel.UUID
	Cost   CostFilter
}

// Page is a 1-based page request.
type Page struct {
	Number int
	Size   int
}

// Offset returns the number of rows to skip, saturating at math.MaxInt.
func (p Page) Offset() int {
	if p.Number < 1 || p.Size < 1 {
		return 0
	}
	if p.Number-1 > math.MaxInt/p.Size {
		return math.MaxInt
	}
	return (p.Number - 1) * p.Size
}

// PageCount returns how many pages of size hold total rows. An empty listing has one page.
func PageCount(total int64, size int) int64 {
	if total <= 0 || size < 1 {
		return 1
	}
	return (total-1)/int64(size) + 1
}

// ParcelPage is one page of a session's parcels together with the total match count.
type ParcelPage struct {
	Parcels []*parcel.Parcel
	Total   int64
}

// ParcelRepository defines the persistence contract for parcel aggregates.
type ParcelRepository interface {
	// Add persists a newly registered parcel.
	Add(ctx context.Context, aggregate *parcel.Parcel) error

	// Update persists the delivery cost of a parcel that was unpriced in storage.
	// Returns ErrParcelAlreadyPriced when the stored row already carries a cost,
	// so that a parcel is priced at most once even if two sweeps overlap.
	Update(ctx context.Context, aggregate *parcel.Parcel) error

	// GetByIDAndSession returns the parcel only when it belongs to session.
	// A parcel owned by someone else is reported exactly like a missing one:
	// an errs.ObjectNotFoundError.
	GetByIDAndSession(ctx context.Context, id kernel.UUID, session kernel.SessionKey) (*parcel.Parcel, error)

	// ListBySession returns the session's parcels matching filter, oldest first.
	ListBySession(ctx context.Context, session kernel.SessionKey, filter ParcelFilter, page Page) (ParcelPage, error)

	// GetAllUnpriced returns every parcel without a delivery cost, oldest first.
	// The scan is unbounded. Rows that cannot be restored are left out and reported
	// as an *UnreadableParcelsError returned together with the readable parcels.
	GetAllUnpriced(ctx context.Context) ([]*parcel.Parcel, error)
}
