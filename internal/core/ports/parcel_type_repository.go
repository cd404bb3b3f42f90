package ports

import (
	"context"

	"parcels/internal/core/domain/model/kernel"
	"parcels/internal/core/domain/model/parcel"
)

// ParcelTypeRepository defines the persistence contract for parcel types.
type ParcelTypeRepository interface {
	// Add persists a new type. Names are unique.
	Add(ctx context.Context, parcelType parcel.ParcelType) error

	// Get returns the type with id or an errs.ObjectNotFoundError.
	Get(ctx context.Context, id kernel.UUID) (parcel.ParcelType, error)

	// GetByName returns the type named name or an errs.ObjectNotFoundError.
	GetByName(ctx context.Context, name string) (parcel.ParcelType, error)

	// GetAll returns every type ordered by name.
	GetAll(ctx context.Context) ([]parcel.ParcelType, error)

	// Delete removes a type. Returns ErrParcelTypeInUse while parcels reference it.
	Delete(ctx context.Context, id kernel.UUID) error
}
