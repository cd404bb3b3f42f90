// Package parceltyperepo persists parcel types, the reference data every parcel points to.
package parceltyperepo

import (
	"parcels/internal/core/domain/model/kernel"
	"parcels/internal/core/domain/model/parcel"

	"github.com/google/uuid"
)

// ParcelTypeDTO represents the database structure for parcel types.
type ParcelTypeDTO struct {
	ID   uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name string    `gorm:"type:varchar(50);not null;uniqueIndex"`
}

// TableName overrides GORM's default naming convention to use "parcel_types".
func (ParcelTypeDTO) TableName() string {
	return "parcel_types"
}

// FromDomain converts a parcel type to its database representation.
func FromDomain(t parcel.ParcelType) ParcelTypeDTO {
	return ParcelTypeDTO{
		ID:   t.ID().Bytes(),
		Name: t.Name(),
	}
}

// ToDomain rebuilds a parcel type from its database representation.
func ToDomain(dto ParcelTypeDTO) (parcel.ParcelType, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return parcel.ParcelType{}, err
	}
	return parcel.NewParcelType(id, dto.Name)
}
