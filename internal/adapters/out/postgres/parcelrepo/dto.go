// Package parcelrepo provides data transfer objects and mapping functions for parcel persistence.
// It implements the repository pattern for the parcel aggregate, including the conditional
// write used by the pricing sweep.
package parcelrepo

import (
	"time"

	"parcels/internal/adapters/out/postgres/parceltyperepo"
	"parcels/internal/core/domain/model/kernel"
	"parcels/internal/core/domain/model/parcel"

	"github.com/google/uuid"
)

// ParcelDTO represents the database structure for persisting parcel aggregates.
// The type reference is restricted on delete so that referenced types cannot be removed.
type ParcelDTO struct {
	ID           uuid.UUID                    `gorm:"type:uuid;primaryKey"`
	SessionKey   string                       `gorm:"type:varchar(40);not null;index"`
	Name         string                       `gorm:"type:varchar(100);not null"`
	Weight       float64                      `gorm:"type:double precision;not null"`
	Value        float64                      `gorm:"type:double precision;not null"`
	DeliveryCost *float64                     `gorm:"type:double precision;index"`
	TypeID       uuid.UUID                    `gorm:"type:uuid;not null;index"`
	Type         parceltyperepo.ParcelTypeDTO `gorm:"foreignKey:TypeID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
	CreatedAt    time.Time                    `gorm:"not null;index"`
}

// TableName specifies the database table name for parcel entities.
func (ParcelDTO) TableName() string {
	return "parcels"
}

func fromDomain(p *parcel.Parcel) ParcelDTO {
	var cost *float64
	if c, ok := p.DeliveryCost(); ok {
		cost = &c
	}

	return ParcelDTO{
		ID:           p.ID().Bytes(),
		SessionKey:   p.SessionKey().String(),
		Name:         p.Name(),
		Weight:       p.Weight(),
		Value:        p.Value(),
		DeliveryCost: cost,
		TypeID:       p.Type().ID().Bytes(),
		Type:         parceltyperepo.FromDomain(p.Type()),
		CreatedAt:    p.CreatedAt(),
	}
}

func toDomain(dto ParcelDTO) (*parcel.Parcel, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	session, err := kernel.SessionKeyFromString(dto.SessionKey)
	if err != nil {
		return nil, err
	}

	parcelType, err := parceltyperepo.ToDomain(dto.Type)
	if err != nil {
		return nil, err
	}

	return parcel.RestoreParcel(
		id,
		session,
		dto.Name,
		dto.Weight,
		dto.Value,
		dto.DeliveryCost,
		parcelType,
		dto.CreatedAt,
	)
}
