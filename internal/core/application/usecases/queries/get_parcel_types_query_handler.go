package queries

import (
	"context"

	"parcels/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetParcelTypesQueryHandler reads parcel types straight from the database.
type GetParcelTypesQueryHandler struct {
	db *gorm.DB
}

func NewGetParcelTypesQueryHandler(db *gorm.DB) GetParcelTypesQueryHandler {
	return GetParcelTypesQueryHandler{db: db}
}

// Handle returns all parcel types sorted by name.
func (h GetParcelTypesQueryHandler) Handle(
	ctx context.Context,
	query GetParcelTypesQuery,
) ([]GetParcelTypesQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	types := make([]GetParcelTypesQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			name
		FROM parcel_types
		ORDER BY name
	`).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var item GetParcelTypesQueryResponse
		var id uuid.UUID

		if err = rows.Scan(&id, &item.Name); err != nil {
			return nil, err
		}

		typeID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		item.ID = typeID
		types = append(types, item)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return types, nil
}
