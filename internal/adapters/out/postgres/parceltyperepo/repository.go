package parceltyperepo

import (
	"context"
	"errors"
	"fmt"

	"parcels/internal/core/domain/model/kernel"
	"parcels/internal/core/domain/model/parcel"
	"parcels/internal/core/ports"
	"parcels/internal/pkg/errs"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

const (
	pgForeignKeyViolation = "23503"
	pgUniqueViolation     = "23505"
)

// GormParcelTypeRepository implements ParcelTypeRepository using GORM.
type GormParcelTypeRepository struct {
	db *gorm.DB
}

// NewGormParcelTypeRepository creates a new GORM parcel type repository.
func NewGormParcelTypeRepository(db *gorm.DB) *GormParcelTypeRepository {
	return &GormParcelTypeRepository{db: db}
}

// Add saves a new parcel type. A duplicate name is reported as an invalid name.
func (r *GormParcelTypeRepository) Add(ctx context.Context, parcelType parcel.ParcelType) error {
	if err := parcelType.Validate(); err != nil {
		return err
	}

	dto := FromDomain(parcelType)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if hasCode(err, pgUniqueViolation) {
			return errs.NewValueIsInvalidErrorWithCause("name", err)
		}
		return err
	}
	return nil
}

// Get retrieves a parcel type by ID.
func (r *GormParcelTypeRepository) Get(ctx context.Context, id kernel.UUID) (parcel.ParcelType, error) {
	if err := id.Validate(); err != nil {
		return parcel.ParcelType{}, err
	}

	var dto ParcelTypeDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return parcel.ParcelType{}, errs.NewObjectNotFoundError("parcel type", id.String())
		}
		return parcel.ParcelType{}, err
	}

	return ToDomain(dto)
}

// GetByName retrieves a parcel type by its unique name.
func (r *GormParcelTypeRepository) GetByName(ctx context.Context, name string) (parcel.ParcelType, error) {
	var dto ParcelTypeDTO
	if err := r.db.WithContext(ctx).First(&dto, "name = ?", name).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return parcel.ParcelType{}, errs.NewObjectNotFoundError("parcel type", name)
		}
		return parcel.ParcelType{}, err
	}

	return ToDomain(dto)
}

// GetAll retrieves every parcel type ordered by name.
func (r *GormParcelTypeRepository) GetAll(ctx context.Context) ([]parcel.ParcelType, error) {
	var dtos []ParcelTypeDTO
	if err := r.db.WithContext(ctx).Order("name").Find(&dtos).Error; err != nil {
		return nil, err
	}

	types := make([]parcel.ParcelType, 0, len(dtos))
	for _, dto := range dtos {
		t, err := ToDomain(dto)
		if err != nil {
			return nil, err
		}
		types = append(types, t)
	}
	return types, nil
}

// Delete removes a parcel type. The parcels foreign key restricts deletion of a
// referenced type, which is reported as ports.ErrParcelTypeInUse.
func (r *GormParcelTypeRepository) Delete(ctx context.Context, id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).Delete(&ParcelTypeDTO{}, "id = ?", id.Bytes())
	if result.Error != nil {
		if hasCode(result.Error, pgForeignKeyViolation) {
			return fmt.Errorf("%w: %s", ports.ErrParcelTypeInUse, id)
		}
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("parcel type", id.String())
	}
	return nil
}

func hasCode(err error, code string) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == code
}
