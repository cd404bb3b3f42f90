package parcelrepo

import (
	"context"
	"errors"
	"fmt"

	"parcels/internal/core/domain/model/kernel"
	"parcels/internal/core/domain/model/parcel"
	"parcels/internal/core/ports"
	"parcels/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormParcelRepository implements ParcelRepository using GORM.
type GormParcelRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormParcelRepository creates a new GORM parcel repository.
func NewGormParcelRepository(db *gorm.DB, tracker aggregateTracker) *GormParcelRepository {
	return &GormParcelRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new parcel. The referenced type must already exist.
func (r *GormParcelRepository) Add(ctx context.Context, aggregate *parcel.Parcel) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update writes the delivery cost of a parcel that is still unpriced in storage.
func (r *GormParcelRepository) Update(ctx context.Context, aggregate *parcel.Parcel) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	cost, ok := aggregate.DeliveryCost()
	if !ok {
		return errs.NewValueIsRequiredError("delivery cost")
	}

	id := aggregate.ID().Bytes()
	result := r.db.WithContext(ctx).
		Model(&ParcelDTO{}).
		Where("id = ? AND delivery_cost IS NULL", id).
		Update("delivery_cost", cost)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		var count int64
		if err := r.db.WithContext(ctx).Model(&ParcelDTO{}).Where("id = ?", id).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return errs.NewObjectNotFoundError("parcel", aggregate.ID().String())
		}
		return ports.ErrParcelAlreadyPriced
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// GetByIDAndSession retrieves a parcel only when it is owned by session.
func (r *GormParcelRepository) GetByIDAndSession(
	ctx context.Context,
	id kernel.UUID,
	session kernel.SessionKey,
) (*parcel.Parcel, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if session.IsEmpty() {
		return nil, errs.NewObjectNotFoundError("parcel", id.String())
	}

	var dto ParcelDTO
	err := r.db.WithContext(ctx).
		Joins("Type").
		Where("parcels.id = ? AND parcels.session_key = ?", id.Bytes(), session.String()).
		First(&dto).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("parcel", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// ListBySession retrieves one page of the session's parcels, oldest first.
func (r *GormParcelRepository) ListBySession(
	ctx context.Context,
	session kernel.SessionKey,
	filter ports.ParcelFilter,
	page ports.Page,
) (ports.ParcelPage, error) {
	out := ports.ParcelPage{Parcels: make([]*parcel.Parcel, 0)}
	if session.IsEmpty() {
		return out, nil
	}

	scope := func(db *gorm.DB) *gorm.DB {
		db = db.Where("parcels.session_key = ?", session.String())
		if filter.TypeID != nil {
			db = db.Where("parcels.type_id = ?", filter.TypeID.Bytes())
		}
		switch filter.Cost {
		case ports.CostCalculated:
			db = db.Where("parcels.delivery_cost IS NOT NULL")
		case ports.CostNotCalculated:
			db = db.Where("parcels.delivery_cost IS NULL")
		case ports.CostAny:
		}
		return db
	}

	if err := r.db.WithContext(ctx).Model(&ParcelDTO{}).Scopes(scope).Count(&out.Total).Error; err != nil {
		return ports.ParcelPage{}, err
	}
	if out.Total == 0 {
		return out, nil
	}

	query := r.db.WithContext(ctx).
		Joins("Type").
		Scopes(scope).
		Order("parcels.created_at, parcels.id")
	if page.Size > 0 {
		query = query.Offset(page.Offset()).Limit(page.Size)
	}

	var dtos []ParcelDTO
	if err := query.Find(&dtos).Error; err != nil {
		return ports.ParcelPage{}, err
	}

	for _, dto := range dtos {
		p, err := toDomain(dto)
		if err != nil {
			return ports.ParcelPage{}, err
		}
		out.Parcels = append(out.Parcels, p)
	}
	return out, nil
}

// GetAllUnpriced retrieves every parcel without a delivery cost, oldest first.
// A row that fails to restore does not hide the others.
func (r *GormParcelRepository) GetAllUnpriced(ctx context.Context) ([]*parcel.Parcel, error) {
	var dtos []ParcelDTO
	err := r.db.WithContext(ctx).
		Joins("Type").
		Where("parcels.delivery_cost IS NULL").
		Order("parcels.created_at, parcels.id").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	var (
		unreadable []string
		failures   []error
	)
	parcels := make([]*parcel.Parcel, 0, len(dtos))
	for _, dto := range dtos {
		p, err := toDomain(dto)
		if err != nil {
			unreadable = append(unreadable, dto.ID.String())
			failures = append(failures, fmt.Errorf("parcel %s: %w", dto.ID, err))
			continue
		}
		parcels = append(parcels, p)
	}
	if len(unreadable) > 0 {
		return parcels, ports.NewUnreadableParcelsError(unreadable, errors.Join(failures...))
	}
	return parcels, nil
}
