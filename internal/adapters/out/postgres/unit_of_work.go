// Package postgres provides the GORM-based Unit of Work used by the parcel registry.
// A unit of work owns at most one transaction; repositories obtained from it run inside
// that transaction while it is open and on the plain connection otherwise.
//
// Usage:
//
//	uow := NewGormUnitOfWorkFactory(db, logger).Create()
//	if err := uow.Begin(ctx); err != nil {
//	    return err
//	}
//	defer func() {
//	    _ = uow.Rollback(ctx)
//	}()
//
//	if err := uow.ParcelRepository().Add(ctx, p); err != nil {
//	    return err
//	}
//	return uow.Commit(ctx)
//
// Each goroutine must use its own UnitOfWork. The pricing sweep relies on the
// conditional delivery cost update rather than on row locks.
package postgres

import (
	"context"
	"log/slog"

	"parcels/internal/adapters/out/postgres/parcelrepo"
	"parcels/internal/adapters/out/postgres/parceltyperepo"
	"parcels/internal/core/domain/model/kernel"
	"parcels/internal/core/ports"

	"gorm.io/gorm"
)

// TrackedAggregate is an aggregate written through this unit of work.
type TrackedAggregate struct {
	ID        kernel.UUID
	Aggregate any
}

// GormUnitOfWorkFactory hands out a fresh GormUnitOfWork per business operation.
type GormUnitOfWorkFactory struct {
	db     *gorm.DB
	logger *slog.Logger
}

// NewGormUnitOfWorkFactory creates a factory over db. A nil logger selects slog.Default.
func NewGormUnitOfWorkFactory(db *gorm.DB, logger *slog.Logger) *GormUnitOfWorkFactory {
	if logger == nil {
		logger = slog.Default()
	}
	return &GormUnitOfWorkFactory{db: db, logger: logger.With("component", "UnitOfWork")}
}

// Create produces a unit of work with no open transaction.
func (f *GormUnitOfWorkFactory) Create() ports.UnitOfWork {
	return &GormUnitOfWork{
		db:      f.db,
		logger:  f.logger,
		tracked: make([]TrackedAggregate, 0),
	}
}

// GormUnitOfWork coordinates one database transaction and records the aggregates
// its repositories wrote.
type GormUnitOfWork struct {
	db      *gorm.DB
	logger  *slog.Logger
	tx      *gorm.DB
	tracked []TrackedAggregate
}

// Begin opens the transaction. Calling it again while a transaction is open is a no-op.
func (uow *GormUnitOfWork) Begin(ctx context.Context) error {
	if uow.tx != nil {
		return nil
	}

	uow.tx = uow.db.WithContext(ctx).Begin()
	if uow.tx.Error != nil {
		err := uow.tx.Error
		uow.tx = nil
		return err
	}

	return nil
}

// Commit makes the transaction's changes permanent and closes it. The aggregates
// written inside the transaction are logged at debug level and then forgotten.
// Returns gorm.ErrInvalidTransaction when no transaction is open.
func (uow *GormUnitOfWork) Commit(ctx context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Commit().Error
	uow.tx = nil
	if err != nil {
		return err
	}

	if tracked := uow.TrackedAggregates(); len(tracked) > 0 {
		ids := make([]string, 0, len(tracked))
		for _, t := range tracked {
			ids = append(ids, t.ID.String())
		}
		uow.logger.DebugContext(ctx, "Transaction committed", "aggregate_ids", ids)
	}
	uow.tracked = uow.tracked[:0]
	return nil
}

// Rollback discards the transaction's changes and closes it. It is safe to defer
// after a successful Commit; the returned gorm.ErrInvalidTransaction is then ignored by callers.
func (uow *GormUnitOfWork) Rollback(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Rollback().Error
	uow.tx = nil
	uow.tracked = uow.tracked[:0]
	return err
}

// ParcelRepository returns a parcel repository bound to this unit of work.
func (uow *GormUnitOfWork) ParcelRepository() ports.ParcelRepository {
	return parcelrepo.NewGormParcelRepository(uow.conn(), uow)
}

// ParcelTypeRepository returns a parcel type repository bound to this unit of work.
func (uow *GormUnitOfWork) ParcelTypeRepository() ports.ParcelTypeRepository {
	return parceltyperepo.NewGormParcelTypeRepository(uow.conn())
}

// TrackAggregate is called by repositories after a successful write.
func (uow *GormUnitOfWork) TrackAggregate(id kernel.UUID, aggregate any) {
	uow.tracked = append(uow.tracked, TrackedAggregate{
		ID:        id,
		Aggregate: aggregate,
	})
}

// TrackedAggregates returns the aggregates written since the last commit or rollback.
func (uow *GormUnitOfWork) TrackedAggregates() []TrackedAggregate {
	return append([]TrackedAggregate(nil), uow.tracked...)
}

func (uow *GormUnitOfWork) conn() *gorm.DB {
	if uow.tx != nil {
		return uow.tx
	}
	return uow.db
}
