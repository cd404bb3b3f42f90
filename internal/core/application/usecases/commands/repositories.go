// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
// All commands follow a consistent pattern: validation, transaction management, and persistence.
package commands

import (
	"context"

	"parcels/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
type (
	// TxManager handles database transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// ParcelRepoFactory provides access to the parcel repository within a transaction.
	ParcelRepoFactory interface {
		ParcelRepository() ports.ParcelRepository
	}

	// ParcelTypeRepoFactory provides access to the parcel type repository within a transaction.
	ParcelTypeRepoFactory interface {
		ParcelTypeRepository() ports.ParcelTypeRepository
	}

	// ParcelTypeUoW manages transactions for operations that only touch parcel types.
	ParcelTypeUoW interface {
		TxManager
		ParcelTypeRepoFactory
	}

	// ParcelTypeUoWFactory creates new parcel type unit of work instances.
	ParcelTypeUoWFactory interface {
		Create() ParcelTypeUoW
	}

	// UoW manages transactions across parcels and their types.
	//
	// Example:
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//
	//   typeRepo := uow.ParcelTypeRepository()
	//   parcelRepo := uow.ParcelRepository()
	//   // ... perform operations
	//
	//   err = uow.Commit(ctx)
	UoW interface {
		TxManager
		ParcelRepoFactory
		ParcelTypeRepoFactory
	}

	// UoWFactory creates new unit of work instances for parcel operations.
	UoWFactory interface {
		Create() UoW
	}

	// RateSource yields the USD rate used by the pricing sweep.
	RateSource interface {
		GetRate(ctx context.Context) (float64, error)
	}
)
