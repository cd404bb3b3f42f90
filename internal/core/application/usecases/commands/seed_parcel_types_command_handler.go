package commands

import (
	"context"
	"errors"

	"parcels/internal/core/domain/model/kernel"
	"parcels/internal/core/domain/model/parcel"
	"parcels/internal/pkg/errs"
)

// SeedParcelTypesCommandHandler creates the missing types of a seed list and leaves
// existing ones untouched, so it can be run repeatedly.
type SeedParcelTypesCommandHandler struct {
	uowFactory ParcelTypeUoWFactory
}

func NewSeedParcelTypesCommandHandler(uowFactory ParcelTypeUoWFactory) SeedParcelTypesCommandHandler {
	return SeedParcelTypesCommandHandler{uowFactory: uowFactory}
}

// Handle returns the number of types it created.
func (h SeedParcelTypesCommandHandler) Handle(ctx context.Context, cmd SeedParcelTypesCommand) (int, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.ParcelTypeRepository()
	created := 0
	for _, name := range cmd.Names() {
		_, err := repo.GetByName(ctx, name)
		if err == nil {
			continue
		}
		if !errors.Is(err, errs.ErrObjectNotFound) {
			return 0, err
		}

		parcelType, err := parcel.NewParcelType(kernel.NewUUID(), name)
		if err != nil {
			return 0, err
		}
		if err = repo.Add(ctx, parcelType); err != nil {
			return 0, err
		}
		created++
	}

	if err := uow.Commit(ctx); err != nil {
		return 0, err
	}

	return created, nil
}
