package commands

import "context"

// DeleteParcelTypeCommandHandler removes a parcel type. It returns an
// errs.ObjectNotFoundError for unknown names and ports.ErrParcelTypeInUse while
// parcels reference the type.
type DeleteParcelTypeCommandHandler struct {
	uowFactory ParcelTypeUoWFactory
}

func NewDeleteParcelTypeCommandHandler(uowFactory ParcelTypeUoWFactory) DeleteParcelTypeCommandHandler {
	return DeleteParcelTypeCommandHandler{uowFactory: uowFactory}
}

func (h DeleteParcelTypeCommandHandler) Handle(ctx context.Context, cmd DeleteParcelTypeCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.ParcelTypeRepository()
	parcelType, err := repo.GetByName(ctx, cmd.Name())
	if err != nil {
		return err
	}

	if err = repo.Delete(ctx, parcelType.ID()); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
