package commands

import (
	"context"
	"errors"
	"time"

	"parcels/internal/core/domain/model/kernel"
	"parcels/internal/core/domain/model/parcel"
	"parcels/internal/pkg/errs"
)

// RegisterParcelCommandHandler stores a new, unpriced parcel for the caller's session.
// A type id that does not resolve is reported as a validation failure on the type field.
//
// Example:
//
//	handler := NewRegisterParcelCommandHandler(uowFactory)
//	p, err := handler.Handle(ctx, cmd)
//	var verr *errs.ValidationError
//	if errors.As(err, &verr) {
//	    // 400 with verr.FieldMessages()
//	}
type RegisterParcelCommandHandler struct {
	uowFactory UoWFactory
	now        func() time.Time
}

// NewRegisterParcelCommandHandler creates a handler for parcel registration.
func NewRegisterParcelCommandHandler(uowFactory UoWFactory) RegisterParcelCommandHandler {
	return RegisterParcelCommandHandler{
		uowFactory: uowFactory,
		now:        time.Now,
	}
}

// Handle resolves the parcel type, builds the parcel and persists it in one transaction.
func (h RegisterParcelCommandHandler) Handle(ctx context.Context, cmd RegisterParcelCommand) (*parcel.Parcel, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	reg := cmd.Registration()
	parcelType, err := uow.ParcelTypeRepository().Get(ctx, reg.TypeID)
	if errors.Is(err, errs.ErrObjectNotFound) {
		verr := errs.NewValidationError()
		verr.Add(parcel.FieldType, parcel.MsgTypeNotFound)
		return nil, verr
	}
	if err != nil {
		return nil, err
	}

	p, err := parcel.NewParcel(
		kernel.NewUUID(),
		cmd.Session(),
		reg.Name,
		reg.Weight,
		reg.Value,
		parcelType,
		h.now(),
	)
	if err != nil {
		return nil, err
	}

	if err = uow.ParcelRepository().Add(ctx, p); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return p, nil
}
