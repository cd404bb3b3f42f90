package commands

import (
	"errors"

	"parcels/internal/core/domain/model/kernel"
	"parcels/internal/core/domain/model/parcel"
	"parcels/internal/pkg/guard"
)

var ErrRegisterParcelCommandIsNotConstructed = errors.New(
	"RegisterParcelCommand must be created via NewRegisterParcelCommand constructor",
)

// RegisterParcelCommand carries validated registration input and the owning session.
//
// Example:
//
//	cmd, err := NewRegisterParcelCommand(session, parcel.Draft{
//	    Name: "Winter jacket", Weight: "1.5", Value: "100", TypeID: typeID,
//	})
//	if err != nil {
//	    return err // *errs.ValidationError
//	}
//	p, err := handler.Handle(ctx, cmd)
type RegisterParcelCommand struct { //nolint:recvcheck //using for validation
	session      kernel.SessionKey
	registration parcel.Registration

	guard guard.ConstructorGuard
}

// NewRegisterParcelCommand checks draft against the registration rules and binds it to session.
// Returns an *errs.ValidationError describing every failing field.
func NewRegisterParcelCommand(session kernel.SessionKey, draft parcel.Draft) (RegisterParcelCommand, error) {
	if err := session.Validate(); err != nil {
		return RegisterParcelCommand{}, err
	}

	registration, err := parcel.Check(draft)
	if err != nil {
		return RegisterParcelCommand{}, err
	}

	return RegisterParcelCommand{
		session:      session,
		registration: registration,
		guard:        guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c RegisterParcelCommand) Validate() error {
	return c.guard.Validate(ErrRegisterParcelCommandIsNotConstructed)
}

func (c RegisterParcelCommand) Session() kernel.SessionKey {
	return c.session
}

func (c RegisterParcelCommand) Registration() parcel.Registration {
	return c.registration
}
