package commands

import (
	"errors"
	"strings"

	"parcels/internal/pkg/errs"
	"parcels/internal/pkg/guard"
)

var ErrDeleteParcelTypeCommandIsNotConstructed = errors.New(
	"DeleteParcelTypeCommand must be created via NewDeleteParcelTypeCommand constructor",
)

// DeleteParcelTypeCommand removes a parcel type by name. Types still referenced by
// parcels cannot be removed.
type DeleteParcelTypeCommand struct {
	name  string
	guard guard.ConstructorGuard
}

func NewDeleteParcelTypeCommand(name string) (DeleteParcelTypeCommand, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return DeleteParcelTypeCommand{}, errs.NewValueIsRequiredError("name")
	}
	return DeleteParcelTypeCommand{name: name, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the command was created through the constructor.
func (c DeleteParcelTypeCommand) Validate() error {
	return c.guard.Validate(ErrDeleteParcelTypeCommandIsNotConstructed)
}

func (c DeleteParcelTypeCommand) Name() string {
	return c.name
}
