package commands

import (
	"errors"
	"strings"

	"parcels/internal/pkg/errs"
	"parcels/internal/pkg/guard"
)

var ErrSeedParcelTypesCommandIsNotConstructed = errors.New(
	"SeedParcelTypesCommand must be created via NewSeedParcelTypesCommand constructor",
)

// DefaultParcelTypes are the types every installation starts with.
//
//nolint:gochecknoglobals // fixed seed list
var DefaultParcelTypes = []string{"Clothing", "Electronics", "Misc"}

// SeedParcelTypesCommand ensures that each named parcel type exists.
type SeedParcelTypesCommand struct {
	names []string
	guard guard.ConstructorGuard
}

// NewSeedParcelTypesCommand seeds names, or DefaultParcelTypes when none are given.
func NewSeedParcelTypesCommand(names ...string) (SeedParcelTypesCommand, error) {
	if len(names) == 0 {
		names = DefaultParcelTypes
	}

	cleaned := make([]string, 0, len(names))
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			return SeedParcelTypesCommand{}, errs.NewValueIsRequiredError("name")
		}
		cleaned = append(cleaned, name)
	}

	return SeedParcelTypesCommand{
		names: cleaned,
		guard: guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c SeedParcelTypesCommand) Validate() error {
	return c.guard.Validate(ErrSeedParcelTypesCommandIsNotConstructed)
}

func (c SeedParcelTypesCommand) Names() []string {
	return append([]string(nil), c.names...)
}
