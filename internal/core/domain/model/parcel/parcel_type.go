package parcel

import (
	"errors"
	"strings"
	"unicode/utf8"

	"parcels/internal/core/domain/model/kernel"
	"parcels/internal/pkg/errs"
	"parcels/internal/pkg/guard"
)

// MaxTypeNameLength bounds the unique name of a parcel type.
const MaxTypeNameLength = 50

var ErrParcelTypeIsNotConstructed = errors.New("ParcelType must be created via NewParcelType constructor")

// ParcelType is a category such as clothing or electronics. Types are seeded by an
// operator, never changed afterwards, and cannot be removed while parcels reference them.
type ParcelType struct {
	id   kernel.UUID
	name string

	guard guard.ConstructorGuard
}

// NewParcelType creates a parcel type with a non-empty name of at most MaxTypeNameLength characters.
//
// Example:
//
//	clothing, err := parcel.NewParcelType(kernel.NewUUID(), "Clothing")
//	if err != nil {
//	    return err
//	}
func NewParcelType(id kernel.UUID, name string) (ParcelType, error) {
	name = strings.TrimSpace(name)
	if err := errors.Join(id.Validate(), validateTypeName(name)); err != nil {
		return ParcelType{}, err
	}

	return ParcelType{
		id:    id,
		name:  name,
		guard: guard.NewConstructorGuard(),
	}, nil
}

// ID returns the type identifier.
func (t ParcelType) ID() kernel.UUID {
	return t.id
}

// Name returns the unique type name.
func (t ParcelType) Name() string {
	return t.name
}

// Validate ensures the type was created through NewParcelType.
func (t ParcelType) Validate() error {
	return t.guard.Validate(ErrParcelTypeIsNotConstructed)
}

func validateTypeName(name string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("parcel type name")
	}
	if n := utf8.RuneCountInString(name); n > MaxTypeNameLength {
		return errs.NewValueIsOutOfRangeError("parcel type name length", n, 1, MaxTypeNameLength)
	}
	return nil
}
