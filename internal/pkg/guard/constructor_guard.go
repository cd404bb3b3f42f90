// Package guard provides ConstructorGuard, a marker embedded in commands, queries and
// value objects to tell constructor-built instances apart from zero values.
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by Validate when no specific error is supplied.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard is set only by NewConstructorGuard, so a zero-value struct
// embedding it fails Validate.
//
// Example:
//
//	type GetParcelQuery struct {
//	    parcelID string
//	    guard    guard.ConstructorGuard
//	}
//
//	func (q GetParcelQuery) Validate() error {
//	    return q.guard.Validate(ErrGetParcelQueryIsNotConstructed)
//	}
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard marks the owning object as properly constructed.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate returns validationError (or ErrDefaultConstructorGuard when it is nil)
// if the guard was not created by NewConstructorGuard.
func (g ConstructorGuard) Validate(validationError error) error {
	if validationError == nil {
		validationError = ErrDefaultConstructorGuard
	}
	if !g.isConstructed {
		return validationError
	}
	return nil
}
