package ports

import (
	"errors"
	"fmt"
)

var (
	// ErrParcelAlreadyPriced is returned by ParcelRepository.Update when the stored
	// parcel already has a delivery cost.
	ErrParcelAlreadyPriced = errors.New("parcel is already priced")

	// ErrParcelTypeInUse is returned by ParcelTypeRepository.Delete while parcels reference the type.
	ErrParcelTypeInUse = errors.New("parcel type is referenced by parcels")
)

// UnreadableParcelsError reports stored parcels that could not be restored.
// ParcelRepository.GetAllUnpriced returns it next to the parcels that could be.
type UnreadableParcelsError struct {
	IDs []string
	Err error
}

func NewUnreadableParcelsError(ids []string, err error) *UnreadableParcelsError {
	return &UnreadableParcelsError{IDs: ids, Err: err}
}

func (e *UnreadableParcelsError) Error() string {
	return fmt.Sprintf("%d stored parcels are unreadable: %v", len(e.IDs), e.Err)
}

func (e *UnreadableParcelsError) Unwrap() error {
	return e.Err
}
