package parcel

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"
	"unicode/utf8"

	"parcels/internal/core/domain/model/kernel"
	"parcels/internal/pkg/errs"
)

// MaxNameLength bounds the parcel name.
const MaxNameLength = 100

var (
	// ErrParcelIsNotConstructed is returned when a Parcel was not created through
	// NewParcel or RestoreParcel.
	ErrParcelIsNotConstructed = errors.New("Parcel must be created via NewParcel constructor")

	// ErrDeliveryCostAlreadySet is returned when pricing a parcel that already has a cost.
	ErrDeliveryCostAlreadySet = errors.New("delivery cost is already set")
)

// Parcel is a shipment registered by an anonymous session. It is the aggregate root
// for pricing: the delivery cost is absent on creation and is assigned once by the
// pricing sweep.
//
// Parcel follows these invariants:
//   - Must have a valid identifier, owner session and parcel type
//   - Name is 1..100 characters
//   - Weight > 0 (kilograms), value >= 0 (USD)
//   - Delivery cost is absent or a finite non-negative amount (RUB)
type Parcel struct {
	id           kernel.UUID
	sessionKey   kernel.SessionKey
	name         string
	weight       float64
	value        float64
	deliveryCost *float64
	parcelType   ParcelType
	createdAt    time.Time

	isConstructed bool
}

// NewParcel registers a new, unpriced parcel owned by sessionKey.
//
// Example:
//
//	p, err := parcel.NewParcel(kernel.NewUUID(), session, "Winter jacket", 1.5, 100, clothing, time.Now())
//	if err != nil {
//	    return err
//	}
//	_, priced := p.DeliveryCost() // false until the sweep runs
func NewParcel(
	id kernel.UUID,
	sessionKey kernel.SessionKey,
	name string,
	weight float64,
	value float64,
	parcelType ParcelType,
	createdAt time.Time,
) (*Parcel, error) {
	p := &Parcel{
		createdAt:     createdAt.UTC(),
		isConstructed: true,
	}

	if err := errors.Join(
		p.setID(id),
		p.setSessionKey(sessionKey),
		p.setName(name),
		p.setWeight(weight),
		p.setValue(value),
		p.setParcelType(parcelType),
	); err != nil {
		return nil, err
	}

	return p, nil
}

// RestoreParcel rebuilds a parcel from persisted state, including an optional delivery cost.
func RestoreParcel(
	id kernel.UUID,
	sessionKey kernel.SessionKey,
	name string,
	weight float64,
	value float64,
	deliveryCost *float64,
	parcelType ParcelType,
	createdAt time.Time,
) (*Parcel, error) {
	p, err := NewParcel(id, sessionKey, name, weight, value, parcelType, createdAt)
	if err != nil {
		return nil, err
	}
	if deliveryCost != nil {
		if err = p.SetDeliveryCost(*deliveryCost); err != nil {
			return nil, err
		}
	}
	return p, nil
}

// Validate ensures the parcel was built by NewParcel or RestoreParcel.
func (p *Parcel) Validate() error {
	if p == nil || !p.isConstructed {
		return ErrParcelIsNotConstructed
	}
	return nil
}

func (p *Parcel) ID() kernel.UUID {
	return p.id
}

func (p *Parcel) SessionKey() kernel.SessionKey {
	return p.sessionKey
}

func (p *Parcel) Name() string {
	return p.name
}

// Weight returns the weight in kilograms.
func (p *Parcel) Weight() float64 {
	return p.weight
}

// Value returns the declared value in USD.
func (p *Parcel) Value() float64 {
	return p.value
}

func (p *Parcel) Type() ParcelType {
	return p.parcelType
}

func (p *Parcel) CreatedAt() time.Time {
	return p.createdAt
}

// DeliveryCost returns the cost in RUB and whether it has been computed.
func (p *Parcel) DeliveryCost() (float64, bool) {
	if p.deliveryCost == nil {
		return 0, false
	}
	return *p.deliveryCost, true
}

// IsPriced reports whether the delivery cost has been computed.
func (p *Parcel) IsPriced() bool {
	return p.deliveryCost != nil
}

// SetDeliveryCost records the computed cost. It succeeds only once per parcel.
func (p *Parcel) SetDeliveryCost(cost float64) error {
	if p.deliveryCost != nil {
		return ErrDeliveryCostAlreadySet
	}
	if math.IsNaN(cost) || math.IsInf(cost, 0) || cost < 0 {
		return errs.NewValueIsInvalidErrorWithCause("delivery cost",
			fmt.Errorf("%v is not a finite non-negative amount", cost))
	}
	p.deliveryCost = &cost
	return nil
}

func (p *Parcel) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	p.id = id
	return nil
}

func (p *Parcel) setSessionKey(key kernel.SessionKey) error {
	if err := key.Validate(); err != nil {
		return err
	}
	p.sessionKey = key
	return nil
}

func (p *Parcel) setName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return errs.NewValueIsRequiredError("name")
	}
	if n := utf8.RuneCountInString(name); n > MaxNameLength {
		return errs.NewValueIsOutOfRangeError("name length", n, 1, MaxNameLength)
	}
	p.name = name
	return nil
}

func (p *Parcel) setWeight(weight float64) error {
	if math.IsNaN(weight) || math.IsInf(weight, 0) || weight <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("weight", fmt.Errorf("%v is not greater than 0", weight))
	}
	p.weight = weight
	return nil
}

func (p *Parcel) setValue(value float64) error {
	if math.IsNaN(value) || math.IsInf(value, 0) || value < 0 {
		return errs.NewValueIsInvalidErrorWithCause("value", fmt.Errorf("%v is less than 0", value))
	}
	p.value = value
	return nil
}

func (p *Parcel) setParcelType(parcelType ParcelType) error {
	if err := parcelType.Validate(); err != nil {
		return err
	}
	p.parcelType = parcelType
	return nil
}
