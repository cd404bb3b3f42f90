package services

import (
	"fmt"
	"math"

	"parcels/internal/core/domain/model/parcel"
	"parcels/internal/pkg/errs"
)

const (
	// WeightTariff is the USD charged per kilogram.
	WeightTariff = 0.5
	// ValueTariff is the share of the declared value charged as insurance.
	ValueTariff = 0.01
)

// DeliveryCostCalculator prices parcels:
//
//	cost = (weight * 0.5 + value * 0.01) * rate
//
// The result is not rounded. Intermediate products are converted to float64 so they
// are never fused into a multiply-add (1.5 kg, 100 USD at 90.0 is exactly 157.5).
//
// Example:
//
//	calculator := services.NewDeliveryCostCalculator()
//	cost, err := calculator.Calculate(p, 90.0)
//	if err != nil {
//	    return err
//	}
//	if err = p.SetDeliveryCost(cost); err != nil {
//	    return err
//	}
type DeliveryCostCalculator struct{}

// NewDeliveryCostCalculator creates a calculator.
func NewDeliveryCostCalculator() DeliveryCostCalculator {
	return DeliveryCostCalculator{}
}

// Calculate returns the delivery cost of p in local currency for the USD rate.
// The rate must be finite and strictly positive.
func (DeliveryCostCalculator) Calculate(p *parcel.Parcel, rate float64) (float64, error) {
	if err := p.Validate(); err != nil {
		return 0, err
	}
	if math.IsNaN(rate) || math.IsInf(rate, 0) || rate <= 0 {
		return 0, errs.NewValueIsInvalidErrorWithCause("rate", fmt.Errorf("%v is not a positive finite number", rate))
	}

	weightPart := float64(p.Weight() * WeightTariff)
	valuePart := float64(p.Value() * ValueTariff)
	base := float64(weightPart + valuePart)

	return float64(base * rate), nil
}
