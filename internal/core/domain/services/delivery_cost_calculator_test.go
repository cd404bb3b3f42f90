package services_test

import (
	"math"
	"testing"
	"time"

	"parcels/internal/core/domain/model/kernel"
	"parcels/internal/core/domain/model/parcel"
	"parcels/internal/core/domain/services"
	"parcels/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newParcel(t *testing.T, weight, value float64) *parcel.Parcel {
	t.Helper()
	session, err := kernel.SessionKeyFromString("test_session")
	require.NoError(t, err)
	pt, err := parcel.NewParcelType(kernel.NewUUID(), "Clothing")
	require.NoError(t, err)
	p, err := parcel.NewParcel(kernel.NewUUID(), session, "Test parcel", weight, value, pt, time.Now())
	require.NoError(t, err)
	return p
}

func TestDeliveryCostCalculator_Calculate(t *testing.T) {
	calculator := services.NewDeliveryCostCalculator()

	tests := []struct {
		name   string
		weight float64
		value  float64
		rate   float64
		want   float64
	}{
		{name: "fresh rate", weight: 1.5, value: 100.0, rate: 90.0, want: 157.5},
		{name: "cached rate", weight: 1.5, value: 100.0, rate: 80.0, want: 140.0},
		{name: "zero declared value", weight: 2, value: 0, rate: 100, want: 100},
		{name: "heavy parcel", weight: 10, value: 200, rate: 1, want: 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := calculator.Calculate(newParcel(t, tt.weight, tt.value), tt.rate)

			require.NoError(t, err)
			assert.Equal(t, tt.want, got) //nolint:testifylint // exact equality is the contract
		})
	}
}

func TestDeliveryCostCalculator_RejectsInvalidRate(t *testing.T) {
	calculator := services.NewDeliveryCostCalculator()
	p := newParcel(t, 1, 1)

	for _, rate := range []float64{0, -90, math.NaN(), math.Inf(1)} {
		_, err := calculator.Calculate(p, rate)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	}
}

func TestDeliveryCostCalculator_RejectsUnconstructedParcel(t *testing.T) {
	_, err := services.NewDeliveryCostCalculator().Calculate(&parcel.Parcel{}, 90)

	require.ErrorIs(t, err, parcel.ErrParcelIsNotConstructed)
}
