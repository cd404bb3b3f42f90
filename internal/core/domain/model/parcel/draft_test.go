package parcel_test

import (
	"strings"
	"testing"

	"parcels/internal/core/domain/model/kernel"
	"parcels/internal/core/domain/model/parcel"
	"parcels/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validDraft() parcel.Draft {
	return parcel.Draft{
		Name:   "Test parcel",
		Weight: "1.5",
		Value:  "100.0",
		TypeID: "550e8400-e29b-41d4-a716-446655440000",
	}
}

func fieldMessages(t *testing.T, err error) map[string][]string {
	t.Helper()
	var verr *errs.ValidationError
	require.ErrorAs(t, err, &verr)
	return verr.FieldMessages()
}

func TestCheck_ValidDraft(t *testing.T) {
	reg, err := parcel.Check(validDraft())

	require.NoError(t, err)
	assert.Equal(t, "Test parcel", reg.Name)
	assert.InDelta(t, 1.5, reg.Weight, 0)
	assert.InDelta(t, 100.0, reg.Value, 0)
	want, _ := kernel.UUIDFromString("550e8400-e29b-41d4-a716-446655440000")
	assert.True(t, reg.TypeID.IsEqual(want))
}

func TestCheck_WeightBoundaries(t *testing.T) {
	for _, weight := range []string{"0", "-1", "-0.5"} {
		t.Run("weight "+weight, func(t *testing.T) {
			d := validDraft()
			d.Weight = weight

			_, err := parcel.Check(d)

			require.ErrorIs(t, err, errs.ErrValidation)
			assert.Equal(t, map[string][]string{parcel.FieldWeight: {parcel.MsgWeightPositive}}, fieldMessages(t, err))
		})
	}
}

func TestCheck_ValueBoundaries(t *testing.T) {
	t.Run("negative cent fails", func(t *testing.T) {
		d := validDraft()
		d.Value = "-0.01"

		_, err := parcel.Check(d)

		assert.Equal(t, map[string][]string{parcel.FieldValue: {parcel.MsgValueNegative}}, fieldMessages(t, err))
	})

	t.Run("zero succeeds", func(t *testing.T) {
		d := validDraft()
		d.Value = "0"

		reg, err := parcel.Check(d)

		require.NoError(t, err)
		assert.InDelta(t, 0.0, reg.Value, 0)
	})
}

func TestCheck_OneMessagePerFieldInRuleOrder(t *testing.T) {
	_, err := parcel.Check(parcel.Draft{
		Name:   strings.Repeat("x", parcel.MaxNameLength+1),
		Weight: "heavy",
		Value:  "",
		TypeID: "999",
	})

	var verr *errs.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, []string{
		parcel.MsgNameTooLong,
		parcel.MsgWeightNotNumber,
		parcel.MsgValueRequired,
		parcel.MsgTypeInvalid,
	}, verr.Messages())
	assert.Equal(t,
		"name must be at most 100 characters, weight must be a number, value is required, type must be a valid identifier",
		verr.Detail())
}

func TestCheck_RejectsNonFiniteNumbers(t *testing.T) {
	d := validDraft()
	d.Weight = "Inf"
	d.Value = "NaN"

	_, err := parcel.Check(d)

	assert.Equal(t, map[string][]string{
		parcel.FieldWeight: {parcel.MsgWeightNotNumber},
		parcel.FieldValue:  {parcel.MsgValueNotNumber},
	}, fieldMessages(t, err))
}

func TestCheck_MissingEverything(t *testing.T) {
	_, err := parcel.Check(parcel.Draft{})

	assert.Equal(t, map[string][]string{
		parcel.FieldName:   {parcel.MsgNameRequired},
		parcel.FieldWeight: {parcel.MsgWeightRequired},
		parcel.FieldValue:  {parcel.MsgValueRequired},
		parcel.FieldType:   {parcel.MsgTypeRequired},
	}, fieldMessages(t, err))
}
