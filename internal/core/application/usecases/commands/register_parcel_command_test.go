package commands_test

import (
	"testing"

	"parcels/internal/core/application/usecases/commands"
	"parcels/internal/core/domain/model/kernel"
	"parcels/internal/core/domain/model/parcel"
	"parcels/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRegisterParcelCommand_ValidDraft(t *testing.T) {
	typeID := kernel.NewUUID()
	session := kernel.NewSessionKey()

	cmd, err := commands.NewRegisterParcelCommand(session, parcel.Draft{
		Name: " Winter jacket ", Weight: "1.5", Value: "0", TypeID: typeID.String(),
	})
	require.NoError(t, err)
	require.NoError(t, cmd.Validate())

	assert.True(t, cmd.Session().IsEqual(session))
	assert.Equal(t, "Winter jacket", cmd.Registration().Name)
	assert.InDelta(t, 1.5, cmd.Registration().Weight, 0)
	assert.InDelta(t, 0.0, cmd.Registration().Value, 0)
	assert.True(t, cmd.Registration().TypeID.IsEqual(typeID))
}

func TestNewRegisterParcelCommand_ReportsFieldErrors(t *testing.T) {
	_, err := commands.NewRegisterParcelCommand(kernel.NewSessionKey(), parcel.Draft{
		Name: "Box", Weight: "-1", Value: "-0.01", TypeID: kernel.NewUUID().String(),
	})
	require.ErrorIs(t, err, errs.ErrValidation)

	var verr *errs.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, map[string][]string{
		parcel.FieldWeight: {parcel.MsgWeightPositive},
		parcel.FieldValue:  {parcel.MsgValueNegative},
	}, verr.FieldMessages())
}

func TestNewRegisterParcelCommand_RequiresSession(t *testing.T) {
	_, err := commands.NewRegisterParcelCommand(kernel.SessionKey{}, parcel.Draft{
		Name: "Box", Weight: "1", Value: "1", TypeID: kernel.NewUUID().String(),
	})
	require.Error(t, err)
}

func TestRegisterParcelCommand_Validate_WhenNotConstructed_ShouldReturnError(t *testing.T) {
	var cmd commands.RegisterParcelCommand

	err := cmd.Validate()

	require.Error(t, err)
	assert.Equal(t, commands.ErrRegisterParcelCommandIsNotConstructed, err)
}
