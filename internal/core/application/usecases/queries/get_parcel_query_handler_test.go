package queries_test

import (
	"testing"
	"time"

	"parcels/internal/core/application/usecases/queries"
	"parcels/internal/core/domain/model/kernel"
	"parcels/internal/core/domain/model/parcel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestGetParcelQueryHandler_OwnerSeesParcel(t *testing.T) {
	owner := session("session-a")
	p := newParcel(owner, newType("Misc"), time.Now(), costOf(42))
	handler := queries.NewGetParcelQueryHandler(&memoryReader{parcels: []*parcel.Parcel{p}})

	lookup, err := handler.Handle(t.Context(), queries.NewGetParcelQuery(owner, p.ID().String()))
	require.NoError(t, err)
	require.True(t, lookup.Found)
	assert.True(t, lookup.Parcel.ID.IsEqual(p.ID()))
	assert.Equal(t, "Misc", lookup.Parcel.TypeName)
	require.NotNil(t, lookup.Parcel.DeliveryCost)
	assert.InDelta(t, 42.0, *lookup.Parcel.DeliveryCost, 0)
}

func TestGetParcelQueryHandler_ForeignParcelLooksMissing(t *testing.T) {
	owner := session("session-a")
	stranger := session("session-b")
	p := newParcel(owner, newType("Misc"), time.Now(), nil)
	handler := queries.NewGetParcelQueryHandler(&memoryReader{parcels: []*parcel.Parcel{p}})

	foreign, err := handler.Handle(t.Context(), queries.NewGetParcelQuery(stranger, p.ID().String()))
	require.NoError(t, err)

	missing, err := handler.Handle(t.Context(), queries.NewGetParcelQuery(stranger, kernel.NewUUID().String()))
	require.NoError(t, err)

	assert.False(t, foreign.Found)
	assert.Equal(t, missing, foreign)
}

func TestGetParcelQueryHandler_UnresolvableLookupsAreIdentical(t *testing.T) {
	owner := session("session-a")
	p := newParcel(owner, newType("Misc"), time.Now(), nil)
	reader := new(MockParcelReader)
	handler := queries.NewGetParcelQueryHandler(reader)

	tests := []struct {
		name  string
		query queries.GetParcelQuery
	}{
		{"no session", queries.NewGetParcelQuery(kernel.SessionKey{}, p.ID().String())},
		{"malformed id", queries.NewGetParcelQuery(owner, "42")},
		{"empty id", queries.NewGetParcelQuery(owner, "")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lookup, err := handler.Handle(t.Context(), tt.query)
			require.NoError(t, err)
			assert.Equal(t, queries.ParcelLookup{}, lookup)
		})
	}
	reader.AssertNotCalled(t, "GetByIDAndSession", mock.Anything, mock.Anything, mock.Anything)
}

func TestGetParcelQueryHandler_StorageErrorPropagates(t *testing.T) {
	handler := queries.NewGetParcelQueryHandler(&memoryReader{err: errStorage})

	_, err := handler.Handle(t.Context(), queries.NewGetParcelQuery(session("session-a"), kernel.NewUUID().String()))
	require.ErrorIs(t, err, errStorage)
}

func TestGetParcelQueryHandler_RejectsUnconstructedQuery(t *testing.T) {
	handler := queries.NewGetParcelQueryHandler(&memoryReader{})

	_, err := handler.Handle(t.Context(), queries.GetParcelQuery{})
	require.ErrorIs(t, err, queries.ErrGetParcelQueryIsNotConstructed)
}
