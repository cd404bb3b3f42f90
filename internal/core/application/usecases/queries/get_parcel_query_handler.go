package queries

import (
	"context"
	"errors"
	"strings"

	"parcels/internal/core/domain/model/kernel"
	"parcels/internal/core/domain/model/parcel"
	"parcels/internal/pkg/errs"
)

// GetParcelQueryHandler resolves a parcel for its owner.
//
// Example:
//
//	lookup, err := handler.Handle(ctx, queries.NewGetParcelQuery(session, c.Param("parcel_id")))
//	if err != nil {
//	    return err // storage failure only
//	}
//	if !lookup.Found {
//	    return echo.NewHTTPError(http.StatusNotFound, "parcel not found")
//	}
type GetParcelQueryHandler struct {
	reader ParcelReader
}

func NewGetParcelQueryHandler(reader ParcelReader) GetParcelQueryHandler {
	return GetParcelQueryHandler{reader: reader}
}

// Handle returns Found=false for a missing session, a malformed id, an unknown id and a
// parcel owned by another session alike. Only storage failures are returned as errors.
func (h GetParcelQueryHandler) Handle(ctx context.Context, query GetParcelQuery) (ParcelLookup, error) {
	if err := query.Validate(); err != nil {
		return ParcelLookup{}, err
	}
	if query.session.IsEmpty() {
		return ParcelLookup{}, nil
	}

	id, err := kernel.UUIDFromString(strings.TrimSpace(query.rawID))
	if err != nil {
		return ParcelLookup{}, nil
	}

	p, err := h.reader.GetByIDAndSession(ctx, id, query.session)
	if errors.Is(err, errs.ErrObjectNotFound) {
		return ParcelLookup{}, nil
	}
	if err != nil {
		return ParcelLookup{}, err
	}

	if !parcel.IsVisible(p, query.session) {
		return ParcelLookup{}, nil
	}

	return ParcelLookup{Found: true, Parcel: NewParcelView(p)}, nil
}
