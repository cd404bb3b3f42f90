package queries

import (
	"context"

	"parcels/internal/core/ports"
	"parcels/internal/pkg/errs"
)

// GetParcelsQueryHandler serves the paginated listing of the caller's parcels.
type GetParcelsQueryHandler struct {
	reader ParcelReader
}

func NewGetParcelsQueryHandler(reader ParcelReader) GetParcelsQueryHandler {
	return GetParcelsQueryHandler{reader: reader}
}

// Handle returns the requested page. A page past the last one is reported as an
// errs.ObjectNotFoundError; the first page of an empty listing is not.
func (h GetParcelsQueryHandler) Handle(ctx context.Context, query GetParcelsQuery) (GetParcelsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetParcelsQueryResponse{}, err
	}

	response := GetParcelsQueryResponse{
		Parcels:  make([]ParcelView, 0),
		Page:     query.Page().Number,
		PageSize: query.Page().Size,
	}

	if !query.matchesNone {
		page, err := h.reader.ListBySession(ctx, query.Session(), query.Filter(), query.Page())
		if err != nil {
			return GetParcelsQueryResponse{}, err
		}
		response.Total = page.Total
		for _, p := range page.Parcels {
			response.Parcels = append(response.Parcels, NewParcelView(p))
		}
	}

	if int64(response.Page) > ports.PageCount(response.Total, response.PageSize) {
		return GetParcelsQueryResponse{}, errs.NewObjectNotFoundError("page", response.Page)
	}

	return response, nil
}
