package queries

import (
	"errors"
	"strings"

	"parcels/internal/core/domain/model/kernel"
	"parcels/internal/core/ports"
	"parcels/internal/pkg/guard"
)

var (
	ErrGetParcelsQueryIsNotConstructed = errors.New(
		"GetParcelsQuery must be created via NewGetParcelsQuery constructor",
	)
	// ErrNoActiveSession is returned when a listing is requested without a session.
	ErrNoActiveSession = errors.New("no active session")
)

// GetParcelsQuery lists the caller's parcels. Filters apply only within the caller's
// own parcels.
//
// Raw filter values are interpreted leniently:
//   - typeID: empty means any type; a value that is not an identifier matches nothing
//   - costCalculated: "true" or "false" select priced or unpriced parcels, anything else is ignored
//   - page: 1-based, values below 1 select the first page and values above ports.MaxPage select ports.MaxPage
//
// Example:
//
//	query, err := NewGetParcelsQuery(session, c.QueryParam("type"), c.QueryParam("cost_calculated"), page)
//	if errors.Is(err, ErrNoActiveSession) {
//	    return echo.NewHTTPError(http.StatusBadRequest, err.Error())
//	}
type GetParcelsQuery struct {
	session     kernel.SessionKey
	filter      ports.ParcelFilter
	matchesNone bool
	page        ports.Page
	guard       guard.ConstructorGuard
}

func NewGetParcelsQuery(session kernel.SessionKey, typeID, costCalculated string, page int) (GetParcelsQuery, error) {
	if session.IsEmpty() {
		return GetParcelsQuery{}, ErrNoActiveSession
	}
	page = max(1, min(page, ports.MaxPage))

	q := GetParcelsQuery{
		session: session,
		page:    ports.Page{Number: page, Size: ports.DefaultPageSize},
		guard:   guard.NewConstructorGuard(),
	}

	if typeID = strings.TrimSpace(typeID); typeID != "" {
		id, err := kernel.UUIDFromString(typeID)
		if err != nil {
			q.matchesNone = true
		} else {
			q.filter.TypeID = &id
		}
	}

	switch strings.TrimSpace(costCalculated) {
	case "true":
		q.filter.Cost = ports.CostCalculated
	case "false":
		q.filter.Cost = ports.CostNotCalculated
	}

	return q, nil
}

// Validate ensures the query was created through the constructor.
func (q GetParcelsQuery) Validate() error {
	return q.guard.Validate(ErrGetParcelsQueryIsNotConstructed)
}

func (q GetParcelsQuery) Session() kernel.SessionKey { return q.session }

func (q GetParcelsQuery) Filter() ports.ParcelFilter { return q.filter }

func (q GetParcelsQuery) Page() ports.Page { return q.page }

// GetParcelsQueryResponse is one page of the caller's parcels.
type GetParcelsQueryResponse struct {
	Parcels  []ParcelView
	Total    int64
	Page     int
	PageSize int
}

// HasNext reports whether a later page exists.
func (r GetParcelsQueryResponse) HasNext() bool {
	return int64(r.Page) < ports.PageCount(r.Total, r.PageSize)
}

// HasPrevious reports whether an earlier page exists.
func (r GetParcelsQueryResponse) HasPrevious() bool {
	return r.Page > 1
}
