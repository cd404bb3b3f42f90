package http

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"parcels/internal/core/application/usecases/commands"
	"parcels/internal/core/application/usecases/queries"
	"parcels/internal/core/domain/model/parcel"
	"parcels/internal/core/ports"
	"parcels/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
)

// Parcel is the JSON form of a parcel shown to its owner.
type Parcel struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Weight       float64   `json:"weight"`
	Type         string    `json:"type"`
	TypeName     string    `json:"type_name"`
	Value        float64   `json:"value"`
	DeliveryCost *float64  `json:"delivery_cost"`
	CreatedAt    time.Time `json:"created_at"`
}

// ParcelType is the JSON form of a parcel type.
type ParcelType struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// ParcelTypePage is one page of parcel types. Next and Previous are absolute URLs.
type ParcelTypePage struct {
	Count    int64        `json:"count"`
	Next     *string      `json:"next"`
	Previous *string      `json:"previous"`
	Results  []ParcelType `json:"results"`
}

// ParcelPage is one page of the caller's parcels. Next and Previous are absolute URLs.
type ParcelPage struct {
	Count    int64    `json:"count"`
	Next     *string  `json:"next"`
	Previous *string  `json:"previous"`
	Results  []Parcel `json:"results"`
}

// rawValue keeps a submitted field as text so numbers, strings and blanks reach the
// registration rules unchanged, whichever encoding the client used.
type rawValue string

func (v *rawValue) UnmarshalJSON(data []byte) error {
	switch {
	case string(data) == "null":
		*v = ""
	case len(data) > 0 && data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*v = rawValue(s)
	default:
		*v = rawValue(data)
	}
	return nil
}

func (v *rawValue) UnmarshalParam(param string) error {
	*v = rawValue(param)
	return nil
}

type registerParcelRequest struct {
	Name   rawValue `json:"name"   form:"name"`
	Weight rawValue `json:"weight" form:"weight"`
	Value  rawValue `json:"value"  form:"value"`
	Type   rawValue `json:"type"   form:"type"`
}

func (r registerParcelRequest) draft() parcel.Draft {
	return parcel.Draft{
		Name:   string(r.Name),
		Weight: string(r.Weight),
		Value:  string(r.Value),
		TypeID: string(r.Type),
	}
}

// RegisterParcel handles POST /parcels/register/ - registers a parcel for the caller,
// creating a session when the caller has none.
func (s *Server) RegisterParcel(c echo.Context) error {
	session, err := s.sessions.ensure(c)
	if err != nil {
		return err
	}

	var req registerParcelRequest
	if err = c.Bind(&req); err != nil {
		return err
	}

	cmd, err := commands.NewRegisterParcelCommand(session, req.draft())
	if err != nil {
		return err
	}

	registered, err := s.registerParcelHandler.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}

	s.logger.InfoContext(c.Request().Context(), "Parcel registered", "parcel_id", registered.ID().String())
	return c.JSON(http.StatusCreated, toParcel(queries.NewParcelView(registered)))
}

// ListParcelTypes handles GET /parcels/types/ - parcel types ordered by name, paginated
// like the parcel listing.
func (s *Server) ListParcelTypes(c echo.Context) error {
	var page *int
	if err := runtime.BindQueryParameter("form", true, false, "page", c.QueryParams(), &page); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid page")
	}
	number := max(1, min(derefPage(page), ports.MaxPage))

	types, err := s.getParcelTypesHandler.Handle(c.Request().Context(), queries.NewGetParcelTypesQuery())
	if err != nil {
		return err
	}

	total := int64(len(types))
	if int64(number) > ports.PageCount(total, ports.DefaultPageSize) {
		return errs.NewObjectNotFoundError("page", number)
	}

	start := (number - 1) * ports.DefaultPageSize
	end := min(start+ports.DefaultPageSize, len(types))
	response := ParcelTypePage{
		Count:   total,
		Results: make([]ParcelType, 0, end-start),
	}
	for _, t := range types[start:end] {
		response.Results = append(response.Results, ParcelType{ID: t.ID.String(), Name: t.Name})
	}
	if int64(number) < ports.PageCount(total, ports.DefaultPageSize) {
		next := absolutePageURL(c, number+1)
		response.Next = &next
	}
	if number > 1 {
		previous := absolutePageURL(c, number-1)
		response.Previous = &previous
	}
	return c.JSON(http.StatusOK, response)
}

// ListParcels handles GET /parcels/ - one page of the caller's parcels.
func (s *Server) ListParcels(c echo.Context) error {
	var (
		page           *int
		typeID         *string
		costCalculated *string
	)

	params := c.QueryParams()
	if err := runtime.BindQueryParameter("form", true, false, "page", params, &page); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid page")
	}
	if err := runtime.BindQueryParameter("form", true, false, "type", params, &typeID); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid type")
	}
	if err := runtime.BindQueryParameter("form", true, false, "cost_calculated", params, &costCalculated); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid cost_calculated")
	}

	query, err := queries.NewGetParcelsQuery(currentSession(c), deref(typeID), deref(costCalculated), derefPage(page))
	if err != nil {
		return err
	}

	result, err := s.getParcelsHandler.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}

	response := ParcelPage{
		Count:   result.Total,
		Results: make([]Parcel, len(result.Parcels)),
	}
	for i, view := range result.Parcels {
		response.Results[i] = toParcel(view)
	}
	if result.HasNext() {
		next := absolutePageURL(c, result.Page+1)
		response.Next = &next
	}
	if result.HasPrevious() {
		previous := absolutePageURL(c, result.Page-1)
		response.Previous = &previous
	}
	return c.JSON(http.StatusOK, response)
}

// GetParcel handles GET /parcels/:parcel_id/. Parcels of other sessions, unknown ids
// and malformed ids all produce the same 404.
func (s *Server) GetParcel(c echo.Context) error {
	var rawID string
	err := runtime.BindStyledParameterWithOptions("simple", "parcel_id", c.Param("parcel_id"), &rawID,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Required: true})
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, MsgParcelNotFound)
	}

	lookup, err := s.getParcelHandler.Handle(c.Request().Context(), queries.NewGetParcelQuery(currentSession(c), rawID))
	if err != nil {
		return err
	}
	if !lookup.Found {
		return echo.NewHTTPError(http.StatusNotFound, MsgParcelNotFound)
	}
	return c.JSON(http.StatusOK, toParcel(lookup.Parcel))
}

func toParcel(view queries.ParcelView) Parcel {
	return Parcel{
		ID:           view.ID.String(),
		Name:         view.Name,
		Weight:       view.Weight,
		Type:         view.TypeID.String(),
		TypeName:     view.TypeName,
		Value:        view.Value,
		DeliveryCost: view.DeliveryCost,
		CreatedAt:    view.CreatedAt,
	}
}

// absolutePageURL rebuilds the request URL pointing at page. The first page carries no
// page parameter.
func absolutePageURL(c echo.Context, page int) string {
	return c.Scheme() + "://" + c.Request().Host + pageURL(c, page)
}

func pageURL(c echo.Context, page int) string {
	u := *c.Request().URL
	q := u.Query()
	if page <= 1 {
		q.Del("page")
	} else {
		q.Set("page", strconv.Itoa(page))
	}
	u.RawQuery = q.Encode()
	return u.RequestURI()
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func derefPage(page *int) int {
	if page == nil {
		return 1
	}
	return *page
}
