package http

import (
	"embed"
	"errors"
	"fmt"
	"html/template"
	"io"
	"net/http"
	"strconv"

	"parcels/internal/core/application/usecases/commands"
	"parcels/internal/core/application/usecases/queries"
	"parcels/internal/core/domain/model/parcel"
	"parcels/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Page templates.
const (
	pageParcelList     = "parcel_list.html"
	pageRegisterParcel = "register_parcel.html"
	pageParcelTypes    = "parcel_types.html"
	pageParcelDetail   = "parcel_detail.html"
)

//go:embed templates/*.html
var templateFS embed.FS

// renderer renders each page inside the shared layout.
type renderer struct {
	pages map[string]*template.Template
}

var _ echo.Renderer = (*renderer)(nil)

func newRenderer() (*renderer, error) {
	funcs := template.FuncMap{
		"cost": func(cost *float64) string {
			if cost == nil {
				return "not calculated yet"
			}
			return strconv.FormatFloat(*cost, 'f', 2, 64)
		},
	}

	r := &renderer{pages: make(map[string]*template.Template)}
	for _, name := range []string{pageParcelList, pageRegisterParcel, pageParcelTypes, pageParcelDetail} {
		t, err := template.New(name).Funcs(funcs).ParseFS(templateFS, "templates/layout.html", "templates/"+name)
		if err != nil {
			return nil, fmt.Errorf("failed to parse template %s: %w", name, err)
		}
		r.pages[name] = t
	}
	return r, nil
}

func (r *renderer) Render(w io.Writer, name string, data any, _ echo.Context) error {
	t, ok := r.pages[name]
	if !ok {
		return fmt.Errorf("unknown template %s", name)
	}
	return t.ExecuteTemplate(w, "layout", data)
}

type parcelListPage struct {
	Parcels        []queries.ParcelView
	Types          []queries.GetParcelTypesQueryResponse
	TypeFilter     string
	CostCalculated string
	Page           int
	NextURL        string
	PreviousURL    string
}

type registerParcelPage struct {
	Types  []queries.GetParcelTypesQueryResponse
	Form   parcel.Draft
	Errors map[string][]string
}

type parcelTypesPage struct {
	Types []queries.GetParcelTypesQueryResponse
}

type parcelDetailPage struct {
	Parcel *queries.ParcelView
	Error  string
}

// ListPage handles GET / - the caller's parcels with type and cost filters.
func (s *Server) ListPage(c echo.Context) error {
	ctx := c.Request().Context()
	typeFilter := c.QueryParam("type")
	costCalculated := c.QueryParam("cost_calculated")

	page, err := strconv.Atoi(c.QueryParam("page"))
	if err != nil {
		page = 1
	}

	query, err := queries.NewGetParcelsQuery(currentSession(c), typeFilter, costCalculated, page)
	if err != nil {
		return err
	}

	result, err := s.getParcelsHandler.Handle(ctx, query)
	if errors.Is(err, errs.ErrObjectNotFound) {
		return c.Redirect(http.StatusFound, pageURL(c, 1))
	}
	if err != nil {
		return err
	}

	types, err := s.getParcelTypesHandler.Handle(ctx, queries.NewGetParcelTypesQuery())
	if err != nil {
		return err
	}

	data := parcelListPage{
		Parcels:        result.Parcels,
		Types:          types,
		TypeFilter:     typeFilter,
		CostCalculated: costCalculated,
		Page:           result.Page,
	}
	if result.HasNext() {
		data.NextURL = pageURL(c, result.Page+1)
	}
	if result.HasPrevious() {
		data.PreviousURL = pageURL(c, result.Page-1)
	}
	return c.Render(http.StatusOK, pageParcelList, data)
}

// RegisterPage handles GET /register/.
func (s *Server) RegisterPage(c echo.Context) error {
	types, err := s.getParcelTypesHandler.Handle(c.Request().Context(), queries.NewGetParcelTypesQuery())
	if err != nil {
		return err
	}
	return c.Render(http.StatusOK, pageRegisterParcel, registerParcelPage{Types: types})
}

// SubmitRegisterPage handles POST /register/. On success it redirects to the list,
// otherwise the form is shown again with the submitted values and the messages.
func (s *Server) SubmitRegisterPage(c echo.Context) error {
	ctx := c.Request().Context()
	draft := parcel.Draft{
		Name:   c.FormValue("name"),
		Weight: c.FormValue("weight"),
		Value:  c.FormValue("value"),
		TypeID: c.FormValue("type"),
	}

	cmd, err := commands.NewRegisterParcelCommand(currentSession(c), draft)
	if err == nil {
		var registered *parcel.Parcel
		registered, err = s.registerParcelHandler.Handle(ctx, cmd)
		if err == nil {
			s.logger.InfoContext(ctx, "Parcel registered from form", "parcel_id", registered.ID().String())
			return c.Redirect(http.StatusFound, "/")
		}
	}

	var validationErr *errs.ValidationError
	if !errors.As(err, &validationErr) {
		return err
	}

	types, err := s.getParcelTypesHandler.Handle(ctx, queries.NewGetParcelTypesQuery())
	if err != nil {
		return err
	}
	return c.Render(http.StatusOK, pageRegisterParcel, registerParcelPage{
		Types:  types,
		Form:   draft,
		Errors: validationErr.FieldMessages(),
	})
}

// TypesPage handles GET /types/.
func (s *Server) TypesPage(c echo.Context) error {
	types, err := s.getParcelTypesHandler.Handle(c.Request().Context(), queries.NewGetParcelTypesQuery())
	if err != nil {
		return err
	}
	return c.Render(http.StatusOK, pageParcelTypes, parcelTypesPage{Types: types})
}

// DetailPage handles GET /parcel/:parcel_id/.
func (s *Server) DetailPage(c echo.Context) error {
	query := queries.NewGetParcelQuery(currentSession(c), c.Param("parcel_id"))
	lookup, err := s.getParcelHandler.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}
	if !lookup.Found {
		return c.Render(http.StatusNotFound, pageParcelDetail, parcelDetailPage{Error: MsgParcelNotFound})
	}
	return c.Render(http.StatusOK, pageParcelDetail, parcelDetailPage{Parcel: &lookup.Parcel})
}
