package http

import (
	_ "embed"
	"errors"
	"fmt"
	"net/http"
	"sync"

	"parcels/internal/pkg/errs"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/getkin/kin-openapi/openapi3filter"
	"github.com/getkin/kin-openapi/routers"
	"github.com/getkin/kin-openapi/routers/legacy"
	"github.com/labstack/echo/v4"
	"github.com/swaggo/swag"
)

// SwaggerInstance is the swag registry name under which the API document is served.
const SwaggerInstance = "parcels"

//go:embed openapi.yaml
var openAPIDocument []byte

//nolint:gochecknoglobals // swag keeps a process-wide registry
var registerSwaggerOnce sync.Once

// LoadOpenAPI parses and validates the embedded API document.
func LoadOpenAPI() (*openapi3.T, error) {
	loader := openapi3.NewLoader()
	doc, err := loader.LoadFromData(openAPIDocument)
	if err != nil {
		return nil, fmt.Errorf("failed to load OpenAPI document: %w", err)
	}
	if err = doc.Validate(loader.Context); err != nil {
		return nil, fmt.Errorf("invalid OpenAPI document: %w", err)
	}
	return doc, nil
}

// swaggerDoc serves the API document to the swagger UI as JSON.
type swaggerDoc struct {
	json string
}

func (d swaggerDoc) ReadDoc() string {
	return d.json
}

func registerSwagger(doc *openapi3.T) error {
	data, err := doc.MarshalJSON()
	if err != nil {
		return err
	}
	registerSwaggerOnce.Do(func() {
		swag.Register(SwaggerInstance, swaggerDoc{json: string(data)})
	})
	return nil
}

// requestValidator checks query and path parameters of documented operations against
// the API document. Bodies are left to domain validation, which reports per-field messages.
func requestValidator(doc *openapi3.T) (echo.MiddlewareFunc, error) {
	router, err := legacy.NewRouter(doc)
	if err != nil {
		return nil, err
	}

	options := &openapi3filter.Options{
		ExcludeRequestBody: true,
		AuthenticationFunc: openapi3filter.NoopAuthenticationFunc,
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			route, pathParams, err := router.FindRoute(req)
			if err != nil {
				var routeErr *routers.RouteError
				if errors.As(err, &routeErr) {
					return next(c)
				}
				return err
			}

			input := &openapi3filter.RequestValidationInput{
				Request:    req,
				PathParams: pathParams,
				Route:      route,
				Options:    options,
			}
			if err = openapi3filter.ValidateRequest(req.Context(), input); err != nil {
				return echo.NewHTTPError(http.StatusBadRequest, errs.Sanitize(requestErrorMessage(err)))
			}
			return next(c)
		}
	}, nil
}

func requestErrorMessage(err error) string {
	var reqErr *openapi3filter.RequestError
	if errors.As(err, &reqErr) {
		if reqErr.Parameter != nil {
			return fmt.Sprintf("invalid %s parameter %q", reqErr.Parameter.In, reqErr.Parameter.Name)
		}
		return reqErr.Error()
	}
	return err.Error()
}
