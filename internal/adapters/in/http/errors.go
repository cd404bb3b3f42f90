package http

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"parcels/internal/core/application/usecases/queries"
	"parcels/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Error is the body of every error response.
type Error struct {
	Status string              `json:"status"`
	Detail string              `json:"detail"`
	Code   int                 `json:"code"`
	Fields map[string][]string `json:"fields,omitempty"`
}

// MsgParcelNotFound is shown for every detail lookup that cannot show a parcel.
const MsgParcelNotFound = "parcel not found"

// errorHandler converts errors returned by handlers and middleware into the error
// envelope and logs them on one line.
func errorHandler(logger *slog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		body := toError(err)
		logger.ErrorContext(c.Request().Context(), "Request failed",
			"method", c.Request().Method,
			"path", c.Request().URL.Path,
			"code", body.Code,
			"error", errs.Sanitize(err.Error()))

		var writeErr error
		if c.Request().Method == http.MethodHead {
			writeErr = c.NoContent(body.Code)
		} else {
			writeErr = c.JSON(body.Code, body)
		}
		if writeErr != nil {
			logger.Error("Failed to write error response", "error", errs.Sanitize(writeErr.Error()))
		}
	}
}

func toError(err error) Error {
	var (
		validationErr *errs.ValidationError
		httpErr       *echo.HTTPError
	)

	switch {
	case errors.As(err, &validationErr):
		body := newError(http.StatusBadRequest, validationErr.Detail())
		body.Fields = validationErr.FieldMessages()
		return body
	case errors.Is(err, queries.ErrNoActiveSession):
		return newError(http.StatusBadRequest, err.Error())
	case errors.Is(err, errs.ErrObjectNotFound):
		return newError(http.StatusNotFound, err.Error())
	case errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		return newError(http.StatusBadRequest, err.Error())
	case errors.Is(err, errs.ErrRateUnavailable):
		return newError(http.StatusServiceUnavailable, err.Error())
	case errors.As(err, &httpErr):
		msg := http.StatusText(httpErr.Code)
		if httpErr.Message != nil {
			msg = fmt.Sprint(httpErr.Message)
		}
		return newError(httpErr.Code, msg)
	default:
		return newError(http.StatusInternalServerError, err.Error())
	}
}

func newError(code int, detail string) Error {
	return Error{Status: "error", Detail: errs.Sanitize(detail), Code: code}
}
