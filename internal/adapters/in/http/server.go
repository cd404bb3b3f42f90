package http

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"parcels/internal/core/application/usecases/commands"
	"parcels/internal/core/application/usecases/queries"
	"parcels/internal/core/domain/model/parcel"
	"parcels/internal/core/ports"

	"github.com/labstack/echo/v4"
)

// Use case handlers the server depends on.
type (
	RegisterParcelHandler interface {
		Handle(ctx context.Context, cmd commands.RegisterParcelCommand) (*parcel.Parcel, error)
	}

	GetParcelTypesHandler interface {
		Handle(ctx context.Context, query queries.GetParcelTypesQuery) ([]queries.GetParcelTypesQueryResponse, error)
	}

	GetParcelsHandler interface {
		Handle(ctx context.Context, query queries.GetParcelsQuery) (queries.GetParcelsQueryResponse, error)
	}

	GetParcelHandler interface {
		Handle(ctx context.Context, query queries.GetParcelQuery) (queries.ParcelLookup, error)
	}
)

// Config tunes the HTTP layer.
type Config struct {
	// SessionTTL is the lifetime of the session cookie.
	SessionTTL time.Duration
	// SecureCookies marks the session cookie Secure.
	SecureCookies bool
	// RegisterRateLimit is the number of registrations per second allowed per client.
	// Zero disables throttling.
	RegisterRateLimit float64
}

// Server handles the JSON API and the HTML pages.
// It coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	registerParcelHandler RegisterParcelHandler

	// Query handlers
	getParcelTypesHandler GetParcelTypesHandler
	getParcelsHandler     GetParcelsHandler
	getParcelHandler      GetParcelHandler

	sessions sessions
	config   Config
	logger   *slog.Logger
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(
	registerParcelHandler RegisterParcelHandler,
	getParcelTypesHandler GetParcelTypesHandler,
	getParcelsHandler GetParcelsHandler,
	getParcelHandler GetParcelHandler,
	sessionStore ports.SessionStore,
	config Config,
	logger *slog.Logger,
) *Server {
	return &Server{
		registerParcelHandler: registerParcelHandler,
		getParcelTypesHandler: getParcelTypesHandler,
		getParcelsHandler:     getParcelsHandler,
		getParcelHandler:      getParcelHandler,
		sessions: sessions{
			store:  sessionStore,
			ttl:    config.SessionTTL,
			secure: config.SecureCookies,
		},
		config: config,
		logger: logger.With("component", "http"),
	}
}

// Health handles GET /health.
func (s *Server) Health(c echo.Context) error {
	return c.String(http.StatusOK, "Healthy")
}
