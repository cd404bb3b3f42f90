package http

import (
	"context"
	"log/slog"
	"time"

	"parcels/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"
	"golang.org/x/time/rate"
)

const rateLimiterExpiry = 3 * time.Minute

// NewRouter builds the echo instance serving the API, the pages and the API docs.
func NewRouter(s *Server) (*echo.Echo, error) {
	doc, err := LoadOpenAPI()
	if err != nil {
		return nil, err
	}
	if err = registerSwagger(doc); err != nil {
		return nil, err
	}
	validateRequest, err := requestValidator(doc)
	if err != nil {
		return nil, err
	}
	pages, err := newRenderer()
	if err != nil {
		return nil, err
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Renderer = pages
	e.HTTPErrorHandler = errorHandler(s.logger)

	e.Use(middleware.RequestID())
	e.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{DisablePrintStack: true}))
	e.Use(requestLogger(s.logger))
	e.Use(s.sessions.load())

	throttle := s.registerThrottle()
	requireSession := s.sessions.require()

	e.GET("/health", s.Health)
	e.GET("/swagger/*", echoSwagger.EchoWrapHandler(echoSwagger.InstanceName(SwaggerInstance)))

	e.POST("/parcels/register/", s.RegisterParcel, throttle, validateRequest)
	e.GET("/parcels/types/", s.ListParcelTypes, validateRequest)
	e.GET("/parcels/", s.ListParcels, validateRequest)
	e.GET("/parcels/:parcel_id/", s.GetParcel, validateRequest)

	e.GET("/", s.ListPage, requireSession)
	e.GET("/register/", s.RegisterPage, requireSession)
	e.POST("/register/", s.SubmitRegisterPage, throttle, requireSession)
	e.GET("/types/", s.TypesPage, requireSession)
	e.GET("/parcel/:parcel_id/", s.DetailPage, requireSession)

	return e, nil
}

// registerThrottle limits registrations per client IP.
func (s *Server) registerThrottle() echo.MiddlewareFunc {
	if s.config.RegisterRateLimit <= 0 {
		return func(next echo.HandlerFunc) echo.HandlerFunc { return next }
	}

	burst := int(s.config.RegisterRateLimit)
	if burst < 1 {
		burst = 1
	}
	store := middleware.NewRateLimiterMemoryStoreWithConfig(middleware.RateLimiterMemoryStoreConfig{
		Rate:      rate.Limit(s.config.RegisterRateLimit),
		Burst:     burst,
		ExpiresIn: rateLimiterExpiry,
	})
	return middleware.RateLimiter(store)
}

func requestLogger(logger *slog.Logger) echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogStatus:    true,
		LogMethod:    true,
		LogURI:       true,
		LogLatency:   true,
		LogRequestID: true,
		LogRemoteIP:  true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			level := slog.LevelInfo
			attrs := []slog.Attr{
				slog.String("method", v.Method),
				slog.String("uri", v.URI),
				slog.Int("status", v.Status),
				slog.Duration("latency", v.Latency),
				slog.String("request_id", v.RequestID),
				slog.String("remote_ip", v.RemoteIP),
			}
			if v.Error != nil {
				level = slog.LevelWarn
				attrs = append(attrs, slog.String("error", errs.Sanitize(v.Error.Error())))
			}
			logger.LogAttrs(context.WithoutCancel(c.Request().Context()), level, "Request handled", attrs...)
			return nil
		},
	})
}
