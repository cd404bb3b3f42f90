package http

import (
	"fmt"
	"net/http"
	"time"

	"parcels/internal/core/domain/model/kernel"
	"parcels/internal/core/ports"

	"github.com/labstack/echo/v4"
)

// SessionCookieName is the cookie carrying the caller's session key.
const SessionCookieName = "sessionid"

const sessionContextKey = "parcels.session"

// sessions resolves the caller's session from the cookie. Only keys issued by the
// store are honoured; anything else is treated as no session.
type sessions struct {
	store  ports.SessionStore
	ttl    time.Duration
	secure bool
}

// load attaches a known session to the context without creating one.
func (s sessions) load() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cookie, err := c.Cookie(SessionCookieName)
			if err != nil {
				return next(c)
			}

			key, err := kernel.SessionKeyFromString(cookie.Value)
			if err != nil {
				return next(c)
			}

			exists, err := s.store.Exists(c.Request().Context(), key)
			if err != nil {
				return fmt.Errorf("failed to look up session: %w", err)
			}
			if exists {
				c.Set(sessionContextKey, key)
			}
			return next(c)
		}
	}
}

// require makes sure every request below it has a session.
func (s sessions) require() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if _, err := s.ensure(c); err != nil {
				return err
			}
			return next(c)
		}
	}
}

// ensure returns the caller's session, issuing a new one when there is none.
func (s sessions) ensure(c echo.Context) (kernel.SessionKey, error) {
	if key := currentSession(c); !key.IsEmpty() {
		return key, nil
	}

	key, err := s.store.Create(c.Request().Context())
	if err != nil {
		return kernel.SessionKey{}, fmt.Errorf("failed to create session: %w", err)
	}

	c.SetCookie(&http.Cookie{
		Name:     SessionCookieName,
		Value:    key.String(),
		Path:     "/",
		MaxAge:   int(s.ttl.Seconds()),
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
	})
	c.Set(sessionContextKey, key)
	return key, nil
}

// currentSession returns the caller's session or the zero key.
func currentSession(c echo.Context) kernel.SessionKey {
	key, _ := c.Get(sessionContextKey).(kernel.SessionKey)
	return key
}
