package auth

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"cstdportal/internal/model"
	"cstdportal/internal/repository"
)

const sessionContextKey = "portal_session"

// SessionResolver resolves the active session for every request and stores it
// in the echo context. The signed cookie wins; when no valid cookie is
// present the resolver falls back to the session persisted in the local
// store, so a fresh browser on the same device stays logged in the way the
// original localStorage build did. It never rejects a request.
func SessionResolver(jwtService *JWTService, sessionRepo repository.SessionRepository) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Set(sessionContextKey, resolve(c, jwtService, sessionRepo))
			return next(c)
		}
	}
}

func resolve(c echo.Context, jwtService *JWTService, sessionRepo repository.SessionRepository) model.Session {
	if cookie, err := c.Cookie(SessionCookieName); err == nil && cookie.Value != "" {
		if session, err := jwtService.ValidateToken(cookie.Value); err == nil {
			return session
		}
	}
	return sessionRepo.Current(c.Request().Context())
}

// CurrentSession returns the session resolved for this request, or the zero
// session when the visitor is anonymous.
func CurrentSession(c echo.Context) model.Session {
	if s, ok := c.Get(sessionContextKey).(model.Session); ok {
		return s
	}
	return model.Session{}
}

// SetSessionCookie attaches a signed session cookie to the response.
func SetSessionCookie(c echo.Context, jwtService *JWTService, session model.Session) error {
	token, err := jwtService.GenerateSessionToken(session)
	if err != nil {
		return err
	}
	c.SetCookie(&http.Cookie{
		Name:     SessionCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(SessionTokenExpiry.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

// ClearSessionCookie expires the session cookie.
func ClearSessionCookie(c echo.Context) {
	c.SetCookie(&http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
