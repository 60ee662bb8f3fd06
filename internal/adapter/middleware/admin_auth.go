package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"schoolsite-backend/internal/usecase/auth"
)

type TokenParser interface {
	ParseToken(token string) (*auth.Session, error)
}

type sessionKey struct{}

const sessionContextKey = "admin_session"

// BearerToken extracts the token from an "Authorization: Bearer <token>" header.
func BearerToken(r *http.Request) string {
	h := strings.TrimSpace(r.Header.Get(echo.HeaderAuthorization))
	scheme, token, ok := strings.Cut(h, " ")
	if !ok || !strings.EqualFold(scheme, "bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}

// AdminAuth requires a valid admin session and attaches it to the request.
func AdminAuth(p TokenParser) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			s, err := p.ParseToken(BearerToken(c.Request()))
			if err != nil {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
			}
			c.Set(sessionContextKey, s)
			c.SetRequest(c.Request().WithContext(WithSession(c.Request().Context(), s)))
			return next(c)
		}
	}
}

func WithSession(ctx context.Context, s *auth.Session) context.Context {
	return context.WithValue(ctx, sessionKey{}, s)
}

func SessionFromContext(ctx context.Context) (*auth.Session, bool) {
	s, ok := ctx.Value(sessionKey{}).(*auth.Session)
	return s, ok && s != nil
}

func SessionFrom(c echo.Context) (*auth.Session, bool) {
	s, ok := c.Get(sessionContextKey).(*auth.Session)
	return s, ok && s != nil
}
