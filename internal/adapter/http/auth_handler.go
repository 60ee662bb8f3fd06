package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	mw "schoolsite-backend/internal/adapter/middleware"
	"schoolsite-backend/internal/infrastructure/logger"
	"schoolsite-backend/internal/usecase/auth"
)

type AuthHandler struct {
	uc  *auth.Usecase
	log *logger.Logger
}

func NewAuthHandler(uc *auth.Usecase, log *logger.Logger) *AuthHandler {
	return &AuthHandler{uc: uc, log: log.With("handler", "auth")}
}

type loginReq struct {
	Email    string `json:"email"    validate:"required,max=255"`
	Password string `json:"password" validate:"required,max=200"`
}

type loginResp struct {
	Valid     bool       `json:"valid"`
	Token     string     `json:"token,omitempty"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
}

// credentialFailure distinguishes a wrong password from an unavailable store.
func (h *AuthHandler) credentialFailure(c echo.Context, err error) error {
	if errors.Is(err, auth.ErrInvalidCredentials) {
		return c.JSON(http.StatusUnauthorized, loginResp{Valid: false})
	}
	return respondError(c, h.log, err)
}

func (h *AuthHandler) Login(c echo.Context) error {
	var req loginReq
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}
	res, err := h.uc.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			h.log.Warn("admin login failed", "ip", c.RealIP())
		}
		return h.credentialFailure(c, err)
	}
	return c.JSON(http.StatusOK, loginResp{Valid: true, Token: res.Token, ExpiresAt: &res.ExpiresAt})
}

// Verify answers {valid} for a bearer session or, without one, for an email/password body.
func (h *AuthHandler) Verify(c echo.Context) error {
	if tok := mw.BearerToken(c.Request()); tok != "" {
		s, err := h.uc.ParseToken(tok)
		if err != nil {
			return c.JSON(http.StatusUnauthorized, loginResp{Valid: false})
		}
		return c.JSON(http.StatusOK, loginResp{Valid: true, ExpiresAt: &s.ExpiresAt})
	}
	var req loginReq
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}
	if _, err := h.uc.VerifyCredentials(c.Request().Context(), req.Email, req.Password); err != nil {
		return h.credentialFailure(c, err)
	}
	return c.JSON(http.StatusOK, loginResp{Valid: true})
}
