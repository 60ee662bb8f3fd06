package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid or expired session")
	// ErrUnavailable means the credential store could not be consulted.
	ErrUnavailable = errors.New("credential store unavailable")
)

const issuer = "schoolsite-admin"

// Session is the authenticated admin attached to a request.
type Session struct {
	AdminID   string    `json:"admin_id"`
	Email     string    `json:"email"`
	ExpiresAt time.Time `json:"expires_at"`
}

type claims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

type LoginResult struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}
