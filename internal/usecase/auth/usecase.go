package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"schoolsite-backend/internal/domain/admin"
	"schoolsite-backend/internal/infrastructure/logger"
	"schoolsite-backend/pkg/id"
)

// dummyHash keeps unknown-email logins as slow as wrong-password ones.
var dummyHash, _ = bcrypt.GenerateFromPassword([]byte("not-a-real-password"), bcrypt.DefaultCost)

type Usecase struct {
	admins admin.Repository
	secret []byte
	ttl    time.Duration
	log    *logger.Logger
	now    func() time.Time
}

func NewUsecase(admins admin.Repository, secret string, ttl time.Duration, log *logger.Logger) *Usecase {
	return &Usecase{
		admins: admins,
		secret: []byte(secret),
		ttl:    ttl,
		log:    log.With("usecase", "auth"),
		now:    time.Now,
	}
}

// VerifyCredentials checks an email/password pair against the stored bcrypt hash.
func (u *Usecase) VerifyCredentials(ctx context.Context, email, password string) (*admin.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil, ErrInvalidCredentials
	}
	usr, err := u.admins.GetByEmail(ctx, email)
	switch {
	case errors.Is(err, admin.ErrNotFound):
		_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
		return nil, ErrInvalidCredentials
	case err != nil:
		u.log.Error("admin lookup failed", "error", err)
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(usr.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return usr, nil
}

func (u *Usecase) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	usr, err := u.VerifyCredentials(ctx, email, password)
	if err != nil {
		return nil, err
	}
	now := u.now().UTC()
	res, err := u.issue(usr, now)
	if err != nil {
		return nil, err
	}
	if err := u.admins.TouchLogin(ctx, usr.ID, now); err != nil {
		u.log.Warn("last login not recorded", "admin_id", usr.ID, "error", err)
	}
	u.log.Info("admin logged in", "admin_id", usr.ID)
	return res, nil
}

func (u *Usecase) issue(usr *admin.User, now time.Time) (*LoginResult, error) {
	exp := now.Add(u.ttl)
	c := claims{
		Email: usr.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   usr.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString(u.secret)
	if err != nil {
		return nil, fmt.Errorf("sign session: %w", err)
	}
	return &LoginResult{Token: signed, ExpiresAt: exp.Truncate(time.Second)}, nil
}

// ParseToken validates a bearer token and returns its session.
func (u *Usecase) ParseToken(token string) (*Session, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, ErrInvalidToken
	}
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(u.now),
	)
	var c claims
	tok, err := parser.ParseWithClaims(token, &c, func(*jwt.Token) (any, error) { return u.secret, nil })
	if err != nil || !tok.Valid {
		return nil, ErrInvalidToken
	}
	if c.Subject == "" || c.ExpiresAt == nil {
		return nil, ErrInvalidToken
	}
	return &Session{AdminID: c.Subject, Email: c.Email, ExpiresAt: c.ExpiresAt.Time.UTC()}, nil
}

// EnsureAdmin creates the admin, or resets its password when the stored hash no longer matches.
func (u *Usecase) EnsureAdmin(ctx context.Context, email, password, name string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return errors.New("admin email and password are required")
	}
	existing, err := u.admins.GetByEmail(ctx, email)
	switch {
	case err == nil:
		if bcrypt.CompareHashAndPassword([]byte(existing.PasswordHash), []byte(password)) == nil {
			return nil
		}
		hash, herr := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if herr != nil {
			return fmt.Errorf("hash admin password: %w", herr)
		}
		if err := u.admins.UpdatePassword(ctx, existing.ID, string(hash)); err != nil {
			return fmt.Errorf("update admin password: %w", err)
		}
		u.log.Info("admin password rotated", "admin_id", existing.ID)
		return nil
	case !errors.Is(err, admin.ErrNotFound):
		return fmt.Errorf("lookup admin: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}
	usr := &admin.User{ID: id.New(), Email: email, Name: name, PasswordHash: string(hash)}
	if err := u.admins.Create(ctx, usr); err != nil {
		return fmt.Errorf("create admin: %w", err)
	}
	u.log.Info("admin created", "admin_id", usr.ID)
	return nil
}
