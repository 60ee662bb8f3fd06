package adminmock

import (
	"context"
	"time"

	domain "schoolsite-backend/internal/domain/admin"
)

var _ domain.Repository = (*Repo)(nil)

type Repo struct {
	CreateFn         func(ctx context.Context, u *domain.User) error
	GetByEmailFn     func(ctx context.Context, email string) (*domain.User, error)
	GetByIDFn        func(ctx context.Context, id string) (*domain.User, error)
	UpdatePasswordFn func(ctx context.Context, id, hash string) error
	TouchLoginFn     func(ctx context.Context, id string, at time.Time) error
}

func (m *Repo) Create(ctx context.Context, u *domain.User) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, u)
	}
	return nil
}

func (m *Repo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	if m.GetByEmailFn != nil {
		return m.GetByEmailFn(ctx, email)
	}
	return nil, domain.ErrNotFound
}

func (m *Repo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	return nil, domain.ErrNotFound
}

func (m *Repo) UpdatePassword(ctx context.Context, id, hash string) error {
	if m.UpdatePasswordFn != nil {
		return m.UpdatePasswordFn(ctx, id, hash)
	}
	return nil
}

func (m *Repo) TouchLogin(ctx context.Context, id string, at time.Time) error {
	if m.TouchLoginFn != nil {
		return m.TouchLoginFn(ctx, id, at)
	}
	return nil
}
