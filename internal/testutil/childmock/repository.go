package childmock

import (
	"context"

	domain "schoolsite-backend/internal/domain/child"
)

var _ domain.Repository = (*Repo)(nil)

type Repo struct {
	CreateFn           func(ctx context.Context, c *domain.Child) error
	UpdateFn           func(ctx context.Context, c *domain.Child) error
	GetByIDFn          func(ctx context.Context, id string, includeArchived bool) (*domain.Child, error)
	GetByIDForUpdateFn func(ctx context.Context, id string) (*domain.Child, error)
	ListFn             func(ctx context.Context, f domain.Filter) ([]domain.Child, int64, error)
	ArchiveFn          func(ctx context.Context, id string) error
}

func (m *Repo) Create(ctx context.Context, c *domain.Child) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, c)
	}
	return nil
}

func (m *Repo) Update(ctx context.Context, c *domain.Child) error {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, c)
	}
	return nil
}

func (m *Repo) GetByID(ctx context.Context, id string, includeArchived bool) (*domain.Child, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id, includeArchived)
	}
	return nil, context.Canceled
}

func (m *Repo) GetByIDForUpdate(ctx context.Context, id string) (*domain.Child, error) {
	if m.GetByIDForUpdateFn != nil {
		return m.GetByIDForUpdateFn(ctx, id)
	}
	return nil, context.Canceled
}

func (m *Repo) List(ctx context.Context, f domain.Filter) ([]domain.Child, int64, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx, f)
	}
	return nil, 0, context.Canceled
}

func (m *Repo) Archive(ctx context.Context, id string) error {
	if m.ArchiveFn != nil {
		return m.ArchiveFn(ctx, id)
	}
	return nil
}
