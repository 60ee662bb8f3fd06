package applicationmock

import (
	"context"

	domain "schoolsite-backend/internal/domain/application"
)

var _ domain.Repository = (*Repo)(nil)

type Repo struct {
	CreateFn        func(ctx context.Context, a *domain.Application) error
	GetByIDFn       func(ctx context.Context, id string) (*domain.Application, error)
	ListFn          func(ctx context.Context, f domain.Filter) ([]domain.Application, int64, error)
	UpdateReviewFn  func(ctx context.Context, id string, from, to domain.Status, notes *string) error
	CountByJobIDsFn func(ctx context.Context, jobIDs []string) (map[string]int64, error)
}

func (m *Repo) Create(ctx context.Context, a *domain.Application) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, a)
	}
	return nil
}

func (m *Repo) GetByID(ctx context.Context, id string) (*domain.Application, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	return nil, context.Canceled
}

func (m *Repo) List(ctx context.Context, f domain.Filter) ([]domain.Application, int64, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx, f)
	}
	return nil, 0, context.Canceled
}

func (m *Repo) UpdateReview(ctx context.Context, id string, from, to domain.Status, notes *string) error {
	if m.UpdateReviewFn != nil {
		return m.UpdateReviewFn(ctx, id, from, to, notes)
	}
	return nil
}

func (m *Repo) CountByJobIDs(ctx context.Context, jobIDs []string) (map[string]int64, error) {
	if m.CountByJobIDsFn != nil {
		return m.CountByJobIDsFn(ctx, jobIDs)
	}
	return map[string]int64{}, nil
}
