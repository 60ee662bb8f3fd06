package jobmock

import (
	"context"
	"time"

	domain "schoolsite-backend/internal/domain/job"
)

var (
	_ domain.Repository         = (*Repo)(nil)
	_ domain.CategoryRepository = (*CategoryRepo)(nil)
)

// Repo is a function-backed mock that satisfies job.Repository.
// Writes default to a nil error, reads to context.Canceled.
type Repo struct {
	CreateFn             func(ctx context.Context, j *domain.Job) error
	UpdateFn             func(ctx context.Context, j *domain.Job) error
	GetByIDFn            func(ctx context.Context, id string) (*domain.Job, error)
	GetBySlugFn          func(ctx context.Context, slug string) (*domain.Job, error)
	SlugExistsFn         func(ctx context.Context, slug string) (bool, error)
	IncrementViewCountFn func(ctx context.Context, id string) error
	ListFn               func(ctx context.Context, f domain.Filter) ([]domain.Job, int64, error)
	StatsFn              func(ctx context.Context, today time.Time) (domain.Stats, error)
	ArchiveFn            func(ctx context.Context, id string) error
}

func (m *Repo) Create(ctx context.Context, j *domain.Job) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, j)
	}
	return nil
}

func (m *Repo) Update(ctx context.Context, j *domain.Job) error {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, j)
	}
	return nil
}

func (m *Repo) GetByID(ctx context.Context, id string) (*domain.Job, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	return nil, context.Canceled
}

func (m *Repo) GetBySlug(ctx context.Context, slug string) (*domain.Job, error) {
	if m.GetBySlugFn != nil {
		return m.GetBySlugFn(ctx, slug)
	}
	return nil, context.Canceled
}

func (m *Repo) SlugExists(ctx context.Context, slug string) (bool, error) {
	if m.SlugExistsFn != nil {
		return m.SlugExistsFn(ctx, slug)
	}
	return false, nil
}

func (m *Repo) IncrementViewCount(ctx context.Context, id string) error {
	if m.IncrementViewCountFn != nil {
		return m.IncrementViewCountFn(ctx, id)
	}
	return nil
}

func (m *Repo) List(ctx context.Context, f domain.Filter) ([]domain.Job, int64, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx, f)
	}
	return nil, 0, context.Canceled
}

func (m *Repo) Stats(ctx context.Context, today time.Time) (domain.Stats, error) {
	if m.StatsFn != nil {
		return m.StatsFn(ctx, today)
	}
	return domain.Stats{}, context.Canceled
}

func (m *Repo) Archive(ctx context.Context, id string) error {
	if m.ArchiveFn != nil {
		return m.ArchiveFn(ctx, id)
	}
	return nil
}

type CategoryRepo struct {
	CreateFn     func(ctx context.Context, c *domain.Category) error
	GetByIDFn    func(ctx context.Context, id string) (*domain.Category, error)
	SlugExistsFn func(ctx context.Context, slug string) (bool, error)
	ListFn       func(ctx context.Context) ([]domain.Category, error)
}

func (m *CategoryRepo) Create(ctx context.Context, c *domain.Category) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, c)
	}
	return nil
}

func (m *CategoryRepo) GetByID(ctx context.Context, id string) (*domain.Category, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	return nil, context.Canceled
}

func (m *CategoryRepo) SlugExists(ctx context.Context, slug string) (bool, error) {
	if m.SlugExistsFn != nil {
		return m.SlugExistsFn(ctx, slug)
	}
	return false, nil
}

func (m *CategoryRepo) List(ctx context.Context) ([]domain.Category, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx)
	}
	return nil, context.Canceled
}
