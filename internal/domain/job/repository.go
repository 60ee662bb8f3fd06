package job

import (
	"context"
	"time"
)

type Repository interface {
	Create(ctx context.Context, j *Job) error
	// Update writes the author-editable columns only; view_count and archived are untouched.
	Update(ctx context.Context, j *Job) error
	// GetByID and GetBySlug never return archived rows.
	GetByID(ctx context.Context, id string) (*Job, error)
	GetBySlug(ctx context.Context, slug string) (*Job, error)
	SlugExists(ctx context.Context, slug string) (bool, error)
	IncrementViewCount(ctx context.Context, id string) error
	List(ctx context.Context, f Filter) ([]Job, int64, error)
	Stats(ctx context.Context, today time.Time) (Stats, error)
	Archive(ctx context.Context, id string) error
}

type CategoryRepository interface {
	Create(ctx context.Context, c *Category) error
	GetByID(ctx context.Context, id string) (*Category, error)
	SlugExists(ctx context.Context, slug string) (bool, error)
	List(ctx context.Context) ([]Category, error)
}
