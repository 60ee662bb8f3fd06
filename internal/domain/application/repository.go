package application

import "context"

type Repository interface {
	Create(ctx context.Context, a *Application) error
	// GetByID preloads the job and its category.
	GetByID(ctx context.Context, id string) (*Application, error)
	List(ctx context.Context, f Filter) ([]Application, int64, error)
	// UpdateReview moves from -> to only if the row still has status from.
	UpdateReview(ctx context.Context, id string, from, to Status, notes *string) error
	CountByJobIDs(ctx context.Context, jobIDs []string) (map[string]int64, error)
}
