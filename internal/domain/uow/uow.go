package uow

import (
	"context"

	"schoolsite-backend/internal/domain/child"
	"schoolsite-backend/internal/domain/sponsorship"
)

// Repos are bound to one transaction.
type Repos struct {
	Children     child.Repository
	Sponsorships sponsorship.Repository
}

type UnitOfWork interface {
	// WithinChildTx locks the child row first, then passes it in.
	WithinChildTx(ctx context.Context, childID string, fn func(r Repos, c *child.Child) error) error
}
