package sponsorshipmock

import (
	"context"

	domain "schoolsite-backend/internal/domain/sponsorship"
)

var _ domain.Repository = (*Repo)(nil)

type Repo struct {
	CreateFn             func(ctx context.Context, s *domain.Sponsorship) error
	GetByTransactionIDFn func(ctx context.Context, transactionID string) (*domain.Sponsorship, error)
	ListByChildFn        func(ctx context.Context, childID string) ([]domain.Sponsorship, error)
}

func (m *Repo) Create(ctx context.Context, s *domain.Sponsorship) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, s)
	}
	return nil
}

func (m *Repo) GetByTransactionID(ctx context.Context, transactionID string) (*domain.Sponsorship, error) {
	if m.GetByTransactionIDFn != nil {
		return m.GetByTransactionIDFn(ctx, transactionID)
	}
	return nil, domain.ErrNotFound
}

func (m *Repo) ListByChild(ctx context.Context, childID string) ([]domain.Sponsorship, error) {
	if m.ListByChildFn != nil {
		return m.ListByChildFn(ctx, childID)
	}
	return nil, context.Canceled
}
