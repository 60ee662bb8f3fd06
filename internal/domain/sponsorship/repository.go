package sponsorship

import "context"

type Repository interface {
	// Create returns ErrDuplicateTransaction when the transaction id already exists.
	Create(ctx context.Context, s *Sponsorship) error
	GetByTransactionID(ctx context.Context, transactionID string) (*Sponsorship, error)
	ListByChild(ctx context.Context, childID string) ([]Sponsorship, error)
}
