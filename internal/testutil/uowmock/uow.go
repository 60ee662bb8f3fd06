package uowmock

import (
	"context"
	"errors"

	"schoolsite-backend/internal/domain/child"
	"schoolsite-backend/internal/domain/uow"
)

var _ uow.UnitOfWork = (*UoW)(nil)

var errUnimplemented = errors.New("uowmock: method not implemented")

// UoW is a function-backed mock that satisfies uow.UnitOfWork.
// Fill in the function fields you need in a test; unfilled ones return errUnimplemented.
type UoW struct {
	WithinChildTxFn func(ctx context.Context, childID string, fn func(r uow.Repos, c *child.Child) error) error
}

// Passthrough runs callbacks directly against repos, locking c for WithinChildTx.
// A nil c makes WithinChildTx report child.ErrNotFound.
func Passthrough(repos uow.Repos, c *child.Child) *UoW {
	return &UoW{
		WithinChildTxFn: func(ctx context.Context, childID string, fn func(r uow.Repos, c *child.Child) error) error {
			if c == nil || c.ID != childID {
				return child.ErrNotFound
			}
			return fn(repos, c)
		},
	}
}

func (m *UoW) WithinChildTx(ctx context.Context, childID string, fn func(r uow.Repos, c *child.Child) error) error {
	if m.WithinChildTxFn != nil {
		return m.WithinChildTxFn(ctx, childID, fn)
	}
	return errUnimplemented
}
