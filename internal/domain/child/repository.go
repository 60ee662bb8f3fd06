package child

import "context"

type Repository interface {
	Create(ctx context.Context, c *Child) error
	// Update writes the profile columns; archived is changed only through Archive.
	Update(ctx context.Context, c *Child) error
	GetByID(ctx context.Context, id string, includeArchived bool) (*Child, error)
	// GetByIDForUpdate locks the row inside a transaction; archived rows are returned too.
	GetByIDForUpdate(ctx context.Context, id string) (*Child, error)
	List(ctx context.Context, f Filter) ([]Child, int64, error)
	Archive(ctx context.Context, id string) error
}
