package gormstore

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"schoolsite-backend/internal/domain/child"
	"schoolsite-backend/internal/domain/sponsorship"
)

type ChildRepository struct{ db *gorm.DB }

func NewChildRepository(db *gorm.DB) *ChildRepository { return &ChildRepository{db: db} }

const raisedExpr = "COALESCE(ledger.raised, 0)"

var childProfileColumns = []string{
	"first_name", "last_name", "bio", "class_year", "amount_needed", "photo_url", "photo_path", "updated_at",
}

func (r *ChildRepository) Create(ctx context.Context, c *child.Child) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *ChildRepository) Update(ctx context.Context, c *child.Child) error {
	return r.db.WithContext(ctx).Model(c).Select(childProfileColumns).Updates(c).Error
}

// withLedger joins the per-child sum of completed sponsorships.
func (r *ChildRepository) withLedger(ctx context.Context) *gorm.DB {
	raised := r.db.WithContext(ctx).
		Model(&sponsorship.Sponsorship{}).
		Select("child_id, SUM(amount) AS raised").
		Where("status = ?", sponsorship.StatusCompleted).
		Group("child_id")
	return r.db.WithContext(ctx).
		Model(&child.Child{}).
		Joins("LEFT JOIN (?) AS ledger ON ledger.child_id = children.id", raised)
}

func (r *ChildRepository) GetByID(ctx context.Context, id string, includeArchived bool) (*child.Child, error) {
	q := r.withLedger(ctx).Where("children.id = ?", id)
	if !includeArchived {
		q = q.Where("children.archived = ?", false)
	}
	var out child.Child
	if err := q.Select("children.*, " + raisedExpr + " AS amount_raised").Take(&out).Error; err != nil {
		return nil, notFound(err, child.ErrNotFound)
	}
	out.Resolve()
	return &out, nil
}

// GetByIDForUpdate does not load AmountRaised; outer joins cannot be row-locked on every engine.
func (r *ChildRepository) GetByIDForUpdate(ctx context.Context, id string) (*child.Child, error) {
	var out child.Child
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).
		Take(&out).Error
	if err != nil {
		return nil, notFound(err, child.ErrNotFound)
	}
	return &out, nil
}

func (r *ChildRepository) List(ctx context.Context, f child.Filter) ([]child.Child, int64, error) {
	scoped := func() *gorm.DB {
		q := r.withLedger(ctx)
		if !f.IncludeArchived {
			q = q.Where("children.archived = ?", false)
		}
		switch f.Status {
		case child.StatusFullySponsored:
			q = q.Where(raisedExpr + " >= children.amount_needed")
		case child.StatusAvailable:
			q = q.Where(raisedExpr + " <= 0 AND " + raisedExpr + " < children.amount_needed")
		case child.StatusPartiallySponsored:
			q = q.Where(raisedExpr + " > 0 AND " + raisedExpr + " < children.amount_needed")
		}
		return q
	}

	var total int64
	if err := scoped().Count(&total).Error; err != nil {
		return nil, 0, err
	}
	out := make([]child.Child, 0)
	if total == 0 || f.Offset < 0 || int64(f.Offset) >= total {
		return out, total, nil
	}
	err := scoped().
		Select("children.*, " + raisedExpr + " AS amount_raised").
		Order("children.created_at DESC, children.id DESC").
		Offset(f.Offset).
		Limit(f.Limit).
		Find(&out).Error
	if err != nil {
		return nil, 0, err
	}
	for i := range out {
		out[i].Resolve()
	}
	return out, total, nil
}

func (r *ChildRepository) Archive(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).
		Model(&child.Child{}).
		Where("id = ? AND archived = ?", id, false).
		Updates(map[string]interface{}{"archived": true, "updated_at": time.Now().UTC()})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return child.ErrNotFound
	}
	return nil
}
