package gormstore

import (
	"context"

	"gorm.io/gorm"

	"schoolsite-backend/internal/domain/child"
	"schoolsite-backend/internal/domain/uow"
)

type GormUoW struct{ db *gorm.DB }

func NewGormUoW(db *gorm.DB) *GormUoW { return &GormUoW{db: db} }

func repos(tx *gorm.DB) uow.Repos {
	return uow.Repos{
		Children:     &ChildRepository{db: tx},
		Sponsorships: &SponsorshipRepository{db: tx},
	}
}

func (u *GormUoW) WithinChildTx(ctx context.Context, childID string, fn func(r uow.Repos, c *child.Child) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		r := repos(tx)
		// lock the child row up-front so concurrent deliveries serialize
		c, err := r.Children.GetByIDForUpdate(ctx, childID)
		if err != nil {
			return err
		}
		return fn(r, c)
	})
}
