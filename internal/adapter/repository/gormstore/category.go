package gormstore

import (
	"context"

	"gorm.io/gorm"

	"schoolsite-backend/internal/domain/job"
)

type CategoryRepository struct{ db *gorm.DB }

func NewCategoryRepository(db *gorm.DB) *CategoryRepository { return &CategoryRepository{db: db} }

func (r *CategoryRepository) Create(ctx context.Context, c *job.Category) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *CategoryRepository) GetByID(ctx context.Context, id string) (*job.Category, error) {
	var out job.Category
	if err := r.db.WithContext(ctx).Where("id = ?", id).Take(&out).Error; err != nil {
		return nil, notFound(err, job.ErrCategoryNotFound)
	}
	return &out, nil
}

func (r *CategoryRepository) SlugExists(ctx context.Context, slug string) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&job.Category{}).Where("slug = ?", slug).Count(&n).Error
	return n > 0, err
}

func (r *CategoryRepository) List(ctx context.Context) ([]job.Category, error) {
	out := make([]job.Category, 0)
	err := r.db.WithContext(ctx).Order("name ASC").Find(&out).Error
	return out, err
}
