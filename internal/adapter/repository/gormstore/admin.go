package gormstore

import (
	"context"
	"strings"
	"time"

	"gorm.io/gorm"

	"schoolsite-backend/internal/domain/admin"
)

type AdminRepository struct{ db *gorm.DB }

func NewAdminRepository(db *gorm.DB) *AdminRepository { return &AdminRepository{db: db} }

func (r *AdminRepository) Create(ctx context.Context, u *admin.User) error {
	u.Email = strings.ToLower(strings.TrimSpace(u.Email))
	return r.db.WithContext(ctx).Create(u).Error
}

func (r *AdminRepository) GetByEmail(ctx context.Context, email string) (*admin.User, error) {
	var out admin.User
	err := r.db.WithContext(ctx).
		Where("email = ?", strings.ToLower(strings.TrimSpace(email))).
		Take(&out).Error
	if err != nil {
		return nil, notFound(err, admin.ErrNotFound)
	}
	return &out, nil
}

func (r *AdminRepository) GetByID(ctx context.Context, id string) (*admin.User, error) {
	var out admin.User
	if err := r.db.WithContext(ctx).Where("id = ?", id).Take(&out).Error; err != nil {
		return nil, notFound(err, admin.ErrNotFound)
	}
	return &out, nil
}

func (r *AdminRepository) UpdatePassword(ctx context.Context, id, hash string) error {
	return r.update(ctx, id, map[string]interface{}{"password_hash": hash, "updated_at": time.Now().UTC()})
}

func (r *AdminRepository) TouchLogin(ctx context.Context, id string, at time.Time) error {
	return r.update(ctx, id, map[string]interface{}{"last_login_at": at.UTC()})
}

func (r *AdminRepository) update(ctx context.Context, id string, set map[string]interface{}) error {
	res := r.db.WithContext(ctx).Model(&admin.User{}).Where("id = ?", id).UpdateColumns(set)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return admin.ErrNotFound
	}
	return nil
}
