package gormstore

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"schoolsite-backend/internal/domain/sponsorship"
)

type SponsorshipRepository struct{ db *gorm.DB }

func NewSponsorshipRepository(db *gorm.DB) *SponsorshipRepository {
	return &SponsorshipRepository{db: db}
}

func (r *SponsorshipRepository) Create(ctx context.Context, s *sponsorship.Sponsorship) error {
	err := r.db.WithContext(ctx).Create(s).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return sponsorship.ErrDuplicateTransaction
	}
	return err
}

func (r *SponsorshipRepository) GetByTransactionID(ctx context.Context, transactionID string) (*sponsorship.Sponsorship, error) {
	var out sponsorship.Sponsorship
	if err := r.db.WithContext(ctx).Where("transaction_id = ?", transactionID).Take(&out).Error; err != nil {
		return nil, notFound(err, sponsorship.ErrNotFound)
	}
	return &out, nil
}

func (r *SponsorshipRepository) ListByChild(ctx context.Context, childID string) ([]sponsorship.Sponsorship, error) {
	out := make([]sponsorship.Sponsorship, 0)
	err := r.db.WithContext(ctx).
		Where("child_id = ?", childID).
		Order("created_at DESC, id DESC").
		Find(&out).Error
	return out, err
}
