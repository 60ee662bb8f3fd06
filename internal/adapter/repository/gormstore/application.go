package gormstore

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"schoolsite-backend/internal/domain/application"
)

type ApplicationRepository struct{ db *gorm.DB }

func NewApplicationRepository(db *gorm.DB) *ApplicationRepository {
	return &ApplicationRepository{db: db}
}

func (r *ApplicationRepository) Create(ctx context.Context, a *application.Application) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(a).Error
}

func (r *ApplicationRepository) GetByID(ctx context.Context, id string) (*application.Application, error) {
	var out application.Application
	err := r.db.WithContext(ctx).
		Preload("Job").
		Preload("Job.Category").
		Where("id = ?", id).
		Take(&out).Error
	if err != nil {
		return nil, notFound(err, application.ErrNotFound)
	}
	return &out, nil
}

func (r *ApplicationRepository) List(ctx context.Context, f application.Filter) ([]application.Application, int64, error) {
	scoped := func() *gorm.DB {
		q := r.db.WithContext(ctx).Model(&application.Application{})
		if f.JobID != "" {
			q = q.Where("job_id = ?", f.JobID)
		}
		if f.Status != "" {
			q = q.Where("status = ?", f.Status)
		}
		return q
	}

	var total int64
	if err := scoped().Count(&total).Error; err != nil {
		return nil, 0, err
	}
	out := make([]application.Application, 0)
	if total == 0 || f.Offset < 0 || int64(f.Offset) >= total {
		return out, total, nil
	}
	err := scoped().
		Preload("Job").
		Preload("Job.Category").
		Order("created_at DESC, id DESC").
		Offset(f.Offset).
		Limit(f.Limit).
		Find(&out).Error
	return out, total, err
}

// UpdateReview is a compare-and-set on status. A lost race reports
// ErrInvalidTransition unless the row already holds the target status.
func (r *ApplicationRepository) UpdateReview(ctx context.Context, id string, from, to application.Status, notes *string) error {
	set := map[string]interface{}{
		"status":     to,
		"updated_at": time.Now().UTC(),
	}
	if notes != nil {
		set["admin_notes"] = *notes
	}
	res := r.db.WithContext(ctx).
		Model(&application.Application{}).
		Where("id = ? AND status = ?", id, from).
		Updates(set)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected > 0 {
		return nil
	}

	var current application.Application
	if err := r.db.WithContext(ctx).Select("id", "status").Where("id = ?", id).Take(&current).Error; err != nil {
		return notFound(err, application.ErrNotFound)
	}
	if current.Status == to {
		return nil
	}
	return application.ErrInvalidTransition
}

func (r *ApplicationRepository) CountByJobIDs(ctx context.Context, jobIDs []string) (map[string]int64, error) {
	out := make(map[string]int64, len(jobIDs))
	if len(jobIDs) == 0 {
		return out, nil
	}
	var rows []struct {
		JobID string
		N     int64
	}
	err := r.db.WithContext(ctx).
		Model(&application.Application{}).
		Select("job_id, COUNT(*) AS n").
		Where("job_id IN ?", jobIDs).
		Group("job_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		out[row.JobID] = row.N
	}
	return out, nil
}
