package gormstore

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"schoolsite-backend/internal/domain/job"
)

type JobRepository struct{ db *gorm.DB }

func NewJobRepository(db *gorm.DB) *JobRepository { return &JobRepository{db: db} }

var jobEditableColumns = []string{
	"title", "location", "employment_type", "status", "description", "about_organization",
	"key_responsibilities", "qualifications", "requirements", "posted_date", "deadline",
	"application_email", "application_whatsapp", "featured", "category_id", "updated_at",
}

func (r *JobRepository) Create(ctx context.Context, j *job.Job) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(j).Error
}

func (r *JobRepository) Update(ctx context.Context, j *job.Job) error {
	return r.db.WithContext(ctx).
		Model(j).
		Select(jobEditableColumns).
		Omit(clause.Associations).
		Updates(j).Error
}

func (r *JobRepository) GetByID(ctx context.Context, id string) (*job.Job, error) {
	return r.getBy(ctx, "jobs.id = ?", id)
}

func (r *JobRepository) GetBySlug(ctx context.Context, slug string) (*job.Job, error) {
	return r.getBy(ctx, "jobs.slug = ?", slug)
}

func (r *JobRepository) getBy(ctx context.Context, cond string, v string) (*job.Job, error) {
	var out job.Job
	err := r.db.WithContext(ctx).
		Preload("Category").
		Where(cond, v).
		Where("jobs.archived = ?", false).
		Take(&out).Error
	if err != nil {
		return nil, notFound(err, job.ErrNotFound)
	}
	return &out, nil
}

// SlugExists includes archived rows since the unique index does.
func (r *JobRepository) SlugExists(ctx context.Context, slug string) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&job.Job{}).Where("slug = ?", slug).Count(&n).Error
	return n > 0, err
}

// IncrementViewCount is a single UPDATE so concurrent fetches never lose a count.
func (r *JobRepository) IncrementViewCount(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).
		Model(&job.Job{}).
		Where("id = ? AND archived = ?", id, false).
		UpdateColumn("view_count", gorm.Expr("view_count + ?", 1))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return job.ErrNotFound
	}
	return nil
}

func (r *JobRepository) List(ctx context.Context, f job.Filter) ([]job.Job, int64, error) {
	scoped := func() *gorm.DB {
		q := r.db.WithContext(ctx).Model(&job.Job{}).Where("jobs.archived = ?", false)
		q = whereEffectiveStatus(q, f.Status, f.Today)
		if f.Search != "" {
			p := containsPattern(f.Search)
			q = q.Where("(LOWER(jobs.title) LIKE ? ESCAPE '!' OR LOWER(jobs.description) LIKE ? ESCAPE '!')", p, p)
		}
		if f.Location != "" {
			q = q.Where("LOWER(jobs.location) LIKE ? ESCAPE '!'", containsPattern(f.Location))
		}
		if f.CategoryID != "" {
			q = q.Where("jobs.category_id = ?", f.CategoryID)
		}
		if f.EmploymentType != "" {
			q = q.Where("jobs.employment_type = ?", f.EmploymentType)
		}
		return q
	}

	var total int64
	if err := scoped().Count(&total).Error; err != nil {
		return nil, 0, err
	}
	out := make([]job.Job, 0)
	if total == 0 || f.Offset < 0 || int64(f.Offset) >= total {
		return out, total, nil
	}
	err := scoped().
		Preload("Category").
		Order("jobs.featured DESC, jobs.created_at DESC, jobs.id DESC").
		Offset(f.Offset).
		Limit(f.Limit).
		Find(&out).Error
	return out, total, err
}

// whereEffectiveStatus mirrors job.EffectiveStatus in SQL.
func whereEffectiveStatus(q *gorm.DB, s job.StatusFilter, today time.Time) *gorm.DB {
	switch s {
	case job.FilterActive:
		return q.Where("jobs.status = ? AND jobs.deadline >= ?", job.StatusActive, today)
	case job.FilterExpired:
		return q.Where("(jobs.status = ? OR (jobs.status = ? AND jobs.deadline < ?))",
			job.StatusExpired, job.StatusActive, today)
	case job.FilterDraft:
		return q.Where("jobs.status = ?", job.StatusDraft)
	default:
		return q
	}
}

func (r *JobRepository) Stats(ctx context.Context, today time.Time) (job.Stats, error) {
	var s job.Stats
	jobs := func() *gorm.DB {
		return r.db.WithContext(ctx).Model(&job.Job{}).Where("jobs.archived = ?", false)
	}
	if err := jobs().Count(&s.Total).Error; err != nil {
		return s, err
	}
	if err := whereEffectiveStatus(jobs(), job.FilterActive, today).Count(&s.Active).Error; err != nil {
		return s, err
	}
	if err := whereEffectiveStatus(jobs(), job.FilterExpired, today).Count(&s.Expired).Error; err != nil {
		return s, err
	}
	if err := r.db.WithContext(ctx).Model(&job.Category{}).Count(&s.Categories).Error; err != nil {
		return s, err
	}
	if err := jobs().Distinct("location").Count(&s.Locations).Error; err != nil {
		return s, err
	}
	return s, nil
}

func (r *JobRepository) Archive(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).
		Model(&job.Job{}).
		Where("id = ? AND archived = ?", id, false).
		Updates(map[string]interface{}{"archived": true, "updated_at": time.Now().UTC()})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return job.ErrNotFound
	}
	return nil
}
