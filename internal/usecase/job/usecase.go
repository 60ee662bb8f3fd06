package job

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"schoolsite-backend/internal/domain/application"
	"schoolsite-backend/internal/domain/job"
	"schoolsite-backend/pkg/id"
	"schoolsite-backend/pkg/paging"
)

type Usecase struct {
	jobs       job.Repository
	categories job.CategoryRepository
	apps       application.Repository
	now        func() time.Time
}

func NewUsecase(jobs job.Repository, categories job.CategoryRepository, apps application.Repository) *Usecase {
	return &Usecase{jobs: jobs, categories: categories, apps: apps, now: time.Now}
}

func (u *Usecase) today() time.Time { return job.Today(u.now()) }

func parseStatusFilter(s string, admin bool) (job.StatusFilter, error) {
	switch f := job.StatusFilter(strings.ToLower(strings.TrimSpace(s))); f {
	case "":
		return job.FilterActive, nil
	case job.FilterActive, job.FilterExpired:
		return f, nil
	case job.FilterDraft, job.FilterAll:
		if admin {
			return f, nil
		}
	}
	return "", fmt.Errorf("%w: unknown status filter %q", job.ErrInvalid, s)
}

func (u *Usecase) List(ctx context.Context, in ListInput) (paging.Result[job.Job], error) {
	p := paging.New(in.Page, in.Limit)
	status, err := parseStatusFilter(in.Status, in.Admin)
	if err != nil {
		return paging.Result[job.Job]{}, err
	}
	et := job.EmploymentType(strings.TrimSpace(in.EmploymentType))
	if et != "" && !et.Valid() {
		return paging.Result[job.Job]{}, fmt.Errorf("%w: unknown employment type %q", job.ErrInvalid, in.EmploymentType)
	}

	today := u.today()
	rows, total, err := u.jobs.List(ctx, job.Filter{
		Search:         strings.TrimSpace(in.Search),
		CategoryID:     strings.TrimSpace(in.CategoryID),
		Location:       strings.TrimSpace(in.Location),
		EmploymentType: et,
		Status:         status,
		Today:          today,
		Offset:         p.Offset(),
		Limit:          p.Limit,
	})
	if err != nil {
		return paging.Result[job.Job]{}, fmt.Errorf("list jobs: %w", err)
	}
	if err := u.decorate(ctx, rows, today); err != nil {
		return paging.Result[job.Job]{}, err
	}
	return paging.NewResult(p, rows, total), nil
}

// decorate fills the derived fields with one grouped count for the whole page.
func (u *Usecase) decorate(ctx context.Context, rows []job.Job, today time.Time) error {
	if len(rows) == 0 {
		return nil
	}
	ids := make([]string, len(rows))
	for i := range rows {
		ids[i] = rows[i].ID
	}
	counts, err := u.apps.CountByJobIDs(ctx, ids)
	if err != nil {
		return fmt.Errorf("count applications: %w", err)
	}
	for i := range rows {
		rows[i].Resolve(today)
		rows[i].ApplicationCount = counts[rows[i].ID]
	}
	return nil
}

func (u *Usecase) lookup(ctx context.Context, idOrSlug string) (*job.Job, error) {
	idOrSlug = strings.TrimSpace(idOrSlug)
	if idOrSlug == "" {
		return nil, job.ErrNotFound
	}
	j, err := u.jobs.GetByID(ctx, idOrSlug)
	if errors.Is(err, job.ErrNotFound) {
		j, err = u.jobs.GetBySlug(ctx, idOrSlug)
	}
	return j, err
}

// Get is the public detail read. Drafts are hidden and every hit counts as a view.
func (u *Usecase) Get(ctx context.Context, idOrSlug string) (*job.Job, error) {
	j, err := u.lookup(ctx, idOrSlug)
	if err != nil {
		return nil, err
	}
	if j.Status == job.StatusDraft {
		return nil, job.ErrNotFound
	}
	if err := u.jobs.IncrementViewCount(ctx, j.ID); err != nil {
		return nil, fmt.Errorf("count view: %w", err)
	}
	j.ViewCount++

	one := []job.Job{*j}
	if err := u.decorate(ctx, one, u.today()); err != nil {
		return nil, err
	}
	return &one[0], nil
}

func (u *Usecase) GetForAdmin(ctx context.Context, idOrSlug string) (*job.Job, error) {
	j, err := u.lookup(ctx, idOrSlug)
	if err != nil {
		return nil, err
	}
	one := []job.Job{*j}
	if err := u.decorate(ctx, one, u.today()); err != nil {
		return nil, err
	}
	return &one[0], nil
}

func (u *Usecase) Stats(ctx context.Context) (job.Stats, error) {
	s, err := u.jobs.Stats(ctx, u.today())
	if err != nil {
		return s, fmt.Errorf("job stats: %w", err)
	}
	return s, nil
}

func (u *Usecase) Create(ctx context.Context, in JobInput) (*job.Job, error) {
	j := &job.Job{ID: id.New(), Status: job.StatusDraft, PostedDate: u.now().UTC()}
	if err := u.apply(ctx, j, in); err != nil {
		return nil, err
	}
	slug, err := uniqueSlug(ctx, job.Slugify(j.Title), "job", u.jobs.SlugExists, u.now)
	if err != nil {
		return nil, err
	}
	j.Slug = slug
	if err := u.jobs.Create(ctx, j); err != nil {
		return nil, fmt.Errorf("create job: %w", err)
	}
	j.Resolve(u.today())
	return j, nil
}

// Update keeps the slug so published links stay valid.
func (u *Usecase) Update(ctx context.Context, jobID string, in JobInput) (*job.Job, error) {
	j, err := u.jobs.GetByID(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if err := u.apply(ctx, j, in); err != nil {
		return nil, err
	}
	if err := u.jobs.Update(ctx, j); err != nil {
		return nil, fmt.Errorf("update job: %w", err)
	}
	j.Resolve(u.today())
	return j, nil
}

func (u *Usecase) Archive(ctx context.Context, jobID string) error {
	return u.jobs.Archive(ctx, jobID)
}

func (u *Usecase) apply(ctx context.Context, j *job.Job, in JobInput) error {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return fmt.Errorf("%w: title is required", job.ErrInvalid)
	}
	et := job.EmploymentType(in.EmploymentType)
	if !et.Valid() {
		return fmt.Errorf("%w: unknown employment type %q", job.ErrInvalid, in.EmploymentType)
	}
	if in.Status != "" {
		s := job.Status(in.Status)
		if !s.Valid() {
			return fmt.Errorf("%w: unknown status %q", job.ErrInvalid, in.Status)
		}
		j.Status = s
	}
	if in.Deadline.IsZero() {
		return fmt.Errorf("%w: deadline is required", job.ErrInvalid)
	}
	if in.CategoryID != nil && *in.CategoryID != "" {
		if _, err := u.categories.GetByID(ctx, *in.CategoryID); err != nil {
			return err
		}
		j.CategoryID = in.CategoryID
	} else {
		j.CategoryID = nil
	}
	j.Category = nil

	j.Title = title
	j.Location = strings.TrimSpace(in.Location)
	j.EmploymentType = et
	j.Description = in.Description
	j.AboutOrganization = in.AboutOrganization
	j.KeyResponsibilities = nonNil(in.KeyResponsibilities)
	j.Qualifications = nonNil(in.Qualifications)
	j.Requirements = nonNil(in.Requirements)
	if in.PostedDate != nil {
		j.PostedDate = in.PostedDate.UTC()
	}
	j.Deadline = job.Today(in.Deadline)
	j.ApplicationEmail = strings.TrimSpace(in.ApplicationEmail)
	j.ApplicationWhatsapp = in.ApplicationWhatsapp
	j.Featured = in.Featured
	return nil
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

func (u *Usecase) Categories(ctx context.Context) ([]job.Category, error) {
	return u.categories.List(ctx)
}

func (u *Usecase) CreateCategory(ctx context.Context, in CategoryInput) (*job.Category, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: category name is required", job.ErrInvalid)
	}
	slug, err := uniqueSlug(ctx, job.Slugify(name), "category", u.categories.SlugExists, u.now)
	if err != nil {
		return nil, err
	}
	c := &job.Category{ID: id.New(), Name: name, Slug: slug, Description: in.Description}
	if err := u.categories.Create(ctx, c); err != nil {
		return nil, fmt.Errorf("create category: %w", err)
	}
	return c, nil
}

// uniqueSlug appends -<unix seconds> on collision, then a random suffix if that is taken too.
func uniqueSlug(ctx context.Context, base, fallback string, exists func(context.Context, string) (bool, error), now func() time.Time) (string, error) {
	if base == "" {
		base = fallback
	}
	candidates := []string{
		base,
		fmt.Sprintf("%s-%d", base, now().Unix()),
		fmt.Sprintf("%s-%d-%s", base, now().Unix(), id.NewHex(3)),
	}
	for _, c := range candidates {
		taken, err := exists(ctx, c)
		if err != nil {
			return "", fmt.Errorf("check slug: %w", err)
		}
		if !taken {
			return c, nil
		}
	}
	return "", fmt.Errorf("%w: could not derive a unique slug from %q", job.ErrInvalid, base)
}
