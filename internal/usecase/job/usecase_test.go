package job

import (
	"context"
	"errors"
	"math"
	"strings"
	"testing"
	"time"

	"schoolsite-backend/internal/domain/job"
	"schoolsite-backend/internal/testutil/applicationmock"
	"schoolsite-backend/internal/testutil/jobmock"
)

var fixedNow = time.Date(2025, 3, 10, 15, 30, 0, 0, time.UTC)

func newTestUsecase(jobs *jobmock.Repo, cats *jobmock.CategoryRepo, apps *applicationmock.Repo) *Usecase {
	if cats == nil {
		cats = &jobmock.CategoryRepo{}
	}
	if apps == nil {
		apps = &applicationmock.Repo{}
	}
	u := NewUsecase(jobs, cats, apps)
	u.now = func() time.Time { return fixedNow }
	return u
}

func TestUsecase_List(t *testing.T) {
	today := job.Today(fixedNow)

	tests := []struct {
		name       string
		in         ListInput
		wantErr    error
		wantStatus job.StatusFilter
	}{
		{name: "defaults to active", in: ListInput{}, wantStatus: job.FilterActive},
		{name: "public expired", in: ListInput{Status: "expired"}, wantStatus: job.FilterExpired},
		{name: "public draft rejected", in: ListInput{Status: "draft"}, wantErr: job.ErrInvalid},
		{name: "public all rejected", in: ListInput{Status: "all"}, wantErr: job.ErrInvalid},
		{name: "admin all", in: ListInput{Status: "all", Admin: true}, wantStatus: job.FilterAll},
		{name: "unknown status", in: ListInput{Status: "open", Admin: true}, wantErr: job.ErrInvalid},
		{name: "unknown employment type", in: ListInput{EmploymentType: "gig"}, wantErr: job.ErrInvalid},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			var got job.Filter
			jobs := &jobmock.Repo{
				ListFn: func(ctx context.Context, f job.Filter) ([]job.Job, int64, error) {
					got = f
					return nil, 0, nil
				},
			}
			_, err := newTestUsecase(jobs, nil, nil).List(context.Background(), tt.in)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("want err=%v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected err: %v", err)
			}
			if got.Status != tt.wantStatus {
				t.Fatalf("status = %s, want %s", got.Status, tt.wantStatus)
			}
			if !got.Today.Equal(today) {
				t.Fatalf("today = %v, want %v", got.Today, today)
			}
		})
	}
}

func TestUsecase_ListPagingAndCounts(t *testing.T) {
	today := job.Today(fixedNow)
	var gotIDs []string
	jobs := &jobmock.Repo{
		ListFn: func(ctx context.Context, f job.Filter) ([]job.Job, int64, error) {
			if f.Offset != 20 || f.Limit != 10 {
				t.Fatalf("offset/limit = %d/%d, want 20/10", f.Offset, f.Limit)
			}
			return []job.Job{
				{ID: "a", Status: job.StatusActive, Deadline: today},
				{ID: "b", Status: job.StatusActive, Deadline: today.AddDate(0, 0, -1)},
			}, 22, nil
		},
	}
	apps := &applicationmock.Repo{
		CountByJobIDsFn: func(ctx context.Context, ids []string) (map[string]int64, error) {
			gotIDs = ids
			return map[string]int64{"a": 4}, nil
		},
	}

	res, err := newTestUsecase(jobs, nil, apps).List(context.Background(), ListInput{Page: 3, Limit: 0})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if res.Total != 22 || res.TotalPages != 3 || res.Page != 3 || res.Limit != 10 {
		t.Fatalf("envelope = %+v", res)
	}
	if len(gotIDs) != 2 {
		t.Fatalf("counted ids = %v", gotIDs)
	}
	if res.Data[0].ApplicationCount != 4 || res.Data[1].ApplicationCount != 0 {
		t.Fatalf("counts = %d/%d", res.Data[0].ApplicationCount, res.Data[1].ApplicationCount)
	}
	if res.Data[0].EffectiveStatus != job.StatusActive || res.Data[1].EffectiveStatus != job.StatusExpired {
		t.Fatalf("effective = %s/%s", res.Data[0].EffectiveStatus, res.Data[1].EffectiveStatus)
	}
}

func TestUsecase_ListHugePageIsPastTheEnd(t *testing.T) {
	today := job.Today(fixedNow)
	rows := []job.Job{
		{ID: "a", Status: job.StatusActive, Deadline: today},
		{ID: "b", Status: job.StatusActive, Deadline: today},
		{ID: "c", Status: job.StatusActive, Deadline: today},
	}
	jobs := &jobmock.Repo{
		ListFn: func(ctx context.Context, f job.Filter) ([]job.Job, int64, error) {
			if f.Offset < 0 {
				t.Fatalf("offset = %d, must not wrap negative", f.Offset)
			}
			if f.Offset >= len(rows) {
				return nil, int64(len(rows)), nil
			}
			return rows, int64(len(rows)), nil
		},
	}

	res, err := newTestUsecase(jobs, nil, nil).List(context.Background(), ListInput{Page: math.MaxInt/10 + 2, Limit: 10})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(res.Data) != 0 || res.Total != 3 || res.TotalPages != 1 {
		t.Fatalf("rows=%d total=%d totalPages=%d, want 0/3/1", len(res.Data), res.Total, res.TotalPages)
	}
}

func TestUsecase_Get(t *testing.T) {
	today := job.Today(fixedNow)
	published := func() *job.Job {
		return &job.Job{ID: "id-1", Slug: "maths-teacher", Status: job.StatusActive, Deadline: today, ViewCount: 7}
	}

	t.Run("falls back to slug and counts the view", func(t *testing.T) {
		increments := 0
		jobs := &jobmock.Repo{
			GetByIDFn:   func(context.Context, string) (*job.Job, error) { return nil, job.ErrNotFound },
			GetBySlugFn: func(_ context.Context, slug string) (*job.Job, error) { return published(), nil },
			IncrementViewCountFn: func(_ context.Context, id string) error {
				if id != "id-1" {
					t.Fatalf("incremented %s", id)
				}
				increments++
				return nil
			},
		}
		got, err := newTestUsecase(jobs, nil, nil).Get(context.Background(), "maths-teacher")
		if err != nil {
			t.Fatalf("Get: %v", err)
		}
		if increments != 1 || got.ViewCount != 8 {
			t.Fatalf("increments=%d view_count=%d", increments, got.ViewCount)
		}
		if got.EffectiveStatus != job.StatusActive {
			t.Fatalf("effective status = %s", got.EffectiveStatus)
		}
	})

	t.Run("draft is hidden from the public", func(t *testing.T) {
		jobs := &jobmock.Repo{
			GetByIDFn: func(context.Context, string) (*job.Job, error) {
				j := published()
				j.Status = job.StatusDraft
				return j, nil
			},
			IncrementViewCountFn: func(context.Context, string) error {
				t.Fatal("draft views must not be counted")
				return nil
			},
		}
		if _, err := newTestUsecase(jobs, nil, nil).Get(context.Background(), "id-1"); !errors.Is(err, job.ErrNotFound) {
			t.Fatalf("err = %v, want ErrNotFound", err)
		}
	})

	t.Run("admin sees drafts without a view", func(t *testing.T) {
		jobs := &jobmock.Repo{
			GetByIDFn: func(context.Context, string) (*job.Job, error) {
				j := published()
				j.Status = job.StatusDraft
				return j, nil
			},
			IncrementViewCountFn: func(context.Context, string) error {
				t.Fatal("admin reads must not be counted")
				return nil
			},
		}
		got, err := newTestUsecase(jobs, nil, nil).GetForAdmin(context.Background(), "id-1")
		if err != nil || got.EffectiveStatus != job.StatusDraft {
			t.Fatalf("GetForAdmin = %+v, %v", got, err)
		}
	})

	t.Run("store error is not a 404", func(t *testing.T) {
		boom := errors.New("db down")
		jobs := &jobmock.Repo{GetByIDFn: func(context.Context, string) (*job.Job, error) { return nil, boom }}
		if _, err := newTestUsecase(jobs, nil, nil).Get(context.Background(), "id-1"); !errors.Is(err, boom) {
			t.Fatalf("err = %v, want db error", err)
		}
	})
}

func TestUsecase_Create(t *testing.T) {
	base := JobInput{
		Title:          "Maths Teacher (Senior)",
		Location:       " Nairobi ",
		EmploymentType: "full_time",
		Deadline:       time.Date(2025, 4, 1, 18, 0, 0, 0, time.UTC),
	}

	t.Run("defaults to draft with a derived slug", func(t *testing.T) {
		var created *job.Job
		jobs := &jobmock.Repo{
			CreateFn: func(_ context.Context, j *job.Job) error { created = j; return nil },
		}
		got, err := newTestUsecase(jobs, nil, nil).Create(context.Background(), base)
		if err != nil {
			t.Fatalf("Create: %v", err)
		}
		if created == nil || got.Slug != "maths-teacher-senior" || got.Status != job.StatusDraft {
			t.Fatalf("created = %+v", got)
		}
		if got.Location != "Nairobi" || !got.PostedDate.Equal(fixedNow) {
			t.Fatalf("location=%q posted=%v", got.Location, got.PostedDate)
		}
		if !got.Deadline.Equal(time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)) {
			t.Fatalf("deadline not truncated to date: %v", got.Deadline)
		}
		if got.KeyResponsibilities == nil {
			t.Fatal("lists should be empty, not null")
		}
	})

	t.Run("slug collision gets a timestamp suffix", func(t *testing.T) {
		jobs := &jobmock.Repo{
			SlugExistsFn: func(_ context.Context, slug string) (bool, error) { return slug == "maths-teacher-senior", nil },
		}
		got, err := newTestUsecase(jobs, nil, nil).Create(context.Background(), base)
		if err != nil {
			t.Fatalf("Create: %v", err)
		}
		if got.Slug != "maths-teacher-senior-1741620600" {
			t.Fatalf("slug = %q", got.Slug)
		}
	})

	t.Run("second collision gets a random suffix", func(t *testing.T) {
		jobs := &jobmock.Repo{
			SlugExistsFn: func(_ context.Context, slug string) (bool, error) {
				return !strings.HasPrefix(slug, "maths-teacher-senior-1741620600-"), nil
			},
		}
		got, err := newTestUsecase(jobs, nil, nil).Create(context.Background(), base)
		if err != nil {
			t.Fatalf("Create: %v", err)
		}
		if len(got.Slug) != len("maths-teacher-senior-1741620600-")+6 {
			t.Fatalf("slug = %q", got.Slug)
		}
	})

	invalid := []struct {
		name string
		mod  func(in *JobInput)
	}{
		{"missing title", func(in *JobInput) { in.Title = "  " }},
		{"bad employment type", func(in *JobInput) { in.EmploymentType = "gig" }},
		{"bad status", func(in *JobInput) { in.Status = "open" }},
		{"missing deadline", func(in *JobInput) { in.Deadline = time.Time{} }},
	}
	for _, tt := range invalid {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			in := base
			tt.mod(&in)
			jobs := &jobmock.Repo{CreateFn: func(context.Context, *job.Job) error {
				t.Fatal("invalid job must not be stored")
				return nil
			}}
			if _, err := newTestUsecase(jobs, nil, nil).Create(context.Background(), in); !errors.Is(err, job.ErrInvalid) {
				t.Fatalf("err = %v, want ErrInvalid", err)
			}
		})
	}

	t.Run("unknown category", func(t *testing.T) {
		in := base
		cat := "nope"
		in.CategoryID = &cat
		cats := &jobmock.CategoryRepo{GetByIDFn: func(context.Context, string) (*job.Category, error) {
			return nil, job.ErrCategoryNotFound
		}}
		if _, err := newTestUsecase(&jobmock.Repo{}, cats, nil).Create(context.Background(), in); !errors.Is(err, job.ErrCategoryNotFound) {
			t.Fatalf("err = %v, want ErrCategoryNotFound", err)
		}
	})
}

func TestUsecase_UpdateKeepsSlug(t *testing.T) {
	existing := &job.Job{ID: "id-1", Slug: "old-title", Title: "Old Title", Status: job.StatusActive, ViewCount: 9}
	var saved *job.Job
	jobs := &jobmock.Repo{
		GetByIDFn: func(context.Context, string) (*job.Job, error) { return existing, nil },
		UpdateFn:  func(_ context.Context, j *job.Job) error { saved = j; return nil },
	}
	in := JobInput{Title: "New Title", EmploymentType: "contract", Deadline: fixedNow}
	got, err := newTestUsecase(jobs, nil, nil).Update(context.Background(), "id-1", in)
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if saved == nil || got.Slug != "old-title" || got.Title != "New Title" {
		t.Fatalf("updated = %+v", got)
	}
	if got.Status != job.StatusActive {
		t.Fatalf("empty status input should keep %s, got %s", job.StatusActive, got.Status)
	}
}

func TestUsecase_CreateCategory(t *testing.T) {
	cats := &jobmock.CategoryRepo{}
	got, err := newTestUsecase(&jobmock.Repo{}, cats, nil).CreateCategory(context.Background(), CategoryInput{Name: "Support Staff"})
	if err != nil {
		t.Fatalf("CreateCategory: %v", err)
	}
	if got.Slug != "support-staff" || got.ID == "" {
		t.Fatalf("category = %+v", got)
	}
	if _, err := newTestUsecase(&jobmock.Repo{}, cats, nil).CreateCategory(context.Background(), CategoryInput{}); !errors.Is(err, job.ErrInvalid) {
		t.Fatalf("empty name err = %v", err)
	}
}

func TestUsecase_Stats(t *testing.T) {
	jobs := &jobmock.Repo{
		StatsFn: func(_ context.Context, today time.Time) (job.Stats, error) {
			if !today.Equal(job.Today(fixedNow)) {
				t.Fatalf("today = %v", today)
			}
			return job.Stats{Total: 3, Active: 1, Expired: 1}, nil
		},
	}
	s, err := newTestUsecase(jobs, nil, nil).Stats(context.Background())
	if err != nil || s.Total != 3 {
		t.Fatalf("Stats = %+v, %v", s, err)
	}
}
