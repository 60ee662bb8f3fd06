package job

import (
	"errors"
	"time"

	"gorm.io/datatypes"
)

type Status string

const (
	StatusDraft   Status = "draft"
	StatusActive  Status = "active"
	StatusExpired Status = "expired"
)

func (s Status) Valid() bool {
	switch s {
	case StatusDraft, StatusActive, StatusExpired:
		return true
	}
	return false
}

type EmploymentType string

const (
	EmploymentFullTime  EmploymentType = "full_time"
	EmploymentPartTime  EmploymentType = "part_time"
	EmploymentContract  EmploymentType = "contract"
	EmploymentVolunteer EmploymentType = "volunteer"
)

func (t EmploymentType) Valid() bool {
	switch t {
	case EmploymentFullTime, EmploymentPartTime, EmploymentContract, EmploymentVolunteer:
		return true
	}
	return false
}

var (
	ErrNotFound         = errors.New("job not found")
	ErrCategoryNotFound = errors.New("job category not found")
	ErrInvalid          = errors.New("invalid job")
)

type Category struct {
	ID          string    `gorm:"column:id;primaryKey;size:36" json:"id"`
	Name        string    `gorm:"column:name;size:120;not null" json:"name"`
	Slug        string    `gorm:"column:slug;size:140;not null;uniqueIndex:ux_job_categories_slug" json:"slug"`
	Description *string   `gorm:"column:description;type:text" json:"description,omitempty"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (Category) TableName() string { return "job_categories" }

// Job is a careers listing. Status holds the author-set value; EffectiveStatus is
// what every reader sees (see Resolve).
type Job struct {
	ID                  string                      `gorm:"column:id;primaryKey;size:36" json:"id"`
	Slug                string                      `gorm:"column:slug;size:220;not null;uniqueIndex:ux_jobs_slug" json:"slug"`
	Title               string                      `gorm:"column:title;size:200;not null" json:"title"`
	Location            string                      `gorm:"column:location;size:200;index:idx_jobs_location" json:"location"`
	EmploymentType      EmploymentType              `gorm:"column:employment_type;size:20;not null" json:"employment_type"`
	Status              Status                      `gorm:"column:status;size:20;not null;index:idx_jobs_status_deadline" json:"status"`
	Description         string                      `gorm:"column:description;type:text" json:"description"`
	AboutOrganization   string                      `gorm:"column:about_organization;type:text" json:"about_organization"`
	KeyResponsibilities datatypes.JSONSlice[string] `gorm:"column:key_responsibilities" json:"key_responsibilities"`
	Qualifications      datatypes.JSONSlice[string] `gorm:"column:qualifications" json:"qualifications"`
	Requirements        datatypes.JSONSlice[string] `gorm:"column:requirements" json:"requirements"`
	PostedDate          time.Time                   `gorm:"column:posted_date" json:"posted_date"`
	Deadline            time.Time                   `gorm:"column:deadline;type:date;not null;index:idx_jobs_status_deadline" json:"deadline"`
	ApplicationEmail    string                      `gorm:"column:application_email;size:255" json:"application_email"`
	ApplicationWhatsapp *string                     `gorm:"column:application_whatsapp;size:40" json:"application_whatsapp,omitempty"`
	Featured            bool                        `gorm:"column:featured;not null" json:"featured"`
	ViewCount           int64                       `gorm:"column:view_count;not null" json:"view_count"`
	Archived            bool                        `gorm:"column:archived;not null;index:idx_jobs_archived" json:"-"`
	CategoryID          *string                     `gorm:"column:category_id;size:36;index" json:"category_id,omitempty"`
	Category            *Category                   `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	CreatedAt           time.Time                   `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt           time.Time                   `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`

	ApplicationCount int64  `gorm:"-" json:"application_count"`
	EffectiveStatus  Status `gorm:"-" json:"effective_status"`
}

func (Job) TableName() string { return "jobs" }

// StatusFilter selects jobs by effective status. FilterAll is admin-only.
type StatusFilter string

const (
	FilterActive  StatusFilter = "active"
	FilterExpired StatusFilter = "expired"
	FilterDraft   StatusFilter = "draft"
	FilterAll     StatusFilter = "all"
)

type Filter struct {
	Search         string
	CategoryID     string
	Location       string
	EmploymentType EmploymentType
	Status         StatusFilter
	Today          time.Time
	Offset         int
	Limit          int
}

type Stats struct {
	Total      int64 `json:"total"`
	Active     int64 `json:"active"`
	Expired    int64 `json:"expired"`
	Categories int64 `json:"categories"`
	Locations  int64 `json:"locations"`
}
