package application

import (
	"errors"
	"time"

	"gorm.io/datatypes"

	"schoolsite-backend/internal/domain/job"
)

type Status string

const (
	StatusPending     Status = "pending"
	StatusReviewing   Status = "reviewing"
	StatusShortlisted Status = "shortlisted"
	StatusRejected    Status = "rejected"
	StatusHired       Status = "hired"
)

var (
	ErrNotFound          = errors.New("application not found")
	ErrInvalid           = errors.New("invalid application")
	ErrInvalidStatus     = errors.New("unknown application status")
	ErrInvalidTransition = errors.New("application status change not allowed")
	ErrJobClosed         = errors.New("job is not accepting applications")
)

// Application is a candidate's submission for one job. Only Status and AdminNotes
// change after creation.
type Application struct {
	ID                   string                      `gorm:"column:id;primaryKey;size:36" json:"id"`
	JobID                string                      `gorm:"column:job_id;size:36;not null;index:idx_job_applications_job_status" json:"job_id"`
	Job                  *job.Job                    `gorm:"foreignKey:JobID" json:"job,omitempty"`
	FirstName            string                      `gorm:"column:first_name;size:100;not null" json:"first_name"`
	LastName             string                      `gorm:"column:last_name;size:100;not null" json:"last_name"`
	Email                string                      `gorm:"column:email;size:255;not null" json:"email"`
	Phone                *string                     `gorm:"column:phone;size:40" json:"phone,omitempty"`
	Whatsapp             *string                     `gorm:"column:whatsapp;size:40" json:"whatsapp,omitempty"`
	CVURL                string                      `gorm:"column:cv_url;type:text;not null" json:"cv_url"`
	CVFilename           string                      `gorm:"column:cv_filename;size:255" json:"cv_filename"`
	CoverLetterURL       string                      `gorm:"column:cover_letter_url;type:text;not null" json:"cover_letter_url"`
	AcademicDocumentsURL datatypes.JSONSlice[string] `gorm:"column:academic_documents_url" json:"academic_documents_url"`
	Status               Status                      `gorm:"column:status;size:20;not null;index:idx_job_applications_job_status" json:"status"`
	AdminNotes           *string                     `gorm:"column:admin_notes;type:text" json:"admin_notes,omitempty"`
	IPAddress            string                      `gorm:"column:ip_address;size:64" json:"ip_address"`
	UserAgent            string                      `gorm:"column:user_agent;type:text" json:"user_agent"`
	CreatedAt            time.Time                   `gorm:"column:created_at;autoCreateTime;index" json:"created_at"`
	UpdatedAt            time.Time                   `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (Application) TableName() string { return "job_applications" }

type Filter struct {
	JobID  string
	Status Status
	Offset int
	Limit  int
}
