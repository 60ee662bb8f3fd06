package application

import (
	"context"

	"schoolsite-backend/internal/infrastructure/mail"
	"schoolsite-backend/internal/usecase/upload"
)

type SubmitInput struct {
	JobID          string
	FirstName      string
	LastName       string
	Email          string
	Phone          *string
	Whatsapp       *string
	CVURL          string
	CVFilename     string
	CoverLetterURL string
	// CoverLetter is the legacy free-text form; it is stored as a document.
	CoverLetter          string
	AcademicDocumentsURL []string
	IPAddress            string
	UserAgent            string
}

type ListInput struct {
	JobID  string
	Status string
	Page   int
	Limit  int
}

// ReviewInput is a partial update; nil fields are left alone.
type ReviewInput struct {
	Status     *string
	AdminNotes *string
}

type Mailer interface {
	Send(ctx context.Context, msg mail.Message) error
}

// TextStore persists free-text cover letters.
type TextStore interface {
	StoreText(ctx context.Context, jobID, baseName, text string) (*upload.Result, error)
}
