package sponsorship

import (
	"context"
	"errors"

	"schoolsite-backend/internal/domain/sponsorship"
	"schoolsite-backend/internal/usecase/upload"
)

var (
	// ErrInvalidPayload covers unknown versions and missing or mistyped webhook fields.
	ErrInvalidPayload = errors.New("invalid donation payload")
	// ErrUnknownChild is returned to the webhook for missing or archived children.
	ErrUnknownChild = errors.New("donation references an unknown child")
)

type PhotoStore interface {
	UploadPhoto(ctx context.Context, childID string, f upload.File) (*upload.Result, error)
	Remove(ctx context.Context, key string) error
}

type ListInput struct {
	Status          string
	IncludeArchived bool
	Page            int
	Limit           int
}

type ChildInput struct {
	FirstName    string
	LastName     string
	Bio          string
	ClassYear    string
	AmountNeeded float64
}

// ManualInput records an offline gift entered by an admin.
type ManualInput struct {
	DonorName     string
	DonorEmail    string
	Amount        float64
	Currency      string
	Frequency     string
	TransactionID string
}

// DonationEvent is a validated webhook delivery.
type DonationEvent struct {
	EventID       string
	TransactionID string
	Completed     bool
	RawStatus     string
	Amount        float64
	Currency      string
	Frequency     sponsorship.Frequency
	DonorName     string
	DonorEmail    string
	ChildID       string
}

type RecordResult struct {
	Recorded    bool                     `json:"recorded"`
	Duplicate   bool                     `json:"duplicate"`
	Ignored     bool                     `json:"ignored"`
	Sponsorship *sponsorship.Sponsorship `json:"sponsorship,omitempty"`
}
