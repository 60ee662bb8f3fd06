package sponsorship

import (
	"errors"
	"time"
)

type Frequency string

const (
	FrequencyOneTime Frequency = "one_time"
	FrequencyMonthly Frequency = "monthly"
	FrequencyYearly  Frequency = "yearly"
)

func (f Frequency) Valid() bool {
	switch f {
	case FrequencyOneTime, FrequencyMonthly, FrequencyYearly:
		return true
	}
	return false
}

type Status string

const (
	StatusCompleted Status = "completed"
	StatusPending   Status = "pending"
	StatusFailed    Status = "failed"
)

type Source string

const (
	SourceWebhook Source = "webhook"
	SourceManual  Source = "manual"
)

var (
	ErrNotFound             = errors.New("sponsorship not found")
	ErrDuplicateTransaction = errors.New("sponsorship transaction already recorded")
	ErrInvalid              = errors.New("invalid sponsorship")
)

// Sponsorship is an append-only ledger row. Completed rows are the source of truth
// for a child's amount raised.
type Sponsorship struct {
	ID            string    `gorm:"column:id;primaryKey;size:36" json:"id"`
	ChildID       string    `gorm:"column:child_id;size:36;not null;index:idx_sponsorships_child_status" json:"child_id"`
	DonorName     string    `gorm:"column:donor_name;size:200" json:"donor_name"`
	DonorEmail    string    `gorm:"column:donor_email;size:255" json:"donor_email"`
	Amount        float64   `gorm:"column:amount;type:decimal(12,2);not null" json:"amount"`
	Currency      string    `gorm:"column:currency;size:3;not null" json:"currency"`
	Frequency     Frequency `gorm:"column:frequency;size:20;not null" json:"frequency"`
	TransactionID string    `gorm:"column:transaction_id;size:128;not null;uniqueIndex:ux_sponsorships_transaction_id" json:"transaction_id"`
	Status        Status    `gorm:"column:status;size:20;not null;index:idx_sponsorships_child_status" json:"status"`
	Source        Source    `gorm:"column:source;size:20;not null" json:"source"`
	CreatedAt     time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (Sponsorship) TableName() string { return "sponsorships" }
