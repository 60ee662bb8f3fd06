package child

import (
	"errors"
	"time"
)

type Status string

const (
	StatusAvailable          Status = "available"
	StatusPartiallySponsored Status = "partially_sponsored"
	StatusFullySponsored     Status = "fully_sponsored"
)

func (s Status) Valid() bool {
	switch s {
	case StatusAvailable, StatusPartiallySponsored, StatusFullySponsored:
		return true
	}
	return false
}

var (
	ErrNotFound = errors.New("child not found")
	ErrInvalid  = errors.New("invalid child")
)

// Child is a sponsorship catalog entry. AmountRaised is never stored: repositories
// fill it from the sponsorship ledger on read.
type Child struct {
	ID           string    `gorm:"column:id;primaryKey;size:36" json:"id"`
	FirstName    string    `gorm:"column:first_name;size:100;not null" json:"first_name"`
	LastName     string    `gorm:"column:last_name;size:100" json:"last_name"`
	Bio          string    `gorm:"column:bio;type:text" json:"bio"`
	ClassYear    string    `gorm:"column:class_year;size:40" json:"class_year"`
	AmountNeeded float64   `gorm:"column:amount_needed;type:decimal(12,2);not null" json:"amount_needed"`
	PhotoURL     string    `gorm:"column:photo_url;type:text" json:"photo_url"`
	PhotoPath    string    `gorm:"column:photo_path;type:text" json:"photo_path"`
	Archived     bool      `gorm:"column:archived;not null;index" json:"archived"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`

	AmountRaised float64 `gorm:"column:amount_raised;->;-:migration" json:"amount_raised"`
	Status       Status  `gorm:"-" json:"status"`
}

func (Child) TableName() string { return "children" }

// DeriveStatus compares the ledger total against the target amount.
func DeriveStatus(raised, needed float64) Status {
	switch {
	case raised >= needed:
		return StatusFullySponsored
	case raised <= 0:
		return StatusAvailable
	default:
		return StatusPartiallySponsored
	}
}

func (c *Child) Resolve() {
	c.Status = DeriveStatus(c.AmountRaised, c.AmountNeeded)
}

type Filter struct {
	IncludeArchived bool
	Status          Status
	Offset          int
	Limit           int
}
