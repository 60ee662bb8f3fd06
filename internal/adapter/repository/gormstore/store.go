package gormstore

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"schoolsite-backend/internal/domain/admin"
	"schoolsite-backend/internal/domain/application"
	"schoolsite-backend/internal/domain/child"
	"schoolsite-backend/internal/domain/job"
	"schoolsite-backend/internal/domain/sponsorship"
)

// AutoMigrate creates or updates every table the service owns.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&job.Category{},
		&job.Job{},
		&application.Application{},
		&child.Child{},
		&sponsorship.Sponsorship{},
		&admin.User{},
	)
}

// notFound swaps gorm's sentinel for the domain one.
func notFound(err, domainErr error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domainErr
	}
	return err
}

var likeEscaper = strings.NewReplacer("!", "!!", "%", "!%", "_", "!_")

// containsPattern builds a lower-cased LIKE pattern matching s literally. Use with ESCAPE '!'.
func containsPattern(s string) string {
	return "%" + likeEscaper.Replace(strings.ToLower(s)) + "%"
}
