package gormstore

import (
	"fmt"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"schoolsite-backend/internal/domain/child"
	"schoolsite-backend/internal/domain/job"
	"schoolsite-backend/internal/domain/sponsorship"
	"schoolsite-backend/pkg/id"
)

var dbSeq int64

// openTestDB returns a fresh migrated in-memory database. A single connection keeps
// every statement (and goroutine) on the same sqlite memory database.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", name, atomic.AddInt64(&dbSeq, 1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := AutoMigrate(db); err != nil {
		t.Fatalf("auto-migrate: %v", err)
	}
	return db
}

var today = time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

func makeJob(title string, status job.Status, deadline time.Time) *job.Job {
	return &job.Job{
		ID:               id.New(),
		Slug:             job.Slugify(title) + "-" + id.NewHex(3),
		Title:            title,
		Location:         "Nairobi",
		EmploymentType:   job.EmploymentFullTime,
		Status:           status,
		Description:      "Teach " + title,
		PostedDate:       today.AddDate(0, 0, -7),
		Deadline:         deadline,
		ApplicationEmail: "hr@school.org",
	}
}

func seedJob(t *testing.T, repo *JobRepository, j *job.Job) *job.Job {
	t.Helper()
	if err := repo.Create(ctxBG, j); err != nil {
		t.Fatalf("create job %q: %v", j.Title, err)
	}
	return j
}

func makeChild(first string, needed float64) *child.Child {
	return &child.Child{
		ID:           id.New(),
		FirstName:    first,
		LastName:     "Otieno",
		Bio:          "Loves maths",
		ClassYear:    "Grade 5",
		AmountNeeded: needed,
	}
}

func makeSponsorship(childID, txID string, amount float64, status sponsorship.Status) *sponsorship.Sponsorship {
	return &sponsorship.Sponsorship{
		ID:            id.New(),
		ChildID:       childID,
		DonorName:     "Grace",
		DonorEmail:    "grace@example.com",
		Amount:        amount,
		Currency:      "USD",
		Frequency:     sponsorship.FrequencyMonthly,
		TransactionID: txID,
		Status:        status,
		Source:        sponsorship.SourceWebhook,
	}
}
