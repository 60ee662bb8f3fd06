package job

import "time"

type ListInput struct {
	Search         string
	CategoryID     string
	Location       string
	EmploymentType string
	Status         string
	Page           int
	Limit          int
	// Admin unlocks the draft and all status values.
	Admin bool
}

// JobInput carries the author-editable fields of a job.
type JobInput struct {
	Title               string
	Location            string
	EmploymentType      string
	Status              string
	Description         string
	AboutOrganization   string
	KeyResponsibilities []string
	Qualifications      []string
	Requirements        []string
	PostedDate          *time.Time
	Deadline            time.Time
	ApplicationEmail    string
	ApplicationWhatsapp *string
	Featured            bool
	CategoryID          *string
}

type CategoryInput struct {
	Name        string
	Description *string
}
