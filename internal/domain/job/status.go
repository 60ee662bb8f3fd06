package job

import (
	"regexp"
	"strings"
	"time"
)

// Today truncates now to the UTC calendar date that deadlines are compared against.
func Today(now time.Time) time.Time {
	y, m, d := now.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// EffectiveStatus is the one expiry rule: stored status is only the draft/published
// flag, and a published job whose deadline has passed is expired.
func EffectiveStatus(stored Status, deadline, today time.Time) Status {
	switch stored {
	case StatusDraft:
		return StatusDraft
	case StatusExpired:
		return StatusExpired
	}
	if Today(deadline).Before(today) {
		return StatusExpired
	}
	return StatusActive
}

func (j *Job) Resolve(today time.Time) {
	j.EffectiveStatus = EffectiveStatus(j.Status, j.Deadline, today)
}

var reNonSlug = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify lowercases s and collapses every run of non-alphanumerics into one dash.
func Slugify(s string) string {
	s = reNonSlug.ReplaceAllString(strings.ToLower(strings.TrimSpace(s)), "-")
	s = strings.Trim(s, "-")
	if len(s) > 180 {
		s = strings.TrimRight(s[:180], "-")
	}
	return s
}
