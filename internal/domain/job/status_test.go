package job

import (
	"testing"
	"time"
)

func TestEffectiveStatus(t *testing.T) {
	today := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	yesterday := today.AddDate(0, 0, -1)
	tomorrow := today.AddDate(0, 0, 1)

	tests := []struct {
		name     string
		stored   Status
		deadline time.Time
		want     Status
	}{
		{"active before deadline", StatusActive, tomorrow, StatusActive},
		{"active on deadline day", StatusActive, today, StatusActive},
		{"active past deadline", StatusActive, yesterday, StatusExpired},
		{"draft past deadline stays draft", StatusDraft, yesterday, StatusDraft},
		{"draft before deadline", StatusDraft, tomorrow, StatusDraft},
		{"closed early", StatusExpired, tomorrow, StatusExpired},
		{"deadline with time part", StatusActive, today.Add(23 * time.Hour), StatusActive},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			if got := EffectiveStatus(tt.stored, tt.deadline, today); got != tt.want {
				t.Fatalf("EffectiveStatus(%s, %s) = %s, want %s", tt.stored, tt.deadline, got, tt.want)
			}
		})
	}
}

func TestToday_TruncatesToUTCDate(t *testing.T) {
	loc := time.FixedZone("EAT", 3*60*60)
	now := time.Date(2026, 3, 10, 1, 30, 0, 0, loc) // 2026-03-09 22:30 UTC
	want := time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC)
	if got := Today(now); !got.Equal(want) {
		t.Fatalf("Today = %v, want %v", got, want)
	}
}

func TestJob_Resolve(t *testing.T) {
	today := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	j := &Job{Status: StatusActive, Deadline: today.AddDate(0, 0, -2)}
	j.Resolve(today)
	if j.EffectiveStatus != StatusExpired {
		t.Fatalf("EffectiveStatus = %s, want expired", j.EffectiveStatus)
	}
}

func TestSlugify(t *testing.T) {
	cases := map[string]string{
		"Senior Maths Teacher":        "senior-maths-teacher",
		"  Head of ICT / Robotics!  ": "head-of-ict-robotics",
		"Volunteer -- Library (2026)": "volunteer-library-2026",
		"???":                         "",
	}
	for in, want := range cases {
		if got := Slugify(in); got != want {
			t.Fatalf("Slugify(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestStatusAndEmploymentTypeValid(t *testing.T) {
	if !StatusActive.Valid() || Status("archived").Valid() {
		t.Fatal("Status.Valid mismatch")
	}
	if !EmploymentVolunteer.Valid() || EmploymentType("intern").Valid() {
		t.Fatal("EmploymentType.Valid mismatch")
	}
}
