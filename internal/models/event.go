package models

import "time"

// TierCount is the number of independent choice slots in an elective
// submission. Each tier offers exactly two mutually exclusive options.
const TierCount = 4

// EventStatus is derived from the event window against the current date,
// never stored as free-form text.
type EventStatus string

const (
	EventNotStarted EventStatus = "NOT_STARTED"
	EventActive     EventStatus = "ACTIVE"
	EventEnded      EventStatus = "ENDED"
)

// TierOption is one selectable subject inside a tier.
type TierOption struct {
	SubjectID   string `json:"subject_id"`
	SubjectName string `json:"subject_name"`
	Capacity    int    `json:"capacity"`
}

// TierPair holds the two options of a single tier.
type TierPair struct {
	OptionA TierOption `json:"option_a"`
	OptionB TierOption `json:"option_b"`
}

// EnrollmentEvent is a time-boxed window during which elective submissions
// are accepted for a given cohort.
type EnrollmentEvent struct {
	ID               string              `json:"id"`
	CohortYear       int                 `json:"cohort_year"`
	StartDate        time.Time           `json:"start_date"`
	EndDate          time.Time           `json:"end_date"`
	SubmissionsCount int                 `json:"submissions_count"`
	Tiers            [TierCount]TierPair `json:"tiers"`
}

// Status derives the lifecycle phase of the event at the given instant.
func (e EnrollmentEvent) Status(now time.Time) EventStatus {
	if now.Before(e.StartDate) {
		return EventNotStarted
	}
	if now.After(e.EndDate) {
		return EventEnded
	}
	return EventActive
}

// OptionForTier resolves a subject ID to the option configured on the given
// tier (0-based), or false when the subject is not one of that tier's two
// options.
func (e EnrollmentEvent) OptionForTier(tier int, subjectID string) (TierOption, bool) {
	if tier < 0 || tier >= TierCount {
		return TierOption{}, false
	}
	pair := e.Tiers[tier]
	if pair.OptionA.SubjectID == subjectID {
		return pair.OptionA, true
	}
	if pair.OptionB.SubjectID == subjectID {
		return pair.OptionB, true
	}
	return TierOption{}, false
}

// EligibleCohort reports whether a cohort year may participate. The window
// covers the last `window` academic years, exclusive of the current year:
// with window=2 and now in 2026, cohorts 2024 and 2025 are eligible.
func EligibleCohort(cohortYear int, now time.Time, window int) bool {
	if window <= 0 {
		window = 2
	}
	year := now.Year()
	return cohortYear >= year-window && cohortYear <= year-1
}
