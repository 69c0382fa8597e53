package upstream

import (
	"fmt"
	"time"

	"github.com/noah-isme/simak-gateway/internal/models"
)

// Wire payloads mirror the academic service's JSON. Each payload owns its
// conversion into a domain model and rejects shapes the gateway cannot
// interpret instead of carrying loosely typed maps around.

// ActiveEventStatus is the upstream's answer to the active-event probe for
// the calling student's cohort.
type ActiveEventStatus struct {
	IsActive     bool   `json:"is_active"`
	HasSubmitted bool   `json:"has_submitted"`
	EventID      string `json:"event_id"`
}

type identityPayload struct {
	ID         string `json:"id"`
	Email      string `json:"email"`
	FullName   string `json:"full_name"`
	Role       string `json:"role"`
	CohortYear int    `json:"cohort_year"`
	ClassName  string `json:"class_name"`
}

func (p identityPayload) toModel() (*models.Identity, error) {
	if p.ID == "" {
		return nil, fmt.Errorf("identity missing id")
	}
	role := models.UserRole(p.Role)
	switch role {
	case models.RoleAdmin, models.RoleTeacher, models.RoleStudent:
	default:
		return nil, fmt.Errorf("identity has unknown role %q", p.Role)
	}
	return &models.Identity{
		ID:         p.ID,
		Email:      p.Email,
		FullName:   p.FullName,
		Role:       role,
		CohortYear: p.CohortYear,
		ClassName:  p.ClassName,
	}, nil
}

type tierOptionPayload struct {
	SubjectID   string `json:"subject_id"`
	SubjectName string `json:"subject_name"`
	Capacity    int    `json:"capacity"`
}

type tierPairPayload struct {
	OptionA tierOptionPayload `json:"option_a"`
	OptionB tierOptionPayload `json:"option_b"`
}

type eventPayload struct {
	ID               string            `json:"id"`
	CohortYear       int               `json:"cohort_year"`
	StartDate        time.Time         `json:"start_date"`
	EndDate          time.Time         `json:"end_date"`
	SubmissionsCount int               `json:"submissions_count"`
	Tiers            []tierPairPayload `json:"tiers"`
}

func (p eventPayload) toModel() (*models.EnrollmentEvent, error) {
	if p.ID == "" {
		return nil, fmt.Errorf("event missing id")
	}
	if len(p.Tiers) != models.TierCount {
		return nil, fmt.Errorf("event %s has %d tiers, want %d", p.ID, len(p.Tiers), models.TierCount)
	}
	event := &models.EnrollmentEvent{
		ID:               p.ID,
		CohortYear:       p.CohortYear,
		StartDate:        p.StartDate,
		EndDate:          p.EndDate,
		SubmissionsCount: p.SubmissionsCount,
	}
	for i, tier := range p.Tiers {
		if tier.OptionA.SubjectID == "" || tier.OptionB.SubjectID == "" {
			return nil, fmt.Errorf("event %s tier %d has an option without subject id", p.ID, i+1)
		}
		event.Tiers[i] = models.TierPair{
			OptionA: models.TierOption(tier.OptionA),
			OptionB: models.TierOption(tier.OptionB),
		}
	}
	return event, nil
}

type tierChoicePayload struct {
	Option       string          `json:"option"`
	SubjectID    string          `json:"subject_id"`
	SubjectName  string          `json:"subject_name"`
	Decision     models.Decision `json:"decision"`
	ReviewerNote string          `json:"reviewer_note"`
}

type submissionPayload struct {
	ID          string              `json:"id"`
	StudentID   string              `json:"student_id"`
	StudentName string              `json:"student_name"`
	EventID     string              `json:"event_id"`
	SubmittedAt time.Time           `json:"submitted_at"`
	Tiers       []tierChoicePayload `json:"tiers"`
}

func (p submissionPayload) toModel() (*models.Submission, error) {
	if p.ID == "" || p.StudentID == "" || p.EventID == "" {
		return nil, fmt.Errorf("submission missing identifiers")
	}
	if len(p.Tiers) != models.TierCount {
		return nil, fmt.Errorf("submission %s has %d tiers, want %d", p.ID, len(p.Tiers), models.TierCount)
	}
	sub := &models.Submission{
		ID:          p.ID,
		StudentID:   p.StudentID,
		StudentName: p.StudentName,
		EventID:     p.EventID,
		SubmittedAt: p.SubmittedAt,
	}
	for i, tier := range p.Tiers {
		if tier.Option != "A" && tier.Option != "B" {
			return nil, fmt.Errorf("submission %s tier %d has option %q", p.ID, i+1, tier.Option)
		}
		sub.Tiers[i] = models.TierChoice{
			Option:       tier.Option,
			SubjectID:    tier.SubjectID,
			SubjectName:  tier.SubjectName,
			Decision:     tier.Decision,
			ReviewerNote: tier.ReviewerNote,
		}
	}
	return sub, nil
}

// EventInput is the create/update payload forwarded to the upstream.
type EventInput struct {
	CohortYear int               `json:"cohort_year"`
	StartDate  time.Time         `json:"start_date"`
	EndDate    time.Time         `json:"end_date"`
	Tiers      []tierPairPayload `json:"tiers"`
}

// NewEventInput converts domain tier pairs into the wire form.
func NewEventInput(cohortYear int, start, end time.Time, tiers [models.TierCount]models.TierPair) EventInput {
	input := EventInput{CohortYear: cohortYear, StartDate: start, EndDate: end}
	for _, tier := range tiers {
		input.Tiers = append(input.Tiers, tierPairPayload{
			OptionA: tierOptionPayload(tier.OptionA),
			OptionB: tierOptionPayload(tier.OptionB),
		})
	}
	return input
}

// ChoicesInput creates a submission upstream.
type ChoicesInput struct {
	EventID   string   `json:"event_id"`
	StudentID string   `json:"student_id"`
	Subjects  []string `json:"subjects"`
}

// StatusInput updates all four tier decisions of one submission.
type StatusInput struct {
	SubmissionID string            `json:"submission_id"`
	Decisions    []models.Decision `json:"decisions"`
	Note         string            `json:"note"`
}

type errorPayload struct {
	Detail  string `json:"detail"`
	Message string `json:"message"`
}

func (p errorPayload) text() string {
	if p.Detail != "" {
		return p.Detail
	}
	return p.Message
}
