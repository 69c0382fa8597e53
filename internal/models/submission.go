package models

import (
	"bytes"
	"fmt"
	"time"
)

// Decision is the tri-state review outcome for one tier. On the wire it is a
// nullable boolean: null pending, true accepted, false rejected.
type Decision int

const (
	DecisionPending Decision = iota
	DecisionAccepted
	DecisionRejected
)

// String returns a human-readable label used in logs and exports.
func (d Decision) String() string {
	switch d {
	case DecisionAccepted:
		return "accepted"
	case DecisionRejected:
		return "rejected"
	default:
		return "pending"
	}
}

var jsonNull = []byte("null")

// MarshalJSON encodes the decision as a nullable boolean.
func (d Decision) MarshalJSON() ([]byte, error) {
	switch d {
	case DecisionAccepted:
		return []byte("true"), nil
	case DecisionRejected:
		return []byte("false"), nil
	default:
		return jsonNull, nil
	}
}

// UnmarshalJSON decodes null/true/false; anything else is a shape error.
func (d *Decision) UnmarshalJSON(data []byte) error {
	switch {
	case bytes.Equal(data, jsonNull):
		*d = DecisionPending
	case bytes.Equal(data, []byte("true")):
		*d = DecisionAccepted
	case bytes.Equal(data, []byte("false")):
		*d = DecisionRejected
	default:
		return fmt.Errorf("decision must be null, true or false, got %s", data)
	}
	return nil
}

// TierChoice is one tier of a submission: the chosen option and its review
// outcome.
type TierChoice struct {
	Option       string   `json:"option"`
	SubjectID    string   `json:"subject_id"`
	SubjectName  string   `json:"subject_name"`
	Decision     Decision `json:"decision"`
	ReviewerNote string   `json:"reviewer_note,omitempty"`
}

// Submission is a student's one-shot set of tier choices against an event.
// Created once per (student, event); only reviewers mutate the decisions.
type Submission struct {
	ID          string                `json:"id"`
	StudentID   string                `json:"student_id"`
	StudentName string                `json:"student_name"`
	EventID     string                `json:"event_id"`
	SubmittedAt time.Time             `json:"submitted_at"`
	Tiers       [TierCount]TierChoice `json:"tiers"`
}

// DisplayState summarises a submission's review progress.
type DisplayState string

const (
	DisplayAllPending  DisplayState = "ALL_PENDING"
	DisplayMixed       DisplayState = "MIXED"
	DisplayAllResolved DisplayState = "ALL_RESOLVED"
)

// DeriveDisplay classifies a submission purely from its tier decisions. It is
// total: every combination of pending/accepted/rejected maps to exactly one
// state.
func DeriveDisplay(s Submission) DisplayState {
	pending := 0
	for _, tier := range s.Tiers {
		if tier.Decision == DecisionPending {
			pending++
		}
	}
	switch pending {
	case TierCount:
		return DisplayAllPending
	case 0:
		return DisplayAllResolved
	default:
		return DisplayMixed
	}
}

// ParticipationState tags the outcome of resolving a student's standing
// against the elective calendar.
type ParticipationState string

const (
	ParticipationIneligible    ParticipationState = "INELIGIBLE"
	ParticipationNoActiveEvent ParticipationState = "NO_ACTIVE_EVENT"
	ParticipationOpen          ParticipationState = "OPEN"
	ParticipationSubmitted     ParticipationState = "SUBMITTED"
)

// Participation is the resolved standing of one student. Exactly one of
// Event/Submission is set depending on State; fetch failures are returned as
// errors, never encoded here.
type Participation struct {
	State      ParticipationState `json:"state"`
	Event      *EnrollmentEvent   `json:"event,omitempty"`
	Submission *Submission        `json:"submission,omitempty"`
	Display    DisplayState       `json:"display,omitempty"`
}
