package service

import (
	"context"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/simak-gateway/internal/models"
	"github.com/noah-isme/simak-gateway/internal/upstream"
	appErrors "github.com/noah-isme/simak-gateway/pkg/errors"
)

type electiveGateway interface {
	GetIdentity(ctx context.Context, token string) (*models.Identity, error)
	GetActiveEvent(ctx context.Context, token string) (*upstream.ActiveEventStatus, error)
	GetEvent(ctx context.Context, token, id string) (*models.EnrollmentEvent, error)
	ListSubmissions(ctx context.Context, token, eventID string) ([]models.Submission, error)
	CreateChoices(ctx context.Context, token string, input upstream.ChoicesInput) (*models.Submission, error)
	UpdateChoiceStatus(ctx context.Context, token string, input upstream.StatusInput) (*models.Submission, error)
}

// SubmitRequest carries a student's four tier choices, ordered tier 1..4.
type SubmitRequest struct {
	EventID  string   `json:"event_id" validate:"required"`
	Subjects []string `json:"subjects" validate:"required,len=4,dive,required"`
}

// ReviewRequest resolves all four tiers of one submission. Partial reviews
// are rejected: every tier must be decided.
type ReviewRequest struct {
	SubmissionID string   `json:"submission_id" validate:"required"`
	Decisions    []string `json:"decisions" validate:"required,len=4,dive,oneof=accepted rejected"`
	Note         string   `json:"note" validate:"max=500"`
}

// SubmissionDetail pairs a submission with its derived display state.
type SubmissionDetail struct {
	models.Submission
	Display models.DisplayState `json:"display"`
}

// ElectiveService owns the elective submission workflow: participation
// resolution, the one-shot submit transition and the review transition. All
// persistence lives in the academic service; this layer sequences the calls
// and enforces the preconditions the UI used to scatter.
type ElectiveService struct {
	gateway      electiveGateway
	validator    *validator.Validate
	logger       *zap.Logger
	cohortWindow int
	now          func() time.Time
}

// NewElectiveService constructs ElectiveService.
func NewElectiveService(gateway electiveGateway, validate *validator.Validate, logger *zap.Logger, cohortWindow int) *ElectiveService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if cohortWindow <= 0 {
		cohortWindow = 2
	}
	return &ElectiveService{
		gateway:      gateway,
		validator:    validate,
		logger:       logger,
		cohortWindow: cohortWindow,
		now:          time.Now,
	}
}

// ResolveParticipation derives the student's standing against the elective
// calendar: identity → eligibility → active-event probe → own submission.
// The result is a single tagged value; any fetch failure is returned as an
// error so callers can tell "no data" from "transient failure".
func (s *ElectiveService) ResolveParticipation(ctx context.Context, token string, claims *models.JWTClaims) (*models.Participation, error) {
	if claims == nil || claims.Role != models.RoleStudent {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "participation is a student resource")
	}

	identity, err := s.gateway.GetIdentity(ctx, token)
	if err != nil {
		return nil, err
	}
	if identity.Role != models.RoleStudent {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "participation is a student resource")
	}

	if !models.EligibleCohort(identity.CohortYear, s.now(), s.cohortWindow) {
		return &models.Participation{State: models.ParticipationIneligible}, nil
	}

	status, err := s.gateway.GetActiveEvent(ctx, token)
	if err != nil {
		return nil, err
	}

	if status.HasSubmitted && status.EventID != "" {
		submission, err := s.findOwnSubmission(ctx, token, status.EventID, identity.ID)
		if err != nil {
			return nil, err
		}
		return &models.Participation{
			State:      models.ParticipationSubmitted,
			Submission: submission,
			Display:    models.DeriveDisplay(*submission),
		}, nil
	}

	if !status.IsActive || status.EventID == "" {
		return &models.Participation{State: models.ParticipationNoActiveEvent}, nil
	}

	event, err := s.gateway.GetEvent(ctx, token, status.EventID)
	if err != nil {
		return nil, err
	}
	if event.Status(s.now()) != models.EventActive {
		return &models.Participation{State: models.ParticipationNoActiveEvent}, nil
	}

	return &models.Participation{State: models.ParticipationOpen, Event: event}, nil
}

// Submit forwards the student's tier choices once. Preconditions are checked
// locally against the resolved participation before anything is sent: the
// window must be open, all four tiers chosen, and each choice must be one of
// the tier's two configured options. A failed forward leaves no record and
// is never retried here.
func (s *ElectiveService) Submit(ctx context.Context, token string, claims *models.JWTClaims, req SubmitRequest) (*models.Submission, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid submission payload")
	}

	participation, err := s.ResolveParticipation(ctx, token, claims)
	if err != nil {
		return nil, err
	}
	switch participation.State {
	case models.ParticipationIneligible:
		return nil, appErrors.Clone(appErrors.ErrIneligible, "cohort is not eligible for electives")
	case models.ParticipationNoActiveEvent:
		return nil, appErrors.Clone(appErrors.ErrNotFound, "no active enrollment event")
	case models.ParticipationSubmitted:
		return nil, appErrors.Clone(appErrors.ErrConflict, "submission already exists for this event")
	}

	event := participation.Event
	if req.EventID != event.ID {
		return nil, appErrors.Clone(appErrors.ErrValidation, "event is not the active enrollment event")
	}
	for i, subjectID := range req.Subjects {
		if _, ok := event.OptionForTier(i, subjectID); !ok {
			return nil, appErrors.Clone(appErrors.ErrValidation,
				fmt.Sprintf("subject %s is not an option for tier %d", subjectID, i+1))
		}
	}

	submission, err := s.gateway.CreateChoices(ctx, token, upstream.ChoicesInput{
		EventID:   event.ID,
		StudentID: claims.UserID,
		Subjects:  req.Subjects,
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("elective choices submitted",
		zap.String("student_id", claims.UserID),
		zap.String("event_id", event.ID),
		zap.String("submission_id", submission.ID))
	return submission, nil
}

// Review applies all four tier decisions plus an optional shared note.
// Re-issuing the same payload is idempotent: the upstream stores the same
// final state.
func (s *ElectiveService) Review(ctx context.Context, token string, claims *models.JWTClaims, req ReviewRequest) (*SubmissionDetail, error) {
	if claims == nil || (claims.Role != models.RoleAdmin && claims.Role != models.RoleTeacher) {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "review requires a reviewer role")
	}
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid review payload")
	}

	decisions := make([]models.Decision, len(req.Decisions))
	for i, raw := range req.Decisions {
		if raw == "accepted" {
			decisions[i] = models.DecisionAccepted
		} else {
			decisions[i] = models.DecisionRejected
		}
	}

	submission, err := s.gateway.UpdateChoiceStatus(ctx, token, upstream.StatusInput{
		SubmissionID: req.SubmissionID,
		Decisions:    decisions,
		Note:         req.Note,
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("elective submission reviewed",
		zap.String("reviewer_id", claims.UserID),
		zap.String("submission_id", submission.ID))
	return &SubmissionDetail{Submission: *submission, Display: models.DeriveDisplay(*submission)}, nil
}

// ListSubmissions returns an event's submissions with derived display state,
// for reviewer screens.
func (s *ElectiveService) ListSubmissions(ctx context.Context, token string, claims *models.JWTClaims, eventID string) ([]SubmissionDetail, error) {
	if claims == nil || (claims.Role != models.RoleAdmin && claims.Role != models.RoleTeacher) {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "submissions are a reviewer resource")
	}
	if eventID == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "event id is required")
	}

	submissions, err := s.gateway.ListSubmissions(ctx, token, eventID)
	if err != nil {
		return nil, err
	}
	details := make([]SubmissionDetail, 0, len(submissions))
	for _, sub := range submissions {
		details = append(details, SubmissionDetail{Submission: sub, Display: models.DeriveDisplay(sub)})
	}
	return details, nil
}

func (s *ElectiveService) findOwnSubmission(ctx context.Context, token, eventID, studentID string) (*models.Submission, error) {
	submissions, err := s.gateway.ListSubmissions(ctx, token, eventID)
	if err != nil {
		return nil, err
	}
	for i := range submissions {
		if submissions[i].StudentID == studentID {
			return &submissions[i], nil
		}
	}
	return nil, appErrors.Clone(appErrors.ErrUpstreamPayload, "submission reported but not present for event")
}
