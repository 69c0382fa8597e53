package service

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/simak-gateway/internal/models"
	"github.com/noah-isme/simak-gateway/internal/upstream"
	appErrors "github.com/noah-isme/simak-gateway/pkg/errors"
)

type eventGateway interface {
	ListEvents(ctx context.Context, token string) ([]models.EnrollmentEvent, error)
	GetEvent(ctx context.Context, token, id string) (*models.EnrollmentEvent, error)
	CreateEvent(ctx context.Context, token string, input upstream.EventInput) (*models.EnrollmentEvent, error)
	UpdateEvent(ctx context.Context, token, id string, input upstream.EventInput) (*models.EnrollmentEvent, error)
	DeleteEvent(ctx context.Context, token, id string) error
}

const eventCacheKey = "elective:events"

// TierOptionInput is one subject option in an event payload.
type TierOptionInput struct {
	SubjectID   string `json:"subject_id" validate:"required"`
	SubjectName string `json:"subject_name" validate:"required"`
	Capacity    int    `json:"capacity" validate:"gte=0"`
}

// TierPairInput is one tier's pair of options.
type TierPairInput struct {
	OptionA TierOptionInput `json:"option_a" validate:"required"`
	OptionB TierOptionInput `json:"option_b" validate:"required"`
}

// EventRequest describes event creation and update payloads.
type EventRequest struct {
	CohortYear int             `json:"cohort_year" validate:"required,gte=2000"`
	StartDate  time.Time       `json:"start_date" validate:"required"`
	EndDate    time.Time       `json:"end_date" validate:"required"`
	Tiers      []TierPairInput `json:"tiers" validate:"required,len=4,dive"`
}

// EventDetail enriches an event with its derived status.
type EventDetail struct {
	models.EnrollmentEvent
	Status models.EventStatus `json:"status"`
}

// EventService manages enrollment events through the academic service,
// adding derived status, cached listings and the local delete guard.
type EventService struct {
	gateway   eventGateway
	cache     *CacheService
	validator *validator.Validate
	logger    *zap.Logger
	cacheTTL  time.Duration
	now       func() time.Time
}

// NewEventService constructs EventService.
func NewEventService(gateway eventGateway, cache *CacheService, validate *validator.Validate, logger *zap.Logger, cacheTTL time.Duration) *EventService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EventService{
		gateway:   gateway,
		cache:     cache,
		validator: validate,
		logger:    logger,
		cacheTTL:  cacheTTL,
		now:       time.Now,
	}
}

// List returns all enrollment events with derived status. The upstream
// listing is cached; derived status is always recomputed against "now" so a
// stale cache cannot freeze an event's lifecycle phase.
func (s *EventService) List(ctx context.Context, token string) ([]EventDetail, error) {
	var events []models.EnrollmentEvent
	hit, err := s.cache.Get(ctx, eventCacheKey, &events)
	if err != nil || !hit {
		events, err = s.gateway.ListEvents(ctx, token)
		if err != nil {
			return nil, err
		}
		_ = s.cache.Set(ctx, eventCacheKey, events, s.cacheTTL)
	}

	now := s.now()
	details := make([]EventDetail, 0, len(events))
	for _, event := range events {
		details = append(details, EventDetail{EnrollmentEvent: event, Status: event.Status(now)})
	}
	return details, nil
}

// Get returns one event with derived status.
func (s *EventService) Get(ctx context.Context, token, id string) (*EventDetail, error) {
	if id == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "event id is required")
	}
	event, err := s.gateway.GetEvent(ctx, token, id)
	if err != nil {
		return nil, err
	}
	return &EventDetail{EnrollmentEvent: *event, Status: event.Status(s.now())}, nil
}

// Create forwards event creation.
func (s *EventService) Create(ctx context.Context, token string, req EventRequest) (*EventDetail, error) {
	if err := s.validateRequest(req); err != nil {
		return nil, err
	}
	event, err := s.gateway.CreateEvent(ctx, token, s.toInput(req))
	if err != nil {
		return nil, err
	}
	s.cache.Invalidate(ctx, eventCacheKey)
	s.logger.Info("enrollment event created", zap.String("event_id", event.ID), zap.Int("cohort_year", event.CohortYear))
	return &EventDetail{EnrollmentEvent: *event, Status: event.Status(s.now())}, nil
}

// Update forwards event mutation.
func (s *EventService) Update(ctx context.Context, token, id string, req EventRequest) (*EventDetail, error) {
	if id == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "event id is required")
	}
	if err := s.validateRequest(req); err != nil {
		return nil, err
	}
	event, err := s.gateway.UpdateEvent(ctx, token, id, s.toInput(req))
	if err != nil {
		return nil, err
	}
	s.cache.Invalidate(ctx, eventCacheKey)
	return &EventDetail{EnrollmentEvent: *event, Status: event.Status(s.now())}, nil
}

// Delete removes an event. Events with submissions are immutable: the guard
// runs here, before any delete reaches the academic service.
func (s *EventService) Delete(ctx context.Context, token, id string) error {
	if id == "" {
		return appErrors.Clone(appErrors.ErrValidation, "event id is required")
	}
	event, err := s.gateway.GetEvent(ctx, token, id)
	if err != nil {
		return err
	}
	if event.SubmissionsCount > 0 {
		return appErrors.Clone(appErrors.ErrConflict, "event has submissions and cannot be deleted")
	}
	if err := s.gateway.DeleteEvent(ctx, token, id); err != nil {
		return err
	}
	s.cache.Invalidate(ctx, eventCacheKey)
	s.logger.Info("enrollment event deleted", zap.String("event_id", id))
	return nil
}

func (s *EventService) validateRequest(req EventRequest) error {
	if err := s.validator.Struct(req); err != nil {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid event payload")
	}
	if !req.EndDate.After(req.StartDate) {
		return appErrors.Clone(appErrors.ErrValidation, "end date must be after start date")
	}
	return nil
}

func (s *EventService) toInput(req EventRequest) upstream.EventInput {
	var tiers [models.TierCount]models.TierPair
	for i, tier := range req.Tiers {
		tiers[i] = models.TierPair{
			OptionA: models.TierOption(tier.OptionA),
			OptionB: models.TierOption(tier.OptionB),
		}
	}
	return upstream.NewEventInput(req.CohortYear, req.StartDate, req.EndDate, tiers)
}
