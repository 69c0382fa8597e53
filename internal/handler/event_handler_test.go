package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/simak-gateway/internal/models"
	"github.com/noah-isme/simak-gateway/internal/service"
	"github.com/noah-isme/simak-gateway/internal/upstream"
)

type eventGatewayMock struct {
	events       []models.EnrollmentEvent
	event        *models.EnrollmentEvent
	eventErr     error
	deleteCalled bool
}

func (m *eventGatewayMock) ListEvents(ctx context.Context, token string) ([]models.EnrollmentEvent, error) {
	return m.events, m.eventErr
}

func (m *eventGatewayMock) GetEvent(ctx context.Context, token, id string) (*models.EnrollmentEvent, error) {
	return m.event, m.eventErr
}

func (m *eventGatewayMock) CreateEvent(ctx context.Context, token string, input upstream.EventInput) (*models.EnrollmentEvent, error) {
	return m.event, m.eventErr
}

func (m *eventGatewayMock) UpdateEvent(ctx context.Context, token, id string, input upstream.EventInput) (*models.EnrollmentEvent, error) {
	return m.event, m.eventErr
}

func (m *eventGatewayMock) DeleteEvent(ctx context.Context, token, id string) error {
	m.deleteCalled = true
	return nil
}

func newEventHandler(gateway *eventGatewayMock) *EventHandler {
	return NewEventHandler(service.NewEventService(gateway, nil, nil, nil, time.Minute))
}

func eventRequestBody(t *testing.T) []byte {
	t.Helper()
	req := service.EventRequest{
		CohortYear: 2025,
		StartDate:  time.Now().AddDate(0, 0, 1),
		EndDate:    time.Now().AddDate(0, 0, 14),
	}
	for i := 0; i < models.TierCount; i++ {
		req.Tiers = append(req.Tiers, service.TierPairInput{
			OptionA: service.TierOptionInput{SubjectID: "a", SubjectName: "Subject A", Capacity: 30},
			OptionB: service.TierOptionInput{SubjectID: "b", SubjectName: "Subject B", Capacity: 30},
		})
	}
	payload, err := json.Marshal(req)
	require.NoError(t, err)
	return payload
}

func TestEventHandlerList(t *testing.T) {
	gateway := &eventGatewayMock{events: []models.EnrollmentEvent{*activeEvent()}}
	handler := newEventHandler(gateway)

	c, w := testContext(t, http.MethodGet, "/elective/events", nil, nil)
	handler.List(c)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), string(models.EventActive))
}

func TestEventHandlerGet(t *testing.T) {
	gateway := &eventGatewayMock{event: activeEvent()}
	handler := newEventHandler(gateway)

	c, w := testContext(t, http.MethodGet, "/elective/events/event-1", nil, nil)
	c.Params = gin.Params{{Key: "id", Value: "event-1"}}
	handler.Get(c)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "event-1")
}

func TestEventHandlerCreate(t *testing.T) {
	gateway := &eventGatewayMock{event: activeEvent()}
	handler := newEventHandler(gateway)

	c, w := testContext(t, http.MethodPost, "/elective/events", eventRequestBody(t),
		&models.JWTClaims{UserID: "admin-1", Role: models.RoleAdmin})
	handler.Create(c)

	require.Equal(t, http.StatusCreated, w.Code)
}

func TestEventHandlerCreateInvalidBody(t *testing.T) {
	handler := newEventHandler(&eventGatewayMock{})

	c, w := testContext(t, http.MethodPost, "/elective/events", []byte(`{"cohort_year":`),
		&models.JWTClaims{UserID: "admin-1", Role: models.RoleAdmin})
	handler.Create(c)

	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestEventHandlerDeleteNoContent(t *testing.T) {
	gateway := &eventGatewayMock{event: activeEvent()}
	handler := newEventHandler(gateway)

	c, w := testContext(t, http.MethodDelete, "/elective/events/event-1", nil,
		&models.JWTClaims{UserID: "admin-1", Role: models.RoleAdmin})
	c.Params = gin.Params{{Key: "id", Value: "event-1"}}
	handler.Delete(c)
	// Gin buffers the status for body-less responses; flush it so the
	// recorder sees the 204 the handler set.
	c.Writer.WriteHeaderNow()

	require.Equal(t, http.StatusNoContent, w.Code)
	assert.True(t, gateway.deleteCalled)
}

func TestEventHandlerDeleteConflict(t *testing.T) {
	event := activeEvent()
	event.SubmissionsCount = 3
	gateway := &eventGatewayMock{event: event}
	handler := newEventHandler(gateway)

	c, w := testContext(t, http.MethodDelete, "/elective/events/event-1", nil,
		&models.JWTClaims{UserID: "admin-1", Role: models.RoleAdmin})
	c.Params = gin.Params{{Key: "id", Value: "event-1"}}
	handler.Delete(c)

	require.Equal(t, http.StatusConflict, w.Code)
	assert.False(t, gateway.deleteCalled)
}
