package upstream

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/simak-gateway/internal/models"
	"github.com/noah-isme/simak-gateway/pkg/config"
	appErrors "github.com/noah-isme/simak-gateway/pkg/errors"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewClient(config.UpstreamConfig{BaseURL: server.URL, Timeout: 5 * time.Second}, nil, nil)
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func validEventBody(id string) map[string]interface{} {
	tiers := make([]map[string]interface{}, 0, models.TierCount)
	for i := 0; i < models.TierCount; i++ {
		tiers = append(tiers, map[string]interface{}{
			"option_a": map[string]interface{}{"subject_id": "a", "subject_name": "Subject A"},
			"option_b": map[string]interface{}{"subject_id": "b", "subject_name": "Subject B"},
		})
	}
	return map[string]interface{}{
		"id":          id,
		"cohort_year": 2025,
		"start_date":  "2026-08-01T00:00:00Z",
		"end_date":    "2026-08-31T00:00:00Z",
		"tiers":       tiers,
	}
}

func TestGetIdentityRelaysBearerToken(t *testing.T) {
	var gotAuth, gotAccept string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotAccept = r.Header.Get("Accept")
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"id":          "student-1",
			"email":       "siswa@sekolah.sch.id",
			"full_name":   "Siti",
			"role":        "STUDENT",
			"cohort_year": 2025,
		})
	})

	identity, err := client.GetIdentity(context.Background(), "raw-token")
	require.NoError(t, err)
	assert.Equal(t, "Bearer raw-token", gotAuth)
	assert.Equal(t, "application/json", gotAccept)
	assert.Equal(t, "student-1", identity.ID)
	assert.Equal(t, models.RoleStudent, identity.Role)
	assert.Equal(t, 2025, identity.CohortYear)
}

func TestGetIdentityRejectsUnknownRole(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]interface{}{"id": "student-1", "role": "SUPERUSER"})
	})

	_, err := client.GetIdentity(context.Background(), "token")
	assert.True(t, appErrors.Is(err, appErrors.ErrUpstreamPayload))
}

func TestStatusMapping(t *testing.T) {
	tests := []struct {
		status int
		want   *appErrors.Error
	}{
		{http.StatusUnauthorized, appErrors.ErrUnauthorized},
		{http.StatusForbidden, appErrors.ErrForbidden},
		{http.StatusNotFound, appErrors.ErrNotFound},
		{http.StatusConflict, appErrors.ErrConflict},
		{http.StatusBadRequest, appErrors.ErrValidation},
		{http.StatusUnprocessableEntity, appErrors.ErrValidation},
		{http.StatusInternalServerError, appErrors.ErrUpstream},
		{http.StatusBadGateway, appErrors.ErrUpstream},
	}
	for _, tt := range tests {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, tt.status, map[string]string{"detail": "upstream said no"})
		})

		_, err := client.GetIdentity(context.Background(), "token")
		assert.True(t, appErrors.Is(err, tt.want), "status %d", tt.status)
		assert.Equal(t, "upstream said no", appErrors.FromError(err).Message)
	}
}

func TestCreateChoicesConflictKeepsDetail(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		writeJSON(w, http.StatusConflict, map[string]string{"detail": "submission already exists"})
	})

	_, err := client.CreateChoices(context.Background(), "token", ChoicesInput{
		EventID:   "event-1",
		StudentID: "student-1",
		Subjects:  []string{"a", "b", "a", "b"},
	})
	require.True(t, appErrors.Is(err, appErrors.ErrConflict))
	assert.Equal(t, "submission already exists", appErrors.FromError(err).Message)
}

func TestGetEventRejectsWrongTierCount(t *testing.T) {
	body := validEventBody("event-1")
	body["tiers"] = body["tiers"].([]map[string]interface{})[:3]
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, body)
	})

	_, err := client.GetEvent(context.Background(), "token", "event-1")
	assert.True(t, appErrors.Is(err, appErrors.ErrUpstreamPayload))
}

func TestGetEventHappyPath(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/elective/events/event-1", r.URL.Path)
		writeJSON(w, http.StatusOK, validEventBody("event-1"))
	})

	event, err := client.GetEvent(context.Background(), "token", "event-1")
	require.NoError(t, err)
	assert.Equal(t, "event-1", event.ID)
	assert.Equal(t, 2025, event.CohortYear)
	option, ok := event.OptionForTier(0, "b")
	assert.True(t, ok)
	assert.Equal(t, "Subject B", option.SubjectName)
}

func TestListSubmissionsDecodesDecisions(t *testing.T) {
	tiers := []map[string]interface{}{
		{"option": "A", "subject_id": "a", "subject_name": "Subject A", "decision": true},
		{"option": "B", "subject_id": "b", "subject_name": "Subject B", "decision": false},
		{"option": "A", "subject_id": "a", "subject_name": "Subject A", "decision": nil},
		{"option": "B", "subject_id": "b", "subject_name": "Subject B", "decision": nil},
	}
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, []map[string]interface{}{{
			"id":           "sub-1",
			"student_id":   "student-1",
			"student_name": "Siti",
			"event_id":     "event-1",
			"submitted_at": "2026-08-20T08:00:00Z",
			"tiers":        tiers,
		}})
	})

	subs, err := client.ListSubmissions(context.Background(), "token", "event-1")
	require.NoError(t, err)
	require.Len(t, subs, 1)
	assert.Equal(t, models.DecisionAccepted, subs[0].Tiers[0].Decision)
	assert.Equal(t, models.DecisionRejected, subs[0].Tiers[1].Decision)
	assert.Equal(t, models.DecisionPending, subs[0].Tiers[2].Decision)
}

func TestUnreachableUpstream(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	server.Close()
	client := NewClient(config.UpstreamConfig{BaseURL: server.URL, Timeout: time.Second}, nil, nil)

	_, err := client.GetIdentity(context.Background(), "token")
	assert.True(t, appErrors.Is(err, appErrors.ErrUpstream))
}

type observerMock struct {
	endpoints []string
	statuses  []int
}

func (m *observerMock) ObserveUpstreamRequest(endpoint string, status int, duration time.Duration) {
	m.endpoints = append(m.endpoints, endpoint)
	m.statuses = append(m.statuses, status)
}

func TestObserverGetsTemplatedEndpoint(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, validEventBody("event-1"))
	}))
	t.Cleanup(server.Close)
	observer := &observerMock{}
	client := NewClient(config.UpstreamConfig{BaseURL: server.URL, Timeout: 5 * time.Second}, nil, observer)

	_, err := client.GetEvent(context.Background(), "token", "event-1")
	require.NoError(t, err)
	_, err = client.GetEvent(context.Background(), "token", "event-2")
	require.NoError(t, err)

	assert.Equal(t, []string{"/elective/events/:id", "/elective/events/:id"}, observer.endpoints)
	assert.Equal(t, []int{http.StatusOK, http.StatusOK}, observer.statuses)
}

func TestObserverRecordsZeroStatusOnFailure(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	server.Close()
	observer := &observerMock{}
	client := NewClient(config.UpstreamConfig{BaseURL: server.URL, Timeout: time.Second}, nil, observer)

	_, err := client.ListSubmissions(context.Background(), "token", "event-1")
	require.Error(t, err)

	assert.Equal(t, []string{"/elective/submissions/:eventId"}, observer.endpoints)
	assert.Equal(t, []int{0}, observer.statuses)
}

func TestDeleteEventNoBody(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		w.WriteHeader(http.StatusNoContent)
	})

	assert.NoError(t, client.DeleteEvent(context.Background(), "token", "event-1"))
}
