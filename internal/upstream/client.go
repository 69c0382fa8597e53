package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/simak-gateway/internal/models"
	"github.com/noah-isme/simak-gateway/pkg/config"
	appErrors "github.com/noah-isme/simak-gateway/pkg/errors"
)

// Observer receives timing for every upstream call. Implemented by the
// metrics service; nil observers are allowed.
type Observer interface {
	ObserveUpstreamRequest(endpoint string, status int, duration time.Duration)
}

// Client is the typed HTTP client for the external academic service. Every
// call relays the caller's bearer token; the gateway holds no credentials of
// its own.
type Client struct {
	baseURL  string
	http     *http.Client
	logger   *zap.Logger
	observer Observer
}

// NewClient constructs the upstream client.
func NewClient(cfg config.UpstreamConfig, logger *zap.Logger, observer Observer) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		baseURL:  cfg.BaseURL,
		http:     &http.Client{Timeout: timeout},
		logger:   logger,
		observer: observer,
	}
}

// GetIdentity returns the caller's profile.
func (c *Client) GetIdentity(ctx context.Context, token string) (*models.Identity, error) {
	var payload identityPayload
	if err := c.do(ctx, token, http.MethodGet, "/identity/detail", "/identity/detail", nil, &payload); err != nil {
		return nil, err
	}
	identity, err := payload.toModel()
	if err != nil {
		return nil, payloadError(err)
	}
	return identity, nil
}

// GetActiveEvent probes the active enrollment window for the caller's cohort.
func (c *Client) GetActiveEvent(ctx context.Context, token string) (*ActiveEventStatus, error) {
	var status ActiveEventStatus
	if err := c.do(ctx, token, http.MethodGet, "/elective/active-event", "/elective/active-event", nil, &status); err != nil {
		return nil, err
	}
	return &status, nil
}

// ListEvents returns all enrollment events.
func (c *Client) ListEvents(ctx context.Context, token string) ([]models.EnrollmentEvent, error) {
	var payloads []eventPayload
	if err := c.do(ctx, token, http.MethodGet, "/elective/events", "/elective/events", nil, &payloads); err != nil {
		return nil, err
	}
	events := make([]models.EnrollmentEvent, 0, len(payloads))
	for _, p := range payloads {
		event, err := p.toModel()
		if err != nil {
			return nil, payloadError(err)
		}
		events = append(events, *event)
	}
	return events, nil
}

// GetEvent returns a single enrollment event.
func (c *Client) GetEvent(ctx context.Context, token, id string) (*models.EnrollmentEvent, error) {
	var payload eventPayload
	if err := c.do(ctx, token, http.MethodGet, "/elective/events/:id", "/elective/events/"+id, nil, &payload); err != nil {
		return nil, err
	}
	event, err := payload.toModel()
	if err != nil {
		return nil, payloadError(err)
	}
	return event, nil
}

// CreateEvent forwards event creation.
func (c *Client) CreateEvent(ctx context.Context, token string, input EventInput) (*models.EnrollmentEvent, error) {
	var payload eventPayload
	if err := c.do(ctx, token, http.MethodPost, "/elective/events", "/elective/events", input, &payload); err != nil {
		return nil, err
	}
	event, err := payload.toModel()
	if err != nil {
		return nil, payloadError(err)
	}
	return event, nil
}

// UpdateEvent forwards event mutation.
func (c *Client) UpdateEvent(ctx context.Context, token, id string, input EventInput) (*models.EnrollmentEvent, error) {
	var payload eventPayload
	if err := c.do(ctx, token, http.MethodPut, "/elective/events/:id", "/elective/events/"+id, input, &payload); err != nil {
		return nil, err
	}
	event, err := payload.toModel()
	if err != nil {
		return nil, payloadError(err)
	}
	return event, nil
}

// DeleteEvent forwards event deletion.
func (c *Client) DeleteEvent(ctx context.Context, token, id string) error {
	return c.do(ctx, token, http.MethodDelete, "/elective/events/:id", "/elective/events/"+id, nil, nil)
}

// CreateChoices submits a student's tier choices. The upstream enforces
// at-most-one submission per (student, event) and answers 409 on duplicates.
func (c *Client) CreateChoices(ctx context.Context, token string, input ChoicesInput) (*models.Submission, error) {
	var payload submissionPayload
	if err := c.do(ctx, token, http.MethodPost, "/elective/choices", "/elective/choices", input, &payload); err != nil {
		return nil, err
	}
	sub, err := payload.toModel()
	if err != nil {
		return nil, payloadError(err)
	}
	return sub, nil
}

// ListSubmissions returns all submissions against one event.
func (c *Client) ListSubmissions(ctx context.Context, token, eventID string) ([]models.Submission, error) {
	var payloads []submissionPayload
	if err := c.do(ctx, token, http.MethodGet, "/elective/submissions/:eventId", "/elective/submissions/"+eventID, nil, &payloads); err != nil {
		return nil, err
	}
	subs := make([]models.Submission, 0, len(payloads))
	for _, p := range payloads {
		sub, err := p.toModel()
		if err != nil {
			return nil, payloadError(err)
		}
		subs = append(subs, *sub)
	}
	return subs, nil
}

// UpdateChoiceStatus forwards the per-tier review decisions.
func (c *Client) UpdateChoiceStatus(ctx context.Context, token string, input StatusInput) (*models.Submission, error) {
	var payload submissionPayload
	if err := c.do(ctx, token, http.MethodPut, "/elective/choices/status", "/elective/choices/status", input, &payload); err != nil {
		return nil, err
	}
	sub, err := payload.toModel()
	if err != nil {
		return nil, payloadError(err)
	}
	return sub, nil
}

// do performs one upstream call. endpoint is the templated route used as the
// metrics label; path is the concrete request path. Keeping them apart stops
// per-ID label cardinality in Prometheus.
func (c *Client) do(ctx context.Context, token, method, endpoint, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "encode upstream request")
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "build upstream request")
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		if c.observer != nil {
			c.observer.ObserveUpstreamRequest(endpoint, 0, time.Since(start))
		}
		c.logger.Warn("upstream unreachable", zap.String("path", path), zap.Error(err))
		return appErrors.Wrap(err, appErrors.ErrUpstream.Code, appErrors.ErrUpstream.Status, appErrors.ErrUpstream.Message)
	}
	defer resp.Body.Close()

	if c.observer != nil {
		c.observer.ObserveUpstreamRequest(endpoint, resp.StatusCode, time.Since(start))
	}

	if resp.StatusCode >= 400 {
		return c.mapStatus(resp)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return payloadError(fmt.Errorf("decode %s: %w", path, err))
	}
	return nil
}

// mapStatus converts an upstream failure into the gateway taxonomy,
// preserving the upstream message where one is present.
func (c *Client) mapStatus(resp *http.Response) error {
	var payload errorPayload
	_ = json.NewDecoder(io.LimitReader(resp.Body, 4096)).Decode(&payload)
	detail := payload.text()

	var base *appErrors.Error
	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		base = appErrors.ErrUnauthorized
	case resp.StatusCode == http.StatusForbidden:
		base = appErrors.ErrForbidden
	case resp.StatusCode == http.StatusNotFound:
		base = appErrors.ErrNotFound
	case resp.StatusCode == http.StatusConflict:
		base = appErrors.ErrConflict
	case resp.StatusCode == http.StatusBadRequest || resp.StatusCode == http.StatusUnprocessableEntity:
		base = appErrors.ErrValidation
	case resp.StatusCode >= 500:
		base = appErrors.ErrUpstream
	default:
		base = appErrors.ErrInternal
	}
	return appErrors.Clone(base, detail)
}

func payloadError(err error) error {
	return appErrors.Wrap(err, appErrors.ErrUpstreamPayload.Code, appErrors.ErrUpstreamPayload.Status, appErrors.ErrUpstreamPayload.Message)
}
