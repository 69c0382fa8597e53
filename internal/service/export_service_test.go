package service

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/simak-gateway/internal/models"
	appErrors "github.com/noah-isme/simak-gateway/pkg/errors"
)

func newExportFixture(gateway *gatewayMock) *ExportService {
	return NewExportService(newElectiveService(gateway), newEventService(gateway, nil), nil)
}

func reviewerClaims() *models.JWTClaims {
	return &models.JWTClaims{UserID: "admin-1", Role: models.RoleAdmin}
}

func TestRenderRecapCSV(t *testing.T) {
	sub := testSubmission("student-1")
	sub.Tiers[0].SubjectName = "Biologi"
	sub.Tiers[0].Decision = models.DecisionAccepted
	sub.Tiers[1].ReviewerNote = "kapasitas penuh"
	sub.Tiers[2].ReviewerNote = "kapasitas penuh"
	gateway := &gatewayMock{event: testEvent(), submissions: []models.Submission{sub}}
	svc := newExportFixture(gateway)

	result, err := svc.RenderRecap(context.Background(), "token", reviewerClaims(), "event-1", FormatCSV)
	require.NoError(t, err)
	assert.Equal(t, "peminatan-2025-event-1.csv", result.FileName)
	assert.Equal(t, "text/csv", result.ContentType)

	content := string(result.Content)
	assert.Contains(t, content, "Siswa")
	assert.Contains(t, content, "Siti")
	assert.Contains(t, content, "Biologi")
	assert.Contains(t, content, "accepted")
	assert.Contains(t, content, string(models.DisplayMixed))
	// Identical notes collapse into one.
	assert.Equal(t, 1, bytes.Count(result.Content, []byte("kapasitas penuh")))
}

func TestRenderRecapPDF(t *testing.T) {
	gateway := &gatewayMock{event: testEvent(), submissions: []models.Submission{testSubmission("student-1")}}
	svc := newExportFixture(gateway)

	result, err := svc.RenderRecap(context.Background(), "token", reviewerClaims(), "event-1", FormatPDF)
	require.NoError(t, err)
	assert.Equal(t, "peminatan-2025-event-1.pdf", result.FileName)
	assert.Equal(t, "application/pdf", result.ContentType)
	assert.True(t, bytes.HasPrefix(result.Content, []byte("%PDF")))
}

func TestRenderRecapRejectsUnknownFormat(t *testing.T) {
	svc := newExportFixture(&gatewayMock{})

	_, err := svc.RenderRecap(context.Background(), "token", reviewerClaims(), "event-1", ExportFormat("xlsx"))
	assert.True(t, appErrors.Is(err, appErrors.ErrValidation))
}

func TestRenderRecapRequiresReviewer(t *testing.T) {
	gateway := &gatewayMock{event: testEvent()}
	svc := newExportFixture(gateway)

	_, err := svc.RenderRecap(context.Background(), "token", studentClaims(), "event-1", FormatCSV)
	assert.True(t, appErrors.Is(err, appErrors.ErrForbidden))
}
