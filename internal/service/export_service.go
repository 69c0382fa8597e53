package service

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/noah-isme/simak-gateway/internal/models"
	appErrors "github.com/noah-isme/simak-gateway/pkg/errors"
	"github.com/noah-isme/simak-gateway/pkg/export"
)

// ExportFormat selects the recap rendering.
type ExportFormat string

const (
	FormatCSV ExportFormat = "csv"
	FormatPDF ExportFormat = "pdf"
)

// ExportResult is a rendered recap ready to stream to the client.
type ExportResult struct {
	FileName    string
	ContentType string
	Content     []byte
}

// ExportService renders an event's submissions into a reviewer recap.
type ExportService struct {
	electives *ElectiveService
	events    *EventService
	csv       *export.CSVExporter
	pdf       *export.PDFExporter
	logger    *zap.Logger
}

// NewExportService constructs ExportService.
func NewExportService(electives *ElectiveService, events *EventService, logger *zap.Logger) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExportService{
		electives: electives,
		events:    events,
		csv:       export.NewCSVExporter(),
		pdf:       export.NewPDFExporter(),
		logger:    logger,
	}
}

// RenderRecap builds the recap table for one event and renders it in the
// requested format.
func (s *ExportService) RenderRecap(ctx context.Context, token string, claims *models.JWTClaims, eventID string, format ExportFormat) (*ExportResult, error) {
	if format != FormatCSV && format != FormatPDF {
		return nil, appErrors.Clone(appErrors.ErrValidation, "format must be csv or pdf")
	}

	event, err := s.events.Get(ctx, token, eventID)
	if err != nil {
		return nil, err
	}
	submissions, err := s.electives.ListSubmissions(ctx, token, claims, eventID)
	if err != nil {
		return nil, err
	}

	dataset := buildRecapDataset(submissions)
	title := fmt.Sprintf("Rekap Peminatan Angkatan %d", event.CohortYear)
	base := fmt.Sprintf("peminatan-%d-%s", event.CohortYear, eventID)

	switch format {
	case FormatPDF:
		weights := map[string]float64{"Siswa": 2, "Catatan": 2}
		content, err := s.pdf.Render(dataset, title, weights)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "render recap pdf")
		}
		return &ExportResult{FileName: base + ".pdf", ContentType: "application/pdf", Content: content}, nil
	default:
		content, err := s.csv.Render(dataset)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "render recap csv")
		}
		return &ExportResult{FileName: base + ".csv", ContentType: "text/csv", Content: content}, nil
	}
}

func buildRecapDataset(submissions []SubmissionDetail) export.Dataset {
	headers := []string{"Siswa"}
	for i := 1; i <= models.TierCount; i++ {
		headers = append(headers, fmt.Sprintf("Pilihan %d", i), fmt.Sprintf("Status %d", i))
	}
	headers = append(headers, "Catatan", "Rekap")

	rows := make([]map[string]string, 0, len(submissions))
	for _, sub := range submissions {
		row := map[string]string{
			"Siswa": sub.StudentName,
			"Rekap": string(sub.Display),
		}
		var notes []string
		for i, tier := range sub.Tiers {
			row[fmt.Sprintf("Pilihan %d", i+1)] = tier.SubjectName
			row[fmt.Sprintf("Status %d", i+1)] = tier.Decision.String()
			if tier.ReviewerNote != "" {
				notes = append(notes, tier.ReviewerNote)
			}
		}
		row["Catatan"] = strings.Join(dedupe(notes), "; ")
		rows = append(rows, row)
	}
	return export.Dataset{Headers: headers, Rows: rows}
}

func dedupe(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	result := make([]string, 0, len(values))
	for _, v := range values {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		result = append(result, v)
	}
	return result
}
