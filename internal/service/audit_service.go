package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/noah-isme/simak-gateway/internal/models"
	appErrors "github.com/noah-isme/simak-gateway/pkg/errors"
)

type auditRepository interface {
	Create(ctx context.Context, log *models.AuditLog) error
	List(ctx context.Context, filter models.AuditLogFilter) ([]models.AuditLog, int, error)
}

// AuditService records and lists the gateway's audit trail.
type AuditService struct {
	repo   auditRepository
	logger *zap.Logger
}

// NewAuditService constructs AuditService.
func NewAuditService(repo auditRepository, logger *zap.Logger) *AuditService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuditService{repo: repo, logger: logger}
}

// Record appends one audit entry. Failures are logged, not surfaced: the
// audited mutation already succeeded and must not be reported as failed.
func (s *AuditService) Record(ctx context.Context, log *models.AuditLog) {
	if s == nil || s.repo == nil {
		return
	}
	if err := s.repo.Create(ctx, log); err != nil {
		s.logger.Warn("audit record failed", zap.String("action", log.Action), zap.Error(err))
	}
}

// List returns audit records with pagination metadata.
func (s *AuditService) List(ctx context.Context, filter models.AuditLogFilter) ([]models.AuditLog, *models.Pagination, error) {
	if s == nil || s.repo == nil {
		return nil, nil, appErrors.Clone(appErrors.ErrNotFound, "audit trail disabled")
	}
	logs, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list audit logs")
	}
	page := filter.Page
	if page < 1 {
		page = 1
	}
	size := filter.PageSize
	if size <= 0 {
		size = 20
	}
	pagination := &models.Pagination{Page: page, PageSize: size, TotalCount: total}
	return logs, pagination, nil
}
