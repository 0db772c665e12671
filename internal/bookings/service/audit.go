package service

import (
	"context"

	"piqueunique/internal/bookings/repository"
	"piqueunique/internal/identity"
	"piqueunique/pkg/config"
	apperrors "piqueunique/pkg/errors"
	"piqueunique/pkg/logger"
	"piqueunique/pkg/model"
)

// AuditService records state-changing actions on bookings. Recording is
// best-effort: an audit write failure is logged and swallowed so it never
// fails the action it describes.
type AuditService struct {
	entries repository.AuditLogRepository
	logger  *logger.Logger
}

func NewAuditService(entries repository.AuditLogRepository, log *logger.Logger) *AuditService {
	return &AuditService{
		entries: entries,
		logger:  log,
	}
}

// Record appends an audit entry. Errors are swallowed.
func (s *AuditService) Record(ctx context.Context, entry *model.AuditLogEntry) {
	if err := s.entries.Append(ctx, entry); err != nil {
		s.logger.Error("Failed to append audit entry",
			"action", entry.Action,
			"booking_id", entry.BookingID,
			"actor_uid", entry.ActorUID,
			"error", err,
		)
	}
}

// Logs returns recent audit entries, admins only. An empty bookingID
// returns entries across all bookings.
func (s *AuditService) Logs(ctx context.Context, ident *identity.Identity, bookingID string, limit int) ([]*model.AuditLogEntry, error) {
	if ident == nil {
		return nil, apperrors.Unauthorized("authentication required")
	}
	if !ident.IsAdmin {
		return nil, apperrors.Forbidden("admin access required")
	}

	if limit <= 0 || limit > config.DefaultAuditLogLimit {
		limit = config.DefaultAuditLogLimit
	}

	entries, err := s.entries.Find(ctx, bookingID, limit)
	if err != nil {
		s.logger.Error("Failed to query audit entries", "error", err)
		return nil, apperrors.Internal("failed to query audit log", err)
	}

	if entries == nil {
		entries = []*model.AuditLogEntry{}
	}
	return entries, nil
}
