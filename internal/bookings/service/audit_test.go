package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "piqueunique/pkg/errors"
	"piqueunique/pkg/logger"
	"piqueunique/pkg/model"
)

type failingAuditRepo struct{}

func (f *failingAuditRepo) Append(ctx context.Context, entry *model.AuditLogEntry) error {
	return errors.New("write concern error")
}

func (f *failingAuditRepo) Find(ctx context.Context, bookingID string, limit int) ([]*model.AuditLogEntry, error) {
	return nil, nil
}

func TestRecord_SwallowsAppendFailure(t *testing.T) {
	log := logger.New(logger.Config{Level: "error", Format: logger.JSON, Service: "test"})
	svc := NewAuditService(&failingAuditRepo{}, log)

	// Must not panic or propagate; the action being audited already happened.
	svc.Record(context.Background(), &model.AuditLogEntry{
		ActorUID:  "admin-1",
		Action:    model.AuditActionDelete,
		BookingID: "b-1",
	})
}

func TestLogs_AdminGating(t *testing.T) {
	log := logger.New(logger.Config{Level: "error", Format: logger.JSON, Service: "test"})
	repo := &mockAuditRepo{}
	svc := NewAuditService(repo, log)

	_, err := svc.Logs(context.Background(), nil, "", 0)
	assert.Equal(t, apperrors.CodeUnauthorized, appCode(t, err))

	_, err = svc.Logs(context.Background(), customer(), "", 0)
	assert.Equal(t, apperrors.CodeForbidden, appCode(t, err))

	entries, err := svc.Logs(context.Background(), admin(), "", 0)
	require.NoError(t, err)
	assert.NotNil(t, entries)
}
