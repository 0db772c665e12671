package repository

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"piqueunique/pkg/config"
	"piqueunique/pkg/model"
)

const AuditCollectionName = "AuditLogs"

// AuditLogRepository is append-only; entries are never updated or deleted.
type AuditLogRepository interface {
	Append(ctx context.Context, entry *model.AuditLogEntry) error
	Find(ctx context.Context, bookingID string, limit int) ([]*model.AuditLogEntry, error)
}

type mongoAuditLogRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
}

func NewMongoAuditLogRepository(cfg *config.Config) AuditLogRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoAuditLogRepository{
		cfg:        cfg,
		collection: db.Collection(AuditCollectionName),
	}
}

func (r *mongoAuditLogRepository) Append(ctx context.Context, entry *model.AuditLogEntry) error {
	ctx, cancel := context.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	entry.CreatedAt = time.Now().UTC().Truncate(time.Millisecond)

	_, err := r.collection.InsertOne(ctx, entry)
	if err != nil {
		return fmt.Errorf("failed to append audit entry: %w", err)
	}
	return nil
}

// Find returns entries most-recent-first, optionally filtered by booking.
func (r *mongoAuditLogRepository) Find(ctx context.Context, bookingID string, limit int) ([]*model.AuditLogEntry, error) {
	ctx, cancel := context.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	filter := bson.M{}
	if bookingID != "" {
		filter["booking_id"] = bookingID
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(int64(limit))

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find audit entries: %w", err)
	}
	defer cursor.Close(ctx)

	var entries []*model.AuditLogEntry
	if err = cursor.All(ctx, &entries); err != nil {
		return nil, fmt.Errorf("failed to decode audit entries: %w", err)
	}

	return entries, nil
}
