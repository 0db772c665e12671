package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	bookingserrors "piqueunique/internal/bookings/errors"
	"piqueunique/pkg/config"
	"piqueunique/pkg/model"
)

const DraftCollectionName = "Drafts"

// DraftRepository stores the single in-progress booking per user. All
// writes are keyed by user_id; a unique index guarantees zero-or-one
// draft per user.
type DraftRepository interface {
	Upsert(ctx context.Context, draft *model.Draft) (string, error)
	FindByUserID(ctx context.Context, userID string) (*model.Draft, error)
	SetPrice(ctx context.Context, userID string, basePrice, additionalPrice, totalPrice int) error
	DeleteByUserID(ctx context.Context, userID string) error
}

type mongoDraftRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
}

func NewMongoDraftRepository(cfg *config.Config) DraftRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoDraftRepository{
		cfg:        cfg,
		collection: db.Collection(DraftCollectionName),
	}
}

// Upsert writes the supplied draft fields over any existing draft for the
// user (last-write-wins) or inserts a fresh one. Returns the draft ID.
func (r *mongoDraftRepository) Upsert(ctx context.Context, draft *model.Draft) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	now := time.Now().UTC().Truncate(time.Millisecond)

	set := draftSetFields(draft)
	set["updated_at"] = now

	update := bson.M{
		"$set": set,
		"$setOnInsert": bson.M{
			"user_id":    draft.UserID,
			"is_draft":   true,
			"created_at": now,
		},
	}

	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After).
		SetProjection(bson.M{"_id": 1})

	var doc struct {
		ID primitive.ObjectID `bson:"_id"`
	}
	err := r.collection.FindOneAndUpdate(ctx, bson.M{"user_id": draft.UserID}, update, opts).Decode(&doc)
	if err != nil {
		return "", fmt.Errorf("failed to upsert draft: %w", err)
	}

	return doc.ID.Hex(), nil
}

// draftSetFields maps the non-zero selection fields into a $set document.
// Zero values are skipped so a partial save never erases earlier choices.
func draftSetFields(d *model.Draft) bson.M {
	set := bson.M{}

	if d.Location != "" {
		set["location"] = d.Location
	}
	if !d.Date.IsZero() {
		set["date"] = d.Date
	}
	if d.Time != "" {
		set["time"] = d.Time
	}
	if d.Theme != "" {
		set["theme"] = d.Theme
	}
	if d.GuestCount != 0 {
		set["guest_count"] = d.GuestCount
	}
	if d.AdditionalServices != nil {
		set["additional_services"] = d.AdditionalServices
	}
	if d.TotalPrice != 0 {
		set["base_price"] = d.BasePrice
		set["additional_price"] = d.AdditionalPrice
		set["total_price"] = d.TotalPrice
	}
	if d.ContactInfo.Name != "" {
		set["contact_info.name"] = d.ContactInfo.Name
	}
	if d.ContactInfo.Email != "" {
		set["contact_info.email"] = d.ContactInfo.Email
	}
	if d.ContactInfo.Phone != "" {
		set["contact_info.phone"] = d.ContactInfo.Phone
	}
	if d.UserEmail != "" {
		set["user_email"] = d.UserEmail
	}
	if d.SpecialRequests != "" {
		set["special_requests"] = d.SpecialRequests
	}

	return set
}

func (r *mongoDraftRepository) FindByUserID(ctx context.Context, userID string) (*model.Draft, error) {
	ctx, cancel := context.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	var draft model.Draft
	err := r.collection.FindOne(ctx, bson.M{"user_id": userID}).Decode(&draft)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, bookingserrors.ErrDraftNotFound
		}
		return nil, fmt.Errorf("failed to find draft: %w", err)
	}

	return &draft, nil
}

// SetPrice stores a server-computed estimate on the user's draft. Missing
// draft is reported so the caller can decide whether that matters.
func (r *mongoDraftRepository) SetPrice(ctx context.Context, userID string, basePrice, additionalPrice, totalPrice int) error {
	ctx, cancel := context.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	update := bson.M{"$set": bson.M{
		"base_price":       basePrice,
		"additional_price": additionalPrice,
		"total_price":      totalPrice,
		"updated_at":       time.Now().UTC().Truncate(time.Millisecond),
	}}

	result, err := r.collection.UpdateOne(ctx, bson.M{"user_id": userID}, update)
	if err != nil {
		return fmt.Errorf("failed to save price estimate: %w", err)
	}
	if result.MatchedCount == 0 {
		return bookingserrors.ErrDraftNotFound
	}
	return nil
}

func (r *mongoDraftRepository) DeleteByUserID(ctx context.Context, userID string) error {
	ctx, cancel := context.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	result, err := r.collection.DeleteOne(ctx, bson.M{"user_id": userID})
	if err != nil {
		return fmt.Errorf("failed to delete draft: %w", err)
	}
	if result.DeletedCount == 0 {
		return bookingserrors.ErrDraftNotFound
	}
	return nil
}
