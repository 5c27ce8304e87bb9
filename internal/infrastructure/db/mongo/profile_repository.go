package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/finadvisor/assessment-api/internal/core/domain"
)

const profilesCollection = "financial_profiles"

// ProfileRepository implements ports.ProfileRepository using MongoDB.
// A unique index on user_id keeps exactly one document per user.
type ProfileRepository struct {
	coll *mongo.Collection
	now  func() time.Time
}

func NewProfileRepository(db *mongo.Database) *ProfileRepository {
	return &ProfileRepository{coll: db.Collection(profilesCollection), now: time.Now}
}

type mongoProfile struct {
	ID                   primitive.ObjectID `bson:"_id,omitempty"`
	UserID               string             `bson:"user_id"`
	domain.ProfileFields `bson:",inline"`
	CreatedAt            time.Time          `bson:"created_at"`
	UpdatedAt            time.Time          `bson:"updated_at"`
}

func (p mongoProfile) toDomain() *domain.FinancialProfile {
	return &domain.FinancialProfile{
		ID:            p.ID.Hex(),
		UserID:        p.UserID,
		ProfileFields: p.ProfileFields,
		CreatedAt:     p.CreatedAt.UTC(),
		UpdatedAt:     p.UpdatedAt.UTC(),
	}
}

// Upsert merges fields into the user's profile in a single findAndModify,
// creating the document on first submission.
func (r *ProfileRepository) Upsert(ctx context.Context, userID string, fields domain.ProfileFields) (*domain.FinancialProfile, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	now := r.now().UTC()
	set, err := setDocument(fields, now)
	if err != nil {
		return nil, err
	}

	filter := bson.M{"user_id": userID}
	update := bson.M{
		"$set":         set,
		"$setOnInsert": bson.M{"created_at": now},
	}
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var doc mongoProfile
	if err := r.coll.FindOneAndUpdate(ctx, filter, update, opts).Decode(&doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrProfileConflict
		}
		return nil, wrapStoreError("upsert profile", err)
	}
	return doc.toDomain(), nil
}

func (r *ProfileRepository) FindByUserID(ctx context.Context, userID string) (*domain.FinancialProfile, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc mongoProfile
	if err := r.coll.FindOne(ctx, bson.M{"user_id": userID}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrProfileNotFound
		}
		return nil, wrapStoreError("find profile", err)
	}
	return doc.toDomain(), nil
}

// EnsureIndexes creates the unique user_id index.
func (r *ProfileRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "user_id", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uniq_user_id"),
		},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexes)
	return err
}

// setDocument builds the $set stage from the provided fields only; nil
// fields are dropped by omitempty and therefore never overwrite stored values.
func setDocument(fields domain.ProfileFields, now time.Time) (bson.M, error) {
	raw, err := bson.Marshal(fields)
	if err != nil {
		return nil, fmt.Errorf("encode profile fields: %w", err)
	}
	set := bson.M{}
	if err := bson.Unmarshal(raw, &set); err != nil {
		return nil, fmt.Errorf("encode profile fields: %w", err)
	}
	set["updated_at"] = now
	return set, nil
}
