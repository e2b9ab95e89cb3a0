package profileRepo

import (
	"context"
	"fmt"
	"time"

	"podium/database"
	"podium/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoProfileRepo implements ProfileRepository using MongoDB.
type MongoProfileRepo struct {
	coll *mongo.Collection
}

// NewMongoProfileRepo creates a new instance of ProfileRepository using MongoDB.
func NewMongoProfileRepo() ProfileRepository {
	repo := &MongoProfileRepo{coll: database.Collection("profiles")}
	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return repo
}

func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

func (r *MongoProfileRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "userId", Value: 1}}, Options: options.Index().SetUnique(true)},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// GetByUserID retrieves the profile owned by a user.
func (r *MongoProfileRepo) GetByUserID(userID string) (*models.Profile, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var profile models.Profile
	if err := r.coll.FindOne(ctx, bson.M{"userId": userID}).Decode(&profile); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch profile for user %s: %w", userID, err)
	}
	return &profile, nil
}

// Upsert creates or replaces the profile owned by profile.UserID.
func (r *MongoProfileRepo) Upsert(profile *models.Profile) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	now := time.Now()
	profile.UpdatedAt = now
	if profile.ID == "" {
		profile.ID = uuid.New().String()
		profile.CreatedAt = now
	}

	filter := bson.M{"userId": profile.UserID}
	update := bson.M{
		"$set": bson.M{
			"name":        profile.Name,
			"email":       profile.Email,
			"parentEmail": profile.ParentEmail,
			"phoneNumber": profile.PhoneNumber,
			"address":     profile.Address,
			"city":        profile.City,
			"state":       profile.State,
			"zipCode":     profile.ZipCode,
			"country":     profile.Country,
			"school":      profile.School,
			"gradeLevel":  profile.GradeLevel,
			"updatedAt":   profile.UpdatedAt,
		},
		"$setOnInsert": bson.M{
			"id":        profile.ID,
			"userId":    profile.UserID,
			"createdAt": profile.CreatedAt,
		},
	}

	opts := options.Update().SetUpsert(true)
	if _, err := r.coll.UpdateOne(ctx, filter, update, opts); err != nil {
		return fmt.Errorf("failed to upsert profile for user %s: %w", profile.UserID, err)
	}
	return nil
}
