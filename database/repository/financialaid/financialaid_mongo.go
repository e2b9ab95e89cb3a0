package financialAidRepo

import (
	"context"
	"fmt"
	"time"

	"podium/database"
	"podium/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoFinancialAidRepo implements FinancialAidRepository using MongoDB.
type MongoFinancialAidRepo struct {
	coll *mongo.Collection
}

// NewMongoFinancialAidRepo creates a new instance of FinancialAidRepository using MongoDB.
func NewMongoFinancialAidRepo() FinancialAidRepository {
	repo := &MongoFinancialAidRepo{coll: database.Collection("financial_aid")}
	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return repo
}

func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

func (r *MongoFinancialAidRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "applicationId", Value: 1}}, Options: options.Index().SetUnique(true)},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// GetByApplicationID retrieves the aid application owned by an application.
func (r *MongoFinancialAidRepo) GetByApplicationID(applicationID string) (*models.FinancialAidApplication, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var aid models.FinancialAidApplication
	if err := r.coll.FindOne(ctx, bson.M{"applicationId": applicationID}).Decode(&aid); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch financial aid for application %s: %w", applicationID, err)
	}
	return &aid, nil
}

// GetAll retrieves all aid applications, newest submission first.
func (r *MongoFinancialAidRepo) GetAll() ([]models.FinancialAidApplication, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "submittedAt", Value: -1}})
	cursor, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve financial aid applications: %w", err)
	}
	defer cursor.Close(ctx)

	var aids []models.FinancialAidApplication
	for cursor.Next(ctx) {
		var a models.FinancialAidApplication
		if err := cursor.Decode(&a); err != nil {
			return nil, fmt.Errorf("failed to decode financial aid application: %w", err)
		}
		aids = append(aids, a)
	}
	return aids, nil
}

// Create inserts a new aid application.
func (r *MongoFinancialAidRepo) Create(aid *models.FinancialAidApplication) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	now := time.Now()
	aid.CreatedAt = now
	aid.UpdatedAt = now

	if _, err := r.coll.InsertOne(ctx, aid); err != nil {
		return fmt.Errorf("failed to create financial aid application: %w", err)
	}
	return nil
}

// UpdateStatus moves an aid application to a review decision.
func (r *MongoFinancialAidRepo) UpdateStatus(applicationID string, status models.AidStatus) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	update := bson.M{"$set": bson.M{"status": status, "updatedAt": time.Now()}}
	result, err := r.coll.UpdateOne(ctx, bson.M{"applicationId": applicationID}, update)
	if err != nil {
		return fmt.Errorf("failed to update financial aid status for application %s: %w", applicationID, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("financial aid application for application %s not found", applicationID)
	}
	return nil
}

// DeleteByApplicationIDs removes aid applications owned by the given applications.
func (r *MongoFinancialAidRepo) DeleteByApplicationIDs(applicationIDs []string) (int64, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	result, err := r.coll.DeleteMany(ctx, bson.M{"applicationId": bson.M{"$in": applicationIDs}})
	if err != nil {
		return 0, fmt.Errorf("failed to delete financial aid applications: %w", err)
	}
	return result.DeletedCount, nil
}
