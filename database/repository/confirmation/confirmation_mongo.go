package confirmationRepo

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

// MongoConfirmationRepo implements ConfirmationRepository using MongoDB.
type MongoConfirmationRepo struct {
	coll *mongo.Collection
}

// NewMongoConfirmationRepo creates a new instance of ConfirmationRepository using MongoDB.
func NewMongoConfirmationRepo() ConfirmationRepository {
	repo := &MongoConfirmationRepo{coll: database.Collection("confirmations")}
	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return repo
}

func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

func (r *MongoConfirmationRepo) ensureIndexes() error {
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

// GetByApplicationID retrieves the confirmation owned by an application.
func (r *MongoConfirmationRepo) GetByApplicationID(applicationID string) (*models.ProgramConfirmation, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var conf models.ProgramConfirmation
	if err := r.coll.FindOne(ctx, bson.M{"applicationId": applicationID}).Decode(&conf); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch confirmation for application %s: %w", applicationID, err)
	}
	return &conf, nil
}

// Upsert creates or replaces the confirmation for its application.
func (r *MongoConfirmationRepo) Upsert(conf *models.ProgramConfirmation) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	now := time.Now()
	conf.UpdatedAt = now
	if conf.ID == "" {
		conf.ID = uuid.New().String()
		conf.CreatedAt = now
	}

	filter := bson.M{"applicationId": conf.ApplicationID}
	update := bson.M{
		"$set": bson.M{
			"studentName":         conf.StudentName,
			"parentName":          conf.ParentName,
			"emergencyContact":    conf.EmergencyContact,
			"dietaryRestrictions": conf.DietaryRestrictions,
			"medicalConditions":   conf.MedicalConditions,
			"additionalNotes":     conf.AdditionalNotes,
			"liabilityWaiver":     conf.LiabilityWaiver,
			"medicalRelease":      conf.MedicalRelease,
			"mediaRelease":        conf.MediaRelease,
			"programGuidelines":   conf.ProgramGuidelines,
			"financialAidRequest": conf.FinancialAidRequest,
			"submittedAt":         conf.SubmittedAt,
			"updatedAt":           conf.UpdatedAt,
		},
		"$setOnInsert": bson.M{
			"id":            conf.ID,
			"applicationId": conf.ApplicationID,
			"createdAt":     conf.CreatedAt,
		},
	}

	opts := options.Update().SetUpsert(true)
	if _, err := r.coll.UpdateOne(ctx, filter, update, opts); err != nil {
		return fmt.Errorf("failed to upsert confirmation for application %s: %w", conf.ApplicationID, err)
	}
	return nil
}

// SetPayment records the invoice order created for the confirmation.
func (r *MongoConfirmationRepo) SetPayment(applicationID, orderID, paymentStatus string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	update := bson.M{"$set": bson.M{
		"orderId":       orderID,
		"paymentStatus": paymentStatus,
		"updatedAt":     time.Now(),
	}}
	result, err := r.coll.UpdateOne(ctx, bson.M{"applicationId": applicationID}, update)
	if err != nil {
		return fmt.Errorf("failed to record payment for application %s: %w", applicationID, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("confirmation for application %s not found", applicationID)
	}
	return nil
}

// DeleteByApplicationIDs removes confirmations owned by the given applications.
func (r *MongoConfirmationRepo) DeleteByApplicationIDs(applicationIDs []string) (int64, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	result, err := r.coll.DeleteMany(ctx, bson.M{"applicationId": bson.M{"$in": applicationIDs}})
	if err != nil {
		return 0, fmt.Errorf("failed to delete confirmations: %w", err)
	}
	return result.DeletedCount, nil
}
