package applicationRepo

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

// MongoApplicationRepo implements ApplicationRepository using MongoDB.
type MongoApplicationRepo struct {
	coll *mongo.Collection
}

// NewMongoApplicationRepo creates a new instance of ApplicationRepository using MongoDB.
func NewMongoApplicationRepo() ApplicationRepository {
	repo := &MongoApplicationRepo{coll: database.Collection("applications")}
	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return repo
}

func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

func (r *MongoApplicationRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "userId", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "status", Value: 1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// GetByID retrieves an application by its unique ID.
func (r *MongoApplicationRepo) GetByID(id string) (*models.Application, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var app models.Application
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&app); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch application with id %s: %w", id, err)
	}
	return &app, nil
}

// GetByUserID retrieves the application owned by a user.
func (r *MongoApplicationRepo) GetByUserID(userID string) (*models.Application, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var app models.Application
	if err := r.coll.FindOne(ctx, bson.M{"userId": userID}).Decode(&app); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch application for user %s: %w", userID, err)
	}
	return &app, nil
}

func (r *MongoApplicationRepo) find(filter bson.M, opts *options.FindOptions) ([]models.Application, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve applications: %w", err)
	}
	defer cursor.Close(ctx)

	var apps []models.Application
	for cursor.Next(ctx) {
		var a models.Application
		if err := cursor.Decode(&a); err != nil {
			return nil, fmt.Errorf("failed to decode application: %w", err)
		}
		apps = append(apps, a)
	}
	return apps, nil
}

// GetAll retrieves all applications, newest first.
func (r *MongoApplicationRepo) GetAll() ([]models.Application, error) {
	return r.find(bson.M{}, options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
}

// GetByStatus retrieves all applications in the given status, newest first.
func (r *MongoApplicationRepo) GetByStatus(status models.ApplicationStatus) ([]models.Application, error) {
	return r.find(bson.M{"status": status}, options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
}

// GetRecent retrieves the most recently created applications.
func (r *MongoApplicationRepo) GetRecent(limit int) ([]models.Application, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetLimit(int64(limit))
	return r.find(bson.M{}, opts)
}

// Count returns the total number of applications.
func (r *MongoApplicationRepo) Count() (int64, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()
	return r.coll.CountDocuments(ctx, bson.M{})
}

// CountByStatus returns the number of applications in the given status.
func (r *MongoApplicationRepo) CountByStatus(status models.ApplicationStatus) (int64, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()
	return r.coll.CountDocuments(ctx, bson.M{"status": status})
}

// Create inserts a new application document.
func (r *MongoApplicationRepo) Create(app *models.Application) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	now := time.Now()
	app.CreatedAt = now
	app.UpdatedAt = now

	if _, err := r.coll.InsertOne(ctx, app); err != nil {
		return fmt.Errorf("failed to create application: %w", err)
	}
	return nil
}

// UpdateContent writes applicant-editable fields while the application is
// still IN_PROGRESS. The status is part of the filter, so a concurrent
// transition locks the row against the draft write instead of racing it.
func (r *MongoApplicationRepo) UpdateContent(userID string, draft models.ApplicationDraft) (bool, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	filter := bson.M{"userId": userID, "status": models.StatusInProgress}
	update := bson.M{"$set": bson.M{
		"name":                   draft.Name,
		"email":                  draft.Email,
		"school":                 draft.School,
		"gradeLevel":             draft.GradeLevel,
		"udlStudent":             draft.UDLStudent,
		"yearsOfExperience":      draft.YearsOfExperience,
		"numTournaments":         draft.NumTournaments,
		"debateExperience":       draft.DebateExperience,
		"interestEssay":          draft.InterestEssay,
		"selfAptitudeAssessment": draft.SelfAptitudeAssessment,
		"updatedAt":              time.Now(),
	}}

	result, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return false, fmt.Errorf("failed to update application for user %s: %w", userID, err)
	}
	return result.MatchedCount > 0, nil
}

// UpdateStatus moves the application from one status to another, conditional
// on the stored status still being `from`.
func (r *MongoApplicationRepo) UpdateStatus(id string, from, to models.ApplicationStatus) (bool, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	filter := bson.M{"id": id, "status": from}
	update := bson.M{"$set": bson.M{"status": to, "updatedAt": time.Now()}}

	result, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return false, fmt.Errorf("failed to update status for application %s: %w", id, err)
	}
	return result.MatchedCount > 0, nil
}

// SetUDLStudent updates the admin-writable fee-waiver flag.
func (r *MongoApplicationRepo) SetUDLStudent(id string, udl bool) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	update := bson.M{"$set": bson.M{"udlStudent": udl, "updatedAt": time.Now()}}
	result, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, update)
	if err != nil {
		return fmt.Errorf("failed to update udlStudent for application %s: %w", id, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("application with id %s not found", id)
	}
	return nil
}

// DeleteAll removes every application document.
func (r *MongoApplicationRepo) DeleteAll() (int64, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	result, err := r.coll.DeleteMany(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("failed to delete applications: %w", err)
	}
	return result.DeletedCount, nil
}
