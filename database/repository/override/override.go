package overrideRepo

import (
	"context"
	"fmt"
	"time"

	"therapair/database"
	"therapair/models"
	"therapair/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// MongoOverrideRepo implements OverrideRepository using MongoDB.
type MongoOverrideRepo struct {
	coll *mongo.Collection
}

// NewMongoOverrideRepo creates a new OverrideRepository backed by MongoDB.
func NewMongoOverrideRepo() OverrideRepository {
	coll := database.MongoClient.Database("therapair").Collection("availability_overrides")
	repo := &MongoOverrideRepo{coll: coll}
	if err := repo.ensureIndexes(); err != nil {
		utils.GetLogger().Error("failed to ensure override indexes", zap.Error(err))
	}
	return repo
}

func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

func (r *MongoOverrideRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "therapistId", Value: 1}, {Key: "createdAt", Value: 1}}},
		{Keys: bson.D{{Key: "therapistId", Value: 1}, {Key: "startDate", Value: 1}, {Key: "endDate", Value: 1}}},
	}
	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	return err
}

// Create inserts a new override document.
func (r *MongoOverrideRepo) Create(override *models.AvailabilityOverride) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	_, err := r.coll.InsertOne(ctx, override)
	if err != nil {
		return fmt.Errorf("failed to create override: %w", err)
	}
	return nil
}

// GetByID retrieves an override by its unique ID.
// Returns nil without error when no document matches.
func (r *MongoOverrideRepo) GetByID(id string) (*models.AvailabilityOverride, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var override models.AvailabilityOverride
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&override); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch override with id %s: %w", id, err)
	}
	return &override, nil
}

// GetByTherapist returns every override for a therapist, creation order.
func (r *MongoOverrideRepo) GetByTherapist(therapistID string) ([]models.AvailabilityOverride, error) {
	return r.find(bson.M{"therapistId": therapistID})
}

// GetByTherapistInWindow returns the therapist's overrides intersecting the
// inclusive [startDate, endDate] window, creation order. Dates are
// zero-padded "2006-01-02" strings, so lexicographic comparison matches
// chronological comparison.
func (r *MongoOverrideRepo) GetByTherapistInWindow(therapistID, startDate, endDate string) ([]models.AvailabilityOverride, error) {
	filter := bson.M{
		"therapistId": therapistID,
		"startDate":   bson.M{"$lte": endDate},
		"endDate":     bson.M{"$gte": startDate},
	}
	return r.find(filter)
}

func (r *MongoOverrideRepo) find(filter bson.M) ([]models.AvailabilityOverride, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}})
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve overrides: %w", err)
	}
	defer cursor.Close(ctx)

	var overrides []models.AvailabilityOverride
	for cursor.Next(ctx) {
		var o models.AvailabilityOverride
		if err := cursor.Decode(&o); err != nil {
			return nil, fmt.Errorf("failed to decode override: %w", err)
		}
		overrides = append(overrides, o)
	}
	return overrides, nil
}

// Update replaces an existing override document.
func (r *MongoOverrideRepo) Update(override *models.AvailabilityOverride) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	filter := bson.M{"id": override.ID}
	update := bson.M{"$set": override}
	result, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to update override with id %s: %w", override.ID, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("override with id %s not found", override.ID)
	}
	return nil
}

// Delete removes an override document by its ID.
func (r *MongoOverrideRepo) Delete(id string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	result, err := r.coll.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("failed to delete override with id %s: %w", id, err)
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("override with id %s not found", id)
	}
	return nil
}
