package therapistRepo

import (
	"context"
	"time"

	"therapair/database"
	"therapair/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// MongoTherapistRepo implements TherapistRepository using MongoDB.
type MongoTherapistRepo struct {
	coll *mongo.Collection
}

// NewMongoTherapistRepo creates a new TherapistRepository backed by MongoDB.
func NewMongoTherapistRepo() TherapistRepository {
	coll := database.MongoClient.Database("therapair").Collection("therapists")
	repo := &MongoTherapistRepo{coll: coll}
	if err := repo.ensureIndexes(); err != nil {
		utils.GetLogger().Error("failed to ensure therapist indexes", zap.Error(err))
	}
	return repo
}

func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

// ensureIndexes creates indexes for fields frequently used in queries.
func (r *MongoTherapistRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "isAcceptingNewClients", Value: 1}}},
		{Keys: bson.D{{Key: "specializations.specializationId", Value: 1}}},
	}
	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	return err
}
