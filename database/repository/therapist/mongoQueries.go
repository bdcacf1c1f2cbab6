package therapistRepo

import (
	"fmt"
	"time"

	"therapair/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// GetByID retrieves a therapist by its unique ID.
func (r *MongoTherapistRepo) GetByID(id string) (*models.TherapistProfile, error) {
	return r.GetByIDWithProjection(id, nil)
}

// GetByEmail retrieves a therapist by its email address.
func (r *MongoTherapistRepo) GetByEmail(email string) (*models.TherapistProfile, error) {
	return r.GetByEmailWithProjection(email, nil)
}

// GetByIDWithProjection retrieves a therapist by ID using a projection.
// Returns nil without error when no document matches.
func (r *MongoTherapistRepo) GetByIDWithProjection(id string, projection bson.M) (*models.TherapistProfile, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	opts := options.FindOne()
	if projection != nil {
		opts.SetProjection(projection)
	}
	var therapist models.TherapistProfile
	if err := r.coll.FindOne(ctx, bson.M{"id": id}, opts).Decode(&therapist); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch therapist with id %s: %w", id, err)
	}
	return &therapist, nil
}

// GetByEmailWithProjection retrieves a therapist by email using a projection.
// Returns nil without error when no document matches.
func (r *MongoTherapistRepo) GetByEmailWithProjection(email string, projection bson.M) (*models.TherapistProfile, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	opts := options.FindOne()
	if projection != nil {
		opts.SetProjection(projection)
	}
	var therapist models.TherapistProfile
	if err := r.coll.FindOne(ctx, bson.M{"email": email}, opts).Decode(&therapist); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch therapist with email %s: %w", email, err)
	}
	return &therapist, nil
}

// GetAccepting returns every therapist flagged as accepting new clients.
// Capacity is enforced by the matching engine, not here, so a therapist at
// their caseload cap is still returned.
func (r *MongoTherapistRepo) GetAccepting() ([]models.TherapistProfile, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	filter := bson.M{"isAcceptingNewClients": true}
	cursor, err := r.coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve accepting therapists: %w", err)
	}
	defer cursor.Close(ctx)

	var therapists []models.TherapistProfile
	for cursor.Next(ctx) {
		var t models.TherapistProfile
		if err := cursor.Decode(&t); err != nil {
			return nil, fmt.Errorf("failed to decode therapist: %w", err)
		}
		therapists = append(therapists, t)
	}
	return therapists, nil
}
