package therapistRepo

import (
	"fmt"
	"time"

	"therapair/models"

	"go.mongodb.org/mongo-driver/bson"
)

// Create inserts a new therapist document.
func (r *MongoTherapistRepo) Create(therapist *models.TherapistProfile) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	_, err := r.coll.InsertOne(ctx, therapist)
	if err != nil {
		return fmt.Errorf("failed to create therapist: %w", err)
	}
	return nil
}

// Update replaces an existing therapist document.
func (r *MongoTherapistRepo) Update(therapist *models.TherapistProfile) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	filter := bson.M{"id": therapist.ID}
	update := bson.M{"$set": therapist}
	result, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to update therapist with id %s: %w", therapist.ID, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("therapist with id %s not found", therapist.ID)
	}
	return nil
}

// UpdateWithDocument updates a therapist using a custom update document.
func (r *MongoTherapistRepo) UpdateWithDocument(id string, updateDoc bson.M) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	filter := bson.M{"id": id}
	result, err := r.coll.UpdateOne(ctx, filter, updateDoc)
	if err != nil {
		return fmt.Errorf("failed to update therapist with id %s: %w", id, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("therapist with id %s not found", id)
	}
	return nil
}

// ReplaceWeeklyTemplate swaps the whole weekly template for a therapist.
func (r *MongoTherapistRepo) ReplaceWeeklyTemplate(id string, template models.WeeklyTemplate) error {
	update := bson.M{"$set": bson.M{"weeklyTemplate": template, "updatedAt": time.Now()}}
	return r.UpdateWithDocument(id, update)
}

// Delete removes a therapist document by its ID.
func (r *MongoTherapistRepo) Delete(id string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	filter := bson.M{"id": id}
	result, err := r.coll.DeleteOne(ctx, filter)
	if err != nil {
		return fmt.Errorf("failed to delete therapist with id %s: %w", id, err)
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("therapist with id %s not found", id)
	}
	return nil
}
