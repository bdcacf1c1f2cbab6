package therapistRepo

import (
	"therapair/models"

	"go.mongodb.org/mongo-driver/bson"
)

// TherapistRepository defines methods for therapist data access.
type TherapistRepository interface {
	// GetByID retrieves a therapist by its unique ID. Returns nil when not found.
	GetByID(id string) (*models.TherapistProfile, error)
	// GetByEmail retrieves a therapist by email. Returns nil when not found.
	GetByEmail(email string) (*models.TherapistProfile, error)
	// GetAccepting returns therapists currently accepting new clients.
	GetAccepting() ([]models.TherapistProfile, error)
	// Create inserts a new therapist record.
	Create(therapist *models.TherapistProfile) error
	// Update replaces an existing therapist record.
	Update(therapist *models.TherapistProfile) error
	// UpdateWithDocument applies a custom update document to one therapist.
	UpdateWithDocument(id string, updateDoc bson.M) error
	// ReplaceWeeklyTemplate swaps the therapist's weekly template wholesale.
	ReplaceWeeklyTemplate(id string, template models.WeeklyTemplate) error
	// Delete removes a therapist record by its ID.
	Delete(id string) error
	// GetByIDWithProjection retrieves a therapist by ID with a projection.
	GetByIDWithProjection(id string, projection bson.M) (*models.TherapistProfile, error)
	// GetByEmailWithProjection retrieves a therapist by email with a projection.
	GetByEmailWithProjection(email string, projection bson.M) (*models.TherapistProfile, error)
}
