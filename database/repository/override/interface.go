package overrideRepo

import "therapair/models"

// OverrideRepository defines methods for availability override data access.
// Read methods return overrides sorted by creation time ascending; the
// resolver applies overrides in creation order, and this is the one place
// that ordering is produced.
type OverrideRepository interface {
	// Create inserts a new override record.
	Create(override *models.AvailabilityOverride) error
	// GetByID retrieves an override by its unique ID. Returns nil when not found.
	GetByID(id string) (*models.AvailabilityOverride, error)
	// GetByTherapist returns all overrides for one therapist.
	GetByTherapist(therapistID string) ([]models.AvailabilityOverride, error)
	// GetByTherapistInWindow returns the therapist's overrides whose date
	// range intersects [startDate, endDate] inclusive.
	GetByTherapistInWindow(therapistID, startDate, endDate string) ([]models.AvailabilityOverride, error)
	// Update replaces an existing override record.
	Update(override *models.AvailabilityOverride) error
	// Delete removes an override record by its ID.
	Delete(id string) error
}
