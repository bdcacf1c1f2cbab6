package therapist

import (
	"therapair/cron"
	overrideRepo "therapair/database/repository/override"
	therapistRepo "therapair/database/repository/therapist"
	"therapair/models"
	"therapair/utils"

	"go.uber.org/zap"
)

// TherapistService manages therapist accounts, weekly templates and
// availability overrides, and exposes resolved availability.
type TherapistService interface {
	// Registration and authentication.
	RegisterTherapist(t models.TherapistProfile) (*models.TherapistAuthResponse, error)
	AuthenticateTherapist(email, password string) (*models.TherapistAuthResponse, error)
	RevokeAuthToken(therapistID string) error

	// Account management.
	GetTherapistByID(id string) (*models.TherapistProfile, error)
	GetTherapistByEmail(email string) (*models.TherapistProfile, error)
	UpdateTherapist(id string, updates map[string]interface{}) (*models.TherapistProfile, error)
	DeleteTherapist(id string) error

	// Weekly template, replaced wholesale.
	ReplaceWeeklyTemplate(therapistID string, template models.WeeklyTemplate) error

	// Availability overrides.
	CreateOverride(o models.AvailabilityOverride) (*models.AvailabilityOverride, error)
	UpdateOverride(o models.AvailabilityOverride) (*models.AvailabilityOverride, error)
	DeleteOverride(therapistID, overrideID string) error

	// Resolved availability.
	GetDayAvailability(therapistID, date string) (*models.EffectiveDayAvailability, error)
	GetRangeAvailability(therapistID, startDate, endDate string) ([]models.EffectiveDayAvailability, error)
	CheckAvailability(therapistID, date, start, end string) (bool, error)
}

// DefaultTherapistService is the production implementation.
type DefaultTherapistService struct {
	Repo      therapistRepo.TherapistRepository
	Overrides overrideRepo.OverrideRepository
	Tasks     *cron.TaskClient
}

// invalidateMatches flushes memoized match rankings after a mutation that
// can change them. Best effort; a failed enqueue only delays freshness by
// the cache TTL.
func (s *DefaultTherapistService) invalidateMatches(therapistID, reason string) {
	if s.Tasks == nil {
		return
	}
	if err := s.Tasks.EnqueueMatchCacheInvalidation(therapistID, reason); err != nil {
		utils.GetLogger().Warn("failed to enqueue match cache invalidation",
			zap.String("therapistID", therapistID), zap.Error(err))
	}
}
