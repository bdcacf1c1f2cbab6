package therapist

import (
	"fmt"
	"time"

	"therapair/models"
	"therapair/services/availability"

	"github.com/google/uuid"
)

// CreateOverride validates and stores a new availability override for a
// therapist. Overrides are created independently of the weekly template and
// apply to every date inside [startDate, endDate] inclusive.
func (s *DefaultTherapistService) CreateOverride(o models.AvailabilityOverride) (*models.AvailabilityOverride, error) {
	if err := validateOverride(o); err != nil {
		return nil, err
	}
	if _, err := s.GetTherapistByID(o.TherapistID); err != nil {
		return nil, err
	}

	o.ID = uuid.New().String()
	o.CreatedAt = time.Now()
	o.UpdatedAt = o.CreatedAt
	if err := s.Overrides.Create(&o); err != nil {
		return nil, err
	}
	s.invalidateMatches(o.TherapistID, "override_created")
	return &o, nil
}

// UpdateOverride replaces an existing override's fields. The override keeps
// its creation timestamp, so its position in the resolver's application
// order is stable across edits.
func (s *DefaultTherapistService) UpdateOverride(o models.AvailabilityOverride) (*models.AvailabilityOverride, error) {
	if o.ID == "" {
		return nil, fmt.Errorf("override id is required")
	}
	if err := validateOverride(o); err != nil {
		return nil, err
	}

	existing, err := s.Overrides.GetByID(o.ID)
	if err != nil {
		return nil, err
	}
	if existing == nil || existing.TherapistID != o.TherapistID {
		return nil, fmt.Errorf("override with id %s not found", o.ID)
	}

	o.CreatedAt = existing.CreatedAt
	o.UpdatedAt = time.Now()
	if err := s.Overrides.Update(&o); err != nil {
		return nil, err
	}
	s.invalidateMatches(o.TherapistID, "override_updated")
	return &o, nil
}

// DeleteOverride removes an override after checking ownership.
func (s *DefaultTherapistService) DeleteOverride(therapistID, overrideID string) error {
	existing, err := s.Overrides.GetByID(overrideID)
	if err != nil {
		return err
	}
	if existing == nil || existing.TherapistID != therapistID {
		return fmt.Errorf("override with id %s not found", overrideID)
	}
	if err := s.Overrides.Delete(overrideID); err != nil {
		return err
	}
	s.invalidateMatches(therapistID, "override_deleted")
	return nil
}

func validateOverride(o models.AvailabilityOverride) error {
	if o.TherapistID == "" {
		return fmt.Errorf("therapistId is required")
	}
	switch o.Type {
	case models.OverrideAvailable, models.OverrideUnavailable, models.OverrideBlocked, models.OverrideTimeOff:
	default:
		return availability.NewValidationError("type", "unknown override type: "+o.Type)
	}
	if _, err := availability.ParseDate("startDate", o.StartDate); err != nil {
		return err
	}
	if _, err := availability.ParseDate("endDate", o.EndDate); err != nil {
		return err
	}
	if o.StartDate > o.EndDate {
		return availability.NewValidationError("startDate", "startDate must not be after endDate")
	}
	// Either both times or neither; a lone time is ambiguous.
	if (o.StartTime == "") != (o.EndTime == "") {
		return availability.NewValidationError("startTime", "startTime and endTime must be provided together")
	}
	if !o.IsWholeDay() {
		if err := availability.ValidateInterval("override", o.StartTime, o.EndTime); err != nil {
			return err
		}
	}
	return nil
}

// GetDayAvailability resolves one date for a therapist against their stored
// template and overrides.
func (s *DefaultTherapistService) GetDayAvailability(therapistID, date string) (*models.EffectiveDayAvailability, error) {
	t, err := s.GetTherapistByID(therapistID)
	if err != nil {
		return nil, err
	}
	overrides, err := s.Overrides.GetByTherapistInWindow(therapistID, date, date)
	if err != nil {
		return nil, err
	}
	day, err := availability.ResolveDay(t.WeeklyTemplate, overrides, date)
	if err != nil {
		return nil, err
	}
	return &day, nil
}

// GetRangeAvailability resolves every date in [startDate, endDate].
func (s *DefaultTherapistService) GetRangeAvailability(therapistID, startDate, endDate string) ([]models.EffectiveDayAvailability, error) {
	t, err := s.GetTherapistByID(therapistID)
	if err != nil {
		return nil, err
	}
	overrides, err := s.Overrides.GetByTherapistInWindow(therapistID, startDate, endDate)
	if err != nil {
		return nil, err
	}
	return availability.ResolveRange(t.WeeklyTemplate, overrides, startDate, endDate)
}

// CheckAvailability reports whether [start,end) on the date is fully inside
// one of the therapist's resolved open slots.
func (s *DefaultTherapistService) CheckAvailability(therapistID, date, start, end string) (bool, error) {
	t, err := s.GetTherapistByID(therapistID)
	if err != nil {
		return false, err
	}
	overrides, err := s.Overrides.GetByTherapistInWindow(therapistID, date, date)
	if err != nil {
		return false, err
	}
	return availability.IsAvailableFor(t.WeeklyTemplate, overrides, date, start, end)
}
