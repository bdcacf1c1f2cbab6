package therapist

import (
	"time"

	"therapair/models"
	"therapair/services/availability"
)

// ReplaceWeeklyTemplate validates and swaps the therapist's weekly template
// wholesale. Partial merges are never performed; the caller sends the full
// week every time.
func (s *DefaultTherapistService) ReplaceWeeklyTemplate(therapistID string, template models.WeeklyTemplate) error {
	if err := validateTemplate(template); err != nil {
		return err
	}
	if _, err := s.GetTherapistByID(therapistID); err != nil {
		return err
	}
	if err := s.Repo.ReplaceWeeklyTemplate(therapistID, template); err != nil {
		return err
	}
	s.invalidateMatches(therapistID, "template_replaced")
	return nil
}

// validateTemplate checks every interval on every weekday.
func validateTemplate(template models.WeeklyTemplate) error {
	for day := time.Sunday; day <= time.Saturday; day++ {
		name := availability.WeekdayName(day)
		for _, interval := range template.ForWeekday(day) {
			if err := availability.ValidateInterval("weeklyTemplate."+name, interval.Start, interval.End); err != nil {
				return err
			}
		}
	}
	return nil
}
