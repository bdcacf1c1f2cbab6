package matching

import (
	"time"

	"therapair/models"
	"therapair/services/availability"
)

// Per-specialization scores by proficiency when the candidate holds the
// requirement, and by importance when they do not.
const (
	expertScore     = 100.0
	proficientScore = 85.0
	familiarScore   = 70.0

	missingCriticalScore   = 0.0
	missingPreferredScore  = 40.0
	missingNiceToHaveScore = 75.0

	// A missing critical specialization caps the whole component near zero.
	// Disqualification by score, not a hard filter.
	missingCriticalCap = 10.0

	// Neutral scores when the client stated no preference for a dimension.
	// Mid-range, so an unspecified preference never penalizes a candidate.
	neutralSpecializationScore = 50.0
	neutralAvailabilityScore   = 50.0

	adjacentModalityScore = 50.0
)

// adjacentModalities maps a communication need to modalities that partially
// cover it.
var adjacentModalities = map[string][]string{
	"sign_language": {"written", "text_based"},
	"text_based":    {"written"},
	"written":       {"text_based"},
	"nonverbal":     {"play_therapy", "art_therapy"},
	"play_therapy":  {"nonverbal", "art_therapy"},
	"art_therapy":   {"play_therapy"},
}

// Lookahead windows for availability scoring, by urgency. An urgent client
// needs openings soon; a low-urgency client can wait for a better fit.
var urgencyLookaheadDays = map[string]int{
	models.UrgencyUrgent:   7,
	models.UrgencyHigh:     14,
	models.UrgencyStandard: 28,
	models.UrgencyLow:      42,
}

func scoreSpecializations(required []models.RequiredSpecialization, t models.TherapistProfile) float64 {
	if len(required) == 0 {
		return neutralSpecializationScore
	}

	var sum float64
	missingCritical := false
	for _, req := range required {
		held, ok := t.SpecializationFor(req.SpecializationID)
		if !ok {
			switch req.Importance {
			case models.ImportanceCritical:
				sum += missingCriticalScore
				missingCritical = true
			case models.ImportancePreferred:
				sum += missingPreferredScore
			default:
				sum += missingNiceToHaveScore
			}
			continue
		}
		switch held.Proficiency {
		case models.ProficiencyExpert:
			sum += expertScore
		case models.ProficiencyProficient:
			sum += proficientScore
		default:
			sum += familiarScore
		}
	}

	score := sum / float64(len(required))
	if missingCritical && score > missingCriticalCap {
		score = missingCriticalCap
	}
	return clampScore(score)
}

func scoreCommunication(need string, t models.TherapistProfile) float64 {
	if need == "" {
		return 100
	}
	for _, m := range t.CommunicationExpertise {
		if m == need {
			return 100
		}
	}
	for _, adjacent := range adjacentModalities[need] {
		for _, m := range t.CommunicationExpertise {
			if m == adjacent {
				return adjacentModalityScore
			}
		}
	}
	return 0
}

func scoreAgeMatch(ageGroup string, t models.TherapistProfile) float64 {
	if ageGroup == "" {
		return 100
	}
	for _, g := range t.AgeGroups {
		if g == ageGroup {
			return 100
		}
	}
	return 0
}

func scoreCaseload(t models.TherapistProfile) float64 {
	if t.MaxCaseload <= 0 {
		return 0
	}
	return clampScore(100 * (1 - float64(t.CurrentCaseload)/float64(t.MaxCaseload)))
}

// scoreAvailability checks each preferred weekly window against the
// candidate's resolved schedule over the urgency-scaled lookahead, and scales
// the fraction of servable windows into [0,100]. A window counts as servable
// if any date inside the lookahead can fully contain it.
func scoreAvailability(criteria models.MatchCriteria, c Candidate, now time.Time) (float64, error) {
	if len(criteria.PreferredTimes) == 0 {
		return neutralAvailabilityScore, nil
	}

	lookahead, ok := urgencyLookaheadDays[criteria.Urgency]
	if !ok {
		lookahead = urgencyLookaheadDays[models.UrgencyStandard]
	}
	horizon := now.AddDate(0, 0, lookahead)

	servable := 0
	for _, pt := range criteria.PreferredTimes {
		first, err := availability.NextDateForWeekday(now, pt.Weekday)
		if err != nil {
			return 0, err
		}
		for d := first; !d.After(horizon); d = d.AddDate(0, 0, 7) {
			ok, err := availability.IsAvailableFor(
				c.Profile.WeeklyTemplate, c.Overrides, d.Format(availability.DateLayout), pt.Start, pt.End)
			if err != nil {
				return 0, err
			}
			if ok {
				servable++
				break
			}
		}
	}

	return clampScore(100 * float64(servable) / float64(len(criteria.PreferredTimes))), nil
}
