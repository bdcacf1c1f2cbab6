package matching

import (
	"fmt"
	"strings"

	"therapair/models"
)

// buildReasoning produces the short templated justification attached to a
// match result. It reads the one or two dominant factors and is purely
// presentational; nothing here feeds back into ranking.
func buildReasoning(criteria models.MatchCriteria, t models.TherapistProfile, scores ComponentScores) string {
	var parts []string

	if held := matchedCriticalSpecializations(criteria, t); len(held) > 0 {
		parts = append(parts, fmt.Sprintf("covers %s", strings.Join(held, ", ")))
	} else if scores.Specialization >= expertScore {
		parts = append(parts, "strong specialization fit")
	}

	if len(criteria.PreferredTimes) > 0 {
		parts = append(parts, fmt.Sprintf("can serve %.0f%% of your preferred times", scores.Availability))
	}

	if len(parts) < 2 && criteria.CommunicationNeeds != "" && scores.Communication == 100 {
		parts = append(parts, "supports "+criteria.CommunicationNeeds+" communication")
	}

	if len(parts) < 2 {
		parts = append(parts, "accepting new clients")
	}

	if len(parts) > 2 {
		parts = parts[:2]
	}
	return strings.Join(parts, "; ")
}

// matchedCriticalSpecializations lists the critical requirements the
// therapist actually holds, formatted with proficiency.
func matchedCriticalSpecializations(criteria models.MatchCriteria, t models.TherapistProfile) []string {
	var held []string
	for _, req := range criteria.RequiredSpecializations {
		if req.Importance != models.ImportanceCritical {
			continue
		}
		if s, ok := t.SpecializationFor(req.SpecializationID); ok {
			held = append(held, fmt.Sprintf("%s (%s)", s.SpecializationID, s.Proficiency))
		}
	}
	return held
}
