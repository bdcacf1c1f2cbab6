package matching

import (
	"sort"
	"time"

	"therapair/models"
	"therapair/services/availability"
)

// Candidate pairs a therapist profile with their availability overrides,
// already loaded by the caller. The engine never performs I/O.
type Candidate struct {
	Profile   models.TherapistProfile
	Overrides []models.AvailabilityOverride
}

// Engine ranks therapist candidates against client criteria. It is
// stateless; the zero value with DefaultWeights is ready to use via
// NewEngine. Now is injectable so the availability lookahead is testable.
type Engine struct {
	Weights Weights
	Now     func() time.Time
}

// NewEngine returns an engine with the production scoring policy.
func NewEngine() *Engine {
	return &Engine{Weights: DefaultWeights, Now: time.Now}
}

// RankCandidates scores every candidate, hard-filters the ones that cannot
// take new clients, ranks the rest and truncates to criteria.MaxResults.
//
// A candidate at or over capacity, or not accepting new clients, is removed
// entirely. A malformed candidate record is skipped rather than aborting the
// pass. An empty pool yields an empty list, not an error.
func (e *Engine) RankCandidates(criteria models.MatchCriteria, candidates []Candidate) ([]models.MatchResult, error) {
	criteria, err := normalizeCriteria(criteria)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	if e.Now != nil {
		now = e.Now()
	}

	results := make([]models.MatchResult, 0, len(candidates))
	for _, c := range candidates {
		t := c.Profile
		if t.ID == "" || t.MaxCaseload <= 0 || t.CurrentCaseload < 0 {
			continue // malformed record, skip and keep ranking the rest
		}
		if !t.IsAcceptingNewClients || t.CurrentCaseload >= t.MaxCaseload {
			continue // hard filter, not a low score
		}

		availabilityScore, err := scoreAvailability(criteria, c, now)
		if err != nil {
			if availability.IsValidationError(err) {
				continue // bad schedule data on this candidate only
			}
			return nil, err
		}

		scores := ComponentScores{
			Specialization: scoreSpecializations(criteria.RequiredSpecializations, t),
			Availability:   availabilityScore,
			Communication:  scoreCommunication(criteria.CommunicationNeeds, t),
			AgeMatch:       scoreAgeMatch(criteria.AgeGroup, t),
			Caseload:       scoreCaseload(t),
		}

		results = append(results, models.MatchResult{
			TherapistID:    t.ID,
			MatchScore:     e.Weights.Composite(scores),
			MatchReasoning: buildReasoning(criteria, t, scores),
			Details: models.MatchDetails{
				SpecializationScore: scores.Specialization,
				AvailabilityScore:   scores.Availability,
				CommunicationScore:  scores.Communication,
				AgeMatchScore:       scores.AgeMatch,
				CaseloadScore:       scores.Caseload,
			},
		})
	}

	// Deterministic order: composite desc, caseload desc, then ID asc.
	sort.SliceStable(results, func(i, j int) bool {
		if results[i].MatchScore != results[j].MatchScore {
			return results[i].MatchScore > results[j].MatchScore
		}
		if results[i].Details.CaseloadScore != results[j].Details.CaseloadScore {
			return results[i].Details.CaseloadScore > results[j].Details.CaseloadScore
		}
		return results[i].TherapistID < results[j].TherapistID
	})

	if len(results) > criteria.MaxResults {
		results = results[:criteria.MaxResults]
	}
	return results, nil
}

// normalizeCriteria applies defaults and rejects structurally invalid
// criteria before any scoring begins.
func normalizeCriteria(criteria models.MatchCriteria) (models.MatchCriteria, error) {
	if criteria.MaxResults == 0 {
		criteria.MaxResults = models.DefaultMatchResults
	}
	if criteria.MaxResults < models.MinMatchResults || criteria.MaxResults > models.MaxMatchResults {
		return criteria, availability.NewValidationError("maxResults", "maxResults must be between 1 and 20")
	}
	if criteria.Urgency == "" {
		criteria.Urgency = models.UrgencyStandard
	}
	for _, pt := range criteria.PreferredTimes {
		if err := availability.ValidateInterval("preferredTimes", pt.Start, pt.End); err != nil {
			return criteria, err
		}
		// Weekday name validity does not depend on a reference date.
		if _, err := availability.NextDateForWeekday(time.Time{}, pt.Weekday); err != nil {
			return criteria, err
		}
	}
	for _, rs := range criteria.RequiredSpecializations {
		if rs.SpecializationID == "" {
			return criteria, availability.NewValidationError("requiredSpecializations", "specializationId is required")
		}
	}
	return criteria, nil
}
