package matching

import (
	"testing"
	"time"

	"therapair/models"
	"therapair/services/availability"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fixedNow is Monday 2025-06-02, 08:00 UTC.
var fixedNow = time.Date(2025, 6, 2, 8, 0, 0, 0, time.UTC)

func testEngine() *Engine {
	return &Engine{Weights: DefaultWeights, Now: func() time.Time { return fixedNow }}
}

func acceptingTherapist(id string) models.TherapistProfile {
	return models.TherapistProfile{
		ID:                    id,
		Name:                  "Therapist " + id,
		CurrentCaseload:       10,
		MaxCaseload:           25,
		IsAcceptingNewClients: true,
	}
}

func withSpecialization(t models.TherapistProfile, specID, proficiency string) models.TherapistProfile {
	t.Specializations = append(t.Specializations, models.TherapistSpecialization{
		SpecializationID: specID,
		Proficiency:      proficiency,
	})
	return t
}

func TestRankCandidatesCriticalSpecializationOutranksCaseload(t *testing.T) {
	t1 := withSpecialization(acceptingTherapist("t1"), "S1", models.ProficiencyExpert)
	t2 := acceptingTherapist("t2")
	t2.CurrentCaseload = 5 // better caseload than t1, but missing S1

	criteria := models.MatchCriteria{
		RequiredSpecializations: []models.RequiredSpecialization{
			{SpecializationID: "S1", Importance: models.ImportanceCritical},
		},
		MaxResults: 5,
	}

	results, err := testEngine().RankCandidates(criteria, []Candidate{{Profile: t2}, {Profile: t1}})
	require.NoError(t, err)
	require.Len(t, results, 2)

	assert.Equal(t, "t1", results[0].TherapistID)
	assert.Equal(t, "t2", results[1].TherapistID)
	assert.Greater(t, results[0].MatchScore, results[1].MatchScore)
	// Missing critical caps the component near zero.
	assert.LessOrEqual(t, results[1].Details.SpecializationScore, missingCriticalCap)
}

func TestRankCandidatesTruncatesToMaxResults(t *testing.T) {
	candidates := []Candidate{
		{Profile: withSpecialization(acceptingTherapist("t1"), "S1", models.ProficiencyExpert)},
		{Profile: withSpecialization(acceptingTherapist("t2"), "S1", models.ProficiencyProficient)},
		{Profile: withSpecialization(acceptingTherapist("t3"), "S1", models.ProficiencyFamiliar)},
	}
	criteria := models.MatchCriteria{
		RequiredSpecializations: []models.RequiredSpecialization{
			{SpecializationID: "S1", Importance: models.ImportanceCritical},
		},
		MaxResults: 1,
	}

	results, err := testEngine().RankCandidates(criteria, candidates)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "t1", results[0].TherapistID)
}

func TestRankCandidatesSortedDescending(t *testing.T) {
	candidates := []Candidate{
		{Profile: withSpecialization(acceptingTherapist("t3"), "S1", models.ProficiencyFamiliar)},
		{Profile: withSpecialization(acceptingTherapist("t1"), "S1", models.ProficiencyExpert)},
		{Profile: withSpecialization(acceptingTherapist("t2"), "S1", models.ProficiencyProficient)},
	}
	criteria := models.MatchCriteria{
		RequiredSpecializations: []models.RequiredSpecialization{
			{SpecializationID: "S1", Importance: models.ImportancePreferred},
		},
	}

	results, err := testEngine().RankCandidates(criteria, candidates)
	require.NoError(t, err)
	require.Len(t, results, 3)
	for i := 1; i < len(results); i++ {
		assert.GreaterOrEqual(t, results[i-1].MatchScore, results[i].MatchScore)
	}
	assert.Equal(t, "t1", results[0].TherapistID)
}

func TestRankCandidatesHardFilters(t *testing.T) {
	notAccepting := acceptingTherapist("t1")
	notAccepting.IsAcceptingNewClients = false

	atCapacity := acceptingTherapist("t2")
	atCapacity.CurrentCaseload = atCapacity.MaxCaseload

	overCapacity := acceptingTherapist("t3")
	overCapacity.CurrentCaseload = overCapacity.MaxCaseload + 2

	open := acceptingTherapist("t4")

	results, err := testEngine().RankCandidates(models.MatchCriteria{}, []Candidate{
		{Profile: notAccepting}, {Profile: atCapacity}, {Profile: overCapacity}, {Profile: open},
	})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "t4", results[0].TherapistID)
}

func TestRankCandidatesSkipsMalformedRecords(t *testing.T) {
	noID := acceptingTherapist("")
	zeroCap := acceptingTherapist("t1")
	zeroCap.MaxCaseload = 0
	ok := acceptingTherapist("t2")

	results, err := testEngine().RankCandidates(models.MatchCriteria{}, []Candidate{
		{Profile: noID}, {Profile: zeroCap}, {Profile: ok},
	})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "t2", results[0].TherapistID)
}

func TestRankCandidatesEmptyPool(t *testing.T) {
	results, err := testEngine().RankCandidates(models.MatchCriteria{}, nil)
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestRankCandidatesMaxResultsValidation(t *testing.T) {
	_, err := testEngine().RankCandidates(models.MatchCriteria{MaxResults: 21}, nil)
	require.Error(t, err)
	assert.True(t, availability.IsValidationError(err))

	_, err = testEngine().RankCandidates(models.MatchCriteria{MaxResults: -1}, nil)
	require.Error(t, err)

	// Zero means unset and defaults to 5.
	candidates := make([]Candidate, 0, 8)
	for _, id := range []string{"a", "b", "c", "d", "e", "f", "g", "h"} {
		candidates = append(candidates, Candidate{Profile: acceptingTherapist(id)})
	}
	results, err := testEngine().RankCandidates(models.MatchCriteria{}, candidates)
	require.NoError(t, err)
	assert.Len(t, results, models.DefaultMatchResults)
}

func TestRankCandidatesNeutralScoresWithoutPreferences(t *testing.T) {
	results, err := testEngine().RankCandidates(models.MatchCriteria{}, []Candidate{
		{Profile: acceptingTherapist("t1")},
	})
	require.NoError(t, err)
	require.Len(t, results, 1)

	d := results[0].Details
	assert.Equal(t, neutralSpecializationScore, d.SpecializationScore)
	assert.Equal(t, neutralAvailabilityScore, d.AvailabilityScore)
	assert.Equal(t, 100.0, d.CommunicationScore)
	assert.Equal(t, 100.0, d.AgeMatchScore)
	assert.Equal(t, 60.0, d.CaseloadScore) // 10/25 used
}

func TestRankCandidatesAvailabilityFraction(t *testing.T) {
	therapist := acceptingTherapist("t1")
	therapist.WeeklyTemplate = models.WeeklyTemplate{
		Monday: []models.TimeInterval{{Start: "09:00", End: "12:00"}},
	}

	criteria := models.MatchCriteria{
		PreferredTimes: []models.PreferredTime{
			{Weekday: "monday", Start: "09:00", End: "10:00"},
			{Weekday: "wednesday", Start: "09:00", End: "10:00"},
		},
	}

	results, err := testEngine().RankCandidates(criteria, []Candidate{{Profile: therapist}})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, 50.0, results[0].Details.AvailabilityScore)
}

func TestRankCandidatesUrgencyShrinksLookahead(t *testing.T) {
	therapist := acceptingTherapist("t1")
	// No template; the only opening is an AVAILABLE override two weeks out.
	overrides := []models.AvailabilityOverride{
		{ID: "o1", TherapistID: "t1", StartDate: "2025-06-16", EndDate: "2025-06-16",
			StartTime: "09:00", EndTime: "12:00", Type: models.OverrideAvailable},
	}
	preferred := []models.PreferredTime{{Weekday: "monday", Start: "09:00", End: "10:00"}}

	urgent := models.MatchCriteria{PreferredTimes: preferred, Urgency: models.UrgencyUrgent}
	results, err := testEngine().RankCandidates(urgent, []Candidate{{Profile: therapist, Overrides: overrides}})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, 0.0, results[0].Details.AvailabilityScore)

	low := models.MatchCriteria{PreferredTimes: preferred, Urgency: models.UrgencyLow}
	results, err = testEngine().RankCandidates(low, []Candidate{{Profile: therapist, Overrides: overrides}})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, 100.0, results[0].Details.AvailabilityScore)
}

func TestRankCandidatesCommunicationScoring(t *testing.T) {
	exact := acceptingTherapist("t1")
	exact.CommunicationExpertise = []string{"text_based"}

	adjacent := acceptingTherapist("t2")
	adjacent.CommunicationExpertise = []string{"written"}

	none := acceptingTherapist("t3")

	criteria := models.MatchCriteria{CommunicationNeeds: "text_based"}
	results, err := testEngine().RankCandidates(criteria, []Candidate{
		{Profile: exact}, {Profile: adjacent}, {Profile: none},
	})
	require.NoError(t, err)
	require.Len(t, results, 3)

	byID := map[string]models.MatchResult{}
	for _, r := range results {
		byID[r.TherapistID] = r
	}
	assert.Equal(t, 100.0, byID["t1"].Details.CommunicationScore)
	assert.Equal(t, adjacentModalityScore, byID["t2"].Details.CommunicationScore)
	assert.Equal(t, 0.0, byID["t3"].Details.CommunicationScore)
}

func TestRankCandidatesAgeMatch(t *testing.T) {
	child := acceptingTherapist("t1")
	child.AgeGroups = []string{"child", "adolescent"}

	adult := acceptingTherapist("t2")
	adult.AgeGroups = []string{"adult"}

	criteria := models.MatchCriteria{AgeGroup: "child"}
	results, err := testEngine().RankCandidates(criteria, []Candidate{{Profile: child}, {Profile: adult}})
	require.NoError(t, err)
	require.Len(t, results, 2)

	assert.Equal(t, "t1", results[0].TherapistID)
	assert.Equal(t, 100.0, results[0].Details.AgeMatchScore)
	assert.Equal(t, 0.0, results[1].Details.AgeMatchScore)
}

func TestRankCandidatesTieBreaks(t *testing.T) {
	// Identical clinical profiles; t2 has the lighter caseload.
	t1 := withSpecialization(acceptingTherapist("t1"), "S1", models.ProficiencyExpert)
	t2 := withSpecialization(acceptingTherapist("t2"), "S1", models.ProficiencyExpert)
	t1.CurrentCaseload = 20
	t2.CurrentCaseload = 5

	criteria := models.MatchCriteria{
		RequiredSpecializations: []models.RequiredSpecialization{
			{SpecializationID: "S1", Importance: models.ImportanceCritical},
		},
	}
	results, err := testEngine().RankCandidates(criteria, []Candidate{{Profile: t1}, {Profile: t2}})
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "t2", results[0].TherapistID)

	// Fully identical candidates fall back to ID ascending.
	t3 := withSpecialization(acceptingTherapist("t3"), "S1", models.ProficiencyExpert)
	t4 := withSpecialization(acceptingTherapist("t4"), "S1", models.ProficiencyExpert)
	results, err = testEngine().RankCandidates(criteria, []Candidate{{Profile: t4}, {Profile: t3}})
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "t3", results[0].TherapistID)
}

func TestRankCandidatesScoresWithinBounds(t *testing.T) {
	candidates := []Candidate{
		{Profile: withSpecialization(acceptingTherapist("t1"), "S1", models.ProficiencyExpert)},
		{Profile: acceptingTherapist("t2")},
	}
	criteria := models.MatchCriteria{
		RequiredSpecializations: []models.RequiredSpecialization{
			{SpecializationID: "S1", Importance: models.ImportanceCritical},
			{SpecializationID: "S2", Importance: models.ImportanceNiceToHave},
		},
		CommunicationNeeds: "sign_language",
		AgeGroup:           "adult",
	}

	results, err := testEngine().RankCandidates(criteria, candidates)
	require.NoError(t, err)
	for _, r := range results {
		assert.GreaterOrEqual(t, r.MatchScore, 0.0)
		assert.LessOrEqual(t, r.MatchScore, 100.0)
		for _, s := range []float64{
			r.Details.SpecializationScore, r.Details.CommunicationScore,
			r.Details.AvailabilityScore, r.Details.AgeMatchScore, r.Details.CaseloadScore,
		} {
			assert.GreaterOrEqual(t, s, 0.0)
			assert.LessOrEqual(t, s, 100.0)
		}
	}
}

func TestRankCandidatesReasoningMentionsCriticalSpecialization(t *testing.T) {
	t1 := withSpecialization(acceptingTherapist("t1"), "trauma", models.ProficiencyExpert)
	criteria := models.MatchCriteria{
		RequiredSpecializations: []models.RequiredSpecialization{
			{SpecializationID: "trauma", Importance: models.ImportanceCritical},
		},
	}

	results, err := testEngine().RankCandidates(criteria, []Candidate{{Profile: t1}})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Contains(t, results[0].MatchReasoning, "trauma")
	assert.Contains(t, results[0].MatchReasoning, models.ProficiencyExpert)
}

func TestRankCandidatesInvalidPreferredTime(t *testing.T) {
	criteria := models.MatchCriteria{
		PreferredTimes: []models.PreferredTime{{Weekday: "monday", Start: "25:00", End: "26:00"}},
	}
	_, err := testEngine().RankCandidates(criteria, []Candidate{{Profile: acceptingTherapist("t1")}})
	require.Error(t, err)
	assert.True(t, availability.IsValidationError(err))
}
