package models

// Importance tiers for a required specialization.
const (
	ImportanceCritical   = "critical"
	ImportancePreferred  = "preferred"
	ImportanceNiceToHave = "nice_to_have"
)

// Urgency levels for a match request. Urgency shrinks or stretches the
// scheduling lookahead window.
const (
	UrgencyUrgent   = "urgent"
	UrgencyHigh     = "high"
	UrgencyStandard = "standard"
	UrgencyLow      = "low"
)

// Bounds for MatchCriteria.MaxResults.
const (
	MinMatchResults     = 1
	MaxMatchResults     = 20
	DefaultMatchResults = 5
)

// RequiredSpecialization is one clinical requirement of the client, with the
// client-stated priority for it.
type RequiredSpecialization struct {
	SpecializationID string `json:"specializationId" binding:"required"`
	Importance       string `json:"importance"` // critical, preferred or nice_to_have
}

// PreferredTime is a weekly recurring window the client would like sessions
// to fall into, e.g. {weekday: "monday", start: "17:00", end: "19:00"}.
type PreferredTime struct {
	Weekday string `json:"weekday" binding:"required"`
	Start   string `json:"start" binding:"required"`
	End     string `json:"end" binding:"required"`
}

// MatchCriteria captures the client's clinical and scheduling requirements
// for therapist matching.
type MatchCriteria struct {
	RequiredSpecializations []RequiredSpecialization `json:"requiredSpecializations"`
	CommunicationNeeds      string                   `json:"communicationNeeds,omitempty"`
	AgeGroup                string                   `json:"ageGroup,omitempty"`
	PreferredTimes          []PreferredTime          `json:"preferredTimes,omitempty"`
	Urgency                 string                   `json:"urgency,omitempty"`
	MaxResults              int                      `json:"maxResults,omitempty"`
}

// MatchDetails breaks the composite score down into its five components.
// Every component lies in [0,100].
type MatchDetails struct {
	SpecializationScore float64 `json:"specializationScore"`
	CommunicationScore  float64 `json:"communicationScore"`
	AvailabilityScore   float64 `json:"availabilityScore"`
	AgeMatchScore       float64 `json:"ageMatchScore"`
	CaseloadScore       float64 `json:"caseloadScore"`
}

// MatchResult is one ranked therapist candidate with the composite score and
// a short human-readable justification.
type MatchResult struct {
	TherapistID    string       `json:"therapistId"`
	MatchScore     float64      `json:"matchScore"`
	MatchReasoning string       `json:"matchReasoning"`
	Details        MatchDetails `json:"details"`
}

// MatchResponse is the HTTP payload for a match request.
type MatchResponse struct {
	Matches      []MatchResult `json:"matches"`
	TotalMatches int           `json:"totalMatches"`
}
