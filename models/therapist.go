package models

import "time"

// Proficiency levels for a therapist specialization.
const (
	ProficiencyFamiliar   = "familiar"
	ProficiencyProficient = "proficient"
	ProficiencyExpert     = "expert"
)

// TherapistSpecialization records one clinical specialization the therapist
// holds and how deep their experience with it is.
type TherapistSpecialization struct {
	SpecializationID string `bson:"specializationId" json:"specializationId" binding:"required"`
	Proficiency      string `bson:"proficiency" json:"proficiency"` // familiar, proficient or expert
}

// Security holds credential material. Plaintext fields never reach storage.
type Security struct {
	Password     string `bson:"-" json:"password,omitempty"`
	PasswordHash string `bson:"passwordHash" json:"-"`
	Token        string `bson:"-" json:"token,omitempty"`
	TokenHash    string `bson:"tokenHash" json:"-"`
}

// TherapistProfile is the full therapist record: identity, clinical
// expertise, capacity and the recurring weekly schedule.
type TherapistProfile struct {
	ID                     string                    `bson:"id" json:"id,omitempty"`
	Name                   string                    `bson:"name" json:"name"`
	Email                  string                    `bson:"email" json:"email,omitempty"`
	Security               Security                  `bson:"security" json:"security,omitzero"`
	Specializations        []TherapistSpecialization `bson:"specializations" json:"specializations,omitempty"`
	Languages              []string                  `bson:"languages" json:"languages,omitempty"`
	AgeGroups              []string                  `bson:"ageGroups" json:"ageGroups,omitempty"` // e.g. "child", "adolescent", "adult", "senior"
	CommunicationExpertise []string                  `bson:"communicationExpertise" json:"communicationExpertise,omitempty"`
	CurrentCaseload        int                       `bson:"currentCaseload" json:"currentCaseload"`
	MaxCaseload            int                       `bson:"maxCaseload" json:"maxCaseload"`
	IsAcceptingNewClients  bool                      `bson:"isAcceptingNewClients" json:"isAcceptingNewClients"`
	WeeklyTemplate         WeeklyTemplate            `bson:"weeklyTemplate" json:"weeklyTemplate,omitzero"`
	CreatedAt              time.Time                 `bson:"createdAt" json:"createdAt,omitzero"`
	UpdatedAt              time.Time                 `bson:"updatedAt" json:"updatedAt,omitzero"`
}

// SpecializationFor returns the therapist's entry for the given
// specialization, if held.
func (t TherapistProfile) SpecializationFor(specializationID string) (TherapistSpecialization, bool) {
	for _, s := range t.Specializations {
		if s.SpecializationID == specializationID {
			return s, true
		}
	}
	return TherapistSpecialization{}, false
}

// TherapistAuthResponse is returned on successful sign-in.
type TherapistAuthResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Token string `json:"token"`
}
