package therapist

import (
	"fmt"
	"time"

	"therapair/models"
	"therapair/utils"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const authTokenDuration = 72 * time.Hour

// RegisterTherapist creates a new therapist account, generates a token,
// stores its hash, and returns an auth response.
func (s *DefaultTherapistService) RegisterTherapist(t models.TherapistProfile) (*models.TherapistAuthResponse, error) {
	if t.Email == "" || t.Security.Password == "" {
		return nil, fmt.Errorf("therapist email and password are required")
	}
	if t.Name == "" {
		return nil, fmt.Errorf("therapist name is required")
	}
	if t.MaxCaseload <= 0 {
		return nil, fmt.Errorf("maxCaseload must be positive")
	}
	if err := validateTemplate(t.WeeklyTemplate); err != nil {
		return nil, err
	}
	for _, spec := range t.Specializations {
		if spec.SpecializationID == "" {
			return nil, fmt.Errorf("specializationId is required for every specialization")
		}
	}

	if existing, err := s.Repo.GetByEmail(t.Email); err != nil {
		return nil, fmt.Errorf("failed to check existing email: %w", err)
	} else if existing != nil {
		return nil, fmt.Errorf("a therapist with email %s already exists", t.Email)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(t.Security.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	t.ID = uuid.New().String()
	t.Security.Password = ""
	t.Security.PasswordHash = string(hashedPassword)
	t.CreatedAt = time.Now()
	t.UpdatedAt = t.CreatedAt

	token, err := utils.GenerateToken(t.ID, t.Email, authTokenDuration)
	if err != nil {
		return nil, fmt.Errorf("failed to generate auth token: %w", err)
	}
	t.Security.TokenHash = utils.HashToken(token)

	if err := s.Repo.Create(&t); err != nil {
		return nil, err
	}
	s.invalidateMatches(t.ID, "therapist_registered")

	return &models.TherapistAuthResponse{
		ID:    t.ID,
		Name:  t.Name,
		Email: t.Email,
		Token: token,
	}, nil
}

// GetTherapistByID fetches a therapist, credential material stripped.
func (s *DefaultTherapistService) GetTherapistByID(id string) (*models.TherapistProfile, error) {
	t, err := s.Repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, fmt.Errorf("therapist with id %s not found", id)
	}
	t.Security = models.Security{}
	return t, nil
}

// GetTherapistByEmail fetches a therapist by email, credential material stripped.
func (s *DefaultTherapistService) GetTherapistByEmail(email string) (*models.TherapistProfile, error) {
	t, err := s.Repo.GetByEmail(email)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, fmt.Errorf("therapist with email %s not found", email)
	}
	t.Security = models.Security{}
	return t, nil
}

// allowedUpdateFields is the whitelist of therapist fields a PUT may patch.
// Credentials, the weekly template and identifiers have dedicated paths.
var allowedUpdateFields = map[string]bool{
	"name":                   true,
	"specializations":        true,
	"languages":              true,
	"ageGroups":              true,
	"communicationExpertise": true,
	"currentCaseload":        true,
	"maxCaseload":            true,
	"isAcceptingNewClients":  true,
}

// UpdateTherapist patches whitelisted profile fields and returns the updated record.
func (s *DefaultTherapistService) UpdateTherapist(id string, updates map[string]interface{}) (*models.TherapistProfile, error) {
	if len(updates) == 0 {
		return nil, fmt.Errorf("no updates provided")
	}
	set := bson.M{}
	for field, value := range updates {
		if !allowedUpdateFields[field] {
			return nil, fmt.Errorf("field %q cannot be updated", field)
		}
		set[field] = value
	}
	set["updatedAt"] = time.Now()

	if err := s.Repo.UpdateWithDocument(id, bson.M{"$set": set}); err != nil {
		return nil, err
	}
	s.invalidateMatches(id, "therapist_updated")
	return s.GetTherapistByID(id)
}

// DeleteTherapist removes the account and its overrides become orphans to be
// swept by storage retention; match caches are flushed immediately.
func (s *DefaultTherapistService) DeleteTherapist(id string) error {
	if err := s.Repo.Delete(id); err != nil {
		return err
	}
	s.invalidateMatches(id, "therapist_deleted")
	return nil
}

// RevokeAuthToken clears the stored token hash, signing the therapist out.
func (s *DefaultTherapistService) RevokeAuthToken(therapistID string) error {
	update := bson.M{"$set": bson.M{"security.tokenHash": "", "updatedAt": time.Now()}}
	if err := s.Repo.UpdateWithDocument(therapistID, update); err != nil {
		return err
	}
	utils.GetLogger().Info("auth token revoked", zap.String("therapistID", therapistID))
	return nil
}
