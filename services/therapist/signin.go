package therapist

import (
	"fmt"

	"therapair/models"
	"therapair/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// AuthenticateTherapist verifies credentials, rotates the stored token hash
// and returns a fresh auth response.
func (s *DefaultTherapistService) AuthenticateTherapist(email, password string) (*models.TherapistAuthResponse, error) {
	projection := bson.M{"id": 1, "name": 1, "email": 1, "security": 1}
	t, err := s.Repo.GetByEmailWithProjection(email, projection)
	if err != nil {
		utils.GetLogger().Error("Failed to fetch therapist", zap.Error(err))
		return nil, fmt.Errorf("authentication failed, please try again")
	}
	if t == nil {
		return nil, fmt.Errorf("invalid email or password")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(t.Security.PasswordHash), []byte(password)); err != nil {
		return nil, fmt.Errorf("invalid email or password")
	}

	token, err := utils.GenerateToken(t.ID, t.Email, authTokenDuration)
	if err != nil {
		return nil, fmt.Errorf("failed to generate auth token: %w", err)
	}

	update := bson.M{"$set": bson.M{"security.tokenHash": utils.HashToken(token)}}
	if err := s.Repo.UpdateWithDocument(t.ID, update); err != nil {
		return nil, fmt.Errorf("failed to store auth token: %w", err)
	}

	return &models.TherapistAuthResponse{
		ID:    t.ID,
		Name:  t.Name,
		Email: t.Email,
		Token: token,
	}, nil
}
