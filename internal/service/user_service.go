package service

import (
	"github.com/saferoute/saferoute-backend-go/internal/models"
	"github.com/saferoute/saferoute-backend-go/internal/repository"
)

// UserService handles business logic for user profiles
type UserService struct {
	repo *repository.UserRepository
}

// NewUserService creates a new user service
func NewUserService(repo *repository.UserRepository) *UserService {
	return &UserService{repo: repo}
}

// UpdateProfile upserts a user profile.
func (s *UserService) UpdateProfile(update models.UserProfileUpdate) (*models.UserProfile, error) {
	profile := &models.UserProfile{
		UserID:            update.UserID,
		Name:              update.Name,
		Phone:             update.Phone,
		EmergencyContacts: update.EmergencyContacts,
		HealthInfo:        update.HealthInfo,
		MedicalConditions: update.MedicalConditions,
	}
	if err := s.repo.Upsert(profile); err != nil {
		return nil, err
	}
	return profile, nil
}

// GetProfile retrieves a user profile.
func (s *UserService) GetProfile(userID string) (*models.UserProfile, error) {
	return s.repo.GetByID(userID)
}
