package service

import (
	"context"

	"shrtr-be/internal/models"
	"shrtr-be/internal/repository"
)

// SettingsService defines the interface for per-user settings
type SettingsService interface {
	GetRateLimit(ctx context.Context, userID string) (*models.RateLimitSettingsResponse, error)
	UpdateRateLimit(ctx context.Context, userID string, req *models.RateLimitSettingsRequest) (*models.RateLimitSettingsResponse, error)
}

type settingsService struct {
	userRepo repository.UserRepository
}

// NewSettingsService creates a new settings service
func NewSettingsService(userRepo repository.UserRepository) SettingsService {
	return &settingsService{userRepo: userRepo}
}

func (s *settingsService) GetRateLimit(ctx context.Context, userID string) (*models.RateLimitSettingsResponse, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &models.RateLimitSettingsResponse{
		MaxRequests:         user.MaxRequests,
		MaxRequestsWindowMs: user.MaxRequestsWindowMs,
	}, nil
}

func (s *settingsService) UpdateRateLimit(ctx context.Context, userID string, req *models.RateLimitSettingsRequest) (*models.RateLimitSettingsResponse, error) {
	user, err := s.userRepo.UpdateRateLimitSettings(ctx, userID, req.MaxRequests, req.MaxRequestsWindowMs)
	if err != nil {
		return nil, err
	}
	return &models.RateLimitSettingsResponse{
		MaxRequests:         user.MaxRequests,
		MaxRequestsWindowMs: user.MaxRequestsWindowMs,
	}, nil
}
