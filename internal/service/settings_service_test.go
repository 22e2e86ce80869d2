package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shrtr-be/internal/entities"
	"shrtr-be/internal/models"
	"shrtr-be/internal/repository"
)

func TestSettingsService_UpdateAndGetRateLimit(t *testing.T) {
	users := &fakeUserRepo{users: map[string]*entities.User{
		"u1": {ID: "u1", Email: "u1@example.com"},
	}}
	svc := NewSettingsService(users)

	updated, err := svc.UpdateRateLimit(context.Background(), "u1", &models.RateLimitSettingsRequest{
		MaxRequests:         3,
		MaxRequestsWindowMs: 1000,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(3), updated.MaxRequests)
	assert.Equal(t, int64(1000), updated.MaxRequestsWindowMs)

	got, err := svc.GetRateLimit(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, updated, got)

	assert.True(t, users.users["u1"].HasRedirectRateLimit())
}

func TestSettingsService_ZeroBudgetDisablesLimiting(t *testing.T) {
	users := &fakeUserRepo{users: map[string]*entities.User{
		"u1": {ID: "u1", Email: "u1@example.com", MaxRequests: 3, MaxRequestsWindowMs: 1000},
	}}
	svc := NewSettingsService(users)

	_, err := svc.UpdateRateLimit(context.Background(), "u1", &models.RateLimitSettingsRequest{})
	require.NoError(t, err)
	assert.False(t, users.users["u1"].HasRedirectRateLimit())
}

func TestSettingsService_UnknownUser(t *testing.T) {
	svc := NewSettingsService(&fakeUserRepo{users: map[string]*entities.User{}})

	_, err := svc.GetRateLimit(context.Background(), "nope")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}
