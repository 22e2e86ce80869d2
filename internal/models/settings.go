package models

// RateLimitSettingsRequest represents the request body for updating a user's
// redirect rate-limit budget. Zero values disable rate limiting.
type RateLimitSettingsRequest struct {
	MaxRequests         int64 `json:"max_requests" binding:"min=0"`
	MaxRequestsWindowMs int64 `json:"max_requests_window_ms" binding:"min=0"`
}

// RateLimitSettingsResponse represents a user's current rate-limit budget
type RateLimitSettingsResponse struct {
	MaxRequests         int64 `json:"max_requests"`
	MaxRequestsWindowMs int64 `json:"max_requests_window_ms"`
}
