package entities

import "time"

// User represents a user entity in the database
type User struct {
	ID                  string    `json:"id"` // UUID
	Email               string    `json:"email"`
	PasswordHash        string    `json:"-"` // Don't expose password hash in JSON
	Name                *string   `json:"name,omitempty"`
	MaxRequests         int64     `json:"max_requests"`           // redirect budget per window, 0 = unlimited
	MaxRequestsWindowMs int64     `json:"max_requests_window_ms"` // window length in milliseconds, 0 = unlimited
	CreatedAt           time.Time `json:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"`
}

// HasRedirectRateLimit reports whether redirects on this user's links are rate limited
func (u *User) HasRedirectRateLimit() bool {
	return u.MaxRequests > 0 && u.MaxRequestsWindowMs > 0
}
