package entities

import "time"

// Link represents a shortened link entity in the database
type Link struct {
	ID                   string     `json:"id"` // UUID
	ShortCode            string     `json:"short_code"`
	OriginalURL          string     `json:"original_url"`
	OwnerID              string     `json:"owner_id"` // UUID
	RedirectCounter      int64      `json:"redirect_counter"`
	RateLimitWindowStart *time.Time `json:"rate_limit_window_start,omitempty"` // nil until the first rate-limited redirect
	CreatedAt            time.Time  `json:"created_at"`
	UpdatedAt            time.Time  `json:"updated_at"`
}
