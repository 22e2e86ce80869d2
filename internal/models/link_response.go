package models

import "time"

// LinkResponse represents a link returned by the management endpoints
type LinkResponse struct {
	ID          string    `json:"id"`
	ShortCode   string    `json:"short_code"`
	OriginalURL string    `json:"original_url"`
	ShortURL    string    `json:"short_url"` // Full short URL (base URL + short code)
	CreatedAt   time.Time `json:"created_at"`
}

// LinkMetricResponse represents the visit count of a link on one date
type LinkMetricResponse struct {
	Date  string `json:"date"` // ISO calendar date
	Count int64  `json:"count"`
}
