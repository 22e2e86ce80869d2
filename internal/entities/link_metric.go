package entities

import "time"

// LinkMetric represents the redirect count of one link on one calendar date.
// At most one row exists per (link, date) pair.
type LinkMetric struct {
	ID        string    `json:"id"` // UUID
	LinkID    string    `json:"link_id"`
	Date      time.Time `json:"date"` // calendar date, time component zeroed
	Count     int64     `json:"count"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
