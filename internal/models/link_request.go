package models

// CreateLinkRequest represents the request body for creating a short link
type CreateLinkRequest struct {
	URL string `json:"url" binding:"required,url"` // Gin validation: required and must be a valid URL
}
