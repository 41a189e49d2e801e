// Package dto defines data transfer objects for API requests and responses.
package dto

// DeleteUserRequest represents the request body for an admin user deletion.
type DeleteUserRequest struct {
	UserID string `json:"userId"`
}

// DeleteUserResponse represents a successful admin user deletion.
type DeleteUserResponse struct {
	Success bool `json:"success"`
}
