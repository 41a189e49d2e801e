// Package dto defines data transfer objects for API requests and responses.
package dto

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details string `json:"details,omitempty"`
}

// dateLayout is the wire format of every date field.
const dateLayout = "2006-01-02"
