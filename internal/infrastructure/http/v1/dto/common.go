// Package dto provides Data Transfer Objects for API requests/responses.
package dto

// IDResponse returns the ID of a created or affected entity.
type IDResponse struct {
	ID string `json:"id"`
}

// SuccessResponse is a generic success payload.
type SuccessResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

// DeletedResponse reports how many records a bulk operation removed.
type DeletedResponse struct {
	Success      bool  `json:"success"`
	DeletedCount int64 `json:"deletedCount"`
}
