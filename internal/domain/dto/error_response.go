package dto

import "time"

// ErrorResponse is the standardized JSON error envelope returned by all
// endpoints and middlewares.
//
// Fields:
//   - Message: human-readable description of what went wrong.
//   - ErrorDetails: optional underlying error text (omitted when empty).
//   - Timestamp: when the error response was built.
type ErrorResponse struct {
	Message      string    `json:"message" example:"no data found"`
	ErrorDetails string    `json:"error,omitempty" example:"sql: no rows in result set"`
	Timestamp    time.Time `json:"timestamp" example:"2025-11-14T15:04:05Z"`
}

// Error implements the error interface so an ErrorResponse can travel through
// error-returning call paths.
func (e ErrorResponse) Error() string {
	if e.ErrorDetails != "" {
		return e.Message + ": " + e.ErrorDetails
	}
	return e.Message
}

// NewErrorResponse builds an ErrorResponse from a message and an optional
// underlying error.
func NewErrorResponse(message string, err error) ErrorResponse {
	resp := ErrorResponse{
		Message:   message,
		Timestamp: time.Now(),
	}
	if err != nil {
		resp.ErrorDetails = err.Error()
	}
	return resp
}
