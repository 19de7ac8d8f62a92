package dto

import "time"

// ErrorResponse is the standardized JSON error body returned by every
// failing endpoint.
type ErrorResponse struct {
	Message      string    `json:"message" example:"invalid request"`
	ErrorDetails string    `json:"error,omitempty" example:"min_score must be an integer"`
	Timestamp    time.Time `json:"timestamp"`
}

// Error implements the error interface so handlers can attach the response
// to the Gin error chain.
func (e ErrorResponse) Error() string {
	if e.ErrorDetails != "" {
		return e.Message + ": " + e.ErrorDetails
	}
	return e.Message
}

// NewErrorResponse builds an ErrorResponse from a message and an optional
// inner error.
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
