package dto

import "time"

// ErrorResponse is the standardized JSON body for every non-2xx response.
//
// Example:
//
//	{
//	    "error": "data for ticker 'ZZZZ' not found",
//	    "timestamp": "2024-09-01T12:00:00Z"
//	}
type ErrorResponse struct {
	Message      string    `json:"error" example:"data for ticker 'ZZZZ' not found"`
	ErrorDetails string    `json:"details,omitempty" example:"open daily_technical_data/ZZZZ.csv: no such file or directory"`
	Timestamp    time.Time `json:"timestamp"`
}

// Error implements the error interface so an ErrorResponse can travel through c.Error.
func (e ErrorResponse) Error() string {
	if e.ErrorDetails == "" {
		return e.Message
	}
	return e.Message + ": " + e.ErrorDetails
}

// NewErrorResponse builds an ErrorResponse stamped with the current UTC time.
// err is optional; when present its text becomes ErrorDetails.
func NewErrorResponse(message string, err error) ErrorResponse {
	resp := ErrorResponse{
		Message:   message,
		Timestamp: time.Now().UTC(),
	}
	if err != nil {
		resp.ErrorDetails = err.Error()
	}
	return resp
}
