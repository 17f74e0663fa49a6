package cdsapi

import (
	"fmt"
	"net/http"
)

// Error defines a problem that can be returned to the CDS client.
type Error struct {
	// Message is the message that is returned to the CDS client.
	Message string
	// Cause is an optional error that is only logged internally, not returned to the CDS client.
	Cause error
	// StatusCode is the HTTP status code of the response. Defaults to 500 if not set.
	StatusCode int
}

func (e Error) Error() string {
	if e.Cause == nil {
		return e.Message
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Cause)
}

func (e Error) Unwrap() error {
	return e.Cause
}

// ErrorBody is the JSON document sent to the client for failed requests.
type ErrorBody struct {
	Error string `json:"error"`
}

func BadRequestError(message string, cause error) error {
	return &Error{
		Message:    message,
		Cause:      cause,
		StatusCode: http.StatusBadRequest,
	}
}
