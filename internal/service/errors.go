package service

import (
	"errors"
	"fmt"
)

// ErrEmptyReply is returned when the backend answers 2xx without any text.
var ErrEmptyReply = errors.New("No recommendations found")

// DefaultFailureMessage is used when a failed response carries no error text.
const DefaultFailureMessage = "Failed to get response"

// ServiceError is a non-2xx answer from the chat endpoint.
type ServiceError struct {
	StatusCode int
	Message    string
}

func (e *ServiceError) Error() string {
	return e.Message
}

func (e *ServiceError) String() string {
	return fmt.Sprintf("chat service returned %d: %s", e.StatusCode, e.Message)
}
