package dispatch

import (
	"errors"
	"fmt"
)

// Error codes surfaced by dispatch operations.
const (
	CodeNotFound          = "notFound"
	CodeInvalidTransition = "invalidTransition"
	CodeAlreadyAssigned   = "alreadyAssigned"
	CodeStoreUnavailable  = "storeUnavailable"
)

type DispatchError struct {
	Code    string
	Message string
}

func (e *DispatchError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func NewNotFoundError(requestID string) error {
	return &DispatchError{
		Code:    CodeNotFound,
		Message: fmt.Sprintf("service request %s not found", requestID),
	}
}

func NewInvalidTransitionError(msg string) error {
	return &DispatchError{
		Code:    CodeInvalidTransition,
		Message: msg,
	}
}

// NewAlreadyAssignedError is returned to the loser of a concurrent acceptance race.
func NewAlreadyAssignedError(requestID string) error {
	return &DispatchError{
		Code:    CodeAlreadyAssigned,
		Message: fmt.Sprintf("request %s has already been assigned", requestID),
	}
}

func NewStoreUnavailableError(err error) error {
	return &DispatchError{
		Code:    CodeStoreUnavailable,
		Message: err.Error(),
	}
}

// HasCode reports whether err is a DispatchError with the given code.
func HasCode(err error, code string) bool {
	var de *DispatchError
	if errors.As(err, &de) {
		return de.Code == code
	}
	return false
}
