package domain

import (
	"errors"
	"fmt"
)

// ErrInvalidRequest covers every rejected calculation: unknown method,
// missing units of production figures, life below one year and out of
// range amounts. Test for it with errors.Is.
var ErrInvalidRequest = errors.New("invalid depreciation request")

// InvalidRequestMessage is what users see for any invalid request.
const InvalidRequestMessage = "Invalid inputs. Please check your entries."

// InvalidRequestError names the offending field for logs. It is never shown
// to users.
type InvalidRequestError struct {
	Field  string
	Reason string
}

func (e *InvalidRequestError) Error() string {
	return fmt.Sprintf("%s: %s: %s", ErrInvalidRequest, e.Field, e.Reason)
}

func (e *InvalidRequestError) Unwrap() error {
	return ErrInvalidRequest
}

func Invalid(field, reason string) error {
	return &InvalidRequestError{Field: field, Reason: reason}
}

func IsInvalidRequest(err error) bool {
	return errors.Is(err, ErrInvalidRequest)
}
