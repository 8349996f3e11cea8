package errs

import (
	"errors"
	"fmt"
)

// Common sentinel errors.
var (
	ErrNotFound = errors.New("not found")
	ErrConflict = errors.New("data conflict")
)

// Business-rule outcomes. All of these are expected results of an
// operation, recovered locally and reported to the caller; none of
// them is a fault.
var (
	ErrInvalidAmount       = errors.New("invalid amount")
	ErrInsufficientBalance = errors.New("insufficient balance")
	ErrLimitExceeded       = errors.New("limit exceeded")
	ErrDuplicateCustomer   = errors.New("customer already registered")
	ErrCustomerNotFound    = errors.New("customer not found")
	ErrAccountNotFound     = errors.New("account not found")
	ErrMalformedInput      = errors.New("malformed input")
)

// Type just for marshalling purpose.
// Should only be used immediately before marshalling.
type JSON struct {
	Error string `json:"error"`
}

// Let users know which required request parameter is not provided.
type RequiredJSONBodyParamError struct {
	ParamName string
}

func (e *RequiredJSONBodyParamError) Error() string {
	return fmt.Sprintf("JSON body argument %q is required, but not found", e.ParamName)
}

// Is reports the typed error as ErrMalformedInput for errors.Is chains.
func (e *RequiredJSONBodyParamError) Is(target error) bool {
	return target == ErrMalformedInput
}
