package ledger

import (
	"errors"
)

var (
	ErrInvalidNumber = errors.New("the value is not a valid number")
	ErrNegativeValue = errors.New("the value must be greater than or equal to 0")
	ErrOutOfRange    = errors.New("the allocation must be less than or equal to 1")
	ErrInvalidIndex  = errors.New("there is no allocation cell at the specified position")
	ErrTooManyMonths = errors.New("a year has 12 months, more values were specified")
)

// IsValidationError reports if err is one of the errors returned for
// a rejected edit.
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidNumber) ||
		errors.Is(err, ErrNegativeValue) ||
		errors.Is(err, ErrOutOfRange) ||
		errors.Is(err, ErrInvalidIndex) ||
		errors.Is(err, ErrTooManyMonths)
}
