package field

import "errors"

var (
	// ErrInvalidConfiguration is returned when the controller is configured
	// with fewer than one decimal point.
	ErrInvalidConfiguration = errors.New("invalid configuration")

	// ErrInvalidInput is returned when a negative value is set.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNumericParse is returned when the displayed text is not a number.
	// The controller never writes such text itself.
	ErrNumericParse = errors.New("numeric parse failure")
)
