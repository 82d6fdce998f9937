package custom_err

import (
	"errors"
	"fmt"
)

var (
	// Storage errors
	ErrNotFound = errors.New("resource not found")
	ErrConflict = errors.New("resource already exists")
	ErrStorage  = errors.New("storage failure")

	// Validation errors
	ErrValidation      = errors.New("validation failed")
	ErrInvalidStatus   = fmt.Errorf("%w: invalid status", ErrValidation)
	ErrInvalidAmount   = fmt.Errorf("%w: invalid amount", ErrValidation)
	ErrInvalidPaging   = fmt.Errorf("%w: skip and limit must be non-negative", ErrValidation)
	ErrMissingPixParam = fmt.Errorf("%w: missing pix parameter", ErrValidation)

	// Conversion errors
	ErrUnsupportedPair = errors.New("unsupported currency pair")

	// Upstream errors
	ErrGateway = errors.New("upstream gateway failure")
)
