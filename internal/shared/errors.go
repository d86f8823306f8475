package shared

import "fmt"

var (
	// Configuration errors
	ErrMissingConfig = fmt.Errorf("configuration not found")
	ErrInvalidConfig = fmt.Errorf("invalid configuration")

	// Storage errors
	ErrNotFound       = fmt.Errorf("not found")
	ErrAlreadyDeleted = fmt.Errorf("already deleted")
	ErrNotLinked      = fmt.Errorf("not linked")
	ErrUnknownKind    = fmt.Errorf("unknown entity kind")

	// Input validation errors
	ErrInvalidInput    = fmt.Errorf("invalid input")
	ErrNotJSON         = fmt.Errorf("not a JSON object")
	ErrBodyTooLarge    = fmt.Errorf("request body too large")
	ErrMissingField    = fmt.Errorf("missing required field")
	ErrMissingArgument = fmt.Errorf("missing required argument")
	ErrInvalidArgument = fmt.Errorf("invalid argument")

	// Service errors
	ErrAPIRequest         = fmt.Errorf("API request failed")
	ErrServiceUnavailable = fmt.Errorf("service unavailable")
)
