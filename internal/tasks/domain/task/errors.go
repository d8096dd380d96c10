package task

// ValidationError is returned when task input is malformed.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

var (
	ErrTextRequired    = &ValidationError{Reason: "text required"}
	ErrTextEmpty       = &ValidationError{Reason: "text empty"}
	ErrInvalidPriority = &ValidationError{Reason: "invalid priority"}
	ErrMissingID       = &ValidationError{Reason: "id required"}
	ErrTextUntrimmed   = &ValidationError{Reason: "text not trimmed"}
	ErrMissingCreated  = &ValidationError{Reason: "creation time required"}
)
