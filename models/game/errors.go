package game

// Error taxonomy shared by every service. All failures reaching the dispatch
// boundary are one of these three and get converted into a non-fatal `error`
// emit to the originating client.

// ValidationError: malformed or out-of-range input.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// NotFoundError: room or player missing.
type NotFoundError struct {
	Message string
}

func (e *NotFoundError) Error() string { return e.Message }

// ConflictError: full room, already started, illegal move under current state.
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string { return e.Message }

func NewValidationError(msg string) error { return &ValidationError{Message: msg} }
func NewNotFoundError(msg string) error   { return &NotFoundError{Message: msg} }
func NewConflictError(msg string) error   { return &ConflictError{Message: msg} }
