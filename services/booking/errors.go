package booking

import "fmt"

// ServiceError carries a machine-readable code so handlers can map
// failures onto HTTP statuses without string matching.
type ServiceError struct {
	Code    string
	Message string
	Fields  map[string]string
}

func (e *ServiceError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

const (
	CodeValidation  = "validationError"
	CodeConflict    = "slotUnavailable"
	CodeNotFound    = "notFound"
	CodeBlocked     = "blocked"
	CodePersistence = "persistenceError"
)

func NewValidationError(fields map[string]string) error {
	return &ServiceError{Code: CodeValidation, Message: "Validation failed", Fields: fields}
}

func NewConflictError(msg string) error {
	return &ServiceError{Code: CodeConflict, Message: msg}
}

func NewNotFoundError(msg string) error {
	return &ServiceError{Code: CodeNotFound, Message: msg}
}

func NewBlockedError() error {
	return &ServiceError{Code: CodeBlocked, Message: "Blocked"}
}

func NewPersistenceError(err error) error {
	return &ServiceError{Code: CodePersistence, Message: err.Error()}
}
