package application

import "fmt"

// ConnectionError is a transport-level failure reaching the annotation
// host. It is fatal: the run aborts after flushing identity map progress.
type ConnectionError struct {
	Endpoint string
	Err      error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("cannot reach annotation host %s: %v", e.Endpoint, e.Err)
}

func (e *ConnectionError) Unwrap() error {
	return e.Err
}

// APIError is a per-request failure reported by the annotation host. During
// the reconciliation loop it is isolated to the record that triggered it.
type APIError struct {
	Operation string
	Status    int
	Body      string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s failed with status %d: %s", e.Operation, e.Status, e.Body)
}

// ValidationError represents a precondition failure before any mutation
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}
