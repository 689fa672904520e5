package shared

// DomainError is an error with a stable code the HTTP layer maps to a
// status. Services return these for expected failures, anything else is
// treated as a 500.
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError builds a DomainError with the given code and message
func NewDomainError(code, message string) *DomainError {
	return &DomainError{Code: code, Message: message}
}

// Errors shared across bounded contexts. Context-specific conditions
// (an occupied unit, an overpaid invoice) live here too so handlers can
// match them with errors.Is.
var (
	ErrNotFound            = NewDomainError("NOT_FOUND", "Resource not found")
	ErrAlreadyExists       = NewDomainError("ALREADY_EXISTS", "Resource already exists")
	ErrInvalidInput        = NewDomainError("INVALID_INPUT", "Invalid input provided")
	ErrConcurrencyConflict = NewDomainError("CONCURRENCY_CONFLICT", "Resource was modified by another process")
	ErrInvalidState        = NewDomainError("INVALID_STATE", "Operation not allowed in current state")
	ErrUnitOccupied        = NewDomainError("UNIT_OCCUPIED", "Unit already has an active lease")
	ErrOverpayment         = NewDomainError("EXCEEDS_REMAINING", "Payment amount exceeds the remaining balance")
)
