package csvimport

import (
	"errors"
	"fmt"
	"strings"
)

// Row-level error codes surfaced in import reports
const (
	ErrCodeRequiredField   = "ERR_IMPORT_REQUIRED_FIELD"
	ErrCodeInvalidType     = "ERR_IMPORT_INVALID_TYPE"
	ErrCodeInvalidLength   = "ERR_IMPORT_INVALID_LENGTH"
	ErrCodeInvalidRange    = "ERR_IMPORT_INVALID_RANGE"
	ErrCodeDuplicateInFile = "ERR_IMPORT_DUPLICATE_IN_FILE"
	ErrCodeRowRejected     = "ERR_IMPORT_ROW_REJECTED"
)

// File-level errors
var (
	ErrEmptyFile       = errors.New("CSV file is empty")
	ErrInvalidEncoding = errors.New("CSV file is not valid UTF-8")
	ErrMissingHeader   = errors.New("CSV file missing header row")
	ErrNoDataRows      = errors.New("CSV file contains no data rows")
)

// RowError pins a validation failure to a row and column of the upload
type RowError struct {
	Row     int    `json:"row"`
	Column  string `json:"column,omitempty"`
	Code    string `json:"code"`
	Message string `json:"message"`
	Value   string `json:"value,omitempty"`
}

// Error implements the error interface
func (e RowError) Error() string {
	if e.Column != "" {
		return fmt.Sprintf("row %d, column '%s': %s", e.Row, e.Column, e.Message)
	}
	return fmt.Sprintf("row %d: %s", e.Row, e.Message)
}

// ErrorCollection accumulates row errors up to a cap. The total count keeps
// climbing past the cap so reports can say how many errors were dropped.
type ErrorCollection struct {
	errors    []RowError
	maxErrors int
	total     int
}

// NewErrorCollection creates an ErrorCollection retaining at most maxErrors
func NewErrorCollection(maxErrors int) *ErrorCollection {
	if maxErrors <= 0 {
		maxErrors = 100
	}
	return &ErrorCollection{
		errors:    make([]RowError, 0, maxErrors),
		maxErrors: maxErrors,
	}
}

// Add records a row error
func (ec *ErrorCollection) Add(err RowError) {
	ec.total++
	if len(ec.errors) < ec.maxErrors {
		ec.errors = append(ec.errors, err)
	}
}

// AddRequired records a missing required field
func (ec *ErrorCollection) AddRequired(row int, column string) {
	ec.Add(RowError{
		Row:     row,
		Column:  column,
		Code:    ErrCodeRequiredField,
		Message: fmt.Sprintf("field '%s' is required", column),
	})
}

// AddType records a value that failed to parse as the expected type
func (ec *ErrorCollection) AddType(row int, column, expected, value string) {
	ec.Add(RowError{
		Row:     row,
		Column:  column,
		Code:    ErrCodeInvalidType,
		Message: fmt.Sprintf("expected %s", expected),
		Value:   value,
	})
}

// AddLength records a value outside its length bounds
func (ec *ErrorCollection) AddLength(row int, column string, minLen, maxLen int) {
	msg := fmt.Sprintf("length must be between %d and %d", minLen, maxLen)
	switch {
	case minLen == 0:
		msg = fmt.Sprintf("length must be at most %d", maxLen)
	case maxLen == 0:
		msg = fmt.Sprintf("length must be at least %d", minLen)
	}
	ec.Add(RowError{Row: row, Column: column, Code: ErrCodeInvalidLength, Message: msg})
}

// AddRange records a numeric value outside its bounds
func (ec *ErrorCollection) AddRange(row int, column, bounds, value string) {
	ec.Add(RowError{
		Row:     row,
		Column:  column,
		Code:    ErrCodeInvalidRange,
		Message: fmt.Sprintf("value must be %s", bounds),
		Value:   value,
	})
}

// AddDuplicate records a value already seen earlier in the same file
func (ec *ErrorCollection) AddDuplicate(row int, column, value string, firstRow int) {
	ec.Add(RowError{
		Row:     row,
		Column:  column,
		Code:    ErrCodeDuplicateInFile,
		Message: fmt.Sprintf("duplicate value '%s' (first seen in row %d)", value, firstRow),
		Value:   value,
	})
}

// AddRejected records a row the persistence layer refused
func (ec *ErrorCollection) AddRejected(row int, message string) {
	ec.Add(RowError{Row: row, Code: ErrCodeRowRejected, Message: message})
}

// Errors returns the retained errors
func (ec *ErrorCollection) Errors() []RowError {
	return ec.errors
}

// TotalCount returns the total number of errors including dropped ones
func (ec *ErrorCollection) TotalCount() int {
	return ec.total
}

// HasErrors reports whether any error was recorded
func (ec *ErrorCollection) HasErrors() bool {
	return ec.total > 0
}

// IsTruncated reports whether errors were dropped by the cap
func (ec *ErrorCollection) IsTruncated() bool {
	return ec.total > ec.maxErrors
}

// String renders the collection for logs
func (ec *ErrorCollection) String() string {
	if !ec.HasErrors() {
		return "no errors"
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "%d error(s) found", ec.total)
	if ec.IsTruncated() {
		fmt.Fprintf(&sb, " (showing first %d)", ec.maxErrors)
	}
	sb.WriteString(":\n")
	for _, err := range ec.errors {
		fmt.Fprintf(&sb, "  - %s\n", err.Error())
	}
	return sb.String()
}

// Report summarizes one import attempt. Imported is zero on a dry run or
// when validation failed, since imports are all-or-nothing.
type Report struct {
	TotalRows   int        `json:"total_rows"`
	Imported    int        `json:"imported"`
	ErrorRows   int        `json:"error_rows"`
	DryRun      bool       `json:"dry_run"`
	Errors      []RowError `json:"errors,omitempty"`
	TotalErrors int        `json:"total_errors,omitempty"`
	Truncated   bool       `json:"truncated,omitempty"`
}

// SetErrors copies an ErrorCollection into the report
func (r *Report) SetErrors(ec *ErrorCollection) {
	r.Errors = ec.Errors()
	r.TotalErrors = ec.TotalCount()
	r.Truncated = ec.IsTruncated()
}

// OK reports whether every row passed validation
func (r *Report) OK() bool {
	return r.TotalErrors == 0
}
