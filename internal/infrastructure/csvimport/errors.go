package csvimport

import (
	"errors"
	"fmt"
)

// Row error codes
const (
	CodeMalformedRow    = "MALFORMED_ROW"
	CodeRequiredField   = "REQUIRED_FIELD"
	CodeDuplicateInFile = "DUPLICATE_IN_FILE"
)

var (
	ErrEmptyFile       = errors.New("CSV file is empty")
	ErrInvalidEncoding = errors.New("CSV file encoding is not supported")
	ErrMissingHeader   = errors.New("CSV file has no header row")
	ErrNoDataRows      = errors.New("CSV file has no data rows")
	ErrTooManyRows     = errors.New("CSV file has too many rows")
)

// RowError is a problem with one row of the file. Row is the 1-based line
// number, the header being line 1.
type RowError struct {
	Row     int    `json:"row"`
	Column  string `json:"column,omitempty"`
	Code    string `json:"code"`
	Message string `json:"message"`
	Value   string `json:"value,omitempty"`
}

func (e *RowError) Error() string {
	if e.Column != "" {
		return fmt.Sprintf("row %d, column %q: %s", e.Row, e.Column, e.Message)
	}
	return fmt.Sprintf("row %d: %s", e.Row, e.Message)
}

// ErrorList collects row errors up to a limit
type ErrorList struct {
	limit  int
	errors []RowError
	total  int
}

// NewErrorList keeps at most limit errors. A limit of 0 keeps all.
func NewErrorList(limit int) *ErrorList {
	return &ErrorList{limit: limit}
}

// Add records an error
func (l *ErrorList) Add(e RowError) {
	l.total++
	if l.limit > 0 && len(l.errors) >= l.limit {
		return
	}
	l.errors = append(l.errors, e)
}

// Errors returns the kept errors
func (l *ErrorList) Errors() []RowError {
	return l.errors
}

// Total is the number of errors added, kept or not
func (l *ErrorList) Total() int {
	return l.total
}

// Truncated reports whether errors were dropped
func (l *ErrorList) Truncated() bool {
	return l.total > len(l.errors)
}
