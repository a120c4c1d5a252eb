package creditimport

import (
	"fmt"
	"net/http"
)

// UnauthorizedError is returned when the caller is missing or on no
// authorizing committee. Nothing has been read or written when it is returned.
type UnauthorizedError struct {
	Reason string
}

func (e *UnauthorizedError) Error() string { return e.Reason }

// Status is the HTTP status for this error.
func (e *UnauthorizedError) Status() int { return http.StatusUnauthorized }

// MalformedSubmissionError is returned when the submitted form does not have
// the expected shape. Form echoes what was submitted for re-rendering.
type MalformedSubmissionError struct {
	Reason string
	Form   Form
}

func (e *MalformedSubmissionError) Error() string {
	return fmt.Sprintf("malformed submission: %s", e.Reason)
}

// Status is the HTTP status for this error.
func (e *MalformedSubmissionError) Status() int { return http.StatusBadRequest }
