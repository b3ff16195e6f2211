package application

import (
	"errors"
	"strings"
)

// Error kinds. Handlers map these to HTTP statuses.
var (
	ErrBadRequest   = errors.New("bad request")
	ErrUnauthorized = errors.New("unauthorized")
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
)

// appError is a client-facing message classified under one of the kinds above.
type appError struct {
	kind error
	msg  string
}

func (e *appError) Error() string { return e.msg }
func (e *appError) Unwrap() error { return e.kind }

func newError(kind error, msg string) error { return &appError{kind: kind, msg: msg} }

var (
	ErrInvalidCredentials = newError(ErrUnauthorized, "Invalid credentials.")
	ErrInvalidSession     = newError(ErrUnauthorized, "Invalid or expired session.")
	ErrInvalidGoogleToken = newError(ErrUnauthorized, "Invalid Google credential.")

	ErrUserExists  = newError(ErrConflict, "User already exists.")
	ErrEmailTaken  = newError(ErrConflict, "Email already in use.")
	ErrDuplicateCV = newError(ErrConflict, "A candidate with this email already exists.")

	ErrInvalidToken       = newError(ErrBadRequest, "Invalid or expired token.")
	ErrTokenUsed          = newError(ErrBadRequest, "Token has already been used.")
	ErrInvalidOTP         = newError(ErrBadRequest, "Invalid OTP.")
	ErrPasswordAlreadySet = newError(ErrBadRequest, "Password is already set for this account.")
	ErrNotHired           = newError(ErrBadRequest, "Candidate must be Hired to create an offer")
	ErrNothingToUpdate    = newError(ErrBadRequest, "Nothing to update.")
	ErrUnparseableResume  = newError(ErrBadRequest, "Could not parse the resume.")
	ErrRefEmailRequired   = newError(ErrBadRequest, "Reference email is required")

	ErrUserNotFound       = newError(ErrNotFound, "User not found")
	ErrCandidateNotFound  = newError(ErrNotFound, "Candidate not found")
	ErrInterviewNotFound  = newError(ErrNotFound, "Interview not found")
	ErrAssessmentNotFound = newError(ErrNotFound, "Assessment not found")
	ErrLetterNotFound     = newError(ErrNotFound, "Letter not found")
	ErrOfferNotFound      = newError(ErrNotFound, "Offer not found")
	ErrTemplateNotFound   = newError(ErrNotFound, "Template not found")
)

// ValidationError reports input that passed binding but breaks a business rule.
type ValidationError struct {
	Message string
	Fields  map[string]string
}

func (e *ValidationError) Error() string { return e.Message }
func (e *ValidationError) Unwrap() error { return ErrBadRequest }

func missingFields(prefix string, missing []string) *ValidationError {
	fields := make(map[string]string, len(missing))
	for _, f := range missing {
		fields[f] = "is required"
	}
	return &ValidationError{Message: prefix + strings.Join(missing, ", "), Fields: fields}
}

// UpstreamError wraps a failure of an external dependency the request cannot proceed without.
type UpstreamError struct {
	Message string
	Err     error
}

func (e *UpstreamError) Error() string { return e.Message + ": " + e.Err.Error() }
func (e *UpstreamError) Unwrap() error { return e.Err }
