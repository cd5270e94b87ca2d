package apperrors

import "errors"

// --- Standard Error Definitions ---

// These sentinel errors define the application-level error conditions the HTTP
// layer knows how to map to status codes. They are wrapped with fmt.Errorf and
// %w at the point of failure and checked with errors.Is at the boundary.
var (
	// ErrValidation indicates failure during input validation.
	ErrValidation = errors.New("validation failed")
	// ErrNotFound indicates a requested resource was not found.
	ErrNotFound = errors.New("resource not found")
	// ErrDuplicate indicates a conflict due to duplicate data (e.g., unique constraint).
	ErrDuplicate = errors.New("duplicate resource")
	// ErrBadRequest indicates a malformed or invalid request from the client/caller.
	ErrBadRequest = errors.New("bad request")
	// ErrDatabase indicates a general database interaction error.
	ErrDatabase = errors.New("database error")
	// ErrMail indicates a mail transport or delivery error.
	ErrMail = errors.New("mail delivery error")
)

// --- Specific Standard Error Checkers ---

// IsValidationError checks if the error is or wraps ErrValidation.
func IsValidationError(err error) bool {
	return errors.Is(err, ErrValidation)
}

// IsNotFoundError checks if the error is or wraps ErrNotFound.
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsDuplicateError checks if the error is or wraps ErrDuplicate.
func IsDuplicateError(err error) bool {
	return errors.Is(err, ErrDuplicate)
}

// IsBadRequestError checks if the error is or wraps ErrBadRequest.
func IsBadRequestError(err error) bool {
	return errors.Is(err, ErrBadRequest)
}

// IsDatabaseError checks if the error is or wraps ErrDatabase.
func IsDatabaseError(err error) bool {
	return errors.Is(err, ErrDatabase)
}

// IsMailError checks if the error is or wraps ErrMail.
func IsMailError(err error) bool {
	return errors.Is(err, ErrMail)
}
