package types

import "fmt"

// ErrorCode represents a specific error type
type ErrorCode string

const (
	// User input errors
	ErrInvalidArgument ErrorCode = "INVALID_ARGUMENT"
	ErrUnknownOption   ErrorCode = "UNKNOWN_OPTION"
	ErrUserNotFound    ErrorCode = "USER_NOT_FOUND"
	ErrChannelNotFound ErrorCode = "CHANNEL_NOT_FOUND"

	// Policy denials (normal control flow, never logged as system errors)
	ErrPermissionDenied  ErrorCode = "PERMISSION_DENIED"
	ErrChannelRestricted ErrorCode = "CHANNEL_RESTRICTED"
	ErrOnCooldown        ErrorCode = "ON_COOLDOWN"

	// Economy errors
	ErrInsufficientFunds ErrorCode = "INSUFFICIENT_FUNDS"

	// System errors
	ErrInternalError ErrorCode = "INTERNAL_ERROR"
	ErrExternalError ErrorCode = "EXTERNAL_ERROR"
	ErrDatabaseError ErrorCode = "DATABASE_ERROR"
	ErrRateLimited   ErrorCode = "RATE_LIMITED"
)

// CommandError represents a command-related error
type CommandError struct {
	Code    ErrorCode
	Message string
	Err     error // Underlying error, if any
}

// Error implements the error interface
func (e *CommandError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying error
func (e *CommandError) Unwrap() error {
	return e.Err
}

// NewCommandError creates a new CommandError
func NewCommandError(code ErrorCode, message string) *CommandError {
	return &CommandError{
		Code:    code,
		Message: message,
	}
}

// WrapError wraps an existing error in a CommandError
func WrapError(code ErrorCode, message string, err error) *CommandError {
	return &CommandError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// IsCommandError checks if an error is a CommandError and has a specific code
func IsCommandError(err error, code ErrorCode) bool {
	var cmdErr *CommandError
	if err == nil {
		return false
	}
	if ok := As(err, &cmdErr); !ok {
		return false
	}
	return cmdErr.Code == code
}

// IsUserFacing reports whether the error's Message was written for the user
// and is safe to reply inline. External-dependency failures qualify (their
// messages say "try again later") but are still logged as faults.
func IsUserFacing(err error) bool {
	var cmdErr *CommandError
	if !As(err, &cmdErr) {
		return false
	}
	switch cmdErr.Code {
	case ErrInvalidArgument, ErrUnknownOption, ErrUserNotFound, ErrChannelNotFound,
		ErrPermissionDenied, ErrChannelRestricted, ErrOnCooldown, ErrInsufficientFunds,
		ErrExternalError:
		return true
	}
	return false
}

// As is a helper function to safely type assert an error to a CommandError
func As(err error, target **CommandError) bool {
	if target == nil {
		return false
	}
	if cmdErr, ok := err.(*CommandError); ok {
		*target = cmdErr
		return true
	}
	return false
}
