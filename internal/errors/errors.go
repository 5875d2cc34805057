// Package errors provides the application error type for the Altrion API.
// Services return AppErrors so handlers can answer with a stable code and a
// client-safe message while the wrapped cause is only logged.
package errors

import "net/http"

// AppError is an application error with a machine-readable code, a message
// for clients, the HTTP status to answer with, and an optional cause.
type AppError struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	StatusCode int    `json:"-"`
	Internal   error  `json:"-"`
}

// Error implements the error interface.
func (e *AppError) Error() string { return e.Message }

// Unwrap returns the internal error for use with errors.Is/As.
func (e *AppError) Unwrap() error { return e.Internal }

// Is matches AppErrors by code so wrapped copies compare equal to their sentinel.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	return ok && t.Code == e.Code
}

// Wrap copies sentinel and attaches internal as the cause.
func Wrap(sentinel *AppError, internal error) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    sentinel.Message,
		StatusCode: sentinel.StatusCode,
		Internal:   internal,
	}
}

// WithMessage copies sentinel with a custom client message.
func WithMessage(sentinel *AppError, message string) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    message,
		StatusCode: sentinel.StatusCode,
		Internal:   sentinel.Internal,
	}
}

// Authentication & authorization errors.
var (
	ErrUnauthorized       = &AppError{Code: "UNAUTHORIZED", Message: "Authentication required", StatusCode: http.StatusUnauthorized}
	ErrInvalidCredentials = &AppError{Code: "INVALID_CREDENTIALS", Message: "Invalid email or password", StatusCode: http.StatusUnauthorized}
	ErrInvalidToken       = &AppError{Code: "INVALID_TOKEN", Message: "Invalid or expired token", StatusCode: http.StatusUnauthorized}
	ErrForbidden          = &AppError{Code: "FORBIDDEN", Message: "Access denied", StatusCode: http.StatusForbidden}
	ErrAccountLocked      = &AppError{Code: "ACCOUNT_LOCKED", Message: "Account is temporarily locked", StatusCode: http.StatusLocked}
	ErrOAuthDisabled      = &AppError{Code: "OAUTH_PROVIDER_DISABLED", Message: "This sign-in provider is not configured", StatusCode: http.StatusNotFound}
	ErrOAuthFailed        = &AppError{Code: "OAUTH_FAILED", Message: "OAuth sign-in failed", StatusCode: http.StatusUnauthorized}
)

// General errors.
var (
	ErrInvalidInput   = &AppError{Code: "INVALID_INPUT", Message: "Invalid input", StatusCode: http.StatusBadRequest}
	ErrNotFound       = &AppError{Code: "NOT_FOUND", Message: "Resource not found", StatusCode: http.StatusNotFound}
	ErrInternalServer = &AppError{Code: "INTERNAL_ERROR", Message: "An internal error occurred", StatusCode: http.StatusInternalServerError}
)

// User errors.
var (
	ErrUserNotFound   = &AppError{Code: "USER_NOT_FOUND", Message: "User not found", StatusCode: http.StatusNotFound}
	ErrDuplicateEmail = &AppError{Code: "DUPLICATE_EMAIL", Message: "A user with this email already exists", StatusCode: http.StatusConflict}
)

// Holding & collateral errors.
var (
	ErrHoldingNotFound   = &AppError{Code: "HOLDING_NOT_FOUND", Message: "Holding not found", StatusCode: http.StatusNotFound}
	ErrAssetNotSelected  = &AppError{Code: "ASSET_NOT_SELECTED", Message: "Asset is not selected as collateral", StatusCode: http.StatusBadRequest}
	ErrEmptyCollateral   = &AppError{Code: "EMPTY_COLLATERAL", Message: "Select at least one asset as collateral", StatusCode: http.StatusBadRequest}
	ErrLoanAmountTooHigh = &AppError{Code: "LOAN_AMOUNT_EXCEEDS_MAX", Message: "Requested amount exceeds the maximum loan amount", StatusCode: http.StatusBadRequest}
)

// Loan application errors.
var (
	ErrLoanNotFound            = &AppError{Code: "LOAN_NOT_FOUND", Message: "Loan application not found", StatusCode: http.StatusNotFound}
	ErrLoanNotCancellable      = &AppError{Code: "LOAN_NOT_CANCELLABLE", Message: "Only pending applications can be cancelled", StatusCode: http.StatusConflict}
	ErrInvalidLoanStatus       = &AppError{Code: "INVALID_LOAN_STATUS", Message: "Unknown loan status", StatusCode: http.StatusBadRequest}
	ErrInvalidStatusTransition = &AppError{Code: "INVALID_STATUS_TRANSITION", Message: "Status transition is not allowed", StatusCode: http.StatusConflict}
	ErrInvalidScheduleInput    = &AppError{Code: "INVALID_SCHEDULE_INPUT", Message: "Invalid amortization parameters", StatusCode: http.StatusBadRequest}
)

// Connection errors.
var (
	ErrUnknownPlatform         = &AppError{Code: "UNKNOWN_PLATFORM", Message: "Unknown platform", StatusCode: http.StatusBadRequest}
	ErrConnectionSessionAbsent = &AppError{Code: "CONNECTION_SESSION_NOT_FOUND", Message: "No connection session in progress", StatusCode: http.StatusNotFound}
	ErrConnectionNotRetryable  = &AppError{Code: "CONNECTION_NOT_RETRYABLE", Message: "Only failed connections can be retried", StatusCode: http.StatusConflict}
	ErrConnectionNotPending    = &AppError{Code: "CONNECTION_NOT_PENDING", Message: "Connection has already been initiated", StatusCode: http.StatusConflict}
	ErrConnectionInProgress    = &AppError{Code: "CONNECTION_IN_PROGRESS", Message: "A connection session is still running", StatusCode: http.StatusConflict}
)
