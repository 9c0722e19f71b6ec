package errors

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"runtime/debug"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/go-sql-driver/mysql"
)

type ErrorType string

const (
	ErrNotFound       ErrorType = "ENTRY_NOT_FOUND_ERROR"
	ErrValidation     ErrorType = "VALIDATION_ERROR"
	ErrEntryExists    ErrorType = "ENTRY_EXISTS_ERROR"
	ErrAuthorization  ErrorType = "AUTHORIZATION_ERROR"
	ErrExpiredToken   ErrorType = "EXPIRED_TOKEN_ERROR"
	ErrAuthentication ErrorType = "AUTHENTICATION_ERROR"
	ErrInvalidToken   ErrorType = "INVALID_TOKEN_ERROR"
	ErrPermission     ErrorType = "PERMISSION_ERROR"
	ErrFatal          ErrorType = "FATAL_ERROR"
)

// FieldViolation reports a single offending field. A validation response
// carries every violation found, not just the first.
type FieldViolation struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

type AppError struct {
	Code       int              `json:"-"`
	Type       ErrorType        `json:"type"`
	Message    string           `json:"message"`
	Violations []FieldViolation `json:"violations,omitempty"`
	// Internal carries the underlying failure for logs; it is never
	// serialized to clients.
	Internal string `json:"-"`
}

func (a AppError) Error() string {
	return fmt.Sprintf("%s: %s", a.Type, a.Message)
}

func (a AppError) Serialize(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(a.Code)
	if err := json.NewEncoder(w).Encode(a); err != nil {
		panic(a)
	}
}

func Is(err, target error) bool {
	return errors.Is(err, target)
}

// mysqlDuplicateEntry is the server error number raised when a write trips
// a unique index.
const mysqlDuplicateEntry = 1062

// HandleDataDBError maps store-level failures onto the error taxonomy:
// missing rows become not-found, unique-index trips become entry-exists
// carrying the colliding field, anything else is fatal.
func HandleDataDBError(err error) AppError {
	if Is(err, sql.ErrNoRows) {
		return NewNotFoundError("resource not found")
	}
	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) && myErr.Number == mysqlDuplicateEntry {
		field := "username"
		if strings.Contains(myErr.Message, "iban") {
			field = "iban"
		}
		return NewEntryExistsError(field)
	}
	return NewFatalError(err)
}

func HandleBindError(err error) AppError {
	if errors.As(err, &AppError{}) {
		return AsAppError(err)
	}

	if v, ok := err.(validator.ValidationErrors); ok {
		violations := make([]FieldViolation, 0, len(v))
		for _, f := range v {
			var reason string
			switch f.ActualTag() {
			case "required":
				reason = "is required"
			case "min":
				reason = fmt.Sprintf("must be at least %s characters long", f.Param())
			case "oneof":
				reason = fmt.Sprintf("must be one of values: (%s)", f.Param())
			case "email":
				reason = "must be a valid email address"
			case "lte":
				reason = fmt.Sprintf("must be less than or equal to %s", f.Param())
			default:
				reason = fmt.Sprintf("failed condition: %s", f.ActualTag())
				if f.Param() != "" {
					reason += fmt.Sprintf(" { %s }", f.Param())
				}
			}
			violations = append(violations, FieldViolation{Field: f.Field(), Reason: reason})
		}

		vErr := NewViolationsError(violations)
		vErr.Internal = err.Error()
		return vErr
	}
	if Is(err, io.EOF) {
		return NewValidationError("No request body")
	}

	vErr := NewValidationError("invalid request received")
	vErr.Internal = err.Error()

	return vErr
}

func NewValidationError(msg string) AppError {
	return AppError{
		Code:    http.StatusBadRequest,
		Type:    ErrValidation,
		Message: msg,
	}
}

func NewViolationsError(violations []FieldViolation) AppError {
	return AppError{
		Code:       http.StatusBadRequest,
		Type:       ErrValidation,
		Message:    "validation failed",
		Violations: violations,
	}
}

func NewEntryExistsError(field string) AppError {
	return AppError{
		Code:       http.StatusBadRequest,
		Type:       ErrEntryExists,
		Message:    fmt.Sprintf("%s is already in use", field),
		Violations: []FieldViolation{{Field: field, Reason: "is already in use"}},
	}
}

func NewWeakCredentialError() AppError {
	return AppError{
		Code:       http.StatusBadRequest,
		Type:       ErrValidation,
		Message:    "password must not be empty",
		Violations: []FieldViolation{{Field: "password", Reason: "must not be empty"}},
	}
}

func NewNotFoundError(msg string) AppError {
	return AppError{
		Code:    http.StatusNotFound,
		Type:    ErrNotFound,
		Message: msg,
	}
}

func NewPermissionError(msg string) AppError {
	return AppError{
		Code:    http.StatusForbidden,
		Type:    ErrPermission,
		Message: msg,
	}
}

func NewAuthenticationError(msg string) AppError {
	return AppError{
		Code:    http.StatusUnauthorized,
		Type:    ErrAuthentication,
		Message: msg,
	}
}

func NewInvalidTokenError() AppError {
	return AppError{
		Code:    http.StatusUnauthorized,
		Type:    ErrInvalidToken,
		Message: "Invalid token",
	}
}

func NewExpiredTokenError() AppError {
	return AppError{
		Code:    http.StatusUnauthorized,
		Type:    ErrExpiredToken,
		Message: "Token has expired",
	}
}

func NewFatalError(err error) AppError {
	debug.PrintStack()
	return AppError{
		Code:     http.StatusInternalServerError,
		Type:     ErrFatal,
		Message:  "Oops! something happened on our end.",
		Internal: err.Error(),
	}
}

func NewUnknownError(err any) AppError {
	return NewFatalError(fmt.Errorf("%v", err))
}

func AsAppError(err error) AppError {
	apperr := new(AppError)
	if errors.As(err, apperr) {
		return *apperr
	}
	return NewFatalError(err)
}
