package commonerrors

import (
	"errors"
	"fmt"
	"net/http"
)

type ErrorCategory string

const (
	CategoryValidation   ErrorCategory = "VALIDATION"
	CategoryNotFound     ErrorCategory = "NOT_FOUND"
	CategoryConflict     ErrorCategory = "CONFLICT"
	CategoryUnauthorized ErrorCategory = "UNAUTHORIZED"
	CategoryInternal     ErrorCategory = "INTERNAL"
)

// DomainError carries the stable machine-readable code that crosses the HTTP
// boundary. Anything that is not a DomainError renders as a 500.
type DomainError interface {
	error
	Code() string
	Category() ErrorCategory
	HTTPStatus() int
	Message() string
	Unwrap() error
	WithCause(cause error) DomainError
}

type domainError struct {
	code     string
	category ErrorCategory
	status   int
	message  string
	cause    error
}

func (e *domainError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.message, e.cause)
	}
	return e.message
}

func (e *domainError) Code() string {
	return e.code
}

func (e *domainError) Category() ErrorCategory {
	return e.category
}

func (e *domainError) HTTPStatus() int {
	return e.status
}

func (e *domainError) Message() string {
	return e.message
}

func (e *domainError) Unwrap() error {
	return e.cause
}

func (e *domainError) WithCause(cause error) DomainError {
	return &domainError{
		code:     e.code,
		category: e.category,
		status:   e.status,
		message:  e.message,
		cause:    cause,
	}
}

// Is makes two domain errors match on code, so errors.Is works across
// WithCause copies.
func (e *domainError) Is(target error) bool {
	var de *domainError
	if errors.As(target, &de) {
		return de.code == e.code
	}
	return false
}

func NewDomainError(code string, category ErrorCategory, status int, message string) DomainError {
	return &domainError{
		code:     code,
		category: category,
		status:   status,
		message:  message,
	}
}

func AsDomainError(err error) (DomainError, bool) {
	var de DomainError
	if errors.As(err, &de) {
		return de, true
	}
	return nil, false
}

var (
	ErrPasswordRequired = NewDomainError(
		"account/password_required",
		CategoryValidation,
		http.StatusBadRequest,
		"password is required",
	)

	ErrDuplicateUsername = NewDomainError(
		"account/duplicate",
		CategoryConflict,
		http.StatusConflict,
		"username already exists",
	)

	ErrUnknownAccount = NewDomainError(
		"account/unknown_account",
		CategoryValidation,
		http.StatusBadRequest,
		"account does not exist",
	)

	ErrIncorrectCredentials = NewDomainError(
		"auth/incorrect_credentials",
		CategoryValidation,
		http.StatusBadRequest,
		"incorrect username or password",
	)

	ErrTokenRequired = NewDomainError(
		"auth/token_required",
		CategoryUnauthorized,
		http.StatusUnauthorized,
		"authentication token required",
	)

	ErrInvalidToken = NewDomainError(
		"auth/invalid_token",
		CategoryUnauthorized,
		http.StatusUnauthorized,
		"token is not valid",
	)

	ErrMalformedTweet = NewDomainError(
		"tweets/malformed_request",
		CategoryValidation,
		http.StatusBadRequest,
		"tweets must have an author and a message between 1 and 240 characters",
	)

	ErrTweetNotFound = NewDomainError(
		"tweets/not_found",
		CategoryNotFound,
		http.StatusNotFound,
		"tweet not found",
	)

	ErrInvalidJSON = NewDomainError(
		"request/invalid_json",
		CategoryValidation,
		http.StatusBadRequest,
		"invalid json body",
	)

	ErrMethodNotAllowed = NewDomainError(
		"request/method_not_allowed",
		CategoryValidation,
		http.StatusMethodNotAllowed,
		"method not allowed",
	)

	ErrInternal = NewDomainError(
		"internal/error",
		CategoryInternal,
		http.StatusInternalServerError,
		"internal server error",
	)
)
