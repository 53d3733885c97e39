package usecase

import (
	"errors"

	"food-delivery/internal/data/repository"
	"food-delivery/pkg/utils"
)

// Errors returned by the services. The HTTP adaptor maps each one to a
// status code; the message is what the client sees.
var (
	ErrInvalidCredentials    = errors.New("invalid credentials")
	ErrAccountDeactivated    = errors.New("account has been deactivated, please contact support")
	ErrAccountNotFound       = errors.New("customer not found")
	ErrAddressNotFound       = errors.New("address not found")
	ErrAlreadyVerified       = errors.New("email already verified")
	ErrInvalidOrExpiredOTP   = errors.New("invalid or expired OTP")
	ErrInvalidOrExpiredToken = errors.New("invalid or expired token")
	ErrInvalidToken          = errors.New("invalid token")
	ErrExpiredToken          = errors.New("token has expired")
	ErrIncorrectPassword     = errors.New("current password is incorrect")
	ErrForbidden             = errors.New("admin privileges required")
	ErrConcurrentUpdate      = errors.New("account was modified by another request, please retry")
)

const staleRetries = 3

// withRetry reruns a read-modify-write whose save lost a race. fn must
// re-read the customer on every call.
func withRetry(fn func() error) error {
	for i := 0; i < staleRetries; i++ {
		if err := fn(); !errors.Is(err, repository.ErrStaleCustomer) {
			return err
		}
	}
	return ErrConcurrentUpdate
}

// ValidationError carries field-level messages from request validation.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return "validation failed"
	}
	return "validation failed: " + utils.FormatValidationErrors(e.Fields)
}

func NewValidationError(fields map[string]string) *ValidationError {
	return &ValidationError{Fields: fields}
}

// DuplicateIdentityError is re-exported so callers outside the data layer
// only depend on usecase.
type DuplicateIdentityError = repository.DuplicateIdentityError

// DuplicateMessage is the client-facing text for a collided identity field.
func DuplicateMessage(err *DuplicateIdentityError) string {
	if err.Field == "phone" {
		return "Phone number already registered"
	}
	return "Email already registered"
}
