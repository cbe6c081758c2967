package domain

import (
	"fmt"

	"github.com/allisson/guardpost/internal/errors"
)

// Authentication and authorization failures. Client-input failures
// (missing/malformed) indicate a client bug and may be logged verbosely;
// identity failures are collapsed into ErrInvalidCredentials so the outward
// message never reveals whether the username or the secret was wrong.
var (
	// ErrMissingCredential indicates no credential was presented for the scheme.
	ErrMissingCredential = errors.Wrap(errors.ErrUnauthorized, "missing credential")

	// ErrMalformedCredential indicates a credential was presented but could not
	// be parsed (wrong prefix, invalid base64, missing separator).
	ErrMalformedCredential = errors.Wrap(errors.ErrBadRequest, "malformed credential")

	// ErrInvalidCredentials is the unified failure for unknown principals and
	// wrong secrets. Callers must not be able to tell the two apart.
	ErrInvalidCredentials = errors.Wrap(errors.ErrUnauthorized, "invalid credentials")

	// ErrTokenExpired indicates a bearer token whose lifetime has elapsed.
	ErrTokenExpired = errors.Wrap(errors.ErrUnauthorized, "token expired")

	// ErrTokenTampered indicates a bearer token whose signature does not match
	// its contents.
	ErrTokenTampered = errors.Wrap(errors.ErrUnauthorized, "token tampered")

	// ErrIdentityNotFound indicates an identity with the specified username was
	// not found. Internal only; verifiers map it to ErrInvalidCredentials.
	ErrIdentityNotFound = errors.Wrap(errors.ErrNotFound, "identity not found")

	// ErrIdentityAlreadyExists indicates an identity with the same username
	// already exists in the store.
	ErrIdentityAlreadyExists = errors.Wrap(errors.ErrConflict, "identity already exists")
)

// ForbiddenError is returned when an authenticated principal is not allowed
// to perform an operation. It wraps errors.ErrForbidden so handlers map it to
// a 403 without leaking anything beyond the operation name.
type ForbiddenError struct {
	Operation string
}

// Error implements the error interface.
func (e *ForbiddenError) Error() string {
	return fmt.Sprintf("operation %q is not allowed: %s", e.Operation, errors.ErrForbidden)
}

// Unwrap exposes errors.ErrForbidden for errors.Is checks.
func (e *ForbiddenError) Unwrap() error {
	return errors.ErrForbidden
}

// NewForbiddenError creates a ForbiddenError for the given operation.
func NewForbiddenError(operation string) error {
	return &ForbiddenError{Operation: operation}
}
