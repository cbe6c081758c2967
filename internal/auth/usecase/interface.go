// Package usecase defines business logic interfaces for identity and token
// operations.
package usecase

import (
	"context"

	"github.com/google/uuid"

	authDomain "github.com/allisson/guardpost/internal/auth/domain"
)

// IdentityRepository defines persistence operations for stored identities.
// Implementations must support transaction-aware operations via context
// propagation.
type IdentityRepository interface {
	// Create stores a new identity. Returns ErrIdentityAlreadyExists when the
	// username is taken.
	Create(ctx context.Context, identity *authDomain.StoredIdentity) error

	// Update modifies an existing identity.
	Update(ctx context.Context, identity *authDomain.StoredIdentity) error

	// GetByID retrieves an identity by ID. Returns ErrIdentityNotFound if not found.
	GetByID(ctx context.Context, identityID uuid.UUID) (*authDomain.StoredIdentity, error)

	// GetByUsername retrieves an identity by username. Returns
	// ErrIdentityNotFound if not found.
	GetByUsername(ctx context.Context, username string) (*authDomain.StoredIdentity, error)

	// List retrieves identities ordered by username with pagination support.
	List(ctx context.Context, offset, limit int) ([]*authDomain.StoredIdentity, error)
}

// IdentityUseCase defines business logic operations for managing stored
// identities: provisioning, lookup, and lifecycle.
type IdentityUseCase interface {
	// Create provisions a new identity. The raw secret is hashed with
	// Argon2id before storage and never persisted or logged. When the input
	// carries no secret, a cryptographically secure one is generated and
	// returned exactly once in the output.
	//
	// Returns ErrIdentityAlreadyExists when the username is taken.
	Create(
		ctx context.Context,
		createIdentityInput *authDomain.CreateIdentityInput,
	) (*authDomain.CreateIdentityOutput, error)

	// Get retrieves an identity by ID. The returned identity carries the
	// secret hash, never the raw secret.
	//
	// Returns ErrIdentityNotFound if the identity doesn't exist.
	Get(ctx context.Context, identityID uuid.UUID) (*authDomain.StoredIdentity, error)

	// List retrieves identities ordered by username with pagination support.
	List(ctx context.Context, offset, limit int) ([]*authDomain.StoredIdentity, error)

	// Update modifies an identity's display name, claims, and active status.
	// Username and secret are immutable.
	//
	// Returns ErrIdentityNotFound if the identity doesn't exist.
	Update(ctx context.Context, identityID uuid.UUID, updateIdentityInput *authDomain.UpdateIdentityInput) error

	// Delete performs a soft delete by setting IsActive to false, preventing
	// authentication while preserving the record. The identity can be
	// reactivated via Update.
	//
	// Returns ErrIdentityNotFound if the identity doesn't exist.
	Delete(ctx context.Context, identityID uuid.UUID) error
}

// TokenUseCase defines the login operation: exchanging a username/password
// pair for a signed bearer token.
type TokenUseCase interface {
	// Issue authenticates the credentials and returns a signed bearer token
	// carrying the identity's claims. Returns ErrInvalidCredentials for
	// unknown usernames, wrong passwords, and inactive identities alike so
	// responses never reveal which part failed.
	Issue(
		ctx context.Context,
		issueTokenInput *authDomain.IssueTokenInput,
	) (*authDomain.IssueTokenOutput, error)
}
