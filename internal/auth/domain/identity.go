package domain

import (
	"time"

	"github.com/google/uuid"
)

// StoredIdentity is a credential-store entry for one principal. Only the
// Argon2id hash of the secret is kept; the raw secret is never stored,
// logged, or echoed in any response.
type StoredIdentity struct {
	ID          uuid.UUID
	Username    string // Unique across the store
	DisplayName string
	SecretHash  string            //nolint:gosec // hashed secret (not plaintext)
	Claims      map[string]string // Role and permissions used for authorization
	IsActive    bool              // Whether the identity can authenticate
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// CreateIdentityInput contains the parameters for provisioning a new identity.
type CreateIdentityInput struct {
	Username    string
	DisplayName string
	Secret      string // Raw secret, hashed before storage and discarded
	Claims      map[string]string
	IsActive    bool
}

// CreateIdentityOutput contains the result of provisioning an identity.
// PlainSecret is set only when the secret was generated server-side; it is
// returned exactly once and never stored.
type CreateIdentityOutput struct {
	Identity    *StoredIdentity
	PlainSecret string
}

// UpdateIdentityInput contains the mutable fields of an identity. Username
// and secret are immutable after provisioning.
type UpdateIdentityInput struct {
	DisplayName string
	Claims      map[string]string
	IsActive    bool
}

// IssueTokenInput contains the credentials presented to the login endpoint.
type IssueTokenInput struct {
	Username string
	Password string
}

// IssueTokenOutput contains the result of a successful login.
type IssueTokenOutput struct {
	Token     string // Serialized bearer token (opaque to clients)
	ExpiresAt time.Time
}
