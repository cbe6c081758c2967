// Package scheme implements the pluggable authentication schemes (basic,
// api-key, bearer) and the guard that composes them.
//
// Each scheme is a Verifier with an extract/verify pair. Adding a scheme means
// adding a new Verifier implementation, not subclassing anything. Verifiers
// hold only read-only state and are safe for arbitrary concurrent use.
package scheme

import (
	"context"
	"net/http"

	authDomain "github.com/allisson/guardpost/internal/auth/domain"
)

// Verifier is one authentication scheme. Extract pulls the scheme's raw
// credential out of the request headers without touching any secret store;
// Verify turns an extracted credential into an authenticated principal.
type Verifier interface {
	// Name identifies the scheme for logging and configuration ("basic",
	// "apikey", "bearer").
	Name() string

	// Extract returns the scheme's credential from the headers. It fails with
	// ErrMissingCredential when the scheme's header is absent or addressed to
	// a different scheme, and with ErrMalformedCredential when the header is
	// present for this scheme but unparseable.
	Extract(headers http.Header) (authDomain.Credential, error)

	// Verify resolves a credential into a Principal, or returns one of the
	// domain authentication failures. Identity-lookup failures are collapsed
	// into ErrInvalidCredentials before they leave this method.
	Verify(ctx context.Context, credential authDomain.Credential) (*authDomain.Principal, error)

	// Challenge is the value the HTTP layer mirrors into WWW-Authenticate
	// when this scheme rejects a request.
	Challenge() string
}

// CredentialStore holds known principals and their verifiable secrets.
// Implementations are read-only for this package and must be safe for
// concurrent use; lookups are expected to hit fast local or cached state.
type CredentialStore interface {
	// Lookup returns the stored identity for a username, or
	// ErrIdentityNotFound.
	Lookup(ctx context.Context, username string) (*authDomain.StoredIdentity, error)

	// VerifySecret compares a presented secret against the identity's stored
	// hash. The comparison is constant-time and never touches plaintext
	// secrets at rest.
	VerifySecret(identity *authDomain.StoredIdentity, presented string) bool
}

// cloneClaims copies a claim map so principals never alias store-owned state.
func cloneClaims(claims map[string]string) map[string]string {
	if claims == nil {
		return nil
	}
	out := make(map[string]string, len(claims))
	for k, v := range claims {
		out[k] = v
	}
	return out
}
