package scheme

import (
	"context"
	"encoding/base64"
	"log/slog"
	"net/http"
	"strings"

	authDomain "github.com/allisson/guardpost/internal/auth/domain"
	apperrors "github.com/allisson/guardpost/internal/errors"
)

// basicVerifier implements HTTP Basic authentication backed by a
// CredentialStore.
type basicVerifier struct {
	store  CredentialStore
	logger *slog.Logger
}

// NewBasicVerifier creates a Basic scheme verifier that resolves credentials
// against the given store.
func NewBasicVerifier(store CredentialStore, logger *slog.Logger) Verifier {
	return &basicVerifier{
		store:  store,
		logger: logger,
	}
}

// Name implements Verifier.
func (v *basicVerifier) Name() string {
	return "basic"
}

// Challenge implements Verifier.
func (v *basicVerifier) Challenge() string {
	return `Basic realm="guardpost"`
}

// Extract parses an "Authorization: Basic <base64(user:pass)>" header.
//
// An absent Authorization header, or one carrying another scheme's prefix,
// yields ErrMissingCredential so a multi-scheme guard can fall through to the
// scheme the caller actually used. A Basic-prefixed header that fails to
// decode, lacks the colon separator, or has an empty username is
// ErrMalformedCredential.
func (v *basicVerifier) Extract(headers http.Header) (authDomain.Credential, error) {
	authHeader := headers.Get("Authorization")
	if authHeader == "" {
		return authDomain.Credential{}, authDomain.ErrMissingCredential
	}

	const basicPrefix = "basic "
	if len(authHeader) < len(basicPrefix) ||
		!strings.EqualFold(authHeader[:len(basicPrefix)], basicPrefix) {
		return authDomain.Credential{}, authDomain.ErrMissingCredential
	}

	decoded, err := base64.StdEncoding.DecodeString(authHeader[len(basicPrefix):])
	if err != nil {
		return authDomain.Credential{}, apperrors.Wrap(authDomain.ErrMalformedCredential, "invalid base64 payload")
	}

	username, password, found := strings.Cut(string(decoded), ":")
	if !found {
		return authDomain.Credential{}, apperrors.Wrap(authDomain.ErrMalformedCredential, "missing colon separator")
	}
	if username == "" {
		return authDomain.Credential{}, apperrors.Wrap(authDomain.ErrMalformedCredential, "empty username")
	}

	return authDomain.NewBasicCredential(username, password), nil
}

// Verify resolves the username against the store and compares the presented
// password with the stored hash. Unknown principals and wrong passwords are
// logged with distinct reasons but both surface as ErrInvalidCredentials, so
// the response never reveals which part was wrong.
func (v *basicVerifier) Verify(ctx context.Context, credential authDomain.Credential) (*authDomain.Principal, error) {
	identity, err := v.store.Lookup(ctx, credential.Username)
	if err != nil {
		if apperrors.Is(err, authDomain.ErrIdentityNotFound) {
			v.logger.Debug("basic authentication failed: unknown principal",
				slog.String("username", credential.Username))
			return nil, authDomain.ErrInvalidCredentials
		}
		// A store outage is not a caller mistake; let it surface as a
		// server-side failure instead of a 401.
		v.logger.Error("basic authentication failed: credential store error",
			slog.String("username", credential.Username),
			slog.String("error", err.Error()))
		return nil, apperrors.Wrap(err, "failed to look up identity")
	}

	if !identity.IsActive {
		v.logger.Debug("basic authentication failed: inactive principal",
			slog.String("username", credential.Username))
		return nil, authDomain.ErrInvalidCredentials
	}

	if !v.store.VerifySecret(identity, credential.Password) {
		v.logger.Debug("basic authentication failed: secret mismatch",
			slog.String("username", credential.Username))
		return nil, authDomain.ErrInvalidCredentials
	}

	v.logger.Debug("basic authentication successful",
		slog.String("username", credential.Username))

	return &authDomain.Principal{
		ID:          identity.Username,
		DisplayName: identity.DisplayName,
		Claims:      cloneClaims(identity.Claims),
	}, nil
}
