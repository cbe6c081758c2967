package scheme

import (
	"context"
	"crypto/sha256"
	"crypto/subtle"
	"log/slog"
	"net/http"
	"strings"

	authDomain "github.com/allisson/guardpost/internal/auth/domain"
	apperrors "github.com/allisson/guardpost/internal/errors"
)

// APIKeyHeader is the request header carrying the service api key.
const APIKeyHeader = "X-API-Key"

// apiKeyVerifier implements a single shared-key scheme for trusted service
// callers. The configured key is hashed once at construction; Verify compares
// SHA-256 digests so the comparison is constant-time regardless of where the
// presented key diverges.
type apiKeyVerifier struct {
	keyDigest [sha256.Size]byte
	logger    *slog.Logger
}

// NewAPIKeyVerifier creates an api-key verifier for the configured service
// key. An empty key is a configuration error: the scheme must be left out of
// the guard instead of running with a guessable empty credential.
func NewAPIKeyVerifier(key string, logger *slog.Logger) (Verifier, error) {
	if key == "" {
		return nil, apperrors.New("api key must not be empty")
	}

	return &apiKeyVerifier{
		keyDigest: sha256.Sum256([]byte(key)),
		logger:    logger,
	}, nil
}

// Name implements Verifier.
func (v *apiKeyVerifier) Name() string {
	return "apikey"
}

// Challenge implements Verifier.
func (v *apiKeyVerifier) Challenge() string {
	return "APIKey"
}

// Extract reads the X-API-Key header. A blank (whitespace-only) value counts
// as malformed rather than missing so the caller gets a clear error instead
// of a silent fall-through.
func (v *apiKeyVerifier) Extract(headers http.Header) (authDomain.Credential, error) {
	value := headers.Get(APIKeyHeader)
	if value == "" {
		return authDomain.Credential{}, authDomain.ErrMissingCredential
	}
	if strings.TrimSpace(value) == "" {
		return authDomain.Credential{}, apperrors.Wrap(authDomain.ErrMalformedCredential, "blank api key")
	}

	return authDomain.NewAPIKeyCredential(value), nil
}

// Verify compares the presented key against the configured one in constant
// time and mints a fixed service principal on match.
func (v *apiKeyVerifier) Verify(_ context.Context, credential authDomain.Credential) (*authDomain.Principal, error) {
	presentedDigest := sha256.Sum256([]byte(credential.Value))

	if subtle.ConstantTimeCompare(presentedDigest[:], v.keyDigest[:]) != 1 {
		v.logger.Debug("api key authentication failed: key mismatch")
		return nil, authDomain.ErrInvalidCredentials
	}

	v.logger.Debug("api key authentication successful")

	return &authDomain.Principal{
		ID:          "service",
		DisplayName: "Service API Key",
		Claims: map[string]string{
			authDomain.RoleClaim: authDomain.ServiceRole,
		},
	}, nil
}
