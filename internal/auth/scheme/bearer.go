package scheme

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	authDomain "github.com/allisson/guardpost/internal/auth/domain"
	authService "github.com/allisson/guardpost/internal/auth/service"
	apperrors "github.com/allisson/guardpost/internal/errors"
)

// bearerVerifier implements Bearer token authentication. Token verification is
// fully delegated to the codec; this verifier only handles header parsing and
// principal construction.
type bearerVerifier struct {
	codec  authService.TokenCodec
	logger *slog.Logger
}

// NewBearerVerifier creates a Bearer scheme verifier backed by the given token
// codec.
func NewBearerVerifier(codec authService.TokenCodec, logger *slog.Logger) Verifier {
	return &bearerVerifier{
		codec:  codec,
		logger: logger,
	}
}

// Name implements Verifier.
func (v *bearerVerifier) Name() string {
	return "bearer"
}

// Challenge implements Verifier.
func (v *bearerVerifier) Challenge() string {
	return "Bearer"
}

// Extract parses an "Authorization: Bearer <token>" header (case-insensitive
// "bearer"). Absent headers and other schemes' prefixes yield
// ErrMissingCredential; a Bearer prefix with an empty token is
// ErrMalformedCredential.
func (v *bearerVerifier) Extract(headers http.Header) (authDomain.Credential, error) {
	authHeader := headers.Get("Authorization")
	if authHeader == "" {
		return authDomain.Credential{}, authDomain.ErrMissingCredential
	}

	const bearerPrefix = "bearer "
	if len(authHeader) < len(bearerPrefix) ||
		!strings.EqualFold(authHeader[:len(bearerPrefix)], bearerPrefix) {
		return authDomain.Credential{}, authDomain.ErrMissingCredential
	}

	token := authHeader[len(bearerPrefix):]
	if token == "" {
		return authDomain.Credential{}, apperrors.Wrap(authDomain.ErrMalformedCredential, "empty bearer token")
	}

	return authDomain.NewBearerCredential(token), nil
}

// Verify parses and validates the token, then maps its claims onto a
// Principal. Expired and tampered tokens keep their distinct failure reasons
// so the HTTP layer can report them separately.
func (v *bearerVerifier) Verify(_ context.Context, credential authDomain.Credential) (*authDomain.Principal, error) {
	token, err := v.codec.Parse(credential.Value)
	if err != nil {
		switch {
		case errors.Is(err, authDomain.ErrTokenExpired):
			v.logger.Debug("bearer authentication failed: token expired")
		case errors.Is(err, authDomain.ErrTokenTampered):
			v.logger.Debug("bearer authentication failed: token verification failed")
		default:
			v.logger.Debug("bearer authentication failed",
				slog.String("error", err.Error()))
		}
		return nil, err
	}

	v.logger.Debug("bearer authentication successful",
		slog.String("subject", token.Subject))

	return token.Principal(), nil
}
