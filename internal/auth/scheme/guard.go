package scheme

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	authDomain "github.com/allisson/guardpost/internal/auth/domain"
	apperrors "github.com/allisson/guardpost/internal/errors"
	"github.com/allisson/guardpost/internal/metrics"
)

// Guard runs an ordered list of scheme verifiers against a request. Schemes
// whose credential is simply absent are skipped; the first scheme that
// authenticates wins. When no scheme succeeds, the guard reports the last
// specific failure (malformed header, bad secret, expired token) so callers
// see why the credential they actually presented was rejected, and falls back
// to ErrMissingCredential when no scheme saw a credential at all.
//
// The guard holds only its verifier list after construction and is safe for
// concurrent use across requests.
type Guard struct {
	verifiers   []Verifier
	authMetrics metrics.AuthMetrics
	logger      *slog.Logger
}

// NewGuard creates a Guard over the given verifiers. Order matters: the first
// verifier whose credential extracts and verifies wins, and the first
// verifier's challenge is the one advertised on unauthenticated responses.
func NewGuard(logger *slog.Logger, authMetrics metrics.AuthMetrics, verifiers ...Verifier) (*Guard, error) {
	if len(verifiers) == 0 {
		return nil, apperrors.New("guard requires at least one scheme verifier")
	}

	return &Guard{
		verifiers:   verifiers,
		authMetrics: authMetrics,
		logger:      logger,
	}, nil
}

// Authenticate resolves the request headers into an authenticated Principal,
// or returns a domain authentication failure.
func (g *Guard) Authenticate(ctx context.Context, headers http.Header) (*authDomain.Principal, error) {
	var lastErr error
	lastScheme := g.verifiers[0].Name()

	for _, verifier := range g.verifiers {
		credential, err := verifier.Extract(headers)
		if err != nil {
			if !errors.Is(err, authDomain.ErrMissingCredential) {
				lastErr = err
				lastScheme = verifier.Name()
			}
			continue
		}

		principal, err := verifier.Verify(ctx, credential)
		if err != nil {
			lastErr = err
			lastScheme = verifier.Name()
			continue
		}

		g.authMetrics.RecordAuthentication(ctx, verifier.Name(), "success")
		g.logger.Debug("authentication successful",
			slog.String("scheme", verifier.Name()),
			slog.String("principal_id", principal.ID))
		return principal, nil
	}

	if lastErr == nil {
		lastErr = authDomain.ErrMissingCredential
	}

	g.authMetrics.RecordAuthentication(ctx, lastScheme, failureOutcome(lastErr))
	return nil, lastErr
}

// failureOutcome maps an authentication failure to a bounded metric label.
func failureOutcome(err error) string {
	switch {
	case errors.Is(err, authDomain.ErrTokenExpired):
		return "token_expired"
	case errors.Is(err, authDomain.ErrTokenTampered):
		return "token_tampered"
	case errors.Is(err, authDomain.ErrInvalidCredentials):
		return "invalid_credentials"
	case errors.Is(err, authDomain.ErrMalformedCredential):
		return "malformed_credential"
	case errors.Is(err, authDomain.ErrMissingCredential):
		return "missing_credential"
	default:
		return "error"
	}
}

// Challenge returns the WWW-Authenticate value to advertise when a request
// carries no usable credential: the first configured scheme's challenge.
func (g *Guard) Challenge() string {
	return g.verifiers[0].Challenge()
}
