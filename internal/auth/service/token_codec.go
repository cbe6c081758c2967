package service

import (
	"crypto/sha256"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/hkdf"

	authDomain "github.com/allisson/guardpost/internal/auth/domain"
	apperrors "github.com/allisson/guardpost/internal/errors"
)

// signingKeyInfo versions the HKDF derivation so a future algorithm change
// cannot collide with keys derived for the current scheme.
const signingKeyInfo = "bearer-token-signing-v1"

// tokenClaims is the JWT payload: registered claims plus the principal's
// authorization claims under "cla".
type tokenClaims struct {
	Claims map[string]string `json:"cla,omitempty"`
	jwt.RegisteredClaims
}

// jwtTokenCodec implements TokenCodec with HMAC-SHA256 signed JWTs.
// The signing key is derived once at construction and read-only afterwards,
// so Issue and Parse are safe for concurrent use without locking.
type jwtTokenCodec struct {
	signingKey []byte
	keyID      string
	now        func() time.Time
}

// TokenCodecOption customizes a TokenCodec.
type TokenCodecOption func(*jwtTokenCodec)

// WithClock overrides the codec's time source. Used by tests to pin issuance
// and verification instants.
func WithClock(now func() time.Time) TokenCodecOption {
	return func(c *jwtTokenCodec) {
		c.now = now
	}
}

// NewTokenCodec creates a TokenCodec signing with HMAC-SHA256. The signing key
// is derived from secret via HKDF-SHA256 (separating token-signing usage from
// any other use of the same secret). keyID is embedded in the token header as
// "kid" so key rotation can be added without breaking the wire format.
//
// An empty secret is a configuration error and fails construction; it is
// never handled per-request.
func NewTokenCodec(secret, keyID string, opts ...TokenCodecOption) (TokenCodec, error) {
	if secret == "" {
		return nil, apperrors.New("token signing secret must not be empty")
	}
	if keyID == "" {
		return nil, apperrors.New("token signing key id must not be empty")
	}

	signingKey, err := deriveSigningKey([]byte(secret))
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to derive signing key")
	}

	codec := &jwtTokenCodec{
		signingKey: signingKey,
		keyID:      keyID,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(codec)
	}

	return codec, nil
}

// deriveSigningKey uses HKDF-SHA256 to derive a 32-byte signing key from the
// configured secret.
func deriveSigningKey(secret []byte) ([]byte, error) {
	reader := hkdf.New(sha256.New, secret, nil, []byte(signingKeyInfo))

	signingKey := make([]byte, 32)
	if _, err := io.ReadFull(reader, signingKey); err != nil {
		return nil, err
	}

	return signingKey, nil
}

// Issue creates and signs a token for the subject. Timestamps are truncated
// to whole seconds so the serialized claims carry integer epoch seconds.
func (c *jwtTokenCodec) Issue(
	subject string,
	claims map[string]string,
	ttl time.Duration,
) (string, *authDomain.Token, error) {
	if subject == "" {
		return "", nil, apperrors.New("token subject must not be empty")
	}
	if ttl <= 0 {
		return "", nil, apperrors.New("token ttl must be positive")
	}

	issuedAt := c.now().UTC().Truncate(time.Second)
	expiresAt := issuedAt.Add(ttl)

	jwtToken := jwt.NewWithClaims(jwt.SigningMethodHS256, tokenClaims{
		Claims: claims,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	})
	jwtToken.Header["kid"] = c.keyID

	signed, err := jwtToken.SignedString(c.signingKey)
	if err != nil {
		return "", nil, apperrors.Wrap(err, "failed to sign token")
	}

	token := &authDomain.Token{
		Subject:   subject,
		Claims:    claims,
		IssuedAt:  issuedAt,
		ExpiresAt: expiresAt,
	}

	return signed, token, nil
}

// Parse verifies and decodes a token string. Signature verification happens
// before any claim is trusted; the underlying library compares HMACs with
// hmac.Equal, so the comparison never short-circuits on the first differing
// byte. A token is expired when now >= expiresAt.
func (c *jwtTokenCodec) Parse(tokenString string) (*authDomain.Token, error) {
	// Strict decoding rejects base64url segments with set padding bits, so a
	// mutated trailing character cannot decode to the same bytes and slip
	// past signature verification.
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(c.now),
		jwt.WithExpirationRequired(),
		jwt.WithStrictDecoding(),
	)

	parsed, err := parser.ParseWithClaims(tokenString, &tokenClaims{}, func(t *jwt.Token) (any, error) {
		if kid, ok := t.Header["kid"].(string); !ok || kid != c.keyID {
			return nil, fmt.Errorf("unknown signing key id %v", t.Header["kid"])
		}
		return c.signingKey, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, authDomain.ErrTokenExpired
		}
		// Anything else (bad signature, truncated payload, wrong algorithm,
		// unknown kid) means the token cannot be trusted.
		return nil, authDomain.ErrTokenTampered
	}

	claims, ok := parsed.Claims.(*tokenClaims)
	if !ok || claims.Subject == "" || claims.IssuedAt == nil || claims.ExpiresAt == nil {
		return nil, authDomain.ErrTokenTampered
	}

	// The parser already enforces expiry; this guards the exact boundary
	// (now == expiresAt is expired) independent of library leeway defaults.
	if !c.now().UTC().Before(claims.ExpiresAt.Time) {
		return nil, authDomain.ErrTokenExpired
	}

	return &authDomain.Token{
		Subject:   claims.Subject,
		Claims:    claims.Claims,
		IssuedAt:  claims.IssuedAt.Time.UTC(),
		ExpiresAt: claims.ExpiresAt.Time.UTC(),
	}, nil
}
