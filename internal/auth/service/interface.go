// Package service provides technical services for authentication operations.
//
// This package implements reusable services for secret hashing and bearer
// token encoding using industry-standard cryptographic practices.
package service

import (
	"time"

	authDomain "github.com/allisson/guardpost/internal/auth/domain"
)

// SecretService defines operations for secret generation and validation.
// Implementations must use cryptographically secure random generation and
// industry-standard hashing algorithms (e.g., bcrypt, argon2).
type SecretService interface {
	// GenerateSecret creates a new cryptographically secure random secret.
	// Returns both the plain text secret (to be shared with the caller) and
	// the hashed version (to be stored).
	//
	// The plain secret should be treated as sensitive data and only displayed
	// once during provisioning.
	GenerateSecret() (plainSecret string, hashedSecret string, error error)

	// HashSecret hashes a plain text secret using a secure hashing algorithm.
	HashSecret(plainSecret string) (hashedSecret string, error error)

	// CompareSecret compares a plain text secret against a hashed secret.
	// Returns true if the plain secret matches the hash, false otherwise.
	// This is constant-time to prevent timing attacks.
	CompareSecret(plainSecret string, hashedSecret string) bool
}

// TokenCodec encodes and decodes signed, expiring bearer tokens. The codec is
// stateless apart from a read-only signing key, so it is safe for arbitrary
// concurrent use.
type TokenCodec interface {
	// Issue creates a signed token for the subject carrying the given claims,
	// expiring after ttl. Timestamps are stamped in whole UTC seconds. The
	// serialized form is opaque to clients but self-describes its algorithm
	// and key id so the signing key can be rotated later.
	Issue(subject string, claims map[string]string, ttl time.Duration) (string, *authDomain.Token, error)

	// Parse deserializes and verifies a token string. It returns
	// ErrTokenTampered when the signature does not match the claimed fields
	// and ErrTokenExpired when now >= expiry. Signature comparison is
	// constant-time.
	Parse(tokenString string) (*authDomain.Token, error)
}
