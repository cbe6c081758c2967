package usecase

import (
	"context"
	"errors"

	authDomain "github.com/allisson/guardpost/internal/auth/domain"
	"github.com/allisson/guardpost/internal/auth/scheme"
	authService "github.com/allisson/guardpost/internal/auth/service"
)

// credentialStore adapts the identity repository and secret service to the
// lookup/verify pair the authentication schemes consume.
type credentialStore struct {
	identityRepo  IdentityRepository
	secretService authService.SecretService
	dummyHash     string
}

// Lookup returns the stored identity for a username. An unknown username
// still pays for one Argon2id comparison against a throwaway hash so the miss
// path's timing stays close to a real verification.
func (c *credentialStore) Lookup(ctx context.Context, username string) (*authDomain.StoredIdentity, error) {
	identity, err := c.identityRepo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, authDomain.ErrIdentityNotFound) {
			c.secretService.CompareSecret("throwaway-comparison-secret", c.dummyHash)
		}
		return nil, err
	}
	return identity, nil
}

// VerifySecret compares a presented secret against the identity's stored
// Argon2id hash.
func (c *credentialStore) VerifySecret(identity *authDomain.StoredIdentity, presented string) bool {
	return c.secretService.CompareSecret(presented, identity.SecretHash)
}

// NewCredentialStore creates a credential store over the identity repository.
// A throwaway hash is computed once at construction for timing equalization
// on unknown usernames.
func NewCredentialStore(
	identityRepo IdentityRepository,
	secretService authService.SecretService,
) (scheme.CredentialStore, error) {
	dummyHash, err := secretService.HashSecret("throwaway-comparison-secret")
	if err != nil {
		return nil, err
	}

	return &credentialStore{
		identityRepo:  identityRepo,
		secretService: secretService,
		dummyHash:     dummyHash,
	}, nil
}
