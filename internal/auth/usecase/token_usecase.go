// Package usecase implements business logic orchestration for identity and
// token operations.
package usecase

import (
	"context"
	"errors"

	authDomain "github.com/allisson/guardpost/internal/auth/domain"
	authService "github.com/allisson/guardpost/internal/auth/service"
	"github.com/allisson/guardpost/internal/config"
)

// tokenUseCase implements TokenUseCase for the password login flow.
type tokenUseCase struct {
	config        *config.Config
	identityRepo  IdentityRepository
	secretService authService.SecretService
	tokenCodec    authService.TokenCodec
	dummyHash     string
}

// Issue authenticates a username/password pair and mints a signed bearer
// token.
//
// Security notes:
//   - Returns ErrInvalidCredentials for unknown usernames, wrong passwords,
//     and inactive identities alike to prevent user enumeration
//   - An unknown username still pays for one Argon2id comparison against a
//     throwaway hash, keeping the miss path's timing close to the hit path's
//   - The token carries the identity's claims as captured at login; later
//     claim changes don't affect already-issued tokens
func (t *tokenUseCase) Issue(
	ctx context.Context,
	issueTokenInput *authDomain.IssueTokenInput,
) (*authDomain.IssueTokenOutput, error) {
	identity, err := t.identityRepo.GetByUsername(ctx, issueTokenInput.Username)
	if err != nil {
		if errors.Is(err, authDomain.ErrIdentityNotFound) {
			t.secretService.CompareSecret(issueTokenInput.Password, t.dummyHash)
			return nil, authDomain.ErrInvalidCredentials
		}
		return nil, err
	}

	if !t.secretService.CompareSecret(issueTokenInput.Password, identity.SecretHash) {
		return nil, authDomain.ErrInvalidCredentials
	}

	if !identity.IsActive {
		return nil, authDomain.ErrInvalidCredentials
	}

	tokenString, token, err := t.tokenCodec.Issue(
		identity.Username,
		identity.Claims,
		t.config.AuthTokenTTL,
	)
	if err != nil {
		return nil, err
	}

	return &authDomain.IssueTokenOutput{
		Token:     tokenString,
		ExpiresAt: token.ExpiresAt,
	}, nil
}

// NewTokenUseCase creates a new TokenUseCase with the provided dependencies.
// A throwaway hash is computed once at construction for timing equalization
// on unknown usernames.
func NewTokenUseCase(
	config *config.Config,
	identityRepo IdentityRepository,
	secretService authService.SecretService,
	tokenCodec authService.TokenCodec,
) (TokenUseCase, error) {
	dummyHash, err := secretService.HashSecret("throwaway-comparison-secret")
	if err != nil {
		return nil, err
	}

	return &tokenUseCase{
		config:        config,
		identityRepo:  identityRepo,
		secretService: secretService,
		tokenCodec:    tokenCodec,
		dummyHash:     dummyHash,
	}, nil
}
