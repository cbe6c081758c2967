package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	authDomain "github.com/allisson/guardpost/internal/auth/domain"
	authService "github.com/allisson/guardpost/internal/auth/service"
)

// identityUseCase implements IdentityUseCase for identity lifecycle
// management.
type identityUseCase struct {
	identityRepo  IdentityRepository
	secretService authService.SecretService
}

// Create provisions a new identity, hashing the raw secret with Argon2id
// before storage. When no secret is provided, a cryptographically secure one
// is generated; the caller is responsible for delivering it out of band (the
// create-identity command prints it once).
func (i *identityUseCase) Create(
	ctx context.Context,
	createIdentityInput *authDomain.CreateIdentityInput,
) (*authDomain.CreateIdentityOutput, error) {
	var plainSecret, secretHash string
	var err error

	if createIdentityInput.Secret == "" {
		plainSecret, secretHash, err = i.secretService.GenerateSecret()
	} else {
		secretHash, err = i.secretService.HashSecret(createIdentityInput.Secret)
	}
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	identity := &authDomain.StoredIdentity{
		ID:          uuid.Must(uuid.NewV7()),
		Username:    createIdentityInput.Username,
		DisplayName: createIdentityInput.DisplayName,
		SecretHash:  secretHash,
		Claims:      createIdentityInput.Claims,
		IsActive:    createIdentityInput.IsActive,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := i.identityRepo.Create(ctx, identity); err != nil {
		return nil, err
	}

	return &authDomain.CreateIdentityOutput{
		Identity:    identity,
		PlainSecret: plainSecret,
	}, nil
}

// Get retrieves an identity by ID.
func (i *identityUseCase) Get(
	ctx context.Context,
	identityID uuid.UUID,
) (*authDomain.StoredIdentity, error) {
	return i.identityRepo.GetByID(ctx, identityID)
}

// List retrieves identities ordered by username with pagination support.
func (i *identityUseCase) List(
	ctx context.Context,
	offset, limit int,
) ([]*authDomain.StoredIdentity, error) {
	return i.identityRepo.List(ctx, offset, limit)
}

// Update modifies an identity's display name, claims, and active status.
func (i *identityUseCase) Update(
	ctx context.Context,
	identityID uuid.UUID,
	updateIdentityInput *authDomain.UpdateIdentityInput,
) error {
	identity, err := i.identityRepo.GetByID(ctx, identityID)
	if err != nil {
		return err
	}

	identity.DisplayName = updateIdentityInput.DisplayName
	identity.Claims = updateIdentityInput.Claims
	identity.IsActive = updateIdentityInput.IsActive
	identity.UpdatedAt = time.Now().UTC()

	return i.identityRepo.Update(ctx, identity)
}

// Delete performs a soft delete by setting IsActive to false.
func (i *identityUseCase) Delete(ctx context.Context, identityID uuid.UUID) error {
	identity, err := i.identityRepo.GetByID(ctx, identityID)
	if err != nil {
		return err
	}

	identity.IsActive = false
	identity.UpdatedAt = time.Now().UTC()

	return i.identityRepo.Update(ctx, identity)
}

// NewIdentityUseCase creates a new IdentityUseCase with the provided
// dependencies.
func NewIdentityUseCase(
	identityRepo IdentityRepository,
	secretService authService.SecretService,
) IdentityUseCase {
	return &identityUseCase{
		identityRepo:  identityRepo,
		secretService: secretService,
	}
}
