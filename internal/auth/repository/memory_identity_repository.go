package repository

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	authDomain "github.com/allisson/guardpost/internal/auth/domain"
)

// MemoryIdentityRepository implements identity persistence in memory. Useful
// for tests and single-process deployments that don't need a database. All
// methods are safe for concurrent use; reads take a shared lock so lookups on
// the hot authentication path don't serialize.
type MemoryIdentityRepository struct {
	mu         sync.RWMutex
	byID       map[uuid.UUID]*authDomain.StoredIdentity
	byUsername map[string]*authDomain.StoredIdentity
}

// Create inserts a new identity. Returns ErrIdentityAlreadyExists when the
// username is already taken.
func (r *MemoryIdentityRepository) Create(_ context.Context, identity *authDomain.StoredIdentity) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byUsername[identity.Username]; exists {
		return authDomain.ErrIdentityAlreadyExists
	}

	stored := cloneIdentity(identity)
	r.byID[stored.ID] = stored
	r.byUsername[stored.Username] = stored
	return nil
}

// Update modifies an existing identity. Returns ErrIdentityNotFound when the
// identity doesn't exist.
func (r *MemoryIdentityRepository) Update(_ context.Context, identity *authDomain.StoredIdentity) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, exists := r.byID[identity.ID]
	if !exists {
		return authDomain.ErrIdentityNotFound
	}

	stored := cloneIdentity(identity)
	stored.Username = current.Username // usernames are immutable
	r.byID[stored.ID] = stored
	r.byUsername[stored.Username] = stored
	return nil
}

// GetByID retrieves an identity by ID.
func (r *MemoryIdentityRepository) GetByID(
	_ context.Context,
	identityID uuid.UUID,
) (*authDomain.StoredIdentity, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	identity, exists := r.byID[identityID]
	if !exists {
		return nil, authDomain.ErrIdentityNotFound
	}
	return cloneIdentity(identity), nil
}

// GetByUsername retrieves an identity by username.
func (r *MemoryIdentityRepository) GetByUsername(
	_ context.Context,
	username string,
) (*authDomain.StoredIdentity, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	identity, exists := r.byUsername[username]
	if !exists {
		return nil, authDomain.ErrIdentityNotFound
	}
	return cloneIdentity(identity), nil
}

// List retrieves identities ordered by username with pagination support.
func (r *MemoryIdentityRepository) List(
	_ context.Context,
	offset, limit int,
) ([]*authDomain.StoredIdentity, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	usernames := make([]string, 0, len(r.byUsername))
	for username := range r.byUsername {
		usernames = append(usernames, username)
	}
	sort.Strings(usernames)

	identities := make([]*authDomain.StoredIdentity, 0)
	for i := offset; i < len(usernames) && len(identities) < limit; i++ {
		identities = append(identities, cloneIdentity(r.byUsername[usernames[i]]))
	}

	return identities, nil
}

// cloneIdentity copies an identity so callers never share mutable state with
// the repository.
func cloneIdentity(identity *authDomain.StoredIdentity) *authDomain.StoredIdentity {
	stored := *identity
	if identity.Claims != nil {
		stored.Claims = make(map[string]string, len(identity.Claims))
		for k, v := range identity.Claims {
			stored.Claims[k] = v
		}
	}
	return &stored
}

// NewMemoryIdentityRepository creates a new in-memory identity repository.
func NewMemoryIdentityRepository() *MemoryIdentityRepository {
	return &MemoryIdentityRepository{
		byID:       make(map[uuid.UUID]*authDomain.StoredIdentity),
		byUsername: make(map[string]*authDomain.StoredIdentity),
	}
}
