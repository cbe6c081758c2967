package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	authDomain "github.com/allisson/guardpost/internal/auth/domain"
	"github.com/allisson/guardpost/internal/metrics"
)

// identityUseCaseWithMetrics decorates IdentityUseCase with metrics instrumentation.
type identityUseCaseWithMetrics struct {
	next    IdentityUseCase
	metrics metrics.BusinessMetrics
}

// NewIdentityUseCaseWithMetrics wraps an IdentityUseCase with metrics recording.
func NewIdentityUseCaseWithMetrics(useCase IdentityUseCase, m metrics.BusinessMetrics) IdentityUseCase {
	return &identityUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

// Create records metrics for identity provisioning operations.
func (i *identityUseCaseWithMetrics) Create(
	ctx context.Context,
	createIdentityInput *authDomain.CreateIdentityInput,
) (*authDomain.CreateIdentityOutput, error) {
	start := time.Now()
	output, err := i.next.Create(ctx, createIdentityInput)

	status := "success"
	if err != nil {
		status = "error"
	}

	i.metrics.RecordOperation(ctx, "auth", "identity_create", status)
	i.metrics.RecordDuration(ctx, "auth", "identity_create", time.Since(start), status)

	return output, err
}

// Get records metrics for identity retrieval operations.
func (i *identityUseCaseWithMetrics) Get(
	ctx context.Context,
	identityID uuid.UUID,
) (*authDomain.StoredIdentity, error) {
	start := time.Now()
	identity, err := i.next.Get(ctx, identityID)

	status := "success"
	if err != nil {
		status = "error"
	}

	i.metrics.RecordOperation(ctx, "auth", "identity_get", status)
	i.metrics.RecordDuration(ctx, "auth", "identity_get", time.Since(start), status)

	return identity, err
}

// List records metrics for identity list operations.
func (i *identityUseCaseWithMetrics) List(
	ctx context.Context,
	offset, limit int,
) ([]*authDomain.StoredIdentity, error) {
	start := time.Now()
	identities, err := i.next.List(ctx, offset, limit)

	status := "success"
	if err != nil {
		status = "error"
	}

	i.metrics.RecordOperation(ctx, "auth", "identity_list", status)
	i.metrics.RecordDuration(ctx, "auth", "identity_list", time.Since(start), status)

	return identities, err
}

// Update records metrics for identity update operations.
func (i *identityUseCaseWithMetrics) Update(
	ctx context.Context,
	identityID uuid.UUID,
	updateIdentityInput *authDomain.UpdateIdentityInput,
) error {
	start := time.Now()
	err := i.next.Update(ctx, identityID, updateIdentityInput)

	status := "success"
	if err != nil {
		status = "error"
	}

	i.metrics.RecordOperation(ctx, "auth", "identity_update", status)
	i.metrics.RecordDuration(ctx, "auth", "identity_update", time.Since(start), status)

	return err
}

// Delete records metrics for identity deactivation operations.
func (i *identityUseCaseWithMetrics) Delete(ctx context.Context, identityID uuid.UUID) error {
	start := time.Now()
	err := i.next.Delete(ctx, identityID)

	status := "success"
	if err != nil {
		status = "error"
	}

	i.metrics.RecordOperation(ctx, "auth", "identity_delete", status)
	i.metrics.RecordDuration(ctx, "auth", "identity_delete", time.Since(start), status)

	return err
}

// tokenUseCaseWithMetrics decorates TokenUseCase with metrics instrumentation.
type tokenUseCaseWithMetrics struct {
	next    TokenUseCase
	metrics metrics.BusinessMetrics
}

// NewTokenUseCaseWithMetrics wraps a TokenUseCase with metrics recording.
func NewTokenUseCaseWithMetrics(useCase TokenUseCase, m metrics.BusinessMetrics) TokenUseCase {
	return &tokenUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

// Issue records metrics for token issuance operations.
func (t *tokenUseCaseWithMetrics) Issue(
	ctx context.Context,
	issueTokenInput *authDomain.IssueTokenInput,
) (*authDomain.IssueTokenOutput, error) {
	start := time.Now()
	output, err := t.next.Issue(ctx, issueTokenInput)

	status := "success"
	if err != nil {
		status = "error"
	}

	t.metrics.RecordOperation(ctx, "auth", "token_issue", status)
	t.metrics.RecordDuration(ctx, "auth", "token_issue", time.Since(start), status)

	return output, err
}
