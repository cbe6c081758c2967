package domain

import (
	"slices"
	"strings"
)

// Policy decides whether an authenticated principal may perform an operation.
// Authorization runs strictly after authentication; implementations receive
// only the principal and the operation name and must not consult any other
// request state.
type Policy interface {
	// Authorize returns nil when the principal may perform the operation,
	// or a ForbiddenError otherwise.
	Authorize(principal *Principal, operation string) error
}

// ClaimPolicy is the default Policy: an operation is allowed when it appears
// in the principal's space-separated "permissions" claim, or when the
// principal's role is admin.
type ClaimPolicy struct{}

// NewClaimPolicy creates the default claim-based authorization policy.
func NewClaimPolicy() *ClaimPolicy {
	return &ClaimPolicy{}
}

// Authorize checks the permissions claim and the admin role.
func (p *ClaimPolicy) Authorize(principal *Principal, operation string) error {
	if principal == nil || operation == "" {
		return NewForbiddenError(operation)
	}

	if principal.Claim(RoleClaim) == AdminRole {
		return nil
	}

	permissions := strings.Fields(principal.Claim(PermissionsClaim))
	if slices.Contains(permissions, operation) {
		return nil
	}

	return NewForbiddenError(operation)
}
