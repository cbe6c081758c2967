// Package domain defines authentication and authorization domain models and business logic.
//
// It provides credential-based authentication over pluggable schemes (basic,
// api-key, bearer) and claim-based authorization. A request is first resolved
// into a Principal by a verifier, and only then checked against a Policy.
package domain

// Principal identifies an authenticated caller for the duration of one request.
// It is created by a successful verification, never mutated afterwards, and
// never persisted by the authentication subsystem.
type Principal struct {
	ID          string            // Unique caller identifier (the username or service name)
	DisplayName string            // Human-readable name for logging
	Claims      map[string]string // Named attributes used for authorization decisions
}

// Claim returns the value of a named claim, or "" when absent.
func (p *Principal) Claim(name string) string {
	if p == nil || p.Claims == nil {
		return ""
	}
	return p.Claims[name]
}

// Well-known claim names used by the default authorization policy.
const (
	// RoleClaim holds the caller's role (e.g., "admin", "user", "service").
	RoleClaim = "role"

	// PermissionsClaim holds a space-separated set of allowed operations.
	PermissionsClaim = "permissions"
)

// AdminRole is the role that bypasses per-operation permission checks.
const AdminRole = "admin"

// ServiceRole is the fixed role granted to callers authenticated with the
// static service API key. API keys are not tied to stored identities, so
// no per-user claims are available.
const ServiceRole = "service"
