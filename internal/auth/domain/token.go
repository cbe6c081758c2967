package domain

import "time"

// Token is the decoded form of a bearer credential. Timestamps are truncated
// to whole seconds on issuance so the wire format carries integer epoch
// seconds. A token is valid only while its signature verifies against the
// current signing key and now < ExpiresAt.
type Token struct {
	Subject   string            // Principal ID the token was issued to
	Claims    map[string]string // Claims captured at issuance time
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// Principal maps the token's subject and claims into a request Principal.
func (t *Token) Principal() *Principal {
	return &Principal{
		ID:     t.Subject,
		Claims: t.Claims,
	}
}
