package domain

// CredentialKind tags the variant of a Credential.
type CredentialKind string

const (
	// BasicCredential is a username/password pair from a Basic authorization header.
	BasicCredential CredentialKind = "basic"

	// APIKeyCredential is a static service key from the api-key header.
	APIKeyCredential CredentialKind = "apikey"

	// BearerCredential is a signed token from a Bearer authorization header.
	BearerCredential CredentialKind = "bearer"
)

// Credential is the raw material presented by a caller. It exists only for
// the duration of one verification call and is never logged or persisted.
type Credential struct {
	Kind     CredentialKind
	Username string // Basic only
	Password string // Basic only
	Value    string // APIKey and Bearer: the raw key or token string
}

// NewBasicCredential builds a Basic username/password credential.
func NewBasicCredential(username, password string) Credential {
	return Credential{Kind: BasicCredential, Username: username, Password: password}
}

// NewAPIKeyCredential builds an api-key credential.
func NewAPIKeyCredential(value string) Credential {
	return Credential{Kind: APIKeyCredential, Value: value}
}

// NewBearerCredential builds a bearer token credential.
func NewBearerCredential(value string) Credential {
	return Credential{Kind: BearerCredential, Value: value}
}
