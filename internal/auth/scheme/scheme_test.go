package scheme

import (
	"context"
	"io"
	"log/slog"

	"github.com/stretchr/testify/mock"

	authDomain "github.com/allisson/guardpost/internal/auth/domain"
)

// mockCredentialStore implements CredentialStore for tests.
type mockCredentialStore struct {
	mock.Mock
}

func (m *mockCredentialStore) Lookup(ctx context.Context, username string) (*authDomain.StoredIdentity, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*authDomain.StoredIdentity), args.Error(1)
}

func (m *mockCredentialStore) VerifySecret(identity *authDomain.StoredIdentity, presented string) bool {
	args := m.Called(identity, presented)
	return args.Bool(0)
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
