package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	authDomain "github.com/allisson/guardpost/internal/auth/domain"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	m.Run()
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// createTestContext creates a gin test context with an optional JSON body.
func createTestContext(method, path string, body interface{}) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	var bodyReader io.Reader
	if body != nil {
		bodyBytes, _ := json.Marshal(body)
		bodyReader = bytes.NewReader(bodyBytes)
	}

	req := httptest.NewRequest(method, path, bodyReader)
	req.Header.Set("Content-Type", "application/json")
	c.Request = req

	return c, w
}

// mockTokenUseCase is a mock implementation of usecase.TokenUseCase.
type mockTokenUseCase struct {
	mock.Mock
}

func (m *mockTokenUseCase) Issue(
	ctx context.Context,
	issueTokenInput *authDomain.IssueTokenInput,
) (*authDomain.IssueTokenOutput, error) {
	args := m.Called(ctx, issueTokenInput)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*authDomain.IssueTokenOutput), args.Error(1)
}

// mockIdentityUseCase is a mock implementation of usecase.IdentityUseCase.
type mockIdentityUseCase struct {
	mock.Mock
}

func (m *mockIdentityUseCase) Create(
	ctx context.Context,
	createIdentityInput *authDomain.CreateIdentityInput,
) (*authDomain.CreateIdentityOutput, error) {
	args := m.Called(ctx, createIdentityInput)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*authDomain.CreateIdentityOutput), args.Error(1)
}

func (m *mockIdentityUseCase) Get(ctx context.Context, identityID uuid.UUID) (*authDomain.StoredIdentity, error) {
	args := m.Called(ctx, identityID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*authDomain.StoredIdentity), args.Error(1)
}

func (m *mockIdentityUseCase) List(ctx context.Context, offset, limit int) ([]*authDomain.StoredIdentity, error) {
	args := m.Called(ctx, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*authDomain.StoredIdentity), args.Error(1)
}

func (m *mockIdentityUseCase) Update(
	ctx context.Context,
	identityID uuid.UUID,
	updateIdentityInput *authDomain.UpdateIdentityInput,
) error {
	args := m.Called(ctx, identityID, updateIdentityInput)
	return args.Error(0)
}

func (m *mockIdentityUseCase) Delete(ctx context.Context, identityID uuid.UUID) error {
	args := m.Called(ctx, identityID)
	return args.Error(0)
}
