// Package integration provides end-to-end tests for the HTTP API.
// The full stack (router, middlewares, schemes, use cases) runs against
// in-memory repositories, so no external services are required.
package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	articleHTTP "github.com/allisson/guardpost/internal/article/http"
	articleDTO "github.com/allisson/guardpost/internal/article/http/dto"
	articleRepository "github.com/allisson/guardpost/internal/article/repository"
	articleUseCase "github.com/allisson/guardpost/internal/article/usecase"
	authDomain "github.com/allisson/guardpost/internal/auth/domain"
	authHTTP "github.com/allisson/guardpost/internal/auth/http"
	authDTO "github.com/allisson/guardpost/internal/auth/http/dto"
	authRepository "github.com/allisson/guardpost/internal/auth/repository"
	"github.com/allisson/guardpost/internal/auth/scheme"
	authService "github.com/allisson/guardpost/internal/auth/service"
	authUseCase "github.com/allisson/guardpost/internal/auth/usecase"
	"github.com/allisson/guardpost/internal/config"
	internalHTTP "github.com/allisson/guardpost/internal/http"
	"github.com/allisson/guardpost/internal/metrics"
)

// TestMain sets Gin to test mode and verifies no goroutines leak. The rate
// limiter cleanup goroutines run for the process lifetime and are excluded.
func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	goleak.VerifyTestMain(m,
		goleak.IgnoreAnyFunction("github.com/allisson/guardpost/internal/auth/http.(*rateLimiterStore).cleanupStale"),
		goleak.IgnoreAnyFunction("github.com/allisson/guardpost/internal/auth/http.(*loginRateLimiterStore).cleanupStale"),
	)
}

// noopTxManager runs the function directly; the in-memory repositories are
// already atomic per operation.
type noopTxManager struct{}

func (noopTxManager) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// apiTestContext holds the assembled stack and the use cases needed for seeding.
type apiTestContext struct {
	server          *httptest.Server
	identityUseCase authUseCase.IdentityUseCase
	tokenUseCase    authUseCase.TokenUseCase
	tokenCodec      authService.TokenCodec
}

func newTestConfig() *config.Config {
	return &config.Config{
		ServerHost:        "localhost",
		ServerPort:        8080,
		LogLevel:          "error",
		AuthSigningSecret: "integration-test-signing-secret",
		AuthSigningKeyID:  "v1",
		AuthTokenTTL:      time.Hour,
		AuthAPIKey:        "integration-service-key",
		AuthSchemes:       "bearer,basic,apikey",
	}
}

// setupAPITest assembles the full HTTP stack over in-memory repositories.
func setupAPITest(t *testing.T, cfg *config.Config) *apiTestContext {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	identityRepo := authRepository.NewMemoryIdentityRepository()
	articleRepo := articleRepository.NewMemoryArticleRepository()

	secretService := authService.NewSecretService()
	tokenCodec, err := authService.NewTokenCodec(cfg.AuthSigningSecret, cfg.AuthSigningKeyID)
	require.NoError(t, err)

	identityUC := authUseCase.NewIdentityUseCase(identityRepo, secretService)
	tokenUC, err := authUseCase.NewTokenUseCase(cfg, identityRepo, secretService, tokenCodec)
	require.NoError(t, err)

	credentialStore, err := authUseCase.NewCredentialStore(identityRepo, secretService)
	require.NoError(t, err)

	apiKeyVerifier, err := scheme.NewAPIKeyVerifier(cfg.AuthAPIKey, logger)
	require.NoError(t, err)

	guard, err := scheme.NewGuard(
		logger,
		metrics.NewNoOpAuthMetrics(),
		scheme.NewBearerVerifier(tokenCodec, logger),
		scheme.NewBasicVerifier(credentialStore, logger),
		apiKeyVerifier,
	)
	require.NoError(t, err)

	articleUC := articleUseCase.NewArticleUseCase(noopTxManager{}, articleRepo)

	server := internalHTTP.NewServer(nil, cfg.ServerHost, cfg.ServerPort, logger)
	server.SetupRouter(
		cfg,
		guard,
		authDomain.NewClaimPolicy(),
		authHTTP.NewLoginHandler(tokenUC, logger),
		authHTTP.NewIdentityHandler(identityUC, logger),
		articleHTTP.NewArticleHandler(articleUC, logger),
		nil,
	)

	testServer := httptest.NewServer(server.Router())
	t.Cleanup(testServer.Close)

	return &apiTestContext{
		server:          testServer,
		identityUseCase: identityUC,
		tokenUseCase:    tokenUC,
		tokenCodec:      tokenCodec,
	}
}

// createIdentity seeds an active identity with the given secret and claims.
func (tc *apiTestContext) createIdentity(t *testing.T, username, secret string, claims map[string]string) {
	t.Helper()

	_, err := tc.identityUseCase.Create(context.Background(), &authDomain.CreateIdentityInput{
		Username:    username,
		DisplayName: username,
		Secret:      secret,
		Claims:      claims,
		IsActive:    true,
	})
	require.NoError(t, err)
}

// login exchanges a username/password pair for a bearer token via the API.
func (tc *apiTestContext) login(t *testing.T, username, password string) string {
	t.Helper()

	resp, body := tc.makeRequest(t, http.MethodPost, "/v1/login", authDTO.LoginRequest{
		Username: username,
		Password: password,
	}, "")
	require.Equal(t, http.StatusCreated, resp.StatusCode, "login failed: %s", string(body))

	var loginResponse authDTO.LoginResponse
	require.NoError(t, json.Unmarshal(body, &loginResponse))
	require.NotEmpty(t, loginResponse.Token)

	return loginResponse.Token
}

// makeRequest performs an HTTP request and returns the response and body.
// An empty token sends the request without credentials.
func (tc *apiTestContext) makeRequest(
	t *testing.T,
	method, path string,
	body interface{},
	token string,
) (*http.Response, []byte) {
	t.Helper()

	var bodyReader io.Reader
	if body != nil {
		bodyBytes, err := json.Marshal(body)
		require.NoError(t, err, "failed to marshal request body")
		bodyReader = bytes.NewReader(bodyBytes)
	}

	req, err := http.NewRequest(method, tc.server.URL+path, bodyReader)
	require.NoError(t, err, "failed to create request")

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	return tc.doRequest(t, req)
}

func (tc *apiTestContext) doRequest(t *testing.T, req *http.Request) (*http.Response, []byte) {
	t.Helper()

	client := &http.Client{Timeout: 10 * time.Second}
	resp, err := client.Do(req)
	require.NoError(t, err, "failed to perform request")

	respBody, err := io.ReadAll(resp.Body)
	require.NoError(t, err, "failed to read response body")
	require.NoError(t, resp.Body.Close())

	return resp, respBody
}

func TestLoginFlow(t *testing.T) {
	tc := setupAPITest(t, newTestConfig())
	tc.createIdentity(t, "alice", "alice-password", map[string]string{
		authDomain.RoleClaim: authDomain.AdminRole,
	})

	t.Run("wrong password is rejected without detail", func(t *testing.T) {
		resp, body := tc.makeRequest(t, http.MethodPost, "/v1/login", authDTO.LoginRequest{
			Username: "alice",
			Password: "wrong-password",
		}, "")

		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		assert.Contains(t, string(body), "Invalid or missing credentials")
	})

	t.Run("unknown username gets the same response", func(t *testing.T) {
		resp, body := tc.makeRequest(t, http.MethodPost, "/v1/login", authDTO.LoginRequest{
			Username: "nobody",
			Password: "whatever",
		}, "")

		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		assert.Contains(t, string(body), "Invalid or missing credentials")
	})

	t.Run("valid credentials yield an expiring token", func(t *testing.T) {
		resp, body := tc.makeRequest(t, http.MethodPost, "/v1/login", authDTO.LoginRequest{
			Username: "alice",
			Password: "alice-password",
		}, "")

		require.Equal(t, http.StatusCreated, resp.StatusCode)

		var loginResponse authDTO.LoginResponse
		require.NoError(t, json.Unmarshal(body, &loginResponse))
		assert.NotEmpty(t, loginResponse.Token)
		assert.True(t, loginResponse.ExpiresAt.After(time.Now()))
	})
}

func TestArticleCRUD(t *testing.T) {
	tc := setupAPITest(t, newTestConfig())
	tc.createIdentity(t, "editor", "editor-password", map[string]string{
		authDomain.PermissionsClaim: "articles:read articles:write",
	})
	token := tc.login(t, "editor", "editor-password")

	// Create
	resp, body := tc.makeRequest(t, http.MethodPost, "/v1/articles", articleDTO.CreateArticleRequest{
		Title:   "First Post",
		Content: "Hello, world.",
	}, token)
	require.Equal(t, http.StatusCreated, resp.StatusCode, "create failed: %s", string(body))

	var created articleDTO.ArticleResponse
	require.NoError(t, json.Unmarshal(body, &created))
	assert.Equal(t, "First Post", created.Title)
	assert.Equal(t, "editor", created.AuthorID, "author comes from the authenticated principal")

	// Get
	resp, body = tc.makeRequest(t, http.MethodGet, "/v1/articles/"+created.ID, nil, token)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var fetched articleDTO.ArticleResponse
	require.NoError(t, json.Unmarshal(body, &fetched))
	assert.Equal(t, created.ID, fetched.ID)

	// List
	resp, body = tc.makeRequest(t, http.MethodGet, "/v1/articles", nil, token)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var list articleDTO.ListArticlesResponse
	require.NoError(t, json.Unmarshal(body, &list))
	require.Len(t, list.Data, 1)

	// Update
	resp, body = tc.makeRequest(t, http.MethodPut, "/v1/articles/"+created.ID, articleDTO.UpdateArticleRequest{
		Title:   "First Post (edited)",
		Content: "Hello again.",
	}, token)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var updated articleDTO.ArticleResponse
	require.NoError(t, json.Unmarshal(body, &updated))
	assert.Equal(t, "First Post (edited)", updated.Title)

	// Delete
	resp, _ = tc.makeRequest(t, http.MethodDelete, "/v1/articles/"+created.ID, nil, token)
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp, _ = tc.makeRequest(t, http.MethodGet, "/v1/articles/"+created.ID, nil, token)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestAuthenticationRequired(t *testing.T) {
	tc := setupAPITest(t, newTestConfig())

	t.Run("no credentials", func(t *testing.T) {
		resp, body := tc.makeRequest(t, http.MethodGet, "/v1/articles", nil, "")

		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		assert.Equal(t, "Bearer", resp.Header.Get("WWW-Authenticate"),
			"challenge advertises the first configured scheme")
		assert.Contains(t, string(body), "unauthorized")
	})

	t.Run("garbage bearer token", func(t *testing.T) {
		resp, _ := tc.makeRequest(t, http.MethodGet, "/v1/articles", nil, "not-a-real-token")
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("expired bearer token", func(t *testing.T) {
		// Issue a token from a codec whose clock is two hours behind,
		// so the one-hour TTL is already past.
		pastCodec, err := authService.NewTokenCodec(
			"integration-test-signing-secret",
			"v1",
			authService.WithClock(func() time.Time { return time.Now().Add(-2 * time.Hour) }),
		)
		require.NoError(t, err)

		expiredToken, _, err := pastCodec.Issue("alice", nil, time.Hour)
		require.NoError(t, err)

		resp, _ := tc.makeRequest(t, http.MethodGet, "/v1/articles", nil, expiredToken)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})
}

func TestAuthorizationForbidden(t *testing.T) {
	tc := setupAPITest(t, newTestConfig())
	tc.createIdentity(t, "reader", "reader-password", map[string]string{
		authDomain.PermissionsClaim: "articles:read",
	})
	token := tc.login(t, "reader", "reader-password")

	t.Run("permitted operation", func(t *testing.T) {
		resp, _ := tc.makeRequest(t, http.MethodGet, "/v1/articles", nil, token)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("missing permission", func(t *testing.T) {
		resp, body := tc.makeRequest(t, http.MethodPost, "/v1/articles", articleDTO.CreateArticleRequest{
			Title:   "Nope",
			Content: "Should not be created.",
		}, token)

		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
		assert.Contains(t, string(body), "forbidden")
	})

	t.Run("identity management needs its own permissions", func(t *testing.T) {
		resp, _ := tc.makeRequest(t, http.MethodGet, "/v1/identities", nil, token)
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	})
}

func TestBasicAuthScheme(t *testing.T) {
	tc := setupAPITest(t, newTestConfig())
	tc.createIdentity(t, "reader", "reader-password", map[string]string{
		authDomain.PermissionsClaim: "articles:read",
	})

	t.Run("valid basic credentials", func(t *testing.T) {
		req, err := http.NewRequest(http.MethodGet, tc.server.URL+"/v1/articles", nil)
		require.NoError(t, err)
		req.SetBasicAuth("reader", "reader-password")

		resp, _ := tc.doRequest(t, req)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("wrong basic password", func(t *testing.T) {
		req, err := http.NewRequest(http.MethodGet, tc.server.URL+"/v1/articles", nil)
		require.NoError(t, err)
		req.SetBasicAuth("reader", "wrong-password")

		resp, _ := tc.doRequest(t, req)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})
}

func TestAPIKeyScheme(t *testing.T) {
	tc := setupAPITest(t, newTestConfig())

	t.Run("valid api key authenticates as the service principal", func(t *testing.T) {
		req, err := http.NewRequest(http.MethodGet, tc.server.URL+"/v1/articles", nil)
		require.NoError(t, err)
		req.Header.Set(scheme.APIKeyHeader, "integration-service-key")

		// The service principal carries no permissions, so the request
		// passes authentication and fails authorization.
		resp, body := tc.doRequest(t, req)
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
		assert.Contains(t, string(body), "forbidden")
	})

	t.Run("wrong api key", func(t *testing.T) {
		req, err := http.NewRequest(http.MethodGet, tc.server.URL+"/v1/articles", nil)
		require.NoError(t, err)
		req.Header.Set(scheme.APIKeyHeader, "wrong-key")

		resp, _ := tc.doRequest(t, req)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})
}

func TestIdentityAdminAPI(t *testing.T) {
	tc := setupAPITest(t, newTestConfig())
	tc.createIdentity(t, "admin", "admin-password", map[string]string{
		authDomain.RoleClaim: authDomain.AdminRole,
	})
	token := tc.login(t, "admin", "admin-password")

	// Create without a secret: one is generated and returned exactly once
	resp, body := tc.makeRequest(t, http.MethodPost, "/v1/identities", authDTO.CreateIdentityRequest{
		Username:    "newcomer",
		DisplayName: "Newcomer",
		Claims:      map[string]string{authDomain.PermissionsClaim: "articles:read"},
		IsActive:    true,
	}, token)
	require.Equal(t, http.StatusCreated, resp.StatusCode, "create failed: %s", string(body))

	var created authDTO.CreateIdentityResponse
	require.NoError(t, json.Unmarshal(body, &created))
	assert.NotEmpty(t, created.Secret, "generated secret is returned on creation")
	assert.Equal(t, "newcomer", created.Identity.Username)

	// The generated secret works for login
	newcomerToken := tc.login(t, "newcomer", created.Secret)
	assert.NotEmpty(t, newcomerToken)

	// Get never returns secret material
	resp, body = tc.makeRequest(t, http.MethodGet, "/v1/identities/"+created.Identity.ID, nil, token)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotContains(t, string(body), "secret_hash")
	assert.NotContains(t, string(body), created.Secret)

	// List includes both identities
	resp, body = tc.makeRequest(t, http.MethodGet, "/v1/identities", nil, token)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var list authDTO.ListIdentitiesResponse
	require.NoError(t, json.Unmarshal(body, &list))
	assert.Len(t, list.Data, 2)

	// Update
	resp, _ = tc.makeRequest(t, http.MethodPut, "/v1/identities/"+created.Identity.ID, authDTO.UpdateIdentityRequest{
		DisplayName: "Renamed",
		Claims:      map[string]string{authDomain.PermissionsClaim: "articles:read"},
		IsActive:    true,
	}, token)
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	// Delete deactivates the identity, blocking login
	resp, _ = tc.makeRequest(t, http.MethodDelete, "/v1/identities/"+created.Identity.ID, nil, token)
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp, _ = tc.makeRequest(t, http.MethodPost, "/v1/login", authDTO.LoginRequest{
		Username: "newcomer",
		Password: created.Secret,
	}, "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestLoginRateLimit(t *testing.T) {
	cfg := newTestConfig()
	cfg.RateLimitLoginEnabled = true
	cfg.RateLimitLoginRequestsPerSec = 0.001
	cfg.RateLimitLoginBurst = 2

	tc := setupAPITest(t, cfg)
	tc.createIdentity(t, "alice", "alice-password", map[string]string{
		authDomain.RoleClaim: authDomain.AdminRole,
	})

	loginRequest := authDTO.LoginRequest{Username: "alice", Password: "alice-password"}

	for i := 0; i < 2; i++ {
		resp, _ := tc.makeRequest(t, http.MethodPost, "/v1/login", loginRequest, "")
		require.Equal(t, http.StatusCreated, resp.StatusCode)
	}

	resp, body := tc.makeRequest(t, http.MethodPost, "/v1/login", loginRequest, "")
	assert.Equal(t, http.StatusTooManyRequests, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get("Retry-After"))
	assert.Contains(t, string(body), "rate_limit_exceeded")
}
