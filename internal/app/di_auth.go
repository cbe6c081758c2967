package app

import (
	"fmt"
	"strings"

	authDomain "github.com/allisson/guardpost/internal/auth/domain"
	authHTTP "github.com/allisson/guardpost/internal/auth/http"
	authRepository "github.com/allisson/guardpost/internal/auth/repository"
	"github.com/allisson/guardpost/internal/auth/scheme"
	authService "github.com/allisson/guardpost/internal/auth/service"
	authUseCase "github.com/allisson/guardpost/internal/auth/usecase"
	"github.com/allisson/guardpost/internal/database"
)

// SecretService returns the secret hashing service for authentication operations.
func (c *Container) SecretService() authService.SecretService {
	c.secretServiceInit.Do(func() {
		c.secretService = c.initSecretService()
	})
	return c.secretService
}

// TokenCodec returns the bearer token codec.
func (c *Container) TokenCodec() (authService.TokenCodec, error) {
	var err error
	c.tokenCodecInit.Do(func() {
		c.tokenCodec, err = c.initTokenCodec()
		if err != nil {
			c.initErrors["tokenCodec"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["tokenCodec"]; exists {
		return nil, storedErr
	}
	return c.tokenCodec, nil
}

// IdentityRepository returns the identity repository based on database driver.
func (c *Container) IdentityRepository() (authUseCase.IdentityRepository, error) {
	var err error
	c.identityRepoInit.Do(func() {
		c.identityRepo, err = c.initIdentityRepository()
		if err != nil {
			c.initErrors["identityRepo"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["identityRepo"]; exists {
		return nil, storedErr
	}
	return c.identityRepo, nil
}

// IdentityUseCase returns the identity use case.
func (c *Container) IdentityUseCase() (authUseCase.IdentityUseCase, error) {
	var err error
	c.identityUseCaseInit.Do(func() {
		c.identityUseCase, err = c.initIdentityUseCase()
		if err != nil {
			c.initErrors["identityUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["identityUseCase"]; exists {
		return nil, storedErr
	}
	return c.identityUseCase, nil
}

// TokenUseCase returns the token issuance use case.
func (c *Container) TokenUseCase() (authUseCase.TokenUseCase, error) {
	var err error
	c.tokenUseCaseInit.Do(func() {
		c.tokenUseCase, err = c.initTokenUseCase()
		if err != nil {
			c.initErrors["tokenUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["tokenUseCase"]; exists {
		return nil, storedErr
	}
	return c.tokenUseCase, nil
}

// CredentialStore returns the credential store consumed by the authentication schemes.
func (c *Container) CredentialStore() (scheme.CredentialStore, error) {
	var err error
	c.credentialStoreInit.Do(func() {
		c.credentialStore, err = c.initCredentialStore()
		if err != nil {
			c.initErrors["credentialStore"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["credentialStore"]; exists {
		return nil, storedErr
	}
	return c.credentialStore, nil
}

// Guard returns the scheme guard assembled from the configured authentication schemes.
func (c *Container) Guard() (*scheme.Guard, error) {
	var err error
	c.guardInit.Do(func() {
		c.guard, err = c.initGuard()
		if err != nil {
			c.initErrors["guard"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["guard"]; exists {
		return nil, storedErr
	}
	return c.guard, nil
}

// Policy returns the claim-based authorization policy.
func (c *Container) Policy() authDomain.Policy {
	c.policyInit.Do(func() {
		c.policy = authDomain.NewClaimPolicy()
	})
	return c.policy
}

// LoginHandler returns the HTTP handler for the login endpoint.
func (c *Container) LoginHandler() (*authHTTP.LoginHandler, error) {
	var err error
	c.loginHandlerInit.Do(func() {
		c.loginHandler, err = c.initLoginHandler()
		if err != nil {
			c.initErrors["loginHandler"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["loginHandler"]; exists {
		return nil, storedErr
	}
	return c.loginHandler, nil
}

// IdentityHandler returns the HTTP handler for identity management operations.
func (c *Container) IdentityHandler() (*authHTTP.IdentityHandler, error) {
	var err error
	c.identityHandlerInit.Do(func() {
		c.identityHandler, err = c.initIdentityHandler()
		if err != nil {
			c.initErrors["identityHandler"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["identityHandler"]; exists {
		return nil, storedErr
	}
	return c.identityHandler, nil
}

// initSecretService creates the secret hashing service.
func (c *Container) initSecretService() authService.SecretService {
	return authService.NewSecretService()
}

// initTokenCodec creates the bearer token codec from the configured signing secret.
func (c *Container) initTokenCodec() (authService.TokenCodec, error) {
	codec, err := authService.NewTokenCodec(c.config.AuthSigningSecret, c.config.AuthSigningKeyID)
	if err != nil {
		return nil, fmt.Errorf("failed to create token codec: %w", err)
	}
	return codec, nil
}

// initIdentityRepository creates the identity repository based on the database driver.
func (c *Container) initIdentityRepository() (authUseCase.IdentityRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for identity repository: %w", err)
	}

	switch c.config.DBDriver {
	case database.DriverPostgres:
		return authRepository.NewPostgreSQLIdentityRepository(db), nil
	case database.DriverMySQL:
		return authRepository.NewMySQLIdentityRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

// initIdentityUseCase creates the identity use case with all its dependencies.
func (c *Container) initIdentityUseCase() (authUseCase.IdentityUseCase, error) {
	identityRepo, err := c.IdentityRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get identity repository for identity use case: %w", err)
	}

	secretService := c.SecretService()

	baseUseCase := authUseCase.NewIdentityUseCase(identityRepo, secretService)

	// Wrap with metrics if enabled
	if c.config.MetricsEnabled {
		businessMetrics, err := c.BusinessMetrics()
		if err != nil {
			return nil, fmt.Errorf("failed to get business metrics for identity use case: %w", err)
		}
		return authUseCase.NewIdentityUseCaseWithMetrics(baseUseCase, businessMetrics), nil
	}

	return baseUseCase, nil
}

// initTokenUseCase creates the token issuance use case with all its dependencies.
func (c *Container) initTokenUseCase() (authUseCase.TokenUseCase, error) {
	identityRepo, err := c.IdentityRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get identity repository for token use case: %w", err)
	}

	tokenCodec, err := c.TokenCodec()
	if err != nil {
		return nil, fmt.Errorf("failed to get token codec for token use case: %w", err)
	}

	secretService := c.SecretService()

	baseUseCase, err := authUseCase.NewTokenUseCase(c.config, identityRepo, secretService, tokenCodec)
	if err != nil {
		return nil, fmt.Errorf("failed to create token use case: %w", err)
	}

	// Wrap with metrics if enabled
	if c.config.MetricsEnabled {
		businessMetrics, err := c.BusinessMetrics()
		if err != nil {
			return nil, fmt.Errorf("failed to get business metrics for token use case: %w", err)
		}
		return authUseCase.NewTokenUseCaseWithMetrics(baseUseCase, businessMetrics), nil
	}

	return baseUseCase, nil
}

// initCredentialStore creates the credential store over the identity repository.
func (c *Container) initCredentialStore() (scheme.CredentialStore, error) {
	identityRepo, err := c.IdentityRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get identity repository for credential store: %w", err)
	}

	store, err := authUseCase.NewCredentialStore(identityRepo, c.SecretService())
	if err != nil {
		return nil, fmt.Errorf("failed to create credential store: %w", err)
	}

	return store, nil
}

// initGuard creates the scheme guard from the configured scheme list.
// Scheme order in AUTH_SCHEMES matters: the first scheme that authenticates
// wins, and the first scheme's challenge is advertised on 401 responses.
func (c *Container) initGuard() (*scheme.Guard, error) {
	logger := c.Logger()

	authMetrics, err := c.AuthMetrics()
	if err != nil {
		return nil, fmt.Errorf("failed to get auth metrics for guard: %w", err)
	}

	var verifiers []scheme.Verifier
	for _, name := range strings.Split(c.config.AuthSchemes, ",") {
		switch strings.TrimSpace(name) {
		case "bearer":
			tokenCodec, err := c.TokenCodec()
			if err != nil {
				return nil, fmt.Errorf("failed to get token codec for bearer scheme: %w", err)
			}
			verifiers = append(verifiers, scheme.NewBearerVerifier(tokenCodec, logger))
		case "basic":
			credentialStore, err := c.CredentialStore()
			if err != nil {
				return nil, fmt.Errorf("failed to get credential store for basic scheme: %w", err)
			}
			verifiers = append(verifiers, scheme.NewBasicVerifier(credentialStore, logger))
		case "apikey":
			if c.config.AuthAPIKey == "" {
				return nil, fmt.Errorf("apikey scheme enabled but AUTH_API_KEY is not set")
			}
			verifier, err := scheme.NewAPIKeyVerifier(c.config.AuthAPIKey, logger)
			if err != nil {
				return nil, fmt.Errorf("failed to create apikey verifier: %w", err)
			}
			verifiers = append(verifiers, verifier)
		case "":
			continue
		default:
			return nil, fmt.Errorf("unsupported authentication scheme: %s", name)
		}
	}

	guard, err := scheme.NewGuard(logger, authMetrics, verifiers...)
	if err != nil {
		return nil, fmt.Errorf("failed to create guard: %w", err)
	}

	return guard, nil
}

// initLoginHandler creates the login HTTP handler with all its dependencies.
func (c *Container) initLoginHandler() (*authHTTP.LoginHandler, error) {
	tokenUseCase, err := c.TokenUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get token use case for login handler: %w", err)
	}

	logger := c.Logger()

	return authHTTP.NewLoginHandler(tokenUseCase, logger), nil
}

// initIdentityHandler creates the identity HTTP handler with all its dependencies.
func (c *Container) initIdentityHandler() (*authHTTP.IdentityHandler, error) {
	identityUseCase, err := c.IdentityUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get identity use case for identity handler: %w", err)
	}

	logger := c.Logger()

	return authHTTP.NewIdentityHandler(identityUseCase, logger), nil
}
