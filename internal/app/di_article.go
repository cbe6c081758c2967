package app

import (
	"fmt"

	articleHTTP "github.com/allisson/guardpost/internal/article/http"
	articleRepository "github.com/allisson/guardpost/internal/article/repository"
	articleUseCase "github.com/allisson/guardpost/internal/article/usecase"
	"github.com/allisson/guardpost/internal/database"
)

// ArticleRepository returns the article repository based on database driver.
func (c *Container) ArticleRepository() (articleUseCase.ArticleRepository, error) {
	var err error
	c.articleRepoInit.Do(func() {
		c.articleRepo, err = c.initArticleRepository()
		if err != nil {
			c.initErrors["articleRepo"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["articleRepo"]; exists {
		return nil, storedErr
	}
	return c.articleRepo, nil
}

// ArticleUseCase returns the article use case.
func (c *Container) ArticleUseCase() (articleUseCase.ArticleUseCase, error) {
	var err error
	c.articleUseCaseInit.Do(func() {
		c.articleUseCase, err = c.initArticleUseCase()
		if err != nil {
			c.initErrors["articleUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["articleUseCase"]; exists {
		return nil, storedErr
	}
	return c.articleUseCase, nil
}

// ArticleHandler returns the HTTP handler for article operations.
func (c *Container) ArticleHandler() (*articleHTTP.ArticleHandler, error) {
	var err error
	c.articleHandlerInit.Do(func() {
		c.articleHandler, err = c.initArticleHandler()
		if err != nil {
			c.initErrors["articleHandler"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["articleHandler"]; exists {
		return nil, storedErr
	}
	return c.articleHandler, nil
}

// initArticleRepository creates the article repository based on the database driver.
func (c *Container) initArticleRepository() (articleUseCase.ArticleRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for article repository: %w", err)
	}

	switch c.config.DBDriver {
	case database.DriverPostgres:
		return articleRepository.NewPostgreSQLArticleRepository(db), nil
	case database.DriverMySQL:
		return articleRepository.NewMySQLArticleRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

// initArticleUseCase creates the article use case with all its dependencies.
func (c *Container) initArticleUseCase() (articleUseCase.ArticleUseCase, error) {
	txManager, err := c.TxManager()
	if err != nil {
		return nil, fmt.Errorf("failed to get tx manager for article use case: %w", err)
	}

	articleRepo, err := c.ArticleRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get article repository for article use case: %w", err)
	}

	baseUseCase := articleUseCase.NewArticleUseCase(txManager, articleRepo)

	// Wrap with metrics if enabled
	if c.config.MetricsEnabled {
		businessMetrics, err := c.BusinessMetrics()
		if err != nil {
			return nil, fmt.Errorf("failed to get business metrics for article use case: %w", err)
		}
		return articleUseCase.NewArticleUseCaseWithMetrics(baseUseCase, businessMetrics), nil
	}

	return baseUseCase, nil
}

// initArticleHandler creates the article HTTP handler with all its dependencies.
func (c *Container) initArticleHandler() (*articleHTTP.ArticleHandler, error) {
	articleUC, err := c.ArticleUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get article use case for article handler: %w", err)
	}

	logger := c.Logger()

	return articleHTTP.NewArticleHandler(articleUC, logger), nil
}
