// Package repository implements data persistence for articles.
//
// Provides PostgreSQL and MySQL implementations with transaction support via
// database.GetTx(). PostgreSQL uses native UUID types, MySQL uses BINARY(16)
// types.
package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	articleDomain "github.com/allisson/guardpost/internal/article/domain"
	"github.com/allisson/guardpost/internal/database"
	apperrors "github.com/allisson/guardpost/internal/errors"
)

// PostgreSQLArticleRepository implements article persistence for PostgreSQL.
type PostgreSQLArticleRepository struct {
	db *sql.DB
}

// Create inserts a new article.
func (p *PostgreSQLArticleRepository) Create(ctx context.Context, article *articleDomain.Article) error {
	querier := database.GetTx(ctx, p.db)

	query := `INSERT INTO articles (id, title, content, author_id, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := querier.ExecContext(
		ctx,
		query,
		article.ID,
		article.Title,
		article.Content,
		article.AuthorID,
		article.CreatedAt,
		article.UpdatedAt,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to create article")
	}
	return nil
}

// Update modifies an existing article.
func (p *PostgreSQLArticleRepository) Update(ctx context.Context, article *articleDomain.Article) error {
	querier := database.GetTx(ctx, p.db)

	query := `UPDATE articles
			  SET title = $1,
				  content = $2,
				  updated_at = $3
			  WHERE id = $4`

	_, err := querier.ExecContext(
		ctx,
		query,
		article.Title,
		article.Content,
		article.UpdatedAt,
		article.ID,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to update article")
	}

	return nil
}

// GetByID retrieves an article by ID. Returns ErrArticleNotFound when no row
// matches.
func (p *PostgreSQLArticleRepository) GetByID(
	ctx context.Context,
	articleID uuid.UUID,
) (*articleDomain.Article, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT id, title, content, author_id, created_at, updated_at
			  FROM articles WHERE id = $1`

	var article articleDomain.Article
	err := querier.QueryRowContext(ctx, query, articleID).Scan(
		&article.ID,
		&article.Title,
		&article.Content,
		&article.AuthorID,
		&article.CreatedAt,
		&article.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, articleDomain.ErrArticleNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get article")
	}

	return &article, nil
}

// List retrieves articles ordered by creation time (newest first) with
// pagination support.
func (p *PostgreSQLArticleRepository) List(
	ctx context.Context,
	offset, limit int,
) ([]*articleDomain.Article, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT id, title, content, author_id, created_at, updated_at
			  FROM articles
			  ORDER BY created_at DESC
			  LIMIT $1 OFFSET $2`

	rows, err := querier.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list articles")
	}
	defer func() {
		_ = rows.Close()
	}()

	articles := make([]*articleDomain.Article, 0)
	for rows.Next() {
		var article articleDomain.Article

		err := rows.Scan(
			&article.ID,
			&article.Title,
			&article.Content,
			&article.AuthorID,
			&article.CreatedAt,
			&article.UpdatedAt,
		)
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to scan article row")
		}

		articles = append(articles, &article)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "error iterating article rows")
	}

	return articles, nil
}

// Delete removes an article. Returns ErrArticleNotFound when no row matches.
func (p *PostgreSQLArticleRepository) Delete(ctx context.Context, articleID uuid.UUID) error {
	querier := database.GetTx(ctx, p.db)

	query := `DELETE FROM articles WHERE id = $1`

	result, err := querier.ExecContext(ctx, query, articleID)
	if err != nil {
		return apperrors.Wrap(err, "failed to delete article")
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return apperrors.Wrap(err, "failed to check deleted article rows")
	}
	if affected == 0 {
		return articleDomain.ErrArticleNotFound
	}

	return nil
}

// NewPostgreSQLArticleRepository creates a new PostgreSQL article repository.
func NewPostgreSQLArticleRepository(db *sql.DB) *PostgreSQLArticleRepository {
	return &PostgreSQLArticleRepository{db: db}
}
