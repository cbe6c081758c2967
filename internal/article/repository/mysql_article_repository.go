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

// MySQLArticleRepository implements article persistence for MySQL.
// Uses BINARY(16) for UUID storage with transaction support via database.GetTx().
type MySQLArticleRepository struct {
	db *sql.DB
}

// Create inserts a new article using BINARY(16) for UUIDs.
func (m *MySQLArticleRepository) Create(ctx context.Context, article *articleDomain.Article) error {
	querier := database.GetTx(ctx, m.db)

	id, err := article.ID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal article id")
	}

	query := `INSERT INTO articles (id, title, content, author_id, created_at, updated_at)
			  VALUES (?, ?, ?, ?, ?, ?)`

	_, err = querier.ExecContext(
		ctx,
		query,
		id,
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

// Update modifies an existing article using BINARY(16) for UUIDs.
func (m *MySQLArticleRepository) Update(ctx context.Context, article *articleDomain.Article) error {
	querier := database.GetTx(ctx, m.db)

	id, err := article.ID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal article id")
	}

	query := `UPDATE articles
			  SET title = ?,
				  content = ?,
				  updated_at = ?
			  WHERE id = ?`

	_, err = querier.ExecContext(
		ctx,
		query,
		article.Title,
		article.Content,
		article.UpdatedAt,
		id,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to update article")
	}

	return nil
}

// GetByID retrieves an article by ID using BINARY(16) for UUIDs. Returns
// ErrArticleNotFound when no row matches.
func (m *MySQLArticleRepository) GetByID(
	ctx context.Context,
	articleID uuid.UUID,
) (*articleDomain.Article, error) {
	querier := database.GetTx(ctx, m.db)

	id, err := articleID.MarshalBinary()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal article id")
	}

	query := `SELECT id, title, content, author_id, created_at, updated_at
			  FROM articles WHERE id = ?`

	var article articleDomain.Article
	var idBytes []byte

	err = querier.QueryRowContext(ctx, query, id).Scan(
		&idBytes,
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

	if err := article.ID.UnmarshalBinary(idBytes); err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal article id")
	}

	return &article, nil
}

// List retrieves articles ordered by creation time (newest first) with
// pagination support.
func (m *MySQLArticleRepository) List(
	ctx context.Context,
	offset, limit int,
) ([]*articleDomain.Article, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT id, title, content, author_id, created_at, updated_at
			  FROM articles
			  ORDER BY created_at DESC
			  LIMIT ? OFFSET ?`

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
		var idBytes []byte

		err := rows.Scan(
			&idBytes,
			&article.Title,
			&article.Content,
			&article.AuthorID,
			&article.CreatedAt,
			&article.UpdatedAt,
		)
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to scan article row")
		}

		if err := article.ID.UnmarshalBinary(idBytes); err != nil {
			return nil, apperrors.Wrap(err, "failed to unmarshal article id")
		}

		articles = append(articles, &article)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "error iterating article rows")
	}

	return articles, nil
}

// Delete removes an article using BINARY(16) for UUIDs. Returns
// ErrArticleNotFound when no row matches.
func (m *MySQLArticleRepository) Delete(ctx context.Context, articleID uuid.UUID) error {
	querier := database.GetTx(ctx, m.db)

	id, err := articleID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal article id")
	}

	query := `DELETE FROM articles WHERE id = ?`

	result, err := querier.ExecContext(ctx, query, id)
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

// NewMySQLArticleRepository creates a new MySQL article repository.
func NewMySQLArticleRepository(db *sql.DB) *MySQLArticleRepository {
	return &MySQLArticleRepository{db: db}
}
