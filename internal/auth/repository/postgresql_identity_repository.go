// Package repository implements data persistence for stored identities.
//
// Provides PostgreSQL and MySQL implementations with transaction support via
// database.GetTx(), plus an in-memory implementation for tests and single
// process deployments. PostgreSQL uses native UUID types, MySQL uses
// BINARY(16) types; claims are stored as a JSON column on both.
package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"strings"

	"github.com/google/uuid"

	authDomain "github.com/allisson/guardpost/internal/auth/domain"
	"github.com/allisson/guardpost/internal/database"
	apperrors "github.com/allisson/guardpost/internal/errors"
)

// PostgreSQLIdentityRepository implements identity persistence for PostgreSQL.
type PostgreSQLIdentityRepository struct {
	db *sql.DB
}

// Create inserts a new identity. Returns ErrIdentityAlreadyExists when the
// username is already taken.
func (p *PostgreSQLIdentityRepository) Create(ctx context.Context, identity *authDomain.StoredIdentity) error {
	querier := database.GetTx(ctx, p.db)

	claimsJSON, err := json.Marshal(identity.Claims)
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal identity claims")
	}

	query := `INSERT INTO identities (id, username, display_name, secret_hash, claims, is_active, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err = querier.ExecContext(
		ctx,
		query,
		identity.ID,
		identity.Username,
		identity.DisplayName,
		identity.SecretHash,
		claimsJSON,
		identity.IsActive,
		identity.CreatedAt,
		identity.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return authDomain.ErrIdentityAlreadyExists
		}
		return apperrors.Wrap(err, "failed to create identity")
	}
	return nil
}

// Update modifies an existing identity.
func (p *PostgreSQLIdentityRepository) Update(ctx context.Context, identity *authDomain.StoredIdentity) error {
	querier := database.GetTx(ctx, p.db)

	claimsJSON, err := json.Marshal(identity.Claims)
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal identity claims")
	}

	query := `UPDATE identities
			  SET display_name = $1,
				  secret_hash = $2,
				  claims = $3,
				  is_active = $4,
				  updated_at = $5
			  WHERE id = $6`

	_, err = querier.ExecContext(
		ctx,
		query,
		identity.DisplayName,
		identity.SecretHash,
		claimsJSON,
		identity.IsActive,
		identity.UpdatedAt,
		identity.ID,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to update identity")
	}

	return nil
}

// GetByID retrieves an identity by ID. Returns ErrIdentityNotFound when no
// row matches.
func (p *PostgreSQLIdentityRepository) GetByID(
	ctx context.Context,
	identityID uuid.UUID,
) (*authDomain.StoredIdentity, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT id, username, display_name, secret_hash, claims, is_active, created_at, updated_at
			  FROM identities WHERE id = $1`

	return p.scanIdentity(querier.QueryRowContext(ctx, query, identityID))
}

// GetByUsername retrieves an identity by username. Returns ErrIdentityNotFound
// when no row matches.
func (p *PostgreSQLIdentityRepository) GetByUsername(
	ctx context.Context,
	username string,
) (*authDomain.StoredIdentity, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT id, username, display_name, secret_hash, claims, is_active, created_at, updated_at
			  FROM identities WHERE username = $1`

	return p.scanIdentity(querier.QueryRowContext(ctx, query, username))
}

// List retrieves identities ordered by username with pagination support.
func (p *PostgreSQLIdentityRepository) List(
	ctx context.Context,
	offset, limit int,
) ([]*authDomain.StoredIdentity, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT id, username, display_name, secret_hash, claims, is_active, created_at, updated_at
			  FROM identities
			  ORDER BY username ASC
			  LIMIT $1 OFFSET $2`

	rows, err := querier.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list identities")
	}
	defer func() {
		_ = rows.Close()
	}()

	identities := make([]*authDomain.StoredIdentity, 0)
	for rows.Next() {
		var identity authDomain.StoredIdentity
		var claimsJSON []byte

		err := rows.Scan(
			&identity.ID,
			&identity.Username,
			&identity.DisplayName,
			&identity.SecretHash,
			&claimsJSON,
			&identity.IsActive,
			&identity.CreatedAt,
			&identity.UpdatedAt,
		)
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to scan identity row")
		}

		if err := json.Unmarshal(claimsJSON, &identity.Claims); err != nil {
			return nil, apperrors.Wrap(err, "failed to unmarshal identity claims")
		}

		identities = append(identities, &identity)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "error iterating identity rows")
	}

	return identities, nil
}

func (p *PostgreSQLIdentityRepository) scanIdentity(row *sql.Row) (*authDomain.StoredIdentity, error) {
	var identity authDomain.StoredIdentity
	var claimsJSON []byte

	err := row.Scan(
		&identity.ID,
		&identity.Username,
		&identity.DisplayName,
		&identity.SecretHash,
		&claimsJSON,
		&identity.IsActive,
		&identity.CreatedAt,
		&identity.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, authDomain.ErrIdentityNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get identity")
	}

	if err := json.Unmarshal(claimsJSON, &identity.Claims); err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal identity claims")
	}

	return &identity, nil
}

// isUniqueViolation checks if the error is a unique constraint violation.
// Matches both PostgreSQL ("duplicate key value violates unique constraint")
// and MySQL ("Error 1062: Duplicate entry") phrasings.
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	errMsg := strings.ToLower(err.Error())
	return strings.Contains(errMsg, "duplicate key") ||
		strings.Contains(errMsg, "unique constraint") ||
		strings.Contains(errMsg, "duplicate entry")
}

// NewPostgreSQLIdentityRepository creates a new PostgreSQL identity repository.
func NewPostgreSQLIdentityRepository(db *sql.DB) *PostgreSQLIdentityRepository {
	return &PostgreSQLIdentityRepository{db: db}
}
