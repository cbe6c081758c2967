package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"github.com/google/uuid"

	authDomain "github.com/allisson/guardpost/internal/auth/domain"
	"github.com/allisson/guardpost/internal/database"
	apperrors "github.com/allisson/guardpost/internal/errors"
)

// MySQLIdentityRepository implements identity persistence for MySQL.
// Uses BINARY(16) for UUID storage with transaction support via database.GetTx().
type MySQLIdentityRepository struct {
	db *sql.DB
}

// Create inserts a new identity using BINARY(16) for UUIDs. Returns
// ErrIdentityAlreadyExists when the username is already taken.
func (m *MySQLIdentityRepository) Create(ctx context.Context, identity *authDomain.StoredIdentity) error {
	querier := database.GetTx(ctx, m.db)

	claimsJSON, err := json.Marshal(identity.Claims)
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal identity claims")
	}

	id, err := identity.ID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal identity id")
	}

	query := `INSERT INTO identities (id, username, display_name, secret_hash, claims, is_active, created_at, updated_at)
			  VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

	_, err = querier.ExecContext(
		ctx,
		query,
		id,
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

// Update modifies an existing identity using BINARY(16) for UUIDs.
func (m *MySQLIdentityRepository) Update(ctx context.Context, identity *authDomain.StoredIdentity) error {
	querier := database.GetTx(ctx, m.db)

	claimsJSON, err := json.Marshal(identity.Claims)
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal identity claims")
	}

	id, err := identity.ID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal identity id")
	}

	query := `UPDATE identities
			  SET display_name = ?,
				  secret_hash = ?,
				  claims = ?,
				  is_active = ?,
				  updated_at = ?
			  WHERE id = ?`

	_, err = querier.ExecContext(
		ctx,
		query,
		identity.DisplayName,
		identity.SecretHash,
		claimsJSON,
		identity.IsActive,
		identity.UpdatedAt,
		id,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to update identity")
	}

	return nil
}

// GetByID retrieves an identity by ID using BINARY(16) for UUIDs. Returns
// ErrIdentityNotFound when no row matches.
func (m *MySQLIdentityRepository) GetByID(
	ctx context.Context,
	identityID uuid.UUID,
) (*authDomain.StoredIdentity, error) {
	querier := database.GetTx(ctx, m.db)

	id, err := identityID.MarshalBinary()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal identity id")
	}

	query := `SELECT id, username, display_name, secret_hash, claims, is_active, created_at, updated_at
			  FROM identities WHERE id = ?`

	return m.scanIdentity(querier.QueryRowContext(ctx, query, id))
}

// GetByUsername retrieves an identity by username. Returns ErrIdentityNotFound
// when no row matches.
func (m *MySQLIdentityRepository) GetByUsername(
	ctx context.Context,
	username string,
) (*authDomain.StoredIdentity, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT id, username, display_name, secret_hash, claims, is_active, created_at, updated_at
			  FROM identities WHERE username = ?`

	return m.scanIdentity(querier.QueryRowContext(ctx, query, username))
}

// List retrieves identities ordered by username with pagination support.
func (m *MySQLIdentityRepository) List(
	ctx context.Context,
	offset, limit int,
) ([]*authDomain.StoredIdentity, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT id, username, display_name, secret_hash, claims, is_active, created_at, updated_at
			  FROM identities
			  ORDER BY username ASC
			  LIMIT ? OFFSET ?`

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
		var idBytes []byte
		var claimsJSON []byte

		err := rows.Scan(
			&idBytes,
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

		if err := identity.ID.UnmarshalBinary(idBytes); err != nil {
			return nil, apperrors.Wrap(err, "failed to unmarshal identity id")
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

func (m *MySQLIdentityRepository) scanIdentity(row *sql.Row) (*authDomain.StoredIdentity, error) {
	var identity authDomain.StoredIdentity
	var idBytes []byte
	var claimsJSON []byte

	err := row.Scan(
		&idBytes,
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

	if err := identity.ID.UnmarshalBinary(idBytes); err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal identity id")
	}

	if err := json.Unmarshal(claimsJSON, &identity.Claims); err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal identity claims")
	}

	return &identity, nil
}

// NewMySQLIdentityRepository creates a new MySQL identity repository.
func NewMySQLIdentityRepository(db *sql.DB) *MySQLIdentityRepository {
	return &MySQLIdentityRepository{db: db}
}
