// Package credentials persists the client-side session: exactly two slots,
// the access token and the serialized user profile, under fixed keys in a
// local sqlite key-value table. The slots mirror the in-memory session
// whenever it is non-empty and are always removed together.
package credentials

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/healthmate/cli/internal/dbx"
	"github.com/healthmate/cli/internal/models"
)

// Storage keys. Stable: changing them silently logs every user out.
const (
	tokenKey = "healthmate_token"
	userKey  = "healthmate_user"
)

// Repository reads and writes the persisted session.
//
// Token is consulted on every outgoing request; SaveSession and Clear are
// only invoked by login/register/update-profile/logout and by the forced
// logout on a 401.
type Repository interface {
	Token(ctx context.Context) (string, error)
	User(ctx context.Context) (*models.UserProfile, error)
	SaveSession(ctx context.Context, token string, user *models.UserProfile) error
	SaveUser(ctx context.Context, user *models.UserProfile) error
	Clear(ctx context.Context) error
}

// SQLiteRepository is the Repository backed by the local sqlite database.
type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) get(ctx context.Context, q dbx.DBTX, key string) ([]byte, error) {
	var value []byte
	err := q.QueryRowContext(ctx, `SELECT value FROM credentials WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get credentials[%s]: %w", key, err)
	}
	return value, nil
}

func (r *SQLiteRepository) set(ctx context.Context, q dbx.DBTX, key string, value []byte) error {
	_, err := q.ExecContext(ctx, `
		INSERT INTO credentials (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, key, value)
	if err != nil {
		return fmt.Errorf("failed to set credentials[%s]: %w", key, err)
	}
	return nil
}

// Token returns the stored access token, or "" when no session is persisted.
func (r *SQLiteRepository) Token(ctx context.Context) (string, error) {
	value, err := r.get(ctx, r.db, tokenKey)
	if err != nil {
		return "", err
	}
	return string(value), nil
}

// User returns the stored profile, or nil when no session is persisted.
func (r *SQLiteRepository) User(ctx context.Context) (*models.UserProfile, error) {
	value, err := r.get(ctx, r.db, userKey)
	if err != nil {
		return nil, err
	}
	if len(value) == 0 {
		return nil, nil
	}

	var user models.UserProfile
	if err := json.Unmarshal(value, &user); err != nil {
		return nil, fmt.Errorf("failed to decode stored user: %w", err)
	}
	return &user, nil
}

// SaveSession writes both slots in a single transaction so a crash cannot
// leave a token without its user or vice versa.
func (r *SQLiteRepository) SaveSession(ctx context.Context, token string, user *models.UserProfile) error {
	encoded, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("failed to encode user: %w", err)
	}

	return dbx.WithTx(ctx, r.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := r.set(ctx, tx, tokenKey, []byte(token)); err != nil {
			return err
		}
		return r.set(ctx, tx, userKey, encoded)
	})
}

// SaveUser refreshes only the profile slot, keeping the current token.
func (r *SQLiteRepository) SaveUser(ctx context.Context, user *models.UserProfile) error {
	encoded, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("failed to encode user: %w", err)
	}
	return r.set(ctx, r.db, userKey, encoded)
}

// Clear removes both slots together.
func (r *SQLiteRepository) Clear(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM credentials WHERE key IN (?, ?)`, tokenKey, userKey)
	if err != nil {
		return fmt.Errorf("failed to clear credentials: %w", err)
	}
	return nil
}
