package tokens

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/vidtube/vidtube/internal/client/models"
	"github.com/vidtube/vidtube/internal/dbx"
)

const (
	accessTokenKey  = "accessToken"
	refreshTokenKey = "refreshToken"
)

type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) get(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := r.db.QueryRowContext(ctx, `SELECT value FROM credentials WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to get credentials[%s]: %w", key, err)
	}
	return value, true, nil
}

// Get reads the stored pair. If exactly one of the two tokens is present the
// store is considered corrupt: both are cleared and (nil, nil) is returned.
func (r *SQLiteRepository) Get(ctx context.Context) (*models.TokenPair, error) {
	access, haveAccess, err := r.get(ctx, accessTokenKey)
	if err != nil {
		return nil, err
	}
	refresh, haveRefresh, err := r.get(ctx, refreshTokenKey)
	if err != nil {
		return nil, err
	}

	if !haveAccess && !haveRefresh {
		return nil, nil
	}
	if haveAccess != haveRefresh {
		if err := r.Clear(ctx); err != nil {
			return nil, err
		}
		return nil, nil
	}

	return &models.TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

// Set upserts both tokens in a single transaction.
func (r *SQLiteRepository) Set(ctx context.Context, pair models.TokenPair) error {
	return dbx.WithTx(ctx, r.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		for key, value := range map[string]string{
			accessTokenKey:  pair.AccessToken,
			refreshTokenKey: pair.RefreshToken,
		} {
			_, err := tx.ExecContext(ctx, `
				INSERT INTO credentials (key, value) VALUES (?, ?)
				ON CONFLICT(key) DO UPDATE SET value = excluded.value
			`, key, value)
			if err != nil {
				return fmt.Errorf("failed to set credentials[%s]: %w", key, err)
			}
		}
		return nil
	})
}

// Clear removes both tokens. Idempotent.
func (r *SQLiteRepository) Clear(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM credentials WHERE key IN (?, ?)`, accessTokenKey, refreshTokenKey)
	if err != nil {
		return fmt.Errorf("failed to clear credentials: %w", err)
	}
	return nil
}
