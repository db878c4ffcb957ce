package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Preference keys.
const (
	PrefCurrency     = "currency"
	PrefReferralCode = "referral_code"
)

// PreferenceRepository stores per-user key/value preferences in PostgreSQL.
type PreferenceRepository struct {
	db *pgxpool.Pool
}

// NewPreferenceRepository creates a new PreferenceRepository.
func NewPreferenceRepository(db *pgxpool.Pool) *PreferenceRepository {
	return &PreferenceRepository{db: db}
}

// Get returns the stored value and whether one exists.
func (r *PreferenceRepository) Get(ctx context.Context, userID, key string) (string, bool, error) {
	query := `SELECT value FROM user_preferences WHERE user_id = $1 AND key = $2`

	var value string
	err := r.db.QueryRow(ctx, query, userID, key).Scan(&value)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("failed to get preference %s: %w", key, err)
	}
	return value, true, nil
}

// Set inserts or replaces a value.
func (r *PreferenceRepository) Set(ctx context.Context, userID, key, value string) error {
	query := `
		INSERT INTO user_preferences (user_id, key, value, updated_at)
		VALUES ($1, $2, $3, NOW())
		ON CONFLICT (user_id, key) DO UPDATE
		SET value = EXCLUDED.value, updated_at = NOW()
	`
	if _, err := r.db.Exec(ctx, query, userID, key, value); err != nil {
		return fmt.Errorf("failed to set preference %s: %w", key, err)
	}
	return nil
}

// Ping checks the connection for health reporting.
func (r *PreferenceRepository) Ping(ctx context.Context) error {
	return r.db.Ping(ctx)
}
