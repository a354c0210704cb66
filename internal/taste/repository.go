// AngelaMos | 2026
// repository.go

package taste

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/beanvoyage/storefront/internal/core"
)

type Repository interface {
	// GetByUserID returns nil, nil when the user has not taken the quiz.
	GetByUserID(ctx context.Context, userID string) (*Profile, error)
	Upsert(ctx context.Context, profile *Profile) (bool, error)
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

func (r *repository) GetByUserID(ctx context.Context, userID string) (*Profile, error) {
	query := `
		SELECT user_id, acidity, body, roast, notes, updated_at
		FROM taste_profiles
		WHERE user_id = $1`

	var profile Profile
	err := r.db.GetContext(ctx, &profile, query, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get taste profile: %w", err)
	}

	return &profile, nil
}

// Upsert overwrites the user's profile and reports whether a new row was
// created. xmax is zero only for freshly inserted tuples.
func (r *repository) Upsert(ctx context.Context, profile *Profile) (bool, error) {
	query := `
		INSERT INTO taste_profiles (user_id, acidity, body, roast, notes)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (user_id) DO UPDATE
		SET acidity = EXCLUDED.acidity,
		    body = EXCLUDED.body,
		    roast = EXCLUDED.roast,
		    notes = EXCLUDED.notes,
		    updated_at = NOW()
		RETURNING updated_at, (xmax = 0) AS inserted`

	var result struct {
		UpdatedAt sql.NullTime `db:"updated_at"`
		Inserted  bool         `db:"inserted"`
	}

	err := r.db.GetContext(ctx, &result, query,
		profile.UserID,
		profile.Acidity,
		profile.Body,
		profile.Roast,
		profile.Notes,
	)
	if err != nil {
		return false, fmt.Errorf("upsert taste profile: %w", err)
	}

	profile.UpdatedAt = result.UpdatedAt.Time
	return result.Inserted, nil
}
