package athletes

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/mcdev12/rosterpool/go/internal/models"
	"github.com/mcdev12/rosterpool/go/internal/sqlutil"
)

// ErrProfileNotFound is returned when no athlete profile exists for the id.
var ErrProfileNotFound = errors.New("athlete profile not found")

type Repository struct {
	q sqlutil.Querier
}

func NewRepository(q sqlutil.Querier) *Repository {
	return &Repository{q: q}
}

func (r *Repository) GetProfile(ctx context.Context, id uuid.UUID) (*models.AthleteProfile, error) {
	row := r.q.QueryRowContext(ctx, `
		SELECT id, first_name, last_name, birth_date, age_group_label, pool_status, created_at, updated_at
		FROM athlete_profiles WHERE id = $1`, id)

	var profile models.AthleteProfile
	var label sql.NullString
	var poolStatus []byte

	err := row.Scan(&profile.ID, &profile.FirstName, &profile.LastName,
		&profile.BirthDate, &label, &poolStatus, &profile.CreatedAt, &profile.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrProfileNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get athlete profile: %w", err)
	}

	profile.AgeGroupLabel = sqlutil.FromSqlStringPtr(label)
	if len(poolStatus) > 0 {
		var tag models.PoolStatusTag
		if err := json.Unmarshal(poolStatus, &tag); err != nil {
			return nil, fmt.Errorf("failed to unmarshal pool status: %w", err)
		}
		profile.PoolStatus = &tag
	}
	return &profile, nil
}

// TagPoolStatus stamps the profile with a pointer to its live pool entry.
func (r *Repository) TagPoolStatus(ctx context.Context, athleteID uuid.UUID, tag models.PoolStatusTag) error {
	tagBytes, err := json.Marshal(tag)
	if err != nil {
		return fmt.Errorf("failed to marshal pool status: %w", err)
	}

	res, err := r.q.ExecContext(ctx, `
		UPDATE athlete_profiles SET pool_status = $2, updated_at = now() WHERE id = $1`,
		athleteID, tagBytes)
	if err != nil {
		return fmt.Errorf("failed to tag athlete profile: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrProfileNotFound
	}
	return nil
}

// ClearPoolStatus removes the pool pointer, used when an entry is cancelled.
func (r *Repository) ClearPoolStatus(ctx context.Context, athleteID uuid.UUID) error {
	if _, err := r.q.ExecContext(ctx, `
		UPDATE athlete_profiles SET pool_status = NULL, updated_at = now() WHERE id = $1`,
		athleteID); err != nil {
		return fmt.Errorf("failed to clear pool status: %w", err)
	}
	return nil
}
