package seasons

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

type Repository struct {
	q sqlutil.Querier
}

func NewRepository(q sqlutil.Querier) *Repository {
	return &Repository{q: q}
}

func (r *Repository) CreateSeason(ctx context.Context, req CreateSeasonRequest, groups []models.AgeGroup) (*models.Season, error) {
	groupBytes, err := json.Marshal(groups)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal age groups: %w", err)
	}

	row := r.q.QueryRowContext(ctx, `
		INSERT INTO seasons (id, program_id, name, status, age_groups, registration_fee, opens_at, closes_at, max_per_age_group)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, program_id, name, status, age_groups, registration_fee, opens_at, closes_at, max_per_age_group, total_registrations, created_at, updated_at`,
		req.ID, req.ProgramID, req.Name, models.SeasonStatusSetup, groupBytes,
		req.RegistrationFee, sqlutil.ToSqlTime(req.OpensAt), sqlutil.ToSqlTime(req.ClosesAt),
		sqlutil.ToSqlInt32(req.MaxPerAgeGroup))

	season, err := scanSeason(row)
	if err != nil {
		return nil, fmt.Errorf("failed to create season: %w", err)
	}
	season.AgeGroupCounts = map[string]int{}
	return season, nil
}

func (r *Repository) GetSeason(ctx context.Context, id uuid.UUID) (*models.Season, error) {
	row := r.q.QueryRowContext(ctx, `
		SELECT id, program_id, name, status, age_groups, registration_fee, opens_at, closes_at, max_per_age_group, total_registrations, created_at, updated_at
		FROM seasons WHERE id = $1`, id)

	season, err := scanSeason(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSeasonNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get season: %w", err)
	}

	counts, err := r.GetCounters(ctx, id)
	if err != nil {
		return nil, err
	}
	season.AgeGroupCounts = counts
	return season, nil
}

func (r *Repository) GetCounters(ctx context.Context, seasonID uuid.UUID) (map[string]int, error) {
	rows, err := r.q.QueryContext(ctx, `
		SELECT age_group_id, count FROM season_age_group_counters WHERE season_id = $1`, seasonID)
	if err != nil {
		return nil, fmt.Errorf("failed to get season counters: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var id string
		var count int
		if err := rows.Scan(&id, &count); err != nil {
			return nil, fmt.Errorf("failed to scan season counter: %w", err)
		}
		counts[id] = count
	}
	return counts, rows.Err()
}

func (r *Repository) UpdateSeasonStatus(ctx context.Context, id uuid.UUID, status models.SeasonStatus) (*models.Season, error) {
	row := r.q.QueryRowContext(ctx, `
		UPDATE seasons SET status = $2, updated_at = now() WHERE id = $1
		RETURNING id, program_id, name, status, age_groups, registration_fee, opens_at, closes_at, max_per_age_group, total_registrations, created_at, updated_at`,
		id, status)

	season, err := scanSeason(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSeasonNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update season status: %w", err)
	}
	return season, nil
}

// IncrementRegistrationCounters bumps the per-age-group counter and the season
// total. The age-group bump is conditional on capacity: when the counter has
// already reached max the statement touches no row and ErrAgeGroupFull is
// returned, which aborts the surrounding transaction. This is the
// authoritative capacity enforcement; the app-layer pre-check only exists for
// a friendly early rejection.
func (r *Repository) IncrementRegistrationCounters(ctx context.Context, seasonID uuid.UUID, ageGroupID string, max *int) error {
	res, err := r.q.ExecContext(ctx, `
		INSERT INTO season_age_group_counters (season_id, age_group_id, count)
		VALUES ($1, $2, 1)
		ON CONFLICT (season_id, age_group_id) DO UPDATE
		SET count = season_age_group_counters.count + 1
		WHERE $3::int IS NULL OR season_age_group_counters.count < $3::int`,
		seasonID, ageGroupID, sqlutil.ToSqlInt32(max))
	if err != nil {
		return fmt.Errorf("failed to increment age group counter: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read counter result: %w", err)
	}
	if affected == 0 {
		return ErrAgeGroupFull
	}

	if _, err := r.q.ExecContext(ctx, `
		UPDATE seasons SET total_registrations = total_registrations + 1, updated_at = now()
		WHERE id = $1`, seasonID); err != nil {
		return fmt.Errorf("failed to increment total registrations: %w", err)
	}
	return nil
}

// DecrementRegistrationCounters reverses one registration's worth of counts,
// flooring at zero.
func (r *Repository) DecrementRegistrationCounters(ctx context.Context, seasonID uuid.UUID, ageGroupID string) error {
	if _, err := r.q.ExecContext(ctx, `
		UPDATE season_age_group_counters SET count = GREATEST(count - 1, 0)
		WHERE season_id = $1 AND age_group_id = $2`,
		seasonID, ageGroupID); err != nil {
		return fmt.Errorf("failed to decrement age group counter: %w", err)
	}

	if _, err := r.q.ExecContext(ctx, `
		UPDATE seasons SET total_registrations = GREATEST(total_registrations - 1, 0), updated_at = now()
		WHERE id = $1`, seasonID); err != nil {
		return fmt.Errorf("failed to decrement total registrations: %w", err)
	}
	return nil
}

func scanSeason(row *sql.Row) (*models.Season, error) {
	var season models.Season
	var groupBytes []byte
	var opensAt, closesAt sql.NullTime
	var maxPer sql.NullInt32

	err := row.Scan(&season.ID, &season.ProgramID, &season.Name, &season.Status,
		&groupBytes, &season.RegistrationFee, &opensAt, &closesAt, &maxPer,
		&season.TotalRegistrations, &season.CreatedAt, &season.UpdatedAt)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(groupBytes, &season.AgeGroups); err != nil {
		return nil, fmt.Errorf("failed to unmarshal age groups: %w", err)
	}
	season.OpensAt = sqlutil.FromSqlTime(opensAt)
	season.ClosesAt = sqlutil.FromSqlTime(closesAt)
	season.MaxPerAgeGroup = sqlutil.FromSqlInt32(maxPer)
	return &season, nil
}
