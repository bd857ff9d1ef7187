package teams

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/mcdev12/rosterpool/go/internal/agegroup"
	"github.com/mcdev12/rosterpool/go/internal/models"
	"github.com/mcdev12/rosterpool/go/internal/sqlutil"
)

type Repository struct {
	q sqlutil.Querier
}

func NewRepository(q sqlutil.Querier) *Repository {
	return &Repository{q: q}
}

const teamColumns = `id, season_id, age_group, name, coach_ids, max_roster_size, current_roster_size, created_at, updated_at`

func (r *Repository) CreateTeam(ctx context.Context, req CreateTeamRequest) (*models.GeneratedTeam, error) {
	coachIDs := make([]string, len(req.CoachIDs))
	for i, id := range req.CoachIDs {
		coachIDs[i] = id.String()
	}

	row := r.q.QueryRowContext(ctx, `
		INSERT INTO generated_teams (id, season_id, age_group, name, coach_ids, max_roster_size)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING `+teamColumns,
		req.ID, req.SeasonID, req.AgeGroup, req.Name, pq.Array(coachIDs), req.MaxRosterSize)

	team, err := scanTeam(row)
	if err != nil {
		return nil, fmt.Errorf("failed to create team: %w", err)
	}
	return team, nil
}

func (r *Repository) GetTeam(ctx context.Context, id uuid.UUID) (*models.GeneratedTeam, error) {
	row := r.q.QueryRowContext(ctx, `
		SELECT `+teamColumns+` FROM generated_teams WHERE id = $1`, id)

	team, err := scanTeam(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrTeamNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get team: %w", err)
	}
	return team, nil
}

func (r *Repository) ListTeamsBySeason(ctx context.Context, seasonID uuid.UUID) ([]models.GeneratedTeam, error) {
	rows, err := r.q.QueryContext(ctx, `
		SELECT `+teamColumns+` FROM generated_teams WHERE season_id = $1 ORDER BY age_group, name`, seasonID)
	if err != nil {
		return nil, fmt.Errorf("failed to list teams: %w", err)
	}
	defer rows.Close()

	var teams []models.GeneratedTeam
	for rows.Next() {
		team, err := scanTeamFrom(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan team: %w", err)
		}
		teams = append(teams, *team)
	}
	return teams, rows.Err()
}

// AddCoach appends a coach to a team's coach list if not already attached.
func (r *Repository) AddCoach(ctx context.Context, teamID, coachID uuid.UUID) error {
	res, err := r.q.ExecContext(ctx, `
		UPDATE generated_teams
		SET coach_ids = array_append(coach_ids, $2), updated_at = now()
		WHERE id = $1 AND NOT ($2 = ANY(coach_ids))`, teamID, coachID)
	if err != nil {
		return fmt.Errorf("failed to add coach: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		// Zero rows means the team is missing or the coach was already
		// attached; only the former is an error.
		if _, err := r.GetTeam(ctx, teamID); err != nil {
			return err
		}
	}
	return nil
}

// IncrementRosterSize bumps the live roster count, conditional on the team's
// maximum. Zero rows touched means the team is full (or missing).
func (r *Repository) IncrementRosterSize(ctx context.Context, teamID uuid.UUID) error {
	res, err := r.q.ExecContext(ctx, `
		UPDATE generated_teams
		SET current_roster_size = current_roster_size + 1, updated_at = now()
		WHERE id = $1 AND current_roster_size < max_roster_size`, teamID)
	if err != nil {
		return fmt.Errorf("failed to increment roster size: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read roster update result: %w", err)
	}
	if affected == 0 {
		if _, err := r.GetTeam(ctx, teamID); err != nil {
			return err
		}
		return ErrTeamFull
	}
	return nil
}

// DecrementRosterSize lowers the live roster count, flooring at zero.
func (r *Repository) DecrementRosterSize(ctx context.Context, teamID uuid.UUID) error {
	if _, err := r.q.ExecContext(ctx, `
		UPDATE generated_teams
		SET current_roster_size = GREATEST(current_roster_size - 1, 0), updated_at = now()
		WHERE id = $1`, teamID); err != nil {
		return fmt.Errorf("failed to decrement roster size: %w", err)
	}
	return nil
}

// TeamJerseyNumbers returns the jersey numbers already claimed by players
// drafted onto the team.
func (r *Repository) TeamJerseyNumbers(ctx context.Context, teamID uuid.UUID) ([]int, error) {
	return r.queryNumbers(ctx, `
		SELECT preferred_jersey FROM draft_pool_entries
		WHERE team_id = $1 AND status = 'DRAFTED' AND preferred_jersey IS NOT NULL`, teamID)
}

// PendingPreferredNumbers returns preferred numbers on live, undrafted
// registrations feeding the team's age group.
func (r *Repository) PendingPreferredNumbers(ctx context.Context, teamID uuid.UUID) ([]int, error) {
	return r.queryNumbers(ctx, `
		SELECT e.preferred_jersey
		FROM draft_pool_entries e
		JOIN generated_teams t ON t.id = $1 AND t.season_id = e.season_id
		WHERE e.status = 'AVAILABLE'
		  AND e.preferred_jersey IS NOT NULL
		  AND strpos(upper(t.age_group), e.age_group_id) > 0`, teamID)
}

func (r *Repository) queryNumbers(ctx context.Context, query string, teamID uuid.UUID) ([]int, error) {
	rows, err := r.q.QueryContext(ctx, query, teamID)
	if err != nil {
		return nil, fmt.Errorf("failed to query jersey numbers: %w", err)
	}
	defer rows.Close()

	var numbers []int
	for rows.Next() {
		var n int
		if err := rows.Scan(&n); err != nil {
			return nil, fmt.Errorf("failed to scan jersey number: %w", err)
		}
		numbers = append(numbers, n)
	}
	return numbers, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTeam(row *sql.Row) (*models.GeneratedTeam, error) {
	return scanTeamFrom(row)
}

func scanTeamFrom(s rowScanner) (*models.GeneratedTeam, error) {
	var team models.GeneratedTeam
	var coachIDs []string

	err := s.Scan(&team.ID, &team.SeasonID, &team.AgeGroup, &team.Name,
		pq.Array(&coachIDs), &team.MaxRosterSize, &team.CurrentRosterSize,
		&team.CreatedAt, &team.UpdatedAt)
	if err != nil {
		return nil, err
	}

	team.CoachIDs = make([]uuid.UUID, 0, len(coachIDs))
	for _, raw := range coachIDs {
		id, err := uuid.Parse(raw)
		if err != nil {
			return nil, fmt.Errorf("failed to parse coach id %q: %w", raw, err)
		}
		team.CoachIDs = append(team.CoachIDs, id)
	}
	return &team, nil
}

// MatchesAgeGroup reports whether a team's configured age group covers the
// given age-group id: single label equality, membership in a comma-separated
// list, or substring containment. First match wins per team.
func MatchesAgeGroup(teamAgeGroup, ageGroupID string) bool {
	team := agegroup.Normalize(teamAgeGroup)
	target := agegroup.Normalize(ageGroupID)
	if team == "" || target == "" {
		return false
	}
	if team == target {
		return true
	}
	for _, part := range strings.Split(team, ",") {
		if strings.TrimSpace(part) == target {
			return true
		}
	}
	return strings.Contains(team, target)
}
