package draftpool

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/mcdev12/rosterpool/go/internal/models"
	"github.com/mcdev12/rosterpool/go/internal/sqlutil"
)

type Repository struct {
	q sqlutil.Querier
}

func NewRepository(q sqlutil.Querier) *Repository {
	return &Repository{q: q}
}

const entryColumns = `id, registration_id, program_id, season_id, age_group_id, athlete_id,
	first_name, last_name, birth_date, preferred_jersey, preferred_position,
	payment_status, status, team_id, drafted_by, drafted_at, draft_round, draft_pick,
	created_at, updated_at`

// InsertEntry creates a pool entry with status AVAILABLE. A unique violation
// on the live-athlete index surfaces as ErrDuplicateEntry, which is the
// in-transaction half of duplicate detection.
func (r *Repository) InsertEntry(ctx context.Context, entry *models.DraftPoolEntry) error {
	_, err := r.q.ExecContext(ctx, `
		INSERT INTO draft_pool_entries
			(id, registration_id, program_id, season_id, age_group_id, athlete_id,
			 first_name, last_name, birth_date, preferred_jersey, preferred_position,
			 payment_status, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
		entry.ID, entry.RegistrationID, entry.ProgramID, entry.SeasonID, entry.AgeGroupID,
		sqlutil.ToNullUUID(entry.AthleteID), entry.FirstName, entry.LastName, entry.BirthDate,
		sqlutil.ToSqlInt32(entry.PreferredJersey), sqlutil.ToSqlString(entry.PreferredPosition),
		entry.PaymentStatus, models.DraftStatusAvailable)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return ErrDuplicateEntry
		}
		return fmt.Errorf("failed to insert pool entry: %w", err)
	}
	return nil
}

func (r *Repository) GetEntry(ctx context.Context, id uuid.UUID) (*models.DraftPoolEntry, error) {
	row := r.q.QueryRowContext(ctx, `
		SELECT `+entryColumns+` FROM draft_pool_entries WHERE id = $1`, id)

	entry, err := scanEntry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrEntryNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get pool entry: %w", err)
	}
	return entry, nil
}

// GetEntryForUpdate loads an entry under a row lock. Only meaningful inside a
// transaction; cancel uses it to serialize with concurrent draft attempts.
func (r *Repository) GetEntryForUpdate(ctx context.Context, id uuid.UUID) (*models.DraftPoolEntry, error) {
	row := r.q.QueryRowContext(ctx, `
		SELECT `+entryColumns+` FROM draft_pool_entries WHERE id = $1 FOR UPDATE`, id)

	entry, err := scanEntry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrEntryNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to lock pool entry: %w", err)
	}
	return entry, nil
}

// FindDuplicate looks for a live entry in the season for the same athlete: by
// stable athlete id when present, otherwise by exact first/last name plus
// birthdate. Returns nil when no duplicate exists.
func (r *Repository) FindDuplicate(ctx context.Context, seasonID uuid.UUID, athleteID *uuid.UUID, firstName, lastName string, birthDate time.Time) (*models.DraftPoolEntry, error) {
	var row *sql.Row
	if athleteID != nil {
		row = r.q.QueryRowContext(ctx, `
			SELECT `+entryColumns+` FROM draft_pool_entries
			WHERE season_id = $1 AND athlete_id = $2 AND status <> 'CANCELLED'
			LIMIT 1`, seasonID, *athleteID)
	} else {
		row = r.q.QueryRowContext(ctx, `
			SELECT `+entryColumns+` FROM draft_pool_entries
			WHERE season_id = $1 AND lower(first_name) = lower($2) AND lower(last_name) = lower($3)
			  AND birth_date = $4 AND status <> 'CANCELLED'
			LIMIT 1`, seasonID, firstName, lastName, birthDate)
	}

	entry, err := scanEntry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to check for duplicate entry: %w", err)
	}
	return entry, nil
}

func (r *Repository) ListEntries(ctx context.Context, filter ListFilter) ([]models.DraftPoolEntry, error) {
	query := `SELECT ` + entryColumns + ` FROM draft_pool_entries WHERE season_id = $1`
	args := []any{filter.SeasonID}
	if filter.AgeGroupID != "" {
		args = append(args, filter.AgeGroupID)
		query += fmt.Sprintf(" AND age_group_id = $%d", len(args))
	}
	if filter.Status != "" {
		args = append(args, filter.Status)
		query += fmt.Sprintf(" AND status = $%d", len(args))
	}
	query += " ORDER BY created_at"

	rows, err := r.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list pool entries: %w", err)
	}
	defer rows.Close()

	var entries []models.DraftPoolEntry
	for rows.Next() {
		entry, err := scanEntryFrom(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan pool entry: %w", err)
		}
		entries = append(entries, *entry)
	}
	return entries, rows.Err()
}

// MarkDrafted is the compare-and-swap AVAILABLE -> DRAFTED. Returns nil with
// no error when the swap lost (entry missing or not AVAILABLE); the caller
// disambiguates.
func (r *Repository) MarkDrafted(ctx context.Context, entryID, teamID, actorID uuid.UUID, round, pick *int) (*models.DraftPoolEntry, error) {
	row := r.q.QueryRowContext(ctx, `
		UPDATE draft_pool_entries
		SET status = 'DRAFTED', team_id = $2, drafted_by = $3, drafted_at = now(),
		    draft_round = $4, draft_pick = $5, updated_at = now()
		WHERE id = $1 AND status = 'AVAILABLE'
		RETURNING `+entryColumns,
		entryID, teamID, actorID, sqlutil.ToSqlInt32(round), sqlutil.ToSqlInt32(pick))

	entry, err := scanEntry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to mark entry drafted: %w", err)
	}
	return entry, nil
}

// MarkAvailable is the compare-and-swap DRAFTED -> AVAILABLE, guarded on the
// holding team. Returns nil with no error when the swap lost.
func (r *Repository) MarkAvailable(ctx context.Context, entryID, teamID uuid.UUID) (*models.DraftPoolEntry, error) {
	row := r.q.QueryRowContext(ctx, `
		UPDATE draft_pool_entries
		SET status = 'AVAILABLE', team_id = NULL, drafted_by = NULL, drafted_at = NULL,
		    draft_round = NULL, draft_pick = NULL, updated_at = now()
		WHERE id = $1 AND status = 'DRAFTED' AND team_id = $2
		RETURNING `+entryColumns,
		entryID, teamID)

	entry, err := scanEntry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to mark entry available: %w", err)
	}
	return entry, nil
}

// MarkCancelled transitions the locked entry to its terminal status.
func (r *Repository) MarkCancelled(ctx context.Context, entryID uuid.UUID) error {
	if _, err := r.q.ExecContext(ctx, `
		UPDATE draft_pool_entries
		SET status = 'CANCELLED', updated_at = now()
		WHERE id = $1`, entryID); err != nil {
		return fmt.Errorf("failed to mark entry cancelled: %w", err)
	}
	return nil
}

// CancelRegistration marks the linked registration cancelled so entry and
// registration converge in one transaction.
func (r *Repository) CancelRegistration(ctx context.Context, registrationID uuid.UUID) error {
	if _, err := r.q.ExecContext(ctx, `
		UPDATE registrations
		SET status = 'CANCELLED', updated_at = now()
		WHERE id = $1 AND status = 'ACTIVE'`, registrationID); err != nil {
		return fmt.Errorf("failed to cancel registration: %w", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEntry(row *sql.Row) (*models.DraftPoolEntry, error) {
	return scanEntryFrom(row)
}

func scanEntryFrom(s rowScanner) (*models.DraftPoolEntry, error) {
	var entry models.DraftPoolEntry
	var athleteID, teamID, draftedBy uuid.NullUUID
	var preferredJersey, round, pick sql.NullInt32
	var preferredPosition sql.NullString
	var draftedAt sql.NullTime

	err := s.Scan(&entry.ID, &entry.RegistrationID, &entry.ProgramID, &entry.SeasonID,
		&entry.AgeGroupID, &athleteID, &entry.FirstName, &entry.LastName, &entry.BirthDate,
		&preferredJersey, &preferredPosition, &entry.PaymentStatus, &entry.Status,
		&teamID, &draftedBy, &draftedAt, &round, &pick, &entry.CreatedAt, &entry.UpdatedAt)
	if err != nil {
		return nil, err
	}

	entry.AthleteID = sqlutil.FromNullUUID(athleteID)
	entry.TeamID = sqlutil.FromNullUUID(teamID)
	entry.DraftedBy = sqlutil.FromNullUUID(draftedBy)
	entry.PreferredJersey = sqlutil.FromSqlInt32(preferredJersey)
	entry.PreferredPosition = sqlutil.FromSqlStringPtr(preferredPosition)
	entry.DraftedAt = sqlutil.FromSqlTime(draftedAt)
	entry.Round = sqlutil.FromSqlInt32(round)
	entry.Pick = sqlutil.FromSqlInt32(pick)
	return &entry, nil
}
