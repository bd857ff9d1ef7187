package draftpool

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/mcdev12/rosterpool/go/internal/models"
	"github.com/mcdev12/rosterpool/go/internal/seasons"
	"github.com/mcdev12/rosterpool/go/internal/sqlutil"
	"github.com/mcdev12/rosterpool/go/internal/teams"
	"github.com/rs/zerolog/log"
)

// ProfileStore defines the best-effort athlete-profile collaborator.
type ProfileStore interface {
	ClearPoolStatus(ctx context.Context, athleteID uuid.UUID) error
}

// App drives the pool entry state machine: AVAILABLE -> DRAFTED -> AVAILABLE,
// and AVAILABLE/DRAFTED -> CANCELLED (terminal). Draft and undraft are
// compare-and-swaps; cancel serializes on a row lock because it touches the
// registration, the team roster, and the season counters together.
type App struct {
	db       *sql.DB
	profiles ProfileStore
}

// NewApp creates a new draftpool App
func NewApp(db *sql.DB, profiles ProfileStore) *App {
	return &App{db: db, profiles: profiles}
}

// GetEntry retrieves a pool entry by ID
func (a *App) GetEntry(ctx context.Context, id uuid.UUID) (*models.DraftPoolEntry, error) {
	return NewRepository(a.db).GetEntry(ctx, id)
}

// ListEntries retrieves pool entries matching the filter
func (a *App) ListEntries(ctx context.Context, filter ListFilter) ([]models.DraftPoolEntry, error) {
	if filter.SeasonID == uuid.Nil {
		return nil, fmt.Errorf("validation failed: season id is required")
	}
	return NewRepository(a.db).ListEntries(ctx, filter)
}

// Draft places an entry on a team and bumps the team's roster size in the
// same transaction.
func (a *App) Draft(ctx context.Context, req DraftRequest) (*models.DraftPoolEntry, error) {
	if req.EntryID == uuid.Nil || req.TeamID == uuid.Nil || req.ActorID == uuid.Nil {
		return nil, fmt.Errorf("validation failed: entry, team and actor ids are required")
	}

	var drafted *models.DraftPoolEntry
	err := sqlutil.Run(ctx, a.db, func(tx *sql.Tx) error {
		pool := NewRepository(tx)

		entry, err := pool.MarkDrafted(ctx, req.EntryID, req.TeamID, req.ActorID, req.Round, req.Pick)
		if err != nil {
			return err
		}
		if entry == nil {
			return a.draftRejection(ctx, pool, req.EntryID)
		}

		if err := teams.NewRepository(tx).IncrementRosterSize(ctx, req.TeamID); err != nil {
			return err
		}

		drafted = entry
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Info().
		Str("entry_id", req.EntryID.String()).
		Str("team_id", req.TeamID.String()).
		Str("actor_id", req.ActorID.String()).
		Msg("pool entry drafted")
	return drafted, nil
}

// Undraft returns a drafted entry to the pool and lowers the holding team's
// roster size. The named team must match the holder.
func (a *App) Undraft(ctx context.Context, req UndraftRequest) (*models.DraftPoolEntry, error) {
	if req.EntryID == uuid.Nil || req.TeamID == uuid.Nil {
		return nil, fmt.Errorf("validation failed: entry and team ids are required")
	}

	var undrafted *models.DraftPoolEntry
	err := sqlutil.Run(ctx, a.db, func(tx *sql.Tx) error {
		pool := NewRepository(tx)

		entry, err := pool.MarkAvailable(ctx, req.EntryID, req.TeamID)
		if err != nil {
			return err
		}
		if entry == nil {
			return a.undraftRejection(ctx, pool, req.EntryID, req.TeamID)
		}

		if err := teams.NewRepository(tx).DecrementRosterSize(ctx, req.TeamID); err != nil {
			return err
		}

		undrafted = entry
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Info().
		Str("entry_id", req.EntryID.String()).
		Str("team_id", req.TeamID.String()).
		Msg("pool entry undrafted")
	return undrafted, nil
}

// Cancel marks the entry and its registration cancelled, reverses the season
// counters, and — when the entry was drafted — the team's roster size, all in
// one transaction. Cancelled is terminal: a second cancel is rejected.
func (a *App) Cancel(ctx context.Context, entryID uuid.UUID) (*models.DraftPoolEntry, error) {
	if entryID == uuid.Nil {
		return nil, fmt.Errorf("validation failed: entry id is required")
	}

	var cancelled *models.DraftPoolEntry
	err := sqlutil.Run(ctx, a.db, func(tx *sql.Tx) error {
		pool := NewRepository(tx)

		entry, err := pool.GetEntryForUpdate(ctx, entryID)
		if err != nil {
			return err
		}
		if entry.Status == models.DraftStatusCancelled {
			return ErrAlreadyCancelled
		}

		if err := pool.MarkCancelled(ctx, entryID); err != nil {
			return err
		}
		if err := pool.CancelRegistration(ctx, entry.RegistrationID); err != nil {
			return err
		}
		if entry.Status == models.DraftStatusDrafted && entry.TeamID != nil {
			if err := teams.NewRepository(tx).DecrementRosterSize(ctx, *entry.TeamID); err != nil {
				return err
			}
		}
		if err := seasons.NewRepository(tx).DecrementRegistrationCounters(ctx, entry.SeasonID, entry.AgeGroupID); err != nil {
			return err
		}

		entry.Status = models.DraftStatusCancelled
		cancelled = entry
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Best effort: drop the profile's pool pointer. Never surfaces to the
	// caller.
	if cancelled.AthleteID != nil {
		if err := a.profiles.ClearPoolStatus(context.WithoutCancel(ctx), *cancelled.AthleteID); err != nil {
			log.Warn().Err(err).
				Str("athlete_id", cancelled.AthleteID.String()).
				Msg("failed to clear athlete pool status")
		}
	}

	log.Info().
		Str("entry_id", entryID.String()).
		Str("season_id", cancelled.SeasonID.String()).
		Msg("pool entry cancelled")
	return cancelled, nil
}

// draftRejection explains a lost AVAILABLE -> DRAFTED swap.
func (a *App) draftRejection(ctx context.Context, pool *Repository, entryID uuid.UUID) error {
	entry, err := pool.GetEntry(ctx, entryID)
	if err != nil {
		return err
	}
	switch entry.Status {
	case models.DraftStatusCancelled:
		return ErrAlreadyCancelled
	default:
		return ErrNotAvailable
	}
}

// undraftRejection explains a lost DRAFTED -> AVAILABLE swap.
func (a *App) undraftRejection(ctx context.Context, pool *Repository, entryID, teamID uuid.UUID) error {
	entry, err := pool.GetEntry(ctx, entryID)
	if err != nil {
		return err
	}
	switch {
	case entry.Status == models.DraftStatusCancelled:
		return ErrAlreadyCancelled
	case entry.Status != models.DraftStatusDrafted:
		return ErrNotDrafted
	case entry.TeamID == nil || *entry.TeamID != teamID:
		return ErrTeamMismatch
	default:
		return ErrNotDrafted
	}
}
