package draftpool

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcdev12/rosterpool/go/internal/models"
	"github.com/mcdev12/rosterpool/go/internal/teams"
)

type fakeProfiles struct {
	cleared []uuid.UUID
	err     error
}

func (f *fakeProfiles) ClearPoolStatus(ctx context.Context, athleteID uuid.UUID) error {
	f.cleared = append(f.cleared, athleteID)
	return f.err
}

type poolFixture struct {
	app      *App
	mock     sqlmock.Sqlmock
	profiles *fakeProfiles
}

func setupPoolApp(t *testing.T) *poolFixture {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	profiles := &fakeProfiles{}
	return &poolFixture{
		app:      NewApp(db, profiles),
		mock:     mock,
		profiles: profiles,
	}
}

var entryRowColumns = []string{
	"id", "registration_id", "program_id", "season_id", "age_group_id", "athlete_id",
	"first_name", "last_name", "birth_date", "preferred_jersey", "preferred_position",
	"payment_status", "status", "team_id", "drafted_by", "drafted_at", "draft_round",
	"draft_pick", "created_at", "updated_at",
}

type entryFields struct {
	id        uuid.UUID
	seasonID  uuid.UUID
	status    models.DraftStatus
	teamID    *uuid.UUID
	athleteID *uuid.UUID
}

func entryRow(e entryFields) *sqlmock.Rows {
	now := time.Now()
	var teamID, athleteID any
	if e.teamID != nil {
		teamID = *e.teamID
	}
	if e.athleteID != nil {
		athleteID = *e.athleteID
	}
	return sqlmock.NewRows(entryRowColumns).AddRow(
		e.id, uuid.New(), uuid.New(), e.seasonID, "8U", athleteID,
		"Maya", "Okafor", time.Date(2018, 3, 10, 0, 0, 0, 0, time.UTC), nil, nil,
		models.PaymentStatusPaid, e.status, teamID, nil, nil, nil,
		nil, now, now,
	)
}

func TestApp_Draft(t *testing.T) {
	entryID := uuid.New()
	teamID := uuid.New()
	actorID := uuid.New()

	t.Run("drafts an available entry and bumps the roster", func(t *testing.T) {
		f := setupPoolApp(t)
		f.mock.ExpectBegin()
		f.mock.ExpectQuery("UPDATE draft_pool_entries").
			WillReturnRows(entryRow(entryFields{id: entryID, seasonID: uuid.New(), status: models.DraftStatusDrafted, teamID: &teamID}))
		f.mock.ExpectExec("UPDATE generated_teams").
			WillReturnResult(sqlmock.NewResult(0, 1))
		f.mock.ExpectCommit()

		entry, err := f.app.Draft(context.Background(), DraftRequest{EntryID: entryID, TeamID: teamID, ActorID: actorID})

		require.NoError(t, err)
		assert.Equal(t, models.DraftStatusDrafted, entry.Status)
		assert.NoError(t, f.mock.ExpectationsWereMet())
	})

	t.Run("rejects an entry that is not available", func(t *testing.T) {
		f := setupPoolApp(t)
		f.mock.ExpectBegin()
		f.mock.ExpectQuery("UPDATE draft_pool_entries").
			WillReturnRows(sqlmock.NewRows(entryRowColumns))
		f.mock.ExpectQuery("SELECT .+ FROM draft_pool_entries").
			WillReturnRows(entryRow(entryFields{id: entryID, seasonID: uuid.New(), status: models.DraftStatusDrafted, teamID: &teamID}))
		f.mock.ExpectRollback()

		_, err := f.app.Draft(context.Background(), DraftRequest{EntryID: entryID, TeamID: teamID, ActorID: actorID})

		assert.ErrorIs(t, err, ErrNotAvailable)
		assert.NoError(t, f.mock.ExpectationsWereMet())
	})

	t.Run("rejects a cancelled entry", func(t *testing.T) {
		f := setupPoolApp(t)
		f.mock.ExpectBegin()
		f.mock.ExpectQuery("UPDATE draft_pool_entries").
			WillReturnRows(sqlmock.NewRows(entryRowColumns))
		f.mock.ExpectQuery("SELECT .+ FROM draft_pool_entries").
			WillReturnRows(entryRow(entryFields{id: entryID, seasonID: uuid.New(), status: models.DraftStatusCancelled}))
		f.mock.ExpectRollback()

		_, err := f.app.Draft(context.Background(), DraftRequest{EntryID: entryID, TeamID: teamID, ActorID: actorID})

		assert.ErrorIs(t, err, ErrAlreadyCancelled)
	})

	t.Run("rolls back the draft when the team is full", func(t *testing.T) {
		f := setupPoolApp(t)
		f.mock.ExpectBegin()
		f.mock.ExpectQuery("UPDATE draft_pool_entries").
			WillReturnRows(entryRow(entryFields{id: entryID, seasonID: uuid.New(), status: models.DraftStatusDrafted, teamID: &teamID}))
		f.mock.ExpectExec("UPDATE generated_teams").
			WillReturnResult(sqlmock.NewResult(0, 0))
		f.mock.ExpectQuery("SELECT .+ FROM generated_teams").
			WillReturnRows(sqlmock.NewRows([]string{
				"id", "season_id", "age_group", "name", "coach_ids",
				"max_roster_size", "current_roster_size", "created_at", "updated_at",
			}).AddRow(teamID, uuid.New(), "8U", "Team 1", "{}", 12, 12, time.Now(), time.Now()))
		f.mock.ExpectRollback()

		_, err := f.app.Draft(context.Background(), DraftRequest{EntryID: entryID, TeamID: teamID, ActorID: actorID})

		assert.ErrorIs(t, err, teams.ErrTeamFull)
		assert.NoError(t, f.mock.ExpectationsWereMet())
	})

	t.Run("rejects missing ids", func(t *testing.T) {
		f := setupPoolApp(t)

		_, err := f.app.Draft(context.Background(), DraftRequest{EntryID: entryID})

		assert.Error(t, err)
		assert.NoError(t, f.mock.ExpectationsWereMet())
	})
}

func TestApp_Undraft(t *testing.T) {
	entryID := uuid.New()
	teamID := uuid.New()

	t.Run("returns the entry to the pool and lowers the roster", func(t *testing.T) {
		f := setupPoolApp(t)
		f.mock.ExpectBegin()
		f.mock.ExpectQuery("UPDATE draft_pool_entries").
			WillReturnRows(entryRow(entryFields{id: entryID, seasonID: uuid.New(), status: models.DraftStatusAvailable}))
		f.mock.ExpectExec("UPDATE generated_teams").
			WillReturnResult(sqlmock.NewResult(0, 1))
		f.mock.ExpectCommit()

		entry, err := f.app.Undraft(context.Background(), UndraftRequest{EntryID: entryID, TeamID: teamID})

		require.NoError(t, err)
		assert.Equal(t, models.DraftStatusAvailable, entry.Status)
		assert.NoError(t, f.mock.ExpectationsWereMet())
	})

	t.Run("rejects a team that does not hold the entry", func(t *testing.T) {
		f := setupPoolApp(t)
		otherTeam := uuid.New()
		f.mock.ExpectBegin()
		f.mock.ExpectQuery("UPDATE draft_pool_entries").
			WillReturnRows(sqlmock.NewRows(entryRowColumns))
		f.mock.ExpectQuery("SELECT .+ FROM draft_pool_entries").
			WillReturnRows(entryRow(entryFields{id: entryID, seasonID: uuid.New(), status: models.DraftStatusDrafted, teamID: &otherTeam}))
		f.mock.ExpectRollback()

		_, err := f.app.Undraft(context.Background(), UndraftRequest{EntryID: entryID, TeamID: teamID})

		assert.ErrorIs(t, err, ErrTeamMismatch)
	})

	t.Run("rejects an entry that is not drafted", func(t *testing.T) {
		f := setupPoolApp(t)
		f.mock.ExpectBegin()
		f.mock.ExpectQuery("UPDATE draft_pool_entries").
			WillReturnRows(sqlmock.NewRows(entryRowColumns))
		f.mock.ExpectQuery("SELECT .+ FROM draft_pool_entries").
			WillReturnRows(entryRow(entryFields{id: entryID, seasonID: uuid.New(), status: models.DraftStatusAvailable}))
		f.mock.ExpectRollback()

		_, err := f.app.Undraft(context.Background(), UndraftRequest{EntryID: entryID, TeamID: teamID})

		assert.ErrorIs(t, err, ErrNotDrafted)
	})
}

func TestApp_Cancel(t *testing.T) {
	entryID := uuid.New()
	seasonID := uuid.New()

	t.Run("cancels an available entry and reverses the season counters", func(t *testing.T) {
		f := setupPoolApp(t)
		f.mock.ExpectBegin()
		f.mock.ExpectQuery("SELECT .+ FROM draft_pool_entries .+ FOR UPDATE").
			WillReturnRows(entryRow(entryFields{id: entryID, seasonID: seasonID, status: models.DraftStatusAvailable}))
		f.mock.ExpectExec("UPDATE draft_pool_entries").
			WillReturnResult(sqlmock.NewResult(0, 1))
		f.mock.ExpectExec("UPDATE registrations").
			WillReturnResult(sqlmock.NewResult(0, 1))
		f.mock.ExpectExec("UPDATE season_age_group_counters").
			WillReturnResult(sqlmock.NewResult(0, 1))
		f.mock.ExpectExec("UPDATE seasons").
			WillReturnResult(sqlmock.NewResult(0, 1))
		f.mock.ExpectCommit()

		entry, err := f.app.Cancel(context.Background(), entryID)

		require.NoError(t, err)
		assert.Equal(t, models.DraftStatusCancelled, entry.Status)
		assert.Empty(t, f.profiles.cleared)
		assert.NoError(t, f.mock.ExpectationsWereMet())
	})

	t.Run("cancelling a drafted entry also frees the roster slot", func(t *testing.T) {
		f := setupPoolApp(t)
		teamID := uuid.New()
		f.mock.ExpectBegin()
		f.mock.ExpectQuery("SELECT .+ FROM draft_pool_entries .+ FOR UPDATE").
			WillReturnRows(entryRow(entryFields{id: entryID, seasonID: seasonID, status: models.DraftStatusDrafted, teamID: &teamID}))
		f.mock.ExpectExec("UPDATE draft_pool_entries").
			WillReturnResult(sqlmock.NewResult(0, 1))
		f.mock.ExpectExec("UPDATE registrations").
			WillReturnResult(sqlmock.NewResult(0, 1))
		f.mock.ExpectExec("UPDATE generated_teams").
			WillReturnResult(sqlmock.NewResult(0, 1))
		f.mock.ExpectExec("UPDATE season_age_group_counters").
			WillReturnResult(sqlmock.NewResult(0, 1))
		f.mock.ExpectExec("UPDATE seasons").
			WillReturnResult(sqlmock.NewResult(0, 1))
		f.mock.ExpectCommit()

		_, err := f.app.Cancel(context.Background(), entryID)

		require.NoError(t, err)
		assert.NoError(t, f.mock.ExpectationsWereMet())
	})

	t.Run("clears the athlete profile pointer after commit", func(t *testing.T) {
		f := setupPoolApp(t)
		athleteID := uuid.New()
		f.mock.ExpectBegin()
		f.mock.ExpectQuery("SELECT .+ FROM draft_pool_entries .+ FOR UPDATE").
			WillReturnRows(entryRow(entryFields{id: entryID, seasonID: seasonID, status: models.DraftStatusAvailable, athleteID: &athleteID}))
		f.mock.ExpectExec("UPDATE draft_pool_entries").
			WillReturnResult(sqlmock.NewResult(0, 1))
		f.mock.ExpectExec("UPDATE registrations").
			WillReturnResult(sqlmock.NewResult(0, 1))
		f.mock.ExpectExec("UPDATE season_age_group_counters").
			WillReturnResult(sqlmock.NewResult(0, 1))
		f.mock.ExpectExec("UPDATE seasons").
			WillReturnResult(sqlmock.NewResult(0, 1))
		f.mock.ExpectCommit()

		_, err := f.app.Cancel(context.Background(), entryID)

		require.NoError(t, err)
		assert.Equal(t, []uuid.UUID{athleteID}, f.profiles.cleared)
	})

	t.Run("a second cancel is rejected", func(t *testing.T) {
		f := setupPoolApp(t)
		f.mock.ExpectBegin()
		f.mock.ExpectQuery("SELECT .+ FROM draft_pool_entries .+ FOR UPDATE").
			WillReturnRows(entryRow(entryFields{id: entryID, seasonID: seasonID, status: models.DraftStatusCancelled}))
		f.mock.ExpectRollback()

		_, err := f.app.Cancel(context.Background(), entryID)

		assert.ErrorIs(t, err, ErrAlreadyCancelled)
		assert.Empty(t, f.profiles.cleared)
		assert.NoError(t, f.mock.ExpectationsWereMet())
	})

	t.Run("unknown entry maps to not found", func(t *testing.T) {
		f := setupPoolApp(t)
		f.mock.ExpectBegin()
		f.mock.ExpectQuery("SELECT .+ FROM draft_pool_entries .+ FOR UPDATE").
			WillReturnRows(sqlmock.NewRows(entryRowColumns))
		f.mock.ExpectRollback()

		_, err := f.app.Cancel(context.Background(), entryID)

		assert.ErrorIs(t, err, ErrEntryNotFound)
	})
}
