package registration

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcdev12/rosterpool/go/internal/agegroup"
	"github.com/mcdev12/rosterpool/go/internal/models"
	"github.com/mcdev12/rosterpool/go/internal/notifications"
)

type fakeSeasons struct {
	season *models.Season
	err    error
}

func (f *fakeSeasons) GetSeason(ctx context.Context, id uuid.UUID) (*models.Season, error) {
	return f.season, f.err
}

type fakePrograms struct {
	program *models.Program
	err     error
}

func (f *fakePrograms) GetProgram(ctx context.Context, id uuid.UUID) (*models.Program, error) {
	return f.program, f.err
}

type fakePool struct {
	dup *models.DraftPoolEntry
	err error
}

func (f *fakePool) FindDuplicate(ctx context.Context, seasonID uuid.UUID, athleteID *uuid.UUID, firstName, lastName string, birthDate time.Time) (*models.DraftPoolEntry, error) {
	return f.dup, f.err
}

type fakeJerseys struct {
	err error
}

func (f *fakeJerseys) ValidateRequest(ctx context.Context, sport string, teamID *uuid.UUID, preferred *int, alternates []int) error {
	return f.err
}

type fakeProfiles struct {
	tagged []uuid.UUID
	err    error
}

func (f *fakeProfiles) TagPoolStatus(ctx context.Context, athleteID uuid.UUID, tag models.PoolStatusTag) error {
	f.tagged = append(f.tagged, athleteID)
	return f.err
}

type fakeOutbox struct {
	events []notifications.RegistrationCommitted
	err    error
}

func (f *fakeOutbox) EnqueueRegistrationCommitted(ctx context.Context, evt notifications.RegistrationCommitted) error {
	f.events = append(f.events, evt)
	return f.err
}

type registerFixture struct {
	app      *App
	mock     sqlmock.Sqlmock
	seasons  *fakeSeasons
	pool     *fakePool
	profiles *fakeProfiles
	outbox   *fakeOutbox
}

func setupRegisterApp(t *testing.T) *registerFixture {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	maxPer := 2
	opens := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	closes := time.Date(2026, 10, 15, 0, 0, 0, 0, time.UTC)
	seasonID := uuid.New()
	programID := uuid.New()

	seasonsApp := &fakeSeasons{season: &models.Season{
		ID:              seasonID,
		ProgramID:       programID,
		Name:            "Winter 2026",
		Status:          models.SeasonStatusRegistration,
		AgeGroups:       agegroup.Parse([]string{"8U", "10U"}),
		RegistrationFee: 100,
		OpensAt:         &opens,
		ClosesAt:        &closes,
		MaxPerAgeGroup:  &maxPer,
		AgeGroupCounts:  map[string]int{"8U": 1},
	}}
	programsApp := &fakePrograms{program: &models.Program{
		ID:             programID,
		Name:           "Riverside Hockey",
		Sport:          "HOCKEY",
		CommissionerID: uuid.New(),
	}}
	pool := &fakePool{}
	profiles := &fakeProfiles{}
	outbox := &fakeOutbox{}

	app := NewApp(db, seasonsApp, programsApp, pool, &fakeJerseys{}, profiles, outbox)
	app.now = func() time.Time { return time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC) }

	return &registerFixture{
		app:      app,
		mock:     mock,
		seasons:  seasonsApp,
		pool:     pool,
		profiles: profiles,
		outbox:   outbox,
	}
}

func validRequest(f *registerFixture) RegisterRequest {
	return RegisterRequest{
		SeasonID:       f.seasons.season.ID,
		AgeGroupID:     "8U",
		FirstName:      "Maya",
		LastName:       "Okafor",
		BirthDate:      time.Date(2018, 3, 10, 0, 0, 0, 0, time.UTC),
		ParentID:       uuid.New(),
		ParentName:     "Chidi Okafor",
		ParentEmail:    "chidi@example.com",
		WaiverAccepted: true,
		AmountPaid:     100,
	}
}

func expectCommittedWrite(mock sqlmock.Sqlmock) {
	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO registrations").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO draft_pool_entries").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO season_age_group_counters").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE seasons").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()
}

func TestApp_Register(t *testing.T) {
	t.Run("commits registration, pool entry and counter together", func(t *testing.T) {
		f := setupRegisterApp(t)
		expectCommittedWrite(f.mock)

		result, err := f.app.Register(context.Background(), validRequest(f))

		require.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, result.RegistrationID)
		assert.NotEqual(t, uuid.Nil, result.PoolEntryID)
		assert.Equal(t, "8U", result.AgeGroupID)
		assert.NoError(t, f.mock.ExpectationsWereMet())
	})

	t.Run("enqueues one committed event after the transaction", func(t *testing.T) {
		f := setupRegisterApp(t)
		expectCommittedWrite(f.mock)

		result, err := f.app.Register(context.Background(), validRequest(f))

		require.NoError(t, err)
		require.Len(t, f.outbox.events, 1)
		evt := f.outbox.events[0]
		assert.Equal(t, result.RegistrationID, evt.RegistrationID)
		assert.Equal(t, result.PoolEntryID, evt.PoolEntryID)
		assert.Equal(t, "Maya Okafor", evt.AthleteName)
		assert.Equal(t, "Winter 2026", evt.SeasonName)
	})

	t.Run("tags the athlete profile when a profile is linked", func(t *testing.T) {
		f := setupRegisterApp(t)
		expectCommittedWrite(f.mock)

		athleteID := uuid.New()
		req := validRequest(f)
		req.AthleteID = &athleteID

		_, err := f.app.Register(context.Background(), req)

		require.NoError(t, err)
		assert.Equal(t, []uuid.UUID{athleteID}, f.profiles.tagged)
	})

	t.Run("post-commit failures do not fail the registration", func(t *testing.T) {
		f := setupRegisterApp(t)
		expectCommittedWrite(f.mock)
		f.outbox.err = errors.New("outbox down")
		f.profiles.err = errors.New("profiles down")

		athleteID := uuid.New()
		req := validRequest(f)
		req.AthleteID = &athleteID

		result, err := f.app.Register(context.Background(), req)

		require.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, result.RegistrationID)
	})

	t.Run("rejects a duplicate before touching the database", func(t *testing.T) {
		f := setupRegisterApp(t)
		f.pool.dup = &models.DraftPoolEntry{ID: uuid.New()}

		_, err := f.app.Register(context.Background(), validRequest(f))

		assert.ErrorIs(t, err, ErrDuplicate)
		assert.Empty(t, f.outbox.events)
		assert.NoError(t, f.mock.ExpectationsWereMet())
	})

	t.Run("maps the in-transaction unique violation to ErrDuplicate", func(t *testing.T) {
		f := setupRegisterApp(t)
		f.mock.ExpectBegin()
		f.mock.ExpectExec("INSERT INTO registrations").
			WillReturnResult(sqlmock.NewResult(0, 1))
		f.mock.ExpectExec("INSERT INTO draft_pool_entries").
			WillReturnError(duplicateKeyError())
		f.mock.ExpectRollback()

		_, err := f.app.Register(context.Background(), validRequest(f))

		assert.ErrorIs(t, err, ErrDuplicate)
		assert.Empty(t, f.outbox.events)
		assert.NoError(t, f.mock.ExpectationsWereMet())
	})

	t.Run("rejects a full age group before touching the database", func(t *testing.T) {
		f := setupRegisterApp(t)
		f.seasons.season.AgeGroupCounts["8U"] = 2

		_, err := f.app.Register(context.Background(), validRequest(f))

		assert.ErrorIs(t, err, ErrAgeGroupFull)
		assert.NoError(t, f.mock.ExpectationsWereMet())
	})

	t.Run("rolls back when the conditional counter increment loses", func(t *testing.T) {
		f := setupRegisterApp(t)
		f.mock.ExpectBegin()
		f.mock.ExpectExec("INSERT INTO registrations").
			WillReturnResult(sqlmock.NewResult(0, 1))
		f.mock.ExpectExec("INSERT INTO draft_pool_entries").
			WillReturnResult(sqlmock.NewResult(0, 1))
		f.mock.ExpectExec("INSERT INTO season_age_group_counters").
			WillReturnResult(sqlmock.NewResult(0, 0))
		f.mock.ExpectRollback()

		_, err := f.app.Register(context.Background(), validRequest(f))

		assert.ErrorIs(t, err, ErrAgeGroupFull)
		assert.Empty(t, f.outbox.events)
		assert.NoError(t, f.mock.ExpectationsWereMet())
	})

	t.Run("rejects when the registration window is closed", func(t *testing.T) {
		f := setupRegisterApp(t)
		f.seasons.season.Status = models.SeasonStatusClosed

		_, err := f.app.Register(context.Background(), validRequest(f))

		assert.ErrorIs(t, err, ErrSeasonNotOpen)
	})

	t.Run("rejects submissions past the closing time", func(t *testing.T) {
		f := setupRegisterApp(t)
		f.app.now = func() time.Time { return time.Date(2026, 11, 1, 0, 0, 0, 0, time.UTC) }

		_, err := f.app.Register(context.Background(), validRequest(f))

		assert.ErrorIs(t, err, ErrSeasonNotOpen)
	})

	t.Run("rejects a waiver that was not accepted", func(t *testing.T) {
		f := setupRegisterApp(t)
		req := validRequest(f)
		req.WaiverAccepted = false

		_, err := f.app.Register(context.Background(), req)

		assert.ErrorIs(t, err, ErrValidation)
	})

	t.Run("rejects an age group the season does not offer", func(t *testing.T) {
		f := setupRegisterApp(t)
		req := validRequest(f)
		req.AgeGroupID = "16U"

		_, err := f.app.Register(context.Background(), req)

		assert.ErrorIs(t, err, ErrValidation)
	})

	t.Run("resolves the bucket from the birthdate when none is given", func(t *testing.T) {
		f := setupRegisterApp(t)
		expectCommittedWrite(f.mock)

		req := validRequest(f)
		req.AgeGroupID = ""
		// Age 8 on 2026-09-01 lands in the 8U bucket.
		req.BirthDate = time.Date(2018, 3, 10, 0, 0, 0, 0, time.UTC)

		result, err := f.app.Register(context.Background(), req)

		require.NoError(t, err)
		assert.Equal(t, "8U", result.AgeGroupID)
	})
}

func duplicateKeyError() error {
	return &pq.Error{Code: "23505"}
}

func TestPaymentStatus(t *testing.T) {
	assert.Equal(t, models.PaymentStatusPaid, paymentStatus(100, 100))
	assert.Equal(t, models.PaymentStatusPaid, paymentStatus(0, 0))
	assert.Equal(t, models.PaymentStatusPartial, paymentStatus(100, 40))
	assert.Equal(t, models.PaymentStatusUnpaid, paymentStatus(100, 0))
}
