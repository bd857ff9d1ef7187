package seasons

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcdev12/rosterpool/go/internal/models"
)

type fakeRepo struct {
	season        *models.Season
	created       *CreateSeasonRequest
	createdGroups []models.AgeGroup
	updatedTo     models.SeasonStatus
	err           error
}

func (f *fakeRepo) CreateSeason(ctx context.Context, req CreateSeasonRequest, groups []models.AgeGroup) (*models.Season, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.created = &req
	f.createdGroups = groups
	return &models.Season{
		ID:        req.ID,
		ProgramID: req.ProgramID,
		Name:      req.Name,
		Status:    models.SeasonStatusSetup,
		AgeGroups: groups,
	}, nil
}

func (f *fakeRepo) GetSeason(ctx context.Context, id uuid.UUID) (*models.Season, error) {
	if f.season == nil {
		return nil, ErrSeasonNotFound
	}
	return f.season, nil
}

func (f *fakeRepo) GetCounters(ctx context.Context, seasonID uuid.UUID) (map[string]int, error) {
	return map[string]int{}, nil
}

func (f *fakeRepo) UpdateSeasonStatus(ctx context.Context, id uuid.UUID, status models.SeasonStatus) (*models.Season, error) {
	f.updatedTo = status
	updated := *f.season
	updated.Status = status
	return &updated, nil
}

func TestApp_CreateSeason(t *testing.T) {
	validReq := func() CreateSeasonRequest {
		return CreateSeasonRequest{
			ID:        uuid.New(),
			ProgramID: uuid.New(),
			Name:      "Winter 2026",
			AgeGroups: []string{"8U", "10U-11U"},
		}
	}

	t.Run("parses age group descriptors once at creation", func(t *testing.T) {
		repo := &fakeRepo{}
		app := NewApp(repo)

		season, err := app.CreateSeason(context.Background(), validReq())

		require.NoError(t, err)
		require.Len(t, repo.createdGroups, 2)
		assert.Equal(t, "8U", repo.createdGroups[0].ID)
		assert.Equal(t, models.AgeGroupKindLabel, repo.createdGroups[0].Kind)
		assert.Equal(t, models.AgeGroupKindRange, repo.createdGroups[1].Kind)
		assert.Equal(t, 10, repo.createdGroups[1].MinAge)
		assert.Equal(t, 11, repo.createdGroups[1].MaxAge)
		assert.Equal(t, models.SeasonStatusSetup, season.Status)
	})

	t.Run("rejects a close before the open", func(t *testing.T) {
		repo := &fakeRepo{}
		app := NewApp(repo)

		opens := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
		closes := opens.Add(-time.Hour)
		req := validReq()
		req.OpensAt = &opens
		req.ClosesAt = &closes

		_, err := app.CreateSeason(context.Background(), req)

		assert.ErrorContains(t, err, "close cannot precede open")
		assert.Nil(t, repo.created)
	})

	t.Run("rejects a non-positive capacity", func(t *testing.T) {
		app := NewApp(&fakeRepo{})

		zero := 0
		req := validReq()
		req.MaxPerAgeGroup = &zero

		_, err := app.CreateSeason(context.Background(), req)

		assert.ErrorContains(t, err, "max per age group")
	})
}

func TestApp_UpdateSeasonStatus(t *testing.T) {
	seasonID := uuid.New()

	seasonIn := func(status models.SeasonStatus) *fakeRepo {
		return &fakeRepo{season: &models.Season{ID: seasonID, Status: status}}
	}

	t.Run("allows the documented lifecycle steps", func(t *testing.T) {
		steps := []struct {
			from models.SeasonStatus
			to   models.SeasonStatus
		}{
			{models.SeasonStatusSetup, models.SeasonStatusRegistration},
			{models.SeasonStatusRegistration, models.SeasonStatusClosed},
			{models.SeasonStatusRegistration, models.SeasonStatusDrafting},
			{models.SeasonStatusClosed, models.SeasonStatusDrafting},
			{models.SeasonStatusClosed, models.SeasonStatusRegistration},
			{models.SeasonStatusDrafting, models.SeasonStatusActive},
			{models.SeasonStatusActive, models.SeasonStatusCompleted},
		}
		for _, step := range steps {
			app := NewApp(seasonIn(step.from))
			updated, err := app.UpdateSeasonStatus(context.Background(), seasonID, step.to)
			require.NoError(t, err, "%s -> %s", step.from, step.to)
			assert.Equal(t, step.to, updated.Status)
		}
	})

	t.Run("rejects skipping the lifecycle", func(t *testing.T) {
		app := NewApp(seasonIn(models.SeasonStatusSetup))

		_, err := app.UpdateSeasonStatus(context.Background(), seasonID, models.SeasonStatusActive)

		assert.ErrorIs(t, err, ErrInvalidTransition)
	})

	t.Run("completed is terminal", func(t *testing.T) {
		app := NewApp(seasonIn(models.SeasonStatusCompleted))

		_, err := app.UpdateSeasonStatus(context.Background(), seasonID, models.SeasonStatusRegistration)

		assert.ErrorIs(t, err, ErrInvalidTransition)
	})

	t.Run("unknown season maps to not found", func(t *testing.T) {
		app := NewApp(&fakeRepo{})

		_, err := app.UpdateSeasonStatus(context.Background(), seasonID, models.SeasonStatusRegistration)

		assert.ErrorIs(t, err, ErrSeasonNotFound)
	})
}
