package seasons

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/mcdev12/rosterpool/go/internal/agegroup"
	"github.com/mcdev12/rosterpool/go/internal/models"
	"github.com/rs/zerolog/log"
)

// SeasonsRepository defines what the app layer needs from the repository
type SeasonsRepository interface {
	CreateSeason(ctx context.Context, req CreateSeasonRequest, groups []models.AgeGroup) (*models.Season, error)
	GetSeason(ctx context.Context, id uuid.UUID) (*models.Season, error)
	GetCounters(ctx context.Context, seasonID uuid.UUID) (map[string]int, error)
	UpdateSeasonStatus(ctx context.Context, id uuid.UUID, status models.SeasonStatus) (*models.Season, error)
}

// allowedTransitions is the explicit season lifecycle.
var allowedTransitions = map[models.SeasonStatus][]models.SeasonStatus{
	models.SeasonStatusSetup:        {models.SeasonStatusRegistration},
	models.SeasonStatusRegistration: {models.SeasonStatusClosed, models.SeasonStatusDrafting},
	models.SeasonStatusClosed:       {models.SeasonStatusDrafting, models.SeasonStatusRegistration},
	models.SeasonStatusDrafting:     {models.SeasonStatusActive},
	models.SeasonStatusActive:       {models.SeasonStatusCompleted},
	models.SeasonStatusCompleted:    {},
}

// App handles season business logic
type App struct {
	repo SeasonsRepository
}

// NewApp creates a new seasons App
func NewApp(repo SeasonsRepository) *App {
	return &App{repo: repo}
}

// CreateSeason creates a season with its age-group descriptors parsed once up
// front, so matching never re-parses raw strings.
func (a *App) CreateSeason(ctx context.Context, req CreateSeasonRequest) (*models.Season, error) {
	if err := a.validateCreateSeasonRequest(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	groups := agegroup.Parse(req.AgeGroups)
	season, err := a.repo.CreateSeason(ctx, req, groups)
	if err != nil {
		return nil, fmt.Errorf("failed to create season: %w", err)
	}

	log.Info().
		Str("season_id", season.ID.String()).
		Str("name", season.Name).
		Int("age_groups", len(season.AgeGroups)).
		Msg("created season")
	return season, nil
}

// GetSeason retrieves a season with its counters.
func (a *App) GetSeason(ctx context.Context, id uuid.UUID) (*models.Season, error) {
	return a.repo.GetSeason(ctx, id)
}

// UpdateSeasonStatus applies an explicit lifecycle transition.
func (a *App) UpdateSeasonStatus(ctx context.Context, id uuid.UUID, status models.SeasonStatus) (*models.Season, error) {
	season, err := a.repo.GetSeason(ctx, id)
	if err != nil {
		return nil, err
	}

	if !transitionAllowed(season.Status, status) {
		return nil, fmt.Errorf("%s -> %s: %w", season.Status, status, ErrInvalidTransition)
	}

	updated, err := a.repo.UpdateSeasonStatus(ctx, id, status)
	if err != nil {
		return nil, err
	}

	log.Info().
		Str("season_id", id.String()).
		Str("from", string(season.Status)).
		Str("to", string(status)).
		Msg("season status updated")
	return updated, nil
}

func transitionAllowed(from, to models.SeasonStatus) bool {
	for _, s := range allowedTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

func (a *App) validateCreateSeasonRequest(req CreateSeasonRequest) error {
	if req.ID == uuid.Nil {
		return fmt.Errorf("season id is required")
	}
	if req.ProgramID == uuid.Nil {
		return fmt.Errorf("program id is required")
	}
	if req.Name == "" {
		return fmt.Errorf("season name is required")
	}
	if req.RegistrationFee < 0 {
		return fmt.Errorf("registration fee cannot be negative")
	}
	if req.MaxPerAgeGroup != nil && *req.MaxPerAgeGroup <= 0 {
		return fmt.Errorf("max per age group must be positive when set")
	}
	if req.OpensAt != nil && req.ClosesAt != nil && req.ClosesAt.Before(*req.OpensAt) {
		return fmt.Errorf("registration close cannot precede open")
	}
	return nil
}
