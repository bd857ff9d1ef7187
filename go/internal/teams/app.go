package teams

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/mcdev12/rosterpool/go/internal/models"
	"github.com/rs/zerolog/log"
)

// TeamsRepository defines what the app layer needs from the repository
type TeamsRepository interface {
	CreateTeam(ctx context.Context, req CreateTeamRequest) (*models.GeneratedTeam, error)
	GetTeam(ctx context.Context, id uuid.UUID) (*models.GeneratedTeam, error)
	ListTeamsBySeason(ctx context.Context, seasonID uuid.UUID) ([]models.GeneratedTeam, error)
	AddCoach(ctx context.Context, teamID, coachID uuid.UUID) error
}

// App handles generated-team business logic
type App struct {
	repo TeamsRepository
}

// NewApp creates a new teams App
func NewApp(repo TeamsRepository) *App {
	return &App{repo: repo}
}

// CreateTeam creates a single roster container.
func (a *App) CreateTeam(ctx context.Context, req CreateTeamRequest) (*models.GeneratedTeam, error) {
	if err := a.validateCreateTeamRequest(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	team, err := a.repo.CreateTeam(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("failed to create team: %w", err)
	}
	return team, nil
}

// GenerateTeams creates a numbered batch of empty roster containers for one
// age group.
func (a *App) GenerateTeams(ctx context.Context, req GenerateTeamsRequest) ([]models.GeneratedTeam, error) {
	if req.SeasonID == uuid.Nil {
		return nil, fmt.Errorf("validation failed: season id is required")
	}
	if req.AgeGroup == "" {
		return nil, fmt.Errorf("validation failed: age group is required")
	}
	if req.Count <= 0 {
		return nil, fmt.Errorf("validation failed: team count must be positive")
	}

	maxRoster := req.MaxRosterSize
	if maxRoster <= 0 {
		maxRoster = 12
	}

	generated := make([]models.GeneratedTeam, 0, req.Count)
	for i := 1; i <= req.Count; i++ {
		team, err := a.repo.CreateTeam(ctx, CreateTeamRequest{
			ID:            uuid.New(),
			SeasonID:      req.SeasonID,
			AgeGroup:      req.AgeGroup,
			Name:          fmt.Sprintf("%s Team %d", req.AgeGroup, i),
			MaxRosterSize: maxRoster,
		})
		if err != nil {
			return generated, fmt.Errorf("failed to generate team %d: %w", i, err)
		}
		generated = append(generated, *team)
	}

	log.Info().
		Str("season_id", req.SeasonID.String()).
		Str("age_group", req.AgeGroup).
		Int("count", len(generated)).
		Msg("generated teams")
	return generated, nil
}

// GetTeam retrieves a team by ID
func (a *App) GetTeam(ctx context.Context, id uuid.UUID) (*models.GeneratedTeam, error) {
	return a.repo.GetTeam(ctx, id)
}

// ListTeamsBySeason retrieves all teams for a season
func (a *App) ListTeamsBySeason(ctx context.Context, seasonID uuid.UUID) ([]models.GeneratedTeam, error) {
	return a.repo.ListTeamsBySeason(ctx, seasonID)
}

// AddCoach attaches a coach to a team.
func (a *App) AddCoach(ctx context.Context, teamID, coachID uuid.UUID) error {
	if coachID == uuid.Nil {
		return fmt.Errorf("validation failed: coach id is required")
	}
	return a.repo.AddCoach(ctx, teamID, coachID)
}

func (a *App) validateCreateTeamRequest(req CreateTeamRequest) error {
	if req.ID == uuid.Nil {
		return fmt.Errorf("team id is required")
	}
	if req.SeasonID == uuid.Nil {
		return fmt.Errorf("season id is required")
	}
	if req.AgeGroup == "" {
		return fmt.Errorf("age group is required")
	}
	if req.Name == "" {
		return fmt.Errorf("team name is required")
	}
	if req.MaxRosterSize <= 0 {
		return fmt.Errorf("max roster size must be positive")
	}
	return nil
}
