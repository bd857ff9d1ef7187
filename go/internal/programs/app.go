package programs

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/mcdev12/rosterpool/go/internal/agegroup"
	"github.com/mcdev12/rosterpool/go/internal/models"
	"github.com/rs/zerolog/log"
)

// CreateProgramRequest represents a request to create a new program.
type CreateProgramRequest struct {
	ID             uuid.UUID `json:"id"`
	Name           string    `json:"name"`
	Sport          string    `json:"sport"`
	CommissionerID uuid.UUID `json:"commissioner_id"`
	AgeGroups      []string  `json:"age_groups"`
}

// ProgramsRepository defines what the app layer needs from the repository
type ProgramsRepository interface {
	CreateProgram(ctx context.Context, req CreateProgramRequest, groups []models.AgeGroup) (*models.Program, error)
	GetProgram(ctx context.Context, id uuid.UUID) (*models.Program, error)
}

// App handles program business logic
type App struct {
	repo ProgramsRepository
}

// NewApp creates a new programs App
func NewApp(repo ProgramsRepository) *App {
	return &App{repo: repo}
}

// CreateProgram creates a program with its default age-group descriptors
// parsed up front.
func (a *App) CreateProgram(ctx context.Context, req CreateProgramRequest) (*models.Program, error) {
	if req.ID == uuid.Nil {
		return nil, fmt.Errorf("validation failed: program id is required")
	}
	if req.Name == "" {
		return nil, fmt.Errorf("validation failed: program name is required")
	}
	if req.Sport == "" {
		return nil, fmt.Errorf("validation failed: sport is required")
	}
	if req.CommissionerID == uuid.Nil {
		return nil, fmt.Errorf("validation failed: commissioner id is required")
	}

	program, err := a.repo.CreateProgram(ctx, req, agegroup.Parse(req.AgeGroups))
	if err != nil {
		return nil, fmt.Errorf("failed to create program: %w", err)
	}

	log.Info().
		Str("program_id", program.ID.String()).
		Str("sport", program.Sport).
		Msg("created program")
	return program, nil
}

// GetProgram retrieves a program by ID
func (a *App) GetProgram(ctx context.Context, id uuid.UUID) (*models.Program, error) {
	return a.repo.GetProgram(ctx, id)
}
