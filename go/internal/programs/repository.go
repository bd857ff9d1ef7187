package programs

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

// ErrProgramNotFound is returned when no program exists for the given id.
var ErrProgramNotFound = errors.New("program not found")

type Repository struct {
	q sqlutil.Querier
}

func NewRepository(q sqlutil.Querier) *Repository {
	return &Repository{q: q}
}

func (r *Repository) CreateProgram(ctx context.Context, req CreateProgramRequest, groups []models.AgeGroup) (*models.Program, error) {
	groupBytes, err := json.Marshal(groups)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal age groups: %w", err)
	}

	row := r.q.QueryRowContext(ctx, `
		INSERT INTO programs (id, name, sport, commissioner_id, age_groups)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, name, sport, commissioner_id, age_groups, created_at, updated_at`,
		req.ID, req.Name, req.Sport, req.CommissionerID, groupBytes)

	program, err := scanProgram(row)
	if err != nil {
		return nil, fmt.Errorf("failed to create program: %w", err)
	}
	return program, nil
}

func (r *Repository) GetProgram(ctx context.Context, id uuid.UUID) (*models.Program, error) {
	row := r.q.QueryRowContext(ctx, `
		SELECT id, name, sport, commissioner_id, age_groups, created_at, updated_at
		FROM programs WHERE id = $1`, id)

	program, err := scanProgram(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrProgramNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get program: %w", err)
	}
	return program, nil
}

func scanProgram(row *sql.Row) (*models.Program, error) {
	var program models.Program
	var groupBytes []byte

	err := row.Scan(&program.ID, &program.Name, &program.Sport,
		&program.CommissionerID, &groupBytes, &program.CreatedAt, &program.UpdatedAt)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(groupBytes, &program.AgeGroups); err != nil {
		return nil, fmt.Errorf("failed to unmarshal age groups: %w", err)
	}
	return &program, nil
}
