package notifications

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcdev12/rosterpool/go/internal/models"
)

type fakeProgramReader struct {
	program *models.Program
	err     error
}

func (f *fakeProgramReader) GetProgram(ctx context.Context, id uuid.UUID) (*models.Program, error) {
	return f.program, f.err
}

type fakeTeamsLister struct {
	teams []models.GeneratedTeam
	err   error
}

func (f *fakeTeamsLister) ListTeamsBySeason(ctx context.Context, seasonID uuid.UUID) ([]models.GeneratedTeam, error) {
	return f.teams, f.err
}

func committedEvent(parentID uuid.UUID) RegistrationCommitted {
	return RegistrationCommitted{
		RegistrationID: uuid.New(),
		PoolEntryID:    uuid.New(),
		SeasonID:       uuid.New(),
		ProgramID:      uuid.New(),
		AgeGroupID:     "8U",
		AthleteName:    "Maya Okafor",
		SeasonName:     "Winter 2026",
		ParentID:       parentID,
	}
}

func TestResolver_Resolve(t *testing.T) {
	commissionerID := uuid.New()
	parentID := uuid.New()

	t.Run("parent, commissioner and matching coaches", func(t *testing.T) {
		coachA, coachB := uuid.New(), uuid.New()
		resolver := NewResolver(
			&fakeProgramReader{program: &models.Program{ID: uuid.New(), CommissionerID: commissionerID}},
			&fakeTeamsLister{teams: []models.GeneratedTeam{
				{ID: uuid.New(), AgeGroup: "8U", CoachIDs: []uuid.UUID{coachA, coachB}},
				{ID: uuid.New(), AgeGroup: "12U", CoachIDs: []uuid.UUID{uuid.New()}},
			}},
		)

		recipients := resolver.Resolve(context.Background(), committedEvent(parentID))

		require.Len(t, recipients, 4)
		assert.Equal(t, parentID, recipients[0].ID)
		assert.Equal(t, models.NotificationRegistrationConfirmed, recipients[0].Category)
		assert.Equal(t, commissionerID, recipients[1].ID)
		assert.Equal(t, models.NotificationNewRegistration, recipients[1].Category)
		assert.Equal(t, coachA, recipients[2].ID)
		assert.Equal(t, coachB, recipients[3].ID)
		assert.Equal(t, models.NotificationNewPoolEntry, recipients[2].Category)
	})

	t.Run("coaches match comma-separated team age groups", func(t *testing.T) {
		coach := uuid.New()
		resolver := NewResolver(
			&fakeProgramReader{program: &models.Program{CommissionerID: commissionerID}},
			&fakeTeamsLister{teams: []models.GeneratedTeam{
				{ID: uuid.New(), AgeGroup: "8U,10U", CoachIDs: []uuid.UUID{coach}},
			}},
		)

		recipients := resolver.Resolve(context.Background(), committedEvent(parentID))

		require.Len(t, recipients, 3)
		assert.Equal(t, coach, recipients[2].ID)
	})

	t.Run("a program lookup failure drops only the commissioner", func(t *testing.T) {
		coach := uuid.New()
		resolver := NewResolver(
			&fakeProgramReader{err: errors.New("db down")},
			&fakeTeamsLister{teams: []models.GeneratedTeam{
				{ID: uuid.New(), AgeGroup: "8U", CoachIDs: []uuid.UUID{coach}},
			}},
		)

		recipients := resolver.Resolve(context.Background(), committedEvent(parentID))

		require.Len(t, recipients, 2)
		assert.Equal(t, parentID, recipients[0].ID)
		assert.Equal(t, coach, recipients[1].ID)
	})

	t.Run("a teams lookup failure still notifies the parent and commissioner", func(t *testing.T) {
		resolver := NewResolver(
			&fakeProgramReader{program: &models.Program{CommissionerID: commissionerID}},
			&fakeTeamsLister{err: errors.New("db down")},
		)

		recipients := resolver.Resolve(context.Background(), committedEvent(parentID))

		require.Len(t, recipients, 2)
	})

	t.Run("coach recipients carry the team id in metadata", func(t *testing.T) {
		teamID := uuid.New()
		resolver := NewResolver(
			&fakeProgramReader{program: &models.Program{CommissionerID: commissionerID}},
			&fakeTeamsLister{teams: []models.GeneratedTeam{
				{ID: teamID, AgeGroup: "8U", CoachIDs: []uuid.UUID{uuid.New()}},
			}},
		)

		evt := committedEvent(parentID)
		recipients := resolver.Resolve(context.Background(), evt)

		require.Len(t, recipients, 3)
		require.NotNil(t, recipients[2].TeamID)
		assert.Equal(t, teamID, *recipients[2].TeamID)
		assert.Contains(t, string(recipients[2].Metadata(evt)), teamID.String())
	})
}
