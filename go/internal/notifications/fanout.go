package notifications

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/mcdev12/rosterpool/go/internal/models"
	"github.com/mcdev12/rosterpool/go/internal/teams"
	"github.com/rs/zerolog/log"
)

// Recipient is one resolved delivery target for an event.
type Recipient struct {
	ID       uuid.UUID
	Category models.NotificationCategory
	Title    string
	Message  string
	TeamID   *uuid.UUID
}

// ProgramReader defines what the resolver needs from the programs app
type ProgramReader interface {
	GetProgram(ctx context.Context, id uuid.UUID) (*models.Program, error)
}

// TeamsLister defines what the resolver needs from the teams app
type TeamsLister interface {
	ListTeamsBySeason(ctx context.Context, seasonID uuid.UUID) ([]models.GeneratedTeam, error)
}

// Resolver expands one registration event into its recipients: the parent,
// the program commissioner, and every coach whose team covers the age group.
// Lookup failures drop that recipient group with a warning; they never block
// the others.
type Resolver struct {
	programs ProgramReader
	teams    TeamsLister
}

// NewResolver creates a recipient Resolver
func NewResolver(programs ProgramReader, teamsApp TeamsLister) *Resolver {
	return &Resolver{programs: programs, teams: teamsApp}
}

func (r *Resolver) Resolve(ctx context.Context, evt RegistrationCommitted) []Recipient {
	recipients := []Recipient{{
		ID:       evt.ParentID,
		Category: models.NotificationRegistrationConfirmed,
		Title:    "Registration confirmed",
		Message:  fmt.Sprintf("%s is registered for %s (%s).", evt.AthleteName, evt.SeasonName, evt.AgeGroupID),
	}}

	program, err := r.programs.GetProgram(ctx, evt.ProgramID)
	if err != nil {
		log.Warn().Err(err).
			Str("program_id", evt.ProgramID.String()).
			Msg("skipping commissioner notification")
	} else {
		recipients = append(recipients, Recipient{
			ID:       program.CommissionerID,
			Category: models.NotificationNewRegistration,
			Title:    "New registration",
			Message:  fmt.Sprintf("%s registered for %s (%s).", evt.AthleteName, evt.SeasonName, evt.AgeGroupID),
		})
	}

	seasonTeams, err := r.teams.ListTeamsBySeason(ctx, evt.SeasonID)
	if err != nil {
		log.Warn().Err(err).
			Str("season_id", evt.SeasonID.String()).
			Msg("skipping coach notifications")
		return recipients
	}

	for _, team := range seasonTeams {
		if !teams.MatchesAgeGroup(team.AgeGroup, evt.AgeGroupID) {
			continue
		}
		teamID := team.ID
		for _, coachID := range team.CoachIDs {
			recipients = append(recipients, Recipient{
				ID:       coachID,
				Category: models.NotificationNewPoolEntry,
				Title:    "New athlete in the draft pool",
				Message:  fmt.Sprintf("%s joined the %s pool for %s.", evt.AthleteName, evt.AgeGroupID, evt.SeasonName),
				TeamID:   &teamID,
			})
		}
	}
	return recipients
}

// Metadata builds the notification metadata blob for a recipient.
func (r *Recipient) Metadata(evt RegistrationCommitted) json.RawMessage {
	meta := map[string]any{
		"athlete_name": evt.AthleteName,
		"season_name":  evt.SeasonName,
		"age_group":    evt.AgeGroupID,
		"season_id":    evt.SeasonID,
	}
	if r.TeamID != nil {
		meta["team_id"] = *r.TeamID
	}
	b, err := json.Marshal(meta)
	if err != nil {
		return nil
	}
	return b
}
