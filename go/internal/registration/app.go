package registration

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/mcdev12/rosterpool/go/internal/agegroup"
	"github.com/mcdev12/rosterpool/go/internal/draftpool"
	"github.com/mcdev12/rosterpool/go/internal/models"
	"github.com/mcdev12/rosterpool/go/internal/notifications"
	"github.com/mcdev12/rosterpool/go/internal/seasons"
	"github.com/mcdev12/rosterpool/go/internal/sqlutil"
	"github.com/rs/zerolog/log"
)

// sideEffectTimeout bounds each post-commit best-effort call.
const sideEffectTimeout = 5 * time.Second

// SeasonReader defines what the app layer needs from the seasons app
type SeasonReader interface {
	GetSeason(ctx context.Context, id uuid.UUID) (*models.Season, error)
}

// ProgramReader defines what the app layer needs from the programs app
type ProgramReader interface {
	GetProgram(ctx context.Context, id uuid.UUID) (*models.Program, error)
}

// DuplicateChecker defines the pre-transaction duplicate lookup
type DuplicateChecker interface {
	FindDuplicate(ctx context.Context, seasonID uuid.UUID, athleteID *uuid.UUID, firstName, lastName string, birthDate time.Time) (*models.DraftPoolEntry, error)
}

// JerseyValidator defines what the app layer needs from the jersey allocator
type JerseyValidator interface {
	ValidateRequest(ctx context.Context, sport string, teamID *uuid.UUID, preferred *int, alternates []int) error
}

// ProfileTagger defines the best-effort athlete-profile collaborator
type ProfileTagger interface {
	TagPoolStatus(ctx context.Context, athleteID uuid.UUID, tag models.PoolStatusTag) error
}

// EventSink defines the post-commit notification enqueue
type EventSink interface {
	EnqueueRegistrationCommitted(ctx context.Context, evt notifications.RegistrationCommitted) error
}

// App coordinates admission and the atomic registration write. The pre-checks
// give friendly rejections; the transaction itself re-enforces both capacity
// (conditional counter increment) and uniqueness (partial unique index on live
// entries), so concurrent submissions cannot over-admit.
type App struct {
	db       *sql.DB
	seasons  SeasonReader
	programs ProgramReader
	pool     DuplicateChecker
	jerseys  JerseyValidator
	profiles ProfileTagger
	outbox   EventSink
	now      func() time.Time
}

// NewApp creates a new registration App
func NewApp(db *sql.DB, seasonsApp SeasonReader, programsApp ProgramReader, pool DuplicateChecker, jerseys JerseyValidator, profiles ProfileTagger, outbox EventSink) *App {
	return &App{
		db:       db,
		seasons:  seasonsApp,
		programs: programsApp,
		pool:     pool,
		jerseys:  jerseys,
		profiles: profiles,
		outbox:   outbox,
		now:      time.Now,
	}
}

// Register validates, admits and atomically writes one registration. On
// success the registration record, its pool entry and the season counters are
// all committed together; profile tagging and notification fan-out happen
// afterwards, best effort.
func (a *App) Register(ctx context.Context, req RegisterRequest) (*RegisterResult, error) {
	if err := a.validateRegisterRequest(req); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrValidation, err)
	}

	season, err := a.seasons.GetSeason(ctx, req.SeasonID)
	if err != nil {
		return nil, err
	}
	program, err := a.programs.GetProgram(ctx, season.ProgramID)
	if err != nil {
		return nil, err
	}

	if !season.RegistrationWindowOpen(a.now()) {
		return nil, ErrSeasonNotOpen
	}

	if err := a.jerseys.ValidateRequest(ctx, program.Sport, nil, req.PreferredJersey, req.AlternateJerseys); err != nil {
		return nil, err
	}

	group, err := a.resolveAgeGroup(req, season, program)
	if err != nil {
		return nil, err
	}

	// Pre-transaction duplicate check. Racy by itself; the partial unique
	// index inside the transaction is the backstop.
	dup, err := a.pool.FindDuplicate(ctx, season.ID, req.AthleteID, req.FirstName, req.LastName, req.BirthDate)
	if err != nil {
		return nil, err
	}
	if dup != nil {
		return nil, ErrDuplicate
	}

	// Capacity pre-check; the conditional increment in the transaction is
	// authoritative.
	if season.MaxPerAgeGroup != nil {
		if season.AgeGroupCounts[group.ID] >= *season.MaxPerAgeGroup {
			return nil, ErrAgeGroupFull
		}
	}

	reg, entry := a.buildRecords(req, season, program, group)

	err = sqlutil.Run(ctx, a.db, func(tx *sql.Tx) error {
		if err := NewRepository(tx).InsertRegistration(ctx, reg); err != nil {
			return err
		}
		if err := draftpool.NewRepository(tx).InsertEntry(ctx, entry); err != nil {
			if errors.Is(err, draftpool.ErrDuplicateEntry) {
				return ErrDuplicate
			}
			return err
		}
		if err := seasons.NewRepository(tx).IncrementRegistrationCounters(ctx, season.ID, group.ID, season.MaxPerAgeGroup); err != nil {
			if errors.Is(err, seasons.ErrAgeGroupFull) {
				return ErrAgeGroupFull
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Info().
		Str("registration_id", reg.ID.String()).
		Str("pool_entry_id", entry.ID.String()).
		Str("season_id", season.ID.String()).
		Str("age_group", group.ID).
		Msg("registration committed")

	a.runPostCommit(ctx, season, program, group, reg, entry)

	return &RegisterResult{
		RegistrationID: reg.ID,
		PoolEntryID:    entry.ID,
		AgeGroupID:     group.ID,
	}, nil
}

// runPostCommit performs the non-transactional effects. Failures are logged
// and swallowed: registration success is defined solely by the commit.
func (a *App) runPostCommit(ctx context.Context, season *models.Season, program *models.Program, group models.AgeGroup, reg *models.Registration, entry *models.DraftPoolEntry) {
	// Detached from the caller so cancellation after the commit cannot strand
	// the effects half-done.
	base := context.WithoutCancel(ctx)

	if reg.AthleteID != nil {
		tagCtx, cancel := context.WithTimeout(base, sideEffectTimeout)
		err := a.profiles.TagPoolStatus(tagCtx, *reg.AthleteID, models.PoolStatusTag{
			Status:      models.PoolStatusWaiting,
			ProgramID:   program.ID,
			SeasonID:    season.ID,
			PoolEntryID: entry.ID,
			AgeGroup:    group.ID,
		})
		cancel()
		if err != nil {
			log.Warn().Err(err).
				Str("athlete_id", reg.AthleteID.String()).
				Str("pool_entry_id", entry.ID.String()).
				Msg("failed to tag athlete profile")
		}
	}

	evtCtx, cancel := context.WithTimeout(base, sideEffectTimeout)
	defer cancel()
	err := a.outbox.EnqueueRegistrationCommitted(evtCtx, notifications.RegistrationCommitted{
		RegistrationID: reg.ID,
		PoolEntryID:    entry.ID,
		SeasonID:       season.ID,
		ProgramID:      program.ID,
		AgeGroupID:     group.ID,
		AthleteName:    reg.FirstName + " " + reg.LastName,
		SeasonName:     season.Name,
		ParentID:       reg.ParentID,
	})
	if err != nil {
		log.Warn().Err(err).
			Str("registration_id", reg.ID.String()).
			Msg("failed to enqueue registration event")
	}
}

// resolveAgeGroup picks the bucket: an explicit selection wins, otherwise the
// athlete's label (or one computed from the birthdate) is matched against the
// season's groups, falling back to the program's defaults when the season
// configures none.
func (a *App) resolveAgeGroup(req RegisterRequest, season *models.Season, program *models.Program) (models.AgeGroup, error) {
	groups := season.AgeGroups
	if len(groups) == 0 {
		groups = program.AgeGroups
	}

	if req.AgeGroupID != "" {
		selected := agegroup.Normalize(req.AgeGroupID)
		for _, g := range groups {
			if g.ID == selected {
				return g, nil
			}
		}
		if len(groups) == 0 {
			return models.AgeGroup{ID: selected, Label: req.AgeGroupID, Kind: models.AgeGroupKindLabel}, nil
		}
		return models.AgeGroup{}, fmt.Errorf("%w: unknown age group %q", ErrValidation, req.AgeGroupID)
	}

	label := req.AgeGroupLabel
	if label == "" {
		label = agegroup.LabelForBirthDate(ageAt(req.BirthDate, a.now()))
	}

	group, ok := agegroup.Match(label, groups)
	if !ok {
		return models.AgeGroup{}, ErrAgeGroupUnresolved
	}
	return group, nil
}

func (a *App) buildRecords(req RegisterRequest, season *models.Season, program *models.Program, group models.AgeGroup) (*models.Registration, *models.DraftPoolEntry) {
	now := a.now()
	var waiverAt *time.Time
	if req.WaiverAccepted {
		waiverAt = &now
	}

	reg := &models.Registration{
		ID:                uuid.New(),
		SeasonID:          season.ID,
		ProgramID:         program.ID,
		AgeGroupID:        group.ID,
		AthleteID:         req.AthleteID,
		FirstName:         req.FirstName,
		LastName:          req.LastName,
		BirthDate:         req.BirthDate,
		Gender:            req.Gender,
		PreferredJersey:   req.PreferredJersey,
		AlternateJerseys:  req.AlternateJerseys,
		PreferredPosition: req.PreferredPosition,
		ParentID:          req.ParentID,
		ParentName:        req.ParentName,
		ParentEmail:       req.ParentEmail,
		ParentPhone:       req.ParentPhone,
		EmergencyName:     req.EmergencyName,
		EmergencyPhone:    req.EmergencyPhone,
		Medical:           req.Medical,
		WaiverAccepted:    req.WaiverAccepted,
		WaiverAcceptedAt:  waiverAt,
		AmountDue:         season.RegistrationFee,
		AmountPaid:        req.AmountPaid,
		PaymentMethod:     req.PaymentMethod,
		Status:            models.RegistrationStatusActive,
	}

	entry := &models.DraftPoolEntry{
		ID:                uuid.New(),
		RegistrationID:    reg.ID,
		ProgramID:         program.ID,
		SeasonID:          season.ID,
		AgeGroupID:        group.ID,
		AthleteID:         req.AthleteID,
		FirstName:         req.FirstName,
		LastName:          req.LastName,
		BirthDate:         req.BirthDate,
		PreferredJersey:   req.PreferredJersey,
		PreferredPosition: req.PreferredPosition,
		PaymentStatus:     paymentStatus(season.RegistrationFee, req.AmountPaid),
		Status:            models.DraftStatusAvailable,
	}
	return reg, entry
}

func (a *App) validateRegisterRequest(req RegisterRequest) error {
	if req.SeasonID == uuid.Nil {
		return fmt.Errorf("season id is required")
	}
	if req.FirstName == "" || req.LastName == "" {
		return fmt.Errorf("athlete name is required")
	}
	if req.BirthDate.IsZero() {
		return fmt.Errorf("athlete birthdate is required")
	}
	if req.ParentID == uuid.Nil {
		return fmt.Errorf("parent id is required")
	}
	if req.ParentName == "" || req.ParentEmail == "" {
		return fmt.Errorf("parent contact is required")
	}
	if !req.WaiverAccepted {
		return fmt.Errorf("waiver must be accepted")
	}
	if req.AmountPaid < 0 {
		return fmt.Errorf("amount paid cannot be negative")
	}
	return nil
}

func paymentStatus(due, paid float64) models.PaymentStatus {
	switch {
	case due <= 0 || paid >= due:
		return models.PaymentStatusPaid
	case paid > 0:
		return models.PaymentStatusPartial
	default:
		return models.PaymentStatusUnpaid
	}
}

func ageAt(birthDate, now time.Time) int {
	age := now.Year() - birthDate.Year()
	if now.YearDay() < birthDate.YearDay() {
		age--
	}
	return age
}
