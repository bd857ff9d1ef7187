package main

import (
	"database/sql"

	"github.com/mcdev12/rosterpool/go/internal/athletes"
	"github.com/mcdev12/rosterpool/go/internal/draftpool"
	"github.com/mcdev12/rosterpool/go/internal/jersey"
	"github.com/mcdev12/rosterpool/go/internal/notifications"
	"github.com/mcdev12/rosterpool/go/internal/programs"
	"github.com/mcdev12/rosterpool/go/internal/registration"
	"github.com/mcdev12/rosterpool/go/internal/seasons"
	"github.com/mcdev12/rosterpool/go/internal/teams"
)

type Services struct {
	Registrations *registration.App
	Pool          *draftpool.App
	Seasons       *seasons.App
	Programs      *programs.App
	Teams         *teams.App
	Notifications *notifications.App
	Resolver      *notifications.Resolver
	Outbox        *notifications.Repository
}

func setupServices(database *sql.DB, config *Config) *Services {
	// Wire up dependency injection chain
	// Database layer → Repository layer → App layer

	// Seasons
	seasonsRepo := seasons.NewRepository(database)
	seasonsApp := seasons.NewApp(seasonsRepo)

	// Programs
	programsRepo := programs.NewRepository(database)
	programsApp := programs.NewApp(programsRepo)

	// Teams
	teamsRepo := teams.NewRepository(database)
	teamsApp := teams.NewApp(teamsRepo)

	// Athlete profiles
	athletesRepo := athletes.NewRepository(database)

	// Draft pool
	poolRepo := draftpool.NewRepository(database)
	poolApp := draftpool.NewApp(database, athletesRepo)

	// Jersey validation reads committed numbers through the teams repository
	jerseyAllocator := jersey.NewAllocator(teamsRepo, config.Jersey.Ranges)

	// Notifications outbox
	outboxRepo := notifications.NewRepository(database)
	notificationsApp := notifications.NewApp(outboxRepo)
	resolver := notifications.NewResolver(programsApp, teamsApp)

	// Registration
	registrationApp := registration.NewApp(
		database,
		seasonsApp,
		programsApp,
		poolRepo,
		jerseyAllocator,
		athletesRepo,
		notificationsApp,
	)

	return &Services{
		Registrations: registrationApp,
		Pool:          poolApp,
		Seasons:       seasonsApp,
		Programs:      programsApp,
		Teams:         teamsApp,
		Notifications: notificationsApp,
		Resolver:      resolver,
		Outbox:        outboxRepo,
	}
}
