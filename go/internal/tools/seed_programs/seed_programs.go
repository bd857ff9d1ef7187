package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mcdev12/rosterpool/go/internal/agegroup"
	"github.com/mcdev12/rosterpool/go/internal/dbconfig"
)

type Program struct {
	ID             uuid.UUID `json:"id"`
	Name           string    `json:"name"`
	Sport          string    `json:"sport"`
	CommissionerID uuid.UUID `json:"commissioner_id"`
	AgeGroups      []string  `json:"age_groups"`
}

type Season struct {
	ID              uuid.UUID  `json:"id"`
	ProgramID       uuid.UUID  `json:"program_id"`
	Name            string     `json:"name"`
	Status          string     `json:"status"`
	AgeGroups       []string   `json:"age_groups"`
	RegistrationFee float64    `json:"registration_fee"`
	OpensAt         *time.Time `json:"opens_at"`
	ClosesAt        *time.Time `json:"closes_at"`
	MaxPerAgeGroup  *int       `json:"max_per_age_group"`
}

func main() {
	ctx := context.Background()

	// 1) Load programs.json
	pData, err := os.ReadFile("go/internal/assets/programs.json")
	if err != nil {
		fmt.Fprintf(os.Stderr, "read programs.json: %v\n", err)
		os.Exit(1)
	}
	var seedPrograms []Program
	if err := json.Unmarshal(pData, &seedPrograms); err != nil {
		fmt.Fprintf(os.Stderr, "unmarshal programs: %v\n", err)
		os.Exit(1)
	}

	// 2) Load seasons.json
	sData, err := os.ReadFile("go/internal/assets/seasons.json")
	if err != nil {
		fmt.Fprintf(os.Stderr, "read seasons.json: %v\n", err)
		os.Exit(1)
	}
	var seedSeasons []Season
	if err := json.Unmarshal(sData, &seedSeasons); err != nil {
		fmt.Fprintf(os.Stderr, "unmarshal seasons: %v\n", err)
		os.Exit(1)
	}

	// 3) Connect to DB
	cfg := dbconfig.NewConfigFromEnv()
	pool, err := pgxpool.New(ctx, cfg.DSN())
	if err != nil {
		fmt.Fprintf(os.Stderr, "connect error: %v\n", err)
		os.Exit(1)
	}
	defer pool.Close()

	// 4) Seed programs
	total, inserted, skipped, errs := len(seedPrograms), 0, 0, 0
	for _, p := range seedPrograms {
		groupsJSON, err := parsedGroups(p.AgeGroups)
		if err != nil {
			fmt.Fprintf(os.Stderr, "program %s age groups: %v\n", p.Name, err)
			errs++
			continue
		}
		tag, err := pool.Exec(ctx, `
            INSERT INTO programs (
              id, name, sport, commissioner_id, age_groups
            ) VALUES ($1,$2,$3,$4,$5)
            ON CONFLICT (id) DO NOTHING
        `, p.ID, p.Name, p.Sport, p.CommissionerID, groupsJSON)
		if err != nil {
			errs++
			continue
		}
		if tag.RowsAffected() == 1 {
			inserted++
		} else {
			skipped++
		}
	}
	fmt.Printf(
		"Programs seed: total=%d inserted=%d skipped=%d errors=%d\n",
		total, inserted, skipped, errs,
	)

	// 5) Seed seasons
	total, inserted, skipped, errs = len(seedSeasons), 0, 0, 0
	for _, s := range seedSeasons {
		groupsJSON, err := parsedGroups(s.AgeGroups)
		if err != nil {
			fmt.Fprintf(os.Stderr, "season %s age groups: %v\n", s.Name, err)
			errs++
			continue
		}

		tag, err := pool.Exec(ctx, `
            INSERT INTO seasons (
              id, program_id, name, status, age_groups,
              registration_fee, opens_at, closes_at, max_per_age_group
            ) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
            ON CONFLICT (id) DO NOTHING
        `,
			s.ID, s.ProgramID, s.Name, s.Status, groupsJSON,
			s.RegistrationFee, s.OpensAt, s.ClosesAt, s.MaxPerAgeGroup,
		)
		if err != nil {
			errs++
			continue
		}
		if tag.RowsAffected() == 1 {
			inserted++
		} else {
			skipped++
		}
	}
	fmt.Printf(
		"Seasons seed: total=%d inserted=%d skipped=%d errors=%d\n",
		total, inserted, skipped, errs,
	)
}

// parsedGroups stores age groups in the same parsed JSON form the repositories
// write.
func parsedGroups(descriptors []string) ([]byte, error) {
	return json.Marshal(agegroup.Parse(descriptors))
}
