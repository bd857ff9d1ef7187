// Package jersey validates requested jersey numbers against sport ranges and
// numbers already spoken for on a team. It never assigns a number; final
// assignment is a coach action.
package jersey

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

var (
	// ErrOutOfRange is returned when a number falls outside the sport's range.
	ErrOutOfRange = errors.New("jersey number out of range")
	// ErrTaken is returned when a number is already rostered or requested.
	ErrTaken = errors.New("jersey number taken")
)

// Range holds the inclusive numeric bounds for a sport.
type Range struct {
	Min int `yaml:"min"`
	Max int `yaml:"max"`
}

var defaultRanges = map[string]Range{
	"BASEBALL":   {Min: 0, Max: 99},
	"SOFTBALL":   {Min: 0, Max: 99},
	"BASKETBALL": {Min: 0, Max: 99},
	"FOOTBALL":   {Min: 0, Max: 99},
	"SOCCER":     {Min: 0, Max: 99},
	"HOCKEY":     {Min: 1, Max: 98},
}

// RosterReader reports numbers already committed for a team: jerseys worn by
// rostered players and preferred numbers on other live registrations.
type RosterReader interface {
	TeamJerseyNumbers(ctx context.Context, teamID uuid.UUID) ([]int, error)
	PendingPreferredNumbers(ctx context.Context, teamID uuid.UUID) ([]int, error)
}

// Allocator validates jersey requests.
type Allocator struct {
	ranges map[string]Range
	roster RosterReader
}

// NewAllocator creates an Allocator. Overrides replace the default range for
// the named sports.
func NewAllocator(roster RosterReader, overrides map[string]Range) *Allocator {
	ranges := make(map[string]Range, len(defaultRanges)+len(overrides))
	for sport, r := range defaultRanges {
		ranges[sport] = r
	}
	for sport, r := range overrides {
		ranges[strings.ToUpper(sport)] = r
	}
	return &Allocator{ranges: ranges, roster: roster}
}

// RangeFor returns the configured range for a sport. Unknown sports get the
// widest default.
func (a *Allocator) RangeFor(sport string) Range {
	if r, ok := a.ranges[strings.ToUpper(sport)]; ok {
		return r
	}
	return Range{Min: 0, Max: 99}
}

// Validate checks a number against the sport's configured range.
func (a *Allocator) Validate(sport string, number int) error {
	r := a.RangeFor(sport)
	if number < r.Min || number > r.Max {
		return fmt.Errorf("number %d for sport %s must be between %d and %d: %w",
			number, sport, r.Min, r.Max, ErrOutOfRange)
	}
	return nil
}

// CheckAvailability reports whether a number is free on the given team,
// considering both the current roster and other pending requests.
func (a *Allocator) CheckAvailability(ctx context.Context, teamID uuid.UUID, number int) error {
	rostered, err := a.roster.TeamJerseyNumbers(ctx, teamID)
	if err != nil {
		return fmt.Errorf("failed to load team jersey numbers: %w", err)
	}
	for _, n := range rostered {
		if n == number {
			return fmt.Errorf("number %d is on the roster: %w", number, ErrTaken)
		}
	}

	pending, err := a.roster.PendingPreferredNumbers(ctx, teamID)
	if err != nil {
		return fmt.Errorf("failed to load pending jersey requests: %w", err)
	}
	for _, n := range pending {
		if n == number {
			return fmt.Errorf("number %d is requested by another registration: %w", number, ErrTaken)
		}
	}
	return nil
}

// ValidateRequest validates a preferred number plus alternates. The preferred
// number is checked for range and, when a destination team is known, for
// availability. Alternates are range-checked only; they are fallbacks for the
// coach, never blocked on availability.
func (a *Allocator) ValidateRequest(ctx context.Context, sport string, teamID *uuid.UUID, preferred *int, alternates []int) error {
	if preferred != nil {
		if err := a.Validate(sport, *preferred); err != nil {
			return err
		}
		if teamID != nil {
			if err := a.CheckAvailability(ctx, *teamID, *preferred); err != nil {
				return err
			}
		}
	}
	for _, alt := range alternates {
		if err := a.Validate(sport, alt); err != nil {
			return err
		}
	}
	return nil
}
