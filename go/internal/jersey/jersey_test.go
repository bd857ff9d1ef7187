package jersey

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRoster struct {
	rostered []int
	pending  []int
}

func (f *fakeRoster) TeamJerseyNumbers(ctx context.Context, teamID uuid.UUID) ([]int, error) {
	return f.rostered, nil
}

func (f *fakeRoster) PendingPreferredNumbers(ctx context.Context, teamID uuid.UUID) ([]int, error) {
	return f.pending, nil
}

func TestValidate(t *testing.T) {
	a := NewAllocator(&fakeRoster{}, nil)

	t.Run("number above range rejected", func(t *testing.T) {
		err := a.Validate("BASKETBALL", 150)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrOutOfRange)
	})

	t.Run("number inside range accepted", func(t *testing.T) {
		assert.NoError(t, a.Validate("BASKETBALL", 23))
	})

	t.Run("hockey disallows zero", func(t *testing.T) {
		err := a.Validate("HOCKEY", 0)
		assert.ErrorIs(t, err, ErrOutOfRange)
	})

	t.Run("override replaces default range", func(t *testing.T) {
		a := NewAllocator(&fakeRoster{}, map[string]Range{"soccer": {Min: 1, Max: 30}})
		assert.ErrorIs(t, a.Validate("SOCCER", 45), ErrOutOfRange)
		assert.NoError(t, a.Validate("SOCCER", 30))
	})
}

func TestCheckAvailability(t *testing.T) {
	teamID := uuid.New()

	t.Run("rostered number reports taken", func(t *testing.T) {
		a := NewAllocator(&fakeRoster{rostered: []int{23}}, nil)
		err := a.CheckAvailability(context.Background(), teamID, 23)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrTaken)
		assert.NotErrorIs(t, err, ErrOutOfRange)
	})

	t.Run("pending request reports taken not invalid", func(t *testing.T) {
		a := NewAllocator(&fakeRoster{pending: []int{23}}, nil)
		err := a.CheckAvailability(context.Background(), teamID, 23)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrTaken)
	})

	t.Run("free number passes", func(t *testing.T) {
		a := NewAllocator(&fakeRoster{rostered: []int{7}, pending: []int{11}}, nil)
		assert.NoError(t, a.CheckAvailability(context.Background(), teamID, 23))
	})
}

func TestValidateRequest(t *testing.T) {
	teamID := uuid.New()
	num := func(n int) *int { return &n }

	t.Run("alternates are range checked only", func(t *testing.T) {
		a := NewAllocator(&fakeRoster{rostered: []int{10}}, nil)
		// 10 is rostered but only appears as an alternate, so it passes.
		err := a.ValidateRequest(context.Background(), "BASEBALL", &teamID, num(5), []int{10})
		assert.NoError(t, err)
	})

	t.Run("alternate out of range rejected", func(t *testing.T) {
		a := NewAllocator(&fakeRoster{}, nil)
		err := a.ValidateRequest(context.Background(), "BASEBALL", nil, num(5), []int{120})
		assert.ErrorIs(t, err, ErrOutOfRange)
	})

	t.Run("no team skips availability", func(t *testing.T) {
		a := NewAllocator(&fakeRoster{rostered: []int{5}}, nil)
		err := a.ValidateRequest(context.Background(), "BASEBALL", nil, num(5), nil)
		assert.NoError(t, err)
	})
}
