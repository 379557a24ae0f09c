package parcel_test

import (
	"testing"

	"parcelflow/internal/core/domain/model/parcel"
	"parcelflow/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusValidate(t *testing.T) {
	valid := []parcel.Status{
		parcel.StatusBooked, parcel.StatusAssigned, parcel.StatusPickedUp,
		parcel.StatusInTransit, parcel.StatusDelivered, parcel.StatusFailed,
		parcel.StatusCancelled,
	}
	for _, s := range valid {
		assert.NoError(t, s.Validate(), s.String())
	}

	assert.Error(t, parcel.StatusUnknown.Validate())
	assert.Error(t, parcel.Status("RETURNED").Validate())
	assert.Error(t, parcel.Status("booked").Validate())
}

func TestStatusIsTerminal(t *testing.T) {
	assert.True(t, parcel.StatusDelivered.IsTerminal())
	assert.True(t, parcel.StatusCancelled.IsTerminal())

	for _, s := range []parcel.Status{
		parcel.StatusBooked, parcel.StatusAssigned, parcel.StatusPickedUp,
		parcel.StatusInTransit, parcel.StatusFailed,
	} {
		assert.False(t, s.IsTerminal(), s.String())
	}
}

func TestStatusCanTransitionTo(t *testing.T) {
	allowed := map[parcel.Status][]parcel.Status{
		parcel.StatusBooked:    {parcel.StatusAssigned, parcel.StatusCancelled},
		parcel.StatusAssigned:  {parcel.StatusPickedUp, parcel.StatusCancelled},
		parcel.StatusPickedUp:  {parcel.StatusInTransit, parcel.StatusFailed},
		parcel.StatusInTransit: {parcel.StatusDelivered, parcel.StatusFailed},
		parcel.StatusFailed:    {parcel.StatusAssigned, parcel.StatusCancelled},
		parcel.StatusDelivered: {},
		parcel.StatusCancelled: {},
	}

	all := []parcel.Status{
		parcel.StatusBooked, parcel.StatusAssigned, parcel.StatusPickedUp,
		parcel.StatusInTransit, parcel.StatusDelivered, parcel.StatusFailed,
		parcel.StatusCancelled,
	}

	for from, targets := range allowed {
		permitted := make(map[parcel.Status]bool, len(targets))
		for _, to := range targets {
			permitted[to] = true
		}
		for _, to := range all {
			assert.Equal(t, permitted[to], from.CanTransitionTo(to),
				"%s -> %s", from, to)
		}
	}
}

func TestStatusSelfLoopIsRejected(t *testing.T) {
	for _, s := range []parcel.Status{
		parcel.StatusBooked, parcel.StatusAssigned, parcel.StatusPickedUp,
		parcel.StatusInTransit, parcel.StatusDelivered, parcel.StatusFailed,
		parcel.StatusCancelled,
	} {
		assert.False(t, s.CanTransitionTo(s), s.String())
	}
}

func TestStatusTransitionTo(t *testing.T) {
	t.Run("allowed pair", func(t *testing.T) {
		next, err := parcel.StatusBooked.TransitionTo(parcel.StatusAssigned)
		require.NoError(t, err)
		assert.Equal(t, parcel.StatusAssigned, next)
	})

	t.Run("disallowed pair names both statuses", func(t *testing.T) {
		_, err := parcel.StatusBooked.TransitionTo(parcel.StatusDelivered)
		require.Error(t, err)

		var transitionErr *parcel.StatusTransitionError
		require.ErrorAs(t, err, &transitionErr)
		assert.Equal(t, parcel.StatusBooked, transitionErr.From)
		assert.Equal(t, parcel.StatusDelivered, transitionErr.To)
		assert.Contains(t, err.Error(), "BOOKED")
		assert.Contains(t, err.Error(), "DELIVERED")
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("terminal statuses allow nothing", func(t *testing.T) {
		_, err := parcel.StatusDelivered.TransitionTo(parcel.StatusFailed)
		assert.Error(t, err)

		_, err = parcel.StatusCancelled.TransitionTo(parcel.StatusBooked)
		assert.Error(t, err)
	})

	t.Run("failed parcel can be reassigned or cancelled", func(t *testing.T) {
		_, err := parcel.StatusFailed.TransitionTo(parcel.StatusAssigned)
		assert.NoError(t, err)

		_, err = parcel.StatusFailed.TransitionTo(parcel.StatusCancelled)
		assert.NoError(t, err)
	})
}

// Every non-terminal status must be able to reach a terminal status; the two
// terminals are the only dead ends in the machine.
func TestStatusEveryPathReachesATerminal(t *testing.T) {
	all := []parcel.Status{
		parcel.StatusBooked, parcel.StatusAssigned, parcel.StatusPickedUp,
		parcel.StatusInTransit, parcel.StatusDelivered, parcel.StatusFailed,
		parcel.StatusCancelled,
	}

	reachesTerminal := func(start parcel.Status) bool {
		seen := map[parcel.Status]bool{}
		frontier := []parcel.Status{start}
		for len(frontier) > 0 {
			current := frontier[0]
			frontier = frontier[1:]
			if current.IsTerminal() {
				return true
			}
			if seen[current] {
				continue
			}
			seen[current] = true
			for _, next := range all {
				if current.CanTransitionTo(next) {
					frontier = append(frontier, next)
				}
			}
		}
		return false
	}

	for _, s := range all {
		assert.True(t, reachesTerminal(s), s.String())
	}

	for _, s := range all {
		if s.IsTerminal() {
			continue
		}
		hasExit := false
		for _, next := range all {
			if s.CanTransitionTo(next) {
				hasExit = true
				break
			}
		}
		assert.True(t, hasExit, "%s is a dead end", s)
	}
}
