package order_test

import (
	"testing"

	"orderdesk/internal/core/domain/model/order"
	"orderdesk/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatus_TransitionTo(t *testing.T) {
	t.Run("allows every edge in the adjacency table", func(t *testing.T) {
		allowed := []struct {
			from, to order.Status
		}{
			{order.StatusNew, order.StatusInProgress},
			{order.StatusNew, order.StatusCancelled},
			{order.StatusInProgress, order.StatusConfirmed},
			{order.StatusInProgress, order.StatusCancelled},
			{order.StatusConfirmed, order.StatusPicking},
			{order.StatusConfirmed, order.StatusCancelled},
			{order.StatusPicking, order.StatusReady},
			{order.StatusPicking, order.StatusShipped},
			{order.StatusPicking, order.StatusCancelled},
			{order.StatusReady, order.StatusShipped},
			{order.StatusReady, order.StatusCancelled},
			{order.StatusShipped, order.StatusCompleted},
			{order.StatusShipped, order.StatusCancelled},
		}

		for _, tc := range allowed {
			next, err := tc.from.TransitionTo(tc.to)

			require.NoError(t, err, "%s -> %s", tc.from, tc.to)
			assert.Equal(t, tc.to, next)
		}
	})

	t.Run("rejects edges not in the adjacency table", func(t *testing.T) {
		rejected := []struct {
			from, to order.Status
		}{
			{order.StatusNew, order.StatusConfirmed},
			{order.StatusNew, order.StatusCompleted},
			{order.StatusConfirmed, order.StatusShipped},
			{order.StatusShipped, order.StatusPicking},
			{order.StatusCompleted, order.StatusCancelled},
			{order.StatusCancelled, order.StatusNew},
			{order.StatusCompleted, order.StatusCompleted},
		}

		for _, tc := range rejected {
			_, err := tc.from.TransitionTo(tc.to)

			require.Error(t, err, "%s -> %s", tc.from, tc.to)
			assert.ErrorIs(t, err, errs.ErrConflict)
		}
	})

	t.Run("rejects unknown target", func(t *testing.T) {
		_, err := order.StatusNew.TransitionTo(order.StatusUnknown)

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestStatus_Flags(t *testing.T) {
	t.Run("terminal statuses", func(t *testing.T) {
		assert.True(t, order.StatusCompleted.IsTerminal())
		assert.True(t, order.StatusCancelled.IsTerminal())
		assert.False(t, order.StatusShipped.IsTerminal())
	})

	t.Run("reservation statuses", func(t *testing.T) {
		assert.True(t, order.StatusPicking.ReservesStock())
		assert.True(t, order.StatusShipped.ReservesStock())
		assert.False(t, order.StatusConfirmed.ReservesStock())
		assert.False(t, order.StatusCompleted.ReservesStock())
	})

	t.Run("write-off status", func(t *testing.T) {
		assert.True(t, order.StatusCompleted.WritesOffStock())
		assert.False(t, order.StatusShipped.WritesOffStock())
	})

	t.Run("deletion statuses", func(t *testing.T) {
		assert.True(t, order.StatusNew.AllowsDeletion())
		assert.True(t, order.StatusCancelled.AllowsDeletion())
		assert.False(t, order.StatusPicking.AllowsDeletion())
		assert.False(t, order.StatusCompleted.AllowsDeletion())
	})
}

func TestStatusFromString(t *testing.T) {
	t.Run("round-trips every valid status", func(t *testing.T) {
		statuses := []order.Status{
			order.StatusNew, order.StatusInProgress, order.StatusConfirmed,
			order.StatusPicking, order.StatusReady, order.StatusShipped,
			order.StatusCompleted, order.StatusCancelled,
		}

		for _, s := range statuses {
			parsed, err := order.StatusFromString(s.String())

			require.NoError(t, err)
			assert.Equal(t, s, parsed)
		}
	})

	t.Run("rejects unknown name", func(t *testing.T) {
		_, err := order.StatusFromString("archived")

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("unknown status stringifies as unknown", func(t *testing.T) {
		assert.Equal(t, "unknown", order.StatusUnknown.String())
		assert.Equal(t, "unknown", order.Status(99).String())
	})
}
