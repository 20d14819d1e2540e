package order_test

import (
	"testing"

	"orderdesk/internal/core/domain/model/order"
	"orderdesk/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeliveryStatus_CanTransitionTo(t *testing.T) {
	t.Run("allowed edges", func(t *testing.T) {
		assert.True(t, order.DeliveryAssigned.CanTransitionTo(order.DeliveryEnRoute))
		assert.True(t, order.DeliveryEnRoute.CanTransitionTo(order.DeliveryDelivered))
		assert.True(t, order.DeliveryEnRoute.CanTransitionTo(order.DeliveryFailed))
	})

	t.Run("rejected edges", func(t *testing.T) {
		assert.False(t, order.DeliveryAssigned.CanTransitionTo(order.DeliveryDelivered))
		assert.False(t, order.DeliveryDelivered.CanTransitionTo(order.DeliveryEnRoute))
		assert.False(t, order.DeliveryFailed.CanTransitionTo(order.DeliveryDelivered))
		assert.False(t, order.DeliveryUnknown.CanTransitionTo(order.DeliveryEnRoute))
	})
}

func TestDeliveryStatus_IsTerminal(t *testing.T) {
	assert.True(t, order.DeliveryDelivered.IsTerminal())
	assert.True(t, order.DeliveryFailed.IsTerminal())
	assert.False(t, order.DeliveryAssigned.IsTerminal())
	assert.False(t, order.DeliveryEnRoute.IsTerminal())
}

func TestDeliveryStatusFromString(t *testing.T) {
	t.Run("round-trips valid sub-statuses", func(t *testing.T) {
		for _, s := range []order.DeliveryStatus{
			order.DeliveryAssigned, order.DeliveryEnRoute,
			order.DeliveryDelivered, order.DeliveryFailed,
		} {
			parsed, err := order.DeliveryStatusFromString(s.String())

			require.NoError(t, err)
			assert.Equal(t, s, parsed)
		}
	})

	t.Run("rejects unknown name", func(t *testing.T) {
		_, err := order.DeliveryStatusFromString("lost")

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}
