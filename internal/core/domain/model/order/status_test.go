package order_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/p-thanks/RouteX/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatus_Constants(t *testing.T) {
	t.Run("should have correct enum values", func(t *testing.T) {
		assert.Equal(t, 0, int(order.Unknown))
		assert.Equal(t, 1, int(order.Pending))
		assert.Equal(t, 2, int(order.Assigned))
		assert.Equal(t, 3, int(order.PickedUp))
		assert.Equal(t, 4, int(order.InTransit))
		assert.Equal(t, 5, int(order.Delivered))
		assert.Equal(t, 6, int(order.Cancelled))
		assert.Equal(t, 7, int(order.Failed))
	})
}

func TestStatus_Validate(t *testing.T) {
	t.Run("should validate valid statuses", func(t *testing.T) {
		validStatuses := []order.Status{
			order.Pending,
			order.Assigned,
			order.PickedUp,
			order.InTransit,
			order.Delivered,
			order.Cancelled,
			order.Failed,
		}

		for _, status := range validStatuses {
			t.Run(fmt.Sprintf("should validate %s status", status.String()), func(t *testing.T) {
				require.NoError(t, status.Validate())
			})
		}
	})

	t.Run("should reject Unknown status", func(t *testing.T) {
		err := order.Unknown.Validate()

		require.Error(t, err)
		assert.ErrorIs(t, err, order.ErrInvalidTransition)
	})

	t.Run("should reject out of range status", func(t *testing.T) {
		err := order.Status(99).Validate()

		require.Error(t, err)
	})
}

func TestStatus_String(t *testing.T) {
	t.Run("should return wire names", func(t *testing.T) {
		testCases := map[order.Status]string{
			order.Unknown:   "UNKNOWN",
			order.Pending:   "PENDING",
			order.Assigned:  "ASSIGNED",
			order.PickedUp:  "PICKED_UP",
			order.InTransit: "IN_TRANSIT",
			order.Delivered: "DELIVERED",
			order.Cancelled: "CANCELLED",
			order.Failed:    "FAILED",
		}

		for status, expected := range testCases {
			assert.Equal(t, expected, status.String())
		}
	})

	t.Run("should return UNKNOWN for invalid status", func(t *testing.T) {
		assert.Equal(t, "UNKNOWN", order.Status(99).String())
	})
}

func TestStatus_IsTerminal(t *testing.T) {
	t.Run("should mark Delivered, Cancelled and Failed as terminal", func(t *testing.T) {
		assert.True(t, order.Delivered.IsTerminal())
		assert.True(t, order.Cancelled.IsTerminal())
		assert.True(t, order.Failed.IsTerminal())
	})

	t.Run("should mark in-flight statuses as non-terminal", func(t *testing.T) {
		assert.False(t, order.Pending.IsTerminal())
		assert.False(t, order.Assigned.IsTerminal())
		assert.False(t, order.PickedUp.IsTerminal())
		assert.False(t, order.InTransit.IsTerminal())
	})
}

func TestStatus_IsActive(t *testing.T) {
	t.Run("should mark driver-held statuses as active", func(t *testing.T) {
		assert.True(t, order.Assigned.IsActive())
		assert.True(t, order.PickedUp.IsActive())
		assert.True(t, order.InTransit.IsActive())
	})

	t.Run("should mark Pending and terminal statuses as inactive", func(t *testing.T) {
		assert.False(t, order.Pending.IsActive())
		assert.False(t, order.Delivered.IsActive())
		assert.False(t, order.Cancelled.IsActive())
		assert.False(t, order.Failed.IsActive())
	})
}

func TestStatus_Assign(t *testing.T) {
	t.Run("should assign from Pending", func(t *testing.T) {
		next, err := order.Pending.Assign()

		require.NoError(t, err)
		assert.Equal(t, order.Assigned, next)
	})

	t.Run("should reject assign from any other status", func(t *testing.T) {
		invalidSources := []order.Status{
			order.Unknown,
			order.Assigned,
			order.PickedUp,
			order.InTransit,
			order.Delivered,
			order.Cancelled,
			order.Failed,
		}

		for _, status := range invalidSources {
			t.Run(fmt.Sprintf("from %s", status.String()), func(t *testing.T) {
				_, err := status.Assign()

				require.Error(t, err)
				assert.ErrorIs(t, err, order.ErrInvalidTransition)
			})
		}
	})
}

func TestStatus_PickUp(t *testing.T) {
	t.Run("should pick up from Assigned", func(t *testing.T) {
		next, err := order.Assigned.PickUp()

		require.NoError(t, err)
		assert.Equal(t, order.PickedUp, next)
	})

	t.Run("should reject pickup from any other status", func(t *testing.T) {
		for _, status := range []order.Status{order.Pending, order.PickedUp, order.InTransit,
			order.Delivered, order.Cancelled, order.Failed} {
			_, err := status.PickUp()
			assert.ErrorIs(t, err, order.ErrInvalidTransition)
		}
	})
}

func TestStatus_Transit(t *testing.T) {
	t.Run("should transit from PickedUp", func(t *testing.T) {
		next, err := order.PickedUp.Transit()

		require.NoError(t, err)
		assert.Equal(t, order.InTransit, next)
	})

	t.Run("should reject transit from any other status", func(t *testing.T) {
		for _, status := range []order.Status{order.Pending, order.Assigned, order.InTransit,
			order.Delivered, order.Cancelled, order.Failed} {
			_, err := status.Transit()
			assert.ErrorIs(t, err, order.ErrInvalidTransition)
		}
	})
}

func TestStatus_Deliver(t *testing.T) {
	t.Run("should deliver from InTransit", func(t *testing.T) {
		next, err := order.InTransit.Deliver()

		require.NoError(t, err)
		assert.Equal(t, order.Delivered, next)
	})

	t.Run("should reject deliver from any other status", func(t *testing.T) {
		for _, status := range []order.Status{order.Pending, order.Assigned, order.PickedUp,
			order.Delivered, order.Cancelled, order.Failed} {
			_, err := status.Deliver()
			assert.ErrorIs(t, err, order.ErrInvalidTransition)
		}
	})
}

func TestStatus_Cancel(t *testing.T) {
	t.Run("should cancel from Pending", func(t *testing.T) {
		next, err := order.Pending.Cancel()

		require.NoError(t, err)
		assert.Equal(t, order.Cancelled, next)
	})

	t.Run("should cancel from Assigned", func(t *testing.T) {
		next, err := order.Assigned.Cancel()

		require.NoError(t, err)
		assert.Equal(t, order.Cancelled, next)
	})

	t.Run("should reject cancel after pickup", func(t *testing.T) {
		for _, status := range []order.Status{order.PickedUp, order.InTransit,
			order.Delivered, order.Cancelled, order.Failed} {
			_, err := status.Cancel()
			assert.ErrorIs(t, err, order.ErrInvalidTransition)
		}
	})
}

func TestStatus_Fail(t *testing.T) {
	t.Run("should fail from any non-terminal status", func(t *testing.T) {
		for _, status := range []order.Status{order.Pending, order.Assigned,
			order.PickedUp, order.InTransit} {
			next, err := status.Fail()

			require.NoError(t, err)
			assert.Equal(t, order.Failed, next)
		}
	})

	t.Run("should reject fail from terminal statuses", func(t *testing.T) {
		for _, status := range []order.Status{order.Delivered, order.Cancelled, order.Failed} {
			_, err := status.Fail()
			assert.ErrorIs(t, err, order.ErrInvalidTransition)
		}
	})

	t.Run("should reject fail from Unknown", func(t *testing.T) {
		_, err := order.Unknown.Fail()
		require.Error(t, err)
	})
}

func TestInvalidTransitionError(t *testing.T) {
	t.Run("should describe the source status and event", func(t *testing.T) {
		err := order.NewInvalidTransitionError(order.Delivered, "cancel")

		assert.Equal(t, "invalid order status transition: cannot cancel from DELIVERED", err.Error())
	})

	t.Run("should unwrap to sentinel", func(t *testing.T) {
		err := order.NewInvalidTransitionError(order.Pending, "deliver")

		assert.True(t, errors.Is(err, order.ErrInvalidTransition))
	})
}
