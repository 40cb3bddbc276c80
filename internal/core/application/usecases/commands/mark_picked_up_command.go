package commands

import (
	"errors"

	"github.com/p-thanks/RouteX/internal/core/domain/model/kernel"
	"github.com/p-thanks/RouteX/internal/pkg/guard"
)

var ErrMarkPickedUpCommandIsNotConstructed = errors.New(
	"MarkPickedUpCommand must be created via NewMarkPickedUpCommand constructor",
)

// MarkPickedUpCommand represents the driver's confirmation that the package
// was collected.
type MarkPickedUpCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewMarkPickedUpCommand creates a command to record a pickup.
func NewMarkPickedUpCommand(orderID kernel.UUID) (MarkPickedUpCommand, error) {
	if err := orderID.Validate(); err != nil {
		return MarkPickedUpCommand{}, err
	}
	return MarkPickedUpCommand{orderID: orderID, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the command was created through the constructor.
func (c MarkPickedUpCommand) Validate() error {
	return c.guard.Validate(ErrMarkPickedUpCommandIsNotConstructed)
}

// OrderID returns the order being picked up.
func (c MarkPickedUpCommand) OrderID() kernel.UUID { return c.orderID }
