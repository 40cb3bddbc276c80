package commands

import (
	"errors"

	"github.com/p-thanks/RouteX/internal/core/domain/model/kernel"
	"github.com/p-thanks/RouteX/internal/pkg/guard"
)

var ErrMarkInTransitCommandIsNotConstructed = errors.New(
	"MarkInTransitCommand must be created via NewMarkInTransitCommand constructor",
)

// MarkInTransitCommand represents the driver's confirmation that the
// package is on its way.
type MarkInTransitCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewMarkInTransitCommand creates a command to record transit start.
func NewMarkInTransitCommand(orderID kernel.UUID) (MarkInTransitCommand, error) {
	if err := orderID.Validate(); err != nil {
		return MarkInTransitCommand{}, err
	}
	return MarkInTransitCommand{orderID: orderID, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the command was created through the constructor.
func (c MarkInTransitCommand) Validate() error {
	return c.guard.Validate(ErrMarkInTransitCommandIsNotConstructed)
}

// OrderID returns the order going into transit.
func (c MarkInTransitCommand) OrderID() kernel.UUID { return c.orderID }
