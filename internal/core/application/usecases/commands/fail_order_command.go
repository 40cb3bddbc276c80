package commands

import (
	"errors"

	"github.com/p-thanks/RouteX/internal/core/domain/model/kernel"
	"github.com/p-thanks/RouteX/internal/pkg/errs"
	"github.com/p-thanks/RouteX/internal/pkg/guard"
)

var ErrFailOrderCommandIsNotConstructed = errors.New(
	"FailOrderCommand must be created via NewFailOrderCommand constructor",
)

// FailOrderCommand represents a report that a delivery cannot be completed.
type FailOrderCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	reason  string

	guard guard.ConstructorGuard
}

// NewFailOrderCommand creates a command to fail an order. Unlike
// cancellation, failures always carry a reason.
func NewFailOrderCommand(orderID kernel.UUID, reason string) (FailOrderCommand, error) {
	if err := orderID.Validate(); err != nil {
		return FailOrderCommand{}, err
	}
	if reason == "" {
		return FailOrderCommand{}, errs.NewValueIsRequiredError("reason")
	}
	return FailOrderCommand{orderID: orderID, reason: reason, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the command was created through the constructor.
func (c FailOrderCommand) Validate() error {
	return c.guard.Validate(ErrFailOrderCommandIsNotConstructed)
}

// OrderID returns the failing order.
func (c FailOrderCommand) OrderID() kernel.UUID { return c.orderID }

// Reason returns why the delivery failed.
func (c FailOrderCommand) Reason() string { return c.reason }
