package commands

import (
	"errors"

	"github.com/p-thanks/RouteX/internal/core/domain/model/kernel"
	"github.com/p-thanks/RouteX/internal/pkg/guard"
)

var ErrSetDriverAvailabilityCommandIsNotConstructed = errors.New(
	"SetDriverAvailabilityCommand must be created via NewSetDriverAvailabilityCommand constructor",
)

// SetDriverAvailabilityCommand represents a driver going on or off shift.
type SetDriverAvailabilityCommand struct { //nolint:recvcheck //using for validation
	driverID kernel.UUID
	online   bool

	guard guard.ConstructorGuard
}

// NewSetDriverAvailabilityCommand creates a command to change availability.
func NewSetDriverAvailabilityCommand(driverID kernel.UUID, online bool) (SetDriverAvailabilityCommand, error) {
	if err := driverID.Validate(); err != nil {
		return SetDriverAvailabilityCommand{}, err
	}
	return SetDriverAvailabilityCommand{driverID: driverID, online: online, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the command was created through the constructor.
func (c SetDriverAvailabilityCommand) Validate() error {
	return c.guard.Validate(ErrSetDriverAvailabilityCommandIsNotConstructed)
}

// DriverID returns the driver changing availability.
func (c SetDriverAvailabilityCommand) DriverID() kernel.UUID { return c.driverID }

// Online reports whether the driver is going on shift.
func (c SetDriverAvailabilityCommand) Online() bool { return c.online }
