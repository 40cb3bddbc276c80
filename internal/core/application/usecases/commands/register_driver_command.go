package commands

import (
	"errors"

	"github.com/p-thanks/RouteX/internal/core/domain/model/driver"
	"github.com/p-thanks/RouteX/internal/pkg/guard"
)

var ErrRegisterDriverCommandIsNotConstructed = errors.New(
	"RegisterDriverCommand must be created via NewRegisterDriverCommand constructor",
)

// RegisterDriverCommand represents a request to register a new driver.
type RegisterDriverCommand struct { //nolint:recvcheck //using for validation
	name         string
	phone        string
	vehicleType  driver.VehicleType
	vehiclePlate string

	guard guard.ConstructorGuard
}

// NewRegisterDriverCommand creates a command to register a new driver.
// Field validation is deferred to the Driver constructor; the command only
// checks the vehicle type parses.
func NewRegisterDriverCommand(name, phone string, vehicleType driver.VehicleType,
	vehiclePlate string) (RegisterDriverCommand, error) {
	if err := vehicleType.Validate(); err != nil {
		return RegisterDriverCommand{}, err
	}

	return RegisterDriverCommand{
		name:         name,
		phone:        phone,
		vehicleType:  vehicleType,
		vehiclePlate: vehiclePlate,
		guard:        guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c RegisterDriverCommand) Validate() error {
	return c.guard.Validate(ErrRegisterDriverCommandIsNotConstructed)
}

// Name returns the driver's name.
func (c RegisterDriverCommand) Name() string { return c.name }

// Phone returns the driver's phone number.
func (c RegisterDriverCommand) Phone() string { return c.phone }

// VehicleType returns the vehicle classification.
func (c RegisterDriverCommand) VehicleType() driver.VehicleType { return c.vehicleType }

// VehiclePlate returns the vehicle plate number.
func (c RegisterDriverCommand) VehiclePlate() string { return c.vehiclePlate }
