package commands

import (
	"errors"
	"time"

	"github.com/p-thanks/RouteX/internal/core/domain/model/kernel"
	"github.com/p-thanks/RouteX/internal/core/domain/model/order"
	"github.com/p-thanks/RouteX/internal/pkg/guard"
)

var ErrCreateOrderCommandIsNotConstructed = errors.New(
	"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
)

// CreateOrderCommand represents a request to place a new delivery order:
// who is sending, where from and to, what is in the package and when the
// customer wants it moved.
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	customerID          kernel.UUID
	pickup              order.Waypoint
	dropoff             order.Waypoint
	pkg                 order.PackageInfo
	promoCode           string
	scheduledPickupAt   *time.Time
	scheduledDeliveryAt *time.Time

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand creates a command to place a new delivery order.
// Waypoints and package info carry their own validation; the promo code and
// the scheduled times are optional (nil scheduled times mean asap).
func NewCreateOrderCommand(customerID kernel.UUID, pickup, dropoff order.Waypoint,
	pkg order.PackageInfo, promoCode string,
	scheduledPickupAt, scheduledDeliveryAt *time.Time) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setCustomerID(customerID),
		cmd.setPickup(pickup),
		cmd.setDropoff(dropoff),
		cmd.setPackage(pkg),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	cmd.promoCode = promoCode
	cmd.scheduledPickupAt = scheduledPickupAt
	cmd.scheduledDeliveryAt = scheduledDeliveryAt
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

// CustomerID returns the customer placing the order.
func (c CreateOrderCommand) CustomerID() kernel.UUID { return c.customerID }

// Pickup returns the pickup waypoint.
func (c CreateOrderCommand) Pickup() order.Waypoint { return c.pickup }

// Dropoff returns the delivery waypoint.
func (c CreateOrderCommand) Dropoff() order.Waypoint { return c.dropoff }

// Package returns the package description.
func (c CreateOrderCommand) Package() order.PackageInfo { return c.pkg }

// PromoCode returns the promo code supplied with the order, if any.
func (c CreateOrderCommand) PromoCode() string { return c.promoCode }

// ScheduledPickupAt returns the requested pickup time, or nil for asap.
func (c CreateOrderCommand) ScheduledPickupAt() *time.Time { return c.scheduledPickupAt }

// ScheduledDeliveryAt returns the requested delivery time, or nil.
func (c CreateOrderCommand) ScheduledDeliveryAt() *time.Time { return c.scheduledDeliveryAt }

func (c *CreateOrderCommand) setCustomerID(customerID kernel.UUID) error {
	if err := customerID.Validate(); err != nil {
		return err
	}
	c.customerID = customerID
	return nil
}

func (c *CreateOrderCommand) setPickup(pickup order.Waypoint) error {
	if err := pickup.Validate(); err != nil {
		return err
	}
	c.pickup = pickup
	return nil
}

func (c *CreateOrderCommand) setDropoff(dropoff order.Waypoint) error {
	if err := dropoff.Validate(); err != nil {
		return err
	}
	c.dropoff = dropoff
	return nil
}

func (c *CreateOrderCommand) setPackage(pkg order.PackageInfo) error {
	if err := pkg.Validate(); err != nil {
		return err
	}
	c.pkg = pkg
	return nil
}
