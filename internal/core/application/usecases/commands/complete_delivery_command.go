package commands

import (
	"errors"

	"github.com/p-thanks/RouteX/internal/core/domain/model/kernel"
	"github.com/p-thanks/RouteX/internal/pkg/guard"
)

var ErrCompleteDeliveryCommandIsNotConstructed = errors.New(
	"CompleteDeliveryCommand must be created via NewCompleteDeliveryCommand constructor",
)

// CompleteDeliveryCommand represents the driver's confirmation that the
// package reached the recipient, together with the proof collected at the
// door (all proof fields optional).
type CompleteDeliveryCommand struct { //nolint:recvcheck //using for validation
	orderID      kernel.UUID
	signatureURL string
	photoURL     string
	notes        string

	guard guard.ConstructorGuard
}

// NewCompleteDeliveryCommand creates a command to record a delivery.
func NewCompleteDeliveryCommand(orderID kernel.UUID,
	signatureURL, photoURL, notes string) (CompleteDeliveryCommand, error) {
	if err := orderID.Validate(); err != nil {
		return CompleteDeliveryCommand{}, err
	}
	return CompleteDeliveryCommand{
		orderID:      orderID,
		signatureURL: signatureURL,
		photoURL:     photoURL,
		notes:        notes,
		guard:        guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c CompleteDeliveryCommand) Validate() error {
	return c.guard.Validate(ErrCompleteDeliveryCommandIsNotConstructed)
}

// OrderID returns the delivered order.
func (c CompleteDeliveryCommand) OrderID() kernel.UUID { return c.orderID }

// SignatureURL returns the recipient signature capture, if any.
func (c CompleteDeliveryCommand) SignatureURL() string { return c.signatureURL }

// PhotoURL returns the handover photo, if any.
func (c CompleteDeliveryCommand) PhotoURL() string { return c.photoURL }

// Notes returns the driver's free-form delivery notes.
func (c CompleteDeliveryCommand) Notes() string { return c.notes }
