package commands

import (
	"errors"

	"github.com/p-thanks/RouteX/internal/core/domain/model/kernel"
	"github.com/p-thanks/RouteX/internal/pkg/errs"
	"github.com/p-thanks/RouteX/internal/pkg/guard"
)

var ErrRateDriverCommandIsNotConstructed = errors.New(
	"RateDriverCommand must be created via NewRateDriverCommand constructor",
)

// RateDriverCommand represents a customer rating the driver of a delivered
// order.
type RateDriverCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	rating  int

	guard guard.ConstructorGuard
}

// NewRateDriverCommand creates a command to rate a driver. Ratings are
// whole stars in [1, 5].
func NewRateDriverCommand(orderID kernel.UUID, rating int) (RateDriverCommand, error) {
	if err := orderID.Validate(); err != nil {
		return RateDriverCommand{}, err
	}
	if rating < 1 || rating > 5 {
		return RateDriverCommand{}, errs.NewValueIsOutOfRangeError("rating", rating, 1, 5)
	}
	return RateDriverCommand{orderID: orderID, rating: rating, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the command was created through the constructor.
func (c RateDriverCommand) Validate() error {
	return c.guard.Validate(ErrRateDriverCommandIsNotConstructed)
}

// OrderID returns the delivered order the rating is for.
func (c RateDriverCommand) OrderID() kernel.UUID { return c.orderID }

// Rating returns the star rating.
func (c RateDriverCommand) Rating() int { return c.rating }
