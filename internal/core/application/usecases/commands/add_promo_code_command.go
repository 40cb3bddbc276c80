package commands

import (
	"errors"

	"github.com/p-thanks/RouteX/internal/pkg/errs"
	"github.com/p-thanks/RouteX/internal/pkg/guard"
)

var ErrAddPromoCodeCommandIsNotConstructed = errors.New(
	"AddPromoCodeCommand must be created via NewAddPromoCodeCommand constructor",
)

// AddPromoCodeCommand represents an admin registering a promo code.
type AddPromoCodeCommand struct { //nolint:recvcheck //using for validation
	code     string
	fraction float64

	guard guard.ConstructorGuard
}

// NewAddPromoCodeCommand creates a command to register a promo code.
// The fraction is the discount share in (0, 1].
func NewAddPromoCodeCommand(code string, fraction float64) (AddPromoCodeCommand, error) {
	if code == "" {
		return AddPromoCodeCommand{}, errs.NewValueIsRequiredError("code")
	}
	if fraction <= 0 || fraction > 1 {
		return AddPromoCodeCommand{}, errs.NewValueIsOutOfRangeError("fraction", fraction, 0, 1)
	}
	return AddPromoCodeCommand{code: code, fraction: fraction, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the command was created through the constructor.
func (c AddPromoCodeCommand) Validate() error {
	return c.guard.Validate(ErrAddPromoCodeCommandIsNotConstructed)
}

// Code returns the promo code.
func (c AddPromoCodeCommand) Code() string { return c.code }

// Fraction returns the discount fraction.
func (c AddPromoCodeCommand) Fraction() float64 { return c.fraction }
