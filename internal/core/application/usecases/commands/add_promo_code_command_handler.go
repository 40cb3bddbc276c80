package commands

import (
	"context"

	"github.com/p-thanks/RouteX/internal/core/domain/services"
)

// AddPromoCodeCommandHandler registers promo codes on the pricing engine.
type AddPromoCodeCommandHandler struct {
	pricing *services.PricingEngine
}

// NewAddPromoCodeCommandHandler creates a handler for promo registration.
func NewAddPromoCodeCommandHandler(pricing *services.PricingEngine) AddPromoCodeCommandHandler {
	return AddPromoCodeCommandHandler{pricing: pricing}
}

// Handle registers the promo code. Existing codes are replaced.
func (h *AddPromoCodeCommandHandler) Handle(_ context.Context, cmd AddPromoCodeCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}
	return h.pricing.AddPromoCode(cmd.Code(), cmd.Fraction())
}
