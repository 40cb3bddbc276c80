package order

import (
	"errors"
	"fmt"
	"math"

	"github.com/p-thanks/RouteX/internal/pkg/errs"
	"github.com/p-thanks/RouteX/internal/pkg/guard"
)

// priceEpsilon bounds the rounding slack allowed between the breakdown
// components and the total, each field being rounded to cents independently.
const priceEpsilon = 0.011

// PriceBreakdown is a value object holding the per-component quote for an
// order. All amounts are rounded to two decimals; the total carries at most
// one cent of accumulated rounding slack against the component sum.
type PriceBreakdown struct {
	base             float64
	distanceCharge   float64
	weightSurcharge  float64
	peakSurcharge    float64
	discount         float64
	total            float64
	promoCode        string
	constructorGuard guard.ConstructorGuard
}

// NewPriceBreakdown creates a validated PriceBreakdown.
// Components must be non-negative, the discount must not exceed the
// pre-discount sum, and the total must equal the component sum within
// rounding slack.
func NewPriceBreakdown(base, distanceCharge, weightSurcharge, peakSurcharge, discount, total float64,
	promoCode string) (PriceBreakdown, error) {
	p := PriceBreakdown{
		base:             base,
		distanceCharge:   distanceCharge,
		weightSurcharge:  weightSurcharge,
		peakSurcharge:    peakSurcharge,
		discount:         discount,
		total:            total,
		promoCode:        promoCode,
		constructorGuard: guard.NewConstructorGuard(),
	}

	err := errors.Join(
		validateAmount("base", base),
		validateAmount("distanceCharge", distanceCharge),
		validateAmount("weightSurcharge", weightSurcharge),
		validateAmount("peakSurcharge", peakSurcharge),
		validateAmount("discount", discount),
		validateAmount("total", total),
	)
	if err != nil {
		return PriceBreakdown{}, err
	}

	subtotal := base + distanceCharge + weightSurcharge + peakSurcharge
	if discount > subtotal+priceEpsilon {
		return PriceBreakdown{}, errs.NewValueIsOutOfRangeError("discount", discount, 0, subtotal)
	}
	if math.Abs(subtotal-discount-total) > priceEpsilon {
		return PriceBreakdown{}, errs.NewValueIsInvalidErrorWithCause("total",
			fmt.Errorf("total %.2f does not match component sum %.2f", total, subtotal-discount))
	}

	return p, nil
}

func validateAmount(name string, v float64) error {
	if v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
		return errs.NewValueIsInvalidError(name)
	}
	return nil
}

// Validate checks that the PriceBreakdown was created through its constructor.
func (p PriceBreakdown) Validate() error {
	return p.constructorGuard.Validate(errs.NewValueIsRequiredError("priceBreakdown"))
}

// Base returns the fixed base fee.
func (p PriceBreakdown) Base() float64 { return p.base }

// DistanceCharge returns the per-kilometer charge.
func (p PriceBreakdown) DistanceCharge() float64 { return p.distanceCharge }

// WeightSurcharge returns the per-kilogram surcharge.
func (p PriceBreakdown) WeightSurcharge() float64 { return p.weightSurcharge }

// PeakSurcharge returns the peak-hour surcharge.
func (p PriceBreakdown) PeakSurcharge() float64 { return p.peakSurcharge }

// Discount returns the promo discount applied.
func (p PriceBreakdown) Discount() float64 { return p.discount }

// Total returns the final price.
func (p PriceBreakdown) Total() float64 { return p.total }

// PromoCode returns the promo code applied, or "" when none was.
func (p PriceBreakdown) PromoCode() string { return p.promoCode }

// IsEqual compares two breakdowns field by field with exact equality.
func (p PriceBreakdown) IsEqual(other PriceBreakdown) bool {
	return p.base == other.base &&
		p.distanceCharge == other.distanceCharge &&
		p.weightSurcharge == other.weightSurcharge &&
		p.peakSurcharge == other.peakSurcharge &&
		p.discount == other.discount &&
		p.total == other.total &&
		p.promoCode == other.promoCode
}
