package services

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"sync"
	"time"

	"github.com/p-thanks/RouteX/internal/core/domain/model/order"
	"github.com/p-thanks/RouteX/internal/pkg/errs"
)

// PeakWindow is a half-open [StartMinute, EndMinute) interval of the day
// during which the peak multiplier applies. Minutes count from midnight.
type PeakWindow struct {
	StartMinute int
	EndMinute   int
}

// Contains reports whether the given minute of the day falls in the window.
func (w PeakWindow) Contains(minuteOfDay int) bool {
	return minuteOfDay >= w.StartMinute && minuteOfDay < w.EndMinute
}

// ParsePeakWindows parses a comma-separated list of "HH:MM-HH:MM" intervals,
// e.g. "07:00-10:00,17:00-20:00". Window validity (start before end, within
// the day) is checked by NewPricingEngine.
func ParsePeakWindows(spec string) ([]PeakWindow, error) {
	parts := strings.Split(spec, ",")
	windows := make([]PeakWindow, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		var startH, startM, endH, endM int
		if _, err := fmt.Sscanf(part, "%d:%d-%d:%d", &startH, &startM, &endH, &endM); err != nil {
			return nil, errs.NewValueIsInvalidErrorWithCause("peakWindows",
				fmt.Errorf("cannot parse window %q: %w", part, err))
		}
		windows = append(windows, PeakWindow{
			StartMinute: startH*60 + startM,
			EndMinute:   endH*60 + endM,
		})
	}
	return windows, nil
}

// PricingConfig carries the tunables of the pricing engine. All rates are
// in the platform currency.
type PricingConfig struct {
	BaseFare        float64
	PerKmRate       float64
	PerKgRate       float64
	PeakMultiplier  float64
	PeakWindows     []PeakWindow
	AverageSpeedKmh float64
	PromoCodes      map[string]float64
}

// NewDefaultPricingConfig returns the production defaults: morning and
// evening rush windows and the seeded promo table.
func NewDefaultPricingConfig() PricingConfig {
	return PricingConfig{
		BaseFare:       5.0,
		PerKmRate:      1.0,
		PerKgRate:      0.5,
		PeakMultiplier: 1.5,
		PeakWindows: []PeakWindow{
			{StartMinute: 7 * 60, EndMinute: 10 * 60},
			{StartMinute: 17 * 60, EndMinute: 20 * 60},
		},
		AverageSpeedKmh: 40.0,
		PromoCodes: map[string]float64{
			"FIRST10": 0.10,
			"SAVE20":  0.20,
			"WELCOME": 0.15,
			"NEWUSER": 0.25,
		},
	}
}

// Quote is the outcome of pricing a prospective order: the price breakdown
// plus the delivery estimate derived from the distance.
type Quote struct {
	Price             order.PriceBreakdown
	DistanceKm        float64
	EstimatedMinutes  int
	EstimatedDuration string
}

// PricingEngine is a domain service that prices orders.
//
// Quoting is pure: the same inputs and clock always produce the same quote.
// The promo table is the only mutable state and is guarded for concurrent
// use, so a single engine instance serves all requests.
//
// Pricing rules:
//   - price = base fare + distance * per-km rate + weight * per-kg rate
//   - during a peak window the subtotal is multiplied by the peak multiplier,
//     recorded as a separate surcharge component
//   - a known promo code takes its fraction off the post-peak subtotal;
//     unknown codes are ignored
//   - every component is rounded to cents; the total never goes below zero
type PricingEngine struct {
	baseFare        float64
	perKmRate       float64
	perKgRate       float64
	peakMultiplier  float64
	peakWindows     []PeakWindow
	averageSpeedKmh float64

	mu     sync.RWMutex
	promos map[string]float64
}

// NewPricingEngine creates a PricingEngine from the given config.
func NewPricingEngine(config PricingConfig) (*PricingEngine, error) {
	err := errors.Join(
		validatePositive("baseFare", config.BaseFare),
		validatePositive("perKmRate", config.PerKmRate),
		validatePositive("perKgRate", config.PerKgRate),
		validatePositive("averageSpeedKmh", config.AverageSpeedKmh),
	)
	if config.PeakMultiplier < 1 {
		err = errors.Join(err, errs.NewValueIsOutOfRangeError("peakMultiplier",
			config.PeakMultiplier, 1, math.Inf(1)))
	}
	for _, w := range config.PeakWindows {
		if w.StartMinute < 0 || w.EndMinute > 24*60 || w.StartMinute >= w.EndMinute {
			err = errors.Join(err, errs.NewValueIsInvalidErrorWithCause("peakWindows",
				fmt.Errorf("window [%d, %d) is not a valid minute-of-day interval",
					w.StartMinute, w.EndMinute)))
		}
	}
	if err != nil {
		return nil, err
	}

	promos := make(map[string]float64, len(config.PromoCodes))
	for code, fraction := range config.PromoCodes {
		promos[strings.ToUpper(code)] = fraction
	}

	return &PricingEngine{
		baseFare:        config.BaseFare,
		perKmRate:       config.PerKmRate,
		perKgRate:       config.PerKgRate,
		peakMultiplier:  config.PeakMultiplier,
		peakWindows:     config.PeakWindows,
		averageSpeedKmh: config.AverageSpeedKmh,
		promos:          promos,
	}, nil
}

func validatePositive(paramName string, v float64) error {
	if v <= 0 {
		return errs.NewValueIsOutOfRangeError(paramName, v, 0, math.Inf(1))
	}
	return nil
}

// Quote prices a delivery of the given distance and weight at the given
// time. Promo codes are matched case-insensitively; an unknown code is
// ignored rather than rejected.
func (e *PricingEngine) Quote(distanceKm, weightKg float64, promoCode string,
	now time.Time) (Quote, error) {
	if distanceKm < 0 {
		return Quote{}, errs.NewValueIsInvalidError("distanceKm")
	}
	if weightKg <= 0 {
		return Quote{}, errs.NewValueIsInvalidError("weightKg")
	}

	base := round2(e.baseFare)
	distanceCharge := round2(distanceKm * e.perKmRate)
	weightSurcharge := round2(weightKg * e.perKgRate)

	subtotal := e.baseFare + distanceKm*e.perKmRate + weightKg*e.perKgRate
	peakSurcharge := 0.0
	if e.isPeak(now) {
		peakSurcharge = round2(subtotal * (e.peakMultiplier - 1))
	}

	appliedCode := ""
	discount := 0.0
	if fraction, ok := e.lookupPromo(promoCode); ok {
		appliedCode = strings.ToUpper(promoCode)
		discount = round2((subtotal + peakSurcharge) * fraction)
	}

	// Total is assembled from the rounded components so the breakdown
	// always adds up exactly.
	total := round2(base + distanceCharge + weightSurcharge + peakSurcharge - discount)
	if total < 0 {
		total = 0
	}

	price, err := order.NewPriceBreakdown(base, distanceCharge, weightSurcharge,
		peakSurcharge, discount, total, appliedCode)
	if err != nil {
		return Quote{}, err
	}

	minutes := e.estimateMinutes(distanceKm)
	return Quote{
		Price:             price,
		DistanceKm:        distanceKm,
		EstimatedMinutes:  minutes,
		EstimatedDuration: FormatDuration(minutes),
	}, nil
}

// AddPromoCode registers or replaces a promo code. The fraction is the share
// taken off the post-peak subtotal and must be in (0, 1].
func (e *PricingEngine) AddPromoCode(code string, fraction float64) error {
	if code == "" {
		return errs.NewValueIsRequiredError("code")
	}
	if fraction <= 0 || fraction > 1 {
		return errs.NewValueIsOutOfRangeError("fraction", fraction, 0, 1)
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	e.promos[strings.ToUpper(code)] = fraction
	return nil
}

func (e *PricingEngine) lookupPromo(code string) (float64, bool) {
	if code == "" {
		return 0, false
	}
	e.mu.RLock()
	defer e.mu.RUnlock()
	fraction, ok := e.promos[strings.ToUpper(code)]
	return fraction, ok
}

func (e *PricingEngine) isPeak(now time.Time) bool {
	minuteOfDay := now.Hour()*60 + now.Minute()
	for _, w := range e.peakWindows {
		if w.Contains(minuteOfDay) {
			return true
		}
	}
	return false
}

func (e *PricingEngine) estimateMinutes(distanceKm float64) int {
	minutes := int(math.Round(distanceKm / e.averageSpeedKmh * 60))
	if minutes < 1 {
		minutes = 1
	}
	return minutes
}

// FormatDuration renders a minute count the way customers read it:
// "45 minutes", "1 hour", "1 hour 30 minutes", "2 hours 5 minutes".
func FormatDuration(minutes int) string {
	if minutes < 60 {
		return fmt.Sprintf("%d %s", minutes, pluralMinutes(minutes))
	}

	hours := minutes / 60
	rest := minutes % 60
	hourPart := fmt.Sprintf("%d hour", hours)
	if hours > 1 {
		hourPart += "s"
	}
	if rest == 0 {
		return hourPart
	}
	return fmt.Sprintf("%s %d %s", hourPart, rest, pluralMinutes(rest))
}

func pluralMinutes(n int) string {
	if n == 1 {
		return "minute"
	}
	return "minutes"
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
