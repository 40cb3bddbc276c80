package cmd

import (
	"time"

	"github.com/p-thanks/RouteX/internal/core/domain/services"
)

// Config carries everything the composition root needs to assemble the
// service. Values come from the environment; see cmd/app/main.go for the
// variable names and defaults.
type Config struct {
	HTTPPort   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	// Dispatch tuning.
	SearchRadiusKm      float64
	MaxSearchRounds     int
	MaxConcurrentOrders int

	// Pricing tuning. Starts from the engine defaults; each field can be
	// overridden from the environment.
	Pricing services.PricingConfig

	// Background sweeps. Schedules are six-field cron expressions.
	RedispatchSchedule   string
	StaleDriverSchedule  string
	StaleDriverThreshold time.Duration

	// Fan-out.
	BroadcastQueueSize int
}
