package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/p-thanks/RouteX/cmd"
	httpin "github.com/p-thanks/RouteX/internal/adapters/in/http"
	"github.com/p-thanks/RouteX/internal/adapters/out/postgres/driverrepo"
	"github.com/p-thanks/RouteX/internal/adapters/out/postgres/orderrepo"
	"github.com/p-thanks/RouteX/internal/core/domain/services"
)

func main() {
	configs := getConfigs()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	db := openDatabase(configs)

	root, err := cmd.NewCompositionRoot(configs, db, logger)
	if err != nil {
		log.Fatalf("Failed to assemble application: %v", err)
	}

	if err = root.WarmGeoIndex(context.Background()); err != nil {
		log.Fatalf("Failed to warm geo index: %v", err)
	}

	jobManager := root.CreateJobManager()
	if err = jobManager.StartAll(); err != nil {
		log.Fatalf("Failed to start background jobs: %v", err)
	}
	defer jobManager.StopAll()

	startWebServer(root, configs.HTTPPort)
}

func getConfigs() cmd.Config {
	// Missing .env is fine in containers where the environment is injected.
	_ = godotenv.Load(".env")

	return cmd.Config{
		HTTPPort:   envOr("HTTP_PORT", "8080"),
		DBHost:     envOr("DB_HOST", "localhost"),
		DBPort:     envOr("DB_PORT", "5432"),
		DBUser:     envOr("DB_USER", "postgres"),
		DBPassword: envOr("DB_PASSWORD", "postgres"),
		DBName:     envOr("DB_NAME", "routex"),
		DBSslMode:  envOr("DB_SSLMODE", "disable"),

		SearchRadiusKm:      envFloatOr("DISPATCH_SEARCH_RADIUS_KM", 5),
		MaxSearchRounds:     envIntOr("DISPATCH_MAX_SEARCH_ROUNDS", 3),
		MaxConcurrentOrders: envIntOr("DISPATCH_MAX_CONCURRENT_ORDERS", 1),

		Pricing: getPricingConfig(),

		RedispatchSchedule:   envOr("REDISPATCH_SCHEDULE", "*/10 * * * * *"),
		StaleDriverSchedule:  envOr("STALE_DRIVER_SCHEDULE", "0 * * * * *"),
		StaleDriverThreshold: envDurationOr("STALE_DRIVER_THRESHOLD", 5*time.Minute),

		BroadcastQueueSize: envIntOr("BROADCAST_QUEUE_SIZE", 64),
	}
}

// getPricingConfig starts from the engine defaults and overrides each
// tunable from the environment. Peak windows are a comma-separated list of
// "HH:MM-HH:MM" intervals.
func getPricingConfig() services.PricingConfig {
	pricing := services.NewDefaultPricingConfig()
	pricing.BaseFare = envFloatOr("PRICING_BASE_FARE", pricing.BaseFare)
	pricing.PerKmRate = envFloatOr("PRICING_PER_KM_RATE", pricing.PerKmRate)
	pricing.PerKgRate = envFloatOr("PRICING_PER_KG_RATE", pricing.PerKgRate)
	pricing.PeakMultiplier = envFloatOr("PRICING_PEAK_MULTIPLIER", pricing.PeakMultiplier)
	pricing.AverageSpeedKmh = envFloatOr("PRICING_AVERAGE_SPEED_KMH", pricing.AverageSpeedKmh)

	if spec := os.Getenv("PRICING_PEAK_WINDOWS"); spec != "" {
		windows, err := services.ParsePeakWindows(spec)
		if err != nil {
			log.Fatalf("Invalid value for PRICING_PEAK_WINDOWS: %v", err)
		}
		pricing.PeakWindows = windows
	}
	return pricing
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envIntOr(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(v)
	if err != nil {
		log.Fatalf("Invalid value for %s: %v", key, err)
	}
	return parsed
}

func envFloatOr(key string, fallback float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	parsed, err := strconv.ParseFloat(v, 64)
	if err != nil {
		log.Fatalf("Invalid value for %s: %v", key, err)
	}
	return parsed
}

func envDurationOr(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(v)
	if err != nil {
		log.Fatalf("Invalid value for %s: %v", key, err)
	}
	return parsed
}

func openDatabase(configs cmd.Config) *gorm.DB {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		configs.DBHost, configs.DBPort, configs.DBUser, configs.DBPassword,
		configs.DBName, configs.DBSslMode)

	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err = db.AutoMigrate(
		&orderrepo.OrderDTO{},
		&orderrepo.TrackingEventDTO{},
		&driverrepo.DriverDTO{},
	); err != nil {
		log.Fatalf("Failed to migrate database schema: %v", err)
	}

	return db
}

func startWebServer(root *cmd.CompositionRoot, port string) {
	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())
	e.Use(httpin.MetricsMiddleware())

	root.CreateHTTPServer().RegisterRoutes(e)
	e.GET("/ws", root.CreateWSHandler().Serve)

	e.Logger.Fatal(e.Start(fmt.Sprintf("0.0.0.0:%s", port)))
}
