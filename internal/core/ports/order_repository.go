// Package ports defines the contracts between the application core and
// infrastructure. These interfaces establish boundaries between the domain
// layer and adapters, enabling dependency inversion and testability.
package ports

import (
	"context"

	"github.com/p-thanks/RouteX/internal/core/domain/model/kernel"
	"github.com/p-thanks/RouteX/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
// Provides methods for storing, retrieving, and querying order entities
// based on their status and assignment state.
type OrderRepository interface {
	// Add persists a new order aggregate to storage.
	// The order must be valid and not already exist in the repository.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order aggregate, including
	// tracking events appended since the last save.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order aggregate by its unique identifier.
	// Returns the complete order with its tracking timeline.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetAllPending retrieves all orders awaiting driver assignment.
	// Used by the re-dispatch sweep.
	GetAllPending(ctx context.Context) ([]*order.Order, error)

	// GetActiveByDriver retrieves the orders a driver is currently working
	// (assigned, picked up or in transit).
	GetActiveByDriver(ctx context.Context, driverID kernel.UUID) ([]*order.Order, error)
}
