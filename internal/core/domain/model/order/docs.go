// Package order provides domain entities and business logic for order management
// in the delivery system. It implements the Order aggregate root with lifecycle
// management, a tracking timeline and the quoted price breakdown.
//
// The package includes:
//   - Order: The aggregate root that manages order identity, waypoints, and lifecycle
//   - Status: A state machine that enforces valid order status transitions
//   - TrackingEvent: An append-only record of each step of the delivery
//   - PriceBreakdown: The per-component quote the order was placed at
//
// Key business rules:
//   - Orders must have a valid customer, pickup and dropoff waypoints, and a package
//   - Order status follows a defined workflow: Pending -> Assigned -> PickedUp -> InTransit -> Delivered
//   - Orders can be cancelled before pickup and failed from any non-terminal status
//   - Every transition appends a tracking event and reports its driver side effect
//
// The package follows Domain-Driven Design principles, providing rich domain
// behavior, encapsulation, and validation to ensure business rules are enforced.
package order
