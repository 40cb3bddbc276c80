// Package services provides domain services that orchestrate business operations
// across multiple domain entities in the delivery system. It implements complex
// business logic that doesn't naturally belong to a single aggregate root.
//
// The package includes:
//   - PricingEngine: Prices orders from distance, weight, peak windows and promos
//   - DispatchRanker: Orders dispatch candidates by distance, load and rating
//
// Domain services coordinate between aggregates, implementing business logic that
// spans multiple bounded contexts following Domain-Driven Design principles.
package services
