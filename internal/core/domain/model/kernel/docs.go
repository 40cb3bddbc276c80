// Package kernel provides core domain primitives shared across the dispatch
// and tracking engine.
//
// The package includes:
//   - UUID: A value object for unique identifiers with validation and comparison capabilities
//   - GeoPoint: A value object for GPS coordinates with great-circle distance math
//   - BoundingBox: An axis-aligned coordinate box used as a radius pre-filter
//
// These primitives enforce domain invariants and validation rules, ensuring
// that domain objects are always in a valid state. They are immutable and
// safe for concurrent use.
package kernel
