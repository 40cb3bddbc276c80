// Package driver provides domain entities and business logic for courier
// management in the delivery system. It implements the Driver aggregate root
// with availability, location tracking, ratings and delivery counters.
//
// Key business rules:
//   - Drivers register offline with a rating seeded at 5.0
//   - Location fixes are last-write-wins; out-of-order reports are rejected
//   - A busy driver cannot change availability until their deliveries finish
//   - Customer ratings fold into a running average over submitted ratings only
package driver
