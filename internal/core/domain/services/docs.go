// Package services provides domain services that orchestrate business
// operations across multiple aggregates of the fulfillment system.
//
// The package includes:
//   - ZoneResolver: matches a destination address to a delivery zone
//   - RatePricer: prices one tariff for a concrete shipment request
//   - Quoter: fans the pricer out over all eligible tariffs and ranks quotes
//
// All three are pure computations over immutable inputs: they hold no state,
// perform no I/O and are safe for concurrent use.
package services
