// Package services provides domain services that work across aggregates.
//
// The package includes:
//   - Checkout: turns a composed cart into an Order snapshot ready for the store
//
// Domain services are stateless and never persist anything themselves.
package services
