// Package kernel provides the shared domain primitives of the ordering system.
//
// The package includes:
//   - UUID: a value object for store-assigned identifiers
//   - Money: a non-negative amount in minor currency units
//
// Both are immutable, validate on construction and reject their zero value
// where a zero value would be meaningless.
package kernel
