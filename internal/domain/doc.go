// Package domain defines the core domain types and interfaces.
//
// This package contains the Account model, the repository contract, and the
// sentinel errors shared across layers. No implementation code - just contracts.
// Prevents circular imports by keeping interfaces on the consumer side.
package domain
