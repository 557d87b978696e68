// Package services provides domain services that operate across the order
// model without belonging to a single aggregate.
//
// The package includes:
//   - OrderFilter: A pure predicate narrowing fetched orders by free-text
//     search and stage selection for the order listing
package services
