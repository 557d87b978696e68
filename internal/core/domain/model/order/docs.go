// Package order provides domain entities and business logic for production
// order management in the workshop tracker. It implements the Order aggregate
// root with lifecycle management, stage sequencing, and state transitions.
//
// The package includes:
//   - Order: The aggregate root that manages order identity, the artifact
//     specification, and the production lifecycle
//   - Stage: The fixed, totally ordered production stage sequence
//     (Design through Delivery) with a distinguished terminal marker
//   - Status: A state machine that enforces valid order status transitions
//   - Evidence: The proof-of-completion record required to advance a stage
//   - Material/Purity: The artifact material enumeration and gold purity grades
//
// Key business rules:
//   - Orders start at the Design stage with pending status and version 0
//   - No stage may be skipped; a failed QC check rolls the order back to the
//     stage preceding QC for rework
//   - Advancement past a stage requires completion evidence for that stage
//   - Every successful mutation increments the version exactly once, enabling
//     optimistic concurrency control across concurrent actors
//
// The package follows Domain-Driven Design principles, providing rich domain
// behavior, encapsulation, and validation to ensure business rules are enforced.
package order
