package order

import (
	"fmt"

	"jewelflow/internal/pkg/errs"
)

// Status represents the lifecycle state of an order.
// It implements a state machine with defined transitions to ensure
// orders follow the correct production workflow.
//
// State transitions:
//
//	Pending ──> InProgress ──> Completed
//	   ^            │ ^
//	   └────────────┘ └─────> QCFail (QC rollback, rework continues)
//	(release at the initial stage)
//
// Cancelled is reachable from any non-final status. QCPass and QCFail are
// transient sub-states that only appear around the QC checkpoint.
//
// Status is a value object that validates state transitions
// and provides string representations for persistence and display.
type Status int

const (
	// StatusUnknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	StatusUnknown Status = iota

	// Pending is the initial status of a new order, held only while the order
	// sits at the first stage and no worker has claimed its task.
	Pending

	// InProgress indicates a worker has claimed the order's current task, or
	// the order has advanced past its first stage and production continues.
	InProgress

	// Completed indicates the order has moved past the final Delivery stage.
	// This is a final state with no further transitions allowed.
	Completed

	// Cancelled indicates the order was abandoned before completion.
	// This is a final state with no further transitions allowed.
	Cancelled

	// QCPass marks a quality check that succeeded. It is only ever observable
	// while the order's current stage is QC; ordinary advancement replaces it.
	QCPass

	// QCFail marks a quality check that failed. The order is rolled back to
	// the stage preceding QC for rework and carries this status until the
	// rework task is claimed.
	QCFail
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		StatusUnknown: "unknown",
		Pending:       "pending",
		InProgress:    "in_progress",
		Completed:     "completed",
		Cancelled:     "cancelled",
		QCPass:        "qc_pass",
		QCFail:        "qc_fail",
	}
}

func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // StatusUnknown is intentionally excluded as it's invalid
	return map[Status]string{
		Pending:    "pending",
		InProgress: "in_progress",
		Completed:  "completed",
		Cancelled:  "cancelled",
		QCPass:     "qc_pass",
		QCFail:     "qc_fail",
	}
}

// StatusFromString parses a status from its wire representation ("pending",
// "in_progress", ...). Returns an error for unknown names.
func StatusFromString(s string) (Status, error) {
	for status, name := range getValidStatusStrings() {
		if name == s {
			return status, nil
		}
	}
	return StatusUnknown, errs.NewValueIsInvalidErrorWithCause("status",
		fmt.Errorf("%q is not a valid status", s))
}

// Validate checks if the Status value is valid.
//
// Valid statuses are: pending, in_progress, completed, cancelled, qc_pass,
// qc_fail. StatusUnknown (0) and any other values are invalid.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the wire name of the status ("pending", "in_progress", ...).
// Implements fmt.Stringer and is safe to call on any Status value.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// IsFinal reports whether the status permits no further transitions.
// Completed and Cancelled are final.
func (s Status) IsFinal() bool {
	return s == Completed || s == Cancelled
}

// IsActive reports whether an order in this status still participates in the
// production workflow. Active orders surface tasks; final ones do not.
func (s Status) IsActive() bool {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return false
	}
	return !s.IsFinal()
}

// Cancel transitions the status to Cancelled.
//
// Valid from any active status. Invalid from Completed, Cancelled, or an
// undefined status.
func (s Status) Cancel() (Status, error) {
	if !s.IsActive() {
		return StatusUnknown, errs.NewValueIsInvalidErrorWithCause(
			"status",
			fmt.Errorf("%s is not a valid status to cancel", s),
		)
	}
	return Cancelled, nil
}
