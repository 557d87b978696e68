package commands

import (
	"errors"

	"jewelflow/internal/core/domain/model/kernel"
	"jewelflow/internal/pkg/errs"
	"jewelflow/internal/pkg/guard"
)

var ErrReleaseTaskCommandIsNotConstructed = errors.New(
	"ReleaseTaskCommand must be created via NewReleaseTaskCommand constructor",
)

// ReleaseTaskCommand represents a worker handing back a claimed task without
// completing it.
type ReleaseTaskCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	worker  string

	guard guard.ConstructorGuard
}

// NewReleaseTaskCommand creates a command for a worker to release an order's
// task. Validates that the order ID is valid and the worker identity is
// present.
func NewReleaseTaskCommand(orderID kernel.UUID, worker string) (ReleaseTaskCommand, error) {
	command := ReleaseTaskCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := orderID.Validate(); err != nil {
		return ReleaseTaskCommand{}, err
	}
	if worker == "" {
		return ReleaseTaskCommand{}, errs.NewValueIsRequiredError("worker")
	}

	command.orderID = orderID
	command.worker = worker
	return command, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrReleaseTaskCommandIsNotConstructed if validation fails.
func (c ReleaseTaskCommand) Validate() error {
	return c.guard.Validate(ErrReleaseTaskCommandIsNotConstructed)
}

// OrderID returns the id of the order whose task is released.
func (c ReleaseTaskCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Worker returns the identity of the releasing worker.
func (c ReleaseTaskCommand) Worker() string {
	return c.worker
}
