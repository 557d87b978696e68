package commands

import (
	"errors"

	"jewelflow/internal/core/domain/model/kernel"
	"jewelflow/internal/pkg/errs"
	"jewelflow/internal/pkg/guard"
)

var ErrClaimTaskCommandIsNotConstructed = errors.New(
	"ClaimTaskCommand must be created via NewClaimTaskCommand constructor",
)

// ClaimTaskCommand represents a worker's request to take the current task of
// an order. The task is identified by the order it derives from.
type ClaimTaskCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	worker  string

	guard guard.ConstructorGuard
}

// NewClaimTaskCommand creates a command for a worker to claim an order's task.
// Validates that the order ID is valid and the worker identity is present.
func NewClaimTaskCommand(orderID kernel.UUID, worker string) (ClaimTaskCommand, error) {
	command := ClaimTaskCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := orderID.Validate(); err != nil {
		return ClaimTaskCommand{}, err
	}
	if worker == "" {
		return ClaimTaskCommand{}, errs.NewValueIsRequiredError("worker")
	}

	command.orderID = orderID
	command.worker = worker
	return command, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrClaimTaskCommandIsNotConstructed if validation fails.
func (c ClaimTaskCommand) Validate() error {
	return c.guard.Validate(ErrClaimTaskCommandIsNotConstructed)
}

// OrderID returns the id of the order whose task is claimed.
func (c ClaimTaskCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Worker returns the identity of the claiming worker.
func (c ClaimTaskCommand) Worker() string {
	return c.worker
}
