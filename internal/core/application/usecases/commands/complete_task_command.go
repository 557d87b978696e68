package commands

import (
	"errors"

	"jewelflow/internal/core/domain/model/kernel"
	"jewelflow/internal/core/domain/model/order"
	"jewelflow/internal/pkg/errs"
	"jewelflow/internal/pkg/guard"
)

var ErrCompleteTaskCommandIsNotConstructed = errors.New(
	"CompleteTaskCommand must be created via NewCompleteTaskCommand constructor",
)

// CompleteTaskCommand represents a worker finishing the current stage of an
// order. Completion always carries an evidence reference; at the QC stage it
// additionally carries a pass/fail outcome.
type CompleteTaskCommand struct { //nolint:recvcheck //using for validation
	orderID     kernel.UUID
	worker      string
	evidenceRef string
	qcOutcome   order.QCOutcome

	guard guard.ConstructorGuard
}

// NewCompleteTaskCommand creates a command to complete an order's current
// task. Returns order.ErrEvidenceIsRequired when the evidence reference is
// missing: no stage can be completed without proof.
func NewCompleteTaskCommand(
	orderID kernel.UUID,
	worker string,
	evidenceRef string,
	qcOutcome order.QCOutcome,
) (CompleteTaskCommand, error) {
	command := CompleteTaskCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := orderID.Validate(); err != nil {
		return CompleteTaskCommand{}, err
	}
	if worker == "" {
		return CompleteTaskCommand{}, errs.NewValueIsRequiredError("worker")
	}
	if evidenceRef == "" {
		return CompleteTaskCommand{}, order.ErrEvidenceIsRequired
	}

	command.orderID = orderID
	command.worker = worker
	command.evidenceRef = evidenceRef
	command.qcOutcome = qcOutcome
	return command, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrCompleteTaskCommandIsNotConstructed if validation fails.
func (c CompleteTaskCommand) Validate() error {
	return c.guard.Validate(ErrCompleteTaskCommandIsNotConstructed)
}

// OrderID returns the id of the order whose task is completed.
func (c CompleteTaskCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Worker returns the identity of the completing worker.
func (c CompleteTaskCommand) Worker() string {
	return c.worker
}

// EvidenceRef returns the opaque reference to the stored completion evidence.
func (c CompleteTaskCommand) EvidenceRef() string {
	return c.evidenceRef
}

// QCOutcome returns the quality check outcome accompanying the completion.
// It is QCOutcomeNone outside the QC stage.
func (c CompleteTaskCommand) QCOutcome() order.QCOutcome {
	return c.qcOutcome
}
