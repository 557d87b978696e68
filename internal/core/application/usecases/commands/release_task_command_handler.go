package commands

import (
	"context"
	"errors"

	"jewelflow/internal/core/domain/model/order"
	"jewelflow/internal/pkg/errs"
)

// ReleaseTaskCommandHandler handles a worker handing back a claimed task.
// The status reverts to pending when the order is still at the initial stage
// and stays in progress otherwise.
type ReleaseTaskCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewReleaseTaskCommandHandler creates a handler for task release operations.
func NewReleaseTaskCommandHandler(uowFactory OrderUoWFactory) ReleaseTaskCommandHandler {
	return ReleaseTaskCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the release command. Releasing an unclaimed order is a
// no-op. Returns ErrNoOrderFound for unknown orders and
// order.ErrTaskAlreadyClaimed when the task is held by a different worker.
func (h ReleaseTaskCommandHandler) Handle(ctx context.Context, cmd ReleaseTaskCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()

	aggregate, err := orderRepo.Get(ctx, cmd.OrderID())
	if errors.Is(err, errs.ErrObjectNotFound) {
		return ErrNoOrderFound
	}
	if err != nil {
		return err
	}

	if aggregate.AssignedWorker() != "" && aggregate.AssignedWorker() != cmd.Worker() {
		return order.ErrTaskAlreadyClaimed
	}

	if err = aggregate.Release(); err != nil {
		return err
	}

	// Releasing an unclaimed order changes nothing.
	if aggregate.Version() != aggregate.PersistedVersion() {
		if err = orderRepo.Update(ctx, aggregate); err != nil {
			return err
		}
	}

	return uow.Commit(ctx)
}
