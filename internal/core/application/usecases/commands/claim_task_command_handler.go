package commands

import (
	"context"
	"errors"

	"jewelflow/internal/core/domain/model/order"
	"jewelflow/internal/core/ports"
	"jewelflow/internal/pkg/errs"
)

// ErrNoOrderFound is returned when a command references an order that does
// not exist.
var ErrNoOrderFound = errors.New("no order found")

// ClaimTaskCommandHandler handles a worker taking an order's current task.
//
// Concurrent claims on the same task are resolved by the optimistic
// concurrency check on the order version: the loser's compare-and-swap fails,
// the order is re-read once, and the retry surfaces ErrTaskAlreadyClaimed
// when another worker won the race.
type ClaimTaskCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewClaimTaskCommandHandler creates a handler for task claim operations.
func NewClaimTaskCommandHandler(uowFactory OrderUoWFactory) ClaimTaskCommandHandler {
	return ClaimTaskCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the claim command. Re-claiming by the same worker is
// idempotent. Returns ErrNoOrderFound for unknown orders and
// order.ErrTaskAlreadyClaimed when another worker holds the task.
func (h ClaimTaskCommandHandler) Handle(ctx context.Context, cmd ClaimTaskCommand) error {
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

	if err = h.claim(ctx, orderRepo, aggregate, cmd.Worker()); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

func (h ClaimTaskCommandHandler) claim(
	ctx context.Context,
	orderRepo ports.OrderRepository,
	aggregate *order.Order,
	worker string,
) error {
	if err := aggregate.Claim(worker); err != nil {
		return err
	}

	// Idempotent re-claim: nothing changed, nothing to write.
	if aggregate.Version() == aggregate.PersistedVersion() {
		return nil
	}

	err := orderRepo.Update(ctx, aggregate)
	if !errors.Is(err, errs.ErrVersionConflict) {
		return err
	}

	// Lost the race: re-read and try once more. If another worker claimed the
	// task meanwhile, Claim reports it.
	fresh, err := orderRepo.Get(ctx, aggregate.ID())
	if err != nil {
		return err
	}
	if err = fresh.Claim(worker); err != nil {
		return err
	}
	if fresh.Version() == fresh.PersistedVersion() {
		return nil
	}
	return orderRepo.Update(ctx, fresh)
}
