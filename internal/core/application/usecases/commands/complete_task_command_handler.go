package commands

import (
	"context"
	"errors"
	"log/slog"

	"jewelflow/internal/core/domain/model/order"
	"jewelflow/internal/core/ports"
	"jewelflow/internal/pkg/errs"
)

// CompleteTaskCommandHandler handles stage completion: it records the
// completion evidence and advances the order in one transaction, so no
// observer ever sees an advanced order without its evidence.
//
// At the QC stage a fail outcome rolls the order back to the rework stage and
// clears the evidence for QC and that stage, making the rework tasks
// reappear. After a successful commit the handler publishes a stage-advanced
// event on the notification channel, best effort.
type CompleteTaskCommandHandler struct {
	uowFactory UoWFactory
	publisher  ports.EventPublisher
	logger     *slog.Logger
}

// NewCompleteTaskCommandHandler creates a handler for task completion
// operations. Requires a UoWFactory spanning orders and evidence, and the
// event publisher for post-commit notifications.
func NewCompleteTaskCommandHandler(
	uowFactory UoWFactory,
	publisher ports.EventPublisher,
	logger *slog.Logger,
) CompleteTaskCommandHandler {
	return CompleteTaskCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
		logger:     logger.With("component", "complete_task_handler"),
	}
}

// Handle processes the completion command.
//
// Returns ErrNoOrderFound for unknown orders, order.ErrTaskAlreadyClaimed
// when the task is held by a different worker, order.ErrTerminalStage when
// the order is already terminal, and errs.ErrVersionConflict when a
// concurrent mutation won the race (the caller should re-read and retry).
func (h CompleteTaskCommandHandler) Handle(ctx context.Context, cmd CompleteTaskCommand) error {
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
	evidenceRepo := uow.EvidenceRepository()

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

	fromStage := aggregate.Stage()

	evidence, err := order.NewEvidence(
		aggregate.ID(), fromStage, cmd.EvidenceRef(), cmd.Worker(), cmd.QCOutcome())
	if err != nil {
		return err
	}
	if err = evidenceRepo.Add(ctx, evidence); err != nil {
		return err
	}

	if err = aggregate.Advance(cmd.QCOutcome()); err != nil {
		return err
	}

	// QC rejection: the order rolled back for rework. Clear the evidence of
	// the failed check and of the rework stage so their tasks rematerialize.
	if aggregate.Status() == order.QCFail {
		reworkStages := []order.Stage{fromStage, aggregate.Stage()}
		if err = evidenceRepo.DeleteForStages(ctx, aggregate.ID(), reworkStages); err != nil {
			return err
		}
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.publish(ctx, order.NewStageAdvancedEvent(aggregate, fromStage, cmd.Worker(), cmd.QCOutcome()))
	return nil
}

func (h CompleteTaskCommandHandler) publish(ctx context.Context, event order.StageAdvancedEvent) {
	if h.publisher == nil {
		return
	}
	if err := h.publisher.PublishStageAdvanced(ctx, event); err != nil {
		h.logger.WarnContext(ctx, "failed to publish stage advanced event",
			"order_no", event.OrderNo,
			"from_stage", event.FromStage.String(),
			"to_stage", event.ToStage.String(),
			"error", err)
	}
}
