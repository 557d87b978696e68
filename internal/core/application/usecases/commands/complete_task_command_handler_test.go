package commands_test

import (
	"errors"
	"log/slog"
	"testing"

	"jewelflow/internal/core/application/usecases/commands"
	"jewelflow/internal/core/domain/model/kernel"
	"jewelflow/internal/core/domain/model/order"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCompleteTaskCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	id := kernel.NewUUID()
	cmd, _ := commands.NewCompleteTaskCommand(id, "artisan-1", "img-1", order.QCOutcomeNone)
	stored := storedOrder(t, id, order.Design, order.InProgress, "artisan-1", 1)

	orderRepo := new(MockOrderRepository)
	evidenceRepo := new(MockEvidenceRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		uow.On("EvidenceRepository").Return(evidenceRepo).Once(),
		orderRepo.On("Get", mock.Anything, id).Return(stored, nil).Once(),
		evidenceRepo.On("Add", mock.Anything, mock.AnythingOfType("*order.Evidence")).Return(nil).Once(),
		orderRepo.On("Update", mock.Anything, stored).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	publisher := new(MockEventPublisher)
	publisher.On("PublishStageAdvanced", mock.Anything, mock.AnythingOfType("order.StageAdvancedEvent")).
		Return(nil).Once()

	h := commands.NewCompleteTaskCommandHandler(factory, publisher, slog.Default())
	err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	require.Equal(t, order.Casting, stored.Stage())
	require.Empty(t, stored.AssignedWorker())

	event := publisher.Calls[0].Arguments.Get(1).(order.StageAdvancedEvent)
	require.Equal(t, order.Design, event.FromStage)
	require.Equal(t, order.Casting, event.ToStage)
	require.Equal(t, "artisan-1", event.Actor)

	orderRepo.AssertExpectations(t)
	evidenceRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
	publisher.AssertExpectations(t)
}

func TestCompleteTaskCommandHandler_Handle_MissingEvidence(t *testing.T) {
	_, err := commands.NewCompleteTaskCommand(kernel.NewUUID(), "artisan-1", "", order.QCOutcomeNone)
	require.ErrorIs(t, err, order.ErrEvidenceIsRequired)
}

func TestCompleteTaskCommandHandler_Handle_QCFailRollback(t *testing.T) {
	ctx := t.Context()
	id := kernel.NewUUID()
	cmd, _ := commands.NewCompleteTaskCommand(id, "artisan-1", "img-qc", order.QCOutcomeFail)
	stored := storedOrder(t, id, order.QC, order.InProgress, "artisan-1", 6)

	orderRepo := new(MockOrderRepository)
	evidenceRepo := new(MockEvidenceRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		uow.On("EvidenceRepository").Return(evidenceRepo).Once(),
		orderRepo.On("Get", mock.Anything, id).Return(stored, nil).Once(),
		evidenceRepo.On("Add", mock.Anything, mock.AnythingOfType("*order.Evidence")).Return(nil).Once(),
		evidenceRepo.On("DeleteForStages", mock.Anything, id, []order.Stage{order.QC, order.Setting}).
			Return(nil).Once(),
		orderRepo.On("Update", mock.Anything, stored).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	publisher := new(MockEventPublisher)
	publisher.On("PublishStageAdvanced", mock.Anything, mock.AnythingOfType("order.StageAdvancedEvent")).
		Return(nil).Once()

	h := commands.NewCompleteTaskCommandHandler(factory, publisher, slog.Default())
	err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	require.Equal(t, order.Setting, stored.Stage())
	require.Equal(t, order.QCFail, stored.Status())

	orderRepo.AssertExpectations(t)
	evidenceRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
	publisher.AssertExpectations(t)
}

func TestCompleteTaskCommandHandler_Handle_TerminalOrder(t *testing.T) {
	ctx := t.Context()
	id := kernel.NewUUID()
	cmd, _ := commands.NewCompleteTaskCommand(id, "artisan-1", "img-1", order.QCOutcomeNone)
	stored := storedOrder(t, id, order.Terminal, order.Completed, "", 8)

	orderRepo := new(MockOrderRepository)
	evidenceRepo := new(MockEvidenceRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		uow.On("EvidenceRepository").Return(evidenceRepo).Once(),
		orderRepo.On("Get", mock.Anything, id).Return(stored, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCompleteTaskCommandHandler(factory, new(MockEventPublisher), slog.Default())
	err := h.Handle(ctx, cmd)
	require.Error(t, err)
	orderRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestCompleteTaskCommandHandler_Handle_HeldByAnotherWorker(t *testing.T) {
	ctx := t.Context()
	id := kernel.NewUUID()
	cmd, _ := commands.NewCompleteTaskCommand(id, "artisan-2", "img-1", order.QCOutcomeNone)
	stored := storedOrder(t, id, order.Casting, order.InProgress, "artisan-1", 2)

	orderRepo := new(MockOrderRepository)
	evidenceRepo := new(MockEvidenceRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		uow.On("EvidenceRepository").Return(evidenceRepo).Once(),
		orderRepo.On("Get", mock.Anything, id).Return(stored, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCompleteTaskCommandHandler(factory, new(MockEventPublisher), slog.Default())
	err := h.Handle(ctx, cmd)
	require.ErrorIs(t, err, order.ErrTaskAlreadyClaimed)
	orderRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestCompleteTaskCommandHandler_Handle_PublishFailureDoesNotFail(t *testing.T) {
	ctx := t.Context()
	id := kernel.NewUUID()
	cmd, _ := commands.NewCompleteTaskCommand(id, "artisan-1", "img-1", order.QCOutcomeNone)
	stored := storedOrder(t, id, order.Design, order.InProgress, "artisan-1", 1)

	orderRepo := new(MockOrderRepository)
	evidenceRepo := new(MockEvidenceRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		uow.On("EvidenceRepository").Return(evidenceRepo).Once(),
		orderRepo.On("Get", mock.Anything, id).Return(stored, nil).Once(),
		evidenceRepo.On("Add", mock.Anything, mock.AnythingOfType("*order.Evidence")).Return(nil).Once(),
		orderRepo.On("Update", mock.Anything, stored).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	publisher := new(MockEventPublisher)
	publisher.On("PublishStageAdvanced", mock.Anything, mock.AnythingOfType("order.StageAdvancedEvent")).
		Return(errors.New("publish error")).Once()

	h := commands.NewCompleteTaskCommandHandler(factory, publisher, slog.Default())
	err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	publisher.AssertExpectations(t)
}
