package commands

import (
	"context"
	"time"

	"jewelflow/internal/core/domain/model/order"
)

// CreateOrderCommandHandler handles the business logic for order creation.
// Allocates the next order number and creates the order at the initial stage,
// all inside a single transaction.
type CreateOrderCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewCreateOrderCommandHandler creates a handler for order creation operations.
// Requires an OrderUoWFactory for transactional persistence.
func NewCreateOrderCommandHandler(uowFactory OrderUoWFactory) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the order creation command and returns the allocated order
// number, e.g. "JF-2026-042". The new order starts at the Design stage with
// pending status and version 0.
func (h CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) (string, error) {
	if err := cmd.Validate(); err != nil {
		return "", err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return "", err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()

	orderNo, err := orderRepo.NextOrderNo(ctx, time.Now().UTC().Year())
	if err != nil {
		return "", err
	}

	aggregate, err := order.NewOrder(cmd.OrderID(), orderNo, cmd.Spec())
	if err != nil {
		return "", err
	}

	if err = orderRepo.Add(ctx, aggregate); err != nil {
		return "", err
	}

	if err = uow.Commit(ctx); err != nil {
		return "", err
	}

	return orderNo, nil
}
