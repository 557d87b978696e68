package commands

import (
	"errors"

	"jewelflow/internal/core/domain/model/kernel"
	"jewelflow/internal/core/domain/model/order"
	"jewelflow/internal/pkg/errs"
	"jewelflow/internal/pkg/guard"
)

var ErrCreateOrderCommandIsNotConstructed = errors.New(
	"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
)

// CreateOrderCommand represents a request to register a new production order.
// It carries the client contact details and the artifact specification; the
// order number is allocated by the handler inside the create transaction.
//
// Example:
//
//	orderID := kernel.NewUUID()
//	cmd, err := NewCreateOrderCommand(orderID, spec)
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
//
//	handler := NewCreateOrderCommandHandler(uowFactory)
//	orderNo, err := handler.Handle(ctx, cmd)
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	spec    order.Spec

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand creates a command to register a new production order.
// Validates the order ID and the presence of the required client fields here;
// the deeper field rules (material/purity pairing, weight, quantity) are the
// aggregate's own validation and run in the handler.
func NewCreateOrderCommand(orderID kernel.UUID, spec order.Spec) (CreateOrderCommand, error) {
	command := CreateOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := command.setOrderID(orderID); err != nil {
		return CreateOrderCommand{}, err
	}
	if spec.ClientName == "" {
		return CreateOrderCommand{}, errs.NewValueIsRequiredError("clientName")
	}
	if spec.ProductName == "" {
		return CreateOrderCommand{}, errs.NewValueIsRequiredError("productName")
	}

	command.spec = spec
	return command, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrCreateOrderCommandIsNotConstructed if validation fails.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

// OrderID returns the unique identifier for the new order.
func (c CreateOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Spec returns the client and artifact details of the request.
func (c CreateOrderCommand) Spec() order.Spec {
	return c.spec
}

func (c *CreateOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}
