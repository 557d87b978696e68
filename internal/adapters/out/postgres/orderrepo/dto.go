// Package orderrepo provides data transfer objects and mapping functions for order persistence.
// This package implements the repository pattern for the order domain aggregate, handling
// the conversion between domain entities and database representations.
package orderrepo

import (
	"time"

	"jewelflow/internal/core/domain/model/kernel"
	"jewelflow/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderDTO represents the database structure for persisting order aggregates.
// The version column is the optimistic concurrency token: every update is
// conditional on it still holding the value the aggregate was loaded with.
type OrderDTO struct {
	ID      uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderNo string    `gorm:"uniqueIndex"`

	ClientName  string
	ClientPhone string
	ClientEmail string

	ProductName string
	Material    int
	Purity      int
	Weight      decimal.Decimal `gorm:"type:numeric(10,3)"`
	Quantity    int

	Deadline *time.Time
	Notes    string

	CurrentStage   int `gorm:"index"`
	Status         int `gorm:"index"`
	AssignedWorker string

	CreatedAt time.Time
	Version   int64
}

// TableName specifies the database table name for order entities.
// Overrides GORM's default naming convention to use "orders".
func (OrderDTO) TableName() string {
	return "orders"
}

// OrderSequenceDTO backs the per-year order number sequence. last_seq is
// advanced atomically inside the create transaction.
type OrderSequenceDTO struct {
	Year    int `gorm:"primaryKey"`
	LastSeq int
}

// TableName specifies the database table name for the order number sequence.
func (OrderSequenceDTO) TableName() string {
	return "order_sequences"
}

// fromDomain converts an order domain aggregate to its database representation.
func fromDomain(aggregate *order.Order) OrderDTO {
	return OrderDTO{
		ID:             aggregate.ID().Bytes(),
		OrderNo:        aggregate.OrderNo(),
		ClientName:     aggregate.ClientName(),
		ClientPhone:    aggregate.ClientPhone(),
		ClientEmail:    aggregate.ClientEmail(),
		ProductName:    aggregate.ProductName(),
		Material:       int(aggregate.Material()),
		Purity:         int(aggregate.Purity()),
		Weight:         aggregate.Weight(),
		Quantity:       aggregate.Quantity(),
		Deadline:       aggregate.Deadline(),
		Notes:          aggregate.Notes(),
		CurrentStage:   int(aggregate.Stage()),
		Status:         int(aggregate.Status()),
		AssignedWorker: aggregate.AssignedWorker(),
		CreatedAt:      aggregate.CreatedAt(),
		Version:        aggregate.Version(),
	}
}

// toDomain converts a database DTO to an order domain aggregate.
// Reconstructs the complete aggregate including lifecycle state using RestoreOrder.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	return order.RestoreOrder(
		id,
		dto.OrderNo,
		order.Spec{
			ClientName:  dto.ClientName,
			ClientPhone: dto.ClientPhone,
			ClientEmail: dto.ClientEmail,
			ProductName: dto.ProductName,
			Material:    order.Material(dto.Material),
			Purity:      order.Purity(dto.Purity),
			Weight:      dto.Weight,
			Quantity:    dto.Quantity,
			Deadline:    dto.Deadline,
			Notes:       dto.Notes,
		},
		order.Stage(dto.CurrentStage),
		order.Status(dto.Status),
		dto.AssignedWorker,
		dto.CreatedAt,
		dto.Version,
	)
}
