package queries

import (
	"database/sql"
	"time"

	"jewelflow/internal/core/domain/model/kernel"
	"jewelflow/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// orderColumns is the column list every order read model selects, in the
// order scanOrderRow expects.
const orderColumns = `
	id,
	order_no,
	client_name,
	client_phone,
	client_email,
	product_name,
	material,
	purity,
	weight,
	quantity,
	deadline,
	notes,
	current_stage,
	status,
	assigned_worker,
	created_at,
	version
`

// scanOrderRow reconstructs an order aggregate from the current row of a
// raw query over orderColumns.
func scanOrderRow(rows *sql.Rows) (*order.Order, error) {
	var (
		id             uuid.UUID
		orderNo        string
		clientName     string
		clientPhone    string
		clientEmail    string
		productName    string
		material       int
		purity         int
		weight         decimal.Decimal
		quantity       int
		deadline       sql.NullTime
		notes          string
		currentStage   int
		status         int
		assignedWorker string
		createdAt      time.Time
		version        int64
	)

	if err := rows.Scan(
		&id,
		&orderNo,
		&clientName,
		&clientPhone,
		&clientEmail,
		&productName,
		&material,
		&purity,
		&weight,
		&quantity,
		&deadline,
		&notes,
		&currentStage,
		&status,
		&assignedWorker,
		&createdAt,
		&version,
	); err != nil {
		return nil, err
	}

	orderID, err := kernel.UUIDFromBytes(id[:])
	if err != nil {
		return nil, err
	}

	var deadlinePtr *time.Time
	if deadline.Valid {
		d := deadline.Time
		deadlinePtr = &d
	}

	return order.RestoreOrder(
		orderID,
		orderNo,
		order.Spec{
			ClientName:  clientName,
			ClientPhone: clientPhone,
			ClientEmail: clientEmail,
			ProductName: productName,
			Material:    order.Material(material),
			Purity:      order.Purity(purity),
			Weight:      weight,
			Quantity:    quantity,
			Deadline:    deadlinePtr,
			Notes:       notes,
		},
		order.Stage(currentStage),
		order.Status(status),
		assignedWorker,
		createdAt,
		version,
	)
}

// toOrderResponse flattens an aggregate into the listing read model.
func toOrderResponse(o *order.Order) OrderResponse {
	return OrderResponse{
		ID:             o.ID(),
		OrderNo:        o.OrderNo(),
		ClientName:     o.ClientName(),
		ClientPhone:    o.ClientPhone(),
		ClientEmail:    o.ClientEmail(),
		ProductName:    o.ProductName(),
		Material:       o.Material().String(),
		Purity:         o.Purity().String(),
		Weight:         o.Weight(),
		Quantity:       o.Quantity(),
		Deadline:       o.Deadline(),
		Notes:          o.Notes(),
		Stage:          o.Stage().String(),
		Status:         o.Status().String(),
		AssignedWorker: o.AssignedWorker(),
		CreatedAt:      o.CreatedAt(),
		Version:        o.Version(),
	}
}
