// Package evidencerepo provides data transfer objects and mapping functions
// for completion evidence persistence. Evidence rows are keyed by their
// (order, stage) pair, which makes re-uploads idempotent.
package evidencerepo

import (
	"time"

	"jewelflow/internal/core/domain/model/kernel"
	"jewelflow/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// EvidenceDTO represents the database structure for persisting completion
// evidence. The composite primary key (order_id, stage) enforces at most one
// evidence record per stage of an order.
type EvidenceDTO struct {
	OrderID    uuid.UUID `gorm:"type:uuid;primaryKey"`
	Stage      int       `gorm:"primaryKey"`
	Ref        string
	Actor      string
	QCOutcome  int
	RecordedAt time.Time
}

// TableName specifies the database table name for evidence records.
func (EvidenceDTO) TableName() string {
	return "evidences"
}

// fromDomain converts an evidence entity to its database representation.
func fromDomain(evidence *order.Evidence) EvidenceDTO {
	return EvidenceDTO{
		OrderID:    evidence.OrderID().Bytes(),
		Stage:      int(evidence.Stage()),
		Ref:        evidence.Ref(),
		Actor:      evidence.Actor(),
		QCOutcome:  int(evidence.QCOutcome()),
		RecordedAt: evidence.RecordedAt(),
	}
}

// toDomain converts a database DTO to an evidence entity.
func toDomain(dto EvidenceDTO) (*order.Evidence, error) {
	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}

	return order.RestoreEvidence(
		orderID,
		order.Stage(dto.Stage),
		dto.Ref,
		dto.Actor,
		order.QCOutcome(dto.QCOutcome),
		dto.RecordedAt,
	)
}
