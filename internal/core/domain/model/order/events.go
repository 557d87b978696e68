package order

import (
	"time"

	"jewelflow/internal/core/domain/model/kernel"
)

// StageAdvancedEvent is emitted after an order's stage advancement commits.
// Consumers (the notification channel) receive it best-effort; delivery
// failures never affect the committed advancement.
type StageAdvancedEvent struct {
	OrderID    kernel.UUID
	OrderNo    string
	FromStage  Stage
	ToStage    Stage
	Actor      string
	QCOutcome  QCOutcome
	OccurredAt time.Time
}

// NewStageAdvancedEvent builds the event for an advancement from fromStage to
// the order's current stage, attributed to actor.
func NewStageAdvancedEvent(o *Order, fromStage Stage, actor string, qcOutcome QCOutcome) StageAdvancedEvent {
	return StageAdvancedEvent{
		OrderID:    o.ID(),
		OrderNo:    o.OrderNo(),
		FromStage:  fromStage,
		ToStage:    o.Stage(),
		Actor:      actor,
		QCOutcome:  qcOutcome,
		OccurredAt: time.Now().UTC(),
	}
}
