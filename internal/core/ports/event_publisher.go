package ports

import (
	"context"

	"jewelflow/internal/core/domain/model/order"
)

// EventPublisher defines the contract for the notification channel carrying
// domain events to interested observers.
//
// Publication is best effort and happens after the originating transaction
// commits: a delivery failure is logged by the caller but never rolls back or
// fails the committed operation.
type EventPublisher interface {
	// PublishStageAdvanced delivers a stage advancement notification.
	PublishStageAdvanced(ctx context.Context, event order.StageAdvancedEvent) error
}
