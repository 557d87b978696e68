// Package notifier provides the Redis-backed notification channel adapter.
// Stage advancement events are published to a Redis channel that dashboard
// and chat integrations subscribe to.
package notifier

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"jewelflow/internal/core/domain/model/order"
	"jewelflow/internal/core/ports"

	"github.com/redis/go-redis/v9"
)

var (
	_ ports.EventPublisher     = (*RedisEventPublisher)(nil)
	_ ports.TaskAlertPublisher = (*RedisEventPublisher)(nil)
)

// Config holds the Redis connection settings.
type Config struct {
	Host         string
	Port         int
	Password     string
	DB           int
	Channel      string
	AlertChannel string
}

// stageAdvancedMessage is the wire representation of a stage advancement
// notification.
type stageAdvancedMessage struct {
	OrderID    string    `json:"order_id"`
	OrderNo    string    `json:"order_no"`
	FromStage  string    `json:"from_stage"`
	ToStage    string    `json:"to_stage"`
	Actor      string    `json:"actor"`
	QCOutcome  string    `json:"qc_outcome,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

// RedisEventPublisher publishes domain events and due-task alerts to Redis
// channels. Publication is fire-and-forget from the subscriber's point of
// view: messages sent while no subscriber listens are dropped by Redis.
type RedisEventPublisher struct {
	client       *redis.Client
	channel      string
	alertChannel string
}

// NewRedisEventPublisher creates a publisher and verifies the connection.
func NewRedisEventPublisher(cfg Config) (*RedisEventPublisher, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return NewRedisEventPublisherWithClient(client, cfg.Channel, cfg.AlertChannel), nil
}

// NewRedisEventPublisherWithClient creates a publisher with an existing Redis
// client. Useful for testing or when sharing a client across components.
func NewRedisEventPublisherWithClient(client *redis.Client, channel, alertChannel string) *RedisEventPublisher {
	if channel == "" {
		channel = "jewelflow:stage-advanced"
	}
	if alertChannel == "" {
		alertChannel = "jewelflow:due-tasks"
	}
	return &RedisEventPublisher{
		client:       client,
		channel:      channel,
		alertChannel: alertChannel,
	}
}

// PublishStageAdvanced delivers a stage advancement notification to the
// configured channel.
func (p *RedisEventPublisher) PublishStageAdvanced(ctx context.Context, event order.StageAdvancedEvent) error {
	message := stageAdvancedMessage{
		OrderID:    event.OrderID.String(),
		OrderNo:    event.OrderNo,
		FromStage:  event.FromStage.String(),
		ToStage:    event.ToStage.String(),
		Actor:      event.Actor,
		OccurredAt: event.OccurredAt,
	}
	if event.QCOutcome != order.QCOutcomeNone {
		message.QCOutcome = event.QCOutcome.String()
	}

	payload, err := json.Marshal(message)
	if err != nil {
		return fmt.Errorf("failed to encode stage advancement event: %w", err)
	}

	if err := p.client.Publish(ctx, p.channel, payload).Err(); err != nil {
		return fmt.Errorf("failed to publish stage advancement event: %w", err)
	}
	return nil
}

// dueTaskMessage is the wire representation of a due-task alert.
type dueTaskMessage struct {
	OrderID     string     `json:"order_id"`
	OrderNo     string     `json:"order_no"`
	ProductName string     `json:"product_name"`
	Stage       string     `json:"stage"`
	Worker      string     `json:"worker,omitempty"`
	Priority    string     `json:"priority"`
	DueDate     *time.Time `json:"due_date,omitempty"`
}

// PublishDueTask delivers a due-task alert to the alert channel.
func (p *RedisEventPublisher) PublishDueTask(ctx context.Context, alert ports.DueTaskAlert) error {
	message := dueTaskMessage{
		OrderID:     alert.OrderID.String(),
		OrderNo:     alert.OrderNo,
		ProductName: alert.ProductName,
		Stage:       alert.Stage,
		Worker:      alert.Worker,
		Priority:    alert.Priority,
		DueDate:     alert.DueDate,
	}

	payload, err := json.Marshal(message)
	if err != nil {
		return fmt.Errorf("failed to encode due-task alert: %w", err)
	}

	if err := p.client.Publish(ctx, p.alertChannel, payload).Err(); err != nil {
		return fmt.Errorf("failed to publish due-task alert: %w", err)
	}
	return nil
}
