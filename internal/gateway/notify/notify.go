package notify

import (
	"context"
	"encoding/json"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"service-assignment/internal/domain"
	"service-assignment/internal/logx"
)

type publisher interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
}

// Gateway publishes assignment-chain notifications to the topic exchange.
// Delivery is fire-and-forget: the assignment chain never stalls on the
// broker, a failed publish is logged and dropped.
type Gateway struct {
	pub      publisher
	exchange string
	logger   logx.Logger
}

// NewGateway - creates a new notification Gateway.
func NewGateway(pub publisher, exchange string, logger logx.Logger) *Gateway {
	return &Gateway{pub: pub, exchange: exchange, logger: logger}
}

type assignmentMessage struct {
	AssignmentID string    `json:"assignment_id"`
	OrderID      string    `json:"order_id"`
	RestaurantID string    `json:"restaurant_id"`
	Attempt      int       `json:"attempt"`
	ExpiresAt    time.Time `json:"expires_at"`
}

type orderMessage struct {
	OrderID string `json:"order_id"`
	Status  string `json:"status"`
}

// AssignmentCreated notifies the restaurant channel about a new pending
// assignment awaiting its response.
func (g *Gateway) AssignmentCreated(ctx context.Context, a domain.Assignment) {
	g.publish(ctx, "assignment.created", assignmentMessage{
		AssignmentID: a.ID,
		OrderID:      a.OrderID,
		RestaurantID: a.RestaurantID,
		Attempt:      a.Attempt,
		ExpiresAt:    a.ExpiresAt,
	})
}

// OrderStatusChanged notifies the customer channel about a visible order
// status transition.
func (g *Gateway) OrderStatusChanged(ctx context.Context, orderID string, status domain.OrderStatus) {
	g.publish(ctx, "order.status_changed", orderMessage{
		OrderID: orderID,
		Status:  string(status),
	})
}

// OrderFinalized notifies subscribers that an order's assignment chain ended.
func (g *Gateway) OrderFinalized(ctx context.Context, orderID string, status domain.OrderStatus) {
	g.publish(ctx, "order.finalized", orderMessage{
		OrderID: orderID,
		Status:  string(status),
	})
}

func (g *Gateway) publish(ctx context.Context, key string, payload any) {
	body, err := json.Marshal(payload)
	if err != nil {
		g.logger.Error("notify marshal failed", logx.String("key", key), logx.Err(err))
		return
	}
	err = g.pub.PublishWithContext(ctx, g.exchange, key, false, false, amqp.Publishing{
		DeliveryMode: amqp.Persistent,
		ContentType:  "application/json",
		Timestamp:    time.Now().UTC(),
		Body:         body,
	})
	if err != nil {
		g.logger.Error("notify publish failed", logx.String("key", key), logx.Err(err))
	}
}
