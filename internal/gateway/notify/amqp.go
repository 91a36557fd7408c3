package notify

import (
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Client owns the AMQP connection and channel used for outbound
// notifications.
type Client struct {
	conn *amqp.Connection
	ch   *amqp.Channel
}

// Dial connects to the broker and declares the notification topic exchange.
func Dial(url, exchange string) (*Client, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("amqp dial: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("amqp channel: %w", err)
	}
	if err := ch.ExchangeDeclare(exchange, "topic", true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("declare exchange %q: %w", exchange, err)
	}
	return &Client{conn: conn, ch: ch}, nil
}

// Channel returns the publishing channel.
func (c *Client) Channel() *amqp.Channel { return c.ch }

// Close closes the channel and the connection.
func (c *Client) Close() {
	if c == nil {
		return
	}
	if c.ch != nil {
		_ = c.ch.Close()
	}
	if c.conn != nil {
		_ = c.conn.Close()
	}
}
