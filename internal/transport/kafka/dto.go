package kafka

import (
	"strings"
	"time"

	"service-assignment/internal/service/orders"
)

// EventDTO is a data transfer object for orders.Event
type EventDTO struct {
	OrderID     string    `json:"order_id"`
	Status      string    `json:"status"`
	Restaurants []string  `json:"restaurants"`
	CreatedAt   time.Time `json:"created_at"`
}

// ToDomain converts EventDTO to orders.Event
func ToDomain(dto EventDTO) orders.Event {
	var restaurants []string
	for _, r := range dto.Restaurants {
		r = strings.TrimSpace(r)
		if r == "" {
			continue
		}
		restaurants = append(restaurants, r)
	}
	return orders.Event{
		OrderID:     strings.TrimSpace(dto.OrderID),
		Status:      strings.TrimSpace(dto.Status),
		Restaurants: restaurants,
		CreatedAt:   dto.CreatedAt,
	}
}
