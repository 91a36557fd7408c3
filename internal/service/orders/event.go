package orders

import (
	"time"
)

// Event is a single order event. Restaurants carries the ordered candidate
// queue produced upstream; nearest-first, already ranked.
type Event struct {
	OrderID     string    `json:"order_id"`
	Status      string    `json:"status"`
	Restaurants []string  `json:"restaurants"`
	CreatedAt   time.Time `json:"created_at"`
}
