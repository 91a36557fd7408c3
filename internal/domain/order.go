package domain

import "time"

// OrderStatus is the externally visible status of an order.
type OrderStatus string

// List of possible order statuses
const (
	OrderPending               OrderStatus = "pending"
	OrderAwaitingRestaurant    OrderStatus = "awaiting_restaurant"
	OrderRestaurantAccepted    OrderStatus = "restaurant_accepted"
	OrderPreparing             OrderStatus = "preparing"
	OrderReadyForPickup        OrderStatus = "ready_for_pickup"
	OrderDelivered             OrderStatus = "delivered"
	OrderCancelled             OrderStatus = "cancelled"
	OrderAssignmentFailed      OrderStatus = "assignment_failed"
	OrderCancelledNoRestaurant OrderStatus = "cancelled_no_restaurant"
)

// orderStatusRank orders statuses along the order lifecycle. The projector
// never overwrites a status with one of a lower rank.
var orderStatusRank = map[OrderStatus]int{
	OrderPending:               0,
	OrderAwaitingRestaurant:    1,
	OrderRestaurantAccepted:    2,
	OrderPreparing:             3,
	OrderReadyForPickup:        4,
	OrderDelivered:             5,
	OrderCancelled:             5,
	OrderAssignmentFailed:      5,
	OrderCancelledNoRestaurant: 5,
}

// Valid checks if the OrderStatus is valid
func (s OrderStatus) Valid() bool {
	_, ok := orderStatusRank[s]
	return ok
}

// Terminal reports whether no further transition is defined out of s.
func (s OrderStatus) Terminal() bool {
	switch s {
	case OrderDelivered, OrderCancelled, OrderAssignmentFailed, OrderCancelledNoRestaurant:
		return true
	default:
		return false
	}
}

// Rank returns the lifecycle rank of s, -1 for unknown statuses.
func (s OrderStatus) Rank() int {
	r, ok := orderStatusRank[s]
	if !ok {
		return -1
	}
	return r
}

// Order - struct representing a customer order as seen by the assignment engine.
type Order struct {
	ID             string
	CustomerID     string
	TotalCents     int64
	Status         OrderStatus
	RejectionCount int
	StatusAttempt  int
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
