package handlers

import "time"

type acceptAssignmentRequest struct {
	RestaurantID string `json:"restaurant_id"`
}

type rejectAssignmentRequest struct {
	RestaurantID string `json:"restaurant_id"`
	ReasonCode   string `json:"reason_code"`
	Details      string `json:"details,omitempty"`
}

type resolutionDTO struct {
	Applied bool   `json:"applied"`
	Status  string `json:"status"`
}

type assignmentDTO struct {
	ID           string     `json:"id"`
	OrderID      string     `json:"order_id"`
	RestaurantID string     `json:"restaurant_id"`
	Status       string     `json:"status"`
	Attempt      int        `json:"attempt"`
	ExpiresAt    time.Time  `json:"expires_at"`
	CreatedAt    time.Time  `json:"created_at"`
	RespondedAt  *time.Time `json:"responded_at,omitempty"`
}

type orderDTO struct {
	ID             string    `json:"id"`
	CustomerID     string    `json:"customer_id"`
	TotalCents     int64     `json:"total_cents"`
	Status         string    `json:"status"`
	RejectionCount int       `json:"rejection_count"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

type historyEntryDTO struct {
	RestaurantID string    `json:"restaurant_id"`
	Attempt      int       `json:"attempt"`
	Status       string    `json:"status"`
	Notes        string    `json:"notes,omitempty"`
	RecordedAt   time.Time `json:"recorded_at"`
}
