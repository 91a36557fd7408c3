package domain

import (
	"fmt"
	"time"
)

// AssignmentStatus is the status of a single assignment attempt.
type AssignmentStatus string

// List of possible assignment statuses
const (
	AssignmentPending   AssignmentStatus = "pending"
	AssignmentAccepted  AssignmentStatus = "accepted"
	AssignmentRejected  AssignmentStatus = "rejected"
	AssignmentExpired   AssignmentStatus = "expired"
	AssignmentCancelled AssignmentStatus = "cancelled"
)

var allowedAssignmentStatuses = [...]AssignmentStatus{
	AssignmentPending, AssignmentAccepted, AssignmentRejected, AssignmentExpired, AssignmentCancelled,
}

// Valid checks if the AssignmentStatus is valid
func (s AssignmentStatus) Valid() bool {
	for _, v := range allowedAssignmentStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// Terminal reports whether s is a terminal assignment status.
// Assignments are never mutated after reaching a terminal status.
func (s AssignmentStatus) Terminal() bool {
	return s.Valid() && s != AssignmentPending
}

// Assignment - one attempt to have a specific restaurant fulfill an order.
type Assignment struct {
	ID           string
	OrderID      string
	RestaurantID string
	Status       AssignmentStatus
	Attempt      int
	ExpiresAt    time.Time
	CreatedAt    time.Time
	RespondedAt  *time.Time
}

// Open reports whether the assignment still awaits a terminal resolution.
func (a Assignment) Open() bool { return a.Status == AssignmentPending }

// Resolution is the result of an atomic resolve attempt against an assignment.
// Applied=false means the competing path (restaurant response vs timer expiry)
// already resolved it; callers treat that as success-of-idempotence.
type Resolution struct {
	Applied bool
	Status  AssignmentStatus
}

// List of rejection reason codes a restaurant may supply.
const (
	ReasonTooBusy     = "too_busy"
	ReasonOutOfStock  = "out_of_stock"
	ReasonClosingSoon = "closing_soon"
	ReasonTooFar      = "delivery_too_far"
	ReasonOther       = "other"
)

var allowedRejectionReasons = [...]string{
	ReasonTooBusy, ReasonOutOfStock, ReasonClosingSoon, ReasonTooFar, ReasonOther,
}

// RejectionReason carries the code and optional free-text detail a restaurant
// supplies when rejecting an assignment. Persisted to history for analytics.
type RejectionReason struct {
	Code    string
	Details string
}

// Valid checks if the rejection reason code is one of the allowed codes
func (r RejectionReason) Valid() bool {
	for _, v := range allowedRejectionReasons {
		if r.Code == v {
			return true
		}
	}
	return false
}

// Note renders the reason as a single history note string.
func (r RejectionReason) Note() string {
	if r.Details == "" {
		return r.Code
	}
	return fmt.Sprintf("%s: %s", r.Code, r.Details)
}
