package domain

import "time"

// Statuses recorded in the assignment audit trail. Expiry is recorded as
// "timed_out" so operators can tell a silent restaurant from an explicit no.
const (
	HistoryAccepted     = "accepted"
	HistoryRejected     = "rejected"
	HistoryTimedOut     = "timed_out"
	HistoryCancelled    = "cancelled"
	HistoryExhausted    = "cancelled_no_restaurant"
	HistoryNoCandidates = "assignment_failed"
	// HistoryDispatchFailed records a store failure while dispatching, as
	// opposed to HistoryNoCandidates where nobody was ever tried.
	HistoryDispatchFailed = "dispatch_failed"
)

// HistoryEntry is one append-only audit record of an assignment-chain event.
// Entries are never updated or deleted and are not consulted for control flow.
type HistoryEntry struct {
	ID           int64
	OrderID      string
	RestaurantID string
	Attempt      int
	Status       string
	Notes        string
	RecordedAt   time.Time
}

// HistoryStatusFor maps a terminal assignment status to its audit-trail status.
func HistoryStatusFor(s AssignmentStatus) string {
	switch s {
	case AssignmentAccepted:
		return HistoryAccepted
	case AssignmentRejected:
		return HistoryRejected
	case AssignmentExpired:
		return HistoryTimedOut
	case AssignmentCancelled:
		return HistoryCancelled
	default:
		return string(s)
	}
}
