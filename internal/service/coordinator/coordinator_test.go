package coordinator

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"service-assignment/internal/apperr"
	"service-assignment/internal/domain"
	testlog "service-assignment/internal/testutil"
)

type createCall struct {
	assignmentID string
	orderID      string
	restaurantID string
	attempt      int
	ch           chan domain.Resolution
}

// step scripts the outcome of one Create call: an auto-delivered resolution,
// a create error, or neither to leave the assignment pending.
type step struct {
	res *domain.Resolution
	err error
}

func outcome(s domain.AssignmentStatus) step {
	return step{res: &domain.Resolution{Applied: true, Status: s}}
}

type fakeMachine struct {
	mu      sync.Mutex
	creates []createCall
	script  []step
	pending map[string]createCall
}

func newFakeMachine(script ...step) *fakeMachine {
	return &fakeMachine{script: script, pending: make(map[string]createCall)}
}

func (f *fakeMachine) Create(_ context.Context, orderID, restaurantID string, attempt int) (domain.Assignment, <-chan domain.Resolution, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	idx := len(f.creates)
	var st step
	if idx < len(f.script) {
		st = f.script[idx]
	}
	if st.err != nil {
		f.creates = append(f.creates, createCall{orderID: orderID, restaurantID: restaurantID, attempt: attempt})
		return domain.Assignment{}, nil, st.err
	}

	cc := createCall{
		assignmentID: fmt.Sprintf("a-%d", idx+1),
		orderID:      orderID,
		restaurantID: restaurantID,
		attempt:      attempt,
		ch:           make(chan domain.Resolution, 1),
	}
	f.creates = append(f.creates, cc)

	if st.res != nil {
		cc.ch <- *st.res
		close(cc.ch)
	} else {
		f.pending[cc.assignmentID] = cc
	}

	a := domain.Assignment{
		ID:           cc.assignmentID,
		OrderID:      orderID,
		RestaurantID: restaurantID,
		Status:       domain.AssignmentPending,
		Attempt:      attempt,
	}
	return a, cc.ch, nil
}

func (f *fakeMachine) Resolve(_ context.Context, assignmentID, _ string, next domain.AssignmentStatus, _ string) (domain.Resolution, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	cc, ok := f.pending[assignmentID]
	if !ok {
		return domain.Resolution{}, apperr.ErrNotFound
	}
	delete(f.pending, assignmentID)
	res := domain.Resolution{Applied: true, Status: next}
	cc.ch <- res
	close(cc.ch)
	return res, nil
}

func (f *fakeMachine) Open(_ context.Context, orderID string) (*domain.Assignment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, cc := range f.pending {
		if cc.orderID == orderID {
			return &domain.Assignment{
				ID:           cc.assignmentID,
				OrderID:      cc.orderID,
				RestaurantID: cc.restaurantID,
				Status:       domain.AssignmentPending,
				Attempt:      cc.attempt,
			}, nil
		}
	}
	return nil, nil
}

func (f *fakeMachine) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.creates)
}

func (f *fakeMachine) call(i int) createCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.creates[i]
}

type projection struct {
	orderID string
	status  domain.OrderStatus
	attempt int
}

type fakeProjector struct {
	mu      sync.Mutex
	applied []projection
	err     error
}

func (f *fakeProjector) Apply(_ context.Context, orderID string, status domain.OrderStatus, attempt int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.applied = append(f.applied, projection{orderID, status, attempt})
	return f.err
}

func (f *fakeProjector) all() []projection {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]projection(nil), f.applied...)
}

type fakeHistory struct {
	mu      sync.Mutex
	entries []domain.HistoryEntry
}

func (f *fakeHistory) AppendHistory(_ context.Context, e domain.HistoryEntry) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.entries = append(f.entries, e)
	return nil
}

func (f *fakeHistory) all() []domain.HistoryEntry {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]domain.HistoryEntry(nil), f.entries...)
}

type fakeNotifier struct {
	mu        sync.Mutex
	created   []string
	changed   []string
	finalized []string
}

func (f *fakeNotifier) AssignmentCreated(_ context.Context, a domain.Assignment) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.created = append(f.created, a.RestaurantID)
}

func (f *fakeNotifier) OrderStatusChanged(_ context.Context, orderID string, status domain.OrderStatus) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.changed = append(f.changed, orderID+":"+string(status))
}

func (f *fakeNotifier) OrderFinalized(_ context.Context, orderID string, status domain.OrderStatus) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.finalized = append(f.finalized, orderID+":"+string(status))
}

func (f *fakeNotifier) allChanged() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.changed...)
}

func (f *fakeNotifier) allFinalized() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.finalized...)
}

func newTestCoordinator(m *fakeMachine, maxAttempts int) (*Coordinator, *fakeProjector, *fakeHistory, *fakeNotifier) {
	p := &fakeProjector{}
	h := &fakeHistory{}
	n := &fakeNotifier{}
	c := New(m, p, h, n, maxAttempts, testlog.New().Logger(), nil)
	return c, p, h, n
}

func TestCoordinator_EmptyQueueFinalizesAssignmentFailed(t *testing.T) {
	t.Parallel()

	m := newFakeMachine()
	c, p, h, n := newTestCoordinator(m, 3)

	require.NoError(t, c.Start(context.Background(), "o-1", nil))
	c.Shutdown()

	assert.Equal(t, 0, m.callCount())
	assert.Equal(t, []projection{{"o-1", domain.OrderAssignmentFailed, 0}}, p.all())

	entries := h.all()
	require.Len(t, entries, 1)
	assert.Equal(t, domain.HistoryNoCandidates, entries[0].Status)
	assert.Equal(t, "no restaurants available", entries[0].Notes)

	assert.Equal(t, []string{"o-1:assignment_failed"}, n.allFinalized())
	assert.Equal(t, 0, c.Active())
}

func TestCoordinator_FirstCandidateAccepts(t *testing.T) {
	t.Parallel()

	m := newFakeMachine(outcome(domain.AssignmentAccepted))
	c, p, h, n := newTestCoordinator(m, 3)

	require.NoError(t, c.Start(context.Background(), "o-1", []string{"r-1", "r-2"}))
	c.Shutdown()

	require.Equal(t, 1, m.callCount())
	assert.Equal(t, "r-1", m.call(0).restaurantID)
	assert.Equal(t, 1, m.call(0).attempt)

	assert.Equal(t, []projection{
		{"o-1", domain.OrderAwaitingRestaurant, 1},
		{"o-1", domain.OrderRestaurantAccepted, 1},
	}, p.all())

	// resolution entries are appended by the state machine; acceptance
	// adds no finalization entry
	assert.Empty(t, h.all())
	assert.Equal(t, []string{"o-1:restaurant_accepted"}, n.allFinalized())
}

func TestCoordinator_PushesEveryStatusChange(t *testing.T) {
	t.Parallel()

	m := newFakeMachine(
		outcome(domain.AssignmentRejected),
		outcome(domain.AssignmentAccepted),
	)
	c, _, _, n := newTestCoordinator(m, 3)

	require.NoError(t, c.Start(context.Background(), "o-1", []string{"r-1", "r-2"}))
	c.Shutdown()

	// the customer channel sees each dispatch and the final acceptance,
	// not just the chain's end
	assert.Equal(t, []string{
		"o-1:awaiting_restaurant",
		"o-1:awaiting_restaurant",
		"o-1:restaurant_accepted",
	}, n.allChanged())
}

func TestCoordinator_OutOfProcessAcceptStillFinalizes(t *testing.T) {
	t.Parallel()

	// applied=false: another replica's CAS won, the waiter only observes it
	m := newFakeMachine(step{res: &domain.Resolution{Applied: false, Status: domain.AssignmentAccepted}})
	c, p, _, n := newTestCoordinator(m, 3)

	require.NoError(t, c.Start(context.Background(), "o-1", []string{"r-1", "r-2"}))
	c.Shutdown()

	assert.Equal(t, 1, m.callCount())
	all := p.all()
	require.NotEmpty(t, all)
	assert.Equal(t, projection{"o-1", domain.OrderRestaurantAccepted, 1}, all[len(all)-1])
	assert.Equal(t, []string{"o-1:restaurant_accepted"}, n.allFinalized())
	assert.Equal(t, 0, c.Active())
}

func TestCoordinator_RejectExpireThenAccept(t *testing.T) {
	t.Parallel()

	m := newFakeMachine(
		outcome(domain.AssignmentRejected),
		outcome(domain.AssignmentExpired),
		outcome(domain.AssignmentAccepted),
	)
	c, p, h, _ := newTestCoordinator(m, 3)

	require.NoError(t, c.Start(context.Background(), "o-1", []string{"r-1", "r-2", "r-3"}))
	c.Shutdown()

	require.Equal(t, 3, m.callCount())
	for i, want := range []string{"r-1", "r-2", "r-3"} {
		assert.Equal(t, want, m.call(i).restaurantID)
		assert.Equal(t, i+1, m.call(i).attempt)
	}

	assert.Equal(t, []projection{
		{"o-1", domain.OrderAwaitingRestaurant, 1},
		{"o-1", domain.OrderAwaitingRestaurant, 2},
		{"o-1", domain.OrderAwaitingRestaurant, 3},
		{"o-1", domain.OrderRestaurantAccepted, 3},
	}, p.all())
	assert.Empty(t, h.all())
}

func TestCoordinator_BudgetExhaustedFinalizesCancelledNoRestaurant(t *testing.T) {
	t.Parallel()

	m := newFakeMachine(
		outcome(domain.AssignmentRejected),
		outcome(domain.AssignmentRejected),
		outcome(domain.AssignmentRejected),
		outcome(domain.AssignmentRejected),
	)
	c, p, h, n := newTestCoordinator(m, 3)

	require.NoError(t, c.Start(context.Background(), "o-1", []string{"r-1", "r-2", "r-3", "r-4"}))
	c.Shutdown()

	// the fourth candidate is never tried
	assert.Equal(t, 3, m.callCount())

	all := p.all()
	require.NotEmpty(t, all)
	assert.Equal(t, projection{"o-1", domain.OrderCancelledNoRestaurant, 3}, all[len(all)-1])

	entries := h.all()
	require.Len(t, entries, 1)
	assert.Equal(t, domain.HistoryExhausted, entries[0].Status)
	assert.Equal(t, 3, entries[0].Attempt)

	assert.Equal(t, []string{"o-1:cancelled_no_restaurant"}, n.allFinalized())
}

func TestCoordinator_QueueShorterThanBudget(t *testing.T) {
	t.Parallel()

	m := newFakeMachine(
		outcome(domain.AssignmentExpired),
		outcome(domain.AssignmentExpired),
	)
	c, _, h, _ := newTestCoordinator(m, 3)

	require.NoError(t, c.Start(context.Background(), "o-1", []string{"r-1", "r-2"}))
	c.Shutdown()

	assert.Equal(t, 2, m.callCount())

	entries := h.all()
	require.Len(t, entries, 1)
	assert.Equal(t, domain.HistoryExhausted, entries[0].Status)
	assert.Equal(t, 2, entries[0].Attempt)
}

func TestCoordinator_CandidatesSanitized(t *testing.T) {
	t.Parallel()

	m := newFakeMachine(
		outcome(domain.AssignmentRejected),
		outcome(domain.AssignmentAccepted),
	)
	c, _, _, _ := newTestCoordinator(m, 3)

	require.NoError(t, c.Start(context.Background(), "o-1", []string{" r-1 ", "", "r-1", "r-2"}))
	c.Shutdown()

	require.Equal(t, 2, m.callCount())
	assert.Equal(t, "r-1", m.call(0).restaurantID)
	assert.Equal(t, "r-2", m.call(1).restaurantID)
}

func TestCoordinator_DuplicateStartConflicts(t *testing.T) {
	t.Parallel()

	// no scripted outcome: the first chain parks on a pending assignment
	m := newFakeMachine(step{})
	c, _, _, _ := newTestCoordinator(m, 3)

	require.NoError(t, c.Start(context.Background(), "o-1", []string{"r-1"}))
	require.Eventually(t, func() bool { return m.callCount() == 1 }, time.Second, 5*time.Millisecond)

	err := c.Start(context.Background(), "o-1", []string{"r-1"})
	require.ErrorIs(t, err, apperr.ErrConflict)

	_, err = m.Resolve(context.Background(), "a-1", "", domain.AssignmentExpired, "")
	require.NoError(t, err)
	c.Shutdown()
}

func TestCoordinator_StartInvalidOrderID(t *testing.T) {
	t.Parallel()

	c, _, _, _ := newTestCoordinator(newFakeMachine(), 3)
	require.ErrorIs(t, c.Start(context.Background(), "   ", []string{"r-1"}), apperr.ErrInvalid)
}

func TestCoordinator_CancelResolvesOpenAssignment(t *testing.T) {
	t.Parallel()

	m := newFakeMachine(step{})
	c, p, h, n := newTestCoordinator(m, 3)

	require.NoError(t, c.Start(context.Background(), "o-1", []string{"r-1", "r-2"}))
	require.Eventually(t, func() bool { return m.callCount() == 1 }, time.Second, 5*time.Millisecond)

	require.NoError(t, c.Cancel(context.Background(), "o-1"))
	c.Shutdown()

	// no further candidate is tried after the cancellation
	assert.Equal(t, 1, m.callCount())

	all := p.all()
	require.NotEmpty(t, all)
	assert.Equal(t, projection{"o-1", domain.OrderCancelled, 1}, all[len(all)-1])

	entries := h.all()
	require.Len(t, entries, 1)
	assert.Equal(t, domain.HistoryCancelled, entries[0].Status)
	assert.Equal(t, "cancelled by customer", entries[0].Notes)

	assert.Equal(t, []string{"o-1:cancelled"}, n.allFinalized())
}

func TestCoordinator_CancelUnknownOrder(t *testing.T) {
	t.Parallel()

	c, _, _, _ := newTestCoordinator(newFakeMachine(), 3)
	err := c.Cancel(context.Background(), "o-missing")
	require.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestCoordinator_CreateConflictAbortsChain(t *testing.T) {
	t.Parallel()

	m := newFakeMachine(step{err: apperr.ErrConflict})
	c, p, h, n := newTestCoordinator(m, 3)

	require.NoError(t, c.Start(context.Background(), "o-1", []string{"r-1"}))
	c.Shutdown()

	assert.Empty(t, p.all())
	assert.Empty(t, h.all())
	assert.Empty(t, n.allFinalized())
}

func TestCoordinator_CreateErrorFinalizesAssignmentFailed(t *testing.T) {
	t.Parallel()

	m := newFakeMachine(step{err: errors.New("db down")})
	c, p, h, n := newTestCoordinator(m, 3)

	require.NoError(t, c.Start(context.Background(), "o-1", []string{"r-1"}))
	c.Shutdown()

	assert.Equal(t, []projection{{"o-1", domain.OrderAssignmentFailed, 1}}, p.all())
	assert.Equal(t, []string{"o-1:assignment_failed"}, n.allFinalized())

	// a store failure mid-dispatch is not the same audit event as an
	// empty candidate queue
	entries := h.all()
	require.Len(t, entries, 1)
	assert.Equal(t, domain.HistoryDispatchFailed, entries[0].Status)
	assert.Equal(t, "assignment dispatch failed", entries[0].Notes)
}

func TestCoordinator_ShutdownLeavesPendingAssignment(t *testing.T) {
	t.Parallel()

	m := newFakeMachine(step{})
	c, _, h, n := newTestCoordinator(m, 3)

	ctx, cancel := context.WithCancel(context.Background())
	require.NoError(t, c.Start(ctx, "o-1", []string{"r-1"}))
	require.Eventually(t, func() bool { return m.callCount() == 1 }, time.Second, 5*time.Millisecond)

	cancel()
	c.Shutdown()

	// the chain returns without finalizing; recovery happens on restart
	assert.Empty(t, h.all())
	assert.Empty(t, n.allFinalized())
	assert.Equal(t, 0, c.Active())
}
