package orders_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/require"

	"service-assignment/internal/apperr"
	"service-assignment/internal/service/orders"
)

func TestProcessor_Handle_Created_StartsChain(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	coord := NewMockCoordinatorPort(ctrl)
	chainCtx := context.Background()
	p := orders.NewProcessor(coord, chainCtx)

	coord.EXPECT().
		Start(chainCtx, "order-1", []string{"r-1", "r-2"}).
		Return(nil)

	err := p.Handle(context.Background(), orders.Event{
		OrderID:     "order-1",
		Status:      "  CREATED  ",
		Restaurants: []string{"r-1", "r-2"},
		CreatedAt:   time.Now(),
	})
	require.NoError(t, err)
}

func TestProcessor_Handle_Paid_StartsChain(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	coord := NewMockCoordinatorPort(ctrl)
	p := orders.NewProcessor(coord, context.Background())

	coord.EXPECT().
		Start(gomock.Any(), "order-1", gomock.Any()).
		Return(nil)

	err := p.Handle(context.Background(), orders.Event{OrderID: "order-1", Status: "paid"})
	require.NoError(t, err)
}

func TestProcessor_Handle_Created_ConflictIsIgnored(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	coord := NewMockCoordinatorPort(ctrl)
	p := orders.NewProcessor(coord, context.Background())

	coord.EXPECT().
		Start(gomock.Any(), "order-1", gomock.Any()).
		Return(apperr.ErrConflict)

	err := p.Handle(context.Background(), orders.Event{OrderID: "order-1", Status: "created"})
	require.NoError(t, err)
}

func TestProcessor_Handle_Created_OtherErrorReturned(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	coord := NewMockCoordinatorPort(ctrl)
	p := orders.NewProcessor(coord, context.Background())

	wantErr := errors.New("boom")
	coord.EXPECT().
		Start(gomock.Any(), "order-1", gomock.Any()).
		Return(wantErr)

	err := p.Handle(context.Background(), orders.Event{OrderID: "order-1", Status: "created"})
	require.ErrorIs(t, err, wantErr)
}

func TestProcessor_Handle_Cancelled_HaltsChain(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	coord := NewMockCoordinatorPort(ctrl)
	p := orders.NewProcessor(coord, context.Background())

	coord.EXPECT().
		Cancel(gomock.Any(), "order-2").
		Return(nil)

	err := p.Handle(context.Background(), orders.Event{OrderID: "order-2", Status: "cancelled"})
	require.NoError(t, err)
}

func TestProcessor_Handle_Cancelled_NotFoundIsIgnored(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	coord := NewMockCoordinatorPort(ctrl)
	p := orders.NewProcessor(coord, context.Background())

	coord.EXPECT().
		Cancel(gomock.Any(), "order-2").
		Return(apperr.ErrNotFound)

	err := p.Handle(context.Background(), orders.Event{OrderID: "order-2", Status: "canceled"})
	require.NoError(t, err)
}

func TestProcessor_Handle_UnknownStatus_NoOps(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	coord := NewMockCoordinatorPort(ctrl)
	p := orders.NewProcessor(coord, context.Background())

	err := p.Handle(context.Background(), orders.Event{OrderID: "order-x", Status: "some-new-status"})
	require.NoError(t, err)
}
