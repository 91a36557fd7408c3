//go:build integration

package app

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"

	"service-assignment/internal/logx"
)

func withStubNewPool(t *testing.T, stub func(context.Context, string) (*pgxpool.Pool, error)) {
	t.Helper()
	orig := newPool
	newPool = stub
	t.Cleanup(func() { newPool = orig })
}

func TestConnectDbWithRetry_SuccessFirstAttempt(t *testing.T) {
	ctx := context.Background()
	dsn := "postgres://stub"

	wantPool := &pgxpool.Pool{}
	calls := 0

	withStubNewPool(t, func(_ context.Context, _ string) (*pgxpool.Pool, error) {
		calls++
		return wantPool, nil
	})

	pool, err := connectDbWithRetry(ctx, logx.Nop(), dsn, 3, 10*time.Millisecond)
	require.NoError(t, err)
	require.Equal(t, wantPool, pool)
	require.Equal(t, 1, calls)
}

func TestConnectDbWithRetry_RecoversAfterFailures(t *testing.T) {
	ctx := context.Background()

	wantPool := &pgxpool.Pool{}
	calls := 0

	withStubNewPool(t, func(_ context.Context, _ string) (*pgxpool.Pool, error) {
		calls++
		if calls < 3 {
			return nil, errors.New("refused")
		}
		return wantPool, nil
	})

	pool, err := connectDbWithRetry(ctx, logx.Nop(), "postgres://stub", 5, time.Millisecond)
	require.NoError(t, err)
	require.Equal(t, wantPool, pool)
	require.Equal(t, 3, calls)
}

func TestConnectDbWithRetry_GivesUp(t *testing.T) {
	ctx := context.Background()
	sentinel := errors.New("refused")

	withStubNewPool(t, func(context.Context, string) (*pgxpool.Pool, error) {
		return nil, sentinel
	})

	_, err := connectDbWithRetry(ctx, logx.Nop(), "postgres://stub", 2, time.Millisecond)
	require.ErrorIs(t, err, sentinel)
}

func TestConnectDbWithRetry_StopsOnContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	withStubNewPool(t, func(context.Context, string) (*pgxpool.Pool, error) {
		return nil, errors.New("refused")
	})

	_, err := connectDbWithRetry(ctx, logx.Nop(), "postgres://stub", 3, 50*time.Millisecond)
	require.ErrorIs(t, err, context.Canceled)
}
