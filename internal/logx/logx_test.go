package logx_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"service-assignment/internal/logx"
)

func TestSlogAdapter_WritesJSONFields(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	base := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	logger := logx.NewSlogAdapter(base)

	logger.Info("assignment created",
		logx.String("order_id", "o1"),
		logx.Int("attempt", 2),
		logx.Duration("window", 5*time.Minute),
	)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	require.Equal(t, "assignment created", entry["msg"])
	require.Equal(t, "o1", entry["order_id"])
	require.EqualValues(t, 2, entry["attempt"])
}

func TestSlogAdapter_WithAttachesFields(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	base := slog.New(slog.NewJSONHandler(&buf, nil))
	logger := logx.NewSlogAdapter(base).With(logx.String("component", "coordinator"))

	logger.Warn("retrying")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	require.Equal(t, "coordinator", entry["component"])
	require.NoError(t, logger.Sync())
}

func TestErrField(t *testing.T) {
	t.Parallel()

	f := logx.Err(errors.New("boom"))
	require.Equal(t, "err", f.Key)
	require.Equal(t, "boom", f.Value)

	require.Nil(t, logx.Err(nil).Value)
}

func TestNopLogger_DoesNothing(t *testing.T) {
	t.Parallel()

	logger := logx.Nop()
	logger.Debug("d")
	logger.Info("i")
	logger.Warn("w")
	logger.Error("e")
	require.NoError(t, logger.With(logx.Int("n", 1)).Sync())
}
