package telemetry

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/Borislavv/go-ash-adaptive/config"
	"github.com/Borislavv/go-ash-adaptive/internal/controller"
	"github.com/Borislavv/go-ash-adaptive/model"
	"github.com/benbjohnson/clock"
	"github.com/stretchr/testify/require"
)

type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

type fakeSource struct {
	admits atomic.Int64
}

func (f *fakeSource) Metrics() controller.Metrics {
	return controller.Metrics{Admits: f.admits.Load()}
}

func (f *fakeSource) Snapshot() model.Snapshot {
	return model.Snapshot{Policy: model.PolicyS3FIFO, HitRate: 42}
}

// TestLogs_ReportsDeltasPerInterval logs per-interval deltas on every tick.
func TestLogs_ReportsDeltasPerInterval(t *testing.T) {
	out := &syncBuffer{}
	logger := slog.New(slog.NewTextHandler(out, nil))
	src := &fakeSource{}
	src.admits.Store(100)
	mock := clock.NewMock()

	l := New(context.Background(), &config.TelemetryCfg{Interval: time.Second}, logger, src, mock)
	require.Equal(t, time.Second, l.Interval())

	require.Contains(t, out.String(), "telemetry is running")

	src.admits.Store(130)
	mock.Add(time.Second)

	require.Eventually(t, func() bool {
		s := out.String()
		return strings.Contains(s, "msg=events") && strings.Contains(s, "admits=30")
	}, time.Second, time.Millisecond)
	require.Contains(t, out.String(), "policy=s3fifo")
	require.Contains(t, out.String(), "hit_rate=42")
	require.NotContains(t, out.String(), "msg=drops")

	require.NoError(t, l.Close())
	require.Contains(t, out.String(), "telemetry is stopped")
}

// TestNew_DisabledIsNoop starts nothing without a config section.
func TestNew_DisabledIsNoop(t *testing.T) {
	l := New(context.Background(), nil, slog.Default(), &fakeSource{}, clock.NewMock())
	require.IsType(t, NoOpLogger{}, l)
	require.NoError(t, l.Close())
}

// TestDeltaSnapshot_CounterReset treats a decreasing counter as restarted.
func TestDeltaSnapshot_CounterReset(t *testing.T) {
	d := deltaSnapshot(snapshot{admits: 10, checks: 5}, snapshot{admits: 4, checks: 9})
	require.Equal(t, uint64(4), d.admits)
	require.Equal(t, uint64(4), d.checks)
}
