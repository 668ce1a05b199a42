package telemetry

import (
	"context"
	"log/slog"
	"time"

	"github.com/Borislavv/go-ash-adaptive/config"
	"github.com/Borislavv/go-ash-adaptive/internal/controller"
	"github.com/Borislavv/go-ash-adaptive/model"
	"github.com/benbjohnson/clock"
)

type Logger interface {
	Interval() time.Duration
	Close() error
}

// Source is what the telemetry loop reports on.
type Source interface {
	Metrics() controller.Metrics
	Snapshot() model.Snapshot
}

type Logs struct {
	ctx      context.Context
	cancel   context.CancelFunc
	logger   *slog.Logger
	source   Source
	interval time.Duration
	ticker   *clock.Ticker
	done     chan struct{}
}

// New starts the periodic stats logger. It returns a no-op logger when cfg is disabled.
func New(
	ctx context.Context,
	cfg *config.TelemetryCfg,
	logger *slog.Logger,
	source Source,
	clk clock.Clock,
) Logger {
	if !cfg.Enabled() {
		return NoOpLogger{}
	}

	ctx, cancel := context.WithCancel(ctx)
	return (&Logs{
		ctx:      ctx,
		cancel:   cancel,
		logger:   logger,
		source:   source,
		interval: cfg.Interval,
		ticker:   clk.Ticker(cfg.Interval),
		done:     make(chan struct{}),
	}).run()
}

func (l *Logs) Interval() time.Duration {
	return l.interval
}

// Close stops the loop and waits for it to exit.
func (l *Logs) Close() error {
	l.cancel()
	<-l.done
	return nil
}

func (l *Logs) run() *Logs {
	s := newSampler(l.source)
	go l.loop(s, s.snapshot())
	l.logger.Info("telemetry is running", "interval", l.interval.String())
	return l
}

func (l *Logs) loop(s sampler, prev snapshot) {
	defer close(l.done)
	defer l.logger.Info("telemetry is stopped")
	defer l.ticker.Stop()

	for {
		select {
		case <-l.ctx.Done():
			return

		case <-l.ticker.C:
			cur := s.snapshot()
			d := deltaSnapshot(prev, cur)
			prev = cur

			common := []any{"interval", l.interval.String()}

			l.logger.Info("events",
				append(common,
					"admits", int64(d.admits),
					"touches", int64(d.touches),
					"evictions", int64(d.evictions),
					"untracked_touches", int64(d.untrackedTouches),
					"untracked_evictions", int64(d.untrackedEvictions),
				)...,
			)

			if d.droppedMetadata > 0 || d.droppedEvents > 0 {
				l.logger.Warn("drops",
					append(common,
						"metadata", int64(d.droppedMetadata),
						"switch_events", int64(d.droppedEvents),
					)...,
				)
			}

			l.logger.Info("controller",
				append(common,
					"checks", int64(d.checks),
					"skipped_checks", int64(d.skippedChecks),
					"switches", int64(d.switches),
				)...,
			)

			w := s.window()
			l.logger.Info("window",
				append(common,
					"policy", w.Policy.String(),
					"accesses", w.TotalAccesses,
					"hit_rate", w.HitRate,
					"smoothed_hit_rate", w.SmoothedHitRate,
					"one_time_ratio", w.OneTimeRatio,
					"sequential_ratio", w.SequentialRatio,
					"ws_ratio", w.WorkingSetRatio,
					"tracked_items", w.TrackedItems,
				)...,
			)
		}
	}
}

type NoOpLogger struct{}

func (NoOpLogger) Interval() time.Duration { return 0 }
func (NoOpLogger) Close() error            { return nil }
