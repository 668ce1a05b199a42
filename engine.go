// Package ashadaptive is an adaptive replacement engine for page caches. The
// host reports admissions, hits and evictions; the engine tracks per-item
// metadata, derives workload metrics and switches between MRU, FIFO, LRU,
// S3-FIFO and LHD-Simple to match the observed access pattern.
package ashadaptive

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"sync"

	"github.com/Borislavv/go-ash-adaptive/config"
	"github.com/Borislavv/go-ash-adaptive/internal/controller"
	"github.com/Borislavv/go-ash-adaptive/internal/journal"
	"github.com/Borislavv/go-ash-adaptive/internal/persistence"
	"github.com/Borislavv/go-ash-adaptive/internal/telemetry"
	"github.com/benbjohnson/clock"
)

// Observer receives policy switches and periodic metric snapshots.
type Observer = controller.Observer

type Engine struct {
	*controller.Coordinator
	telemetry.Logger
	logger  *slog.Logger
	journal *journal.Journal
	dumper  *persistence.Dumper
	cls     context.CancelFunc
	once    sync.Once
	err     error
}

type options struct {
	validator func(id uint64) bool
	observers []Observer
	clock     clock.Clock
}

type Option func(o *options)

// WithValidator sets the host check eviction candidates must pass, e.g.
// "the page is up to date and still on the host's list".
func WithValidator(fn func(id uint64) bool) Option {
	return func(o *options) { o.validator = fn }
}

// WithObserver subscribes obs to switch events and metric snapshots.
func WithObserver(obs Observer) Option {
	return func(o *options) { o.observers = append(o.observers, obs) }
}

// WithClock replaces the wall clock used by telemetry and switch events.
func WithClock(clk clock.Clock) Option {
	return func(o *options) { o.clock = clk }
}

// New builds the engine. A nil cfg runs with defaults. Optional subsystems
// (telemetry, journal, persistence) start only when configured.
func New(ctx context.Context, cfg *config.Engine, logger *slog.Logger, opts ...Option) (*Engine, error) {
	if cfg == nil {
		cfg = config.Default()
	} else {
		cfg.AdjustConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	o := &options{clock: clock.New()}
	for _, opt := range opts {
		opt(o)
	}

	e := &Engine{logger: logger}
	cOpts := []controller.Option{
		controller.WithValidator(o.validator),
		controller.WithClock(o.clock),
	}

	if cfg.Persistence.Enabled() {
		e.dumper = persistence.New(cfg.Persistence, logger)
		stats, err := e.dumper.Load()
		switch {
		case errors.Is(err, fs.ErrNotExist):
			logger.Info("no policy stats dump found, starting fresh", "path", e.dumper.Path())
		case err != nil:
			return nil, fmt.Errorf("load policy stats: %w", err)
		default:
			cOpts = append(cOpts, controller.WithPolicyStats(stats))
		}
	}

	if cfg.Journal.Enabled() {
		j, err := journal.New(cfg.Journal)
		if err != nil {
			return nil, fmt.Errorf("open journal: %w", err)
		}
		e.journal = j
		cOpts = append(cOpts, controller.WithObserver(j))
	}
	for _, obs := range o.observers {
		cOpts = append(cOpts, controller.WithObserver(obs))
	}

	coordinator, err := controller.New(cfg, logger, cOpts...)
	if err != nil {
		_ = e.closeJournal()
		return nil, fmt.Errorf("init coordinator: %w", err)
	}
	e.Coordinator = coordinator

	ctx, cancel := context.WithCancel(ctx)
	e.cls = cancel
	e.Logger = telemetry.New(ctx, cfg.Telemetry, logger, coordinator, o.clock)

	logger.Info("adaptive engine is running",
		"policy", coordinator.Policy().String(),
		"cache_capacity_estimate", cfg.Adaptive.CacheCapacityEstimate,
		"check_interval", cfg.Adaptive.CheckInterval,
	)
	return e, nil
}

// Close stops telemetry, persists the all-time policy stats and closes the
// journal. It is safe to call more than once.
func (e *Engine) Close() error {
	e.once.Do(func() {
		e.cls()
		errs := []error{e.Logger.Close()}
		if e.dumper != nil {
			errs = append(errs, e.dumper.Dump(e.PolicyStats()))
		}
		errs = append(errs, e.closeJournal())
		e.err = errors.Join(errs...)
		e.logger.Info("adaptive engine is stopped", "policy", e.Policy().String())
	})
	return e.err
}

func (e *Engine) closeJournal() error {
	if e.journal == nil {
		return nil
	}
	return e.journal.Close()
}
