package controller

import "sync/atomic"

// Metrics are lifetime counters of the coordinator, for telemetry.
type Metrics struct {
	Admits             int64
	Touches            int64
	UntrackedTouches   int64
	Evictions          int64
	UntrackedEvictions int64
	DroppedMetadata    int64
	Checks             int64
	SkippedChecks      int64
	Switches           int64
	DroppedEvents      int64
}

type coordinatorCounters struct {
	admits             atomic.Int64
	touches            atomic.Int64
	untrackedTouches   atomic.Int64
	evictions          atomic.Int64
	untrackedEvictions atomic.Int64
	droppedMetadata    atomic.Int64
	checks             atomic.Int64
	skippedChecks      atomic.Int64
}

func (c *coordinatorCounters) snapshot() Metrics {
	return Metrics{
		Admits:             c.admits.Load(),
		Touches:            c.touches.Load(),
		UntrackedTouches:   c.untrackedTouches.Load(),
		Evictions:          c.evictions.Load(),
		UntrackedEvictions: c.untrackedEvictions.Load(),
		DroppedMetadata:    c.droppedMetadata.Load(),
		Checks:             c.checks.Load(),
		SkippedChecks:      c.skippedChecks.Load(),
	}
}

func newCoordinatorCounters() *coordinatorCounters {
	return &coordinatorCounters{}
}
