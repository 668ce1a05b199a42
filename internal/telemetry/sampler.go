package telemetry

import "github.com/Borislavv/go-ash-adaptive/model"

type sampler struct {
	source Source
}

func newSampler(src Source) sampler {
	return sampler{source: src}
}

// snapshot holds cumulative counters (monotonic).
type snapshot struct {
	admits             uint64
	touches            uint64
	evictions          uint64
	untrackedTouches   uint64
	untrackedEvictions uint64
	droppedMetadata    uint64
	droppedEvents      uint64

	checks        uint64
	skippedChecks uint64
	switches      uint64
}

func (s sampler) snapshot() snapshot {
	m := s.source.Metrics()

	return snapshot{
		admits:             uint64(max(m.Admits, 0)),
		touches:            uint64(max(m.Touches, 0)),
		evictions:          uint64(max(m.Evictions, 0)),
		untrackedTouches:   uint64(max(m.UntrackedTouches, 0)),
		untrackedEvictions: uint64(max(m.UntrackedEvictions, 0)),
		droppedMetadata:    uint64(max(m.DroppedMetadata, 0)),
		droppedEvents:      uint64(max(m.DroppedEvents, 0)),

		checks:        uint64(max(m.Checks, 0)),
		skippedChecks: uint64(max(m.SkippedChecks, 0)),
		switches:      uint64(max(m.Switches, 0)),
	}
}

// window is not cumulative: it is reported as is.
func (s sampler) window() model.Snapshot {
	return s.source.Snapshot()
}

// deltaSnapshot converts cumulative snapshots to per-interval deltas.
// If counters reset (cur < prev), it treats cur as the delta.
func deltaSnapshot(prev, cur snapshot) snapshot {
	return snapshot{
		admits:             delta(prev.admits, cur.admits),
		touches:            delta(prev.touches, cur.touches),
		evictions:          delta(prev.evictions, cur.evictions),
		untrackedTouches:   delta(prev.untrackedTouches, cur.untrackedTouches),
		untrackedEvictions: delta(prev.untrackedEvictions, cur.untrackedEvictions),
		droppedMetadata:    delta(prev.droppedMetadata, cur.droppedMetadata),
		droppedEvents:      delta(prev.droppedEvents, cur.droppedEvents),

		checks:        delta(prev.checks, cur.checks),
		skippedChecks: delta(prev.skippedChecks, cur.skippedChecks),
		switches:      delta(prev.switches, cur.switches),
	}
}

func delta(prev, cur uint64) uint64 {
	if cur >= prev {
		return cur - prev
	}
	return cur
}
