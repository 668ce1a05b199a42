// Package journal records policy switches (and optionally metric snapshots)
// as JSON lines, one object per event.
package journal

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/Borislavv/go-ash-adaptive/config"
	"github.com/Borislavv/go-ash-adaptive/model"
	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"
)

type Journal struct {
	log       zerolog.Logger
	closer    io.Closer
	snapshots bool
}

// New opens the journal described by cfg: a rotated file, or stdout for path "-".
// The file itself is opened on the first write.
func New(cfg *config.JournalCfg) (*Journal, error) {
	if cfg.IsStdout() {
		return NewWriter(os.Stdout, cfg.Snapshots), nil
	}
	if err := os.MkdirAll(filepath.Dir(cfg.Path), 0o755); err != nil {
		return nil, fmt.Errorf("create journal dir: %w", err)
	}
	file := &lumberjack.Logger{
		LocalTime:  true,
		Filename:   cfg.Path,
		MaxSize:    cfg.MaxSizeMB,
		MaxBackups: cfg.MaxBackups,
		MaxAge:     cfg.MaxAgeDays,
		Compress:   cfg.Compress,
	}
	j := NewWriter(file, cfg.Snapshots)
	j.closer = file
	return j, nil
}

// NewWriter journals into w. The caller owns w.
func NewWriter(w io.Writer, snapshots bool) *Journal {
	return &Journal{
		log:       zerolog.New(w).With().Timestamp().Logger(),
		snapshots: snapshots,
	}
}

func (j *Journal) PolicySwitched(ev model.SwitchEvent) {
	j.log.Info().
		Str("event", "policy_switch").
		Str("old", ev.Old.String()).
		Str("new", ev.New.String()).
		Str("reason", ev.Reason.String()).
		Uint64("tick", ev.Timestamp).
		Time("at", ev.At).
		Uint64("hit_rate", ev.HitRate).
		Uint64("total_accesses", ev.TotalAccesses).
		Uint64("one_time_ratio", ev.OneTimeRatio).
		Uint64("sequential_ratio", ev.SequentialRatio).
		Uint64("avg_hits_per_item", ev.AvgHitsPerItem).
		Uint64("avg_reuse_distance", ev.AvgReuseDistance).
		Uint64("dirty_ratio", ev.DirtyRatio).
		Uint64("old_policy_hit_rate", ev.OldPolicyHitRate).
		Uint64("working_set_size", ev.WorkingSetSize).
		Uint64("working_set_ratio", ev.WorkingSetRatio).
		Msg("policy switched")
}

func (j *Journal) MetricsSampled(s model.Snapshot) {
	if !j.snapshots {
		return
	}
	j.log.Info().
		Str("event", "snapshot").
		Str("policy", s.Policy.String()).
		Uint64("tick", s.Timestamp).
		Uint64("total_accesses", s.TotalAccesses).
		Uint64("hits", s.Hits).
		Uint64("misses", s.Misses).
		Uint64("hit_rate", s.HitRate).
		Float64("smoothed_hit_rate", s.SmoothedHitRate).
		Uint64("one_time_ratio", s.OneTimeRatio).
		Uint64("sequential_ratio", s.SequentialRatio).
		Uint64("avg_hits_per_item", s.AvgHitsPerItem).
		Uint64("avg_reuse_distance", s.AvgReuseDistance).
		Uint64("avg_lifetime", s.AvgLifetime).
		Uint64("avg_idle_time", s.AvgIdleTime).
		Uint64("dirty_ratio", s.DirtyRatio).
		Uint64("evictions", s.Evictions).
		Uint64("working_set_size", s.WorkingSetSize).
		Uint64("working_set_ratio", s.WorkingSetRatio).
		Uint64("tracked_items", s.TrackedItems).
		Uint64("switch_count", s.SwitchCount).
		Msg("metrics sampled")
}

// Close closes the journal file. Journals over stdout or a caller-owned
// writer have nothing to close.
func (j *Journal) Close() error {
	if j.closer == nil {
		return nil
	}
	return j.closer.Close()
}
