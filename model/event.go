package model

import "time"

// Reason explains which rule of the decision cascade picked a policy.
type Reason uint8

const (
	ReasonNone Reason = iota
	ReasonWorkingSetThrashing
	ReasonWorkingSetFits
	ReasonSequential
	ReasonOneTimeScan
	ReasonHotSet
	ReasonShortReuse
	ReasonComplexWorkload
	ReasonPastPerformance
)

var reasonNames = [...]string{
	ReasonNone:                "none",
	ReasonWorkingSetThrashing: "working set much larger than cache",
	ReasonWorkingSetFits:      "working set much smaller than cache",
	ReasonSequential:          "sequential access",
	ReasonOneTimeScan:         "one-time scan",
	ReasonHotSet:              "hot set",
	ReasonShortReuse:          "short reuse distance",
	ReasonComplexWorkload:     "complex workload",
	ReasonPastPerformance:     "best past performance",
}

func (r Reason) String() string {
	if int(r) < len(reasonNames) {
		return reasonNames[r]
	}
	return "unknown"
}

// Snapshot is a point-in-time view of the current window and the engine state.
// Ratios are percentages, averages are in logical ticks or hits.
type Snapshot struct {
	Policy           Policy
	Timestamp        uint64
	TotalAccesses    uint64
	Hits             uint64
	Misses           uint64
	HitRate          uint64
	SmoothedHitRate  float64
	OneTimeRatio     uint64
	SequentialRatio  uint64
	AvgHitsPerItem   uint64
	AvgReuseDistance uint64
	AvgLifetime      uint64
	AvgIdleTime      uint64
	DirtyRatio       uint64
	Evictions        uint64
	WorkingSetSize   uint64
	WorkingSetRatio  uint64
	TrackedItems     uint64
	SwitchCount      uint64
}

// SwitchEvent is published every time the controller changes policy.
type SwitchEvent struct {
	Old              Policy
	New              Policy
	Reason           Reason
	Timestamp        uint64 // logical clock
	At               time.Time
	HitRate          uint64
	TotalAccesses    uint64
	OneTimeRatio     uint64
	SequentialRatio  uint64
	AvgHitsPerItem   uint64
	AvgReuseDistance uint64
	DirtyRatio       uint64
	OldPolicyHitRate uint64
	WorkingSetSize   uint64
	WorkingSetRatio  uint64
}

// PolicyStats are cumulative per-policy counters, never reset by a switch.
type PolicyStats struct {
	Hits        uint64
	Misses      uint64
	Evictions   uint64
	TimeStarted uint64
	TimeActive  uint64
}

// HitRate returns hits*100/(hits+misses), 0 without samples.
func (s PolicyStats) HitRate() uint64 {
	total := s.Hits + s.Misses
	if total == 0 {
		return 0
	}
	return s.Hits * 100 / total
}
