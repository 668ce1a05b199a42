package config

const (
	DefaultMinSamples            = 1000
	DefaultMinTimeInPolicy       = 10000
	DefaultCheckInterval         = 1000
	DefaultHitRateThreshold      = 30
	DefaultCacheCapacityEstimate = 50000 // ~200MB of 4KB pages
	DefaultSnapshotEvery         = 100000
	DefaultEventsBuffer          = 256
	DefaultEWMAAge               = 30
)

// AdaptiveCfg configures when and how the controller switches policies.
// All durations are in logical ticks: one tick per admit or touch.
type AdaptiveCfg struct {
	// MinSamples is the number of accesses a window must hold before a switch is considered.
	MinSamples uint64 `yaml:"min_samples" toml:"min_samples"`

	// MinTimeInPolicy is the minimum number of ticks between two switches (hysteresis).
	MinTimeInPolicy uint64 `yaml:"min_time_in_policy" toml:"min_time_in_policy"`

	// CheckInterval is how many accesses pass between two switch evaluations.
	CheckInterval uint64 `yaml:"check_interval" toml:"check_interval"`

	// HitRateThreshold (percent): a policy whose window hit rate is at or above it is kept.
	HitRateThreshold uint64 `yaml:"hit_rate_threshold" toml:"hit_rate_threshold"`

	// CacheCapacityEstimate is the cache size in items that ratios are computed against.
	// Example: 200MB cache of 4KB pages -> 51200.
	CacheCapacityEstimate uint64 `yaml:"cache_capacity_estimate" toml:"cache_capacity_estimate"`

	// SnapshotEvery publishes a metrics snapshot every N accesses. Zero keeps the default,
	// DisableSnapshots turns the feature off.
	SnapshotEvery    uint64 `yaml:"snapshot_every" toml:"snapshot_every"`
	DisableSnapshots bool   `yaml:"disable_snapshots" toml:"disable_snapshots"`

	// EventsBuffer bounds the in-memory switch event buffer; overflowing events are dropped.
	EventsBuffer int `yaml:"events_buffer" toml:"events_buffer"`

	// EWMAAge is the age (in check intervals) of the smoothed hit rate average.
	EWMAAge float64 `yaml:"ewma_age" toml:"ewma_age"`
}

func (cfg *AdaptiveCfg) adjust() {
	if cfg.MinSamples == 0 {
		cfg.MinSamples = DefaultMinSamples
	}
	if cfg.MinTimeInPolicy == 0 {
		cfg.MinTimeInPolicy = DefaultMinTimeInPolicy
	}
	if cfg.CheckInterval == 0 {
		cfg.CheckInterval = DefaultCheckInterval
	}
	if cfg.HitRateThreshold == 0 {
		cfg.HitRateThreshold = DefaultHitRateThreshold
	}
	if cfg.CacheCapacityEstimate == 0 {
		cfg.CacheCapacityEstimate = DefaultCacheCapacityEstimate
	}
	if cfg.SnapshotEvery == 0 {
		cfg.SnapshotEvery = DefaultSnapshotEvery
	}
	if cfg.EventsBuffer <= 0 {
		cfg.EventsBuffer = DefaultEventsBuffer
	}
	if cfg.EWMAAge <= 0 {
		cfg.EWMAAge = DefaultEWMAAge
	}
}
