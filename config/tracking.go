package config

const (
	DefaultMetadataCapacity   = 4_000_000
	DefaultWorkingSetCapacity = 100_000
	DefaultStreamCapacity     = 65_536
)

type TrackingCfg struct {
	// MetadataCapacity caps the number of tracked items. Admits beyond it are not tracked.
	MetadataCapacity int64 `yaml:"metadata_capacity" toml:"metadata_capacity"`

	// WorkingSetCapacity bounds the working-set tracker; the stalest identity is dropped when full.
	WorkingSetCapacity int `yaml:"working_set_capacity" toml:"working_set_capacity"`

	// StreamCapacity bounds how many streams keep a last-offset for sequential detection.
	StreamCapacity int `yaml:"stream_capacity" toml:"stream_capacity"`
}

func (cfg *TrackingCfg) adjust() {
	if cfg.MetadataCapacity <= 0 {
		cfg.MetadataCapacity = DefaultMetadataCapacity
	}
	if cfg.WorkingSetCapacity <= 0 {
		cfg.WorkingSetCapacity = DefaultWorkingSetCapacity
	}
	if cfg.StreamCapacity <= 0 {
		cfg.StreamCapacity = DefaultStreamCapacity
	}
}
