package config

import "github.com/Borislavv/go-ash-adaptive/model"

const (
	DefaultMRUSkipWindow    = 200
	DefaultS3FIFOSmallRatio = 10
)

type PolicyCfg struct {
	// Initial is the policy the engine starts with. Supported values:
	// "mru", "fifo", "lru", "s3fifo", "lhd_simple".
	Initial model.Policy `yaml:"initial" toml:"initial"`

	// MRUSkipWindow is how many leading positions MRU may skip over invalid items.
	// Past it, MRU evicts whatever it meets.
	MRUSkipWindow int `yaml:"mru_skip_window" toml:"mru_skip_window"`

	// S3FIFOSmallRatio (percent of CacheCapacityEstimate) is the small segment size
	// at which S3-FIFO starts evicting from it.
	S3FIFOSmallRatio uint64 `yaml:"s3fifo_small_ratio" toml:"s3fifo_small_ratio"`

	// S3FIFOSmallThreshold is derived from S3FIFOSmallRatio and the capacity estimate.
	// It is not read from the config file.
	S3FIFOSmallThreshold int64 `yaml:"-" toml:"-"` // virtual: computed during init
}

func (cfg *PolicyCfg) adjust(capacityEstimate uint64) {
	if cfg.MRUSkipWindow <= 0 {
		cfg.MRUSkipWindow = DefaultMRUSkipWindow
	}
	if cfg.S3FIFOSmallRatio == 0 {
		cfg.S3FIFOSmallRatio = DefaultS3FIFOSmallRatio
	}
	cfg.S3FIFOSmallThreshold = int64(capacityEstimate * cfg.S3FIFOSmallRatio / 100)
}
