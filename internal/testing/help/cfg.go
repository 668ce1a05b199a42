package help

import (
	"github.com/Borislavv/go-ash-adaptive/config"
	"github.com/Borislavv/go-ash-adaptive/model"
)

// Cfg returns an engine config with thresholds small enough for unit tests.
func Cfg() *config.Engine {
	c := &config.Engine{
		Adaptive: config.AdaptiveCfg{
			MinSamples:            100,
			MinTimeInPolicy:       100,
			CheckInterval:         10,
			HitRateThreshold:      30,
			CacheCapacityEstimate: 1000,
			DisableSnapshots:      true,
			EventsBuffer:          16,
		},
		Tracking: config.TrackingCfg{
			MetadataCapacity:   100_000,
			WorkingSetCapacity: 10_000,
			StreamCapacity:     1024,
		},
		Policy: config.PolicyCfg{
			Initial:       model.PolicyMRU,
			MRUSkipWindow: 200,
		},
	}
	c.AdjustConfig()
	return c
}

// SequentialCfg sizes the capacity estimate so that a single stream yields a
// working-set ratio of 100%.
func SequentialCfg() *config.Engine {
	c := Cfg()
	c.Adaptive.CacheCapacityEstimate = 1
	c.AdjustConfig()
	return c
}
