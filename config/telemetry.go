package config

import "time"

const DefaultTelemetryInterval = 5 * time.Second

type TelemetryCfg struct {
	// Interval between two telemetry log lines. Example: "5s".
	Interval time.Duration `yaml:"interval" toml:"interval"`
}

func (cfg *TelemetryCfg) Enabled() bool {
	return cfg != nil
}

func (cfg *TelemetryCfg) adjust() {
	if cfg.Interval <= 0 {
		cfg.Interval = DefaultTelemetryInterval
	}
}
