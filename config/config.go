package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

var ErrInvalid = errors.New("invalid config")

// Engine groups configuration of the engine and its optional subsystems.
// Optional subsystems are disabled by leaving their section nil.
type Engine struct {
	// Adaptive configures the policy-switch state machine.
	Adaptive AdaptiveCfg `yaml:"adaptive" toml:"adaptive"`

	// Tracking bounds the metadata, working-set and stream containers.
	Tracking TrackingCfg `yaml:"tracking" toml:"tracking"`

	// Policy tunes the individual eviction policies.
	Policy PolicyCfg `yaml:"policy" toml:"policy"`

	// Telemetry enables a periodic log line with engine counters.
	// If nil, no background logger is started.
	Telemetry *TelemetryCfg `yaml:"telemetry" toml:"telemetry"`

	// Journal writes switch events and metric snapshots as JSON lines.
	// If nil, events are only available through the in-memory buffer.
	Journal *JournalCfg `yaml:"journal" toml:"journal"`

	// Persistence stores all-time per-policy stats between runs.
	// If nil, every run starts with empty stats.
	Persistence *PersistenceCfg `yaml:"persistence" toml:"persistence"`
}

// Default returns a config carrying the reference thresholds.
func Default() *Engine {
	cfg := &Engine{}
	cfg.AdjustConfig()
	return cfg
}

// AdjustConfig fills zero values with defaults and derives virtual fields.
func (cfg *Engine) AdjustConfig() {
	cfg.Adaptive.adjust()
	cfg.Tracking.adjust()
	cfg.Policy.adjust(cfg.Adaptive.CacheCapacityEstimate)
	if cfg.Telemetry.Enabled() {
		cfg.Telemetry.adjust()
	}
	if cfg.Journal.Enabled() {
		cfg.Journal.adjust()
	}
	if cfg.Persistence.Enabled() {
		cfg.Persistence.adjust()
	}
}

// Validate reports settings the engine cannot run with.
func (cfg *Engine) Validate() error {
	if cfg.Adaptive.HitRateThreshold > 100 {
		return fmt.Errorf("%w: hit_rate_threshold %d is above 100", ErrInvalid, cfg.Adaptive.HitRateThreshold)
	}
	if cfg.Policy.S3FIFOSmallRatio > 100 {
		return fmt.Errorf("%w: s3fifo_small_ratio %d is above 100", ErrInvalid, cfg.Policy.S3FIFOSmallRatio)
	}
	if !cfg.Policy.Initial.Valid() {
		return fmt.Errorf("%w: initial policy %s", ErrInvalid, cfg.Policy.Initial)
	}
	if cfg.Journal.Enabled() && cfg.Journal.Path == "" {
		return fmt.Errorf("%w: journal path is empty", ErrInvalid)
	}
	if cfg.Persistence.Enabled() && cfg.Persistence.Dir == "" {
		return fmt.Errorf("%w: persistence dir is empty", ErrInvalid)
	}
	return nil
}

// LoadConfig reads a YAML (.yaml, .yml) or TOML (.toml) file.
func LoadConfig(path string) (*Engine, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("stat config path: %w", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file %s: %w", path, err)
	}

	cfg := &Engine{}
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		if err = toml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("unmarshal toml from %s: %w", path, err)
		}
	case ".yaml", ".yml":
		if err = yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("unmarshal yaml from %s: %w", path, err)
		}
	default:
		return nil, fmt.Errorf("%w: unsupported config extension %q", ErrInvalid, ext)
	}
	cfg.AdjustConfig()

	if err = cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
