package config

// JournalCfg configures the JSON-lines event journal and its file rotation.
type JournalCfg struct {
	// Path of the journal file. "-" writes to stdout.
	Path string `yaml:"path" toml:"path"`

	// MaxSizeMB is the size in megabytes at which the file is rotated.
	MaxSizeMB int `yaml:"max_size_mb" toml:"max_size_mb"`

	// MaxBackups is how many rotated files are kept.
	MaxBackups int `yaml:"max_backups" toml:"max_backups"`

	// MaxAgeDays removes rotated files older than this many days.
	MaxAgeDays int `yaml:"max_age_days" toml:"max_age_days"`

	// Compress gzips rotated files.
	Compress bool `yaml:"compress" toml:"compress"`

	// Snapshots also journals the periodic metric snapshots, not only switches.
	Snapshots bool `yaml:"snapshots" toml:"snapshots"`
}

func (cfg *JournalCfg) Enabled() bool {
	return cfg != nil
}

func (cfg *JournalCfg) IsStdout() bool {
	return cfg.Path == "-"
}

func (cfg *JournalCfg) adjust() {
	if cfg.MaxSizeMB <= 0 {
		cfg.MaxSizeMB = 10
	}
	if cfg.MaxBackups <= 0 {
		cfg.MaxBackups = 1
	}
	if cfg.MaxAgeDays <= 0 {
		cfg.MaxAgeDays = 7
	}
}
