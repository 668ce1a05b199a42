package config

type PersistenceCfg struct {
	// Dir specifies the directory where the policy stats dump is stored.
	// It is created when missing.
	Dir string `yaml:"dump_dir" toml:"dump_dir"`

	// Name defines the base name of the dump file.
	// The final file name gets a ".gz" suffix when Gzip is enabled.
	Name string `yaml:"dump_name" toml:"dump_name"`

	// Gzip enables gzip compression of the dump file.
	Gzip bool `yaml:"gzip" toml:"gzip"`
}

func (cfg *PersistenceCfg) Enabled() bool {
	return cfg != nil
}

func (cfg *PersistenceCfg) adjust() {
	if cfg.Name == "" {
		cfg.Name = "policy-stats"
	}
}
