package config

// GleanFile represents the structure of the glean.yaml configuration file.
// Every field is optional; unset fields fall back to the built-in defaults.
type GleanFile struct {
	Version string    `yaml:"version"`
	Model   string    `yaml:"model"`
	Outputs []string  `yaml:"outputs"`
	Custom  string    `yaml:"customInstruction"`
	Cache   *CacheDTO `yaml:"cache"`
	Run     *RunDTO   `yaml:"run"`
}

// CacheDTO configures the result cache.
type CacheDTO struct {
	Enabled      *bool  `yaml:"enabled"`
	Dir          string `yaml:"dir"`
	TTL          string `yaml:"ttl"`
	SizeBudgetMB int64  `yaml:"sizeBudgetMB"`
}

// RunDTO configures the executor.
type RunDTO struct {
	MaxConcurrent  int    `yaml:"maxConcurrent"`
	RetryAttempts  int    `yaml:"retryAttempts"`
	RetryBaseDelay string `yaml:"retryBaseDelay"`
}
