package model

import "time"

// Config holds the complete runtime configuration
type Config struct {
	Endpoint    EndpointConfig    `yaml:"endpoint" mapstructure:"endpoint"`
	HTTP        HTTPConfig        `yaml:"http" mapstructure:"http"`
	Cache       CacheConfig       `yaml:"cache" mapstructure:"cache"`
	Concurrency ConcurrencyConfig `yaml:"concurrency" mapstructure:"concurrency"`
	Output      OutputConfig      `yaml:"output" mapstructure:"output"`
}

// EndpointConfig describes the Linked-Open-Data portal of the State Archives
type EndpointConfig struct {
	URL        string `yaml:"url" mapstructure:"url"`                 // SPARQL endpoint
	RootRecord string `yaml:"root_record" mapstructure:"root_record"` // Record URI grouping all HGB series
}

// HTTPConfig controls the SPARQL client transport
type HTTPConfig struct {
	Timeout           time.Duration `yaml:"timeout" mapstructure:"timeout"`
	UserAgent         string        `yaml:"user_agent" mapstructure:"user_agent"`
	MaxBodyBytes      int64         `yaml:"max_body_bytes" mapstructure:"max_body_bytes"`
	RequestsPerSecond float64       `yaml:"requests_per_second" mapstructure:"requests_per_second"`
	HTTPProxy         string        `yaml:"http_proxy,omitempty" mapstructure:"http_proxy"`
	HTTPSProxy        string        `yaml:"https_proxy,omitempty" mapstructure:"https_proxy"`
}

// CacheConfig controls caching of SPARQL responses between runs
type CacheConfig struct {
	Enabled   bool          `yaml:"enabled" mapstructure:"enabled"`
	Dir       string        `yaml:"dir" mapstructure:"dir"`
	MemoryTTL time.Duration `yaml:"memory_ttl" mapstructure:"memory_ttl"`
	DiskTTL   time.Duration `yaml:"disk_ttl" mapstructure:"disk_ttl"`
}

// ConcurrencyConfig controls parallelism of the enrichment step
type ConcurrencyConfig struct {
	Workers int `yaml:"workers" mapstructure:"workers"`
}

// OutputConfig controls where and how results are written
type OutputConfig struct {
	Dir     string `yaml:"dir" mapstructure:"dir"`
	Verbose bool   `yaml:"verbose" mapstructure:"verbose"`
}

// DefaultConfig returns the built-in defaults
func DefaultConfig() *Config {
	return &Config{
		Endpoint: EndpointConfig{
			URL:        "https://ld.bs.ch/query/",
			RootRecord: "https://ld.bs.ch/ais/Record/1027330",
		},
		HTTP: HTTPConfig{
			Timeout:           30 * time.Second,
			UserAgent:         "hgb-metadata/0.1 (+https://github.com/history-unibas/Metadata-Historical-Land-Registry-Basel)",
			MaxBodyBytes:      8_000_000,
			RequestsPerSecond: 2,
		},
		Cache: CacheConfig{
			Enabled:   true,
			Dir:       "", // Resolved to ~/.hgb-metadata/cache by the CLI
			MemoryTTL: 1 * time.Hour,
			DiskTTL:   24 * time.Hour,
		},
		Concurrency: ConcurrencyConfig{
			Workers: 4,
		},
		Output: OutputConfig{
			Dir:     "./data",
			Verbose: false,
		},
	}
}
