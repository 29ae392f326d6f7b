package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment variable, e.g.
// DLTIME_PROBE_CONNECT_TIMEOUT for probe.connect_timeout
const EnvPrefix = "DLTIME"

// Config holds the runtime configuration
type Config struct {
	// LogLevel is the zerolog level name (debug, info, warn, error, none)
	LogLevel string `mapstructure:"log_level"`

	Probe   ProbeConfig   `mapstructure:"probe"`
	Measure MeasureConfig `mapstructure:"measure"`
	Putio   PutioConfig   `mapstructure:"putio"`
}

// ProbeConfig configures header probing
type ProbeConfig struct {
	// ConnectTimeout bounds dialing the server (default: 5s)
	ConnectTimeout time.Duration `mapstructure:"connect_timeout"`
}

// MeasureConfig configures speed sampling downloads
type MeasureConfig struct {
	// SampleWindow is how long a sample download may run before it is stopped
	SampleWindow time.Duration `mapstructure:"sample_window"`

	// ProgressInterval is how often sample progress is logged
	ProgressInterval time.Duration `mapstructure:"progress_interval"`

	// HeaderTimeout bounds the wait for response headers
	HeaderTimeout time.Duration `mapstructure:"header_timeout"`

	// ScratchDir receives the partial sample files
	ScratchDir string `mapstructure:"scratch_dir"`

	// KeepFiles leaves the partial sample file in ScratchDir
	KeepFiles bool `mapstructure:"keep_files"`
}

// PutioConfig configures the put.io size source
type PutioConfig struct {
	// Token is the put.io OAuth token
	Token string `mapstructure:"token"`

	// BaseURL overrides the API endpoint; empty means https://api.put.io
	BaseURL string `mapstructure:"base_url"`
}

// SetDefaults registers the default for every key on v
func SetDefaults(v *viper.Viper) {
	v.SetDefault("log_level", "info")
	v.SetDefault("probe.connect_timeout", 5*time.Second)
	v.SetDefault("measure.sample_window", 10*time.Second)
	v.SetDefault("measure.progress_interval", 2*time.Second)
	v.SetDefault("measure.header_timeout", 30*time.Second)
	v.SetDefault("measure.scratch_dir", os.TempDir())
	v.SetDefault("measure.keep_files", false)
	v.SetDefault("putio.token", "")
	v.SetDefault("putio.base_url", "")
}

// New returns a viper instance with defaults and environment binding set
// up. When configFile is not empty it is read as well.
func New(configFile string) (*viper.Viper, error) {
	v := viper.New()
	SetDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	return v, nil
}

// Load unmarshals v into a Config and validates it
func Load(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks that every duration is positive
func (c *Config) Validate() error {
	var errs []error
	check := func(key string, d time.Duration) {
		if d <= 0 {
			errs = append(errs, fmt.Errorf("%s must be positive, got %s", key, d))
		}
	}
	check("probe.connect_timeout", c.Probe.ConnectTimeout)
	check("measure.sample_window", c.Measure.SampleWindow)
	check("measure.progress_interval", c.Measure.ProgressInterval)
	check("measure.header_timeout", c.Measure.HeaderTimeout)

	if len(errs) > 0 {
		return fmt.Errorf("invalid config: %w", errors.Join(errs...))
	}
	return nil
}
