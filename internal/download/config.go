package download

import (
	"os"
	"time"

	"github.com/elsbrock/dltime/internal/config"
)

// MeterConfig contains configuration options for speed sampling
type MeterConfig struct {
	// SampleWindow is the longest a sample download runs before it is stopped
	SampleWindow time.Duration

	// ProgressInterval is how often sample progress is logged
	ProgressInterval time.Duration

	// DownloadHeaderTimeout bounds the wait for response headers
	DownloadHeaderTimeout time.Duration

	// IdleConnectionTimeout is how long idle keep-alive connections are kept
	IdleConnectionTimeout time.Duration

	// ScratchDir receives the partial sample file
	ScratchDir string

	// KeepFiles leaves the partial sample file on disk
	KeepFiles bool
}

// GetDefaultConfig returns a MeterConfig with reasonable default values
func GetDefaultConfig() *MeterConfig {
	return &MeterConfig{
		SampleWindow:          10 * time.Second, // Long enough for TCP to ramp up
		ProgressInterval:      2 * time.Second,
		DownloadHeaderTimeout: 30 * time.Second,
		IdleConnectionTimeout: 90 * time.Second,
		ScratchDir:            os.TempDir(),
	}
}

// ConfigFrom builds a MeterConfig from the measure section of the runtime
// configuration
func ConfigFrom(cfg config.MeasureConfig) *MeterConfig {
	mc := GetDefaultConfig()
	mc.SampleWindow = cfg.SampleWindow
	mc.ProgressInterval = cfg.ProgressInterval
	mc.DownloadHeaderTimeout = cfg.HeaderTimeout
	mc.KeepFiles = cfg.KeepFiles
	if cfg.ScratchDir != "" {
		mc.ScratchDir = cfg.ScratchDir
	}
	return mc
}
