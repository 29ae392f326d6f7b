// Package download measures how fast a resource can be fetched by running a
// short, bounded sample download.
package download

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	grab "github.com/cavaliergopher/grab/v3"
	"github.com/dustin/go-humanize"
	"github.com/elsbrock/dltime/internal/calc"
	"github.com/elsbrock/dltime/internal/log"
)

// Sample is the outcome of one sample download
type Sample struct {
	URL string

	// Size is the full resource size in bytes, -1 when the server did not
	// report one
	Size int64

	// BytesComplete is how much was downloaded during the sample
	BytesComplete int64

	// BytesPerSecond is the average rate over the sample
	BytesPerSecond float64

	Elapsed time.Duration

	// Complete is set when the whole resource fit in the sample window
	Complete bool
}

// Remaining returns the bytes still to download after the sample, or -1
// when the size is unknown
func (s *Sample) Remaining() int64 {
	switch {
	case s.Complete:
		return 0
	case s.Size < 0:
		return -1
	default:
		return s.Size - s.BytesComplete
	}
}

// Request converts the sample into an estimate request for the bytes that
// are left, in bytes and bytes per second
func (s *Sample) Request() (calc.Request, error) {
	remaining := s.Remaining()
	if remaining < 0 {
		return calc.Request{}, NewSizeUnknownError(s.URL)
	}
	if s.BytesPerSecond <= 0 {
		return calc.Request{}, NewNoProgressError(s.URL)
	}
	return calc.NewRequest(calc.Byte, calc.BytesPerSecond, float64(remaining), s.BytesPerSecond), nil
}

// RemainingTime formats the time left to finish the download at the sampled
// rate. A complete sample has nothing left.
func (s *Sample) RemainingTime(modulo bool) (string, error) {
	if s.Complete {
		return calc.FormatDuration(0, modulo)
	}
	req, err := s.Request()
	if err != nil {
		return "", err
	}
	return req.RemainingTime(modulo)
}

// Meter runs sample downloads
type Meter struct {
	cfg    *MeterConfig
	client *grab.Client
}

// NewMeter creates a Meter. A nil cfg uses GetDefaultConfig.
func NewMeter(cfg *MeterConfig) *Meter {
	if cfg == nil {
		cfg = GetDefaultConfig()
	}
	m := &Meter{cfg: cfg}
	m.client = m.createGrabClient()
	return m
}

// Measure downloads url for at most the sample window and reports how far it
// got. Running out of window is not an error; a failing transfer or a
// cancelled ctx is.
func (m *Meter) Measure(ctx context.Context, url string) (*Sample, error) {
	if err := os.MkdirAll(m.cfg.ScratchDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create scratch directory: %w", err)
	}
	scratchPath := filepath.Join(m.cfg.ScratchDir, fmt.Sprintf("dltime-sample-%d.part", time.Now().UnixNano()))

	req, err := grab.NewRequest(scratchPath, url)
	if err != nil {
		return nil, NewSampleFailedError(url, err)
	}
	req.NoResume = true

	sampleCtx, cancel := context.WithTimeout(ctx, m.cfg.SampleWindow)
	defer cancel()
	req = req.WithContext(sampleCtx)

	progressTicker := time.NewTicker(m.cfg.ProgressInterval)
	defer progressTicker.Stop()

	start := time.Now()
	resp := m.client.Do(req)
	m.monitorGrabProgress(sampleCtx, url, resp, progressTicker)
	elapsed := time.Since(start)

	defer m.cleanup(resp.Filename)

	transferErr := resp.Err()
	switch {
	case transferErr == nil:
	case errors.Is(transferErr, context.DeadlineExceeded) && ctx.Err() == nil:
		log.Debug("measure").
			Str("url", url).
			Msg("Sample window elapsed")
	default:
		return nil, NewSampleFailedError(url, transferErr)
	}

	sample := &Sample{
		URL:           url,
		Size:          resp.Size(),
		BytesComplete: resp.BytesComplete(),
		Elapsed:       elapsed,
		Complete:      transferErr == nil,
	}
	if sample.Complete {
		sample.Size = sample.BytesComplete
	} else if sample.Size <= 0 {
		sample.Size = -1
	}
	if secs := elapsed.Seconds(); secs > 0 {
		sample.BytesPerSecond = float64(sample.BytesComplete) / secs
	}

	log.Info("measure").
		Str("url", url).
		Str("downloaded", humanize.Bytes(uint64(sample.BytesComplete))).
		Str("speed", humanize.Bytes(uint64(sample.BytesPerSecond))+"/s").
		Dur("elapsed", elapsed.Round(time.Millisecond)).
		Bool("complete", sample.Complete).
		Msg("Sample finished")

	return sample, nil
}

// cleanup removes the partial sample file unless KeepFiles is set
func (m *Meter) cleanup(path string) {
	if path == "" {
		return
	}
	if m.cfg.KeepFiles {
		log.Info("measure").
			Str("path", path).
			Msg("Keeping sample file")
		return
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		log.Warn("measure").
			Str("path", path).
			Err(err).
			Msg("Failed to remove sample file")
	}
}
