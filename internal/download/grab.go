package download

import (
	"context"
	"net/http"
	"time"

	grab "github.com/cavaliergopher/grab/v3"
	"github.com/dustin/go-humanize"
	"github.com/elsbrock/dltime/internal/log"
)

// createGrabClient creates a configured grab client for sample downloads
func (m *Meter) createGrabClient() *grab.Client {
	log.Debug("measure").
		Dur("idle_timeout", m.cfg.IdleConnectionTimeout).
		Dur("header_timeout", m.cfg.DownloadHeaderTimeout).
		Msg("Creating download client")

	client := grab.NewClient()
	client.UserAgent = "dltime/1.0"
	client.HTTPClient = &http.Client{
		Timeout: 0, // The sample window bounds the transfer
		Transport: &http.Transport{
			Proxy:                 http.ProxyFromEnvironment,
			DisableCompression:    true, // Measure bytes on the wire, not inflated bytes
			IdleConnTimeout:       m.cfg.IdleConnectionTimeout,
			ResponseHeaderTimeout: m.cfg.DownloadHeaderTimeout,
		},
	}

	return client
}

// monitorGrabProgress logs sample progress until the transfer finishes or ctx
// is done
func (m *Meter) monitorGrabProgress(ctx context.Context, url string, resp *grab.Response, progressTicker *time.Ticker) {
	log.Info("measure").
		Str("url", url).
		Dur("window", m.cfg.SampleWindow).
		Msg("Starting sample download")

	for {
		select {
		case <-progressTicker.C:
			complete := resp.BytesComplete()
			if complete == 0 {
				log.Debug("measure").
					Str("url", url).
					Msg("Waiting for data")
				continue
			}

			event := log.Info("measure").
				Str("url", url).
				Str("downloaded", humanize.Bytes(uint64(complete))).
				Str("speed", humanize.Bytes(uint64(resp.BytesPerSecond()))+"/s")
			if size := resp.Size(); size > 0 {
				event = event.
					Str("total", humanize.Bytes(uint64(size))).
					Float64("progress_percent", resp.Progress()*100)
			}
			event.Msg("Sample progress")
		case <-ctx.Done():
			// grab cancels the transfer itself; wait for it to wind down
			<-resp.Done
			return
		case <-resp.Done:
			return
		}
	}
}
