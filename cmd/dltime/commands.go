package main

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/elsbrock/dltime/internal/api"
	"github.com/elsbrock/dltime/internal/calc"
	"github.com/elsbrock/dltime/internal/config"
	"github.com/elsbrock/dltime/internal/download"
	"github.com/elsbrock/dltime/internal/log"
	"github.com/elsbrock/dltime/internal/probe"
)

// app carries state shared by all subcommands
type app struct {
	configFile string
	logLevel   string
	cfg        *config.Config
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:               "dltime",
		Short:             "Estimate how long a download will take",
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.load,
	}
	root.PersistentFlags().StringVar(&a.configFile, "config", "", "Config file (yaml, toml or json)")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "Log level (debug, info, warn, error, none)")

	root.AddCommand(
		a.estimateCmd(),
		a.parseCmd(),
		a.probeCmd(),
		a.measureCmd(),
	)
	return root
}

// load reads configuration and applies the log level before any subcommand runs
func (a *app) load(cmd *cobra.Command, _ []string) error {
	v, err := config.New(a.configFile)
	if err != nil {
		return err
	}
	if err := v.BindPFlag("log_level", cmd.Root().PersistentFlags().Lookup("log-level")); err != nil {
		return fmt.Errorf("failed to bind log level flag: %w", err)
	}

	cfg, err := config.Load(v)
	if err != nil {
		return err
	}
	a.cfg = cfg
	log.SetLevel(log.ParseLevel(cfg.LogLevel))

	log.Debug("main").
		Str("config_file", v.ConfigFileUsed()).
		Str("log_level", cfg.LogLevel).
		Msg("Configuration loaded")
	return nil
}

func (a *app) putioClient() (*api.Client, error) {
	if a.cfg.Putio.Token == "" {
		return nil, errors.New("put.io token not configured (set DLTIME_PUTIO_TOKEN or putio.token)")
	}
	client := api.NewClient(a.cfg.Putio.Token)
	if a.cfg.Putio.BaseURL != "" {
		if err := client.SetBaseURL(a.cfg.Putio.BaseURL); err != nil {
			return nil, err
		}
	}
	return client, nil
}

func (a *app) estimateCmd() *cobra.Command {
	var (
		plain     bool
		sourceURL string
		putioFile int64
	)

	cmd := &cobra.Command{
		Use:   "estimate [SIZE SIZE_UNIT] SPEED SPEED_UNIT",
		Short: "Estimate the download time for a size at a speed",
		Long: `Estimate the download time for a size at a speed.

Units are decimal (kB, MB, GB) or binary (KiB, MiB, GiB); speeds take a
"/s" suffix. The size can be read from a URL (--url) or a put.io file
(--putio-file) instead of being given on the command line.`,
		Example: `  dltime estimate 1 GiB 1 MiB/s
  dltime estimate --url https://example.com/file.iso 10 MB/s`,
		Args: cobra.RangeArgs(2, 4),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			remote := sourceURL != "" || cmd.Flags().Changed("putio-file")
			if remote && len(args) != 2 {
				return fmt.Errorf("expected SPEED SPEED_UNIT when the size comes from --url or --putio-file, got %d arguments", len(args))
			}
			if !remote && len(args) != 4 {
				return fmt.Errorf("expected SIZE SIZE_UNIT SPEED SPEED_UNIT, got %d arguments", len(args))
			}

			var (
				size     float64
				sizeUnit = calc.Byte
				err      error
			)
			switch {
			case sourceURL != "":
				size, err = a.sizeFromURL(ctx, sourceURL)
			case cmd.Flags().Changed("putio-file"):
				size, err = a.sizeFromPutio(ctx, putioFile)
			default:
				size, sizeUnit, err = parseQuantity(args[0], args[1], calc.ParseSizeUnit)
				args = args[2:]
			}
			if err != nil {
				return err
			}

			speed, speedUnit, err := parseQuantity(args[0], args[1], calc.ParseSpeedUnit)
			if err != nil {
				return err
			}

			req := calc.NewRequest(sizeUnit, speedUnit, size, speed)
			log.Debug("estimate").
				Str("size", humanBytes(req.Bytes())).
				Str("speed", humanBytes(req.BytesPerSecond())+"/s").
				Float64("seconds", req.RemainingSeconds()).
				Msg("Estimated")

			out, err := req.RemainingTime(!plain)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), out)
			return nil
		},
	}

	cmd.Flags().BoolVar(&plain, "plain", false, "Print whole seconds instead of days/hours/minutes")
	cmd.Flags().StringVar(&sourceURL, "url", "", "Read the size from the Content-Length of this URL")
	cmd.Flags().Int64Var(&putioFile, "putio-file", 0, "Read the size from this put.io file or folder ID")
	cmd.MarkFlagsMutuallyExclusive("url", "putio-file")
	return cmd
}

// parseQuantity reads a number and its unit
func parseQuantity[U any](number, unit string, parseUnit func(string) (U, error)) (float64, U, error) {
	var zero U
	n, err := strconv.ParseFloat(number, 64)
	if err != nil {
		return 0, zero, fmt.Errorf("invalid number %q: %w", number, err)
	}
	u, err := parseUnit(unit)
	if err != nil {
		return 0, zero, err
	}
	return n, u, nil
}

// humanBytes formats n for logs. Values humanize cannot represent, such as
// negative or non-finite ones, are printed as plain numbers.
func humanBytes(n float64) string {
	if n < 0 || math.IsNaN(n) || n >= math.MaxUint64 {
		return strconv.FormatFloat(n, 'g', -1, 64)
	}
	return humanize.Bytes(uint64(n))
}

func (a *app) sizeFromURL(ctx context.Context, rawURL string) (float64, error) {
	conn, err := probe.Dial(ctx, rawURL, probe.WithConnectTimeout(a.cfg.Probe.ConnectTimeout))
	if err != nil {
		return 0, err
	}
	size, err := conn.ContentLength()
	if err != nil {
		return 0, err
	}
	if size < 0 {
		return 0, fmt.Errorf("%s did not report a Content-Length", rawURL)
	}

	log.Info("estimate").
		Str("url", rawURL).
		Str("size", humanize.Bytes(uint64(size))).
		Msg("Size read from URL")
	return float64(size), nil
}

func (a *app) sizeFromPutio(ctx context.Context, fileID int64) (float64, error) {
	client, err := a.putioClient()
	if err != nil {
		return 0, err
	}
	size, err := client.FileSize(ctx, fileID)
	if err != nil {
		return 0, err
	}

	log.Info("estimate").
		Int64("file_id", fileID).
		Str("size", humanize.Bytes(uint64(size))).
		Msg("Size read from put.io")
	return float64(size), nil
}

func (a *app) parseCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "parse DURATION",
		Short:   "Convert a duration like \"1d 2h 3m 4s\" back into seconds",
		Example: `  dltime parse 17m 4s`,
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			seconds, err := calc.ParseModulo(strings.Join(args, " "))
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), seconds)
			return nil
		},
	}
}

func (a *app) probeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "probe URL",
		Short: "Print the response headers of a URL",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			conn, err := probe.Dial(cmd.Context(), args[0], probe.WithConnectTimeout(a.cfg.Probe.ConnectTimeout))
			if err != nil {
				return err
			}
			headers, err := conn.Headers()
			if err != nil {
				return err
			}

			log.Info("probe").
				Str("url", conn.URL()).
				Int("status", conn.StatusCode()).
				Msg("Received response")
			return probe.PrintHeaders(cmd.OutOrStdout(), headers)
		},
	}
}

func (a *app) measureCmd() *cobra.Command {
	var (
		plain     bool
		putioFile int64
	)

	cmd := &cobra.Command{
		Use:   "measure [URL]",
		Short: "Sample the download speed of a URL and estimate the time left",
		Long: `Download the URL for a short sample window, then estimate how long
the rest would take at the sampled speed. With --putio-file the URL is
looked up on put.io.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			var target string
			switch {
			case cmd.Flags().Changed("putio-file") && len(args) == 0:
				client, err := a.putioClient()
				if err != nil {
					return err
				}
				if target, err = client.GetDownloadURL(ctx, putioFile); err != nil {
					return err
				}
			case !cmd.Flags().Changed("putio-file") && len(args) == 1:
				target = args[0]
			default:
				return errors.New("expected exactly one of URL or --putio-file")
			}

			meter := download.NewMeter(download.ConfigFrom(a.cfg.Measure))
			sample, err := meter.Measure(ctx, target)
			if err != nil {
				return err
			}
			out, err := sample.RemainingTime(!plain)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), out)
			return nil
		},
	}

	cmd.Flags().BoolVar(&plain, "plain", false, "Print whole seconds instead of days/hours/minutes")
	cmd.Flags().Int64Var(&putioFile, "putio-file", 0, "Measure this put.io file instead of a URL")
	return cmd
}
