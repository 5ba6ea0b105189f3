// appdiag — in-process diagnostics subsystem for the Baikal media viewer.
//
// Captures user actions, state transitions, internal operations, warnings,
// errors and periodic CPU/RAM samples into a bounded in-memory buffer, and
// exports a privacy-safe JSON report on demand. This binary is the
// development harness around the library; inside the viewer the same
// packages are embedded directly.
package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/baikal/appdiag/internal/anonymize"
	"github.com/baikal/appdiag/internal/collector"
	"github.com/baikal/appdiag/internal/config"
	"github.com/baikal/appdiag/internal/event"
	"github.com/baikal/appdiag/internal/export"
	"github.com/baikal/appdiag/internal/output"
	"github.com/baikal/appdiag/internal/report"
	"github.com/baikal/appdiag/internal/sampler"
	"github.com/baikal/appdiag/internal/sysinfo"
)

var version = "0.1.0"

func main() {
	rootCmd := &cobra.Command{
		Use:   "appdiag",
		Short: "Diagnostics capture and export for the Baikal media viewer",
		Long: `appdiag — diagnostics subsystem of the Baikal media viewer.

Events flow from instrumentation call sites through a non-blocking channel
into a bounded retained buffer. On demand the buffer is drained, anonymized
(paths become opaque tokens, exact sizes become coarse buckets), summarized,
and written atomically to a JSON report file or the clipboard.`,
		Version: version,
	}

	// --- demo command ---
	var (
		demoOutput    string
		demoClipboard bool
		demoDuration  time.Duration
		demoConfig    string
		demoQuiet     bool
		demoVerbose   bool
	)

	demoCmd := &cobra.Command{
		Use:   "demo",
		Short: "Run a synthetic viewing session and export a report",
		Long:  "Simulate instrumented viewer activity, sample resources for the given duration, then build and export the diagnostics report.",
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := config.Load(demoConfig)
			if err != nil {
				return err
			}
			progress := output.NewVerboseProgress(!demoQuiet, demoVerbose)

			col := collector.New(collector.Config{
				Capacity:     settings.Capacity,
				ChannelDepth: settings.ChannelDepth,
			})
			col.SetEnabled(settings.Enabled)
			defer col.Close()
			h := col.Handle()

			ctx, cancel := context.WithTimeout(cmd.Context(), demoDuration)
			defer cancel()

			if probe, err := sampler.NewProcessProbe(); err != nil {
				progress.Warn("resource sampling unavailable: %v", err)
			} else {
				go func() {
					_ = sampler.New(h, probe, settings.SampleInterval.Std()).Run(ctx)
				}()
			}

			progress.Log("simulating viewer session for %s", demoDuration)
			runDemoSession(ctx, h)

			anon, err := anonymize.New(append(anonymize.DefaultPatterns, settings.SensitivePatterns...))
			if err != nil {
				return err
			}
			builder := &report.Builder{
				Collector:  col,
				Anonymizer: anon,
				SysInfo:    sysinfo.Host{},
				Version:    version,
			}
			exp := export.New()

			if demoClipboard {
				rep, err := builder.Build(cmd.Context())
				if err != nil {
					return err
				}
				if err := exp.ExportToClipboard(rep, export.SystemClipboard{}); err != nil {
					return err
				}
				progress.Log("report copied to clipboard (%d events)", rep.Metadata.EventCount)
				return nil
			}

			dest := demoOutput
			if dest == "" && settings.ExportDir != "" {
				dest = filepath.Join(settings.ExportDir, export.GenerateFilename(time.Now()))
			}
			path, err := exp.Export(cmd.Context(), builder, dest)
			if err != nil {
				return err
			}
			progress.Log("report written: %s", path)
			return nil
		},
	}

	demoCmd.Flags().StringVarP(&demoOutput, "output", "o", "", "Report file path (default: report directory + generated name)")
	demoCmd.Flags().BoolVar(&demoClipboard, "clipboard", false, "Copy the report to the clipboard instead of a file")
	demoCmd.Flags().DurationVar(&demoDuration, "duration", 10*time.Second, "How long to run the synthetic session")
	demoCmd.Flags().StringVar(&demoConfig, "config", "", "Path to appdiag.toml")
	demoCmd.Flags().BoolVarP(&demoQuiet, "quiet", "q", false, "Suppress progress output")
	demoCmd.Flags().BoolVarP(&demoVerbose, "verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(demoCmd, mcpCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// runDemoSession drives the instrumentation surface the way the viewer
// would during a short browsing session, then waits out the remaining
// duration so the sampler can accumulate resource snapshots.
func runDemoSession(ctx context.Context, h collector.Handle) {
	h.LogState("startup", "cold start")
	h.LogAction("open-file", "/home/user/Pictures/holiday/beach.jpg")
	_ = collector.TimeOperation(h, "decode-image", func() error {
		time.Sleep(25 * time.Millisecond)
		return nil
	})
	h.LogOperation("render-frame", 16*time.Millisecond)
	h.LogAction("zoom", "2.0x")
	h.LogAction("open-file", "/home/user/Pictures/holiday/reef.heic")
	h.LogErrorTyped("viewer-decode-failed", event.DecodeError, map[string]string{
		"file":       "/home/user/Pictures/holiday/reef.heic",
		"size_bytes": fmt.Sprintf("%d", 5*1024*1024),
	})
	h.LogWarning("viewer-config-theme-missing", map[string]string{
		"path": "/home/user/.config/baikal/theme.toml",
	})
	h.LogState("slideshow", "12 items")

	<-ctx.Done()
}
