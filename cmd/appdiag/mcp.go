package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/baikal/appdiag/internal/anonymize"
	"github.com/baikal/appdiag/internal/collector"
	"github.com/baikal/appdiag/internal/config"
	"github.com/baikal/appdiag/internal/export"
	"github.com/baikal/appdiag/internal/mcp"
	"github.com/baikal/appdiag/internal/report"
	"github.com/baikal/appdiag/internal/sampler"
	"github.com/baikal/appdiag/internal/sysinfo"
)

var mcpConfigPath string

// mcpCmd represents the mcp command
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start Model Context Protocol (MCP) server",
	Long: `Starts a JSON-RPC server implementing the Model Context Protocol (MCP)
over standard input/output. AI agents (e.g., Claude Desktop, Cursor) can
inspect captured diagnostics, fetch summaries, and trigger report exports.

While the server runs, the resource sampler keeps feeding the collector,
so get_summary and get_report always see fresh CPU/RAM samples.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		settings, err := config.Load(mcpConfigPath)
		if err != nil {
			return err
		}

		col := collector.New(collector.Config{
			Capacity:     settings.Capacity,
			ChannelDepth: settings.ChannelDepth,
		})
		col.SetEnabled(settings.Enabled)
		defer col.Close()

		if probe, err := sampler.NewProcessProbe(); err == nil {
			go func() {
				_ = sampler.New(col.Handle(), probe, settings.SampleInterval.Std()).Run(ctx)
			}()
		}

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

		srv := mcp.NewServer(version, builder, export.New())
		return srv.Start(ctx)
	},
}

func init() {
	mcpCmd.Flags().StringVar(&mcpConfigPath, "config", "", "Path to appdiag.toml")
}
