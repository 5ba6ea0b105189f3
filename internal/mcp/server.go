// Package mcp exposes the diagnostics subsystem to AI agents over the
// Model Context Protocol. Transport is stdio only; there is no network
// listener.
package mcp

import (
	"context"
	"os"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/baikal/appdiag/internal/export"
	"github.com/baikal/appdiag/internal/report"
)

// Server wraps the MCP server instance and the diagnostics pipeline it
// serves.
type Server struct {
	mcpServer *server.MCPServer
	builder   *report.Builder
	exporter  *export.Exporter
}

// NewServer creates an MCP server with the diagnostics tools registered.
func NewServer(version string, builder *report.Builder, exporter *export.Exporter) *Server {
	s := &Server{
		builder:  builder,
		exporter: exporter,
	}

	m := server.NewMCPServer("appdiag", version, server.WithLogging())
	s.registerTools(m)
	s.mcpServer = m
	return s
}

// Start runs the server in stdio mode (blocking).
func (s *Server) Start(ctx context.Context) error {
	stdioServer := server.NewStdioServer(s.mcpServer)
	return stdioServer.Listen(ctx, os.Stdin, os.Stdout)
}

// registerTools adds all supported tools to the server.
func (s *Server) registerTools(m *server.MCPServer) {
	// Tool: get_summary
	summaryTool := mcp.NewTool("get_summary",
		mcp.WithDescription("Summarize captured diagnostics: per-kind event counts plus CPU/RAM statistics. Fast; exports nothing and discards nothing."),
	)
	m.AddTool(summaryTool, s.handleGetSummary)

	// Tool: get_report
	reportTool := mcp.NewTool("get_report",
		mcp.WithDescription("Build the full diagnostics report and return it as JSON. File paths and exact sizes are already anonymized."),
	)
	m.AddTool(reportTool, s.handleGetReport)

	// Tool: export_report
	exportTool := mcp.NewTool("export_report",
		mcp.WithDescription("Build the diagnostics report and write it atomically to a JSON file. Returns the path written."),
		mcp.WithString("path",
			mcp.Description("Destination file path. Defaults to the report directory with a generated filename."),
		),
	)
	m.AddTool(exportTool, s.handleExportReport)
}
