package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/baikal/appdiag/internal/export"
	"github.com/baikal/appdiag/internal/report"
)

// buildTimeout caps a single report build or export through the MCP surface.
const buildTimeout = 30 * time.Second

// handleGetSummary drains pending events and returns aggregate statistics
// without building or exporting a full report.
func (s *Server) handleGetSummary(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	s.builder.Collector.Drain()
	snap := s.builder.Collector.Snapshot()
	summary := report.Summarize(snap)

	jsonData, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		return errResult(fmt.Sprintf("json marshal failed: %v", err)), nil
	}
	return newTextResult(string(jsonData)), nil
}

// handleGetReport builds the full anonymized report and returns it inline.
func (s *Server) handleGetReport(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	ctx, cancel := context.WithTimeout(ctx, buildTimeout)
	defer cancel()

	rep, err := s.builder.Build(ctx)
	if err != nil {
		return errResult(fmt.Sprintf("build report failed: %v", err)), nil
	}
	jsonData, err := export.Marshal(rep)
	if err != nil {
		return errResult(fmt.Sprintf("json marshal failed: %v", err)), nil
	}
	return newTextResult(string(jsonData)), nil
}

// handleExportReport builds the report and writes it atomically to disk.
func (s *Server) handleExportReport(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	ctx, cancel := context.WithTimeout(ctx, buildTimeout)
	defer cancel()

	args := getArgs(request)
	path := stringArg(args, "path", "")

	written, err := s.exporter.Export(ctx, s.builder, path)
	if err != nil {
		return errResult(fmt.Sprintf("export failed: %v", err)), nil
	}

	result := map[string]interface{}{
		"path":    written,
		"state":   s.exporter.LastState().String(),
		"message": "Report written. The file is safe to attach to a support request; paths and sizes are anonymized.",
	}
	jsonData, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return errResult(fmt.Sprintf("json marshal failed: %v", err)), nil
	}
	return newTextResult(string(jsonData)), nil
}

// getArgs safely extracts the arguments map from a CallToolRequest.
// Returns an empty map if Arguments is nil or not a map.
func getArgs(request mcp.CallToolRequest) map[string]interface{} {
	if request.Params.Arguments == nil {
		return map[string]interface{}{}
	}
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return map[string]interface{}{}
	}
	return args
}

// stringArg extracts a string argument with a default value.
func stringArg(args map[string]interface{}, key, defaultVal string) string {
	val, ok := args[key]
	if !ok || val == nil {
		return defaultVal
	}
	s, ok := val.(string)
	if !ok || s == "" {
		return defaultVal
	}
	return s
}

// newTextResult creates a successful MCP tool result with text content.
func newTextResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.TextContent{
				Type: "text",
				Text: text,
			},
		},
	}
}

// errResult creates an MCP tool error result (IsError=true).
// This is returned as a tool-level error, not a transport-level JSON-RPC error.
func errResult(msg string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{
			mcp.TextContent{
				Type: "text",
				Text: msg,
			},
		},
	}
}
