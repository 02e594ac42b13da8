// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"github.com/huangsam/repostats/internal/contract"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// NewMCPServer initializes and configures the Repostats MCP server without starting it.
// This is exposed for unit testing.
func NewMCPServer(baseCfg *contract.Config) *server.MCPServer {
	s := server.NewMCPServer(
		"Repostats Analysis Server",
		"1.0.0",
		server.WithLogging(),
	)

	h := &toolHandler{
		baseCfg: baseCfg,
	}

	// --- 1. Tool: get_commit_summary ---
	s.AddTool(mcp.NewTool("get_commit_summary",
		mcp.WithDescription("Summarize commit activity across one or more Git repositories: totals, top contributors and recent buckets."),
		mcp.WithString("paths", mcp.Description("Comma-separated repository path patterns (defaults to current directory if not specified).")),
		mcp.WithString("since", mcp.Description("Only include commits after this date. Accepts git's date grammar, e.g. '2024-01-01' or '1 year ago'.")),
		mcp.WithString("period", mcp.Description("Grouping granularity (day, week, month). Defaults to 'week'."), mcp.Enum("day", "week", "month")),
	), h.handleGetCommitSummary)

	// --- 2. Tool: get_period_buckets ---
	s.AddTool(mcp.NewTool("get_period_buckets",
		mcp.WithDescription("Group commit activity into per-period, per-contributor buckets."),
		mcp.WithString("paths", mcp.Description("Comma-separated repository path patterns.")),
		mcp.WithString("since", mcp.Description("Only include commits after this date.")),
		mcp.WithString("period", mcp.Description("Grouping granularity (day, week, month)."), mcp.Enum("day", "week", "month")),
	), h.handleGetPeriodBuckets)

	// --- 3. Tool: get_top_contributors ---
	s.AddTool(mcp.NewTool("get_top_contributors",
		mcp.WithDescription("Rank contributors by commit count across one or more Git repositories."),
		mcp.WithString("paths", mcp.Description("Comma-separated repository path patterns.")),
		mcp.WithString("since", mcp.Description("Only include commits after this date.")),
		mcp.WithNumber("limit", mcp.Description("Limit the number of contributors returned.")),
	), h.handleGetTopContributors)

	return s
}

// StartMCPServer starts the Repostats MCP server.
func StartMCPServer(_ context.Context, baseCfg *contract.Config) error {
	s := NewMCPServer(baseCfg)
	return server.ServeStdio(s)
}
