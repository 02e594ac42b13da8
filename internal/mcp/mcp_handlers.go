package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/huangsam/repostats/core"
	"github.com/huangsam/repostats/internal/contract"
	"github.com/huangsam/repostats/schema"
	"github.com/mark3labs/mcp-go/mcp"
)

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	baseCfg *contract.Config
}

// applyCommonParams overlays the shared tool parameters onto a config clone.
func (h *toolHandler) applyCommonParams(request mcp.CallToolRequest) (*contract.Config, error) {
	cfg := h.baseCfg.Clone()
	if p := request.GetString("paths", ""); p != "" {
		var patterns []string
		for _, part := range strings.Split(p, ",") {
			if part = strings.TrimSpace(part); part != "" {
				patterns = append(patterns, part)
			}
		}
		cfg.Patterns = patterns
	}
	if s := request.GetString("since", ""); s != "" {
		cfg.Since = s
	}
	if p := request.GetString("period", ""); p != "" {
		period := schema.Period(strings.ToLower(p))
		if _, ok := schema.ValidPeriods[period]; !ok {
			return nil, fmt.Errorf("invalid period '%s'. must be day, week, month", p)
		}
		cfg.Period = period
	}
	return cfg, nil
}

func (h *toolHandler) handleGetCommitSummary(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg, err := h.applyCommonParams(request)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid summary parameters: %v", err)), nil
	}

	session, err := core.RunAnalysis(ctx, cfg, contract.NewLocalGitClient())
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("analysis failed: %v", err)), nil
	}

	report, err := core.BuildSummaryReport(session, cfg.Period)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("analysis failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(summaryPayload(report), "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleGetPeriodBuckets(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg, err := h.applyCommonParams(request)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid bucket parameters: %v", err)), nil
	}

	session, err := core.RunAnalysis(ctx, cfg, contract.NewLocalGitClient())
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("analysis failed: %v", err)), nil
	}

	rows, err := session.Collection().GroupBy(cfg.Period)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("analysis failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(bucketPayload(rows), "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleGetTopContributors(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg, err := h.applyCommonParams(request)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid contributor parameters: %v", err)), nil
	}
	if l := request.GetInt("limit", 0); l > 0 {
		cfg.ResultLimit = l
	}

	session, err := core.RunAnalysis(ctx, cfg, contract.NewLocalGitClient())
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("analysis failed: %v", err)), nil
	}

	stats := session.Collection().ContributorSummary()
	if len(stats) > cfg.ResultLimit {
		stats = stats[:cfg.ResultLimit]
	}

	jsonData, _ := json.MarshalIndent(stats, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

// bucketRowPayload mirrors the JSON row shape of the buckets command.
type bucketRowPayload struct {
	PeriodStart  string `json:"period_start"`
	Contributor  string `json:"contributor"`
	Commits      int    `json:"commits"`
	LinesAdded   int    `json:"lines_added"`
	LinesDeleted int    `json:"lines_deleted"`
}

func bucketPayload(rows []schema.AggregatedRow) []bucketRowPayload {
	payload := make([]bucketRowPayload, len(rows))
	for i, r := range rows {
		payload[i] = bucketRowPayload{
			PeriodStart:  r.PeriodStartString(),
			Contributor:  r.Contributor,
			Commits:      r.Commits,
			LinesAdded:   r.LinesAdded,
			LinesDeleted: r.LinesDeleted,
		}
	}
	return payload
}

type summaryReportPayload struct {
	Repositories    int                      `json:"repositories"`
	Totals          schema.Totals            `json:"totals"`
	Period          schema.Period            `json:"period"`
	TopContributors []schema.ContributorStat `json:"top_contributors"`
	RecentBuckets   []bucketRowPayload       `json:"recent_buckets"`
}

func summaryPayload(report *schema.SummaryReport) summaryReportPayload {
	return summaryReportPayload{
		Repositories:    report.Repositories,
		Totals:          report.Totals,
		Period:          report.Period,
		TopContributors: report.TopContributors,
		RecentBuckets:   bucketPayload(report.RecentBuckets),
	}
}
