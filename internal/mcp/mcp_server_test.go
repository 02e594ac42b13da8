package mcp_test

import (
	"context"
	"testing"

	"github.com/huangsam/repostats/internal/contract"
	mcp_internal "github.com/huangsam/repostats/internal/mcp"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMCPServerHandlers_ValidationErrors(t *testing.T) {
	baseCfg := &contract.Config{
		Patterns:    []string{"."},
		Period:      "week",
		Workers:     1,
		ResultLimit: contract.DefaultResultLimit,
	}

	s := mcp_internal.NewMCPServer(baseCfg)

	ctx := context.Background()

	t.Run("get_commit_summary invalid period", func(t *testing.T) {
		tool := s.GetTool("get_commit_summary")
		require.NotNil(t, tool, "Tool get_commit_summary should exist")

		req := mcp.CallToolRequest{
			Params: mcp.CallToolParams{
				Name: "get_commit_summary",
				Arguments: map[string]any{
					"period": "fortnight", // Invalid
				},
			},
		}

		res, err := tool.Handler(ctx, req)
		require.NoError(t, err, "The MCP handler should not return a raw error for tool logic failures")
		assert.True(t, res.IsError, "The response should indicate an error state")
		assert.Contains(t, res.Content[0].(mcp.TextContent).Text, "invalid period")
	})

	t.Run("get_period_buckets invalid period", func(t *testing.T) {
		tool := s.GetTool("get_period_buckets")
		require.NotNil(t, tool, "Tool get_period_buckets should exist")

		req := mcp.CallToolRequest{
			Params: mcp.CallToolParams{
				Name: "get_period_buckets",
				Arguments: map[string]any{
					"paths":  "/tmp",
					"period": "YEAR", // Invalid
				},
			},
		}

		res, err := tool.Handler(ctx, req)
		require.NoError(t, err)
		assert.True(t, res.IsError, "The response should indicate an error state")
		assert.Contains(t, res.Content[0].(mcp.TextContent).Text, "invalid period")
	})

	t.Run("get_top_contributors unresolvable paths", func(t *testing.T) {
		tool := s.GetTool("get_top_contributors")
		require.NotNil(t, tool)

		req := mcp.CallToolRequest{
			Params: mcp.CallToolParams{
				Name: "get_top_contributors",
				Arguments: map[string]any{
					"paths": "/definitely/not/a/repo/*", // Matches nothing
				},
			},
		}

		res, err := tool.Handler(ctx, req)
		require.NoError(t, err)
		assert.True(t, res.IsError)
		assert.Contains(t, res.Content[0].(mcp.TextContent).Text, "analysis failed")
	})
}

func TestMCPServerTools_Registered(t *testing.T) {
	baseCfg := &contract.Config{Patterns: []string{"."}, Period: "week", Workers: 1}
	s := mcp_internal.NewMCPServer(baseCfg)

	for _, name := range []string{"get_commit_summary", "get_period_buckets", "get_top_contributors"} {
		assert.NotNil(t, s.GetTool(name), "Tool %s should be registered", name)
	}
}
