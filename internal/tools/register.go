package tools

import (
	"context"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/mmynk/gatherings/internal/metrics"
	"github.com/mmynk/gatherings/internal/service"
)

// Register attaches every gathering tool to the MCP server. A nil
// Metrics disables instrumentation.
func Register(server *mcp.Server, svc *service.GatheringService, m *metrics.Metrics) {
	addTool(server, CreateGatheringTool(), CreateGatheringHandler(svc), m)
	addTool(server, ListGatheringsTool(), ListGatheringsHandler(svc), m)
	addTool(server, ShowGatheringTool(), ShowGatheringHandler(svc), m)
	addTool(server, CloseGatheringTool(), CloseGatheringHandler(svc), m)
	addTool(server, DeleteGatheringTool(), DeleteGatheringHandler(svc), m)
	addTool(server, AddParticipantTool(), AddParticipantHandler(svc), m)
	addTool(server, RenameParticipantTool(), RenameParticipantHandler(svc), m)
	addTool(server, RemoveParticipantTool(), RemoveParticipantHandler(svc), m)
	addTool(server, AddExpenseTool(), AddExpenseHandler(svc), m)
	addTool(server, RecordPaymentTool(), RecordPaymentHandler(svc), m)
	addTool(server, GetBalancesTool(), GetBalancesHandler(svc), m)
	addTool(server, GetSettlementTool(), GetSettlementHandler(svc), m)
}

func addTool[In, Out any](server *mcp.Server, tool *mcp.Tool, handler mcp.ToolHandlerFor[In, Out], m *metrics.Metrics) {
	mcp.AddTool(server, tool, instrument(tool.Name, handler, m))
}

// instrument wraps a handler to record call counts and latency per
// tool.
func instrument[In, Out any](name string, handler mcp.ToolHandlerFor[In, Out], m *metrics.Metrics) mcp.ToolHandlerFor[In, Out] {
	if m == nil {
		return handler
	}
	return func(ctx context.Context, req *mcp.CallToolRequest, input In) (*mcp.CallToolResult, Out, error) {
		start := time.Now()
		result, output, err := handler(ctx, req, input)
		m.ObserveToolCall(name, err, time.Since(start))
		return result, output, err
	}
}
