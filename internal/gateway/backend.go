package gateway

import (
	"context"
	"encoding/json"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/cloudnook/mcpgw/internal/domain"
)

// Backend is the narrow contract every view uses to reach the gateway backend.
// All methods return a *Failure (as error) on failure, and never notify.
type Backend interface {
	// FetchSummaries returns the monitoring summary of every registered server, in registration order.
	FetchSummaries(ctx context.Context) ([]domain.ServerSummary, error)

	// FetchDetail returns the full monitoring view of a single server.
	FetchDetail(ctx context.Context, serverID string, serverName string) (domain.ServerDetail, error)

	// RegisterServer registers a new MCP server with the gateway.
	RegisterServer(ctx context.Context, reg domain.Registration) (domain.ServerRecord, error)

	// FetchCapabilities returns the tools, resources and prompts a server exposes.
	FetchCapabilities(ctx context.Context, serverID string) (domain.Capabilities, error)

	// Invoke executes an MCP method against a server through the gateway inspector, returning the raw result.
	Invoke(ctx context.Context, serverID string, inv Invocation) (json.RawMessage, error)
}

// Invocation is a single MCP operation the gateway inspector can execute.
type Invocation struct {
	// Method is the MCP method to execute.
	Method mcp.MCPMethod

	// Name is the tool name for tools/call, or the prompt name for prompts/get.
	Name string

	// URI is the resource to read for resources/read.
	URI string

	// Arguments are passed to tools/call and prompts/get.
	Arguments map[string]any
}

// InvocableMethods returns the MCP methods a Backend can execute through Invoke.
func InvocableMethods() []mcp.MCPMethod {
	return []mcp.MCPMethod{
		mcp.MethodToolsList,
		mcp.MethodToolsCall,
		mcp.MethodResourcesList,
		mcp.MethodResourcesRead,
		mcp.MethodPromptsList,
		mcp.MethodPromptsGet,
	}
}
