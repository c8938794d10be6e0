package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/mark3labs/mcp-go/mcp"

	"github.com/cloudnook/mcpgw/internal/inspector"
)

// InspectorMethodsRequest represents the incoming request for the method catalog.
type InspectorMethodsRequest struct {
	Query string `doc:"Case-insensitive search over method name and category" example:"tools" query:"q"`
}

// InspectorMethodsResponse is the response for GET /inspector/methods.
type InspectorMethodsResponse struct {
	Body struct {
		Categories []inspector.CategoryGroup `doc:"Matching methods grouped by category" json:"categories"`
	}
}

// InspectorRequestBody is a hand-built JSON-RPC request.
// Fields are optional here so that malformed requests are answered with a JSON-RPC error.
type InspectorRequestBody struct {
	JSONRPC string         `doc:"Must be 2.0"      example:"2.0"        json:"jsonrpc,omitempty"`
	ID      any            `doc:"Request ID"       json:"id,omitempty"`
	Method  string         `doc:"JSON-RPC method"  example:"tools/list" json:"method,omitempty"`
	Params  map[string]any `doc:"Method parameters" json:"params,omitempty"`
}

// InspectorExecuteRequest represents the incoming request to execute a JSON-RPC request against a server.
type InspectorExecuteRequest struct {
	ID   string `doc:"ID of the server" example:"srv-1" path:"id"`
	Body InspectorRequestBody
}

// InspectorExecuteResponse is the response for POST /inspector/{id}.
type InspectorExecuteResponse struct {
	Body inspector.Result
}

// ToDomain converts the body to an inspector request.
func (b InspectorRequestBody) ToDomain() inspector.Request {
	return inspector.Request{
		JSONRPC: b.JSONRPC,
		ID:      mcp.NewRequestId(b.ID),
		Method:  b.Method,
		Params:  b.Params,
	}
}

// RegisterInspectorRoutes sets up protocol inspector routes.
func RegisterInspectorRoutes(routerAPI huma.API, exec Executor, apiPathPrefix string) {
	inspectorAPI := huma.NewGroup(routerAPI, apiPathPrefix)
	tags := []string{"Inspector"}

	huma.Register(
		inspectorAPI,
		huma.Operation{
			OperationID: "listInspectorMethods",
			Method:      http.MethodGet,
			Path:        "/methods",
			Summary:     "Search the JSON-RPC method catalog",
			Tags:        tags,
		},
		func(ctx context.Context, input *InspectorMethodsRequest) (*InspectorMethodsResponse, error) {
			return handleInspectorMethods(input.Query)
		},
	)

	huma.Register(
		inspectorAPI,
		huma.Operation{
			OperationID: "executeInspectorRequest",
			Method:      http.MethodPost,
			Path:        "/{id}",
			Summary:     "Execute a JSON-RPC request against a server",
			Description: "Invalid requests and errors reported by the server are returned as a JSON-RPC error response.",
			Tags:        tags,
		},
		func(ctx context.Context, input *InspectorExecuteRequest) (*InspectorExecuteResponse, error) {
			return handleInspectorExecute(ctx, exec, input.ID, input.Body)
		},
	)
}

func handleInspectorMethods(query string) (*InspectorMethodsResponse, error) {
	resp := &InspectorMethodsResponse{}
	resp.Body.Categories = inspector.GroupByCategory(inspector.SearchMethods(query))
	return resp, nil
}

func handleInspectorExecute(
	ctx context.Context,
	exec Executor,
	serverID string,
	body InspectorRequestBody,
) (*InspectorExecuteResponse, error) {
	result, err := exec.Execute(ctx, serverID, body.ToDomain())
	if err != nil {
		return nil, err
	}

	resp := &InspectorExecuteResponse{}
	resp.Body = result

	return resp, nil
}
