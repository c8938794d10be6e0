package inspector

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"time"

	"github.com/hashicorp/go-hclog"
	"github.com/mark3labs/mcp-go/mcp"

	"github.com/cloudnook/mcpgw/internal/errors"
	"github.com/cloudnook/mcpgw/internal/gateway"
)

// Inspector validates JSON-RPC requests and executes them through a gateway backend.
// NewInspector should be used to create instances of Inspector.
type Inspector struct {
	backend gateway.Backend
	logger  hclog.Logger
	clock   func() time.Time
}

// Response is a JSON-RPC response: exactly one of Result and Error is set.
type Response struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      mcp.RequestId   `json:"id"`
	Result  json.RawMessage `json:"result,omitempty"`
	Error   *ResponseError  `json:"error,omitempty"`
}

// ResponseError is the error member of a JSON-RPC response.
type ResponseError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// Result is the outcome of executing a request.
type Result struct {
	// Response is the JSON-RPC response.
	Response Response `json:"response"`

	// Formatted is the indented rendering of Response.
	Formatted string `json:"formatted"`

	// ElapsedMs is how long execution took.
	ElapsedMs int64 `json:"elapsedMs"`
}

// OK reports whether the response carries a result.
func (r Result) OK() bool {
	return r.Response.Error == nil
}

// NewInspector creates an Inspector executing through backend.
func NewInspector(backend gateway.Backend, opt ...Option) (*Inspector, error) {
	if backend == nil {
		return nil, fmt.Errorf("backend cannot be nil")
	}

	opts, err := NewOptions(opt...)
	if err != nil {
		return nil, err
	}

	return &Inspector{
		backend: backend,
		logger:  opts.Logger.Named("inspector"),
		clock:   opts.Clock,
	}, nil
}

// Execute runs req against a server.
//
// Problems with the request itself, and failures reported by the server, are returned as a JSON-RPC error
// response with a nil error. An unreachable backend or unknown server is returned as an error.
func (i *Inspector) Execute(ctx context.Context, serverID string, req Request) (Result, error) {
	start := i.clock()

	resp, err := i.execute(ctx, serverID, req)
	if err != nil {
		return Result{}, err
	}

	formatted, err := json.MarshalIndent(resp, "", "  ")
	if err != nil {
		return Result{}, fmt.Errorf("error formatting response: %w", err)
	}

	elapsed := i.clock().Sub(start)
	i.logger.Debug("Executed request", "serverID", serverID, "method", req.Method, "ok", resp.Error == nil, "elapsed", elapsed)

	return Result{
		Response:  resp,
		Formatted: string(formatted),
		ElapsedMs: elapsed.Milliseconds(),
	}, nil
}

func (i *Inspector) execute(ctx context.Context, serverID string, req Request) (Response, error) {
	if err := req.Validate(); err != nil {
		code := mcp.INVALID_REQUEST
		if stderrors.Is(err, errors.ErrMethodNotSupported) {
			code = mcp.METHOD_NOT_FOUND
		}
		return errorResponse(req.ID, code, err.Error(), nil), nil
	}

	inv, err := req.Invocation()
	if err != nil {
		return errorResponse(req.ID, mcp.INVALID_PARAMS, err.Error(), nil), nil
	}

	if inv.Method == mcp.MethodToolsCall {
		resp, ok, err := i.checkToolArguments(ctx, serverID, req.ID, inv)
		if err != nil || !ok {
			return resp, err
		}
	}

	raw, err := i.backend.Invoke(ctx, serverID, inv)
	if err != nil {
		return i.failureResponse(req.ID, err)
	}

	return Response{JSONRPC: mcp.JSONRPC_VERSION, ID: req.ID, Result: raw}, nil
}

// checkToolArguments validates tools/call arguments against the tool's input schema.
// It returns ok=false with an error response when the call must not be dispatched.
func (i *Inspector) checkToolArguments(
	ctx context.Context,
	serverID string,
	id mcp.RequestId,
	inv gateway.Invocation,
) (Response, bool, error) {
	caps, err := i.backend.FetchCapabilities(ctx, serverID)
	if err != nil {
		resp, err := i.failureResponse(id, err)
		return resp, false, err
	}

	tool, ok := caps.Tool(inv.Name)
	if !ok {
		msg := fmt.Sprintf("%s: %s", errors.ErrToolNotFound, inv.Name)
		return errorResponse(id, mcp.INVALID_PARAMS, msg, nil), false, nil
	}

	if err := ValidateArguments(tool, inv.Arguments); err != nil {
		var argErr *ArgumentError
		if stderrors.As(err, &argErr) {
			return errorResponse(id, mcp.INVALID_PARAMS, err.Error(), argErr), false, nil
		}
		return errorResponse(id, mcp.INTERNAL_ERROR, err.Error(), nil), false, nil
	}

	return Response{}, true, nil
}

// failureResponse turns business failures into JSON-RPC errors and passes everything else through.
func (i *Inspector) failureResponse(id mcp.RequestId, err error) (Response, error) {
	f := gateway.AsFailure(err)

	switch f.Kind {
	case gateway.KindBusiness:
		var data any
		if f.TraceID != "" {
			data = map[string]string{"traceId": f.TraceID}
		}
		return errorResponse(id, mcp.INTERNAL_ERROR, f.Message, data), nil
	case gateway.KindMissingParameter:
		return errorResponse(id, mcp.INVALID_PARAMS, f.Message, nil), nil
	default:
		return Response{}, f
	}
}

func errorResponse(id mcp.RequestId, code int, msg string, data any) Response {
	return Response{
		JSONRPC: mcp.JSONRPC_VERSION,
		ID:      id,
		Error:   &ResponseError{Code: code, Message: msg, Data: data},
	}
}
