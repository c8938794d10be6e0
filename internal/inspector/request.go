package inspector

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/cloudnook/mcpgw/internal/errors"
	"github.com/cloudnook/mcpgw/internal/gateway"
)

// Request is a JSON-RPC request as written by an operator.
type Request struct {
	JSONRPC string         `json:"jsonrpc"`
	ID      mcp.RequestId  `json:"id"`
	Method  string         `json:"method"`
	Params  map[string]any `json:"params,omitempty"`
}

// NewRequest returns a well-formed request for method.
func NewRequest(id any, method string, params map[string]any) Request {
	return Request{
		JSONRPC: mcp.JSONRPC_VERSION,
		ID:      mcp.NewRequestId(id),
		Method:  method,
		Params:  params,
	}
}

// ParseRequest decodes a JSON-RPC request.
func ParseRequest(data []byte) (Request, error) {
	var req Request

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&req); err != nil {
		return Request{}, fmt.Errorf("%w: %w", errors.ErrInvalidRequest, err)
	}

	return req, nil
}

// Validate checks the request envelope: version, identifier and a known method.
func (r Request) Validate() error {
	if r.JSONRPC != mcp.JSONRPC_VERSION {
		return fmt.Errorf("%w: jsonrpc must be %q", errors.ErrInvalidRequest, mcp.JSONRPC_VERSION)
	}
	if r.ID.IsNil() {
		return fmt.Errorf("%w: id is required", errors.ErrInvalidRequest)
	}
	if strings.TrimSpace(r.Method) == "" {
		return fmt.Errorf("%w: method is required", errors.ErrInvalidRequest)
	}

	m, ok := LookupMethod(r.Method)
	if !ok {
		return fmt.Errorf("%w: %s", errors.ErrMethodNotSupported, r.Method)
	}
	if !m.Executable {
		return fmt.Errorf("%w: %s", errors.ErrMethodNotSupported, r.Method)
	}

	return nil
}

// Invocation maps a validated request to the backend operation that executes it.
func (r Request) Invocation() (gateway.Invocation, error) {
	inv := gateway.Invocation{Method: mcp.MCPMethod(r.Method)}

	switch inv.Method {
	case mcp.MethodToolsCall, mcp.MethodPromptsGet:
		name, err := r.stringParam("name")
		if err != nil {
			return gateway.Invocation{}, err
		}
		args, err := r.objectParam("arguments")
		if err != nil {
			return gateway.Invocation{}, err
		}
		inv.Name = name
		inv.Arguments = args
	case mcp.MethodResourcesRead:
		uri, err := r.stringParam("uri")
		if err != nil {
			return gateway.Invocation{}, err
		}
		inv.URI = uri
	}

	return inv, nil
}

func (r Request) stringParam(key string) (string, error) {
	v, ok := r.Params[key]
	if !ok {
		return "", fmt.Errorf("%w: params.%s is required", errors.ErrInvalidArguments, key)
	}

	s, ok := v.(string)
	if !ok || strings.TrimSpace(s) == "" {
		return "", fmt.Errorf("%w: params.%s must be a non-empty string", errors.ErrInvalidArguments, key)
	}

	return strings.TrimSpace(s), nil
}

func (r Request) objectParam(key string) (map[string]any, error) {
	v, ok := r.Params[key]
	if !ok || v == nil {
		return map[string]any{}, nil
	}

	m, ok := v.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%w: params.%s must be an object", errors.ErrInvalidArguments, key)
	}

	return m, nil
}
