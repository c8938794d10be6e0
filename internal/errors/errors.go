// Package errors defines domain-level errors used throughout the application.
// These errors represent failures talking to the gateway backend, or in handling operator input,
// and are mapped to appropriate HTTP status codes at the API boundary.
//
// NOTE: Important for developers
// When adding a new error here, you MUST consider how it should be handled when returned from API endpoints.
//
// Unmapped errors will default to HTTP 500 Internal Server Error.
//
// Don't forget to:
// 1. Add your error to mapError (internal/daemon/api_server.go)
// 2. Add a test case to TestMapError (internal/daemon/api_server_test.go)
// 3. Consider whether console view states need to treat it as navigational (in-place) or transient (notification)
package errors

import (
	"errors"
)

var (
	// ErrBadRequest indicates that the client provided invalid input or made a malformed request.
	// Recommended to map to HTTP 400 Bad Request.
	ErrBadRequest = errors.New("bad request")

	// ErrTransport indicates a request to the gateway backend never completed,
	// or completed with a response that could not be understood.
	// Recommended to map to HTTP 502 Bad Gateway.
	ErrTransport = errors.New("gateway backend unreachable")

	// ErrBusiness indicates the gateway backend answered with a non-success envelope code.
	// Recommended to map to HTTP 502 Bad Gateway.
	ErrBusiness = errors.New("gateway backend rejected request")

	// ErrServerNotFound indicates that the requested MCP server is not registered with the gateway.
	// Recommended to map to HTTP 404 Not Found.
	ErrServerNotFound = errors.New("server not found")

	// ErrMissingParameter indicates a required request parameter (e.g. serverName) was not supplied.
	// Recommended to map to HTTP 400 Bad Request.
	ErrMissingParameter = errors.New("missing required parameter")

	// ErrToolNotFound indicates the inspector was asked to call a tool the server does not advertise.
	// Recommended to map to HTTP 404 Not Found.
	ErrToolNotFound = errors.New("tool not found")

	// ErrInvalidArguments indicates request parameters or tool arguments are missing or do not satisfy the tool input schema.
	// Recommended to map to HTTP 400 Bad Request.
	ErrInvalidArguments = errors.New("invalid arguments")

	// ErrMethodNotSupported indicates the inspector cannot execute the requested JSON-RPC method
	// through the gateway backend.
	// Recommended to map to HTTP 501 Not Implemented.
	ErrMethodNotSupported = errors.New("method not supported by gateway")

	// ErrInvalidRequest indicates a hand-built JSON-RPC request is malformed.
	// Recommended to map to HTTP 400 Bad Request.
	ErrInvalidRequest = errors.New("invalid JSON-RPC request")
)
