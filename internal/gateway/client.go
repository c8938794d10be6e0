package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/hashicorp/go-hclog"
	"github.com/mark3labs/mcp-go/mcp"
	"golang.org/x/sync/errgroup"

	"github.com/cloudnook/mcpgw/internal/domain"
)

// maxResponseBytes bounds how much of a backend response body is read.
const maxResponseBytes = 10 << 20

// Client is the HTTP implementation of Backend.
// NewClient should be used to create instances of Client.
type Client struct {
	baseURL *url.URL
	http    *http.Client
	timeout time.Duration
	logger  hclog.Logger
}

var _ Backend = (*Client)(nil)

// NewClient creates a Client for the gateway backend at baseURL.
func NewClient(baseURL string, opt ...ClientOption) (*Client, error) {
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		return nil, fmt.Errorf("backend base URL is required")
	}

	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid backend base URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("backend base URL must use http or https, got %q", baseURL)
	}

	opts, err := NewClientOptions(opt...)
	if err != nil {
		return nil, err
	}

	return &Client{
		baseURL: u,
		http:    opts.HTTPClient,
		timeout: opts.Timeout,
		logger:  opts.Logger.Named("gateway"),
	}, nil
}

// FetchSummaries implements Backend.
func (c *Client) FetchSummaries(ctx context.Context) ([]domain.ServerSummary, error) {
	var dtos []serverSummaryDTO
	if err := c.do(ctx, http.MethodGet, c.endpoint(nil, "monitors", "summary"), nil, &dtos); err != nil {
		return nil, err
	}

	// A row that cannot be decoded is skipped so the remaining servers stay visible.
	summaries := make([]domain.ServerSummary, 0, len(dtos))
	for _, d := range dtos {
		s, err := d.ToDomain()
		if err != nil {
			c.logger.Warn("Skipping invalid server summary from backend", "serverID", d.ServerID, "error", err)
			continue
		}
		summaries = append(summaries, s)
	}

	return summaries, nil
}

// FetchDetail implements Backend.
// Missing identifiers fail before any request is made.
func (c *Client) FetchDetail(ctx context.Context, serverID string, serverName string) (domain.ServerDetail, error) {
	serverID, err := checkServerID(serverID)
	if err != nil {
		return domain.ServerDetail{}, err
	}
	serverName = strings.TrimSpace(serverName)
	if serverName == "" {
		return domain.ServerDetail{}, MissingParameter("serverName")
	}

	q := url.Values{"serverName": []string{serverName}}

	var dto *serverDetailDTO
	if err := c.do(ctx, http.MethodGet, c.endpoint(q, "monitors", serverID, "detail"), nil, &dto); err != nil {
		return domain.ServerDetail{}, err
	}
	if dto == nil {
		return domain.ServerDetail{}, NotFound(serverID)
	}

	detail, err := dto.ToDomain()
	if err != nil {
		return domain.ServerDetail{}, transportFailure("Invalid server detail from backend", err)
	}

	return detail, nil
}

// RegisterServer implements Backend.
func (c *Client) RegisterServer(ctx context.Context, reg domain.Registration) (domain.ServerRecord, error) {
	if err := reg.Validate(); err != nil {
		return domain.ServerRecord{}, &Failure{Kind: KindBusiness, Message: err.Error(), Err: err}
	}

	body, err := newRegisterRequest(reg)
	if err != nil {
		return domain.ServerRecord{}, &Failure{Kind: KindBusiness, Message: err.Error(), Err: err}
	}

	var dto *serverDTO
	if err := c.do(ctx, http.MethodPost, c.endpoint(nil, "servers"), body, &dto); err != nil {
		return domain.ServerRecord{}, err
	}

	// Older backends acknowledge without echoing the server.
	if dto == nil {
		return domain.ServerRecord{
			Name:            body.Name,
			Description:     body.Description,
			TransportType:   reg.TransportType,
			Endpoint:        body.Endpoint,
			Version:         body.Version,
			LifecycleStatus: domain.LifecycleConnecting,
			HealthStatus:    domain.HealthUnknown,
		}, nil
	}

	record, err := dto.ToDomain()
	if err != nil {
		return domain.ServerRecord{}, transportFailure("Invalid server from backend", err)
	}
	return record, nil
}

// FetchCapabilities implements Backend.
// The three capability lists are fetched concurrently; any failure fails the whole call.
func (c *Client) FetchCapabilities(ctx context.Context, serverID string) (domain.Capabilities, error) {
	serverID, err := checkServerID(serverID)
	if err != nil {
		return domain.Capabilities{}, err
	}

	var (
		tools     mcp.ListToolsResult
		resources mcp.ListResourcesResult
		prompts   mcp.ListPromptsResult
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return c.do(gctx, http.MethodGet, c.endpoint(nil, "servers", serverID, "tools"), nil, &tools)
	})
	g.Go(func() error {
		return c.do(gctx, http.MethodGet, c.endpoint(nil, "servers", serverID, "resources"), nil, &resources)
	})
	g.Go(func() error {
		return c.do(gctx, http.MethodGet, c.endpoint(nil, "servers", serverID, "prompts"), nil, &prompts)
	})
	if err := g.Wait(); err != nil {
		return domain.Capabilities{}, err
	}

	caps := domain.Capabilities{
		Tools:     make([]domain.Tool, 0, len(tools.Tools)),
		Resources: make([]domain.Resource, 0, len(resources.Resources)),
		Prompts:   make([]domain.Prompt, 0, len(prompts.Prompts)),
	}
	for _, t := range tools.Tools {
		caps.Tools = append(caps.Tools, wireTool(t).ToDomain())
	}
	for _, r := range resources.Resources {
		caps.Resources = append(caps.Resources, wireResource(r).ToDomain())
	}
	for _, p := range prompts.Prompts {
		caps.Prompts = append(caps.Prompts, wirePrompt(p).ToDomain())
	}

	if err := caps.Validate(); err != nil {
		c.logger.Warn("Server capabilities are inconsistent", "serverID", serverID, "error", err)
	}

	return caps, nil
}

// Invoke implements Backend.
func (c *Client) Invoke(ctx context.Context, serverID string, inv Invocation) (json.RawMessage, error) {
	serverID, err := checkServerID(serverID)
	if err != nil {
		return nil, err
	}

	var (
		method = http.MethodGet
		target *url.URL
		body   any
	)

	switch inv.Method {
	case mcp.MethodToolsList:
		target = c.endpoint(nil, "inspector", serverID, "tools", "list")
	case mcp.MethodResourcesList:
		target = c.endpoint(nil, "inspector", serverID, "resources", "list")
	case mcp.MethodPromptsList:
		target = c.endpoint(nil, "inspector", serverID, "prompts", "list")
	case mcp.MethodToolsCall:
		if strings.TrimSpace(inv.Name) == "" {
			return nil, MissingParameter("name")
		}
		method = http.MethodPost
		target = c.endpoint(nil, "inspector", serverID, "tools", "call")
		body = toolCallRequest{ToolName: inv.Name, Arguments: nonNilArgs(inv.Arguments)}
	case mcp.MethodPromptsGet:
		if strings.TrimSpace(inv.Name) == "" {
			return nil, MissingParameter("name")
		}
		method = http.MethodPost
		target = c.endpoint(nil, "inspector", serverID, "prompts", "get")
		body = promptGetRequest{PromptName: inv.Name, Arguments: nonNilArgs(inv.Arguments)}
	case mcp.MethodResourcesRead:
		if strings.TrimSpace(inv.URI) == "" {
			return nil, MissingParameter("uri")
		}
		target = c.endpoint(url.Values{"uri": []string{inv.URI}}, "inspector", serverID, "resources", "read")
	default:
		return nil, &Failure{Kind: KindBusiness, Message: fmt.Sprintf("Method %s cannot be executed by the gateway", inv.Method)}
	}

	var raw json.RawMessage
	if err := c.do(ctx, method, target, body, &raw); err != nil {
		return nil, err
	}
	return raw, nil
}

// checkServerID trims a server ID and rejects values that cannot name a single path segment.
// Dot segments are removed when the URL is joined, which would address a different endpoint.
func checkServerID(serverID string) (string, error) {
	serverID = strings.TrimSpace(serverID)
	switch serverID {
	case "":
		return "", MissingParameter("serverId")
	case ".", "..":
		return "", NotFound(serverID)
	}
	return serverID, nil
}

// endpoint builds a URL below the base URL from escaped path segments.
func (c *Client) endpoint(query url.Values, segments ...string) *url.URL {
	u := *c.baseURL
	escaped := make([]string, 0, len(segments))
	for _, s := range segments {
		escaped = append(escaped, url.PathEscape(s))
	}
	u = *u.JoinPath(escaped...)
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}
	return &u
}

// do performs a request, unwraps the envelope and decodes its data into out.
func (c *Client) do(ctx context.Context, method string, target *url.URL, body any, out any) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return transportFailure("Failed to encode request", err)
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, target.String(), reader)
	if err != nil {
		return transportFailure("Failed to build request", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Debug("Backend request failed", "method", method, "url", target.Redacted(), "error", err)
		return transportFailure("Network Error", err)
	}
	defer func() { _ = resp.Body.Close() }()

	payload, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return transportFailure("Failed to read response", err)
	}

	var env Envelope[json.RawMessage]
	if err := json.Unmarshal(payload, &env); err != nil || env.Code == "" {
		if resp.StatusCode >= http.StatusBadRequest {
			return &Failure{
				Kind:    KindTransport,
				Code:    strconv.Itoa(resp.StatusCode),
				Message: fmt.Sprintf("Backend responded with HTTP %d", resp.StatusCode),
				Err:     err,
			}
		}
		return transportFailure("Invalid response envelope", err)
	}

	c.logger.Trace("Backend response", "method", method, "url", target.Redacted(), "code", env.Code, "traceId", env.TraceID)

	if f := env.Failure(); f != nil {
		return f
	}

	if len(env.Data) == 0 || bytes.Equal(env.Data, []byte("null")) {
		return nil
	}
	if raw, ok := out.(*json.RawMessage); ok {
		*raw = env.Data
		return nil
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return transportFailure("Invalid response data", err)
	}

	return nil
}

func nonNilArgs(args map[string]any) map[string]any {
	if args == nil {
		return map[string]any{}
	}
	return args
}
