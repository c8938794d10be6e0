package gateway

import (
	"bytes"
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/cloudnook/mcpgw/internal/domain"
)

// wireTimeLayout is the layout the backend uses for pre-formatted timestamps.
const wireTimeLayout = "2006-01-02 15:04:05"

// wireStatusUnhealthy is the backend server status with no lifecycle counterpart of the same name.
const wireStatusUnhealthy = "UNHEALTHY"

var uptimeUnits = regexp.MustCompile(`(\d+)\s*([dhms])`)

// serverSummaryDTO is the wire form of a server monitoring summary.
type serverSummaryDTO struct {
	ServerID      string   `json:"serverId"`
	ServerName    string   `json:"serverName"`
	Description   string   `json:"description"`
	Status        string   `json:"status"`
	HealthStatus  string   `json:"healthStatus"`
	TransportType string   `json:"transportType"`
	Endpoint      string   `json:"endpoint"`
	TotalRequests *int64   `json:"totalRequests"`
	AvgLatency    *float64 `json:"avgLatency"`
	Uptime        *int64   `json:"uptime"`
	SuccessRate   *float64 `json:"successRate"`
}

// serverDetailDTO is the wire form of a server detail.
// Uptime is either a number of seconds or a pre-formatted duration, depending on the backend version.
type serverDetailDTO struct {
	ServerID          string          `json:"serverId"`
	ServerName        string          `json:"serverName"`
	Description       string          `json:"description"`
	Status            string          `json:"status"`
	HealthStatus      string          `json:"healthStatus"`
	TransportType     string          `json:"transportType"`
	Endpoint          string          `json:"endpoint"`
	Version           string          `json:"version"`
	RegisterTime      string          `json:"registerTime"`
	Uptime            json.RawMessage `json:"uptime"`
	LastHeartbeat     string          `json:"lastHeartbeat"`
	TotalRequests     *int64          `json:"totalRequests"`
	SuccessRequests   *int64          `json:"successRequests"`
	FailedRequests    *int64          `json:"failedRequests"`
	SuccessRate       *float64        `json:"successRate"`
	FailureRate       *float64        `json:"failureRate"`
	AvgLatency        *float64        `json:"avgLatency"`
	MinLatency        *float64        `json:"minLatency"`
	MaxLatency        *float64        `json:"maxLatency"`
	ActiveConnections *int64          `json:"activeConnections"`
}

// serverDTO is the wire form of a registered server.
type serverDTO struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Description   string `json:"description"`
	Status        string `json:"status"`
	TransportType string `json:"transportType"`
	Endpoint      string `json:"endpoint"`
	Version       string `json:"version"`
}

// registerRequest is the body of a server registration.
type registerRequest struct {
	Name          string `json:"name"`
	Description   string `json:"description,omitempty"`
	TransportType string `json:"transportType"`
	Endpoint      string `json:"endpoint,omitempty"`
	Version       string `json:"version,omitempty"`
}

// toolCallRequest is the body of an inspector tools/call.
type toolCallRequest struct {
	ToolName  string         `json:"toolName"`
	Arguments map[string]any `json:"arguments"`
}

// promptGetRequest is the body of an inspector prompts/get.
type promptGetRequest struct {
	PromptName string         `json:"promptName"`
	Arguments  map[string]any `json:"arguments"`
}

type (
	wireTool     mcp.Tool
	wireResource mcp.Resource
	wirePrompt   mcp.Prompt
)

func newRegisterRequest(reg domain.Registration) (registerRequest, error) {
	t, err := domain.ParseTransportType(string(reg.TransportType))
	if err != nil {
		return registerRequest{}, err
	}

	return registerRequest{
		Name:          strings.TrimSpace(reg.Name),
		Description:   strings.TrimSpace(reg.Description),
		TransportType: t.Wire(),
		Endpoint:      strings.TrimSpace(reg.Endpoint),
		Version:       strings.TrimSpace(reg.Version),
	}, nil
}

// ToDomain converts the wire summary, rejecting unrecognized enum values.
func (d serverSummaryDTO) ToDomain() (domain.ServerSummary, error) {
	record, err := toRecord(d.ServerID, d.ServerName, d.Description, d.Status, d.HealthStatus, d.TransportType, d.Endpoint)
	if err != nil {
		return domain.ServerSummary{}, err
	}

	summary := domain.ServerSummary{Server: record}
	if d.TotalRequests == nil && d.AvgLatency == nil && d.Uptime == nil && d.SuccessRate == nil {
		return summary, nil
	}

	m := &domain.MetricsSnapshot{
		TotalRequests: deref(d.TotalRequests),
		AvgLatencyMs:  deref(d.AvgLatency),
		MinLatencyMs:  deref(d.AvgLatency),
		MaxLatencyMs:  deref(d.AvgLatency),
		UptimeSeconds: deref(d.Uptime),
	}
	if m.TotalRequests > 0 {
		m.SuccessRatePercent = deref(d.SuccessRate)
		m.FailureRatePercent = 100 - m.SuccessRatePercent
	}
	summary.Metrics = m

	return summary, nil
}

// ToDomain converts the wire detail, rejecting unrecognized enum values.
func (d serverDetailDTO) ToDomain() (domain.ServerDetail, error) {
	record, err := toRecord(d.ServerID, d.ServerName, d.Description, d.Status, d.HealthStatus, d.TransportType, d.Endpoint)
	if err != nil {
		return domain.ServerDetail{}, err
	}
	record.Version = strings.TrimSpace(d.Version)
	record.RegisteredAt = parseWireTime(d.RegisterTime)

	uptimeSeconds, uptimeText := parseUptime(d.Uptime)

	detail := domain.ServerDetail{
		Server:        record,
		RegisterTime:  strings.TrimSpace(d.RegisterTime),
		Uptime:        uptimeText,
		LastHeartbeat: strings.TrimSpace(d.LastHeartbeat),
	}

	if d.TotalRequests == nil && d.SuccessRequests == nil && d.FailedRequests == nil && d.AvgLatency == nil {
		return detail, nil
	}

	m := &domain.MetricsSnapshot{
		TotalRequests:      deref(d.TotalRequests),
		SuccessRequests:    deref(d.SuccessRequests),
		FailedRequests:     deref(d.FailedRequests),
		AvgLatencyMs:       deref(d.AvgLatency),
		MinLatencyMs:       deref(d.MinLatency),
		MaxLatencyMs:       deref(d.MaxLatency),
		SuccessRatePercent: deref(d.SuccessRate),
		FailureRatePercent: deref(d.FailureRate),
		UptimeSeconds:      uptimeSeconds,
		ActiveConnections:  d.ActiveConnections,
		LastHeartbeat:      parseWireTime(d.LastHeartbeat),
	}
	if m.TotalRequests > 0 && d.SuccessRate == nil && d.FailureRate == nil {
		m.SuccessRatePercent = float64(m.SuccessRequests) * 100 / float64(m.TotalRequests)
		m.FailureRatePercent = float64(m.FailedRequests) * 100 / float64(m.TotalRequests)
	}
	detail.Metrics = m

	return detail, nil
}

// ToDomain converts the registered server returned by the backend.
func (d serverDTO) ToDomain() (domain.ServerRecord, error) {
	record, err := toRecord(d.ID, d.Name, d.Description, d.Status, "", d.TransportType, d.Endpoint)
	if err != nil {
		return domain.ServerRecord{}, err
	}
	record.Version = strings.TrimSpace(d.Version)
	return record, nil
}

// ToDomain converts an MCP tool to its domain descriptor.
func (t wireTool) ToDomain() domain.Tool {
	schema := map[string]any{}

	switch {
	case len(t.RawInputSchema) > 0:
		_ = json.Unmarshal(t.RawInputSchema, &schema)
	default:
		if t.InputSchema.Type != "" {
			schema["type"] = t.InputSchema.Type
		}
		if t.InputSchema.Properties != nil {
			schema["properties"] = t.InputSchema.Properties
		}
		if len(t.InputSchema.Required) > 0 {
			required := make([]any, 0, len(t.InputSchema.Required))
			for _, r := range t.InputSchema.Required {
				required = append(required, r)
			}
			schema["required"] = required
		}
	}

	return domain.Tool{
		Name:        t.Name,
		Description: t.Description,
		InputSchema: schema,
	}
}

// ToDomain converts an MCP resource to its domain descriptor.
func (r wireResource) ToDomain() domain.Resource {
	return domain.Resource{
		URI:         r.URI,
		Name:        r.Name,
		MIMEType:    r.MIMEType,
		Description: r.Description,
	}
}

// ToDomain converts an MCP prompt to its domain descriptor.
func (p wirePrompt) ToDomain() domain.Prompt {
	args := make([]domain.PromptArgument, 0, len(p.Arguments))
	for _, a := range p.Arguments {
		args = append(args, domain.PromptArgument{
			Name:        a.Name,
			Description: a.Description,
			Required:    a.Required,
		})
	}

	return domain.Prompt{
		Name:        p.Name,
		Description: p.Description,
		Arguments:   args,
	}
}

func toRecord(id, name, description, status, health, transport, endpoint string) (domain.ServerRecord, error) {
	lifecycle, err := parseWireLifecycle(status)
	if err != nil {
		return domain.ServerRecord{}, fmt.Errorf("server %q: %w", id, err)
	}

	h, err := domain.ParseHealthStatus(health)
	if err != nil {
		return domain.ServerRecord{}, fmt.Errorf("server %q: %w", id, err)
	}
	if h == domain.HealthUnknown && isWireUnhealthy(status) {
		h = domain.HealthUnhealthy
	}

	t, err := domain.ParseTransportType(transport)
	if err != nil {
		return domain.ServerRecord{}, fmt.Errorf("server %q: %w", id, err)
	}

	return domain.ServerRecord{
		ID:              id,
		Name:            strings.TrimSpace(name),
		TransportType:   t,
		Endpoint:        strings.TrimSpace(endpoint),
		LifecycleStatus: lifecycle,
		HealthStatus:    h,
		Description:     strings.TrimSpace(description),
	}, nil
}

// parseWireLifecycle parses a backend server status.
// The backend reports a server that lost its connection as UNHEALTHY, which is the disconnected lifecycle state.
func parseWireLifecycle(status string) (domain.LifecycleStatus, error) {
	if isWireUnhealthy(status) {
		return domain.LifecycleDisconnected, nil
	}
	return domain.ParseLifecycleStatus(status)
}

func isWireUnhealthy(status string) bool {
	return strings.EqualFold(strings.TrimSpace(status), wireStatusUnhealthy)
}

// parseWireTime accepts the backend's formatted layout or RFC 3339, returning nil for anything else.
func parseWireTime(s string) *time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}

	for _, layout := range []string{wireTimeLayout, time.RFC3339Nano} {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return &t
		}
	}
	return nil
}

// parseUptime reads an uptime that is either a JSON number of seconds or a formatted string such as "15d 7h 23m".
// It returns the seconds (0 when unknown) and the formatted text (empty when the uptime was numeric).
func parseUptime(raw json.RawMessage) (int64, string) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return 0, ""
	}

	var seconds float64
	if err := json.Unmarshal(raw, &seconds); err == nil {
		return int64(seconds), ""
	}

	var text string
	if err := json.Unmarshal(raw, &text); err != nil {
		return 0, ""
	}
	text = strings.TrimSpace(text)

	var total int64
	for _, m := range uptimeUnits.FindAllStringSubmatch(text, -1) {
		n, err := strconv.ParseInt(m[1], 10, 64)
		if err != nil {
			continue
		}
		switch m[2] {
		case "d":
			total += n * 86400
		case "h":
			total += n * 3600
		case "m":
			total += n * 60
		case "s":
			total += n
		}
	}
	return total, text
}

func deref[T int64 | float64](v *T) T {
	if v == nil {
		return 0
	}
	return *v
}
