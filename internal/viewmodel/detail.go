package viewmodel

import (
	"fmt"
	"sort"
	"strings"

	"github.com/cloudnook/mcpgw/internal/domain"
)

// DetailView is the formatted content of the server detail page.
type DetailView struct {
	ID                string        `json:"id"                yaml:"id"`
	Name              string        `json:"name"              yaml:"name"`
	Description       string        `json:"description"       yaml:"description"`
	Transport         string        `json:"transport"         yaml:"transport"`
	Endpoint          string        `json:"endpoint"          yaml:"endpoint"`
	Version           string        `json:"version"           yaml:"version"`
	Lifecycle         StatusDisplay `json:"lifecycle"         yaml:"lifecycle"`
	Health            StatusDisplay `json:"health"            yaml:"health"`
	RegisteredAt      string        `json:"registeredAt"      yaml:"registeredAt"`
	LastHeartbeat     string        `json:"lastHeartbeat"     yaml:"lastHeartbeat"`
	Uptime            string        `json:"uptime"            yaml:"uptime"`
	TotalRequests     string        `json:"totalRequests"     yaml:"totalRequests"`
	SuccessRequests   string        `json:"successRequests"   yaml:"successRequests"`
	FailedRequests    string        `json:"failedRequests"    yaml:"failedRequests"`
	SuccessRate       string        `json:"successRate"       yaml:"successRate"`
	FailureRate       string        `json:"failureRate"       yaml:"failureRate"`
	AvgLatency        string        `json:"avgLatency"        yaml:"avgLatency"`
	MinLatency        string        `json:"minLatency"        yaml:"minLatency"`
	MaxLatency        string        `json:"maxLatency"        yaml:"maxLatency"`
	ActiveConnections string        `json:"activeConnections" yaml:"activeConnections"`
}

// CapabilitiesView is the formatted content of the capability tabs on the detail page.
type CapabilitiesView struct {
	Tools     []ToolView     `json:"tools"     yaml:"tools"`
	Resources []ResourceView `json:"resources" yaml:"resources"`
	Prompts   []PromptView   `json:"prompts"   yaml:"prompts"`
}

// ToolView describes a tool for display.
type ToolView struct {
	Name        string   `json:"name"        yaml:"name"`
	Description string   `json:"description" yaml:"description"`
	Parameters  []string `json:"parameters"  yaml:"parameters"`
	Required    []string `json:"required"    yaml:"required"`
}

// ResourceView describes a resource for display.
type ResourceView struct {
	URI         string `json:"uri"         yaml:"uri"`
	Name        string `json:"name"        yaml:"name"`
	MIMEType    string `json:"mimeType"    yaml:"mimeType"`
	Description string `json:"description" yaml:"description"`
}

// PromptView describes a prompt for display.
type PromptView struct {
	Name        string `json:"name"        yaml:"name"`
	Description string `json:"description" yaml:"description"`
	Arguments   string `json:"arguments"   yaml:"arguments"`
}

// BuildDetail formats a server detail for display.
func (b *Builder) BuildDetail(d domain.ServerDetail) DetailView {
	health := b.ResolveHealth(domain.ServerSummary{Server: d.Server, Metrics: d.Metrics})

	v := DetailView{
		ID:                d.Server.ID,
		Name:              Text(d.Server.Name),
		Description:       Text(d.Server.Description),
		Transport:         d.Server.TransportType.String(),
		Endpoint:          Text(d.Server.Endpoint),
		Version:           Text(d.Server.Version),
		Lifecycle:         LifecycleDisplay(d.Server.LifecycleStatus),
		Health:            Display(health),
		RegisteredAt:      FormatTime(d.Server.RegisteredAt),
		LastHeartbeat:     NotAvailable,
		Uptime:            Placeholder,
		TotalRequests:     Placeholder,
		SuccessRequests:   Placeholder,
		FailedRequests:    Placeholder,
		SuccessRate:       Placeholder,
		FailureRate:       Placeholder,
		AvgLatency:        Placeholder,
		MinLatency:        Placeholder,
		MaxLatency:        Placeholder,
		ActiveConnections: Placeholder,
	}

	if v.RegisteredAt == NotAvailable {
		v.RegisteredAt = Text(d.RegisterTime)
	}

	m := d.Metrics
	if m == nil {
		v.Uptime = textOr(d.Uptime, Placeholder)
		v.LastHeartbeat = Text(d.LastHeartbeat)
		return v
	}

	v.LastHeartbeat = FormatTime(m.LastHeartbeat)
	if v.LastHeartbeat == NotAvailable {
		v.LastHeartbeat = Text(d.LastHeartbeat)
	}

	v.Uptime = FormatUptime(m.UptimeSeconds)
	if m.UptimeSeconds <= 0 {
		v.Uptime = textOr(d.Uptime, v.Uptime)
	}

	v.TotalRequests = FormatCount(m.TotalRequests)
	v.SuccessRequests = FormatCount(m.SuccessRequests)
	v.FailedRequests = FormatCount(m.FailedRequests)
	v.ActiveConnections = FormatOptionalCount(m.ActiveConnections)

	if m.HasData() {
		v.SuccessRate = FormatPercent(m.SuccessRatePercent)
		v.FailureRate = FormatPercent(m.FailureRate())
		v.AvgLatency = FormatLatency(m.AvgLatencyMs)
		v.MinLatency = FormatLatency(m.MinLatencyMs)
		v.MaxLatency = FormatLatency(m.MaxLatencyMs)
	}

	return v
}

// BuildCapabilities formats the capabilities of a server for display, preserving order.
func BuildCapabilities(c domain.Capabilities) CapabilitiesView {
	v := CapabilitiesView{
		Tools:     make([]ToolView, 0, len(c.Tools)),
		Resources: make([]ResourceView, 0, len(c.Resources)),
		Prompts:   make([]PromptView, 0, len(c.Prompts)),
	}

	for _, t := range c.Tools {
		params, required := schemaParameters(t.InputSchema)
		v.Tools = append(v.Tools, ToolView{
			Name:        t.Name,
			Description: Text(t.Description),
			Parameters:  params,
			Required:    required,
		})
	}

	for _, r := range c.Resources {
		v.Resources = append(v.Resources, ResourceView{
			URI:         r.URI,
			Name:        Text(r.Name),
			MIMEType:    Text(r.MIMEType),
			Description: Text(r.Description),
		})
	}

	for _, p := range c.Prompts {
		v.Prompts = append(v.Prompts, PromptView{
			Name:        p.Name,
			Description: Text(p.Description),
			Arguments:   promptArguments(p.Arguments),
		})
	}

	return v
}

// schemaParameters returns the sorted property names of a JSON schema object and those marked required.
func schemaParameters(schema map[string]any) ([]string, []string) {
	params := []string{}
	required := []string{}

	if props, ok := schema["properties"].(map[string]any); ok {
		for name := range props {
			params = append(params, name)
		}
		sort.Strings(params)
	}

	switch req := schema["required"].(type) {
	case []any:
		for _, r := range req {
			if s, ok := r.(string); ok {
				required = append(required, s)
			}
		}
	case []string:
		required = append(required, req...)
	}

	return params, required
}

func promptArguments(args []domain.PromptArgument) string {
	if len(args) == 0 {
		return Placeholder
	}

	parts := make([]string, 0, len(args))
	for _, a := range args {
		if a.Required {
			parts = append(parts, fmt.Sprintf("%s*", a.Name))
			continue
		}
		parts = append(parts, a.Name)
	}
	return strings.Join(parts, ", ")
}

func textOr(s string, fallback string) string {
	if strings.TrimSpace(s) == "" {
		return fallback
	}
	return strings.TrimSpace(s)
}
