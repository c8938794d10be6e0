package api

import (
	"context"
	"net/http"
	"slices"
	"strings"

	"github.com/danielgtaylor/huma/v2"

	"github.com/cloudnook/mcpgw/internal/domain"
)

const (
	// queryParamDetail is the name of the query parameter for detail level selection.
	queryParamDetail = "detail"

	// toolDetailFull returns all fields including the input schema.
	toolDetailFull toolDetailLevel = "full"

	// toolDetailMinimal returns only the name.
	toolDetailMinimal toolDetailLevel = "minimal"

	// toolDetailSummary returns name and description.
	toolDetailSummary toolDetailLevel = "summary"
)

// toolDetailLevel defines the amount of information to return about tools.
type toolDetailLevel string

// ServerCapabilityRequest represents the incoming API request for the capabilities of a server.
type ServerCapabilityRequest struct {
	ID     string `doc:"ID of the server"                         example:"srv-1"             path:"id"`
	Detail string `doc:"Amount of detail to return for each tool" enum:"minimal,summary,full" query:"detail" required:"false"`
}

// ToolView is a union constraint for all tool view types.
// This ensures type safety when using generic ToolsResponse.
type ToolView interface {
	ToolMinimal | ToolSummary | Tool
}

// ToolsResponseBody represents the body of a tools response.
type ToolsResponseBody[T ToolView] struct {
	Tools []T `json:"tools"`
}

// ToolsResponse represents a generic wrapped API response for tool collections.
// The type parameter T must be one of the ToolView types (ToolMinimal, ToolSummary, or Tool).
type ToolsResponse[T ToolView] struct {
	Body ToolsResponseBody[T]
}

// ToolMinimal represents minimal tool information.
type ToolMinimal struct {
	// Name of the tool.
	Name string `doc:"Name of the tool" json:"name"`
}

// ToolSummary represents summary tool information including name and description.
type ToolSummary struct {
	ToolMinimal

	// Description is a human-readable description of the tool.
	Description string `doc:"Description of what the tool does" json:"description"`
}

// Tool represents complete tool information.
type Tool struct {
	ToolSummary

	// InputSchema is JSONSchema defining the expected parameters for the tool.
	InputSchema *JSONSchema `doc:"Input parameters schema" json:"inputSchema,omitempty"`
}

// JSONSchema defines the structure for a JSON schema object.
type JSONSchema struct {
	// Type defines the type for this schema, e.g. "object".
	Type string `json:"type"`

	// Properties represents a property name and associated object definition.
	Properties map[string]any `json:"properties,omitempty"`

	// Required lists the (keys of) Properties that are required.
	Required []string `json:"required,omitempty"`
}

// domainTool wraps domain.Tool for conversion to Tool via ToAPIType.
type domainTool domain.Tool

// domainToolMinimal wraps Tool for projection to ToolMinimal via ToAPIType.
type domainToolMinimal Tool

// domainToolSummary wraps Tool for projection to ToolSummary via ToAPIType.
type domainToolSummary Tool

// Normalize handles case-insensitivity and trimming, providing a safe default.
func (t toolDetailLevel) Normalize() toolDetailLevel {
	normalized := toolDetailLevel(strings.ToLower(strings.TrimSpace(string(t))))
	switch normalized {
	case toolDetailMinimal, toolDetailSummary, toolDetailFull:
		return normalized
	default:
		return toolDetailFull // Safe default.
	}
}

// ToAPIType converts a wrapped domain type to Tool.
func (d domainTool) ToAPIType() (Tool, error) {
	var inputSchema *JSONSchema
	if len(d.InputSchema) > 0 {
		inputSchema = &JSONSchema{}
		inputSchema.Type, _ = d.InputSchema["type"].(string)
		inputSchema.Properties, _ = d.InputSchema["properties"].(map[string]any)
		inputSchema.Required = requiredProperties(d.InputSchema["required"])
	}

	return Tool{
		ToolSummary: ToolSummary{
			ToolMinimal: ToolMinimal{
				Name: strings.TrimSpace(d.Name),
			},
			Description: d.Description,
		},
		InputSchema: inputSchema,
	}, nil
}

// ToAPIType projects Tool to ToolMinimal.
func (t domainToolMinimal) ToAPIType() (ToolMinimal, error) {
	return ToolMinimal{
		Name: t.Name,
	}, nil
}

// ToAPIType projects Tool to ToolSummary.
func (t domainToolSummary) ToAPIType() (ToolSummary, error) {
	minimal, err := domainToolMinimal(t).ToAPIType()
	if err != nil {
		return ToolSummary{}, err
	}

	return ToolSummary{
		ToolMinimal: minimal,
		Description: t.Description,
	}, nil
}

// RegisterToolRoutes sets up tool listing under a server.
func RegisterToolRoutes(parentAPI huma.API, c Console) {
	tags := []string{"Tools"}

	huma.Register(
		parentAPI,
		huma.Operation{
			OperationID: "listTools",
			Method:      http.MethodGet,
			Path:        "/{id}/tools",
			Summary:     "List server tools",
			Description: "Returns tools with configurable detail level via ?detail= query parameter (minimal, summary, full)",
			Tags:        tags,
		},
		func(ctx context.Context, input *ServerCapabilityRequest) (*ToolsResponse[Tool], error) {
			return handleServerTools(ctx, c, input.ID)
		},
	)
}

// handleServerTools returns the tools a server advertises, ordered by name.
func handleServerTools(ctx context.Context, c Console, id string) (*ToolsResponse[Tool], error) {
	caps, err := c.Capabilities(ctx, id)
	if err != nil {
		return nil, err
	}

	tools := make([]Tool, 0, len(caps.Tools))
	for _, t := range caps.Tools {
		data, err := domainTool(t).ToAPIType()
		if err != nil {
			return nil, err
		}
		tools = append(tools, data)
	}
	slices.SortFunc(tools, func(a, b Tool) int {
		return strings.Compare(a.Name, b.Name)
	})

	resp := &ToolsResponse[Tool]{}
	resp.Body.Tools = tools

	return resp, nil
}

// Transformers returns the response transformers to install in the huma config, in the order they run.
func Transformers() []huma.Transformer {
	return []huma.Transformer{toolFieldSelectTransformer}
}

// toolFieldSelectTransformer trims tool lists according to ?detail=.
// Other response bodies pass through unchanged.
func toolFieldSelectTransformer(ctx huma.Context, _ string, v any) (any, error) {
	detailParam := ctx.Query(queryParamDetail)
	if detailParam == "" {
		detailParam = string(toolDetailFull)
	}

	detail := toolDetailLevel(detailParam).Normalize()
	if detail == toolDetailFull {
		return v, nil
	}

	// Huma passes the Body field to transformers, not the full response.
	body, ok := v.(ToolsResponseBody[Tool])
	if !ok {
		return v, nil // Not our type, pass through.
	}

	switch detail {
	case toolDetailMinimal:
		minimal := make([]ToolMinimal, len(body.Tools))
		for i, tool := range body.Tools {
			m, err := domainToolMinimal(tool).ToAPIType()
			if err != nil {
				return nil, err
			}
			minimal[i] = m
		}
		return ToolsResponseBody[ToolMinimal]{Tools: minimal}, nil

	case toolDetailSummary:
		summary := make([]ToolSummary, len(body.Tools))
		for i, tool := range body.Tools {
			sum, err := domainToolSummary(tool).ToAPIType()
			if err != nil {
				return nil, err
			}
			summary[i] = sum
		}
		return ToolsResponseBody[ToolSummary]{Tools: summary}, nil

	default:
		return v, nil
	}
}

// requiredProperties reads the "required" member of a schema, which decodes as []any from JSON.
func requiredProperties(v any) []string {
	switch req := v.(type) {
	case []string:
		return slices.Clone(req)
	case []any:
		out := make([]string, 0, len(req))
		for _, r := range req {
			if s, ok := r.(string); ok {
				out = append(out, s)
			}
		}
		return out
	default:
		return nil
	}
}
