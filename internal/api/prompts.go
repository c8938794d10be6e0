package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/cloudnook/mcpgw/internal/domain"
)

// DomainPrompt wraps domain.Prompt for API conversion.
type DomainPrompt domain.Prompt

// DomainPromptArgument wraps domain.PromptArgument for API conversion.
type DomainPromptArgument domain.PromptArgument

// Prompts represents a collection of Prompt types.
type Prompts struct {
	Prompts []Prompt `json:"prompts"`
}

// Prompt represents a prompt or prompt template that the server offers.
type Prompt struct {
	// Name of the prompt or prompt template.
	Name string `json:"name"`

	// Description of what this prompt provides.
	Description string `json:"description,omitempty"`

	// Arguments for templating the prompt.
	Arguments []PromptArgument `json:"arguments,omitempty"`
}

// PromptArgument describes an argument that a prompt template can accept.
type PromptArgument struct {
	// Name of the argument.
	Name string `json:"name"`

	// Description of the argument.
	Description string `json:"description,omitempty"`

	// Whether this argument must be provided.
	Required bool `json:"required,omitempty"`
}

// PromptsResponse represents the wrapped API response for listing prompts.
type PromptsResponse struct {
	Body Prompts
}

// ToAPIType converts a domain prompt to an API prompt.
func (d DomainPrompt) ToAPIType() (Prompt, error) {
	var args []PromptArgument
	for _, a := range d.Arguments {
		arg, err := DomainPromptArgument(a).ToAPIType()
		if err != nil {
			return Prompt{}, err
		}
		args = append(args, arg)
	}

	return Prompt{
		Name:        d.Name,
		Description: d.Description,
		Arguments:   args,
	}, nil
}

// ToAPIType converts a domain prompt argument to an API prompt argument.
func (d DomainPromptArgument) ToAPIType() (PromptArgument, error) {
	return PromptArgument{
		Name:        d.Name,
		Description: d.Description,
		Required:    d.Required,
	}, nil
}

// RegisterPromptRoutes sets up prompt listing under a server.
func RegisterPromptRoutes(parentAPI huma.API, c Console) {
	tags := []string{"Prompts"}

	huma.Register(
		parentAPI,
		huma.Operation{
			OperationID: "listPrompts",
			Method:      http.MethodGet,
			Path:        "/{id}/prompts",
			Summary:     "List server prompts",
			Tags:        tags,
		},
		func(ctx context.Context, input *ServerRequest) (*PromptsResponse, error) {
			return handleServerPrompts(ctx, c, input.ID)
		},
	)
}

// handleServerPrompts returns the prompts a server advertises.
func handleServerPrompts(ctx context.Context, c Console, id string) (*PromptsResponse, error) {
	caps, err := c.Capabilities(ctx, id)
	if err != nil {
		return nil, err
	}

	prompts := make([]Prompt, 0, len(caps.Prompts))
	for _, p := range caps.Prompts {
		data, err := DomainPrompt(p).ToAPIType()
		if err != nil {
			return nil, err
		}
		prompts = append(prompts, data)
	}

	resp := &PromptsResponse{}
	resp.Body.Prompts = prompts

	return resp, nil
}
