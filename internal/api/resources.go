package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/cloudnook/mcpgw/internal/domain"
)

// ServerRequest represents an incoming API request addressing a single server.
type ServerRequest struct {
	ID string `doc:"ID of the server" example:"srv-1" path:"id"`
}

// DomainResource wraps domain.Resource for API conversion.
type DomainResource domain.Resource

// Resources represents a collection of Resource types.
type Resources struct {
	Resources []Resource `json:"resources"`
}

// Resource represents a known resource.
type Resource struct {
	// URI of this resource.
	URI string `json:"uri"`

	// Name is a human-readable name for this resource.
	Name string `json:"name"`

	// Description of what this resource represents.
	Description string `json:"description,omitempty"`

	// MIMEType of this resource, if known.
	MIMEType string `json:"mimeType,omitempty"`
}

// ResourcesResponse represents the wrapped API response for listing resources.
type ResourcesResponse struct {
	Body Resources
}

// ToAPIType converts a domain resource to an API resource.
func (d DomainResource) ToAPIType() (Resource, error) {
	return Resource{
		URI:         d.URI,
		Name:        d.Name,
		Description: d.Description,
		MIMEType:    d.MIMEType,
	}, nil
}

// RegisterResourceRoutes sets up resource listing under a server.
func RegisterResourceRoutes(parentAPI huma.API, c Console) {
	tags := []string{"Resources"}

	huma.Register(
		parentAPI,
		huma.Operation{
			OperationID: "listResources",
			Method:      http.MethodGet,
			Path:        "/{id}/resources",
			Summary:     "List server resources",
			Tags:        tags,
		},
		func(ctx context.Context, input *ServerRequest) (*ResourcesResponse, error) {
			return handleServerResources(ctx, c, input.ID)
		},
	)
}

// handleServerResources returns the resources a server advertises.
func handleServerResources(ctx context.Context, c Console, id string) (*ResourcesResponse, error) {
	caps, err := c.Capabilities(ctx, id)
	if err != nil {
		return nil, err
	}

	resources := make([]Resource, 0, len(caps.Resources))
	for _, r := range caps.Resources {
		data, err := DomainResource(r).ToAPIType()
		if err != nil {
			return nil, err
		}
		resources = append(resources, data)
	}

	resp := &ResourcesResponse{}
	resp.Body.Resources = resources

	return resp, nil
}
