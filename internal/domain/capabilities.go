package domain

import (
	"errors"
	"fmt"
)

// Tool is a callable operation exposed by an MCP server.
type Tool struct {
	Name        string
	Description string

	// InputSchema is the JSON Schema describing the tool arguments.
	InputSchema map[string]any
}

// Resource is a readable item exposed by an MCP server.
type Resource struct {
	URI         string
	Name        string
	MIMEType    string
	Description string
}

// PromptArgument describes a single templating argument accepted by a Prompt.
type PromptArgument struct {
	Name        string
	Description string
	Required    bool
}

// Prompt is a prompt template exposed by an MCP server.
type Prompt struct {
	Name        string
	Description string
	Arguments   []PromptArgument
}

// Capabilities groups everything a single server advertises.
type Capabilities struct {
	Tools     []Tool
	Resources []Resource
	Prompts   []Prompt
}

// Tool returns the tool with the given name.
func (c Capabilities) Tool(name string) (Tool, bool) {
	for _, t := range c.Tools {
		if t.Name == name {
			return t, true
		}
	}
	return Tool{}, false
}

// Validate checks tool names and resource URIs are unique within the server.
func (c Capabilities) Validate() error {
	var errs []error

	tools := make(map[string]struct{}, len(c.Tools))
	for _, t := range c.Tools {
		if _, ok := tools[t.Name]; ok {
			errs = append(errs, fmt.Errorf("duplicate tool name: %s", t.Name))
			continue
		}
		tools[t.Name] = struct{}{}
	}

	uris := make(map[string]struct{}, len(c.Resources))
	for _, r := range c.Resources {
		if _, ok := uris[r.URI]; ok {
			errs = append(errs, fmt.Errorf("duplicate resource URI: %s", r.URI))
			continue
		}
		uris[r.URI] = struct{}{}
	}

	return errors.Join(errs...)
}
