// Package inspector executes hand-built JSON-RPC requests against MCP servers through the gateway.
package inspector

import (
	"slices"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/cloudnook/mcpgw/internal/filter"
	"github.com/cloudnook/mcpgw/internal/gateway"
)

const (
	CategoryLifecycle Category = "lifecycle"
	CategoryTools     Category = "tools"
	CategoryPrompts   Category = "prompts"
	CategoryResources Category = "resources"
	CategoryLogging   Category = "logging"
)

// methodShutdown is not part of the MCP method set but is offered by the console for completeness.
const methodShutdown = "shutdown"

// Category groups related methods.
type Category string

// Method describes a JSON-RPC method the inspector knows about.
type Method struct {
	Name        string   `json:"name"        yaml:"name"`
	Category    Category `json:"category"    yaml:"category"`
	Description string   `json:"description" yaml:"description"`

	// Executable is true when the gateway can run the method.
	Executable bool `json:"executable" yaml:"executable"`
}

// CategoryGroup is a category and its methods, in catalog order.
type CategoryGroup struct {
	Category Category `json:"category" yaml:"category"`
	Methods  []Method `json:"methods"  yaml:"methods"`
}

var catalog = []Method{
	{Name: string(mcp.MethodInitialize), Category: CategoryLifecycle, Description: "Initialize the connection"},
	{Name: string(mcp.MethodPing), Category: CategoryLifecycle, Description: "Health check"},
	{Name: methodShutdown, Category: CategoryLifecycle, Description: "Gracefully shutdown"},
	{Name: string(mcp.MethodToolsList), Category: CategoryTools, Description: "List available tools"},
	{Name: string(mcp.MethodToolsCall), Category: CategoryTools, Description: "Execute a tool"},
	{Name: string(mcp.MethodPromptsList), Category: CategoryPrompts, Description: "List available prompts"},
	{Name: string(mcp.MethodPromptsGet), Category: CategoryPrompts, Description: "Get prompt template"},
	{Name: string(mcp.MethodResourcesList), Category: CategoryResources, Description: "List available resources"},
	{Name: string(mcp.MethodResourcesRead), Category: CategoryResources, Description: "Read resource contents"},
	{Name: string(mcp.MethodSetLogLevel), Category: CategoryLogging, Description: "Set logging level"},
}

func init() {
	for i := range catalog {
		catalog[i].Executable = slices.Contains(gateway.InvocableMethods(), mcp.MCPMethod(catalog[i].Name))
	}
}

// Catalog returns every known method, grouped by category.
func Catalog() []Method {
	return slices.Clone(catalog)
}

// SearchMethods returns the methods whose name or category contain query (case-insensitive).
func SearchMethods(query string) []Method {
	return filter.Search(Catalog(), query, filter.PartialAny(
		func(m Method) string { return m.Name },
		func(m Method) string { return string(m.Category) },
	))
}

// LookupMethod returns the catalog entry for name.
func LookupMethod(name string) (Method, bool) {
	name = strings.TrimSpace(name)
	for _, m := range catalog {
		if m.Name == name {
			return m, true
		}
	}
	return Method{}, false
}

// GroupByCategory groups methods by category, keeping the order in which categories first appear.
func GroupByCategory(methods []Method) []CategoryGroup {
	groups := []CategoryGroup{}
	index := map[Category]int{}

	for _, m := range methods {
		i, ok := index[m.Category]
		if !ok {
			i = len(groups)
			index[m.Category] = i
			groups = append(groups, CategoryGroup{Category: m.Category})
		}
		groups[i].Methods = append(groups[i].Methods, m)
	}

	return groups
}
