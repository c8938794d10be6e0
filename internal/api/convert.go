package api

type Convertible[T any] interface {
	// ToAPIType can be used to convert a wrapped domain type to an API-safe type.
	// It should be responsible for any normalization required to ensure consistency
	// across the API boundary.
	ToAPIType() (T, error)
}

var (
	_ Convertible[ServerRecord]   = DomainServerRecord{}
	_ Convertible[ServerHealth]   = DomainServerHealth{}
	_ Convertible[Tool]           = domainTool{}
	_ Convertible[ToolSummary]    = domainToolSummary{}
	_ Convertible[ToolMinimal]    = domainToolMinimal{}
	_ Convertible[Resource]       = DomainResource{}
	_ Convertible[Prompt]         = DomainPrompt{}
	_ Convertible[PromptArgument] = DomainPromptArgument{}
)
