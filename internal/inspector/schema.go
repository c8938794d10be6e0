package inspector

import (
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	"github.com/cloudnook/mcpgw/internal/domain"
	"github.com/cloudnook/mcpgw/internal/errors"
)

// ArgumentError lists every way a set of tool arguments violates the tool's input schema.
type ArgumentError struct {
	Tool       string   `json:"tool"`
	Violations []string `json:"violations"`
}

// Error implements error.
func (e *ArgumentError) Error() string {
	return fmt.Sprintf("%s for tool %s: %s", errors.ErrInvalidArguments, e.Tool, strings.Join(e.Violations, "; "))
}

// Unwrap allows errors.Is(err, errors.ErrInvalidArguments).
func (e *ArgumentError) Unwrap() error {
	return errors.ErrInvalidArguments
}

// ValidateArguments checks args against the tool's JSON Schema.
// A tool without a schema accepts any arguments.
func ValidateArguments(tool domain.Tool, args map[string]any) error {
	if len(tool.InputSchema) == 0 {
		return nil
	}
	if args == nil {
		args = map[string]any{}
	}

	result, err := gojsonschema.Validate(
		gojsonschema.NewGoLoader(tool.InputSchema),
		gojsonschema.NewGoLoader(args),
	)
	if err != nil {
		return fmt.Errorf("invalid input schema for tool %s: %w", tool.Name, err)
	}
	if result.Valid() {
		return nil
	}

	violations := make([]string, 0, len(result.Errors()))
	for _, e := range result.Errors() {
		violations = append(violations, e.String())
	}

	return &ArgumentError{Tool: tool.Name, Violations: violations}
}
