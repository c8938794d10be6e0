package cmd

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/cloudnook/mcpgw/internal/cmd/output"
)

const (
	FormatJSON OutputFormat = "json"
	FormatYAML OutputFormat = "yaml"
	FormatText OutputFormat = "text"
)

// indent is the number of spaces used to indent structured output.
const indent = 2

// OutputFormat selects how a command renders its results.
// It implements pflag.Value so it can be bound directly to a --format flag.
type OutputFormat string

type OutputFormats []OutputFormat

// AllowedOutputFormats returns the supported formats sorted by name.
func AllowedOutputFormats() OutputFormats {
	formats := OutputFormats{FormatJSON, FormatText, FormatYAML}
	slices.Sort(formats)

	return formats
}

// String joins the formats with commas.
func (f *OutputFormats) String() string {
	out := make([]string, len(*f))
	for i, v := range *f {
		out[i] = v.String()
	}
	return strings.Join(out, ", ")
}

func (f *OutputFormat) String() string {
	return strings.ToLower(string(*f))
}

// Set parses v, ignoring case and surrounding whitespace.
func (f *OutputFormat) Set(v string) error {
	v = strings.ToLower(strings.TrimSpace(v))
	allowed := AllowedOutputFormats()

	if !slices.Contains(allowed, OutputFormat(v)) {
		return fmt.Errorf("invalid format '%s', must be one of %v", v, allowed.String())
	}

	*f = OutputFormat(v)
	return nil
}

func (f *OutputFormat) Type() string {
	return "format"
}

// FormatHandler returns the output handler for format writing to w.
// The printer is only used for text output.
func FormatHandler[T any](w io.Writer, format OutputFormat, printer output.Printer[T]) (output.Handler[T], error) {
	switch format {
	case FormatJSON:
		return output.NewJSONHandler[T](w, indent), nil
	case FormatYAML:
		return output.NewYAMLHandler[T](w, indent), nil
	case FormatText, "":
		if printer == nil {
			return nil, fmt.Errorf("text output is not supported")
		}
		return output.NewTextHandler[T](w, printer), nil
	default:
		return nil, fmt.Errorf("invalid format '%s', must be one of %v", format, AllowedOutputFormats())
	}
}
