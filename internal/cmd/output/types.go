package output

import "io"

// Handler renders command results in one output format.
type Handler[T any] interface {
	Writer() io.Writer
	HandleResult(item T) error
	HandleResults(items ...T) error

	// HandleError reports err in the handler's format. Structured formats write it as a payload and return nil.
	HandleError(err error) error
}

// WriteFunc writes the text around a printed view, given how many items the view holds.
type WriteFunc[T any] func(w io.Writer, count int)

// Printer renders one view as operator-facing text.
// Text handlers call Header once, Item per element, then Footer once.
type Printer[T any] interface {
	Header(w io.Writer, count int)
	SetHeader(fn WriteFunc[T])
	Item(w io.Writer, elem T) error
	Footer(w io.Writer, count int)
	SetFooter(fn WriteFunc[T])
}

// ResultsPayload wraps a list under "results".
type ResultsPayload[T any] struct {
	Results []T `json:"results" yaml:"results"`
}

// ResultPayload wraps a single view under "result".
type ResultPayload[T any] struct {
	Result T `json:"result" yaml:"result"`
}

// ErrorPayload is written instead of a result when a command fails under --format json or yaml.
type ErrorPayload struct {
	Error string `json:"error" yaml:"error"`
}
