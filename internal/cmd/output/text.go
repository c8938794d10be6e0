package output

import (
	"io"
)

var _ Handler[any] = (*TextHandler[any])(nil)

// TextHandler renders results for humans through a Printer.
type TextHandler[T any] struct {
	out     io.Writer
	printer Printer[T]
}

func NewTextHandler[T any](w io.Writer, p Printer[T]) *TextHandler[T] {
	return &TextHandler[T]{
		out:     w,
		printer: p,
	}
}

func (h *TextHandler[T]) Writer() io.Writer {
	return h.out
}

// HandleResult prints a single item between the printer's header and footer.
func (h *TextHandler[T]) HandleResult(item T) error {
	h.printer.Header(h.out, 1)
	if err := h.printer.Item(h.out, item); err != nil {
		return err
	}
	h.printer.Footer(h.out, 1)

	return nil
}

func (h *TextHandler[T]) HandleResults(items ...T) error {
	if len(items) == 0 {
		_, _ = io.WriteString(h.out, "No items found\n")
		return nil
	}

	h.printer.Header(h.out, len(items))

	for _, it := range items {
		if err := h.printer.Item(h.out, it); err != nil {
			return err
		}
	}

	h.printer.Footer(h.out, len(items))

	return nil
}

// HandleError returns err unchanged, leaving it to the caller to report.
func (h *TextHandler[T]) HandleError(err error) error {
	return err
}
