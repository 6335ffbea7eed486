package export

import (
	"fmt"
	"io"
	"os"
)

// ConsoleRenderer prints a header with the document name followed by every line.
type ConsoleRenderer struct {
	out io.Writer
}

// NewConsoleRenderer builds a console renderer writing to out (stdout when nil).
func NewConsoleRenderer(out io.Writer) *ConsoleRenderer {
	if out == nil {
		out = os.Stdout
	}
	return &ConsoleRenderer{out: out}
}

// Render writes the document. Console output has no failure path.
func (r *ConsoleRenderer) Render(doc Document) (string, error) {
	_, _ = fmt.Fprintf(r.out, "Console Report: %s\n", doc.Name)
	writeLines(r.out, doc.Lines)
	return "", nil
}

// RawRenderer dumps the lines as they are, without a header.
type RawRenderer struct {
	out io.Writer
}

// NewRawRenderer builds the fallback renderer writing to out (stdout when nil).
func NewRawRenderer(out io.Writer) *RawRenderer {
	if out == nil {
		out = os.Stdout
	}
	return &RawRenderer{out: out}
}

// Render writes the lines.
func (r *RawRenderer) Render(doc Document) (string, error) {
	writeLines(r.out, doc.Lines)
	return "", nil
}

func writeLines(w io.Writer, lines []string) {
	for _, line := range lines {
		_, _ = fmt.Fprintln(w, line)
	}
}
