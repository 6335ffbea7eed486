package export

import (
	"io"
	"os"
	"strings"
)

// Document is an ordered set of report lines plus the name it is rendered under.
type Document struct {
	Name  string
	Lines []string
}

// Format is the closed set of render backends.
type Format string

const (
	FormatConsole Format = "console"
	FormatText    Format = "txt"
	FormatCSV     Format = "csv"
	// FormatRaw prints the lines without a header; unknown tokens land here.
	FormatRaw Format = "raw"
)

// ParseFormat maps a user supplied token onto a Format. It never fails:
// anything other than txt, csv or console becomes FormatRaw.
func ParseFormat(token string) Format {
	switch strings.ToLower(strings.TrimSpace(token)) {
	case "txt":
		return FormatText
	case "csv":
		return FormatCSV
	case "console":
		return FormatConsole
	default:
		return FormatRaw
	}
}

// Renderer externalizes a document. The returned location is the stored file
// name for file backends and empty for stream backends.
type Renderer interface {
	Render(doc Document) (string, error)
}

// Registry holds one renderer per Format.
type Registry struct {
	console Renderer
	text    Renderer
	csv     Renderer
	raw     Renderer
}

// NewRegistry wires the standard backends. Stream output goes to out and file
// notices to notices; nil writers default to stdout.
func NewRegistry(files fileStorage, out, notices io.Writer) *Registry {
	if out == nil {
		out = os.Stdout
	}
	if notices == nil {
		notices = os.Stdout
	}
	return &Registry{
		console: NewConsoleRenderer(out),
		text:    NewTextRenderer(files, notices),
		csv:     NewCSVRenderer(files, notices),
		raw:     NewRawRenderer(out),
	}
}

// For returns the renderer registered for format.
func (r *Registry) For(format Format) Renderer {
	switch format {
	case FormatConsole:
		return r.console
	case FormatText:
		return r.text
	case FormatCSV:
		return r.csv
	default:
		return r.raw
	}
}
