package export

import (
	"bufio"
	"fmt"
	"io"
	"os"
)

type fileStorage interface {
	Create(filename string) (*os.File, error)
}

// FileRenderer writes one record per line into <name><ext>. Lines are written
// verbatim: no quoting, escaping or field splitting.
type FileRenderer struct {
	files   fileStorage
	ext     string
	success string
	failure string
	notices io.Writer
}

// NewCSVRenderer builds the delimited-file backend.
func NewCSVRenderer(files fileStorage, notices io.Writer) *FileRenderer {
	return newFileRenderer(files, ".csv", "CSV report successfully created!", "Error writing to CSV file", notices)
}

// NewTextRenderer builds the plain-text-file backend.
func NewTextRenderer(files fileStorage, notices io.Writer) *FileRenderer {
	return newFileRenderer(files, ".txt", "Text report successfully created!", "Error writing to TXT file", notices)
}

func newFileRenderer(files fileStorage, ext, success, failure string, notices io.Writer) *FileRenderer {
	if notices == nil {
		notices = os.Stdout
	}
	return &FileRenderer{files: files, ext: ext, success: success, failure: failure, notices: notices}
}

// Extension reports the file extension including the leading dot.
func (r *FileRenderer) Extension() string {
	return r.ext
}

// Render persists the document and announces the outcome on the notice writer.
func (r *FileRenderer) Render(doc Document) (string, error) {
	filename := doc.Name + r.ext
	if err := r.write(filename, doc.Lines); err != nil {
		_, _ = fmt.Fprintf(r.notices, "%s: %v\n", r.failure, err)
		return "", err
	}
	_, _ = fmt.Fprintln(r.notices, r.success)
	return filename, nil
}

func (r *FileRenderer) write(filename string, lines []string) (err error) {
	if r.files == nil {
		return fmt.Errorf("no file storage configured")
	}
	file, err := r.files.Create(filename)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := file.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close %s: %w", filename, cerr)
		}
	}()

	w := bufio.NewWriter(file)
	for _, line := range lines {
		if _, err := w.WriteString(line); err != nil {
			return fmt.Errorf("write %s: %w", filename, err)
		}
		if err := w.WriteByte('\n'); err != nil {
			return fmt.Errorf("write %s: %w", filename, err)
		}
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("flush %s: %w", filename, err)
	}
	return nil
}
