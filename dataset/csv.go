package dataset

import (
	"io"
	"os"

	"github.com/YuminosukeSato/id3tree/pkg/errors"
)

// CSVOption configures ReadCSV.
type CSVOption func(*csvConfig)

type csvConfig struct {
	indexColumn bool
	comma       rune
}

// WithIndexColumn drops the first column of every line, as written by tools
// that export a row index ahead of the data.
func WithIndexColumn(drop bool) CSVOption {
	return func(c *csvConfig) {
		c.indexColumn = drop
	}
}

// WithComma sets the field delimiter.
func WithComma(r rune) CSVOption {
	return func(c *csvConfig) {
		c.comma = r
	}
}

// ReadCSV reads a Frame from a CSV stream. The first line is the header; every
// following line must have as many fields as the header.
func ReadCSV(r io.Reader, opts ...CSVOption) (*Frame, error) {
	cr, err := NewChunkReader(r, 0, opts...)
	if err != nil {
		return nil, err
	}
	f, err := cr.Next()
	if err == io.EOF {
		return NewFrame(cr.Columns(), nil)
	}
	return f, err
}

// ReadCSVFile opens path and reads it with ReadCSV. An empty path reads stdin.
func ReadCSVFile(path string, opts ...CSVOption) (*Frame, error) {
	var f *os.File
	if path == "" {
		f = os.Stdin
	} else {
		var err error
		f, err = os.Open(path)
		if err != nil {
			return nil, errors.Wrapf(err, "opening %s", path)
		}
		defer f.Close()
	}
	frame, err := ReadCSV(f, opts...)
	if err != nil {
		return nil, errors.Wrapf(err, "parsing CSV file %s", path)
	}
	return frame, nil
}

// WriteCSV writes the frame as CSV with a header line.
func WriteCSV(w io.Writer, f *Frame) error {
	cw := NewCSVWriter(w)
	if err := cw.Write(f); err != nil {
		return err
	}
	return cw.Flush()
}

func trimIndex(fields []string, drop bool) []string {
	if drop && len(fields) > 0 {
		return fields[1:]
	}
	return fields
}
