package dataset

import (
	"encoding/csv"
	"io"
	"slices"

	"github.com/YuminosukeSato/id3tree/pkg/errors"
)

// ChunkReader reads a CSV stream as consecutive frames of at most size rows,
// so inputs larger than memory can be classified piece by piece.
type ChunkReader struct {
	r       *csv.Reader
	columns []string
	size    int
	index   bool
	line    int
	offset  int
	done    bool
}

// NewChunkReader reads the header from r. size <= 0 puts every row in a
// single chunk.
func NewChunkReader(r io.Reader, size int, opts ...CSVOption) (*ChunkReader, error) {
	cfg := &csvConfig{comma: ','}
	for _, opt := range opts {
		opt(cfg)
	}
	cr := csv.NewReader(r)
	cr.Comma = cfg.comma
	header, err := cr.Read()
	if err == io.EOF {
		return nil, errors.NewEmptyDataError("ReadCSV")
	}
	if err != nil {
		return nil, errors.Wrap(err, "reading header")
	}
	return &ChunkReader{
		r:       cr,
		columns: trimIndex(header, cfg.indexColumn),
		size:    size,
		index:   cfg.indexColumn,
		line:    1,
	}, nil
}

// Columns returns the header.
func (c *ChunkReader) Columns() []string {
	return c.columns
}

// Offset is the number of rows returned by previous calls to Next.
func (c *ChunkReader) Offset() int {
	return c.offset
}

// Next returns the next chunk, or io.EOF once the stream is exhausted.
func (c *ChunkReader) Next() (*Frame, error) {
	if c.done {
		return nil, io.EOF
	}
	var rows [][]string
	for c.size <= 0 || len(rows) < c.size {
		record, err := c.r.Read()
		if err == io.EOF {
			c.done = true
			break
		}
		c.line++
		if err != nil {
			return nil, errors.Wrapf(err, "reading line %d", c.line)
		}
		rows = append(rows, trimIndex(record, c.index))
	}
	if len(rows) == 0 {
		return nil, io.EOF
	}
	f, err := NewFrame(c.columns, rows)
	if err != nil {
		return nil, err
	}
	c.offset += len(rows)
	return f, nil
}

// Each calls fn with every remaining chunk and the number of rows that
// preceded it. It stops at the first error.
func (c *ChunkReader) Each(fn func(chunk *Frame, offset int) error) error {
	for {
		offset := c.offset
		chunk, err := c.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		if err := fn(chunk, offset); err != nil {
			return err
		}
	}
}

// CSVWriter writes frames that share one header as a single CSV stream.
type CSVWriter struct {
	w      *csv.Writer
	header []string
}

// NewCSVWriter creates a CSVWriter on w.
func NewCSVWriter(w io.Writer) *CSVWriter {
	return &CSVWriter{w: csv.NewWriter(w)}
}

// Write appends the rows of f. The first frame written fixes the header.
func (cw *CSVWriter) Write(f *Frame) error {
	if cw.header == nil {
		cw.header = slices.Clone(f.Columns)
		if err := cw.w.Write(cw.header); err != nil {
			return errors.Wrap(err, "writing header")
		}
	} else if !slices.Equal(cw.header, f.Columns) {
		return errors.NewInvalidInputErrorf("CSVWriter.Write", "columns %v do not match header %v", f.Columns, cw.header)
	}
	for _, row := range f.Rows {
		if err := cw.w.Write(row); err != nil {
			return errors.Wrap(err, "writing rows")
		}
	}
	return nil
}

// Flush writes any buffered data.
func (cw *CSVWriter) Flush() error {
	cw.w.Flush()
	return errors.Wrap(cw.w.Error(), "flushing CSV")
}
