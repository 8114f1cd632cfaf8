package dataset

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/YuminosukeSato/id3tree/pkg/errors"
)

func TestChunkReader(t *testing.T) {
	cr, err := NewChunkReader(strings.NewReader(patientsCSV), 2, WithIndexColumn(true))
	require.NoError(t, err)
	assert.Equal(t, []string{"Patient Id", "Age", "Gender", "Level"}, cr.Columns())

	first, err := cr.Next()
	require.NoError(t, err)
	assert.Equal(t, 2, first.Len())
	assert.Equal(t, 2, cr.Offset())

	second, err := cr.Next()
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"P100", "35", "1", "High"}}, second.Rows)

	_, err = cr.Next()
	assert.Equal(t, io.EOF, err)
	_, err = cr.Next()
	assert.Equal(t, io.EOF, err)
}

func TestChunkReaderEach(t *testing.T) {
	cr, err := NewChunkReader(strings.NewReader(patientsCSV), 1, WithIndexColumn(true))
	require.NoError(t, err)

	var offsets []int
	var ids []string
	require.NoError(t, cr.Each(func(chunk *Frame, offset int) error {
		offsets = append(offsets, offset)
		ids = append(ids, chunk.Record(0)["Patient Id"])
		return nil
	}))
	assert.Equal(t, []int{0, 1, 2}, offsets)
	assert.Equal(t, []string{"P1", "P10", "P100"}, ids)

	cr, err = NewChunkReader(strings.NewReader(patientsCSV), 1)
	require.NoError(t, err)
	stop := errors.New("stop")
	assert.True(t, errors.Is(cr.Each(func(*Frame, int) error { return stop }), stop))

	_, err = NewChunkReader(strings.NewReader(""), 1)
	assert.True(t, errors.Is(err, errors.ErrEmptyData))
}

func TestCSVWriter(t *testing.T) {
	var buf bytes.Buffer
	w := NewCSVWriter(&buf)

	a, err := NewFrame([]string{"x", "y"}, [][]string{{"1", "a,b"}})
	require.NoError(t, err)
	b, err := NewFrame([]string{"x", "y"}, [][]string{{"2", "c"}})
	require.NoError(t, err)
	other, err := NewFrame([]string{"y", "x"}, nil)
	require.NoError(t, err)

	require.NoError(t, w.Write(a))
	require.NoError(t, w.Write(b))
	assert.Error(t, w.Write(other))
	require.NoError(t, w.Flush())
	assert.Equal(t, "x,y\n1,\"a,b\"\n2,c\n", buf.String())
}
