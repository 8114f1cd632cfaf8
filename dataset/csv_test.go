package dataset

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/YuminosukeSato/id3tree/pkg/errors"
)

const patientsCSV = `,Patient Id,Age,Gender,Level
0,P1,33,1,Low
1,P10,17,1,Medium
2,P100,35,1,High
`

func TestReadCSV(t *testing.T) {
	f, err := ReadCSV(strings.NewReader(patientsCSV), WithIndexColumn(true))
	require.NoError(t, err)
	assert.Equal(t, []string{"Patient Id", "Age", "Gender", "Level"}, f.Columns)
	assert.Equal(t, 3, f.Len())
	assert.Equal(t, []string{"P10", "17", "1", "Medium"}, f.Rows[1])
}

func TestReadCSVWithoutIndex(t *testing.T) {
	f, err := ReadCSV(strings.NewReader("a;b\n1;2\n"), WithComma(';'))
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, f.Columns)
	assert.Equal(t, [][]string{{"1", "2"}}, f.Rows)
}

func TestReadCSVErrors(t *testing.T) {
	_, err := ReadCSV(strings.NewReader(""))
	assert.True(t, errors.Is(err, errors.ErrEmptyData))

	_, err = ReadCSV(strings.NewReader("a,b\n1,2,3\n"))
	assert.Error(t, err)
}

func TestCSVFileRoundTrip(t *testing.T) {
	f := weatherFrame(t)
	path := filepath.Join(t.TempDir(), "weather.csv")

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, f))
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o600))

	got, err := ReadCSVFile(path)
	require.NoError(t, err)
	assert.Equal(t, f.Columns, got.Columns)
	assert.Equal(t, f.Rows, got.Rows)

	_, err = ReadCSVFile(filepath.Join(t.TempDir(), "missing.csv"))
	assert.Error(t, err)
}
