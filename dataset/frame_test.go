package dataset

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/YuminosukeSato/id3tree/pkg/errors"
)

func weatherFrame(t *testing.T) *Frame {
	t.Helper()
	f, err := NewFrame(
		[]string{"Outlook", "Wind", "Play"},
		[][]string{
			{"Sunny", "Weak", "No"},
			{"Sunny", "Strong", "No"},
			{"Overcast", "Weak", "Yes"},
			{"Rain", "Weak", "Yes"},
			{"Rain", "Strong", "No"},
		},
	)
	require.NoError(t, err)
	return f
}

func TestNewFrame(t *testing.T) {
	tests := []struct {
		name    string
		columns []string
		rows    [][]string
		wantErr bool
	}{
		{name: "valid", columns: []string{"a", "b"}, rows: [][]string{{"1", "2"}}},
		{name: "no rows", columns: []string{"a"}},
		{name: "ragged row", columns: []string{"a", "b"}, rows: [][]string{{"1"}}, wantErr: true},
		{name: "duplicate column", columns: []string{"a", "a"}, rows: [][]string{{"1", "2"}}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := NewFrame(tt.columns, tt.rows)
			if tt.wantErr {
				require.Error(t, err)
				var invalid *errors.InvalidInputError
				assert.True(t, errors.As(err, &invalid))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, len(tt.rows), f.Len())
		})
	}
}

func TestNewFrameCopiesInput(t *testing.T) {
	rows := [][]string{{"x"}}
	f, err := NewFrame([]string{"a"}, rows)
	require.NoError(t, err)
	rows[0][0] = "changed"
	assert.Equal(t, "x", f.Rows[0][0])
}

func TestFramePop(t *testing.T) {
	f := weatherFrame(t)

	X, y, err := f.Pop("Play")
	require.NoError(t, err)
	assert.Equal(t, []string{"Outlook", "Wind"}, X.Columns)
	assert.Equal(t, []string{"No", "No", "Yes", "Yes", "No"}, y)
	assert.Equal(t, []string{"Sunny", "Weak"}, X.Rows[0])

	// the source frame is untouched
	assert.Len(t, f.Columns, 3)

	_, _, err = f.Pop("Humidity")
	assert.True(t, errors.Is(err, errors.ErrUnknownAttribute))
}

func TestFrameDrop(t *testing.T) {
	f := weatherFrame(t)

	out, err := f.Drop("Wind")
	require.NoError(t, err)
	assert.Equal(t, []string{"Outlook", "Play"}, out.Columns)
	assert.Equal(t, []string{"Rain", "No"}, out.Rows[4])

	_, err = f.Drop("Wind", "Temperature")
	assert.Error(t, err)
}

func TestFrameTake(t *testing.T) {
	f := weatherFrame(t)

	out, err := f.Take([]int{4, 0})
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"Rain", "Strong", "No"}, {"Sunny", "Weak", "No"}}, out.Rows)

	_, err = f.Take([]int{5})
	assert.Error(t, err)
}

func TestFrameColumns(t *testing.T) {
	f := weatherFrame(t)

	col, err := f.Column("Outlook")
	require.NoError(t, err)
	assert.Equal(t, []string{"Sunny", "Sunny", "Overcast", "Rain", "Rain"}, col)

	require.NoError(t, f.SetColumn("Wind", []string{"a", "b", "c", "d", "e"}))
	assert.Equal(t, "e", f.Rows[4][1])
	assert.Error(t, f.SetColumn("Wind", []string{"a"}))
	assert.Error(t, f.SetColumn("Nope", nil))

	require.NoError(t, f.AddColumn("Score", []string{"1", "2", "3", "4", "5"}))
	assert.Equal(t, []string{"Outlook", "Wind", "Play", "Score"}, f.Columns)
	assert.Equal(t, "3", f.Record(2)["Score"])
	assert.Error(t, f.AddColumn("Score", []string{"1", "2", "3", "4", "5"}))
	assert.Error(t, f.AddColumn("Short", []string{"1"}))
}

func TestFrameRecords(t *testing.T) {
	f := weatherFrame(t)

	recs := f.Records()
	require.Len(t, recs, 5)
	assert.Equal(t, Record{"Outlook": "Overcast", "Wind": "Weak", "Play": "Yes"}, recs[2])
	assert.Equal(t, "Frame(5 rows x 3 columns)", f.String())
}
