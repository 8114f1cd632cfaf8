package tree

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/YuminosukeSato/id3tree/pkg/errors"
)

func TestBestAttribute(t *testing.T) {
	X, y := playTennis(t)
	v := view(t, X, y)

	best, gain, err := BestAttribute(v, 1)
	require.NoError(t, err)
	assert.Equal(t, "Outlook", best)
	assert.InDelta(t, 0.2467498, gain, 1e-6)

	sunny := v.Filter("Outlook", "Sunny").Drop("Outlook")
	best, _, err = BestAttribute(sunny, 1)
	require.NoError(t, err)
	assert.Equal(t, "Humidity", best)
}

func TestBestAttributeTieGoesToEarliest(t *testing.T) {
	// b and a partition the rows identically
	X := frame(t, []string{"b", "a", "noise"},
		[]string{"x", "x", "p"},
		[]string{"y", "y", "p"},
		[]string{"x", "x", "q"},
		[]string{"y", "y", "q"},
	)
	v := view(t, X, []string{"1", "2", "1", "2"})

	best, gain, err := BestAttribute(v, 1)
	require.NoError(t, err)
	assert.Equal(t, "b", best)
	assert.InDelta(t, 1.0, gain, eps)

	best, _, err = BestAttribute(v.Drop("b"), 1)
	require.NoError(t, err)
	assert.Equal(t, "a", best)
}

func TestBestAttributeNoAttributes(t *testing.T) {
	X, y := playTennis(t)
	v := view(t, X, y).Drop("Outlook", "Temperature", "Humidity", "Wind")

	_, _, err := BestAttribute(v, 1)
	var verr *errors.ValidationError
	assert.True(t, errors.As(err, &verr))
}

func TestAttributeGainsParallelMatchesSequential(t *testing.T) {
	X, y := playTennis(t)
	v := view(t, X, y)

	sequential := AttributeGains(v, 1)
	require.Len(t, sequential, 4)
	assert.Equal(t, []string{"Outlook", "Temperature", "Humidity", "Wind"},
		[]string{sequential[0].Attribute, sequential[1].Attribute, sequential[2].Attribute, sequential[3].Attribute})

	for _, workers := range []int{0, 2, 3, 16} {
		assert.Equal(t, sequential, AttributeGains(v, workers), "workers=%d", workers)
		best, _, err := BestAttribute(v, workers)
		require.NoError(t, err)
		assert.Equal(t, "Outlook", best)
	}
}

func TestAttributeGainsAboveParallelThreshold(t *testing.T) {
	// label follows a0; the other columns are shifted copies of it, so a2
	// ties with a0 and the earliest must still win
	const width = 3 * gainParallelThreshold
	columns := make([]string, width)
	for j := range columns {
		columns[j] = fmt.Sprintf("a%d", j)
	}
	var rows [][]string
	var y []string
	for i := 0; i < 8; i++ {
		row := make([]string, width)
		for j := range row {
			row[j] = fmt.Sprint((i + j) / 2 % 2)
		}
		rows = append(rows, row)
		y = append(y, row[0])
	}
	v := view(t, frame(t, columns, rows...), y)

	sequential := AttributeGains(v, 1)
	require.Len(t, sequential, width)
	for _, workers := range []int{0, 2, 5} {
		assert.Equal(t, sequential, AttributeGains(v, workers), "workers=%d", workers)
		best, gain, err := BestAttribute(v, workers)
		require.NoError(t, err)
		assert.Equal(t, "a0", best)
		assert.InDelta(t, 1.0, gain, 1e-9)
	}
}
