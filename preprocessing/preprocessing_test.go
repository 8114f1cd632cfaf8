package preprocessing

import (
	"math"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/YuminosukeSato/id3tree/dataset"
	"github.com/YuminosukeSato/id3tree/pkg/errors"
)

var ageBins = Bins{
	Edges:  []float64{0, 15, 20, 30, 40, 50, 60, 70, math.Inf(1)},
	Labels: []string{"0-15", "15-20", "20-30", "30-40", "40-50", "50-60", "60-70", "70+"},
}

func TestDiscretize(t *testing.T) {
	got, err := Discretize([]string{"0", "14.9", "15", "33", "70", "99"}, ageBins)
	require.NoError(t, err)
	assert.Equal(t, []string{"0-15", "0-15", "15-20", "30-40", "70+", "70+"}, got)

	_, err = Discretize([]string{"-1"}, ageBins)
	var invalid *errors.InvalidInputError
	assert.True(t, errors.As(err, &invalid))

	_, err = Discretize([]string{"old"}, ageBins)
	assert.True(t, errors.As(err, &invalid))
}

func TestBinsRightClosed(t *testing.T) {
	b := Bins{Edges: []float64{0, 10, 20}, Right: true}
	assert.Equal(t, -1, b.Index(0))
	assert.Equal(t, 0, b.Index(10))
	assert.Equal(t, 1, b.Index(10.5))
	assert.Equal(t, 1, b.Index(20))
	assert.Equal(t, -1, b.Index(20.1))
	assert.Equal(t, "(0, 10]", b.Label(0))

	left := Bins{Edges: []float64{math.Inf(-1), 2.5, math.Inf(1)}}
	assert.Equal(t, "[-inf, 2.5)", left.Label(0))
	assert.Equal(t, "[2.5, inf)", left.Label(1))
	assert.Equal(t, -1, left.Index(math.NaN()))
}

func TestBinsValidate(t *testing.T) {
	tests := []struct {
		name string
		bins Bins
	}{
		{name: "single edge", bins: Bins{Edges: []float64{1}}},
		{name: "not increasing", bins: Bins{Edges: []float64{1, 1, 2}}},
		{name: "label count", bins: Bins{Edges: []float64{1, 2, 3}, Labels: []string{"a"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var verr *errors.ValidationError
			assert.True(t, errors.As(tt.bins.Validate(), &verr))
		})
	}
	assert.NoError(t, ageBins.Validate())
}

func patients(t *testing.T) *dataset.Frame {
	t.Helper()
	f, err := dataset.NewFrame(
		[]string{"Age", "Smoking", "Level"},
		[][]string{
			{"33", "3", "Low"},
			{"17", "2", "Medium"},
			{"35", "2", "High"},
			{"37", "7", "High"},
			{"46", "8", "High"},
			{"35", "1", "Low"},
			{"52", "5", "Medium"},
			{"28", "2", "Low"},
			{"35", "6", "High"},
			{"72", "8", "High"},
		},
	)
	require.NoError(t, err)
	return f
}

func TestCut(t *testing.T) {
	f := patients(t)
	out, err := Cut(f, "Age", ageBins)
	require.NoError(t, err)

	col, err := out.Column("Age")
	require.NoError(t, err)
	assert.Equal(t, []string{"30-40", "15-20", "30-40", "30-40", "40-50", "30-40", "50-60", "20-30", "30-40", "70+"}, col)

	// input untouched
	assert.Equal(t, "33", f.Rows[0][0])

	_, err = Cut(f, "Weight", ageBins)
	assert.True(t, errors.Is(err, errors.ErrUnknownAttribute))
}

func TestCutRows(t *testing.T) {
	f, err := dataset.NewFrame(
		[]string{"Age", "Level"},
		[][]string{{"33", "Low"}, {"old", "High"}, {"-4", "Low"}, {"71", "High"}},
	)
	require.NoError(t, err)

	out, rowErrs, err := CutRows(f, "Age", ageBins)
	require.NoError(t, err)
	col, err := out.Column("Age")
	require.NoError(t, err)
	assert.Equal(t, []string{"30-40", "old", "-4", "70+"}, col)

	require.Len(t, rowErrs, 4)
	assert.NoError(t, rowErrs[0])
	assert.NoError(t, rowErrs[3])
	var invalid *errors.InvalidInputError
	require.True(t, errors.As(rowErrs[1], &invalid))
	assert.Contains(t, rowErrs[1].Error(), `binning column "Age"`)
	assert.Contains(t, rowErrs[2].Error(), "outside the bins")

	_, err = Cut(f, "Age", ageBins)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "row 1")
}

func TestKBinsDiscretizer(t *testing.T) {
	f := patients(t)

	t.Run("uniform", func(t *testing.T) {
		d := NewKBinsDiscretizer("Smoking", 2, StrategyUniform)
		out, err := d.FitTransform(f)
		require.NoError(t, err)
		// span 1..8 split at 4.5
		assert.Equal(t, []float64{math.Inf(-1), 4.5, math.Inf(1)}, d.Bins.Edges)
		col, _ := out.Column("Smoking")
		assert.Equal(t, "[-inf, 4.5)", col[0])
		assert.Equal(t, "[4.5, inf)", col[3])
	})

	t.Run("quantile", func(t *testing.T) {
		d := NewKBinsDiscretizer("Age", 4, StrategyQuantile)
		require.NoError(t, d.Fit(f))
		assert.True(t, sort.Float64sAreSorted(d.Bins.Edges))
		assert.Equal(t, math.Inf(-1), d.Bins.Edges[0])
		assert.Equal(t, math.Inf(1), d.Bins.Edges[len(d.Bins.Edges)-1])

		// unseen extremes land in the outer bins
		other, err := dataset.NewFrame([]string{"Age"}, [][]string{{"1"}, {"120"}})
		require.NoError(t, err)
		out, err := d.Transform(other)
		require.NoError(t, err)
		col, _ := out.Column("Age")
		assert.Equal(t, d.Bins.Label(0), col[0])
		assert.Equal(t, d.Bins.Label(len(d.Bins.Edges)-2), col[1])
	})

	t.Run("constant column", func(t *testing.T) {
		c, err := dataset.NewFrame([]string{"x"}, [][]string{{"3"}, {"3"}})
		require.NoError(t, err)
		d := NewKBinsDiscretizer("x", 3, StrategyUniform)
		out, err := d.FitTransform(c)
		require.NoError(t, err)
		assert.Equal(t, [][]string{{"[-inf, inf)"}, {"[-inf, inf)"}}, out.Rows)
	})

	t.Run("errors", func(t *testing.T) {
		_, err := NewKBinsDiscretizer("Age", 3, "kmeans").FitTransform(f)
		assert.Error(t, err)
		_, err = NewKBinsDiscretizer("Age", 1, StrategyUniform).FitTransform(f)
		assert.Error(t, err)
		_, err = NewKBinsDiscretizer("Level", 2, StrategyUniform).FitTransform(f)
		assert.Error(t, err)

		var notFitted *errors.NotFittedError
		_, err = NewKBinsDiscretizer("Age", 2, "").Transform(f)
		assert.True(t, errors.As(err, &notFitted))
	})
}

func TestTrainTestSplit(t *testing.T) {
	f := patients(t)
	X, y, err := f.Pop("Level")
	require.NoError(t, err)

	s, err := TrainTestSplit(X, y, 0.2, 42)
	require.NoError(t, err)
	assert.Equal(t, 8, s.XTrain.Len())
	assert.Equal(t, 2, s.XTest.Len())
	assert.Len(t, s.YTrain, 8)
	assert.Len(t, s.YTest, 2)

	// every row lands in exactly one part with its label
	seen := map[string]string{}
	for _, part := range []struct {
		X *dataset.Frame
		y []string
	}{{s.XTrain, s.YTrain}, {s.XTest, s.YTest}} {
		for i, row := range part.X.Rows {
			key := row[0] + "/" + row[1]
			seen[key] = part.y[i]
		}
	}
	assert.Len(t, seen, 10)
	for i, row := range X.Rows {
		assert.Equal(t, y[i], seen[row[0]+"/"+row[1]])
	}

	again, err := TrainTestSplit(X, y, 0.2, 42)
	require.NoError(t, err)
	assert.Equal(t, s.XTest.Rows, again.XTest.Rows)
}

func TestTrainTestSplitErrors(t *testing.T) {
	X, y, err := patients(t).Pop("Level")
	require.NoError(t, err)

	var verr *errors.ValidationError
	_, err = TrainTestSplit(X, y, 0, 1)
	assert.True(t, errors.As(err, &verr))
	_, err = TrainTestSplit(X, y, 1, 1)
	assert.True(t, errors.As(err, &verr))
	_, err = TrainTestSplit(X, y[:3], 0.5, 1)
	assert.Error(t, err)

	one, err := dataset.NewFrame([]string{"a"}, [][]string{{"x"}})
	require.NoError(t, err)
	_, err = TrainTestSplit(one, []string{"y"}, 0.5, 1)
	assert.Error(t, err)
}
