package tree

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/YuminosukeSato/id3tree/dataset"
)

// playTennis is Quinlan's weather data set.
func playTennis(t *testing.T) (*dataset.Frame, []string) {
	t.Helper()
	f, err := dataset.NewFrame(
		[]string{"Outlook", "Temperature", "Humidity", "Wind", "Play"},
		[][]string{
			{"Sunny", "Hot", "High", "Weak", "No"},
			{"Sunny", "Hot", "High", "Strong", "No"},
			{"Overcast", "Hot", "High", "Weak", "Yes"},
			{"Rain", "Mild", "High", "Weak", "Yes"},
			{"Rain", "Cool", "Normal", "Weak", "Yes"},
			{"Rain", "Cool", "Normal", "Strong", "No"},
			{"Overcast", "Cool", "Normal", "Strong", "Yes"},
			{"Sunny", "Mild", "High", "Weak", "No"},
			{"Sunny", "Cool", "Normal", "Weak", "Yes"},
			{"Rain", "Mild", "Normal", "Weak", "Yes"},
			{"Sunny", "Mild", "Normal", "Strong", "Yes"},
			{"Overcast", "Mild", "High", "Strong", "Yes"},
			{"Overcast", "Hot", "Normal", "Weak", "Yes"},
			{"Rain", "Mild", "High", "Strong", "No"},
		},
	)
	require.NoError(t, err)
	X, y, err := f.Pop("Play")
	require.NoError(t, err)
	return X, y
}

func frame(t *testing.T, columns []string, rows ...[]string) *dataset.Frame {
	t.Helper()
	f, err := dataset.NewFrame(columns, rows)
	require.NoError(t, err)
	return f
}

func view(t *testing.T, X *dataset.Frame, y []string) *dataset.View {
	t.Helper()
	v, err := dataset.NewView(X, y)
	require.NoError(t, err)
	return v
}
