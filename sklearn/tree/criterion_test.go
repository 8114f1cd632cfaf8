package tree

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

const eps = 1e-9

func TestEntropy(t *testing.T) {
	tests := []struct {
		name   string
		labels []string
		want   float64
	}{
		{name: "single class", labels: []string{"a", "a", "a"}, want: 0},
		{name: "single row", labels: []string{"a"}, want: 0},
		{name: "fifty fifty", labels: []string{"a", "b", "b", "a"}, want: 1},
		{name: "four uniform classes", labels: []string{"a", "b", "c", "d"}, want: 2},
		{name: "nine to five", labels: []string{"y", "y", "y", "y", "y", "y", "y", "y", "y", "n", "n", "n", "n", "n"}, want: 0.940285958670631},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rows := make([][]string, len(tt.labels))
			for i := range rows {
				rows[i] = []string{"x"}
			}
			v := view(t, frame(t, []string{"f"}, rows...), tt.labels)
			assert.InDelta(t, tt.want, Entropy(v), eps)
		})
	}
}

func TestEntropyEmptyView(t *testing.T) {
	X, y := playTennis(t)
	empty := view(t, X, y).Filter("Outlook", "Fog")
	assert.Equal(t, 0.0, Entropy(empty))
	assert.Equal(t, 0.0, InformationGain(empty, "Wind"))
}

func TestInformationGain(t *testing.T) {
	X, y := playTennis(t)
	v := view(t, X, y)

	assert.InDelta(t, 0.246749819774439, InformationGain(v, "Outlook"), eps)
	assert.InDelta(t, 0.029222565658955, InformationGain(v, "Temperature"), eps)
	assert.InDelta(t, 0.151835501362341, InformationGain(v, "Humidity"), eps)
	assert.InDelta(t, 0.048127030408269, InformationGain(v, "Wind"), eps)
	assert.Equal(t, 0.0, InformationGain(v, "Pressure"))
}

func TestInformationGainNonSplitting(t *testing.T) {
	X := frame(t, []string{"constant", "f"},
		[]string{"c", "a"},
		[]string{"c", "b"},
		[]string{"c", "a"},
	)
	v := view(t, X, []string{"1", "2", "2"})
	assert.InDelta(t, 0, InformationGain(v, "constant"), eps)
}

func TestInformationGainNeverNegative(t *testing.T) {
	X, y := playTennis(t)
	root := view(t, X, y)

	check := func(name string, attrs []string, gain func(string) float64) {
		for _, a := range attrs {
			assert.GreaterOrEqualf(t, gain(a), -eps, "%s: %s", name, a)
		}
	}
	check("root", root.Attributes(), func(a string) float64 { return InformationGain(root, a) })
	for _, outlook := range root.DistinctValues("Outlook") {
		sub := root.Filter("Outlook", outlook)
		check(outlook, sub.Attributes(), func(a string) float64 { return InformationGain(sub, a) })
		for _, wind := range sub.DistinctValues("Wind") {
			leaf := sub.Filter("Wind", wind)
			check(outlook+"/"+wind, leaf.Attributes(), func(a string) float64 { return InformationGain(leaf, a) })
		}
	}
}
