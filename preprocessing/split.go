package preprocessing

import (
	"math"
	"math/rand"

	"github.com/YuminosukeSato/id3tree/dataset"
	"github.com/YuminosukeSato/id3tree/pkg/errors"
)

// Split holds the two halves produced by TrainTestSplit.
type Split struct {
	XTrain, XTest *dataset.Frame
	YTrain, YTest []string
}

// TrainTestSplit shuffles the rows of X and y with seed and holds out
// ceil(testSize * n) of them for testing. Both parts must end up non-empty.
func TrainTestSplit(X *dataset.Frame, y []string, testSize float64, seed int64) (*Split, error) {
	if !(testSize > 0 && testSize < 1) {
		return nil, errors.NewValidationError("test_size", "must be in (0, 1)", testSize)
	}
	n := X.Len()
	if n != len(y) {
		return nil, errors.NewInvalidInputErrorf("TrainTestSplit", "%d feature rows but %d labels", n, len(y))
	}
	nTest := int(math.Ceil(testSize * float64(n)))
	if nTest >= n {
		return nil, errors.NewInvalidInputErrorf("TrainTestSplit", "test_size=%v leaves no training rows out of %d", testSize, n)
	}

	perm := rand.New(rand.NewSource(seed)).Perm(n)
	testIdx, trainIdx := perm[:nTest], perm[nTest:]

	XTest, err := X.Take(testIdx)
	if err != nil {
		return nil, err
	}
	XTrain, err := X.Take(trainIdx)
	if err != nil {
		return nil, err
	}
	return &Split{
		XTrain: XTrain,
		XTest:  XTest,
		YTrain: pick(y, trainIdx),
		YTest:  pick(y, testIdx),
	}, nil
}

func pick(y []string, idx []int) []string {
	out := make([]string, len(idx))
	for i, j := range idx {
		out[i] = y[j]
	}
	return out
}
