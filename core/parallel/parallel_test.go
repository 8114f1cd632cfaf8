package parallel

import (
	"runtime"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWorkers(t *testing.T) {
	assert.Equal(t, runtime.NumCPU(), Workers(0))
	assert.Equal(t, runtime.NumCPU(), Workers(-3))
	assert.Equal(t, 2, Workers(2))
}

func TestParallelizeCoversEveryItem(t *testing.T) {
	for _, workers := range []int{0, 1, 3, 64} {
		for _, items := range []int{0, 1, 7, 100} {
			hits := make([]int32, items)
			Parallelize(items, workers, func(start, end int) {
				for i := start; i < end; i++ {
					atomic.AddInt32(&hits[i], 1)
				}
			})
			for i, h := range hits {
				assert.Equalf(t, int32(1), h, "workers=%d items=%d index=%d", workers, items, i)
			}
		}
	}
}

func TestParallelizeWithThreshold(t *testing.T) {
	calls := int32(0)
	ParallelizeWithThreshold(10, 100, 4, func(start, end int) {
		atomic.AddInt32(&calls, 1)
		assert.Equal(t, 0, start)
		assert.Equal(t, 10, end)
	})
	assert.Equal(t, int32(1), calls)
}

func TestForEach(t *testing.T) {
	for _, threshold := range []int{0, 10, 100} {
		out := make([]int, 50)
		ForEach(len(out), threshold, 4, func(i int) {
			out[i] = i * i
		})
		for i, v := range out {
			assert.Equalf(t, i*i, v, "threshold=%d", threshold)
		}
	}
}
