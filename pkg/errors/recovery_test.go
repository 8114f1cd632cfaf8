package errors

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecover_WithPanic(t *testing.T) {
	run := func() (err error) {
		defer Recover(&err, "ID3Classifier.Fit")
		panic("boom")
	}

	err := run()
	require.Error(t, err)

	var panicErr *PanicError
	require.True(t, As(err, &panicErr))
	assert.Equal(t, "ID3Classifier.Fit", panicErr.Operation)
	assert.Equal(t, "boom", panicErr.PanicValue)
	assert.NotEmpty(t, panicErr.StackTrace)
	assert.Equal(t, "panic in ID3Classifier.Fit: boom", panicErr.Error())
	assert.Contains(t, panicErr.String(), "Stack trace:")
}

func TestRecover_WithoutPanic(t *testing.T) {
	run := func() (err error) {
		defer Recover(&err, "noop")
		return nil
	}
	assert.NoError(t, run())
}

func TestRecover_KeepsExistingError(t *testing.T) {
	original := fmt.Errorf("original error")

	run := func() (err error) {
		defer Recover(&err, "Render")
		err = original
		panic("after error")
	}

	err := run()
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "panic in Render"))
	assert.True(t, strings.Contains(err.Error(), "original error"))
	assert.True(t, Is(err, original))
}

func TestSafeExecute(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		assert.NoError(t, SafeExecute("op", func() error { return nil }))
	})

	t.Run("function error is returned unchanged", func(t *testing.T) {
		original := fmt.Errorf("function error")
		assert.Equal(t, original, SafeExecute("op", func() error { return original }))
	})

	t.Run("panic becomes PanicError", func(t *testing.T) {
		err := SafeExecute("op", func() error {
			var m map[string]int
			m["x"]++
			return nil
		})
		var panicErr *PanicError
		require.True(t, As(err, &panicErr))
		assert.Equal(t, "op", panicErr.Operation)
	})
}

func BenchmarkRecover_NoPanic(b *testing.B) {
	for i := 0; i < b.N; i++ {
		func() (err error) {
			defer Recover(&err, "bench")
			return nil
		}()
	}
}
