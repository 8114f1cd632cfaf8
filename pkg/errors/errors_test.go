package errors

import (
	"fmt"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewInvalidInputError(t *testing.T) {
	err := NewInvalidInputError("Fit", "3 feature rows but 2 labels")

	assert.Equal(t, "id3tree: Fit: invalid input: 3 feature rows but 2 labels", err.Error())

	var invalid *InvalidInputError
	require.True(t, As(err, &invalid))
	assert.Equal(t, "Fit", invalid.Op)

	formatted := fmt.Sprintf("%+v", err)
	assert.Contains(t, formatted, "errors_test.go", "stack trace should point at the caller")
}

func TestNewEmptyDataError(t *testing.T) {
	err := NewEmptyDataError("NewView")

	assert.True(t, Is(err, ErrEmptyData))
	var invalid *InvalidInputError
	assert.True(t, As(err, &invalid))
}

func TestNewSchemaMismatchError(t *testing.T) {
	err := NewSchemaMismatchError(4, "weather", "attribute missing from record")

	assert.Equal(t, `id3tree: record 4: schema mismatch on attribute "weather": attribute missing from record`, err.Error())

	var mismatch *SchemaMismatchError
	require.True(t, As(err, &mismatch))
	assert.Equal(t, 4, mismatch.Row)
}

func TestNewNotFittedError(t *testing.T) {
	err := NewNotFittedError("ID3Classifier", "Predict")

	assert.Equal(t, "id3tree: ID3Classifier: this model is not fitted yet. Call Fit() before using Predict()", err.Error())
	var notFitted *NotFittedError
	assert.True(t, As(err, &notFitted))
}

func TestNewModelError(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		wantMsg string
	}{
		{"with cause", fmt.Errorf("unexpected EOF"), "id3tree: LoadModel: decode: unexpected EOF"},
		{"without cause", nil, "id3tree: LoadModel: decode"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewModelError("LoadModel", "decode", tt.err)
			assert.Equal(t, tt.wantMsg, err.Error())
			if tt.err != nil {
				assert.True(t, Is(err, tt.err))
			}
		})
	}
}

func TestStackTrace(t *testing.T) {
	err := NewValueError("Accuracy", "empty label slices")
	assert.NotEmpty(t, StackTrace(err))
	assert.Empty(t, StackTrace(fmt.Errorf("plain")))
}

func TestWarn_UsesZerologSinkFirst(t *testing.T) {
	var plain, structured []error
	SetWarningHandler(func(w error) { plain = append(plain, w) })
	defer SetWarningHandler(nil)

	w := NewUnseenCategoryWarning("weather", "snow", "yes")
	Warn(w)
	require.Len(t, plain, 1)

	SetZerologWarnFunc(func(w error) { structured = append(structured, w) })
	defer SetZerologWarnFunc(nil)
	Warn(w)

	assert.Len(t, plain, 1)
	assert.Len(t, structured, 1)
	assert.Contains(t, structured[0].Error(), `value "snow" of attribute "weather"`)
}

func TestWarn_ConcurrentCallsDoNotSerialize(t *testing.T) {
	const callers = 4
	var entered sync.WaitGroup
	entered.Add(callers)
	// every call blocks until all callers are inside the handler at once
	SetWarningHandler(func(error) {
		entered.Done()
		entered.Wait()
	})
	defer SetWarningHandler(nil)

	var done sync.WaitGroup
	for i := 0; i < callers; i++ {
		done.Add(1)
		go func() {
			defer done.Done()
			Warn(NewUnseenCategoryWarning("weather", "snow", "yes"))
		}()
	}
	done.Wait()
}

func TestWarningsImplementLogObjectMarshaler(t *testing.T) {
	var _ zerolog.LogObjectMarshaler = &UnseenCategoryWarning{}
	var _ zerolog.LogObjectMarshaler = &UndefinedMetricWarning{}
	var _ zerolog.LogObjectMarshaler = &InvalidInputError{}
	var _ zerolog.LogObjectMarshaler = &SchemaMismatchError{}
}
