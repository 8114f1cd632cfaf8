package log

import (
	"fmt"
	"io"

	"github.com/rs/zerolog"

	"github.com/YuminosukeSato/id3tree/pkg/errors"
)

// SetupLogger installs a zerolog provider writing to out at the given level
// and routes errors.Warn through it.
func SetupLogger(out io.Writer, loglevel string) error {
	level, err := ToLogLevel(loglevel)
	if err != nil {
		return err
	}
	SetProvider(NewZerologProvider(out, level))

	warnLogger := NewZerologLogger(out, level).With(ComponentKey, "warnings")
	errors.SetZerologWarnFunc(func(w error) {
		var fields []any
		var unseen *errors.UnseenCategoryWarning
		if errors.As(w, &unseen) {
			fields = append(fields, ErrorCodeKey, ErrorUnseenCategory)
		}
		if m, ok := w.(zerolog.LogObjectMarshaler); ok {
			fields = append(fields, "warning", m)
		}
		warnLogger.Warn(w.Error(), fields...)
	})
	return nil
}

// ToLogLevel parses a level name.
func ToLogLevel(level string) (Level, error) {
	switch level {
	case "debug":
		return LevelDebug, nil
	case "info", "":
		return LevelInfo, nil
	case "warn":
		return LevelWarn, nil
	case "error":
		return LevelError, nil
	default:
		return LevelInfo, errors.NewValidationError("log_level", fmt.Sprintf("unknown level %q", level), level)
	}
}
