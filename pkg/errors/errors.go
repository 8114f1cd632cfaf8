// Package errors provides the error and warning types shared across id3tree.
// Every constructor attaches a stack trace through cockroachdb/errors, and the
// structured types implement zerolog.LogObjectMarshaler so they can be logged
// as objects.
package errors

import (
	"fmt"
	"log"
	"sync"

	"github.com/cockroachdb/errors"
	"github.com/rs/zerolog"
)

// ===========================================================================
//
//	Global warning handling
//
// ===========================================================================
var (
	warningMutex   sync.RWMutex
	warningHandler = func(w error) {
		log.Printf("id3tree-Warning: %v\n", w)
	}
	// set by pkg/log to avoid an import cycle
	zerologWarnFunc func(warning error)
)

// SetWarningHandler replaces the handler used by Warn.
//
// Example:
//
//	errors.SetWarningHandler(func(w error) {
//	    // drop warnings
//	})
func SetWarningHandler(handler func(w error)) {
	warningMutex.Lock()
	defer warningMutex.Unlock()
	warningHandler = handler
}

// SetZerologWarnFunc installs a zerolog-backed warning sink. It takes
// precedence over the handler set with SetWarningHandler.
func SetZerologWarnFunc(warnFunc func(warning error)) {
	warningMutex.Lock()
	defer warningMutex.Unlock()
	zerologWarnFunc = warnFunc
}

// Warn emits a warning. Structured output is used when a zerolog sink is
// installed, the plain handler otherwise. Concurrent calls do not wait for
// each other, so sinks must be safe for concurrent use.
func Warn(w error) {
	warningMutex.RLock()
	defer warningMutex.RUnlock()

	if zerologWarnFunc != nil {
		zerologWarnFunc(w)
		return
	}
	if warningHandler != nil {
		warningHandler(w)
	}
}

// ===========================================================================
//
//	Warnings
//
// ===========================================================================

// UnseenCategoryWarning is raised when a record carries a value that no
// training row had at the internal node being traversed. Prediction falls
// back to the majority label of that node.
type UnseenCategoryWarning struct {
	Attribute string
	Value     string
	Fallback  string
}

func (w *UnseenCategoryWarning) Error() string {
	return fmt.Sprintf("value %q of attribute %q was not seen during training; falling back to majority label %q",
		w.Value, w.Attribute, w.Fallback)
}

// MarshalZerologObject adds the warning fields to a zerolog event.
func (w *UnseenCategoryWarning) MarshalZerologObject(e *zerolog.Event) {
	e.Str("attribute", w.Attribute).
		Str("value", w.Value).
		Str("fallback", w.Fallback).
		Str("type", "UnseenCategoryWarning")
}

// NewUnseenCategoryWarning creates an UnseenCategoryWarning.
func NewUnseenCategoryWarning(attribute, value, fallback string) *UnseenCategoryWarning {
	return &UnseenCategoryWarning{Attribute: attribute, Value: value, Fallback: fallback}
}

// UndefinedMetricWarning is raised when a metric cannot be computed from its
// input and a conventional value is returned instead.
type UndefinedMetricWarning struct {
	Metric    string
	Condition string
	Result    float64
}

func (w *UndefinedMetricWarning) Error() string {
	return fmt.Sprintf("'%s' is ill-defined and being set to %f due to %s.", w.Metric, w.Result, w.Condition)
}

// MarshalZerologObject adds the warning fields to a zerolog event.
func (w *UndefinedMetricWarning) MarshalZerologObject(e *zerolog.Event) {
	e.Str("metric", w.Metric).
		Str("condition", w.Condition).
		Float64("result", w.Result).
		Str("type", "UndefinedMetricWarning")
}

// NewUndefinedMetricWarning creates an UndefinedMetricWarning.
func NewUndefinedMetricWarning(metric, condition string, result float64) *UndefinedMetricWarning {
	return &UndefinedMetricWarning{Metric: metric, Condition: condition, Result: result}
}

// ===========================================================================
//
//	Structured errors
//
// ===========================================================================

// InvalidInputError reports training data that cannot be used: misaligned
// feature and label lengths, zero rows, ragged or duplicated columns.
type InvalidInputError struct {
	Op     string
	Reason string
	Err    error
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("id3tree: %s: invalid input: %s", e.Op, e.Reason)
}

func (e *InvalidInputError) Unwrap() error {
	return e.Err
}

// MarshalZerologObject adds the error fields to a zerolog event.
func (e *InvalidInputError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("operation", e.Op).
		Str("reason", e.Reason).
		Str("type", "InvalidInputError")
}

// NewInvalidInputError creates an InvalidInputError with a stack trace.
func NewInvalidInputError(op, reason string) error {
	return errors.WithStack(&InvalidInputError{Op: op, Reason: reason})
}

// NewInvalidInputErrorf is NewInvalidInputError with a formatted reason.
func NewInvalidInputErrorf(op, format string, args ...interface{}) error {
	return errors.WithStack(&InvalidInputError{Op: op, Reason: fmt.Sprintf(format, args...)})
}

// NewEmptyDataError creates an InvalidInputError that wraps ErrEmptyData.
func NewEmptyDataError(op string) error {
	return errors.WithStack(&InvalidInputError{Op: op, Reason: "zero rows", Err: ErrEmptyData})
}

// SchemaMismatchError reports a record that does not match the attributes the
// model was trained on. It is fatal for that record only.
type SchemaMismatchError struct {
	Row       int
	Attribute string
	Reason    string
}

func (e *SchemaMismatchError) Error() string {
	return fmt.Sprintf("id3tree: record %d: schema mismatch on attribute %q: %s", e.Row, e.Attribute, e.Reason)
}

// MarshalZerologObject adds the error fields to a zerolog event.
func (e *SchemaMismatchError) MarshalZerologObject(event *zerolog.Event) {
	event.Int("row", e.Row).
		Str("attribute", e.Attribute).
		Str("reason", e.Reason).
		Str("type", "SchemaMismatchError")
}

// NewSchemaMismatchError creates a SchemaMismatchError with a stack trace.
func NewSchemaMismatchError(row int, attribute, reason string) error {
	return errors.WithStack(&SchemaMismatchError{Row: row, Attribute: attribute, Reason: reason})
}

// NotFittedError is returned when Predict, Score or Render is called before Fit.
type NotFittedError struct {
	ModelName string
	Method    string
}

func (e *NotFittedError) Error() string {
	return fmt.Sprintf("id3tree: %s: this model is not fitted yet. Call Fit() before using %s()", e.ModelName, e.Method)
}

// MarshalZerologObject adds the error fields to a zerolog event.
func (e *NotFittedError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("model_name", e.ModelName).
		Str("method", e.Method).
		Str("type", "NotFittedError")
}

// NewNotFittedError creates a NotFittedError with a stack trace.
func NewNotFittedError(modelName, method string) error {
	return errors.WithStack(&NotFittedError{ModelName: modelName, Method: method})
}

// ValidationError reports a parameter or configuration value that failed
// validation.
type ValidationError struct {
	ParamName string
	Reason    string
	Value     interface{}
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("id3tree: validation failed for parameter '%s': %s (got: %v)", e.ParamName, e.Reason, e.Value)
}

// MarshalZerologObject adds the error fields to a zerolog event.
func (e *ValidationError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("param_name", e.ParamName).
		Str("reason", e.Reason).
		Interface("value", e.Value).
		Str("type", "ValidationError")
}

// NewValidationError creates a ValidationError with a stack trace.
func NewValidationError(param, reason string, value interface{}) error {
	return errors.WithStack(&ValidationError{ParamName: param, Reason: reason, Value: value})
}

// ValueError reports an argument with an unusable value, such as empty
// label slices passed to a metric.
type ValueError struct {
	Op      string
	Message string
}

func (e *ValueError) Error() string {
	return fmt.Sprintf("id3tree: %s: %s", e.Op, e.Message)
}

// NewValueError creates a ValueError with a stack trace.
func NewValueError(op, message string) error {
	return errors.WithStack(&ValueError{Op: op, Message: message})
}

// ModelError is a general model failure, for example a model file that cannot
// be decoded.
type ModelError struct {
	Op   string
	Kind string
	Err  error
}

func (e *ModelError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("id3tree: %s: %s: %v", e.Op, e.Kind, e.Err)
	}
	return fmt.Sprintf("id3tree: %s: %s", e.Op, e.Kind)
}

func (e *ModelError) Unwrap() error {
	return e.Err
}

// NewModelError creates a ModelError with a stack trace.
func NewModelError(op, kind string, err error) error {
	return errors.WithStack(&ModelError{Op: op, Kind: kind, Err: err})
}

// ===========================================================================
//
//	cockroachdb/errors wrappers
//
// ===========================================================================

// Is reports whether any error in err's chain matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}

// Wrap annotates err with a message.
func Wrap(err error, message string) error {
	return errors.Wrap(err, message)
}

// Wrapf annotates err with a formatted message.
func Wrapf(err error, format string, args ...interface{}) error {
	return errors.Wrapf(err, format, args...)
}

// New creates an error with a stack trace.
func New(message string) error {
	return errors.New(message)
}

// Newf creates a formatted error with a stack trace.
func Newf(format string, args ...interface{}) error {
	return errors.Newf(format, args...)
}

// WithStack attaches a stack trace to err.
func WithStack(err error) error {
	return errors.WithStack(err)
}

// StackTrace returns the first safe detail recorded on err, which for errors
// built here is the formatted stack trace.
func StackTrace(err error) string {
	details := errors.GetSafeDetails(err).SafeDetails
	if len(details) > 0 {
		return details[0]
	}
	return ""
}

// ===========================================================================
//
//	Sentinels
//
// ===========================================================================

var (
	// ErrEmptyData is wrapped by InvalidInput errors caused by zero rows.
	ErrEmptyData = New("empty data")

	// ErrUnknownAttribute is returned when an attribute is not part of a view.
	ErrUnknownAttribute = New("unknown attribute")
)
