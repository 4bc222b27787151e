package errs

import (
	"fmt"
	"time"
)

// Error codes for the buffered metrics pipeline. These extend the generic
// codes above with pipeline-specific taxonomy from the interval validator,
// the strategies, and the filter collaborators.
const (
	CodeDuplicateBegin        = "METRICS_DUPLICATE_BEGIN"
	CodeEndWithoutBegin       = "METRICS_END_WITHOUT_BEGIN"
	CodeCancelWithoutBegin    = "METRICS_CANCEL_WITHOUT_BEGIN"
	CodeIntervalTypeMismatch  = "METRICS_INTERVAL_TYPE_MISMATCH"
	CodeModeOverloadMisuse    = "METRICS_MODE_OVERLOAD_MISUSE"
	CodeDuplicateFilterMember = "METRICS_DUPLICATE_FILTER_MEMBER"
	CodeStrategyMisconfigured = "METRICS_STRATEGY_MISCONFIGURED"
	CodeWorkerThreadError     = "METRICS_WORKER_THREAD_ERROR"
)

// workerThreadErrorPrefix is parsed by downstream log consumers; it must be
// present verbatim in every WorkerThreadError message.
const workerThreadErrorPrefix = "Exception occurred on buffer processing worker thread at "

// ErrDuplicateBegin reports a second Start on an already-open, non-interleaved
// interval metric, raised only when interval checking is enabled.
func ErrDuplicateBegin(metricType string) *Error {
	return NewError(CodeDuplicateBegin,
		fmt.Sprintf("duplicate begin for interval metric %q: an interval is already open", metricType), nil).
		WithContext("metricType", metricType).(*Error)
}

// ErrEndWithoutBegin reports an End with no matching in-flight Start. The
// metric type name is always recorded; beginID, when non-nil (interleaved),
// is added to the context as well.
func ErrEndWithoutBegin(metricType string, beginID any) *Error {
	e := NewError(CodeEndWithoutBegin,
		fmt.Sprintf("end without matching begin for interval metric %q", metricType), nil).
		WithContext("metricType", metricType).(*Error)
	if beginID != nil {
		e = e.WithContext("beginId", beginID).(*Error)
	}

	return e
}

// ErrCancelWithoutBegin reports a CancelBegin with no matching in-flight
// Start.
func ErrCancelWithoutBegin(metricType string, beginID any) *Error {
	e := NewError(CodeCancelWithoutBegin,
		fmt.Sprintf("cancel without matching begin for interval metric %q", metricType), nil).
		WithContext("metricType", metricType).(*Error)
	if beginID != nil {
		e = e.WithContext("beginId", beginID).(*Error)
	}

	return e
}

// ErrIntervalTypeMismatch reports an interleaved End/CancelBegin whose
// begin id was opened under a different metric type.
func ErrIntervalTypeMismatch(beginID any, startedType, suppliedType string) *Error {
	return NewError(CodeIntervalTypeMismatch,
		fmt.Sprintf("begin id %v was started for metric %q but ended for metric %q", beginID, startedType, suppliedType), nil).
		WithContext("beginId", beginID).
		WithContext("startedType", startedType).
		WithContext("suppliedType", suppliedType).(*Error)
}

// ErrModeOverloadMisuse reports a caller-thread call to the wrong begin/end
// overload for the buffer's already-latched mode.
func ErrModeOverloadMisuse(whichOverload, currentMode string) *Error {
	return NewError(CodeModeOverloadMisuse,
		fmt.Sprintf("%s is not valid once the logger has latched into %s mode", whichOverload, currentMode), nil).
		WithContext("overload", whichOverload).
		WithContext("mode", currentMode).(*Error)
}

// ErrDuplicateFilterMembership reports a metric type listed more than once
// within one of a filter's four construction-time type sets.
func ErrDuplicateFilterMembership(paramName, metricType string) *Error {
	return NewError(CodeDuplicateFilterMember,
		fmt.Sprintf("parameter %q lists metric type %q more than once", paramName, metricType), nil).
		WithContext("param", paramName).
		WithContext("metricType", metricType).(*Error)
}

// ErrStrategyMisconfigured reports a construction-time or start-time
// strategy configuration error, e.g. a bounded parameter below its minimum
// or Start called without a bound worker action.
func ErrStrategyMisconfigured(reason string) *Error {
	return NewError(CodeStrategyMisconfigured, reason, nil)
}

// ErrWorkerThreadError wraps an error raised by the worker's action so it can
// be re-raised, with cause preserved, on the next caller-thread logging call.
// The message must contain workerThreadErrorPrefix verbatim; downstream log
// consumers parse on that literal phrase.
func ErrWorkerThreadError(occurredAt time.Time, cause error) *Error {
	return NewError(CodeWorkerThreadError,
		workerThreadErrorPrefix+occurredAt.Format(time.RFC3339Nano), cause).
		WithContext("occurredAt", occurredAt).(*Error)
}
