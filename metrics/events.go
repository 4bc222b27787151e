package metrics

import (
	"time"

	"github.com/xraph/appmetrics/idgen"
)

// CountEvent is a finalised count observation delivered to the sink.
type CountEvent struct {
	Metric       *CountMetric
	EventTimeUTC time.Time
}

// AmountEvent is a finalised amount observation.
type AmountEvent struct {
	Metric       *AmountMetric
	EventTimeUTC time.Time
	Amount       int64
}

// StatusEvent is a finalised status sample.
type StatusEvent struct {
	Metric       *StatusMetric
	EventTimeUTC time.Time
	Value        int64
}

// IntervalEvent is a finalised, matched interval. Duration is expressed in
// the buffer's configured BaseTimeUnit.
type IntervalEvent struct {
	Metric       *IntervalMetric
	EventTimeUTC time.Time
	Duration     int64
}

// timePoint distinguishes the three kinds of interval boundary records a
// caller thread can append.
type timePoint int

const (
	tpStart timePoint = iota
	tpEnd
	tpCancel
)

// uniqueIntervalRecord is the internal, not-yet-validated record appended by
// begin/end/cancelBegin. eventTimeUTC is stamped on the producer thread, at
// call time, from the monotonic-derived wall-clock formula (timestamp.go) —
// the same instant every other queue kind stamps its records with.
type uniqueIntervalRecord struct {
	beginID      idgen.ID
	hasBeginID   bool
	metric       *IntervalMetric
	point        timePoint
	eventTimeUTC time.Time
}

// countRecord/amountRecord/statusRecord are the raw, queued producer-thread
// records, already wall-clock stamped at append time.
type countRecord struct {
	metric       *CountMetric
	eventTimeUTC time.Time
}

type amountRecord struct {
	metric       *AmountMetric
	amount       int64
	eventTimeUTC time.Time
}

type statusRecord struct {
	metric       *StatusMetric
	value        int64
	eventTimeUTC time.Time
}
