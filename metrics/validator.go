package metrics

import (
	"github.com/xraph/appmetrics/errs"
	"github.com/xraph/appmetrics/idgen"
)

// mode is the buffer's one-way latch between interval-pairing disciplines.
// It starts Undetermined and is set, permanently, by the drain thread the
// first time it processes an End or CancelBegin boundary record — not by
// the caller thread that appended it. The buffer publishes the latched
// value to caller threads through an atomic field after each drain, so a
// subsequent caller-thread call using the wrong overload is rejected
// synchronously per spec (mode latching / ModeOverloadMisuse), while any
// record that slipped through a still-Undetermined gate before the latch
// flipped is caught here as a drain-fatal error instead.
type mode int32

const (
	modeUndetermined mode = iota
	modeInterleaved
	modeNonInterleaved
)

func (m mode) String() string {
	switch m {
	case modeInterleaved:
		return "interleaved"
	case modeNonInterleaved:
		return "non-interleaved"
	default:
		return "undetermined"
	}
}

// intervalValidator runs the state machine of §4.3.a. Every Begin call
// allocates a real id regardless of eventual mode (spec.md §4.3), so
// in-flight records are always keyed by id; openByMetric is a secondary,
// per-type stack of currently-open ids, used to resolve the non-interleaved
// End/CancelBegin overload (which addresses by type, not id) and to support
// interleaved nesting (multiple opens of the same type). It is owned
// entirely by the worker thread; no lock is needed.
type intervalValidator struct {
	checking    bool
	latchedMode mode
	inFlight    map[idgen.ID]uniqueIntervalRecord
	openByMetric map[*IntervalMetric][]idgen.ID
}

func newIntervalValidator(checking bool) *intervalValidator {
	return &intervalValidator{
		checking:     checking,
		inFlight:     make(map[idgen.ID]uniqueIntervalRecord),
		openByMetric: make(map[*IntervalMetric][]idgen.ID),
	}
}

// process validates one batch of uniqueIntervalRecords in FIFO order and
// returns the matched events to deliver to the sink. It returns the first
// validation error encountered (duplicate/orphan begin, type mismatch),
// which is fatal to the current drain per §4.3.a.
func (v *intervalValidator) process(batch []uniqueIntervalRecord, baseUnit BaseTimeUnit) ([]IntervalEvent, error) {
	events := make([]IntervalEvent, 0, len(batch))

	for _, rec := range batch {
		switch rec.point {
		case tpStart:
			if err := v.start(rec); err != nil {
				return events, err
			}
		case tpEnd:
			ev, emit, err := v.end(rec, baseUnit)
			if err != nil {
				return events, err
			}

			if emit {
				events = append(events, ev)
			}
		case tpCancel:
			if err := v.cancel(rec); err != nil {
				return events, err
			}
		}
	}

	return events, nil
}

func (v *intervalValidator) start(rec uniqueIntervalRecord) error {
	if v.latchedMode == modeNonInterleaved {
		if open := v.openByMetric[rec.metric]; len(open) > 0 {
			if v.checking {
				return errs.ErrDuplicateBegin(rec.metric.Name())
			}
			// Checking disabled: silently overwrite the previous start.
			delete(v.inFlight, open[0])
			v.openByMetric[rec.metric] = open[:0]
		}
	}

	v.inFlight[rec.beginID] = rec
	v.openByMetric[rec.metric] = append(v.openByMetric[rec.metric], rec.beginID)

	return nil
}

// end resolves an End record. The returned bool reports whether an
// IntervalEvent should be emitted — it is false (with a nil error) for the
// "non-interleaved, checking disabled, orphan end" case, which is valid but
// silent per the Open Question in spec.md §9.
func (v *intervalValidator) end(rec uniqueIntervalRecord, baseUnit BaseTimeUnit) (IntervalEvent, bool, error) {
	if rec.hasBeginID {
		if v.latchedMode == modeNonInterleaved {
			return IntervalEvent{}, false, errs.ErrModeOverloadMisuse("end(id, metric)", v.latchedMode.String())
		}

		v.latchedMode = modeInterleaved

		start, open := v.inFlight[rec.beginID]
		if !open {
			return IntervalEvent{}, false, errs.ErrEndWithoutBegin(rec.metric.Name(), rec.beginID.String())
		}

		if start.metric != rec.metric {
			v.drop(start.metric, rec.beginID)
			return IntervalEvent{}, false, errs.ErrIntervalTypeMismatch(rec.beginID.String(), start.metric.Name(), rec.metric.Name())
		}

		v.drop(start.metric, rec.beginID)

		return matchedInterval(start, rec, baseUnit), true, nil
	}

	if v.latchedMode == modeInterleaved {
		return IntervalEvent{}, false, errs.ErrModeOverloadMisuse("end(metric)", v.latchedMode.String())
	}

	v.latchedMode = modeNonInterleaved

	open := v.openByMetric[rec.metric]
	if len(open) == 0 {
		if v.checking {
			return IntervalEvent{}, false, errs.ErrEndWithoutBegin(rec.metric.Name(), nil)
		}

		return IntervalEvent{}, false, nil
	}

	id := open[len(open)-1]
	start := v.inFlight[id]
	v.drop(rec.metric, id)

	return matchedInterval(start, rec, baseUnit), true, nil
}

func (v *intervalValidator) cancel(rec uniqueIntervalRecord) error {
	if rec.hasBeginID {
		if v.latchedMode == modeNonInterleaved {
			return errs.ErrModeOverloadMisuse("cancelBegin(id, metric)", v.latchedMode.String())
		}

		v.latchedMode = modeInterleaved

		start, open := v.inFlight[rec.beginID]
		if !open {
			return errs.ErrCancelWithoutBegin(rec.metric.Name(), rec.beginID.String())
		}

		if start.metric != rec.metric {
			v.drop(start.metric, rec.beginID)
			return errs.ErrIntervalTypeMismatch(rec.beginID.String(), start.metric.Name(), rec.metric.Name())
		}

		v.drop(start.metric, rec.beginID)

		return nil
	}

	if v.latchedMode == modeInterleaved {
		return errs.ErrModeOverloadMisuse("cancelBegin(metric)", v.latchedMode.String())
	}

	v.latchedMode = modeNonInterleaved

	open := v.openByMetric[rec.metric]
	if len(open) == 0 {
		if v.checking {
			return errs.ErrCancelWithoutBegin(rec.metric.Name(), nil)
		}

		return nil
	}

	id := open[len(open)-1]
	v.drop(rec.metric, id)

	return nil
}

// drop removes id from both inFlight and its metric's open stack, wherever
// in the stack it is (interleaved Ends need not arrive in nesting order).
func (v *intervalValidator) drop(metric *IntervalMetric, id idgen.ID) {
	delete(v.inFlight, id)

	open := v.openByMetric[metric]
	for i, x := range open {
		if x == id {
			v.openByMetric[metric] = append(open[:i], open[i+1:]...)
			return
		}
	}
}

// matchedInterval computes the emitted duration, clamping to 0 if the clock
// ran backwards between begin and end (invariant 5).
func matchedInterval(start, end uniqueIntervalRecord, baseUnit BaseTimeUnit) IntervalEvent {
	elapsed := end.eventTimeUTC.Sub(start.eventTimeUTC)
	if elapsed < 0 {
		elapsed = 0
	}

	var duration int64
	if baseUnit == Nanoseconds {
		duration = elapsed.Nanoseconds()
	} else {
		duration = elapsed.Milliseconds()
	}

	return IntervalEvent{
		Metric:       start.metric,
		EventTimeUTC: start.eventTimeUTC,
		Duration:     duration,
	}
}
