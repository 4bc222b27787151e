package metrics

import (
	"sync"
	"time"
)

// aggregateEngine maintains running totals per metric type and, on each
// drain, evaluates every registered aggregate definition against them. It is
// driven exclusively from the worker thread during a drain; the mutex only
// guards concurrent DefineX/Dispose calls a caller thread might make between
// drains.
type aggregateEngine struct {
	mu sync.Mutex

	countTotals    map[*CountMetric]uint64
	amountTotals   map[*AmountMetric]uint64
	intervalTotals map[*IntervalMetric]uint64

	baseUnit BaseTimeUnit

	countOverTime       []CountOverTimeAggregate
	amountOverCount     []AmountOverCountAggregate
	amountOverTime      []AmountOverTimeAggregate
	amountOverAmount    []AmountOverAmountAggregate
	intervalOverCount   []IntervalOverCountAggregate
	intervalOverRuntime []IntervalOverTotalRuntimeAggregate
}

func newAggregateEngine(baseUnit BaseTimeUnit) *aggregateEngine {
	return &aggregateEngine{
		countTotals:    make(map[*CountMetric]uint64),
		amountTotals:   make(map[*AmountMetric]uint64),
		intervalTotals: make(map[*IntervalMetric]uint64),
		baseUnit:       baseUnit,
	}
}

// DefineCountOverTime registers a CountOverTime aggregate, computed on every
// subsequent drain until Dispose removes it.
func (e *aggregateEngine) DefineCountOverTime(a CountOverTimeAggregate) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.countOverTime = append(e.countOverTime, a)
}

func (e *aggregateEngine) DefineAmountOverCount(a AmountOverCountAggregate) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.amountOverCount = append(e.amountOverCount, a)
}

func (e *aggregateEngine) DefineAmountOverTime(a AmountOverTimeAggregate) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.amountOverTime = append(e.amountOverTime, a)
}

func (e *aggregateEngine) DefineAmountOverAmount(a AmountOverAmountAggregate) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.amountOverAmount = append(e.amountOverAmount, a)
}

func (e *aggregateEngine) DefineIntervalOverCount(a IntervalOverCountAggregate) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.intervalOverCount = append(e.intervalOverCount, a)
}

func (e *aggregateEngine) DefineIntervalOverTotalRuntime(a IntervalOverTotalRuntimeAggregate) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.intervalOverRuntime = append(e.intervalOverRuntime, a)
}

// Dispose removes every aggregate definition (of any kind) registered under
// name.
func (e *aggregateEngine) Dispose(name string) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.countOverTime = filterOutNamed(e.countOverTime, name, func(a CountOverTimeAggregate) string { return a.Name })
	e.amountOverCount = filterOutNamed(e.amountOverCount, name, func(a AmountOverCountAggregate) string { return a.Name })
	e.amountOverTime = filterOutNamed(e.amountOverTime, name, func(a AmountOverTimeAggregate) string { return a.Name })
	e.amountOverAmount = filterOutNamed(e.amountOverAmount, name, func(a AmountOverAmountAggregate) string { return a.Name })
	e.intervalOverCount = filterOutNamed(e.intervalOverCount, name, func(a IntervalOverCountAggregate) string { return a.Name })
	e.intervalOverRuntime = filterOutNamed(e.intervalOverRuntime, name, func(a IntervalOverTotalRuntimeAggregate) string { return a.Name })
}

func filterOutNamed[T any](in []T, name string, nameOf func(T) string) []T {
	out := in[:0:0]

	for _, v := range in {
		if nameOf(v) != name {
			out = append(out, v)
		}
	}

	return out
}

// recordCounts folds a drained count batch into the running totals.
func (e *aggregateEngine) recordCounts(batch []CountEvent) {
	e.mu.Lock()
	defer e.mu.Unlock()

	for _, ev := range batch {
		e.countTotals[ev.Metric]++
	}
}

// recordAmounts folds a drained amount batch into the running totals.
// Negative amounts are not meaningful to sum and do not move the total.
func (e *aggregateEngine) recordAmounts(batch []AmountEvent) {
	e.mu.Lock()
	defer e.mu.Unlock()

	for _, ev := range batch {
		if ev.Amount > 0 {
			e.amountTotals[ev.Metric] += uint64(ev.Amount)
		}
	}
}

// recordIntervals folds a drained, matched interval batch into the running
// totals. Status events are never summed (not meaningful) and have no
// recordStatuses counterpart.
func (e *aggregateEngine) recordIntervals(batch []IntervalEvent) {
	e.mu.Lock()
	defer e.mu.Unlock()

	for _, ev := range batch {
		if ev.Duration > 0 {
			e.intervalTotals[ev.Metric] += uint64(ev.Duration)
		}
	}
}

// computeAndEmit evaluates every registered aggregate against the current
// totals and the elapsed runtime since start(), delivering each via
// sink.ProcessAggregate. elapsed is the wall-clock duration since start().
// It stops and returns on the first sink error, matching the fixed,
// in-order emission the sink contract promises.
func (e *aggregateEngine) computeAndEmit(sink Sink, elapsed time.Duration) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	elapsedMs := elapsed.Milliseconds()

	for _, a := range e.countOverTime {
		if elapsedMs == 0 {
			continue
		}

		total := e.countTotals[a.Numerator]
		denom := float64(elapsedMs) * a.Unit.Seconds() / 1000
		if err := sink.ProcessAggregate(a.Name, a.Description, float64(total)/denom); err != nil {
			return err
		}
	}

	for _, a := range e.amountOverCount {
		count := e.countTotals[a.Count]
		amount := e.amountTotals[a.Amount]

		value := float64(0)
		if count != 0 {
			value = float64(amount) / float64(count)
		}

		if err := sink.ProcessAggregate(a.Name, a.Description, value); err != nil {
			return err
		}
	}

	for _, a := range e.amountOverTime {
		if elapsedMs == 0 {
			continue
		}

		total := e.amountTotals[a.Amount]
		denom := float64(elapsedMs) * a.Unit.Seconds() / 1000
		if err := sink.ProcessAggregate(a.Name, a.Description, float64(total)/denom); err != nil {
			return err
		}
	}

	for _, a := range e.amountOverAmount {
		denom := e.amountTotals[a.Denominator]

		value := float64(0)
		if denom != 0 {
			value = float64(e.amountTotals[a.Numerator]) / float64(denom)
		}

		if err := sink.ProcessAggregate(a.Name, a.Description, value); err != nil {
			return err
		}
	}

	for _, a := range e.intervalOverCount {
		count := e.countTotals[a.Count]
		if count == 0 {
			continue
		}

		total := e.intervalTotals[a.Interval]
		if err := sink.ProcessAggregate(a.Name, a.Description, float64(total)/float64(count)); err != nil {
			return err
		}
	}

	runtimeInBaseUnit := elapsedMs
	if e.baseUnit == Nanoseconds {
		runtimeInBaseUnit = elapsed.Nanoseconds()
	}

	for _, a := range e.intervalOverRuntime {
		if runtimeInBaseUnit == 0 {
			continue
		}

		total := e.intervalTotals[a.Interval]
		if err := sink.ProcessAggregate(a.Name, a.Description, float64(total)/float64(runtimeInBaseUnit)); err != nil {
			return err
		}
	}

	return nil
}
