package sinks

import (
	"sync"

	"github.com/xraph/appmetrics/metrics"
)

// AggregateSample is one ProcessAggregate call captured by Recording.
type AggregateSample struct {
	Name        string
	Description string
	Value       float64
}

// Recording is a metrics.Sink for tests: it captures every batch it
// receives and, optionally, injects an error via its FailX hooks — used to
// drive the cross-thread error-surfacing scenario (a sink that rejects a
// later batch; a rejected batch is not recorded).
type Recording struct {
	mu sync.Mutex

	Counts     []metrics.CountEvent
	Amounts    []metrics.AmountEvent
	Statuses   []metrics.StatusEvent
	Intervals  []metrics.IntervalEvent
	Aggregates []AggregateSample

	FailCounts     func(batch []metrics.CountEvent) error
	FailAmounts    func(batch []metrics.AmountEvent) error
	FailStatuses   func(batch []metrics.StatusEvent) error
	FailIntervals  func(batch []metrics.IntervalEvent) error
	FailAggregates func(name, description string, value float64) error
}

// NewRecording constructs an empty Recording sink.
func NewRecording() *Recording { return &Recording{} }

func (r *Recording) ProcessCounts(batch []metrics.CountEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.FailCounts != nil {
		if err := r.FailCounts(batch); err != nil {
			return err
		}
	}

	r.Counts = append(r.Counts, batch...)

	return nil
}

func (r *Recording) ProcessAmounts(batch []metrics.AmountEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.FailAmounts != nil {
		if err := r.FailAmounts(batch); err != nil {
			return err
		}
	}

	r.Amounts = append(r.Amounts, batch...)

	return nil
}

func (r *Recording) ProcessStatuses(batch []metrics.StatusEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.FailStatuses != nil {
		if err := r.FailStatuses(batch); err != nil {
			return err
		}
	}

	r.Statuses = append(r.Statuses, batch...)

	return nil
}

func (r *Recording) ProcessIntervals(batch []metrics.IntervalEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.FailIntervals != nil {
		if err := r.FailIntervals(batch); err != nil {
			return err
		}
	}

	r.Intervals = append(r.Intervals, batch...)

	return nil
}

func (r *Recording) ProcessAggregate(name, description string, value float64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.FailAggregates != nil {
		if err := r.FailAggregates(name, description, value); err != nil {
			return err
		}
	}

	r.Aggregates = append(r.Aggregates, AggregateSample{Name: name, Description: description, Value: value})

	return nil
}

// Snapshot returns copies of every captured slice, safe to inspect from a
// test goroutine while the buffer's worker may still be draining.
func (r *Recording) Snapshot() (counts []metrics.CountEvent, amounts []metrics.AmountEvent, statuses []metrics.StatusEvent, intervals []metrics.IntervalEvent, aggregates []AggregateSample) {
	r.mu.Lock()
	defer r.mu.Unlock()

	counts = append(counts, r.Counts...)
	amounts = append(amounts, r.Amounts...)
	statuses = append(statuses, r.Statuses...)
	intervals = append(intervals, r.Intervals...)
	aggregates = append(aggregates, r.Aggregates...)

	return
}
