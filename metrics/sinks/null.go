package sinks

import "github.com/xraph/appmetrics/metrics"

// Null is a metrics.Sink that discards everything — useful when a buffer is
// wired up purely to exercise its aggregate engine's side effects (e.g.
// metrics exposed via a separate polling API) with no reporter of its own.
type Null struct{}

// NewNull constructs a Null sink.
func NewNull() Null { return Null{} }

func (Null) ProcessCounts([]metrics.CountEvent) error       { return nil }
func (Null) ProcessAmounts([]metrics.AmountEvent) error     { return nil }
func (Null) ProcessStatuses([]metrics.StatusEvent) error    { return nil }
func (Null) ProcessIntervals([]metrics.IntervalEvent) error { return nil }
func (Null) ProcessAggregate(string, string, float64) error { return nil }
