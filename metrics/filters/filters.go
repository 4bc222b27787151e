// Package filters provides sink-shaped decorators that forward to an
// underlying metrics.Sink conditionally by metric type: Inclusion,
// Exclusion and ByType, per spec.md §6.
package filters

import (
	"github.com/xraph/appmetrics/errs"
	"github.com/xraph/appmetrics/metrics"
)

// TypeSet names the four metric-type sets a filter is constructed with.
type TypeSet struct {
	Counts    []*metrics.CountMetric
	Amounts   []*metrics.AmountMetric
	Statuses  []*metrics.StatusMetric
	Intervals []*metrics.IntervalMetric
}

func checkDuplicates(paramName string, set TypeSet) error {
	seenCounts := make(map[*metrics.CountMetric]struct{}, len(set.Counts))
	for _, m := range set.Counts {
		if _, dup := seenCounts[m]; dup {
			return errs.ErrDuplicateFilterMembership(paramName, m.Name())
		}

		seenCounts[m] = struct{}{}
	}

	seenAmounts := make(map[*metrics.AmountMetric]struct{}, len(set.Amounts))
	for _, m := range set.Amounts {
		if _, dup := seenAmounts[m]; dup {
			return errs.ErrDuplicateFilterMembership(paramName, m.Name())
		}

		seenAmounts[m] = struct{}{}
	}

	seenStatuses := make(map[*metrics.StatusMetric]struct{}, len(set.Statuses))
	for _, m := range set.Statuses {
		if _, dup := seenStatuses[m]; dup {
			return errs.ErrDuplicateFilterMembership(paramName, m.Name())
		}

		seenStatuses[m] = struct{}{}
	}

	seenIntervals := make(map[*metrics.IntervalMetric]struct{}, len(set.Intervals))
	for _, m := range set.Intervals {
		if _, dup := seenIntervals[m]; dup {
			return errs.ErrDuplicateFilterMembership(paramName, m.Name())
		}

		seenIntervals[m] = struct{}{}
	}

	return nil
}

// membership is the shared shape of Inclusion and Exclusion: both wrap a
// sink and a TypeSet, differing only in how set membership is interpreted
// (forwards iff a metric is in the set, vs. forwards iff it is not).
type membership struct {
	next    metrics.Sink
	set     TypeSet
	include bool

	counts    map[*metrics.CountMetric]struct{}
	amounts   map[*metrics.AmountMetric]struct{}
	statuses  map[*metrics.StatusMetric]struct{}
	intervals map[*metrics.IntervalMetric]struct{}
}

func newMembership(paramName string, next metrics.Sink, set TypeSet, include bool) (*membership, error) {
	if err := checkDuplicates(paramName, set); err != nil {
		return nil, err
	}

	m := &membership{
		next:      next,
		set:       set,
		include:   include,
		counts:    make(map[*metrics.CountMetric]struct{}, len(set.Counts)),
		amounts:   make(map[*metrics.AmountMetric]struct{}, len(set.Amounts)),
		statuses:  make(map[*metrics.StatusMetric]struct{}, len(set.Statuses)),
		intervals: make(map[*metrics.IntervalMetric]struct{}, len(set.Intervals)),
	}

	for _, c := range set.Counts {
		m.counts[c] = struct{}{}
	}

	for _, a := range set.Amounts {
		m.amounts[a] = struct{}{}
	}

	for _, s := range set.Statuses {
		m.statuses[s] = struct{}{}
	}

	for _, iv := range set.Intervals {
		m.intervals[iv] = struct{}{}
	}

	return m, nil
}

func (m *membership) forwardsCount(metric *metrics.CountMetric) bool {
	_, in := m.counts[metric]
	return in == m.include
}

func (m *membership) forwardsAmount(metric *metrics.AmountMetric) bool {
	_, in := m.amounts[metric]
	return in == m.include
}

func (m *membership) forwardsStatus(metric *metrics.StatusMetric) bool {
	_, in := m.statuses[metric]
	return in == m.include
}

func (m *membership) forwardsInterval(metric *metrics.IntervalMetric) bool {
	_, in := m.intervals[metric]
	return in == m.include
}

func (m *membership) ProcessCounts(batch []metrics.CountEvent) error {
	filtered := filter(batch, func(ev metrics.CountEvent) bool { return m.forwardsCount(ev.Metric) })
	if len(filtered) == 0 {
		return nil
	}

	return m.next.ProcessCounts(filtered)
}

func (m *membership) ProcessAmounts(batch []metrics.AmountEvent) error {
	filtered := filter(batch, func(ev metrics.AmountEvent) bool { return m.forwardsAmount(ev.Metric) })
	if len(filtered) == 0 {
		return nil
	}

	return m.next.ProcessAmounts(filtered)
}

func (m *membership) ProcessStatuses(batch []metrics.StatusEvent) error {
	filtered := filter(batch, func(ev metrics.StatusEvent) bool { return m.forwardsStatus(ev.Metric) })
	if len(filtered) == 0 {
		return nil
	}

	return m.next.ProcessStatuses(filtered)
}

func (m *membership) ProcessIntervals(batch []metrics.IntervalEvent) error {
	filtered := filter(batch, func(ev metrics.IntervalEvent) bool { return m.forwardsInterval(ev.Metric) })
	if len(filtered) == 0 {
		return nil
	}

	return m.next.ProcessIntervals(filtered)
}

// ProcessAggregate is never filtered — aggregates are ratios over the whole
// buffer's totals, not a single metric type a TypeSet membership applies to.
func (m *membership) ProcessAggregate(name, description string, value float64) error {
	return m.next.ProcessAggregate(name, description, value)
}

func filter[T any](batch []T, keep func(T) bool) []T {
	out := batch[:0:0]

	for _, ev := range batch {
		if keep(ev) {
			out = append(out, ev)
		}
	}

	return out
}

// Inclusion forwards an event iff its metric is in the corresponding set.
type Inclusion struct{ *membership }

// NewInclusion constructs an Inclusion filter. Duplicate metrics within any
// one of set's four slices is a construction-time error.
func NewInclusion(next metrics.Sink, set TypeSet) (*Inclusion, error) {
	m, err := newMembership("include", next, set, true)
	if err != nil {
		return nil, err
	}

	return &Inclusion{m}, nil
}

// Exclusion forwards an event iff its metric is not in the corresponding set.
type Exclusion struct{ *membership }

// NewExclusion constructs an Exclusion filter.
func NewExclusion(next metrics.Sink, set TypeSet) (*Exclusion, error) {
	m, err := newMembership("exclude", next, set, false)
	if err != nil {
		return nil, err
	}

	return &Exclusion{m}, nil
}

// ByType forwards an event iff its kind's enable flag is true.
type ByType struct {
	next                                        metrics.Sink
	counts, amounts, statuses, intervals, aggrs bool
}

// ByTypeEnable selects which of the five event kinds ByType forwards.
type ByTypeEnable struct {
	Counts     bool
	Amounts    bool
	Statuses   bool
	Intervals  bool
	Aggregates bool
}

// NewByType constructs a ByType filter.
func NewByType(next metrics.Sink, enable ByTypeEnable) *ByType {
	return &ByType{
		next:      next,
		counts:    enable.Counts,
		amounts:   enable.Amounts,
		statuses:  enable.Statuses,
		intervals: enable.Intervals,
		aggrs:     enable.Aggregates,
	}
}

func (b *ByType) ProcessCounts(batch []metrics.CountEvent) error {
	if !b.counts {
		return nil
	}

	return b.next.ProcessCounts(batch)
}

func (b *ByType) ProcessAmounts(batch []metrics.AmountEvent) error {
	if !b.amounts {
		return nil
	}

	return b.next.ProcessAmounts(batch)
}

func (b *ByType) ProcessStatuses(batch []metrics.StatusEvent) error {
	if !b.statuses {
		return nil
	}

	return b.next.ProcessStatuses(batch)
}

func (b *ByType) ProcessIntervals(batch []metrics.IntervalEvent) error {
	if !b.intervals {
		return nil
	}

	return b.next.ProcessIntervals(batch)
}

func (b *ByType) ProcessAggregate(name, description string, value float64) error {
	if !b.aggrs {
		return nil
	}

	return b.next.ProcessAggregate(name, description, value)
}
