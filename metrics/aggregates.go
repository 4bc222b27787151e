package metrics

// Aggregate definitions are registered through Buffer.Aggregates (before or
// after Start) and evaluated after every drain against the engine's running totals. Each carries its
// own display name/description, independent of the metrics it derives from.

// CountOverTimeAggregate emits Numerator's count per TimeUnit.
type CountOverTimeAggregate struct {
	Numerator   *CountMetric
	Unit        TimeUnit
	Name        string
	Description string
}

// AmountOverCountAggregate emits Amount's total divided by Count's total.
type AmountOverCountAggregate struct {
	Amount      *AmountMetric
	Count       *CountMetric
	Name        string
	Description string
}

// AmountOverTimeAggregate emits Amount's total per TimeUnit.
type AmountOverTimeAggregate struct {
	Amount      *AmountMetric
	Unit        TimeUnit
	Name        string
	Description string
}

// AmountOverAmountAggregate emits Numerator's total divided by Denominator's
// total.
type AmountOverAmountAggregate struct {
	Numerator   *AmountMetric
	Denominator *AmountMetric
	Name        string
	Description string
}

// IntervalOverCountAggregate emits Interval's summed duration divided by
// Count's total.
type IntervalOverCountAggregate struct {
	Interval    *IntervalMetric
	Count       *CountMetric
	Name        string
	Description string
}

// IntervalOverTotalRuntimeAggregate emits Interval's summed duration divided
// by the elapsed runtime since start(), expressed in the interval's own base
// time unit.
type IntervalOverTotalRuntimeAggregate struct {
	Interval    *IntervalMetric
	Name        string
	Description string
}
