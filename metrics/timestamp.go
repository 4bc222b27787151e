package metrics

import (
	"math"
	"time"
)

// hundredNanosPerSecond is 10_000_000, the number of 100ns units per second
// — the overflow-safe formula's pivot constant, independent of the clock's
// own Frequency().
const hundredNanosPerSecond = 10_000_000

// elapsedToDuration converts elapsedTicks, measured at the given frequency
// (ticks per second), into a time.Duration — saturating to the maximum
// representable duration rather than wrapping on overflow, per the
// overflow-safe formula the buffer's timestamp computation must reproduce:
//
//	adjusted_ticks = elapsed_ticks * (10_000_000 / frequency)  if frequency divides 10_000_000
//	                 (elapsed_ticks / frequency) * 10_000_000   otherwise
//
// followed by conversion of adjusted_ticks (a count of 100ns units) to
// nanoseconds, itself saturating.
func elapsedToDuration(elapsedTicks, frequency int64) time.Duration {
	if frequency <= 0 {
		return 0
	}

	var hundredNanos int64

	if hundredNanosPerSecond%frequency == 0 {
		multiplier := hundredNanosPerSecond / frequency
		hundredNanos = mulSaturate(elapsedTicks, multiplier)
	} else {
		hundredNanos = mulSaturate(elapsedTicks/frequency, hundredNanosPerSecond)
	}

	return time.Duration(mulSaturate(hundredNanos, 100))
}

// mulSaturate multiplies a and b, returning math.MaxInt64 (or math.MinInt64
// for a negative result) instead of wrapping when the product overflows
// int64.
func mulSaturate(a, b int64) int64 {
	if a == 0 || b == 0 {
		return 0
	}

	result := a * b
	if result/b != a {
		if (a > 0) == (b > 0) {
			return math.MaxInt64
		}

		return math.MinInt64
	}

	return result
}

// eventTimeAt returns the wall-clock instant corresponding to elapsedTicks
// ticks (at the given frequency) having passed since startUTC — invariant 1
// of the data model.
func eventTimeAt(startUTC time.Time, elapsedTicks, frequency int64) time.Time {
	return startUTC.Add(elapsedToDuration(elapsedTicks, frequency))
}
