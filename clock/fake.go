package clock

import (
	"sync"
	"time"
)

// FakeMonotonic is a Monotonic driven by a scripted sequence of elapsed-tick
// values, one per call to ElapsedTicks. Once the script is exhausted, the
// last scripted value is returned repeatedly. Intended for the literal
// scenario tests of the scenario suite, which script exact tick sequences.
type FakeMonotonic struct {
	mu        sync.Mutex
	frequency int64
	ticks     []int64
	next      int
}

// NewFakeMonotonic builds a FakeMonotonic that returns ticks[i] on the i-th
// call to ElapsedTicks (clamped to the last element once exhausted).
func NewFakeMonotonic(frequency int64, ticks ...int64) *FakeMonotonic {
	return &FakeMonotonic{frequency: frequency, ticks: ticks}
}

func (f *FakeMonotonic) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.next = 0
}

func (f *FakeMonotonic) ElapsedTicks() int64 {
	f.mu.Lock()
	defer f.mu.Unlock()

	if len(f.ticks) == 0 {
		return 0
	}

	idx := f.next
	if idx >= len(f.ticks) {
		idx = len(f.ticks) - 1
	} else {
		f.next++
	}

	return f.ticks[idx]
}

func (f *FakeMonotonic) Frequency() int64 {
	return f.frequency
}

// FakeWall is a Wall that always reports a fixed instant.
type FakeWall struct {
	now time.Time
}

func NewFakeWall(now time.Time) *FakeWall {
	return &FakeWall{now: now}
}

func (f *FakeWall) UtcNow() time.Time { return f.now }
