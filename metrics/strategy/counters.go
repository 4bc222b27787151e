package strategy

import "sync/atomic"

// notifyCounters tracks the total number of buffered-but-undrained records
// across all four queue kinds, manipulated with atomic operations per
// §5's "strategy's size counters" invariant. Looping tracks it without
// acting on it; SizeLimited and Hybrid additionally compare it against a
// threshold on every increment.
type notifyCounters struct {
	size atomic.Int64
}

func (n *notifyCounters) add(delta int64) int64 {
	return n.size.Add(delta)
}

func (n *notifyCounters) clear(drained int) {
	n.size.Add(-int64(drained))
}

func (l *Looping) NotifyCountBuffered()    { l.add(1) }
func (l *Looping) NotifyAmountBuffered()   { l.add(1) }
func (l *Looping) NotifyStatusBuffered()   { l.add(1) }
func (l *Looping) NotifyIntervalBuffered() { l.add(1) }

func (l *Looping) NotifyCountCleared(n int)    { l.clear(n) }
func (l *Looping) NotifyAmountCleared(n int)   { l.clear(n) }
func (l *Looping) NotifyStatusCleared(n int)   { l.clear(n) }
func (l *Looping) NotifyIntervalCleared(n int) { l.clear(n) }
