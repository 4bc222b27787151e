package strategy

import (
	"sync"
	"sync/atomic"
	"time"
)

// Hybrid drains on whichever comes first: a size threshold or an elapsed
// interval. Two worker goroutines cooperate — trigger wakes on an adaptive
// sleep and requests a drain unless one is already running; processing waits
// for a request and runs the action. NotifyXBuffered (from producer threads)
// raises the same request when the size threshold is crossed, so a batch
// never waits past the interval even if the threshold is crossed right
// after the trigger goroutine falls asleep.
type Hybrid struct {
	base
	notifyCounters

	threshold int64
	interval  time.Duration

	isProcessing atomic.Bool
	requestCh    chan struct{}

	lastCompleteMu sync.Mutex
	lastComplete   time.Time

	stopCh         chan struct{}
	triggerDone    chan struct{}
	processingDone chan struct{}
}

// NewHybrid constructs a Hybrid strategy draining on limit buffered records
// or interval elapsed time, whichever happens first.
func NewHybrid(limit int, interval time.Duration, opts ...Option) *Hybrid {
	return &Hybrid{
		base:      newBase(opts),
		threshold: int64(limit),
		interval:  interval,
		requestCh: make(chan struct{}, 1),
	}
}

func (h *Hybrid) Start() error {
	if err := startCheck(&h.base, "buffer_size_limit must be at least 1", h.threshold >= 1); err != nil {
		return err
	}

	if err := startCheck(&h.base, "dequeue_operation_loop_interval_ms must be positive", h.interval > 0); err != nil {
		return err
	}

	h.lastCompleteMu.Lock()
	h.lastComplete = time.Now()
	h.lastCompleteMu.Unlock()

	h.stopCh = make(chan struct{})
	h.triggerDone = make(chan struct{})
	h.processingDone = make(chan struct{})

	go h.triggerLoop()
	go h.processingLoop()

	return nil
}

func (h *Hybrid) triggerLoop() {
	defer close(h.triggerDone)

	for {
		select {
		case <-h.stopCh:
			return
		case <-time.After(h.nextSleep()):
			if h.terminated.Load() {
				return
			}

			h.requestProcessing()
		}
	}
}

// nextSleep is interval minus however long has passed since the last
// completed drain, clamped to zero — a negative value means a full interval
// has already passed since that drain, so the trigger fires immediately.
func (h *Hybrid) nextSleep() time.Duration {
	h.lastCompleteMu.Lock()
	last := h.lastComplete
	h.lastCompleteMu.Unlock()

	sleep := h.interval - time.Since(last)
	if sleep < 0 {
		return 0
	}

	return sleep
}

func (h *Hybrid) processingLoop() {
	defer close(h.processingDone)

	for {
		select {
		case <-h.stopCh:
			return
		case <-h.requestCh:
			if !h.runOne() {
				return
			}
		}
	}
}

func (h *Hybrid) runOne() bool {
	h.isProcessing.Store(true)

	ok := h.runAction()

	h.lastCompleteMu.Lock()
	h.lastComplete = time.Now()
	h.lastCompleteMu.Unlock()

	h.isProcessing.Store(false)

	return ok
}

func (h *Hybrid) requestProcessing() {
	if h.isProcessing.Load() {
		return
	}

	select {
	case h.requestCh <- struct{}{}:
	default:
	}
}

func (h *Hybrid) Stop(processRemaining bool) {
	close(h.stopCh)
	<-h.triggerDone
	<-h.processingDone

	if processRemaining && !h.terminated.Load() {
		h.runOne()
	}
}

func (h *Hybrid) bump() {
	if h.add(1) >= h.threshold {
		h.requestProcessing()
	}
}

func (h *Hybrid) NotifyCountBuffered()    { h.bump() }
func (h *Hybrid) NotifyAmountBuffered()   { h.bump() }
func (h *Hybrid) NotifyStatusBuffered()   { h.bump() }
func (h *Hybrid) NotifyIntervalBuffered() { h.bump() }

func (h *Hybrid) NotifyCountCleared(n int)    { h.clear(n) }
func (h *Hybrid) NotifyAmountCleared(n int)   { h.clear(n) }
func (h *Hybrid) NotifyStatusCleared(n int)   { h.clear(n) }
func (h *Hybrid) NotifyIntervalCleared(n int) { h.clear(n) }
