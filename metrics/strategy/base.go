// Package strategy implements the three buffer-processing strategies —
// Looping, SizeLimited and Hybrid — that decide when a metrics.Buffer's
// worker thread(s) drain. All three embed base, which carries the shared
// worker-action binding, the one-shot cross-thread error slot, and the two
// callback registries (buffer_processed, on_processing_error).
package strategy

import (
	"sync/atomic"
	"time"

	"github.com/xraph/appmetrics/errs"
	"github.com/xraph/appmetrics/metrics"
)

// Option configures the cross-thread error-propagation behaviour shared by
// all three strategies.
type Option func(*base)

// WithRethrowOnNextLoggingCall controls whether the next caller-thread
// producer call re-raises a failed worker action as a WorkerThreadError.
// Defaults to true. When false, only the on_processing_error callback
// observes the failure and future metrics accumulate unbounded — a
// documented risk, not a bug.
func WithRethrowOnNextLoggingCall(rethrow bool) Option {
	return func(b *base) { b.rethrowOnNextLoggingCall = rethrow }
}

type errSlot struct {
	err        error
	occurredAt time.Time
}

// base is embedded, never used directly, by each strategy implementation.
type base struct {
	rethrowOnNextLoggingCall bool

	action atomic.Pointer[metrics.WorkerAction]

	// terminated latches true the first time the bound action fails; the
	// worker loop observes it and exits, per §4.2 ("the worker terminates")
	// regardless of the rethrow setting.
	terminated atomic.Bool
	pendingErr atomic.Pointer[errSlot]

	onProcessed atomic.Pointer[func()]
	onError     atomic.Pointer[func(error)]
}

func newBase(opts []Option) base {
	b := base{rethrowOnNextLoggingCall: true}
	for _, opt := range opts {
		opt(&b)
	}

	return b
}

func (b *base) BindWorkerAction(action metrics.WorkerAction) {
	b.action.Store(&action)
}

func (b *base) bound() bool { return b.action.Load() != nil }

func (b *base) OnBufferProcessed(fn func()) {
	b.onProcessed.Store(&fn)
}

func (b *base) OnProcessingError(fn func(error)) {
	b.onError.Store(&fn)
}

func (b *base) CheckAndRethrow() error {
	if !b.rethrowOnNextLoggingCall {
		return nil
	}

	slot := b.pendingErr.Swap(nil)
	if slot == nil {
		return nil
	}

	return errs.ErrWorkerThreadError(slot.occurredAt, slot.err)
}

// runAction invokes the bound action once and reports whether the worker
// loop should keep iterating. It always returns false once the action has
// ever failed — the worker terminates on the first error, whether or not
// rethrow-on-next-logging-call is enabled.
func (b *base) runAction() bool {
	if b.terminated.Load() {
		return false
	}

	action := b.action.Load()

	if err := (*action)(); err != nil {
		b.terminated.Store(true)
		b.pendingErr.Store(&errSlot{err: err, occurredAt: time.Now().UTC()})

		if fn := b.onError.Load(); fn != nil {
			(*fn)(err)
		}

		return false
	}

	if fn := b.onProcessed.Load(); fn != nil {
		(*fn)()
	}

	return true
}

func startCheck(b *base, param string, valid bool) error {
	if !b.bound() {
		return errs.ErrStrategyMisconfigured("Start called without a bound worker action")
	}

	if !valid {
		return errs.ErrStrategyMisconfigured(param)
	}

	return nil
}
