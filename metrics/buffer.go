package metrics

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/xid"
	"github.com/xraph/appmetrics/clock"
	"github.com/xraph/appmetrics/errs"
	"github.com/xraph/appmetrics/idgen"
	"github.com/xraph/appmetrics/log"
)

// Buffer is the four-queue metric logger: count, amount, status and interval
// observations accumulate under their own lock until the bound Strategy's
// worker thread swaps each queue out (by reference, not by copy) and drains
// it into the configured Sink, in the fixed order §4.3 mandates — counts,
// amounts, statuses, intervals, then aggregates.
type Buffer struct {
	cfg      BufferConfig
	sink     Sink
	strategy Strategy
	log      log.Logger

	monotonic clock.Monotonic
	wall      clock.Wall
	ids       idgen.Generator

	startUTC time.Time
	started  atomic.Bool

	countMu    sync.Mutex
	countQueue []countRecord

	amountMu    sync.Mutex
	amountQueue []amountRecord

	statusMu    sync.Mutex
	statusQueue []statusRecord

	intervalMu    sync.Mutex
	intervalQueue []uniqueIntervalRecord

	validator *intervalValidator
	// latchedMode mirrors validator.latchedMode, published after each drain
	// so caller threads can reject a mismatched begin/end overload
	// synchronously, per the mode-latching contract documented in
	// validator.go. Undetermined calls on either overload always pass this
	// gate; the validator itself is the final word for anything that slips
	// through during the undetermined window.
	latchedMode atomic.Int32

	engine *aggregateEngine
}

// NewBuffer constructs a Buffer bound to sink, applying cfg's defaults and
// validating it. The returned Buffer is not yet draining; call Start.
func NewBuffer(cfg BufferConfig, sink Sink) (*Buffer, error) {
	if err := cfg.validateAndApplyDefaults(); err != nil {
		return nil, err
	}

	b := &Buffer{
		cfg:       cfg,
		sink:      sink,
		strategy:  cfg.Strategy,
		log:       cfg.Logger.Named("appmetrics"),
		monotonic: cfg.Monotonic,
		wall:      cfg.Wall,
		ids:       cfg.IDs,
		validator: newIntervalValidator(cfg.IntervalChecking),
		engine:    newAggregateEngine(cfg.BaseTimeUnit),
	}

	b.strategy.BindWorkerAction(b.dequeueAndProcessMetricEvents)

	return b, nil
}

// Aggregates exposes the engine's DefineX/Dispose methods so callers can
// register ratio metrics before or after Start.
func (b *Buffer) Aggregates() *aggregateEngine { return b.engine }

// Start rebases the monotonic clock to zero and starts the bound strategy's
// worker thread(s). Calling Start twice is a StrategyMisconfigured error.
func (b *Buffer) Start() error {
	if !b.started.CompareAndSwap(false, true) {
		return errs.ErrStrategyMisconfigured("buffer already started")
	}

	b.monotonic.Reset()
	b.startUTC = b.wall.UtcNow()

	return b.strategy.Start()
}

// Stop halts the worker thread(s), draining whatever remains buffered.
func (b *Buffer) Stop() {
	b.strategy.Stop(true)
	b.started.Store(false)
}

func (b *Buffer) now() time.Time {
	ticks := b.monotonic.ElapsedTicks()
	return eventTimeAt(b.startUTC, ticks, b.monotonic.Frequency())
}

// checkMode enforces the already-latched mode synchronously on the caller
// thread, before anything is enqueued. Undetermined always passes.
func (b *Buffer) checkMode(hasBeginID bool, overload string) error {
	m := mode(b.latchedMode.Load())

	switch m {
	case modeUndetermined:
		return nil
	case modeInterleaved:
		if !hasBeginID {
			return errs.ErrModeOverloadMisuse(overload, m.String())
		}
	case modeNonInterleaved:
		if hasBeginID {
			return errs.ErrModeOverloadMisuse(overload, m.String())
		}
	}

	return nil
}

// Increment records one occurrence of a count metric.
func (b *Buffer) Increment(metric *CountMetric) error {
	if err := b.strategy.CheckAndRethrow(); err != nil {
		return err
	}

	ts := b.now()

	b.countMu.Lock()
	b.countQueue = append(b.countQueue, countRecord{metric: metric, eventTimeUTC: ts})
	b.countMu.Unlock()

	b.strategy.NotifyCountBuffered()

	return nil
}

// Add records an additive amount observation.
func (b *Buffer) Add(metric *AmountMetric, amount int64) error {
	if err := b.strategy.CheckAndRethrow(); err != nil {
		return err
	}

	ts := b.now()

	b.amountMu.Lock()
	b.amountQueue = append(b.amountQueue, amountRecord{metric: metric, amount: amount, eventTimeUTC: ts})
	b.amountMu.Unlock()

	b.strategy.NotifyAmountBuffered()

	return nil
}

// Set records a latest-value-wins status sample.
func (b *Buffer) Set(metric *StatusMetric, value int64) error {
	if err := b.strategy.CheckAndRethrow(); err != nil {
		return err
	}

	ts := b.now()

	b.statusMu.Lock()
	b.statusQueue = append(b.statusQueue, statusRecord{metric: metric, value: value, eventTimeUTC: ts})
	b.statusMu.Unlock()

	b.strategy.NotifyStatusBuffered()

	return nil
}

// Begin opens an interval and returns its begin id. The id is always
// allocated, even if the caller goes on to use the non-interleaved End(metric)
// overload and never references it — per §4.3, id allocation does not depend
// on which overload will eventually close the interval.
func (b *Buffer) Begin(metric *IntervalMetric) (idgen.ID, error) {
	if err := b.strategy.CheckAndRethrow(); err != nil {
		return idgen.Nil, err
	}

	id := b.ids.NewID()
	ts := b.now()

	b.intervalMu.Lock()
	b.intervalQueue = append(b.intervalQueue, uniqueIntervalRecord{
		beginID: id, hasBeginID: true, metric: metric, point: tpStart, eventTimeUTC: ts,
	})
	b.intervalMu.Unlock()

	b.strategy.NotifyIntervalBuffered()

	return id, nil
}

// End closes the most recently opened interval of metric's type — the
// non-interleaved overload. It is rejected synchronously if the buffer has
// already latched into interleaved mode.
func (b *Buffer) End(metric *IntervalMetric) error {
	return b.appendBoundary(tpEnd, idgen.Nil, false, metric, "end(metric)")
}

// EndByID closes the specific interval identified by id — the interleaved
// overload. It is rejected synchronously if the buffer has already latched
// into non-interleaved mode.
func (b *Buffer) EndByID(id idgen.ID, metric *IntervalMetric) error {
	return b.appendBoundary(tpEnd, id, true, metric, "end(id, metric)")
}

// CancelBegin discards the most recently opened interval of metric's type
// without emitting an IntervalEvent — the non-interleaved overload.
func (b *Buffer) CancelBegin(metric *IntervalMetric) error {
	return b.appendBoundary(tpCancel, idgen.Nil, false, metric, "cancelBegin(metric)")
}

// CancelBeginByID discards the specific interval identified by id — the
// interleaved overload.
func (b *Buffer) CancelBeginByID(id idgen.ID, metric *IntervalMetric) error {
	return b.appendBoundary(tpCancel, id, true, metric, "cancelBegin(id, metric)")
}

func (b *Buffer) appendBoundary(point timePoint, id idgen.ID, hasBeginID bool, metric *IntervalMetric, overload string) error {
	if err := b.strategy.CheckAndRethrow(); err != nil {
		return err
	}

	if err := b.checkMode(hasBeginID, overload); err != nil {
		return err
	}

	ts := b.now()

	b.intervalMu.Lock()
	b.intervalQueue = append(b.intervalQueue, uniqueIntervalRecord{
		beginID: id, hasBeginID: hasBeginID, metric: metric, point: point, eventTimeUTC: ts,
	})
	b.intervalMu.Unlock()

	b.strategy.NotifyIntervalBuffered()

	return nil
}

// dequeueAndProcessMetricEvents is the WorkerAction bound to the strategy. It
// swaps every queue out under its own lock, then processes the four kinds in
// the fixed order and finally evaluates aggregates, all under a per-drain
// correlation id for logging. A non-nil return is fatal to the drain and
// surfaces through the strategy's rethrow mechanism on the next caller-thread
// producer call.
func (b *Buffer) dequeueAndProcessMetricEvents() error {
	drainID := xid.New()
	logger := b.log.With(log.String("drainId", drainID.String()))

	counts := b.swapCounts()
	amounts := b.swapAmounts()
	statuses := b.swapStatuses()
	intervals := b.swapIntervals()

	b.strategy.NotifyCountCleared(len(counts))
	b.strategy.NotifyAmountCleared(len(amounts))
	b.strategy.NotifyStatusCleared(len(statuses))
	b.strategy.NotifyIntervalCleared(len(intervals))

	countEvents := make([]CountEvent, len(counts))
	for i, r := range counts {
		countEvents[i] = CountEvent{Metric: r.metric, EventTimeUTC: r.eventTimeUTC}
	}

	if err := b.sink.ProcessCounts(countEvents); err != nil {
		logger.Error("sink rejected count batch", log.Error(err))
		return err
	}

	b.engine.recordCounts(countEvents)

	amountEvents := make([]AmountEvent, len(amounts))
	for i, r := range amounts {
		amountEvents[i] = AmountEvent{Metric: r.metric, EventTimeUTC: r.eventTimeUTC, Amount: r.amount}
	}

	if err := b.sink.ProcessAmounts(amountEvents); err != nil {
		logger.Error("sink rejected amount batch", log.Error(err))
		return err
	}

	b.engine.recordAmounts(amountEvents)

	statusEvents := make([]StatusEvent, len(statuses))
	for i, r := range statuses {
		statusEvents[i] = StatusEvent{Metric: r.metric, EventTimeUTC: r.eventTimeUTC, Value: r.value}
	}

	if err := b.sink.ProcessStatuses(statusEvents); err != nil {
		logger.Error("sink rejected status batch", log.Error(err))
		return err
	}

	intervalEvents, err := b.validator.process(intervals, b.cfg.BaseTimeUnit)
	b.latchedMode.Store(int32(b.validator.latchedMode))

	if err != nil {
		logger.Error("interval validation failed", log.Error(err))
		return err
	}

	if err := b.sink.ProcessIntervals(intervalEvents); err != nil {
		logger.Error("sink rejected interval batch", log.Error(err))
		return err
	}

	b.engine.recordIntervals(intervalEvents)

	elapsed := b.wall.UtcNow().Sub(b.startUTC)
	if err := b.engine.computeAndEmit(b.sink, elapsed); err != nil {
		logger.Error("sink rejected aggregate", log.Error(err))
		return err
	}

	return nil
}

func (b *Buffer) swapCounts() []countRecord {
	b.countMu.Lock()
	defer b.countMu.Unlock()

	batch := b.countQueue
	b.countQueue = nil

	return batch
}

func (b *Buffer) swapAmounts() []amountRecord {
	b.amountMu.Lock()
	defer b.amountMu.Unlock()

	batch := b.amountQueue
	b.amountQueue = nil

	return batch
}

func (b *Buffer) swapStatuses() []statusRecord {
	b.statusMu.Lock()
	defer b.statusMu.Unlock()

	batch := b.statusQueue
	b.statusQueue = nil

	return batch
}

func (b *Buffer) swapIntervals() []uniqueIntervalRecord {
	b.intervalMu.Lock()
	defer b.intervalMu.Unlock()

	batch := b.intervalQueue
	b.intervalQueue = nil

	return batch
}
