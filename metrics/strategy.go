package metrics

// WorkerAction is the drain operation a strategy's worker thread(s) invoke
// on its own schedule. The buffer binds its dequeueAndProcessMetricEvents method as the
// worker action for whichever strategy it is constructed with.
type WorkerAction func() error

// Strategy decides when the worker drains the buffer. Looping, SizeLimited
// and Hybrid (package strategy) are the three variants; all three satisfy
// this interface so the buffer never depends on which one it was given.
type Strategy interface {
	// BindWorkerAction sets the action the worker thread(s) invoke on each
	// drain. Must be called before Start.
	BindWorkerAction(action WorkerAction)

	// Start begins the strategy's worker thread(s). Calling Start without a
	// bound worker action, or (for bounded strategies) having been
	// constructed with an out-of-range parameter, is reported as a
	// StrategyMisconfigured error. The strategies in package strategy do not
	// detect a second Start call; Buffer.Start rejects a second start of the
	// buffer itself.
	Start() error

	// Stop halts the worker thread(s) and blocks until they have exited. If
	// processRemaining is true, one final drain runs after the stop signal is
	// observed.
	Stop(processRemaining bool)

	NotifyCountBuffered()
	NotifyAmountBuffered()
	NotifyStatusBuffered()
	NotifyIntervalBuffered()

	// NotifyXCleared is invoked by the buffer's drain once each queue of kind
	// X has been swapped out and is about to be processed, with n the number
	// of records that were in it. Size-bounded strategies use this to keep
	// their size counters in sync with what has actually been drained.
	NotifyCountCleared(n int)
	NotifyAmountCleared(n int)
	NotifyStatusCleared(n int)
	NotifyIntervalCleared(n int)

	// OnBufferProcessed registers a callback invoked, on the worker thread,
	// immediately after every successful drain.
	OnBufferProcessed(fn func())

	// OnProcessingError registers the callback invoked, exactly once per
	// failure and before the worker terminates, with the action's error.
	// The callback itself must never panic back into the worker.
	OnProcessingError(fn func(error))

	// CheckAndRethrow is called by the buffer at the top of every producer
	// call (Increment, Add, Set, Begin, End, CancelBegin and their ByID
	// forms), before the matching Notify*Buffered call. If the worker's last action failed and
	// rethrow-on-next-logging-call is enabled, it returns a WorkerThreadError
	// wrapping the original cause (consumed exactly once); otherwise nil.
	CheckAndRethrow() error
}
