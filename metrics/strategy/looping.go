package strategy

import "time"

// Looping drains on a fixed interval: invoke the action, sleep, repeat.
// Buffered-count notifications are no-ops to Looping itself — it tracks them
// anyway in the embedded notifyCounters, the same counter type SizeLimited
// and Hybrid compare against their thresholds.
type Looping struct {
	base
	notifyCounters

	interval time.Duration

	stopCh chan struct{}
	doneCh chan struct{}
}

// NewLooping constructs a Looping strategy that drains every interval.
func NewLooping(interval time.Duration, opts ...Option) *Looping {
	return &Looping{base: newBase(opts), interval: interval}
}

func (l *Looping) Start() error {
	if err := startCheck(&l.base, "dequeue_operation_loop_interval_ms must be positive", l.interval > 0); err != nil {
		return err
	}

	l.stopCh = make(chan struct{})
	l.doneCh = make(chan struct{})

	go l.loop()

	return nil
}

func (l *Looping) loop() {
	defer close(l.doneCh)

	ticker := time.NewTicker(l.interval)
	defer ticker.Stop()

	for {
		select {
		case <-l.stopCh:
			return
		case <-ticker.C:
			if !l.runAction() {
				return
			}
		}
	}
}

func (l *Looping) Stop(processRemaining bool) {
	close(l.stopCh)
	<-l.doneCh

	if processRemaining && !l.terminated.Load() {
		l.runAction()
	}
}
