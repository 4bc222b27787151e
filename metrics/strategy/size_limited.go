package strategy

// SizeLimited drains once the total number of buffered-but-undrained
// records crosses a fixed threshold: wait on a signal, invoke the action,
// repeat. The signal channel is buffered to depth 1 so a threshold crossing
// that happens while a drain is already queued does not pile up requests.
type SizeLimited struct {
	base
	notifyCounters

	threshold int64

	signal chan struct{}
	stopCh chan struct{}
	doneCh chan struct{}
}

// NewSizeLimited constructs a SizeLimited strategy that drains once at
// least limit records are buffered across all four queues.
func NewSizeLimited(limit int, opts ...Option) *SizeLimited {
	return &SizeLimited{
		base:      newBase(opts),
		threshold: int64(limit),
		signal:    make(chan struct{}, 1),
	}
}

func (s *SizeLimited) Start() error {
	if err := startCheck(&s.base, "buffer_size_limit must be at least 1", s.threshold >= 1); err != nil {
		return err
	}

	s.stopCh = make(chan struct{})
	s.doneCh = make(chan struct{})

	go s.loop()

	return nil
}

func (s *SizeLimited) loop() {
	defer close(s.doneCh)

	for {
		select {
		case <-s.stopCh:
			return
		case <-s.signal:
			if !s.runAction() {
				return
			}
		}
	}
}

func (s *SizeLimited) Stop(processRemaining bool) {
	close(s.stopCh)
	<-s.doneCh

	if processRemaining && !s.terminated.Load() {
		s.runAction()
	}
}

func (s *SizeLimited) raiseSignal() {
	select {
	case s.signal <- struct{}{}:
	default:
	}
}

func (s *SizeLimited) bump() {
	if s.add(1) >= s.threshold {
		s.raiseSignal()
	}
}

func (s *SizeLimited) NotifyCountBuffered()    { s.bump() }
func (s *SizeLimited) NotifyAmountBuffered()   { s.bump() }
func (s *SizeLimited) NotifyStatusBuffered()   { s.bump() }
func (s *SizeLimited) NotifyIntervalBuffered() { s.bump() }

func (s *SizeLimited) NotifyCountCleared(n int)    { s.clear(n) }
func (s *SizeLimited) NotifyAmountCleared(n int)   { s.clear(n) }
func (s *SizeLimited) NotifyStatusCleared(n int)   { s.clear(n) }
func (s *SizeLimited) NotifyIntervalCleared(n int) { s.clear(n) }
