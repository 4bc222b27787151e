package strategy

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestSizeLimitedDrainsOnceThresholdCrossed(t *testing.T) {
	s := NewSizeLimited(3)

	var calls atomic.Int64
	done := make(chan struct{})
	s.BindWorkerAction(func() error {
		calls.Add(1)
		close(done)
		return nil
	})

	require.NoError(t, s.Start())

	s.NotifyCountBuffered()
	s.NotifyAmountBuffered()

	select {
	case <-done:
		t.Fatal("drained before threshold was reached")
	case <-time.After(50 * time.Millisecond):
	}

	s.NotifyStatusBuffered() // crosses the threshold of 3

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("size-limited strategy never drained after crossing its threshold")
	}

	s.Stop(false)
	require.Equal(t, int64(1), calls.Load())
}

func TestSizeLimitedCounterDecrementsOnClear(t *testing.T) {
	s := NewSizeLimited(2)
	s.BindWorkerAction(func() error { return nil })
	require.NoError(t, s.Start())
	defer s.Stop(false)

	s.NotifyCountBuffered()
	s.NotifyCountCleared(1)
	require.Equal(t, int64(0), s.size.Load())
}

func TestSizeLimitedRejectsNonPositiveThreshold(t *testing.T) {
	s := NewSizeLimited(0)
	s.BindWorkerAction(func() error { return nil })

	err := s.Start()
	require.Error(t, err)
	require.Contains(t, err.Error(), "buffer_size_limit")
}
