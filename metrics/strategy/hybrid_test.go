package strategy

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestHybridDrainsOnThresholdBeforeInterval(t *testing.T) {
	h := NewHybrid(2, time.Hour)

	var calls atomic.Int64
	done := make(chan struct{})
	h.BindWorkerAction(func() error {
		calls.Add(1)
		close(done)
		return nil
	})

	require.NoError(t, h.Start())
	defer h.Stop(false)

	h.NotifyCountBuffered()
	h.NotifyCountBuffered() // crosses threshold of 2

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("hybrid strategy never drained after crossing its size threshold")
	}

	require.Equal(t, int64(1), calls.Load())
}

func TestHybridDrainsOnIntervalWithNoTraffic(t *testing.T) {
	h := NewHybrid(1_000_000, 10*time.Millisecond)

	var calls atomic.Int64
	done := make(chan struct{})
	h.BindWorkerAction(func() error {
		if calls.Add(1) == 1 {
			close(done)
		}

		return nil
	})

	require.NoError(t, h.Start())
	defer h.Stop(false)

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("hybrid strategy never drained on its adaptive interval")
	}
}

func TestHybridIsProcessingGuardSkipsOverlappingRequests(t *testing.T) {
	h := NewHybrid(1, time.Hour)

	release := make(chan struct{})
	var calls atomic.Int64
	entered := make(chan struct{})
	h.BindWorkerAction(func() error {
		calls.Add(1)
		close(entered)
		<-release
		return nil
	})

	require.NoError(t, h.Start())

	h.NotifyCountBuffered() // threshold 1, requests processing immediately

	select {
	case <-entered:
	case <-time.After(2 * time.Second):
		t.Fatal("first drain never started")
	}

	// While the first drain is still blocked in-flight, further threshold
	// crossings must not queue a second concurrent drain.
	h.NotifyCountBuffered()
	h.NotifyCountBuffered()

	close(release)
	time.Sleep(50 * time.Millisecond)

	h.Stop(false)
	require.LessOrEqual(t, calls.Load(), int64(2))
}

func TestHybridRejectsNonPositiveParameters(t *testing.T) {
	h := NewHybrid(0, time.Second)
	h.BindWorkerAction(func() error { return nil })
	require.Error(t, h.Start())

	h2 := NewHybrid(1, 0)
	h2.BindWorkerAction(func() error { return nil })
	require.Error(t, h2.Start())
}
