package sinks

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/xraph/appmetrics/metrics"
)

func TestDelimitedFileWritesCountLine(t *testing.T) {
	var buf bytes.Buffer
	d := NewDelimitedFileWriter(&buf, nil, "|")

	m := metrics.NewCountMetric("MessageReceived", "")
	ts := time.Date(2024, 6, 1, 12, 30, 0, 250_000_000, time.UTC)

	require.NoError(t, d.ProcessCounts([]metrics.CountEvent{{Metric: m, EventTimeUTC: ts}}))

	line := strings.TrimRight(buf.String(), "\n")
	require.Equal(t, "count: "+formatTimestamp(ts)+" | MessageReceived", line)
}

func TestDelimitedFileWritesAmountAndStatusAndIntervalLines(t *testing.T) {
	var buf bytes.Buffer
	d := NewDelimitedFileWriter(&buf, nil, "|")

	amountMetric := metrics.NewAmountMetric("BytesIn", "")
	statusMetric := metrics.NewStatusMetric("QueueDepth", "")
	intervalMetric := metrics.NewIntervalMetric("RequestDuration", "")
	ts := time.Now().UTC()

	require.NoError(t, d.ProcessAmounts([]metrics.AmountEvent{{Metric: amountMetric, Amount: 42, EventTimeUTC: ts}}))
	require.NoError(t, d.ProcessStatuses([]metrics.StatusEvent{{Metric: statusMetric, Value: 7, EventTimeUTC: ts}}))
	require.NoError(t, d.ProcessIntervals([]metrics.IntervalEvent{{Metric: intervalMetric, Duration: 120, EventTimeUTC: ts}}))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 3)
	require.Equal(t, "amount: "+formatTimestamp(ts)+" | BytesIn | 42", lines[0])
	require.Equal(t, "status: "+formatTimestamp(ts)+" | QueueDepth | 7", lines[1])
	require.Equal(t, "interval: "+formatTimestamp(ts)+" | RequestDuration | 120", lines[2])
}

func TestDelimitedFileFlushesAfterEveryLine(t *testing.T) {
	var buf bytes.Buffer
	d := NewDelimitedFileWriter(&buf, nil, "|")

	m := metrics.NewCountMetric("M", "")
	require.NoError(t, d.ProcessCounts([]metrics.CountEvent{{Metric: m}}))

	// No explicit Close or Flush call — writeLine must flush internally.
	require.NotEmpty(t, buf.String())
}

func TestDelimitedFileProcessAggregateIsNoOp(t *testing.T) {
	var buf bytes.Buffer
	d := NewDelimitedFileWriter(&buf, nil, "|")

	require.NoError(t, d.ProcessAggregate("HitRatio", "", 0.5))
	require.Empty(t, buf.String())
}

type nopCloser struct{ closed bool }

func (c *nopCloser) Close() error {
	c.closed = true
	return nil
}

func TestDelimitedFileCloseFlushesAndClosesUnderlying(t *testing.T) {
	var buf bytes.Buffer
	closer := &nopCloser{}
	d := NewDelimitedFileWriter(&buf, closer, "|")

	require.NoError(t, d.Close())
	require.True(t, closer.closed)
}
