package sinks

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/xraph/appmetrics/metrics"
)

func TestRecordingCapturesEveryBatch(t *testing.T) {
	r := NewRecording()

	countMetric := metrics.NewCountMetric("C", "")
	amountMetric := metrics.NewAmountMetric("A", "")
	statusMetric := metrics.NewStatusMetric("S", "")
	intervalMetric := metrics.NewIntervalMetric("I", "")

	require.NoError(t, r.ProcessCounts([]metrics.CountEvent{{Metric: countMetric}}))
	require.NoError(t, r.ProcessAmounts([]metrics.AmountEvent{{Metric: amountMetric, Amount: 5}}))
	require.NoError(t, r.ProcessStatuses([]metrics.StatusEvent{{Metric: statusMetric, Value: 1}}))
	require.NoError(t, r.ProcessIntervals([]metrics.IntervalEvent{{Metric: intervalMetric, Duration: 10}}))
	require.NoError(t, r.ProcessAggregate("Agg", "desc", 1.5))

	counts, amounts, statuses, intervals, aggregates := r.Snapshot()
	require.Len(t, counts, 1)
	require.Len(t, amounts, 1)
	require.Len(t, statuses, 1)
	require.Len(t, intervals, 1)
	require.Len(t, aggregates, 1)
	require.Equal(t, AggregateSample{Name: "Agg", Description: "desc", Value: 1.5}, aggregates[0])
}

func TestRecordingFailHooksInjectErrorsAndSkipAppend(t *testing.T) {
	r := NewRecording()
	boom := errors.New("boom")
	r.FailCounts = func([]metrics.CountEvent) error { return boom }

	m := metrics.NewCountMetric("C", "")
	err := r.ProcessCounts([]metrics.CountEvent{{Metric: m}})
	require.ErrorIs(t, err, boom)

	counts, _, _, _, _ := r.Snapshot()
	require.Empty(t, counts, "a failing hook must not append the batch")
}
