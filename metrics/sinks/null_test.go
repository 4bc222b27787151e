package sinks

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/xraph/appmetrics/metrics"
)

func TestNullSinkAcceptsEveryBatch(t *testing.T) {
	n := NewNull()

	require.NoError(t, n.ProcessCounts([]metrics.CountEvent{{}}))
	require.NoError(t, n.ProcessAmounts([]metrics.AmountEvent{{}}))
	require.NoError(t, n.ProcessStatuses([]metrics.StatusEvent{{}}))
	require.NoError(t, n.ProcessIntervals([]metrics.IntervalEvent{{}}))
	require.NoError(t, n.ProcessAggregate("name", "desc", 1))
}
