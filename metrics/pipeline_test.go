package metrics_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/xraph/appmetrics/metrics"
	"github.com/xraph/appmetrics/metrics/sinks"
)

func TestPipelineStartStopHealth(t *testing.T) {
	strat := &manualStrategy{}
	buf, err := metrics.NewBuffer(metrics.BufferConfig{Strategy: strat}, sinks.NewNull())
	require.NoError(t, err)

	p := metrics.NewPipeline("appmetrics", buf)
	require.Equal(t, "appmetrics", p.Name())

	ctx := context.Background()

	require.Error(t, p.Health(ctx), "unhealthy before Start")

	require.NoError(t, p.Start(ctx))
	require.NoError(t, p.Health(ctx))

	require.NoError(t, p.Stop(ctx))
	require.Error(t, p.Health(ctx), "unhealthy after Stop")
}

func TestPipelineBufferAccessor(t *testing.T) {
	strat := &manualStrategy{}
	buf, err := metrics.NewBuffer(metrics.BufferConfig{Strategy: strat}, sinks.NewNull())
	require.NoError(t, err)

	p := metrics.NewPipeline("appmetrics", buf)
	require.Same(t, buf, p.Buffer())
}
