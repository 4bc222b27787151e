package metrics

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/xraph/appmetrics/idgen"
)

type fakeStrategy struct{}

func (fakeStrategy) BindWorkerAction(WorkerAction) {}
func (fakeStrategy) Start() error                  { return nil }
func (fakeStrategy) Stop(bool)                     {}
func (fakeStrategy) NotifyCountBuffered()          {}
func (fakeStrategy) NotifyAmountBuffered()         {}
func (fakeStrategy) NotifyStatusBuffered()         {}
func (fakeStrategy) NotifyIntervalBuffered()       {}
func (fakeStrategy) NotifyCountCleared(int)        {}
func (fakeStrategy) NotifyAmountCleared(int)       {}
func (fakeStrategy) NotifyStatusCleared(int)       {}
func (fakeStrategy) NotifyIntervalCleared(int)     {}
func (fakeStrategy) OnBufferProcessed(func())      {}
func (fakeStrategy) OnProcessingError(func(error)) {}
func (fakeStrategy) CheckAndRethrow() error        { return nil }

func TestBufferConfigRequiresStrategy(t *testing.T) {
	cfg := BufferConfig{}
	err := cfg.validateAndApplyDefaults()
	require.Error(t, err)
	require.Contains(t, err.Error(), "Strategy")
}

func TestBufferConfigAppliesDefaults(t *testing.T) {
	cfg := BufferConfig{Strategy: fakeStrategy{}}
	require.NoError(t, cfg.validateAndApplyDefaults())

	require.NotNil(t, cfg.Monotonic)
	require.NotNil(t, cfg.Wall)
	require.NotNil(t, cfg.IDs)
	require.NotNil(t, cfg.Logger)
}

func TestBufferConfigPreservesExplicitCollaborators(t *testing.T) {
	ids := idGeneratorStub{}
	cfg := BufferConfig{Strategy: fakeStrategy{}, IDs: ids}
	require.NoError(t, cfg.validateAndApplyDefaults())
	require.Equal(t, ids, cfg.IDs)
}

type idGeneratorStub struct{}

func (idGeneratorStub) NewID() idgen.ID { return idgen.Nil }
