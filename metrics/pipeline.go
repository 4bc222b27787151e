package metrics

import (
	"context"

	"github.com/xraph/appmetrics/errs"
)

// Service is the managed-component shape most dependency-injection
// containers auto-detect: a name plus a start/stop lifecycle. Pipeline
// implements it directly instead of importing a container package for two
// marker interfaces no in-tree container ever registers against.
type Service interface {
	Name() string
	Start(ctx context.Context) error
	Stop(ctx context.Context) error
}

// HealthChecker is the optional liveness-check extension to Service.
type HealthChecker interface {
	Health(ctx context.Context) error
}

// Pipeline bundles a Buffer with the name and health semantics most
// dependency-injection containers expect of a managed component, so an
// application can register its metrics pipeline as a service alongside its
// other components instead of calling Start/Stop by hand.
var (
	_ Service       = (*Pipeline)(nil)
	_ HealthChecker = (*Pipeline)(nil)
)

type Pipeline struct {
	name   string
	buffer *Buffer
}

// NewPipeline wraps buffer as a named, lifecycle-managed component.
func NewPipeline(name string, buffer *Buffer) *Pipeline {
	return &Pipeline{name: name, buffer: buffer}
}

func (p *Pipeline) Name() string { return p.name }

// Start starts the underlying buffer. ctx is accepted for Service
// conformance; the buffer's own Start is not context-aware (strategy
// workers are long-lived goroutines, not a single cancellable operation).
func (p *Pipeline) Start(_ context.Context) error {
	return p.buffer.Start()
}

// Stop stops the underlying buffer, draining whatever remains buffered.
func (p *Pipeline) Stop(_ context.Context) error {
	p.buffer.Stop()
	return nil
}

// Health reports unhealthy while the buffer is not started (before Start
// and after Stop); healthy otherwise. It does not detect a worker that has
// terminated after a processing error. It never consumes the one-shot
// rethrow slot — that remains reserved for the next producer call,
// per the cross-thread exception contract.
func (p *Pipeline) Health(_ context.Context) error {
	if !p.buffer.started.Load() {
		return errs.ErrStrategyMisconfigured("metrics pipeline is not started")
	}

	return nil
}

// Buffer exposes the underlying buffer for recording metrics and defining
// aggregates.
func (p *Pipeline) Buffer() *Buffer { return p.buffer }
