package metrics

import (
	"github.com/go-playground/validator/v10"
	"github.com/xraph/appmetrics/clock"
	"github.com/xraph/appmetrics/errs"
	"github.com/xraph/appmetrics/idgen"
	"github.com/xraph/appmetrics/log"
	"github.com/xraph/appmetrics/val"
)

// BufferConfig configures a Buffer at construction time.
type BufferConfig struct {
	// Strategy decides when the worker drains. Required.
	Strategy Strategy `validate:"required"`

	// BaseTimeUnit is the unit IntervalEvent.Duration is rendered in.
	BaseTimeUnit BaseTimeUnit

	// IntervalChecking enables strict validation (duplicate/orphan begins
	// raise errors) in non-interleaved mode. Consulted only in that mode —
	// interleaved mode's begin-id keying makes duplicates structurally
	// impossible and orphans are always an error regardless of this flag.
	//
	// Defaults to false (checking off) when left unset, since the Go zero
	// value of bool is false and BufferConfig applies no default for this
	// field: an unset BufferConfig{} runs best-effort, silently overwriting
	// duplicate begins and ignoring orphan end/cancel calls rather than
	// raising. This is a deliberate default, not an oversight — see
	// DESIGN.md's Open Question on IntervalChecking's default for the
	// rationale. Set explicitly to true to raise on misuse instead.
	IntervalChecking bool

	// Monotonic and Wall default to the real system clocks; override for
	// deterministic tests.
	Monotonic clock.Monotonic
	Wall      clock.Wall

	// IDs defaults to a UUID generator; override for deterministic tests.
	IDs idgen.Generator

	// Logger defaults to a no-op logger.
	Logger log.Logger
}

var structValidator = validator.New()

// validateAndApplyDefaults applies struct-tag validation and fills in the documented
// zero-value defaults, returning a StrategyMisconfigured error naming the
// offending field.
func (c *BufferConfig) validateAndApplyDefaults() error {
	if err := structValidator.Struct(c); err != nil {
		fieldErrs, ok := err.(validator.ValidationErrors)
		if !ok {
			return errs.ErrStrategyMisconfigured(err.Error())
		}

		ve := val.NewValidationError()
		for _, fe := range fieldErrs {
			ve.AddWithCode("BufferConfig."+fe.Field(), "failed "+fe.Tag()+" validation", fe.Tag(), fe.Value())
		}

		return errs.ErrStrategyMisconfigured(ve.Error())
	}

	if c.Monotonic == nil {
		c.Monotonic = clock.NewSystemMonotonic()
	}

	if c.Wall == nil {
		c.Wall = clock.NewSystemWall()
	}

	if c.IDs == nil {
		c.IDs = idgen.NewUUIDGenerator()
	}

	if c.Logger == nil {
		c.Logger = log.NewNoopLogger()
	}

	return nil
}
