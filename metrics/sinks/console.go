// Package sinks provides the out-of-the-box Sink implementations spec.md §6
// treats as trivial collaborators: a console banner reporter, a
// pipe-delimited file writer (compatibility format), a null sink, and a
// test-only recording sink.
package sinks

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/xraph/appmetrics/metrics"
)

const bannerWidth = 51

// Console is a metrics.Sink that prints a running banner of every metric's
// current value, redrawn each drain, to an io.Writer (os.Stdout by default).
// Counts, amounts and intervals accumulate across drains; statuses report
// their latest sample.
type Console struct {
	mu  sync.Mutex
	out io.Writer
	now func() time.Time

	values map[string]float64
	order  []string
}

// ConsoleOption configures a Console at construction time.
type ConsoleOption func(*Console)

// WithConsoleWriter overrides the destination, default os.Stdout.
func WithConsoleWriter(w io.Writer) ConsoleOption {
	return func(c *Console) { c.out = w }
}

// NewConsole constructs a Console sink.
func NewConsole(opts ...ConsoleOption) *Console {
	c := &Console{
		out:    os.Stdout,
		now:    time.Now,
		values: make(map[string]float64),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

func (c *Console) set(name string, value float64) {
	if _, seen := c.values[name]; !seen {
		c.order = append(c.order, name)
	}

	c.values[name] = value
}

func (c *Console) ProcessCounts(batch []metrics.CountEvent) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, ev := range batch {
		name := ev.Metric.Name()
		c.set(name, c.values[name]+1)
	}

	return nil
}

func (c *Console) ProcessAmounts(batch []metrics.AmountEvent) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, ev := range batch {
		name := ev.Metric.Name()
		c.set(name, c.values[name]+float64(ev.Amount))
	}

	return nil
}

func (c *Console) ProcessStatuses(batch []metrics.StatusEvent) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, ev := range batch {
		c.set(ev.Metric.Name(), float64(ev.Value))
	}

	return nil
}

// ProcessIntervals folds the batch into the running totals and redraws the
// banner header with every metric seen so far; it is invoked last among the
// four event handlers, so by this point the drain's full set of metric
// totals (but not yet its aggregates) is known.
func (c *Console) ProcessIntervals(batch []metrics.IntervalEvent) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, ev := range batch {
		name := ev.Metric.Name()
		c.set(name, c.values[name]+float64(ev.Duration))
	}

	return c.renderLocked()
}

func (c *Console) renderLocked() error {
	rule := strings.Repeat("-", bannerWidth)

	if _, err := fmt.Fprintln(c.out, rule); err != nil {
		return err
	}

	title := fmt.Sprintf("-- Application metrics as of %s --", c.now().Format("2006-01-02 15:04:05"))
	if _, err := fmt.Fprintln(c.out, title); err != nil {
		return err
	}

	if _, err := fmt.Fprintln(c.out, rule); err != nil {
		return err
	}

	for _, name := range c.order {
		if _, err := fmt.Fprintf(c.out, "%s: %s\n", name, formatValue(c.values[name])); err != nil {
			return err
		}
	}

	return nil
}

// ProcessAggregate prints one banner line per aggregate, appended directly
// after the metric block ProcessIntervals just rendered — together they
// reproduce the single banner spec.md §6 illustrates.
func (c *Console) ProcessAggregate(name, _ string, value float64) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	_, err := fmt.Fprintf(c.out, "%s: %s\n", name, formatValue(value))

	return err
}

// formatValue renders with round-trip precision and no forced decimals.
func formatValue(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
