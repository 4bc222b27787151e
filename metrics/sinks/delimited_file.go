package sinks

import (
	"bufio"
	"io"
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/xraph/appmetrics/metrics"
)

// DelimitedFile is a metrics.Sink that writes one line per event, fields
// separated by a constructor-chosen delimiter with surrounding single
// spaces, for compatibility with existing line-oriented readers. Timestamps
// are local time, millisecond precision; the writer flushes after every
// record, trading throughput for a reader never seeing a partial line.
type DelimitedFile struct {
	mu        sync.Mutex
	w         *bufio.Writer
	closer    io.Closer
	delimiter string
}

// NewDelimitedFile opens (creating or appending to) path and returns a
// DelimitedFile writing to it with the given delimiter (typically "|").
func NewDelimitedFile(path string, delimiter string) (*DelimitedFile, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, err
	}

	return NewDelimitedFileWriter(f, f, delimiter), nil
}

// NewDelimitedFileWriter wraps an already-open writer (and, if non-nil, a
// closer for it) — used directly by tests against an in-memory buffer.
func NewDelimitedFileWriter(w io.Writer, closer io.Closer, delimiter string) *DelimitedFile {
	return &DelimitedFile{w: bufio.NewWriter(w), closer: closer, delimiter: delimiter}
}

// Close flushes and, if the underlying writer is closeable, closes it.
func (d *DelimitedFile) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if err := d.w.Flush(); err != nil {
		return err
	}

	if d.closer != nil {
		return d.closer.Close()
	}

	return nil
}

func (d *DelimitedFile) sep() string { return " " + d.delimiter + " " }

// writeLine emits "label timestamp | field | field ...\n", flushing
// immediately so a reader never observes a partial record.
func (d *DelimitedFile) writeLine(label string, timestamp string, fields ...string) error {
	if _, err := d.w.WriteString(label); err != nil {
		return err
	}

	if _, err := d.w.WriteString(" "); err != nil {
		return err
	}

	if _, err := d.w.WriteString(timestamp); err != nil {
		return err
	}

	for _, f := range fields {
		if _, err := d.w.WriteString(d.sep()); err != nil {
			return err
		}

		if _, err := d.w.WriteString(f); err != nil {
			return err
		}
	}

	if err := d.w.WriteByte('\n'); err != nil {
		return err
	}

	return d.w.Flush()
}

func formatTimestamp(t time.Time) string {
	return t.Local().Format("2006-01-02 15:04:05.000")
}

func (d *DelimitedFile) ProcessCounts(batch []metrics.CountEvent) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	for _, ev := range batch {
		if err := d.writeLine("count:", formatTimestamp(ev.EventTimeUTC), ev.Metric.Name()); err != nil {
			return err
		}
	}

	return nil
}

func (d *DelimitedFile) ProcessAmounts(batch []metrics.AmountEvent) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	for _, ev := range batch {
		if err := d.writeLine("amount:", formatTimestamp(ev.EventTimeUTC), ev.Metric.Name(), strconv.FormatInt(ev.Amount, 10)); err != nil {
			return err
		}
	}

	return nil
}

func (d *DelimitedFile) ProcessStatuses(batch []metrics.StatusEvent) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	for _, ev := range batch {
		if err := d.writeLine("status:", formatTimestamp(ev.EventTimeUTC), ev.Metric.Name(), strconv.FormatInt(ev.Value, 10)); err != nil {
			return err
		}
	}

	return nil
}

func (d *DelimitedFile) ProcessIntervals(batch []metrics.IntervalEvent) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	for _, ev := range batch {
		if err := d.writeLine("interval:", formatTimestamp(ev.EventTimeUTC), ev.Metric.Name(), strconv.FormatInt(ev.Duration, 10)); err != nil {
			return err
		}
	}

	return nil
}

// ProcessAggregate is not part of the delimited-file compatibility format;
// aggregates are a core-engine concept the original line format predates.
func (d *DelimitedFile) ProcessAggregate(string, string, float64) error { return nil }
