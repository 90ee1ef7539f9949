package runner

import (
	"fmt"
	"io"
	"time"
)

// Timer reports the wall time of a labelled phase. The label is printed
// without a newline when the timer starts, the elapsed time when it stops.
type Timer struct {
	w     io.Writer
	now   func() time.Time
	start time.Time
}

// NewTimer prints label to w and starts timing.
func NewTimer(w io.Writer, label string) *Timer {
	return newTimer(w, label, time.Now)
}

func newTimer(w io.Writer, label string, now func() time.Time) *Timer {
	fmt.Fprint(w, label)
	return &Timer{w: w, now: now, start: now()}
}

// Stop terminates the label line with the elapsed milliseconds.
func (t *Timer) Stop() time.Duration {
	d := t.now().Sub(t.start)
	fmt.Fprintf(t.w, " [Done %d ms]\n", d.Milliseconds())
	return d
}

// Abort terminates the label line without reporting a duration.
func (t *Timer) Abort() {
	fmt.Fprintln(t.w)
}
