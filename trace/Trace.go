// Package trace implements eligibility traces over gradient buffers
package trace

import (
	"fmt"

	"github.com/samuelfneumann/gotd/gradient"
)

// Trace is an eligibility trace: a decaying accumulation of gradients
// over the weights of a value function. A Trace is owned by a single
// controller and is not safe for concurrent use.
type Trace struct {
	buffer     gradient.Buffer
	rows, cols int
	dense      bool
	rule       Rule
}

// New returns a new sparse Trace over weights of shape (rows x cols)
func New(rows, cols int, rule Rule) *Trace {
	return newTrace(rows, cols, false, rule)
}

// NewDense returns a new Trace over weights of shape (rows x cols)
// whose buffer is dense. Dense traces are preferable when most
// features are active at every step.
func NewDense(rows, cols int, rule Rule) *Trace {
	return newTrace(rows, cols, true, rule)
}

func newTrace(rows, cols int, dense bool, rule Rule) *Trace {
	if rule == nil {
		panic("trace: rule cannot be nil")
	}
	t := &Trace{rows: rows, cols: cols, dense: dense, rule: rule}
	t.Reset()
	return t
}

// Rule returns the update rule of the trace
func (t *Trace) Rule() Rule {
	return t.rule
}

// Dims returns the shape of the trace
func (t *Trace) Dims() (r, c int) {
	return t.rows, t.cols
}

// Buffer returns the current trace. The returned buffer is owned by
// the trace and is modified by later calls to Scale and Update.
func (t *Trace) Buffer() gradient.Buffer {
	return t.buffer
}

// Scale multiplies the trace by the decay of rate under the trace's
// rule
func (t *Trace) Scale(rate float64) {
	t.buffer.MapInplace(gradient.Scale(t.rule.Decay(rate)))
}

// Update merges grad into the trace using the trace's rule
func (t *Trace) Update(grad gradient.Buffer) {
	r, c := grad.Dims()
	if r != t.rows || c != t.cols {
		panic(fmt.Sprintf("trace: cannot update trace of shape (%d x %d) "+
			"with gradient of shape (%d x %d)", t.rows, t.cols, r, c))
	}
	t.buffer.MergeInplace(grad, t.rule.Combine)
}

// Decay scales the trace by rate and then merges in grad
func (t *Trace) Decay(rate float64, grad gradient.Buffer) {
	t.Scale(rate)
	t.Update(grad)
}

// Reset zeroes the trace
func (t *Trace) Reset() {
	if t.dense {
		t.buffer = gradient.NewDense(t.rows, t.cols, nil)
	} else {
		t.buffer = gradient.Zeros(t.rows, t.cols)
	}
}
