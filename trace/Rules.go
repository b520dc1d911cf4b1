package trace

import (
	"fmt"

	"github.com/samuelfneumann/gotd/parameter"
	"github.com/samuelfneumann/gotd/utils/floatutils"
)

// Rule determines how a trace decays and how new gradients are
// combined with it
type Rule interface {
	// Decay returns the factor by which the trace is scaled given the
	// decay rate, typically γλ
	Decay(rate float64) float64

	// Combine combines a trace entry x with a gradient entry y
	Combine(x, y float64) float64
}

// Accumulating is the accumulating trace rule: e = rate*e + ∇
type Accumulating struct{}

// Decay implements the Rule interface
func (Accumulating) Decay(rate float64) float64 { return rate }

// Combine implements the Rule interface
func (Accumulating) Combine(x, y float64) float64 { return x + y }

// String implements the fmt.Stringer interface
func (Accumulating) String() string { return "Accumulating" }

// Saturating is the saturating trace rule: e = clip(rate*e + ∇, -1, 1)
type Saturating struct{}

// Replacing is an alias of Saturating
type Replacing = Saturating

// Decay implements the Rule interface
func (Saturating) Decay(rate float64) float64 { return rate }

// Combine implements the Rule interface
func (Saturating) Combine(x, y float64) float64 {
	return floatutils.Clip(x+y, -1, 1)
}

// String implements the fmt.Stringer interface
func (Saturating) String() string { return "Saturating" }

// Dutch is the dutch trace rule used by true online algorithms. The
// decay rate is additionally multiplied by (1 - α), where α is the
// current value of Alpha. Alpha should be the step size parameter of
// the controller which owns the trace, so that decaying the step size
// also changes the trace decay.
type Dutch struct {
	Alpha parameter.Parameter
}

// Decay implements the Rule interface
func (d Dutch) Decay(rate float64) float64 {
	return rate * (1 - d.Alpha.Value())
}

// Combine implements the Rule interface
func (Dutch) Combine(x, y float64) float64 { return x + y }

// String implements the fmt.Stringer interface
func (d Dutch) String() string {
	return fmt.Sprintf("Dutch(α=%v)", d.Alpha.Value())
}

// NewRule returns the rule with the given name. Valid names are
// "accumulating", "saturating", "replacing", and "dutch". The step size
// alpha is used only by dutch traces, which read its current value at
// every decay.
func NewRule(name string, alpha parameter.Parameter) (Rule, error) {
	switch name {
	case "", "accumulating":
		return Accumulating{}, nil
	case "saturating", "replacing":
		return Saturating{}, nil
	case "dutch":
		return Dutch{alpha}, nil
	default:
		return nil, fmt.Errorf("newRule: unknown trace rule %q", name)
	}
}
