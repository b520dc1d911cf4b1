package trace

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/samuelfneumann/gotd/gradient"
	"github.com/samuelfneumann/gotd/parameter"
)

type step struct {
	rate float64
	grad gradient.Buffer
}

func steps() []step {
	return []step{
		{0.9, gradient.NewTile(4, 2, 0, []int{0, 1})},
		{0.9, gradient.NewTile(4, 2, 0, []int{1, 2})},
		{0.5, gradient.NewColumn(2, 1, mat.NewVecDense(4, []float64{1, 2, 3, 4}))},
		{0, gradient.NewTile(4, 2, 1, []int{3})},
		{0.8, gradient.NewDense(4, 2, []float64{1, 1, 1, 1, 1, 1, 1, 1})},
	}
}

func run(tr *Trace) []*mat.Dense {
	var out []*mat.Dense
	for _, s := range steps() {
		tr.Decay(s.rate, s.grad)
		out = append(out, tr.Buffer().ToDense())
	}
	return out
}

func TestAccumulating(t *testing.T) {
	tr := New(4, 2, Accumulating{})
	tr.Update(gradient.NewTile(4, 2, 0, []int{0, 1}))
	tr.Decay(0.5, gradient.NewTile(4, 2, 0, []int{1, 2}))

	want := mat.NewDense(4, 2, []float64{
		0.5, 0,
		1.5, 0,
		1, 0,
		0, 0,
	})
	assert.True(t, mat.EqualApprox(want, tr.Buffer().ToDense(), 1e-12))
}

func TestSaturating(t *testing.T) {
	tr := New(4, 2, Replacing{})
	tr.Update(gradient.NewTile(4, 2, 0, []int{0, 1}))
	tr.Decay(0.9, gradient.NewTile(4, 2, 0, []int{1, 2}))

	assert.InDelta(t, 0.9, tr.Buffer().At(0, 0), 1e-12)
	assert.Equal(t, 1.0, tr.Buffer().At(1, 0))
	assert.Equal(t, 1.0, tr.Buffer().At(2, 0))

	tr.Update(gradient.NewColumn(2, 1, mat.NewVecDense(4, []float64{-5, 0, 0.3, 0})))
	assert.Equal(t, -1.0, tr.Buffer().At(0, 1))
	assert.InDelta(t, 0.3, tr.Buffer().At(2, 1), 1e-12)
}

func TestDutch(t *testing.T) {
	tr := New(4, 2, Dutch{Alpha: parameter.Constant(0.5)})
	tr.Update(gradient.NewTile(4, 2, 1, []int{3}))
	tr.Scale(0.8)
	assert.InDelta(t, 0.4, tr.Buffer().At(3, 1), 1e-12)
}

func TestDutchFollowsStepSize(t *testing.T) {
	alpha := parameter.NewExponentialDecay(0.5, 0.5, 0)
	tr := New(4, 2, Dutch{Alpha: alpha})
	tr.Update(gradient.NewTile(4, 2, 0, []int{1}))

	tr.Scale(1)
	assert.InDelta(t, 0.5, tr.Buffer().At(1, 0), 1e-12)

	alpha.Step()
	tr.Scale(1)
	assert.InDelta(t, 0.5*0.75, tr.Buffer().At(1, 0), 1e-12)
	assert.Equal(t, "Dutch(α=0.25)", tr.Rule().(Dutch).String())
}

func TestResetIdempotent(t *testing.T) {
	rules := []Rule{Accumulating{}, Saturating{}, Dutch{Alpha: parameter.Constant(0.1)}}
	for _, rule := range rules {
		for _, dense := range []bool{false, true} {
			fresh := newTrace(4, 2, dense, rule)
			want := run(fresh)

			used := newTrace(4, 2, dense, rule)
			run(used)
			used.Reset()
			used.Reset()
			got := run(used)

			require.Len(t, got, len(want))
			for i := range want {
				assert.True(t, mat.EqualApprox(want[i], got[i], 1e-12),
					"rule %v, dense %v, step %d", rule, dense, i)
			}
		}
	}
}

func TestSparseAndDenseAgree(t *testing.T) {
	sparse := run(New(4, 2, Saturating{}))
	dense := run(NewDense(4, 2, Saturating{}))
	for i := range sparse {
		assert.True(t, mat.EqualApprox(sparse[i], dense[i], 1e-12))
	}
}

func TestUpdateShapeMismatch(t *testing.T) {
	tr := New(4, 2, Accumulating{})
	assert.Panics(t, func() { tr.Update(gradient.Zeros(3, 2)) })
	assert.Panics(t, func() { New(4, 2, nil) })
}

func TestNewRule(t *testing.T) {
	alpha := parameter.Constant(0.2)
	rule, err := NewRule("dutch", alpha)
	require.NoError(t, err)
	assert.Equal(t, Dutch{alpha}, rule)

	rule, err = NewRule("replacing", alpha)
	require.NoError(t, err)
	assert.Equal(t, Saturating{}, rule)

	rule, err = NewRule("", alpha)
	require.NoError(t, err)
	assert.Equal(t, Accumulating{}, rule)

	_, err = NewRule("sticky", alpha)
	assert.Error(t, err)
}
