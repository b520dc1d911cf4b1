package valuefunc

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/samuelfneumann/gotd/basis"
	"github.com/samuelfneumann/gotd/gradient"
)

func TestFindMax(t *testing.T) {
	tests := []struct {
		values []float64
		index  int
		max    float64
	}{
		{[]float64{1}, 0, 1},
		{[]float64{1, 3, 2}, 1, 3},
		{[]float64{1, 3, 3}, 2, 3},
		{[]float64{5, 5, 5, 5}, 3, 5},
		{[]float64{-1, -2, -3}, 0, -1},
	}

	for _, test := range tests {
		index, max := FindMax(test.values)
		assert.Equal(t, test.index, index, "values %v", test.values)
		assert.Equal(t, test.max, max, "values %v", test.values)
	}

	assert.Panics(t, func() { FindMax(nil) })
}

func TestArgmaxima(t *testing.T) {
	assert.Equal(t, []int{1, 2}, Argmaxima([]float64{1, 3, 3}))
	assert.Equal(t, []int{0, 2}, Argmaxima([]float64{2, 1, 2 - Tolerance/2}))
	assert.Equal(t, []int{0}, Argmaxima([]float64{2, 1, 2 - 10*Tolerance}))
	assert.Equal(t, []int{0, 1, 2}, Argmaxima([]float64{0, 0, 0}))
	assert.Len(t, Argmaxima([]float64{math.NaN(), math.NaN()}), 1)
	assert.Panics(t, func() { Argmaxima([]float64{}) })
}

func TestTabular(t *testing.T) {
	q := NewTabular(3, 2)
	assert.Equal(t, 3, q.NumStates())
	assert.Equal(t, 2, q.NumActions())

	require.NoError(t, q.Update(State(1), 0, 0.5))
	require.NoError(t, q.Update(State(1), 0, 0.25))
	assert.Equal(t, 0.75, q.Evaluate(State(1), 0))
	assert.Equal(t, []float64{0.75, 0}, q.EvaluateAll(State(1)))

	// Mutating the returned slice must not change the table
	values := q.EvaluateAll(State(1))
	values[0] = 100
	assert.Equal(t, 0.75, q.Evaluate(State(1), 0))

	g := q.Grad(State(2), 1)
	assert.Equal(t, 1.0, g.At(2, 1))
	assert.Equal(t, 0.0, g.At(1, 1))
	q.UpdateGradScaled(g, -2)
	assert.Equal(t, -2.0, q.Evaluate(State(2), 1))

	assert.Panics(t, func() { q.Evaluate(State(3), 0) })
	assert.Panics(t, func() { q.Evaluate(mat.NewVecDense(2, nil), 0) })
	assert.Panics(t, func() { NewTabular(0, 2) })
}

func TestLinear(t *testing.T) {
	q := NewLinear(basis.NewIdentity(2, true), 3)
	assert.Equal(t, 3, q.NumActions())
	r, c := q.Weights().Dims()
	assert.Equal(t, 3, r)
	assert.Equal(t, 3, c)

	state := mat.NewVecDense(2, []float64{1, 2})
	assert.Equal(t, []float64{0, 0, 0}, q.EvaluateAll(state))

	// Semi-gradient update: w_a += err * φ(s)
	require.NoError(t, q.Update(state, 1, 0.5))
	assert.InDelta(t, 0.5*(1+4+1), q.Evaluate(state, 1), 1e-12)
	assert.Equal(t, 0.0, q.Evaluate(state, 0))
	assert.Equal(t, 0.0, q.Evaluate(state, 2))

	g := q.Grad(state, 2)
	assert.Equal(t, 2.0, g.At(1, 2))
	assert.Equal(t, 1.0, g.At(2, 2))
	assert.Equal(t, 0.0, g.At(0, 1))

	q.UpdateGradScaled(g.Merge(gradient.Zeros(3, 3), gradient.Add), 1)
	assert.InDelta(t, 6.0, q.Evaluate(state, 2), 1e-12)

	values := q.EvaluateAll(state)
	for a := range values {
		assert.Equal(t, q.Evaluate(state, a), values[a])
	}

	assert.Error(t, q.SetWeights(mat.NewDense(2, 3, nil)))
	require.NoError(t, q.SetWeights(mat.NewDense(3, 3, nil)))
	assert.Equal(t, 0.0, q.Evaluate(state, 2))
}

func TestLinearTileCoding(t *testing.T) {
	tc := basis.NewTileCoding(
		mat.NewVecDense(2, []float64{0, 0}),
		mat.NewVecDense(2, []float64{1, 1}),
		[][]int{{4, 4}, {3, 3}},
		1,
		false,
	)
	q := NewLinear(tc, 2)
	state := mat.NewVecDense(2, []float64{0.3, 0.7})

	// With binary features and one active tile per tiling, a single
	// update of err moves the value by err * numTilings
	require.NoError(t, q.Update(state, 0, 0.1))
	assert.InDelta(t, 0.1*float64(tc.NumTilings()), q.Evaluate(state, 0), 1e-12)
	assert.Equal(t, 0.0, q.Evaluate(state, 1))
}

func TestLinearV(t *testing.T) {
	v := NewLinearV(basis.NewIdentity(2, false))
	state := mat.NewVecDense(2, []float64{3, 4})

	require.NoError(t, v.Update(state, 0.1))
	assert.InDelta(t, 0.1*25, v.Evaluate(state), 1e-12)

	g := v.Grad(state)
	r, c := g.Dims()
	assert.Equal(t, 2, r)
	assert.Equal(t, 1, c)
	assert.Equal(t, 4.0, g.At(1, 0))

	v.Initialize(Zero{})
	assert.Equal(t, 0.0, v.Evaluate(state))
}

func TestInitializer(t *testing.T) {
	src := rand.NewSource(1)
	init := NewUV(distuv.Uniform{Min: -1, Max: 1, Src: src})

	q := NewLinear(basis.NewIdentity(4, false), 2)
	q.Initialize(init)

	nonZero := 0
	r, c := q.Weights().Dims()
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			w := q.Weights().At(i, j)
			assert.True(t, w >= -1 && w < 1)
			if w != 0 {
				nonZero++
			}
		}
	}
	assert.Equal(t, r*c, nonZero)

	q.Initialize(Zero{})
	assert.True(t, mat.Equal(mat.NewDense(r, c, nil), q.Weights()))

	assert.Panics(t, func() { NewUV(nil) })
}

func TestConstant(t *testing.T) {
	var v VFunction = Constant(2)
	state := mat.NewVecDense(2, []float64{3, 4})

	assert.Equal(t, 2.0, v.Evaluate(state))
	require.NoError(t, v.Update(state, 10))
	assert.Equal(t, 2.0, v.Evaluate(state))
}
