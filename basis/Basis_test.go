package basis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/samuelfneumann/gotd/gradient"
)

func TestIdentity(t *testing.T) {
	state := mat.NewVecDense(3, []float64{1, 2, 3})

	p := NewIdentity(3, false)
	assert.Equal(t, 3, p.Dim())
	f := p.Project(state)
	assert.Equal(t, 14.0, f.Dot(state))

	pb := NewIdentity(3, true)
	assert.Equal(t, 4, pb.Dim())
	fb := pb.Project(state)
	weights := mat.NewVecDense(4, []float64{1, 1, 1, 10})
	assert.Equal(t, 16.0, fb.Dot(weights))

	// Projecting must not alias the state
	state.SetVec(0, 100)
	assert.Equal(t, 14.0, f.Dot(mat.NewVecDense(3, []float64{1, 2, 3})))

	assert.Panics(t, func() { p.Project(mat.NewVecDense(2, nil)) })
}

func TestFeatureGradients(t *testing.T) {
	dense := NewDense(mat.NewVecDense(3, []float64{1, 0, 2}))
	g := dense.Gradient(2, 1)
	_, ok := g.(*gradient.Column)
	require.True(t, ok)
	assert.Equal(t, 2.0, g.At(2, 1))
	assert.Equal(t, 0.0, g.At(2, 0))

	binary := NewBinary(5, []int{1, 4})
	g = binary.Gradient(3, 2)
	_, ok = g.(*gradient.Tile)
	require.True(t, ok)
	assert.Equal(t, 1.0, g.At(4, 2))
	assert.Equal(t, 0.0, g.At(3, 2))
	assert.Equal(t, 2.0, binary.Dot(mat.NewVecDense(5, []float64{9, 1, 9, 9, 1})))
	assert.True(t, mat.Equal(binary.ToVector(),
		mat.NewVecDense(5, []float64{0, 1, 0, 0, 1})))

	assert.Panics(t, func() { NewBinary(2, []int{2}) })
}

func TestTileCoding(t *testing.T) {
	min := mat.NewVecDense(2, []float64{0, 0})
	max := mat.NewVecDense(2, []float64{1, 1})
	bins := [][]int{{4, 4}, {2, 3}, {5, 5}}

	tc := NewTileCoding(min, max, bins, 12, true)
	assert.Equal(t, 3, tc.NumTilings())
	assert.Equal(t, 16+6+25+1, tc.Dim())

	v := mat.NewVecDense(2, []float64{0.3, 0.7})
	indices := tc.EncodeIndices(v)
	require.Len(t, indices, 4)
	assert.Equal(t, 0, indices[3], "bias unit should be last")

	// Each tiling activates exactly one feature inside its own range
	start := 1
	for j, b := range bins {
		end := start + prod(b)
		assert.GreaterOrEqual(t, indices[j], start)
		assert.Less(t, indices[j], end)
		start = end
	}

	// Encoding is deterministic for a fixed seed
	again := NewTileCoding(min, max, bins, 12, true)
	assert.Equal(t, indices, again.EncodeIndices(v))

	// Out of bounds values are clipped into the edge tiles
	far := tc.EncodeIndices(mat.NewVecDense(2, []float64{100, -100}))
	assert.Len(t, far, 4)

	f := tc.Project(v)
	assert.Equal(t, tc.Dim(), f.Len())
	assert.Equal(t, 4.0, f.Dot(mat.NewVecDense(tc.Dim(), onesSlice(tc.Dim()))))
}

func TestTileCodingInvalid(t *testing.T) {
	min := mat.NewVecDense(2, nil)
	assert.Panics(t, func() {
		NewTileCoding(min, mat.NewVecDense(3, nil), [][]int{{1, 1}}, 1, false)
	})
	assert.Panics(t, func() {
		NewTileCoding(min, min, nil, 1, false)
	})
	assert.Panics(t, func() {
		NewTileCoding(min, min, [][]int{{2}}, 1, false)
	})
}

func onesSlice(n int) []float64 {
	ones := make([]float64, n)
	for i := range ones {
		ones[i] = 1.0
	}
	return ones
}

func BenchmarkTileCoding(b *testing.B) {
	tc := NewTileCoding(
		mat.NewVecDense(8, []float64{0, 0, 0, 0, 0, 0, 0, 0}),
		mat.NewVecDense(8, []float64{1, 1, 1, 1, 1, 1, 1, 1}),
		[][]int{{8, 8, 8, 8, 8, 8, 8, 8}},
		12,
		true,
	)

	y := mat.NewVecDense(8, []float64{0.5, 0.5, 0.5, 0.5, 0.5, 0.5, 0.5, 0.5})

	for i := 0; i < b.N; i++ {
		tc.Project(y)
	}
}
