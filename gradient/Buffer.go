// Package gradient implements buffers of partial derivatives taken with
// respect to a weight matrix.
//
// A Buffer is logically a (possibly sparse) matrix of shape
// rows x cols, where rows is the number of features and cols is the
// number of outputs of a function approximator (for example, one column
// per discrete action). Buffers are created for each evaluation of a
// gradient, consumed by an eligibility trace or scaled directly into a
// set of weights, and then dropped.
//
// Shape mismatches are programmer errors and cause a panic.
package gradient

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Index is the coordinate of a single entry in a Buffer
type Index struct {
	Row, Col int
}

// Buffer is a mapping from weight matrix coordinates to partial
// derivatives
type Buffer interface {
	// Dims returns the logical shape of the buffer
	Dims() (r, c int)

	// At returns the partial derivative at (i, j). Entries which are
	// not populated are 0.
	At(i, j int) float64

	// Each calls fn on each populated entry of the buffer
	Each(fn func(i, j int, v float64))

	// Map returns a new Buffer with f applied to each populated entry
	Map(f func(float64) float64) Buffer
	MapInplace(f func(float64) float64)

	// Merge combines two buffers elementwise over the union of their
	// populated entries. Entries missing from one buffer are passed
	// to f as 0.
	Merge(other Buffer, f func(x, y float64) float64) Buffer
	MergeInplace(other Buffer, f func(x, y float64) float64)

	// AddTo performs weights += scale * buffer in place
	AddTo(weights *mat.Dense, scale float64)

	// ToDense materializes the buffer as a dense matrix
	ToDense() *mat.Dense

	Clone() Buffer
}

// Zeros returns an empty Buffer of the given shape
func Zeros(r, c int) *Sparse {
	return NewSparse(r, c)
}

// Add is the merge function for elementwise addition
func Add(x, y float64) float64 {
	return x + y
}

// Sub is the merge function for elementwise subtraction
func Sub(x, y float64) float64 {
	return x - y
}

// Scale returns the mapping function v -> scale * v
func Scale(scale float64) func(float64) float64 {
	return func(v float64) float64 {
		return scale * v
	}
}

// Merge merges a and b with f. The representation of the result is
// chosen from the representations of a and b: a Dense operand produces
// a Dense result, otherwise the result is sparse.
func Merge(a, b Buffer, f func(x, y float64) float64) Buffer {
	checkDims("merge", a, b)
	r, c := a.Dims()

	_, aDense := a.(*Dense)
	_, bDense := b.(*Dense)
	if aDense || bDense {
		out := mat.NewDense(r, c, nil)
		out.Apply(func(i, j int, _ float64) float64 {
			return f(a.At(i, j), b.At(i, j))
		}, out)
		return &Dense{out}
	}

	out := NewSparse(r, c)
	seen := make(map[Index]struct{})
	a.Each(func(i, j int, v float64) {
		idx := Index{i, j}
		seen[idx] = struct{}{}
		out.values[idx] = f(v, b.At(i, j))
	})
	b.Each(func(i, j int, v float64) {
		idx := Index{i, j}
		if _, ok := seen[idx]; !ok {
			out.values[idx] = f(0, v)
		}
	})
	return out
}

// checkDims panics if a and b have different shapes
func checkDims(op string, a, b Buffer) {
	ar, ac := a.Dims()
	br, bc := b.Dims()
	if ar != br || ac != bc {
		panic(fmt.Sprintf("%v: dimension mismatch (%d x %d) != (%d x %d)",
			op, ar, ac, br, bc))
	}
}

// checkWeights panics if a buffer cannot be added to weights
func checkWeights(b Buffer, weights *mat.Dense) {
	r, c := b.Dims()
	wr, wc := weights.Dims()
	if r != wr || c != wc {
		panic(fmt.Sprintf("addTo: weights of shape (%d x %d) cannot be "+
			"updated with a gradient of shape (%d x %d)", wr, wc, r, c))
	}
}

// checkIndex panics if (i, j) lies outside an r x c buffer
func checkIndex(r, c, i, j int) {
	if i < 0 || i >= r || j < 0 || j >= c {
		panic(fmt.Sprintf("index (%d, %d) out of range for buffer of "+
			"shape (%d x %d)", i, j, r, c))
	}
}

// checkShape panics on a degenerate buffer shape
func checkShape(r, c int) {
	if r <= 0 || c <= 0 {
		panic(fmt.Sprintf("invalid buffer shape (%d x %d)", r, c))
	}
}
