package gradient

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Column is a Buffer which populates exactly one column of the
// weight matrix with a dense vector. This is the gradient of a linear
// action-value function with respect to the weights of one action.
type Column struct {
	cols int
	col  int
	vec  *mat.VecDense
}

// NewColumn returns a new Column buffer with cols columns, with
// column col set to v. The number of rows is v.Len(). The data in v
// is copied.
func NewColumn(cols, col int, v mat.Vector) *Column {
	checkShape(v.Len(), cols)
	checkIndex(v.Len(), cols, 0, col)

	vec := mat.NewVecDense(v.Len(), nil)
	vec.CloneFromVec(v)
	return &Column{cols, col, vec}
}

// Column returns the index of the populated column
func (c *Column) Column() int {
	return c.col
}

// Vector returns the populated column as a vector
func (c *Column) Vector() mat.Vector {
	return c.vec
}

// Dims implements the Buffer interface
func (c *Column) Dims() (r, cols int) {
	return c.vec.Len(), c.cols
}

// At implements the Buffer interface
func (c *Column) At(i, j int) float64 {
	checkIndex(c.vec.Len(), c.cols, i, j)
	if j != c.col {
		return 0.0
	}
	return c.vec.AtVec(i)
}

// Each implements the Buffer interface
func (c *Column) Each(fn func(i, j int, v float64)) {
	for i, v := range c.vec.RawVector().Data[:c.vec.Len()] {
		fn(i, c.col, v)
	}
}

// Map implements the Buffer interface
func (c *Column) Map(f func(float64) float64) Buffer {
	out := c.Clone().(*Column)
	out.MapInplace(f)
	return out
}

// MapInplace implements the Buffer interface
func (c *Column) MapInplace(f func(float64) float64) {
	for i := 0; i < c.vec.Len(); i++ {
		c.vec.SetVec(i, f(c.vec.AtVec(i)))
	}
}

// Merge implements the Buffer interface
func (c *Column) Merge(other Buffer, f func(x, y float64) float64) Buffer {
	if _, dense := other.(*Dense); !dense && c.canHold(other) {
		out := c.Clone().(*Column)
		out.MergeInplace(other, f)
		return out
	}
	return Merge(c, other, f)
}

// MergeInplace implements the Buffer interface. The other buffer may
// only populate the same column as the receiver.
func (c *Column) MergeInplace(other Buffer, f func(x, y float64) float64) {
	checkDims("mergeInplace", c, other)
	if !c.canHold(other) {
		panic(fmt.Sprintf("mergeInplace: %T populates entries outside "+
			"column %d", other, c.col))
	}
	for i := 0; i < c.vec.Len(); i++ {
		c.vec.SetVec(i, f(c.vec.AtVec(i), other.At(i, c.col)))
	}
}

// AddTo implements the Buffer interface
func (c *Column) AddTo(weights *mat.Dense, scale float64) {
	checkWeights(c, weights)
	col := weights.ColView(c.col).(*mat.VecDense)
	col.AddScaledVec(col, scale, c.vec)
}

// ToDense implements the Buffer interface
func (c *Column) ToDense() *mat.Dense {
	out := mat.NewDense(c.vec.Len(), c.cols, nil)
	out.SetCol(c.col, c.vec.RawVector().Data[:c.vec.Len()])
	return out
}

// Clone implements the Buffer interface
func (c *Column) Clone() Buffer {
	vec := mat.NewVecDense(c.vec.Len(), nil)
	vec.CloneFromVec(c.vec)
	return &Column{c.cols, c.col, vec}
}

// canHold returns whether every populated entry of other lies within
// the receiver's column
func (c *Column) canHold(other Buffer) bool {
	r, cols := other.Dims()
	if r != c.vec.Len() || cols != c.cols {
		return false
	}
	switch o := other.(type) {
	case *Column:
		return o.col == c.col
	case *Tile:
		return o.col == c.col
	}

	ok := true
	other.Each(func(_, j int, _ float64) {
		if j != c.col {
			ok = false
		}
	})
	return ok
}
