package gradient

import (
	"fmt"
	"sort"

	"gonum.org/v1/gonum/mat"
)

// Tile is a one-hot Buffer, as produced by the gradient of a linear
// function of binary (e.g. tile-coded) features. A Tile populates a set
// of active rows in a single column, all of which share one value.
type Tile struct {
	rows, cols int
	col        int
	active     []int // sorted, unique
	value      float64
}

// NewTile returns a new Tile buffer of shape rows x cols whose active
// rows in column col are set to 1.0
func NewTile(rows, cols, col int, active []int) *Tile {
	checkShape(rows, cols)

	unique := make([]int, 0, len(active))
	sorted := append([]int(nil), active...)
	sort.Ints(sorted)
	for i, row := range sorted {
		checkIndex(rows, cols, row, col)
		if i > 0 && row == sorted[i-1] {
			continue
		}
		unique = append(unique, row)
	}

	return &Tile{rows, cols, col, unique, 1.0}
}

// Column returns the column populated by the buffer
func (t *Tile) Column() int {
	return t.col
}

// Active returns the populated rows of the buffer in increasing order
func (t *Tile) Active() []int {
	return append([]int(nil), t.active...)
}

// Value returns the value shared by all populated entries
func (t *Tile) Value() float64 {
	return t.value
}

// Dims implements the Buffer interface
func (t *Tile) Dims() (r, c int) {
	return t.rows, t.cols
}

// At implements the Buffer interface
func (t *Tile) At(i, j int) float64 {
	checkIndex(t.rows, t.cols, i, j)
	if j == t.col && t.contains(i) {
		return t.value
	}
	return 0.0
}

// Each implements the Buffer interface
func (t *Tile) Each(fn func(i, j int, v float64)) {
	for _, row := range t.active {
		fn(row, t.col, t.value)
	}
}

// Map implements the Buffer interface
func (t *Tile) Map(f func(float64) float64) Buffer {
	out := t.Clone().(*Tile)
	out.MapInplace(f)
	return out
}

// MapInplace implements the Buffer interface
func (t *Tile) MapInplace(f func(float64) float64) {
	t.value = f(t.value)
}

// Merge implements the Buffer interface
func (t *Tile) Merge(other Buffer, f func(x, y float64) float64) Buffer {
	if o, ok := other.(*Tile); ok && t.sameSupport(o) {
		out := t.Clone().(*Tile)
		out.value = f(t.value, o.value)
		return out
	}
	return Merge(t, other, f)
}

// MergeInplace implements the Buffer interface. A Tile can only be
// merged in place with another Tile of identical support, since the
// result of any other merge cannot be represented as a Tile. Use
// Merge instead.
func (t *Tile) MergeInplace(other Buffer, f func(x, y float64) float64) {
	checkDims("mergeInplace", t, other)
	o, ok := other.(*Tile)
	if !ok || !t.sameSupport(o) {
		panic(fmt.Sprintf("mergeInplace: cannot merge %T into a tile "+
			"buffer with different support", other))
	}
	t.value = f(t.value, o.value)
}

// AddTo implements the Buffer interface
func (t *Tile) AddTo(weights *mat.Dense, scale float64) {
	checkWeights(t, weights)
	for _, row := range t.active {
		weights.Set(row, t.col, weights.At(row, t.col)+scale*t.value)
	}
}

// ToDense implements the Buffer interface
func (t *Tile) ToDense() *mat.Dense {
	out := mat.NewDense(t.rows, t.cols, nil)
	for _, row := range t.active {
		out.Set(row, t.col, t.value)
	}
	return out
}

// Clone implements the Buffer interface
func (t *Tile) Clone() Buffer {
	active := append([]int(nil), t.active...)
	return &Tile{t.rows, t.cols, t.col, active, t.value}
}

func (t *Tile) contains(row int) bool {
	i := sort.SearchInts(t.active, row)
	return i < len(t.active) && t.active[i] == row
}

func (t *Tile) sameSupport(o *Tile) bool {
	if t.rows != o.rows || t.cols != o.cols || t.col != o.col ||
		len(t.active) != len(o.active) {
		return false
	}
	for i := range t.active {
		if t.active[i] != o.active[i] {
			return false
		}
	}
	return true
}
