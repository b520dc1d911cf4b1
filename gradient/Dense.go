package gradient

import "gonum.org/v1/gonum/mat"

// Dense is a Buffer in which every entry is populated
type Dense struct {
	m *mat.Dense
}

// NewDense returns a new Dense buffer. If data is nil, all entries
// are 0. Otherwise, data is used as the row-major backing slice.
func NewDense(r, c int, data []float64) *Dense {
	checkShape(r, c)
	return &Dense{mat.NewDense(r, c, data)}
}

// Matrix returns the matrix backing the buffer
func (d *Dense) Matrix() *mat.Dense {
	return d.m
}

// Dims implements the Buffer interface
func (d *Dense) Dims() (r, c int) {
	return d.m.Dims()
}

// At implements the Buffer interface
func (d *Dense) At(i, j int) float64 {
	return d.m.At(i, j)
}

// Each calls fn on every entry of the buffer
func (d *Dense) Each(fn func(i, j int, v float64)) {
	r, c := d.m.Dims()
	for i := 0; i < r; i++ {
		row := d.m.RawRowView(i)
		for j := 0; j < c; j++ {
			fn(i, j, row[j])
		}
	}
}

// Map implements the Buffer interface
func (d *Dense) Map(f func(float64) float64) Buffer {
	out := d.Clone().(*Dense)
	out.MapInplace(f)
	return out
}

// MapInplace implements the Buffer interface
func (d *Dense) MapInplace(f func(float64) float64) {
	d.m.Apply(func(_, _ int, v float64) float64 {
		return f(v)
	}, d.m)
}

// Merge implements the Buffer interface
func (d *Dense) Merge(other Buffer, f func(x, y float64) float64) Buffer {
	return Merge(d, other, f)
}

// MergeInplace implements the Buffer interface
func (d *Dense) MergeInplace(other Buffer, f func(x, y float64) float64) {
	checkDims("mergeInplace", d, other)
	d.m.Apply(func(i, j int, v float64) float64 {
		return f(v, other.At(i, j))
	}, d.m)
}

// AddTo implements the Buffer interface
func (d *Dense) AddTo(weights *mat.Dense, scale float64) {
	checkWeights(d, weights)
	r, c := d.m.Dims()
	for i := 0; i < r; i++ {
		grad := d.m.RawRowView(i)
		row := weights.RawRowView(i)
		for j := 0; j < c; j++ {
			row[j] += scale * grad[j]
		}
	}
}

// ToDense implements the Buffer interface
func (d *Dense) ToDense() *mat.Dense {
	return mat.DenseCopyOf(d.m)
}

// Clone implements the Buffer interface
func (d *Dense) Clone() Buffer {
	return &Dense{mat.DenseCopyOf(d.m)}
}
