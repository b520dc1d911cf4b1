package gradient

import "gonum.org/v1/gonum/mat"

// Sparse is a Buffer which stores only its populated entries in a
// hash map
type Sparse struct {
	rows, cols int
	values     map[Index]float64
}

// NewSparse returns a new, empty Sparse buffer
func NewSparse(r, c int) *Sparse {
	checkShape(r, c)
	return &Sparse{r, c, make(map[Index]float64)}
}

// Set sets the entry at (i, j), panicking if (i, j) is out of range
func (s *Sparse) Set(i, j int, v float64) {
	checkIndex(s.rows, s.cols, i, j)
	s.values[Index{i, j}] = v
}

// Len returns the number of populated entries
func (s *Sparse) Len() int {
	return len(s.values)
}

// Dims implements the Buffer interface
func (s *Sparse) Dims() (r, c int) {
	return s.rows, s.cols
}

// At implements the Buffer interface
func (s *Sparse) At(i, j int) float64 {
	checkIndex(s.rows, s.cols, i, j)
	return s.values[Index{i, j}]
}

// Each implements the Buffer interface
func (s *Sparse) Each(fn func(i, j int, v float64)) {
	for idx, v := range s.values {
		fn(idx.Row, idx.Col, v)
	}
}

// Map implements the Buffer interface
func (s *Sparse) Map(f func(float64) float64) Buffer {
	out := s.Clone().(*Sparse)
	out.MapInplace(f)
	return out
}

// MapInplace implements the Buffer interface
func (s *Sparse) MapInplace(f func(float64) float64) {
	for idx, v := range s.values {
		s.values[idx] = f(v)
	}
}

// Merge implements the Buffer interface
func (s *Sparse) Merge(other Buffer, f func(x, y float64) float64) Buffer {
	return Merge(s, other, f)
}

// MergeInplace implements the Buffer interface. Merging a Dense buffer
// into a Sparse buffer populates every entry.
func (s *Sparse) MergeInplace(other Buffer, f func(x, y float64) float64) {
	checkDims("mergeInplace", s, other)

	if d, ok := other.(*Dense); ok {
		d.Each(func(i, j int, v float64) {
			idx := Index{i, j}
			s.values[idx] = f(s.values[idx], v)
		})
		return
	}

	seen := make(map[Index]struct{}, len(s.values))
	for idx, v := range s.values {
		seen[idx] = struct{}{}
		s.values[idx] = f(v, other.At(idx.Row, idx.Col))
	}
	other.Each(func(i, j int, v float64) {
		idx := Index{i, j}
		if _, ok := seen[idx]; !ok {
			s.values[idx] = f(0, v)
		}
	})
}

// AddTo implements the Buffer interface
func (s *Sparse) AddTo(weights *mat.Dense, scale float64) {
	checkWeights(s, weights)
	for idx, v := range s.values {
		weights.Set(idx.Row, idx.Col, weights.At(idx.Row, idx.Col)+scale*v)
	}
}

// ToDense implements the Buffer interface
func (s *Sparse) ToDense() *mat.Dense {
	out := mat.NewDense(s.rows, s.cols, nil)
	for idx, v := range s.values {
		out.Set(idx.Row, idx.Col, v)
	}
	return out
}

// Clone implements the Buffer interface
func (s *Sparse) Clone() Buffer {
	values := make(map[Index]float64, len(s.values))
	for idx, v := range s.values {
		values[idx] = v
	}
	return &Sparse{s.rows, s.cols, values}
}
