package basis

import (
	"fmt"
	"math"

	"golang.org/x/exp/rand"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r1"
	"gonum.org/v1/gonum/stat/distmv"
	"gonum.org/v1/gonum/stat/samplemv"

	"github.com/samuelfneumann/gotd/utils/floatutils"
)

// Controls tiling offsets. For each dimension, tilings are offset by
// randomly sampling from a uniform distribution with support
// [- tiling width/OffsetDiv, tiling width/OffsetDiv]
const OffsetDiv float64 = 1.5

// TileCoding implements a tile coding Projector. Tile coding takes a
// low-dimensional vector and changes it into a large, sparse binary
// vector. Each active feature represents the tile that the original
// vector falls in for a single tiling. For example:
//
//		[0.5, 0.1] -> [0, 0, 0, 1, 0, 0, 1, 0]
//
// The number of active features equals the number of tilings (plus
// one if a bias unit is used). The number of total features is the
// sum over tilings of the number of tiles in each tiling. Tile coding
// requires that the space to be tiled be bounded; values outside the
// bounds are placed in the closest tile.
//
// Each dimension of state space is fully tiled, and hash-based tile
// coding is not used.
type TileCoding struct {
	numTilings  int
	minDims     mat.Vector
	offsets     []*mat.Dense
	bins        [][]int
	binLengths  [][]float64
	includeBias bool
}

// NewTileCoding creates and returns a new TileCoding projector. The
// minDims and maxDims arguments are the bounds on each dimension
// between which tilings will be placed.
//
// The bins argument determines both the number of tilings to use and
// the number of tiles per each tiling. The number of elements in the
// outer slice determines the number of tilings to use. The sub-slices
// determine how many tiles are placed along each dimension for the
// respective tiling. For example, if bins := [][]int{{2, 2}, {4, 3}},
// then two tilings are used. The first tiling is a 2x2 tiling. The
// second tiling uses 4 tiles along the first dimension and 3 tiles
// along the second dimension.
//
// The parameter includeBias determines whether or not a bias unit is
// kept as the first unit in the tile coded representation.
func NewTileCoding(minDims, maxDims mat.Vector, bins [][]int,
	seed uint64, includeBias bool) *TileCoding {
	// Error checking
	if minDims.Len() != maxDims.Len() {
		msg := fmt.Sprintf("cannot specify minimum with fewer dimensions "+
			"than maximum: %d != %d", minDims.Len(), maxDims.Len())
		panic(msg)
	}
	if len(bins) == 0 {
		panic("cannot have less than 1 tiling")
	}

	// Calculate the length of bins and the tiling offset bounds
	var bounds []r1.Interval
	numTilings := len(bins)
	binLengths := make([][]float64, numTilings)

	for j := 0; j < numTilings; j++ {
		if len(bins[j]) != minDims.Len() {
			msg := fmt.Sprintf("there should be a single number of bins "+
				"for each dimension: \n\thave(%d) \n\twant (%d)",
				len(bins[j]), minDims.Len())
			panic(msg)
		}
		binLengths[j] = make([]float64, minDims.Len())

		for i := 0; i < minDims.Len(); i++ {
			if bins[j][i] <= 0 {
				panic(fmt.Sprintf("tiling %d: invalid number of bins %d",
					j, bins[j][i]))
			}
			binLength := (maxDims.AtVec(i) - minDims.AtVec(i))
			binLength /= float64(bins[j][i])
			bound := binLength / OffsetDiv // Bounds tiling offsets

			binLengths[j][i] = binLength
			bounds = append(bounds, r1.Interval{Min: -bound, Max: bound})
		}
	}

	// Sample offsets for each tiling, one row of bounds per tiling
	source := rand.NewSource(seed)
	offsets := make([]*mat.Dense, numTilings)
	for j := 0; j < numTilings; j++ {
		tilingBounds := bounds[j*minDims.Len() : (j+1)*minDims.Len()]
		u := distmv.NewUniform(tilingBounds, source)
		sampler := samplemv.IID{Dist: u}

		samples := mat.NewDense(1, minDims.Len(), nil)
		sampler.Sample(samples)
		offsets[j] = samples
	}

	min := mat.NewVecDense(minDims.Len(), nil)
	min.CloneFromVec(minDims)

	return &TileCoding{numTilings, min, offsets, bins, binLengths,
		includeBias}
}

// Calculates how many features exist in the tile-coded representation
// before tiling number i
func (t *TileCoding) featuresBeforeTiling(i int) int {
	features := 0
	for j := 0; j < i; j++ {
		features += prod(t.bins[j])
	}
	return features
}

// encodeWithTiling returns the index of the tile coded feature vector
// which should be a 1.0 when the input vector v is encoded with tiling
// number tiling.
func (t *TileCoding) encodeWithTiling(v mat.Vector, tiling int) int {
	bias := 0
	if t.includeBias {
		bias = 1
	}

	// indexOffset is the index into the tile-coded vector at which
	// the current tiling will start
	indexOffset := t.featuresBeforeTiling(tiling)
	index := 0
	stride := 1

	for i := len(t.bins[tiling]) - 1; i > -1; i-- {
		// Offset the tiling
		data := v.AtVec(i) + t.offsets[tiling].At(0, i)

		// Calculate the index of the tile along the current feature
		// dimension in which the feature falls
		tile := math.Floor((data - t.minDims.AtVec(i)) /
			t.binLengths[tiling][i])
		tile = floatutils.Clip(tile, 0.0, float64(t.bins[tiling][i]-1))

		index += int(tile) * stride
		stride *= t.bins[tiling][i]
	}
	return indexOffset + index + bias
}

// EncodeIndices returns the non-zero indices of the tile coded
// representation of v, one per tiling followed by the bias unit
func (t *TileCoding) EncodeIndices(v mat.Vector) []int {
	if v.Len() != t.minDims.Len() {
		panic(fmt.Sprintf("encodeIndices: expected vector of dimension %d, "+
			"got %d", t.minDims.Len(), v.Len()))
	}

	indices := make([]int, 0, t.numTilings+1)
	for i := 0; i < t.numTilings; i++ {
		indices = append(indices, t.encodeWithTiling(v, i))
	}

	if t.includeBias {
		indices = append(indices, 0)
	}
	return indices
}

// Project implements the Projector interface
func (t *TileCoding) Project(state mat.Vector) Features {
	return NewBinary(t.Dim(), t.EncodeIndices(state))
}

// Dim implements the Projector interface
func (t *TileCoding) Dim() int {
	baseVec := t.featuresBeforeTiling(t.numTilings)
	if t.includeBias {
		return baseVec + 1
	}
	return baseVec
}

// NumTilings returns the number of tilings used for encoding
func (t *TileCoding) NumTilings() int {
	return t.numTilings
}

// String returns a string representation of a *TileCoding
func (t *TileCoding) String() string {
	return fmt.Sprintf("Tilings %d  |  Tiles: %v", t.numTilings, t.bins)
}

// prod calculates the product of all integers in a []int
func prod(i []int) int {
	prod := 1
	for _, v := range i {
		prod *= v
	}
	return prod
}
