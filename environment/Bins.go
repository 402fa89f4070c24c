package environment

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r1"

	"github.com/samuelfneumann/tabular/utils/floatutils"
)

// Bins discretizes continuous state vectors by tiling each dimension
// with a fixed number of equal-width bins over a bounded interval.
// Values outside the interval fall into the first or last bin.
type Bins struct {
	bounds []r1.Interval
	bins   []int
}

// NewBins returns a new Bins which splits bounds[i] into bins[i] bins
func NewBins(bounds []r1.Interval, bins []int) (*Bins, error) {
	if len(bounds) != len(bins) {
		return nil, fmt.Errorf("newBins: there should be a number of bins "+
			"for each dimension: %d != %d", len(bins), len(bounds))
	}
	for i := range bins {
		if bins[i] < 1 {
			return nil, fmt.Errorf("newBins: dimension %d must have at "+
				"least one bin", i)
		}
		if bounds[i].Max <= bounds[i].Min {
			return nil, fmt.Errorf("newBins: dimension %d has empty "+
				"bounds %v", i, bounds[i])
		}
	}

	return &Bins{bounds, bins}, nil
}

// Dims returns the number of dimensions discretized
func (b *Bins) Dims() int {
	return len(b.bins)
}

// Len returns the total number of discrete states
func (b *Bins) Len() int {
	total := 1
	for _, n := range b.bins {
		total *= n
	}
	return total
}

// Bin returns the index of the bin that v falls into along dimension
// dim
func (b *Bins) Bin(dim int, v float64) int {
	interval := b.bounds[dim]
	width := (interval.Max - interval.Min) / float64(b.bins[dim])
	index := math.Floor((v - interval.Min) / width)
	return int(floatutils.Clip(index, 0, float64(b.bins[dim]-1)))
}

// Discretize fills out with the bin index of each dimension of obs.
// Both obs and out must have at least Dims() elements.
func (b *Bins) Discretize(obs []float64, out []int) {
	for i := range b.bins {
		out[i] = b.Bin(i, obs[i])
	}
}
