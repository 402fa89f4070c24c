package environment

import (
	"fmt"

	"gonum.org/v1/gonum/spatial/r1"

	"github.com/samuelfneumann/tabular/timestep"
)

// IntervalLimit implements the Ender interface to end episodes
// whenever a single feature in a feature vector leaves some interval
type IntervalLimit struct {
	intervals []r1.Interval
	indices   []int
	endType   timestep.EndType
}

// NewIntervalLimit creates and returns a new interval limit. The
// endType argument determines what the episode end should be
// considered as.
func NewIntervalLimit(limits []r1.Interval, obsIndices []int,
	endType timestep.EndType) (*IntervalLimit, error) {
	if len(limits) != len(obsIndices) {
		return nil, fmt.Errorf("newIntervalLimit: limits should have same "+
			"length as observation indices: %d != %d", len(limits),
			len(obsIndices))
	}

	return &IntervalLimit{limits, obsIndices, endType}, nil
}

// End determines whether or not the current episode should be ended,
// returning a boolean to indicate episode termination. If the episode
// should be ended End() will mark the timestep as timestep.Last with
// the appropriate end type.
func (i *IntervalLimit) End(t *timestep.TimeStep[[]float64]) bool {
	for index, featureIndex := range i.indices {
		interval := i.intervals[index]
		feature := t.Observation[featureIndex]

		if feature > interval.Max || feature < interval.Min {
			t.SetEnd(i.endType)
			return true
		}
	}
	return false
}
