package mixed

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResampleNearestUpsamplesByRepeating(t *testing.T) {
	in := []float32{1, 2, 3, 4}
	out := make([]float32, 8)
	ResampleNearestInto(in, 1, out, 2)
	assert.Equal(t, []float32{1, 1, 2, 2, 3, 3, 4, 4}, out)
}

func TestResampleLinearInterpolatesMidpoints(t *testing.T) {
	in := []float32{0, 10}
	out := make([]float32, 3)
	ResampleLinearInto(in, 2, out, 4)
	assert.InDelta(t, 0.0, out[0], 1e-4)
	assert.InDelta(t, 5.0, out[1], 1e-4)
}

func TestResampleCubicFallsBackToHermiteForShortInput(t *testing.T) {
	in := []float32{0, 1, 2}
	out := make([]float32, 6)
	ResampleCubicInto(in, 1, out, 2)
	assert.Len(t, out, 6)
	for _, v := range out {
		assert.False(t, v != v) // not NaN
	}
}

func TestResampleDispatchesByMethod(t *testing.T) {
	in := []float32{1, 2, 3, 4, 5}
	out := make([]float32, 5)
	Resample(ResampleNearest, in, 1, out, 1)
	assert.Equal(t, in, out)
}
