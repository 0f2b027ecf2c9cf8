package mixed

import (
	"testing"

	"github.com/golang/geo/r3"
	"github.com/stretchr/testify/assert"
)

func TestSpaceWithNoSourcesProducesSilence(t *testing.T) {
	s := NewSpace()
	left := NewBuffer(8)
	right := NewBuffer(8)
	assert.NoError(t, s.SetOut(int(LocationLeft), left))
	assert.NoError(t, s.SetOut(int(LocationRight), right))

	assert.NoError(t, s.Mix(8))
	for _, v := range left.RequestRead(8) {
		assert.Equal(t, float32(0), v)
	}
}

func TestSpaceSourceDirectlyInFrontPansCenter(t *testing.T) {
	s := NewSpace()
	s.MinDistance = 1
	s.MaxDistance = 1000

	in := NewBuffer(8)
	left := NewBuffer(8)
	right := NewBuffer(8)
	assert.NoError(t, s.SetIn(0, in))
	assert.NoError(t, s.SetSourceLocation(0, r3.Vector{X: 0, Y: 0, Z: 10}))
	assert.NoError(t, s.SetOut(int(LocationLeft), left))
	assert.NoError(t, s.SetOut(int(LocationRight), right))

	w := in.RequestWrite(8)
	for i := range w {
		w[i] = 1.0
	}
	in.FinishWrite(8)

	assert.NoError(t, s.Mix(8))
	l := left.RequestRead(8)
	r := right.RequestRead(8)
	for i := range l {
		assert.InDelta(t, l[i], r[i], 1e-4)
	}
}

func TestSpaceAttenuationModelsReduceVolumeWithDistance(t *testing.T) {
	for _, model := range []AttenuationModel{AttenuationInverse, AttenuationLinear, AttenuationExponential} {
		near := spaceAttenuate(model, 10, 1000, 10, 0.5)
		far := spaceAttenuate(model, 10, 1000, 500, 0.5)
		assert.Greater(t, near, far, "model %v should attenuate with distance", model)
	}
}

func TestSpaceAttenuationNoneIsAlwaysUnity(t *testing.T) {
	assert.Equal(t, float32(1.0), spaceAttenuate(AttenuationNone, 10, 1000, 500, 0.5))
}

func TestSpaceDopplerShiftIsUnityWhenStationary(t *testing.T) {
	s := NewSpace()
	src := &spaceSource{location: r3.Vector{X: 0, Y: 0, Z: 10}}
	assert.InDelta(t, 1.0, s.calculateDopplerShift(src), 1e-6)
}

func TestSpaceDopplerShiftIsUnityWhenFactorDisabled(t *testing.T) {
	s := NewSpace()
	s.DopplerFactor = 0
	src := &spaceSource{location: r3.Vector{X: 0, Y: 0, Z: 10}, velocity: r3.Vector{X: 0, Y: 0, Z: 100}}
	assert.Equal(t, float32(1.0), s.calculateDopplerShift(src))
}

func TestSpaceRejectsBadSourceLocationIndex(t *testing.T) {
	s := NewSpace()
	assert.Error(t, s.SetSourceLocation(3, r3.Vector{}))
}

func TestSpaceMixRequiresWiredOutputs(t *testing.T) {
	s := NewSpace()
	assert.Error(t, s.Mix(8))
}
