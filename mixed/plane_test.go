package mixed

import (
	"testing"

	"github.com/golang/geo/r2"
	"github.com/stretchr/testify/assert"
)

func TestPlaneWithNoSourcesProducesSilence(t *testing.T) {
	p := NewPlane()
	left := NewBuffer(8)
	right := NewBuffer(8)
	assert.NoError(t, p.SetOut(int(LocationLeft), left))
	assert.NoError(t, p.SetOut(int(LocationRight), right))

	assert.NoError(t, p.Mix(8))
	for _, v := range left.RequestRead(8) {
		assert.Equal(t, float32(0), v)
	}
}

func TestPlaneSourceToTheRightPansRight(t *testing.T) {
	p := NewPlane()
	p.MinDistance = 1
	p.MaxDistance = 100

	in := NewBuffer(8)
	left := NewBuffer(8)
	right := NewBuffer(8)
	assert.NoError(t, p.SetIn(0, in))
	assert.NoError(t, p.SetSourceLocation(0, r2.Vector{X: 50, Y: 0}))
	assert.NoError(t, p.SetOut(int(LocationLeft), left))
	assert.NoError(t, p.SetOut(int(LocationRight), right))

	w := in.RequestWrite(8)
	for i := range w {
		w[i] = 1.0
	}
	in.FinishWrite(8)

	assert.NoError(t, p.Mix(8))
	l := left.RequestRead(8)
	r := right.RequestRead(8)
	assert.Less(t, l[0], r[0])
}

func TestPlaneSourceRangeOverridesMixerDefaults(t *testing.T) {
	p := NewPlane()
	in := NewBuffer(4)
	assert.NoError(t, p.SetIn(0, in))
	assert.NoError(t, p.SetSourceRange(0, 5, 50, 2))
	assert.Equal(t, float32(5), p.sources[0].minDistance)
	assert.Equal(t, float32(50), p.sources[0].maxDistance)
	assert.Equal(t, float32(2), p.sources[0].rolloff)
}

func TestPlaneRejectsBadSourceLocationIndex(t *testing.T) {
	p := NewPlane()
	assert.Error(t, p.SetSourceLocation(2, r2.Vector{}))
}

func TestPlaneStartRequiresWiredOutputs(t *testing.T) {
	p := NewPlane()
	assert.Error(t, p.Start())
}

func TestPlaneDefaultsMatchReferenceGeometry(t *testing.T) {
	p := NewPlane()
	assert.Equal(t, float32(0), p.DopplerFactor)
	assert.Equal(t, AttenuationLinear, p.Attenuation)
	assert.Equal(t, float32(10000), p.MaxDistance)
}
