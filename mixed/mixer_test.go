package mixed

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBasicMixerSumsSources(t *testing.T) {
	m := NewBasicMixer()
	a := NewBuffer(8)
	b := NewBuffer(8)
	out := NewBuffer(8)

	assert.NoError(t, m.SetIn(0, a))
	assert.NoError(t, m.SetIn(1, b))
	assert.NoError(t, m.SetOut(0, out))

	wa := a.RequestWrite(2)
	copy(wa, []float32{0.5, -0.5})
	a.FinishWrite(2)
	wb := b.RequestWrite(2)
	copy(wb, []float32{0.25, 0.25})
	b.FinishWrite(2)

	assert.NoError(t, m.Mix(2))
	got := out.RequestRead(2)
	assert.InDeltaSlice(t, []float32{0.75, -0.25}, got, 1e-6)
}

func TestBasicMixerAppliesPerSourceAndMasterVolume(t *testing.T) {
	m := NewBasicMixer()
	a := NewBuffer(8)
	out := NewBuffer(8)
	assert.NoError(t, m.SetIn(0, a))
	assert.NoError(t, m.SetOut(0, out))
	assert.NoError(t, m.SetSourceVolume(0, 0.5))
	assert.NoError(t, m.Set(FieldVolume, float32(0.5)))

	w := a.RequestWrite(1)
	w[0] = 1.0
	a.FinishWrite(1)

	assert.NoError(t, m.Mix(1))
	got := out.RequestRead(1)
	assert.InDelta(t, 0.25, got[0], 1e-6)
}

func TestBasicMixerFailsWithNoSources(t *testing.T) {
	m := NewBasicMixer()
	out := NewBuffer(8)
	assert.NoError(t, m.SetOut(0, out))
	err := m.Mix(4)
	assert.Error(t, err)
}
