package mixed

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEqualizerBypassWhenMixIsZero(t *testing.T) {
	e := NewEqualizer(44100)
	assert.NoError(t, e.Set(FieldWet, float32(0)))

	in := NewBuffer(8)
	out := NewBuffer(8)
	assert.NoError(t, e.SetIn(0, in))
	assert.NoError(t, e.SetOut(0, out))

	w := in.RequestWrite(8)
	for i := range w {
		w[i] = float32(i) / 8
	}
	in.FinishWrite(8)

	assert.NoError(t, e.Mix(8))
	got := out.RequestRead(8)
	for i, v := range got {
		assert.Equal(t, float32(i)/8, v)
	}
}

func TestEqualizerRejectsMixOutOfRange(t *testing.T) {
	e := NewEqualizer(44100)
	assert.Error(t, e.Set(FieldWet, float32(1.5)))
}

func TestCatmullRomInterpolatesBetweenControlPoints(t *testing.T) {
	v := catmullRom(0.0, 1, 2, 3, 4)
	assert.InDelta(t, 2.0, v, 1e-6)
	v = catmullRom(1.0, 1, 2, 3, 4)
	assert.InDelta(t, 3.0, v, 1e-6)
}
