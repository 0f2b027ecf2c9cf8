package mixed

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPitchUnityShiftProducesFiniteOutput(t *testing.T) {
	p := NewPitch(44100)
	in := NewBuffer(4096)
	out := NewBuffer(4096)
	assert.NoError(t, p.SetIn(0, in))
	assert.NoError(t, p.SetOut(0, out))

	w := in.RequestWrite(4096)
	for i := range w {
		w[i] = 0.1
	}
	in.FinishWrite(4096)

	assert.NoError(t, p.Mix(4096))
	got := out.RequestRead(4096)
	for _, v := range got {
		assert.False(t, v != v)
	}
}

func TestPitchRejectsNonPositiveShift(t *testing.T) {
	p := NewPitch(44100)
	assert.Error(t, p.Set(FieldPitchShift, float32(0)))
}

func TestPitchBypassCopiesDirectly(t *testing.T) {
	p := NewPitch(44100)
	assert.NoError(t, p.Set(FieldBypass, true))

	in := NewBuffer(4)
	out := NewBuffer(4)
	assert.NoError(t, p.SetIn(0, in))
	assert.NoError(t, p.SetOut(0, out))

	w := in.RequestWrite(4)
	copy(w, []float32{1, 2, 3, 4})
	in.FinishWrite(4)

	assert.NoError(t, p.Mix(4))
	got := out.RequestRead(4)
	assert.Equal(t, []float32{1, 2, 3, 4}, got)
}
