package mixed

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSpeedRejectsNonPositiveFactor(t *testing.T) {
	s := NewSpeed()
	assert.Error(t, s.Set(FieldSpeedFactor, float32(0)))
	assert.Error(t, s.Set(FieldSpeedFactor, float32(-1)))
}

func TestSpeedAtUnityPassesSamplesThrough(t *testing.T) {
	s := NewSpeed()
	in := NewBuffer(16)
	out := NewBuffer(16)
	assert.NoError(t, s.SetIn(0, in))
	assert.NoError(t, s.SetOut(0, out))

	w := in.RequestWrite(8)
	for i := range w {
		w[i] = float32(i)
	}
	in.FinishWrite(8)

	assert.NoError(t, s.Mix(8))
	assert.Equal(t, 8, out.Available())
}

func TestSpeedBypassCopiesDirectly(t *testing.T) {
	s := NewSpeed()
	assert.NoError(t, s.Set(FieldBypass, true))

	in := NewBuffer(4)
	out := NewBuffer(4)
	assert.NoError(t, s.SetIn(0, in))
	assert.NoError(t, s.SetOut(0, out))

	w := in.RequestWrite(4)
	copy(w, []float32{1, 2, 3, 4})
	in.FinishWrite(4)

	assert.NoError(t, s.Mix(4))
	got := out.RequestRead(4)
	assert.Equal(t, []float32{1, 2, 3, 4}, got)
}
