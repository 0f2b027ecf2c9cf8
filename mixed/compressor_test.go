package mixed

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCompressorPassesQuietSignalMostlyUnattenuated(t *testing.T) {
	c := NewCompressor(44100)
	in := NewBuffer(64)
	out := NewBuffer(64)
	assert.NoError(t, c.SetIn(0, in))
	assert.NoError(t, c.SetOut(0, out))

	w := in.RequestWrite(64)
	for i := range w {
		w[i] = 0.01
	}
	in.FinishWrite(64)

	assert.NoError(t, c.Mix(64))
	got := out.RequestRead(64)
	for _, v := range got {
		assert.InDelta(t, 0.01, v, 0.005)
	}
}

func TestCompressorAttenuatesLoudSignalBelowThreshold(t *testing.T) {
	c := NewCompressor(44100)
	in := NewBuffer(256)
	out := NewBuffer(256)
	assert.NoError(t, c.SetIn(0, in))
	assert.NoError(t, c.SetOut(0, out))

	w := in.RequestWrite(256)
	for i := range w {
		w[i] = 1.0
	}
	in.FinishWrite(256)

	assert.NoError(t, c.Mix(256))
	got := out.RequestRead(256)
	assert.Less(t, got[255], float32(1.0))
}

func TestCompressorBypassCopiesDirectly(t *testing.T) {
	c := NewCompressor(44100)
	assert.NoError(t, c.Set(FieldBypass, true))

	in := NewBuffer(4)
	out := NewBuffer(4)
	assert.NoError(t, c.SetIn(0, in))
	assert.NoError(t, c.SetOut(0, out))

	w := in.RequestWrite(4)
	copy(w, []float32{0.1, 0.2, 0.3, 0.4})
	in.FinishWrite(4)

	assert.NoError(t, c.Mix(4))
	got := out.RequestRead(4)
	assert.Equal(t, []float32{0.1, 0.2, 0.3, 0.4}, got)
}

func TestCompressorRejectsInvalidRatio(t *testing.T) {
	c := NewCompressor(44100)
	assert.Error(t, c.Set(FieldRatio, float32(0)))
}
