package mixed

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBiquadLowpassPassthroughAtNyquist(t *testing.T) {
	c := deriveBiquad(BiquadLowpass, 44100, 22050, 0, 0)
	assert.Equal(t, passthroughCoefficients(), c)
}

func TestBiquadLowpassZeroAtZeroFrequency(t *testing.T) {
	c := deriveBiquad(BiquadLowpass, 44100, 0, 0, 0)
	assert.Equal(t, zeroCoefficients(), c)
}

func TestBiquadHighpassZeroAtNyquist(t *testing.T) {
	c := deriveBiquad(BiquadHighpass, 44100, 22050, 0, 0)
	assert.Equal(t, zeroCoefficients(), c)
}

func TestBiquadProcessesDCInputToStableOutput(t *testing.T) {
	b := NewBiquad(BiquadLowpass, 44100, 1000, 0, 0)
	in := NewBuffer(512)
	out := NewBuffer(512)
	assert.NoError(t, b.SetIn(0, in))
	assert.NoError(t, b.SetOut(0, out))

	w := in.RequestWrite(512)
	for i := range w {
		w[i] = 1.0
	}
	in.FinishWrite(512)

	assert.NoError(t, b.Mix(512))
	got := out.RequestRead(512)
	assert.InDelta(t, 1.0, got[511], 1e-3)
}

func TestBiquadAllpassInvertsAtZeroQ(t *testing.T) {
	c := deriveBiquad(BiquadAllpass, 44100, 1000, 0, 0)
	assert.Equal(t, scaleCoefficients(-1), c)
}

func TestBiquadBypassCopiesInputUnchanged(t *testing.T) {
	b := NewBiquad(BiquadLowpass, 44100, 1000, 0, 0)
	assert.NoError(t, b.Set(FieldBypass, true))

	in := NewBuffer(4)
	out := NewBuffer(4)
	assert.NoError(t, b.SetIn(0, in))
	assert.NoError(t, b.SetOut(0, out))

	w := in.RequestWrite(4)
	copy(w, []float32{0.1, 0.2, 0.3, 0.4})
	in.FinishWrite(4)

	assert.NoError(t, b.Mix(4))
	got := out.RequestRead(4)
	assert.Equal(t, []float32{0.1, 0.2, 0.3, 0.4}, got)
}

func TestBiquadSetFrequencyRecomputesCoefficients(t *testing.T) {
	b := NewBiquad(BiquadLowpass, 44100, 1000, 0, 0)
	before := b.coeffs
	assert.NoError(t, b.Set(FieldFrequency, float32(4000)))
	assert.NotEqual(t, before, b.coeffs)
}
