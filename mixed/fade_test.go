package mixed

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFadeLinearRampReachesTargetAfterDuration(t *testing.T) {
	f := NewFade(4)
	f.From, f.To, f.Time = 0, 1, 1.0 // 1 second at 4Hz = 4 samples to complete

	in := NewBuffer(8)
	out := NewBuffer(8)
	assert.NoError(t, f.SetIn(0, in))
	assert.NoError(t, f.SetOut(0, out))

	w := in.RequestWrite(8)
	for i := range w {
		w[i] = 1.0
	}
	in.FinishWrite(8)

	assert.NoError(t, f.Mix(8))
	got := out.RequestRead(8)

	assert.InDelta(t, 0.0, got[0], 1e-6)
	assert.InDelta(t, 1.0, got[4], 1e-6)
	assert.InDelta(t, 1.0, got[7], 1e-6)
}

func TestFadeCubicInOutMidpoint(t *testing.T) {
	assert.InDelta(t, 0.5, fadeEase(FadeCubicInOut, 0.5), 1e-6)
	assert.InDelta(t, 0.0, fadeEase(FadeCubicInOut, 0.0), 1e-6)
	assert.InDelta(t, 1.0, fadeEase(FadeCubicInOut, 1.0), 1e-6)
}
