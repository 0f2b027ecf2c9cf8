package mixed

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGateStaysClosedBelowOpenThreshold(t *testing.T) {
	g := NewGate(100)
	in := NewBuffer(4)
	out := NewBuffer(4)
	assert.NoError(t, g.SetIn(0, in))
	assert.NoError(t, g.SetOut(0, out))

	w := in.RequestWrite(4)
	for i := range w {
		w[i] = 0.001
	}
	in.FinishWrite(4)

	assert.NoError(t, g.Mix(4))
	got := out.RequestRead(4)
	for _, v := range got {
		assert.Equal(t, float32(0), v)
	}
}

func TestGateOpensAndAttacksOnLoudSignal(t *testing.T) {
	g := NewGate(100)
	assert.NoError(t, g.Set(FieldAttack, float32(0.01)))
	in := NewBuffer(4)
	out := NewBuffer(4)
	assert.NoError(t, g.SetIn(0, in))
	assert.NoError(t, g.SetOut(0, out))

	w := in.RequestWrite(4)
	for i := range w {
		w[i] = 1.0
	}
	in.FinishWrite(4)

	assert.NoError(t, g.Mix(4))
	got := out.RequestRead(4)
	assert.Equal(t, float32(0), got[0])
	assert.Greater(t, got[3], got[0])
}

func TestDBLinearRoundTrip(t *testing.T) {
	assert.InDelta(t, -24.0, linearToDB(dbToLinear(-24.0)), 1e-3)
}
