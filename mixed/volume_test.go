package mixed

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVolumeControlPanAttenuatesOppositeSide(t *testing.T) {
	v := NewVolumeControl()
	assert.NoError(t, v.Set(FieldPan, float32(0.5)))

	inL, inR := NewBuffer(4), NewBuffer(4)
	outL, outR := NewBuffer(4), NewBuffer(4)
	assert.NoError(t, v.SetIn(int(LocationLeft), inL))
	assert.NoError(t, v.SetIn(int(LocationRight), inR))
	assert.NoError(t, v.SetOut(int(LocationLeft), outL))
	assert.NoError(t, v.SetOut(int(LocationRight), outR))

	wl := inL.RequestWrite(1)
	wl[0] = 1.0
	inL.FinishWrite(1)
	wr := inR.RequestWrite(1)
	wr[0] = 1.0
	inR.FinishWrite(1)

	assert.NoError(t, v.Mix(1))
	gl := outL.RequestRead(1)
	gr := outR.RequestRead(1)
	assert.InDelta(t, 0.5, gl[0], 1e-6)
	assert.InDelta(t, 1.0, gr[0], 1e-6)
}

func TestVolumeControlRejectsPanOutOfRange(t *testing.T) {
	v := NewVolumeControl()
	err := v.Set(FieldPan, float32(2.0))
	assert.Error(t, err)
}
