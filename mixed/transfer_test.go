package mixed

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBufferFromPackToPackRoundTrip(t *testing.T) {
	pack, err := NewPack(EncodingInt16, 2, 44100, 64)
	assert.NoError(t, err)

	raw := make([]byte, 8) // 2 frames, 2 channels, 2 bytes each
	encodeSample(EncodingInt16, 0.5, raw[0:2])
	encodeSample(EncodingInt16, -0.5, raw[2:4])
	encodeSample(EncodingInt16, 0.25, raw[4:6])
	encodeSample(EncodingInt16, -0.25, raw[6:8])
	n := pack.Write(raw)
	assert.Equal(t, 8, n)

	left := NewBuffer(16)
	right := NewBuffer(16)
	frames := BufferFromPack(pack, []*Buffer{left, right}, nil, 2)
	assert.Equal(t, 2, frames)

	gotL := left.RequestRead(2)
	gotR := right.RequestRead(2)
	assert.InDelta(t, 0.5, gotL[0], 1.0/scale16)
	assert.InDelta(t, 0.25, gotL[1], 1.0/scale16)
	assert.InDelta(t, -0.5, gotR[0], 1.0/scale16)
	assert.InDelta(t, -0.25, gotR[1], 1.0/scale16)
	left.FinishRead(2)
	right.FinishRead(2)

	outPack, err := NewPack(EncodingInt16, 2, 44100, 64)
	assert.NoError(t, err)

	lw := left.RequestWrite(2)
	copy(lw, gotL)
	left.FinishWrite(2)
	rw := right.RequestWrite(2)
	copy(rw, gotR)
	right.FinishWrite(2)

	frames2 := BufferToPack([]*Buffer{left, right}, nil, outPack, 2)
	assert.Equal(t, 2, frames2)
	assert.Equal(t, 8, outPack.AvailableFrames()*outPack.bytesPerFrame())
}

func TestVolumeRampStepsOnlyAtZeroCrossing(t *testing.T) {
	r := NewVolumeRamp(1.0)
	r.SetTarget(0.0)

	// Same-sign samples: ramp should not yet step.
	out1 := r.apply(0.5)
	assert.Equal(t, float32(0.5), out1)
	out2 := r.apply(0.4)
	assert.Equal(t, float32(0.4), out2)

	// Crossing zero: ramp steps to target, producing silence from here.
	out3 := r.apply(-0.3)
	assert.Equal(t, float32(0.0), out3)
	assert.Equal(t, float32(0.0), r.Volume())
}

func TestCopyBufferRequiresEqualSize(t *testing.T) {
	src := NewBuffer(8)
	dst := NewBuffer(8)
	w := src.RequestWrite(4)
	copy(w, []float32{1, 2, 3, 4})
	src.FinishWrite(4)

	err := CopyBuffer(dst, src, 8)
	assert.Error(t, err)
	kind, ok := KindOf(err)
	assert.True(t, ok)
	assert.Equal(t, KindInvalidFrameCount, kind)

	err2 := CopyBuffer(dst, src, 4)
	assert.NoError(t, err2)
	assert.Equal(t, 4, dst.Available())
}
