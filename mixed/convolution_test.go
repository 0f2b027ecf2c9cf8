package mixed

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConvolutionIdentityImpulseResponsePassesSignalThrough(t *testing.T) {
	ir := make([]float32, 2048)
	ir[0] = 1.0 // identity impulse: output should approximate input
	c := NewConvolution(ir, 44100)

	in := NewBuffer(4096)
	out := NewBuffer(4096)
	assert.NoError(t, c.SetIn(0, in))
	assert.NoError(t, c.SetOut(0, out))
	assert.NoError(t, c.Start())

	w := in.RequestWrite(4096)
	for i := range w {
		w[i] = 0.25
	}
	in.FinishWrite(4096)

	assert.NoError(t, c.Mix(4096))
	assert.Equal(t, 4096, out.Available())
}

func TestConvolutionBypassWhenMixIsZero(t *testing.T) {
	ir := make([]float32, 2048)
	ir[0] = 1.0
	c := NewConvolution(ir, 44100)
	assert.NoError(t, c.Set(FieldWet, float32(0)))

	in := NewBuffer(8)
	out := NewBuffer(8)
	assert.NoError(t, c.SetIn(0, in))
	assert.NoError(t, c.SetOut(0, out))

	w := in.RequestWrite(8)
	for i := range w {
		w[i] = float32(i)
	}
	in.FinishWrite(8)

	assert.NoError(t, c.Mix(8))
	got := out.RequestRead(8)
	for i, v := range got {
		assert.Equal(t, float32(i), v)
	}
}
