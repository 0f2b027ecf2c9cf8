package mixed

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGeneratorSquareWaveAlternates(t *testing.T) {
	g := NewGenerator(GeneratorSquare, 2, 8) // length 4: high,high,low,low
	out := NewBuffer(8)
	assert.NoError(t, g.SetOut(int(LocationMono), out))

	assert.NoError(t, g.Mix(4))
	got := out.RequestRead(4)
	assert.Equal(t, []float32{1, 1, -1, -1}, got)
}

func TestGeneratorSineWaveBoundedUnit(t *testing.T) {
	g := NewGenerator(GeneratorSine, 440, 44100)
	out := NewBuffer(256)
	assert.NoError(t, g.SetOut(int(LocationMono), out))
	assert.NoError(t, g.Mix(256))
	got := out.RequestRead(256)
	for _, v := range got {
		assert.LessOrEqual(t, v, float32(1.0))
		assert.GreaterOrEqual(t, v, float32(-1.0))
	}
}

func TestNoiseWhiteStaysWithinUnitRange(t *testing.T) {
	n := NewNoise(NoiseWhite)
	out := NewBuffer(1024)
	assert.NoError(t, n.SetOut(int(LocationMono), out))
	assert.NoError(t, n.Mix(1024))
	got := out.RequestRead(1024)
	for _, v := range got {
		assert.LessOrEqual(t, v, float32(1.0))
		assert.GreaterOrEqual(t, v, float32(-1.0))
	}
}
