package mixed

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"
)

var allEncodings = []Encoding{
	EncodingInt8, EncodingUint8,
	EncodingInt16, EncodingUint16,
	EncodingInt24, EncodingUint24,
	EncodingInt32, EncodingUint32,
	EncodingFloat32, EncodingFloat64,
}

func TestCodecRoundTripWithinQuantizationError(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		enc := allEncodings[rapid.IntRange(0, len(allEncodings)-1).Draw(t, "enc")]
		value := float32(rapid.Float64Range(-1, 1).Draw(t, "value"))

		buf := make([]byte, enc.BytesPerSample())
		encodeSample(enc, value, buf)
		got := decodeSample(enc, buf)

		// Quantization error tolerance scales with the encoding's bit
		// depth; float encodings should round-trip exactly.
		var tolerance float32
		switch enc {
		case EncodingFloat32, EncodingFloat64:
			tolerance = 0
		case EncodingInt8, EncodingUint8:
			tolerance = 1.0 / scale8
		case EncodingInt16, EncodingUint16:
			tolerance = 1.0 / scale16
		case EncodingInt24, EncodingUint24:
			tolerance = 1.0 / scale24
		default:
			tolerance = 1e-6
		}
		diff := got - value
		if diff < 0 {
			diff = -diff
		}
		assert.LessOrEqual(t, diff, tolerance+1e-7)
	})
}

func TestCodecClampsOutOfRangeFloats(t *testing.T) {
	buf := make([]byte, 2)
	encodeSample(EncodingInt16, 5.0, buf)
	assert.Equal(t, float32(scale16-1)/scale16, decodeSample(EncodingInt16, buf))

	encodeSample(EncodingInt16, -5.0, buf)
	got := decodeSample(EncodingInt16, buf)
	assert.InDelta(t, -1.0, got, 1.0/scale16)
}

func TestInt24SignExtension(t *testing.T) {
	buf := []byte{0xFF, 0xFF, 0xFF}
	assert.Equal(t, int32(-1), decodeInt24(buf))

	buf2 := []byte{0x00, 0x00, 0x80}
	assert.Equal(t, int32(-8388608), decodeInt24(buf2))
}
