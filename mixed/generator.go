package mixed

import (
	"math"
	"math/rand/v2"
)

// GeneratorType selects a Generator's waveform shape.
type GeneratorType int

const (
	GeneratorSine GeneratorType = iota
	GeneratorSquare
	GeneratorTriangle
	GeneratorSawtooth
)

func waveSample(t GeneratorType, position, length int) float32 {
	switch t {
	case GeneratorSquare:
		if position < length/2 {
			return 1.0
		}
		return -1.0
	case GeneratorTriangle:
		temp := float32(position) / float32(length)
		abs := temp
		if temp > 0.5 {
			abs = 1.0 - temp
		}
		return abs*4.0 - 1.0
	case GeneratorSawtooth:
		return float32(position)/float32(length)*2.0 - 1.0
	default:
		return float32(math.Sin(2 * math.Pi * float64(position) / float64(length)))
	}
}

// Generator is a source processor (no inputs) producing one of four
// periodic waveforms at a configured frequency. Phase is tracked as a
// sample position carried across Mix calls, so a fixed frequency
// continues seamlessly from one tick to the next; changing Frequency
// keeps the sample position rather than the phase fraction, so the
// waveform can jump at that point.
type Generator struct {
	baseProcessor
	out *Buffer

	Type       GeneratorType
	Frequency  int
	Samplerate int
	phase      int
}

// NewGenerator creates a Generator at the given frequency and samplerate.
func NewGenerator(t GeneratorType, frequency, samplerate int) *Generator {
	return &Generator{Type: t, Frequency: frequency, Samplerate: samplerate}
}

func (g *Generator) Start() error { g.start(); return nil }
func (g *Generator) End() error   { g.end(); return nil }

func (g *Generator) Mix(samples int) error {
	if g.out == nil {
		return newErr("Mix", KindMixingFailed, "generator requires a wired output")
	}
	if g.Frequency <= 0 || g.Samplerate <= 0 {
		return newErr("Mix", KindInvalidValue, "frequency and samplerate must be positive")
	}
	length := g.Samplerate / g.Frequency
	if length <= 0 {
		length = 1
	}
	out := g.out.RequestWrite(samples)
	position := g.phase
	for i := range out {
		out[i] = waveSample(g.Type, position, length)
		position = (position + 1) % length
	}
	g.phase = position
	g.out.FinishWrite(len(out))
	return nil
}

func (g *Generator) SetIn(index int, buffer *Buffer) error {
	return newErr("SetIn", KindNotImplemented, "generator has no inputs")
}

func (g *Generator) SetOut(index int, buffer *Buffer) error {
	if Location(index) != LocationMono {
		return newErr("SetOut", KindInvalidLocation, "location %d", index)
	}
	g.out = buffer
	return nil
}

func (g *Generator) Get(field Field) (any, error) {
	switch field {
	case FieldBypass:
		return g.getBypass()
	case FieldFrequency:
		return g.Frequency, nil
	case FieldGeneratorType:
		return g.Type, nil
	default:
		return nil, newErr("Get", KindInvalidField, "Generator has no field %v", field)
	}
}

func (g *Generator) Set(field Field, value any) error {
	switch field {
	case FieldBypass:
		return g.setBypass(value)
	case FieldFrequency:
		f, ok := value.(int)
		if !ok || f <= 0 {
			return newErr("Set", KindInvalidValue, "FieldFrequency wants a positive int")
		}
		g.Frequency = f
		return nil
	case FieldGeneratorType:
		t, ok := value.(GeneratorType)
		if !ok {
			return newErr("Set", KindInvalidValue, "FieldGeneratorType wants GeneratorType")
		}
		g.Type = t
		return nil
	default:
		return newErr("Set", KindInvalidField, "Generator has no field %v", field)
	}
}

func (g *Generator) Info() Info {
	return Info{Name: "generator", Description: "Wave generator source segment."}
}

// NoiseType selects a Noise processor's spectral color.
type NoiseType int

const (
	NoiseWhite NoiseType = iota
	NoisePink
	NoiseBrown
)

const pinkRows = 30
const pinkIndexMask = 1<<pinkRows - 1

// Noise is a source processor producing white, pink (1/f), or brown
// (1/f²) noise. Pink noise uses the Voss-McCartney row-summation
// algorithm (pinkRows octave-spaced running sums); brown noise is a
// leaky integrator of white noise.
type Noise struct {
	baseProcessor
	out *Buffer

	Type   NoiseType
	Volume float32

	pinkRowValues [pinkRows]float64
	pinkRunning   float64
	pinkIndex     int
	brown         float64
}

// NewNoise creates a Noise generator at unity volume.
func NewNoise(t NoiseType) *Noise {
	return &Noise{Type: t, Volume: 1.0}
}

func (n *Noise) Start() error { n.start(); return nil }
func (n *Noise) End() error   { n.end(); return nil }

func (n *Noise) Mix(samples int) error {
	if n.out == nil {
		return newErr("Mix", KindMixingFailed, "noise requires a wired output")
	}
	out := n.out.RequestWrite(samples)
	for i := range out {
		out[i] = n.sample() * n.Volume
	}
	n.out.FinishWrite(len(out))
	return nil
}

func (n *Noise) sample() float32 {
	switch n.Type {
	case NoisePink:
		return n.pink()
	case NoiseBrown:
		return n.brownSample()
	default:
		return float32(rand.Float64()*2.0 - 1.0)
	}
}

func (n *Noise) pink() float32 {
	n.pinkIndex = (n.pinkIndex + 1) & pinkIndexMask
	if n.pinkIndex != 0 {
		zeroes := 0
		v := n.pinkIndex
		for v&1 == 0 {
			v >>= 1
			zeroes++
		}
		n.pinkRunning -= n.pinkRowValues[zeroes]
		random := (rand.Float64() - 0.5) * 67108864
		n.pinkRunning += random
		n.pinkRowValues[zeroes] = random
	}
	random := (rand.Float64() - 0.5) * 67108864
	sum := n.pinkRunning + random
	// Scale by 1/(rows * half-range) so the summed rows land back in
	// roughly [-1, 1] regardless of pinkRows.
	const pinkScalar = 1.0 / (pinkRows * 33554432)
	return float32(sum * pinkScalar)
}

func (n *Noise) brownSample() float32 {
	n.brown += rand.Float64()*2.0 - 1.0
	n.brown -= n.brown * 0.03125
	return float32(n.brown * 0.0625)
}

func (n *Noise) SetIn(index int, buffer *Buffer) error {
	return newErr("SetIn", KindNotImplemented, "noise has no inputs")
}

func (n *Noise) SetOut(index int, buffer *Buffer) error {
	if Location(index) != LocationMono {
		return newErr("SetOut", KindInvalidLocation, "location %d", index)
	}
	n.out = buffer
	return nil
}

func (n *Noise) Get(field Field) (any, error) {
	switch field {
	case FieldBypass:
		return n.getBypass()
	case FieldVolume:
		return n.Volume, nil
	default:
		return nil, newErr("Get", KindInvalidField, "Noise has no field %v", field)
	}
}

func (n *Noise) Set(field Field, value any) error {
	switch field {
	case FieldBypass:
		return n.setBypass(value)
	case FieldVolume:
		v, ok := value.(float32)
		if !ok {
			return newErr("Set", KindInvalidValue, "FieldVolume wants float32")
		}
		n.Volume = v
		return nil
	default:
		return newErr("Set", KindInvalidField, "Noise has no field %v", field)
	}
}

func (n *Noise) Info() Info {
	return Info{Name: "noise", Description: "White, pink, or brown noise source segment."}
}
