package mixed

import "math"

const equalizerBands = 8

func catmullRom(t, p0, p1, p2, p3 float64) float64 {
	return 0.5 * ((2 * p1) +
		(-p0+p2)*t +
		(2*p0-5*p1+4*p2-p3)*t*t +
		(-p0+3*p1-3*p2+p3)*t*t*t)
}

func lerp(a, b, t float32) float32 { return a + (b-a)*t }

// Equalizer is an 8-band frequency equalizer implemented as an STFT
// band-gain multiplier with Catmull-Rom interpolation between band
// control points, crossfaded against the dry signal by Mix.
type Equalizer struct {
	baseProcessor
	in, out *Buffer

	Samplerate int
	Mix        float32
	Bands      [equalizerBands]float32

	window *fftWindow
}

// NewEqualizer creates an Equalizer at unity band gains and full wet mix.
func NewEqualizer(samplerate int) *Equalizer {
	e := &Equalizer{Samplerate: samplerate, Mix: 1.0}
	for i := range e.Bands {
		e.Bands[i] = 1.0
	}
	e.window = newFFTWindow(2048, 4, samplerate)
	return e
}

func (e *Equalizer) Start() error { e.start(); return nil }
func (e *Equalizer) End() error   { e.end(); return nil }

func (e *Equalizer) equalizeFrame(w *fftWindow) {
	framesize := w.framesize
	bands := e.Bands

	mag := make([]float64, framesize)
	phase := make([]float64, framesize)
	for k := 0; k < framesize; k++ {
		re := real(w.workspace[k])
		im := imag(w.workspace[k])
		mag[k] = math.Sqrt(re*re+im*im) * 2
		phase[k] = math.Atan2(im, re)
	}

	for p := 0; p < framesize; p++ {
		i := int(math.Floor(math.Sqrt(float64(p)/float64(framesize)) * float64(framesize/2)))
		p2 := i / (framesize / 16)
		p1 := p2 - 1
		p0 := p1 - 1
		p3 := p2 + 1
		if p1 < 0 {
			p1 = 0
		}
		if p0 < 0 {
			p0 = 0
		}
		if p3 > equalizerBands-1 {
			p3 = equalizerBands - 1
		}
		if p2 > equalizerBands-1 {
			p2 = equalizerBands - 1
		}
		v := float64(i%(framesize/16)) / float64(framesize/16)
		gain := catmullRom(v, float64(bands[p0]), float64(bands[p1]), float64(bands[p2]), float64(bands[p3]))
		mag[p] *= gain
	}

	for k := 0; k < framesize; k++ {
		w.workspace[k] = complex(math.Cos(phase[k])*mag[k], math.Sin(phase[k])*mag[k])
	}
}

func (e *Equalizer) Mix(samples int) error {
	if e.bypass {
		return CopyBuffer(e.out, e.in, samples)
	}
	if e.in == nil || e.out == nil {
		return newErr("Mix", KindMixingFailed, "equalizer requires wired in/out")
	}
	in := e.in.RequestRead(samples)
	out := e.out.RequestWrite(len(in))
	n := len(out)
	if len(in) < n {
		n = len(in)
	}
	in = in[:n]
	out = out[:n]

	e.window.process(in, out, e.equalizeFrame)
	mix := e.Mix
	for i := range out {
		out[i] = lerp(in[i], out[i], mix)
	}

	e.in.FinishRead(n)
	e.out.FinishWrite(n)
	return nil
}

func (e *Equalizer) SetIn(index int, buffer *Buffer) error {
	if index != 0 {
		return newErr("SetIn", KindInvalidLocation, "location %d", index)
	}
	e.in = buffer
	return nil
}

func (e *Equalizer) SetOut(index int, buffer *Buffer) error {
	if index != 0 {
		return newErr("SetOut", KindInvalidLocation, "location %d", index)
	}
	e.out = buffer
	return nil
}

func (e *Equalizer) Get(field Field) (any, error) {
	switch field {
	case FieldBypass:
		return e.getBypass()
	case FieldWet:
		return e.Mix, nil
	case FieldBandGain:
		return e.Bands, nil
	case FieldSamplerate:
		return e.Samplerate, nil
	default:
		return nil, newErr("Get", KindInvalidField, "Equalizer has no field %v", field)
	}
}

func (e *Equalizer) Set(field Field, value any) error {
	switch field {
	case FieldBypass:
		return e.setBypass(value)
	case FieldWet:
		v, ok := value.(float32)
		if !ok || v < 0 || v > 1 {
			return newErr("Set", KindInvalidValue, "FieldWet wants a float32 in [0,1]")
		}
		e.Mix = v
		e.bypass = v == 0
		return nil
	case FieldBandGain:
		v, ok := value.([equalizerBands]float32)
		if !ok {
			return newErr("Set", KindInvalidValue, "FieldBandGain wants [8]float32")
		}
		e.Bands = v
		return nil
	case FieldSamplerate:
		v, ok := value.(int)
		if !ok || v <= 0 {
			return newErr("Set", KindInvalidValue, "FieldSamplerate wants a positive int")
		}
		e.Samplerate = v
		e.window = newFFTWindow(2048, 4, v)
		return nil
	default:
		return newErr("Set", KindInvalidField, "Equalizer has no field %v", field)
	}
}

func (e *Equalizer) Info() Info {
	return Info{Name: "equalizer", Description: "Frequency equalization over 8 bands."}
}
