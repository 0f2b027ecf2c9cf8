package mixed

import "math"

// Pitch shifts the perceived pitch of the signal without changing its
// duration, using a phase-vocoder STFT resynthesis (smbPitchShift
// derivative): magnitudes are redistributed across bins scaled by
// Shift while phase advance is tracked per-bin to stay coherent
// between frames.
type Pitch struct {
	baseProcessor
	in, out *Buffer

	Samplerate int
	Shift      float32

	window *fftWindow
}

// NewPitch creates a Pitch processor at unity shift (no change).
func NewPitch(samplerate int) *Pitch {
	p := &Pitch{Samplerate: samplerate, Shift: 1.0}
	p.window = newFFTWindow(2048, 4, samplerate)
	return p
}

func (p *Pitch) Start() error { p.start(); return nil }
func (p *Pitch) End() error   { p.end(); return nil }

func (p *Pitch) shiftFrame(w *fftWindow) {
	framesize := w.framesize
	framesize2 := framesize / 2
	oversampling := w.oversampling
	step := w.step
	shift := float64(p.Shift)

	binFrequency := float64(w.samplerate) / float64(framesize)
	expected := 2 * math.Pi * float64(step) / float64(framesize)

	analyzedFrequency := make([]float64, framesize2+1)
	analyzedMagnitude := make([]float64, framesize2+1)

	for k := 0; k <= framesize2; k++ {
		re := real(w.workspace[k])
		im := imag(w.workspace[k])

		magnitude := 2 * math.Sqrt(re*re+im*im)
		phase := math.Atan2(im, re)
		tmp := phase - w.lastPhase[k]
		w.lastPhase[k] = phase
		tmp -= float64(k) * expected

		qpd := int(tmp / math.Pi)
		if qpd >= 0 {
			qpd += qpd & 1
		} else {
			qpd -= qpd & 1
		}
		tmp -= math.Pi * float64(qpd)
		tmp = float64(oversampling) * tmp / (2 * math.Pi)
		tmp = float64(k)*binFrequency + tmp*binFrequency

		analyzedMagnitude[k] = magnitude
		analyzedFrequency[k] = tmp
	}

	synthesizedMagnitude := make([]float64, framesize2+1)
	synthesizedFrequency := make([]float64, framesize2+1)
	for k := 0; k <= framesize2; k++ {
		index := int(float64(k) * shift)
		if index <= framesize2 && index >= 0 {
			synthesizedMagnitude[index] += analyzedMagnitude[k]
			synthesizedFrequency[index] = analyzedFrequency[k] * shift
		}
	}

	for k := 0; k <= framesize2; k++ {
		magnitude := synthesizedMagnitude[k]
		tmp := synthesizedFrequency[k]

		tmp -= float64(k) * binFrequency
		tmp /= binFrequency
		tmp = 2 * math.Pi * tmp / float64(oversampling)
		tmp += float64(k) * expected
		w.phaseSum[k] += tmp

		phase := w.phaseSum[k]
		w.workspace[k] = complex(magnitude*math.Cos(phase), magnitude*math.Sin(phase))
	}

	for k := framesize2 + 1; k < framesize; k++ {
		w.workspace[k] = 0
	}
}

func (p *Pitch) Mix(samples int) error {
	if p.bypass {
		return CopyBuffer(p.out, p.in, samples)
	}
	if p.in == nil || p.out == nil {
		return newErr("Mix", KindMixingFailed, "pitch requires wired in/out")
	}
	in := p.in.RequestRead(samples)
	out := p.out.RequestWrite(len(in))
	n := len(out)
	if len(in) < n {
		n = len(in)
	}
	in = in[:n]
	out = out[:n]

	p.window.process(in, out, p.shiftFrame)

	p.in.FinishRead(n)
	p.out.FinishWrite(n)
	return nil
}

func (p *Pitch) SetIn(index int, buffer *Buffer) error {
	if index != 0 {
		return newErr("SetIn", KindInvalidLocation, "location %d", index)
	}
	p.in = buffer
	return nil
}

func (p *Pitch) SetOut(index int, buffer *Buffer) error {
	if index != 0 {
		return newErr("SetOut", KindInvalidLocation, "location %d", index)
	}
	p.out = buffer
	return nil
}

func (p *Pitch) Get(field Field) (any, error) {
	switch field {
	case FieldBypass:
		return p.getBypass()
	case FieldPitchShift:
		return p.Shift, nil
	case FieldSamplerate:
		return p.Samplerate, nil
	default:
		return nil, newErr("Get", KindInvalidField, "Pitch has no field %v", field)
	}
}

func (p *Pitch) Set(field Field, value any) error {
	switch field {
	case FieldBypass:
		return p.setBypass(value)
	case FieldPitchShift:
		v, ok := value.(float32)
		if !ok || v <= 0 {
			return newErr("Set", KindInvalidValue, "FieldPitchShift wants a positive float32")
		}
		p.Shift = v
		return nil
	case FieldSamplerate:
		v, ok := value.(int)
		if !ok || v <= 0 {
			return newErr("Set", KindInvalidValue, "FieldSamplerate wants a positive int")
		}
		p.Samplerate = v
		p.window = newFFTWindow(2048, 4, v)
		return nil
	default:
		return newErr("Set", KindInvalidField, "Pitch has no field %v", field)
	}
}

func (p *Pitch) Info() Info {
	return Info{Name: "pitch", Description: "Shift the pitch of the audio without changing its duration."}
}
