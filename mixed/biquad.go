package mixed

import "math"

// BiquadType selects which coefficient-derivation formula a Biquad
// filter uses. Coefficients are recomputed whenever Frequency, Q, or
// Gain changes.
type BiquadType int

const (
	BiquadLowpass BiquadType = iota
	BiquadHighpass
	BiquadBandpass
	BiquadNotch
	BiquadPeaking
	BiquadAllpass
	BiquadLowshelf
	BiquadHighshelf
)

// biquadCoefficients holds the five Direct Form II Transposed
// coefficients (b0, b1, b2 feedforward; a1, a2 feedback; a0 is always
// normalized to 1).
type biquadCoefficients struct {
	b0, b1, b2 float32
	a1, a2     float32
}

func scaleCoefficients(amount float32) biquadCoefficients {
	return biquadCoefficients{b0: amount}
}

func passthroughCoefficients() biquadCoefficients { return scaleCoefficients(1) }
func zeroCoefficients() biquadCoefficients        { return scaleCoefficients(0) }

// deriveBiquad computes coefficients for the given filter type from
// samplerate, frequency, Q (used as "resonance" in dB for low/highpass,
// straight Q elsewhere), and gain (dB, shelf/peaking only). This is a
// direct port of the reference library's per-type derivation.
func deriveBiquad(t BiquadType, samplerate int, frequency, q, gainDB float32) biquadCoefficients {
	nyquist := float32(samplerate) * 0.5
	if nyquist <= 0 {
		return passthroughCoefficients()
	}
	freq := frequency / nyquist

	switch t {
	case BiquadLowpass:
		if freq >= 1 {
			return passthroughCoefficients()
		}
		if freq <= 0 {
			return zeroCoefficients()
		}
		resonance := float32(math.Pow(10, float64(q)*0.05))
		theta := 2 * math.Pi * float64(freq)
		alpha := float32(math.Sin(theta)) / (2 * resonance)
		cosw := float32(math.Cos(theta))
		beta := (1 - cosw) * 0.5
		a0inv := 1 / (1 + alpha)
		return biquadCoefficients{
			b0: a0inv * beta,
			b1: a0inv * 2 * beta,
			b2: a0inv * beta,
			a1: a0inv * -2 * cosw,
			a2: a0inv * (1 - alpha),
		}

	case BiquadHighpass:
		if freq >= 1 {
			return zeroCoefficients()
		}
		if freq <= 0 {
			return passthroughCoefficients()
		}
		resonance := float32(math.Pow(10, float64(q)*0.05))
		theta := 2 * math.Pi * float64(freq)
		alpha := float32(math.Sin(theta)) / (2 * resonance)
		cosw := float32(math.Cos(theta))
		beta := (1 + cosw) * 0.5
		a0inv := 1 / (1 + alpha)
		return biquadCoefficients{
			b0: a0inv * beta,
			b1: a0inv * -2 * beta,
			b2: a0inv * beta,
			a1: a0inv * -2 * cosw,
			a2: a0inv * (1 - alpha),
		}

	case BiquadBandpass:
		if freq <= 0 || freq >= 1 {
			return zeroCoefficients()
		}
		if q <= 0 {
			return passthroughCoefficients()
		}
		w0 := 2 * math.Pi * float64(freq)
		alpha := float32(math.Sin(w0)) / (2 * q)
		k := float32(math.Cos(w0))
		a0inv := 1 / (1 + alpha)
		return biquadCoefficients{
			b0: a0inv * alpha,
			b2: a0inv * -alpha,
			a1: a0inv * -2 * k,
			a2: a0inv * (1 - alpha),
		}

	case BiquadNotch:
		if freq <= 0 || freq >= 1 {
			return passthroughCoefficients()
		}
		if q <= 0 {
			return zeroCoefficients()
		}
		w0 := 2 * math.Pi * float64(freq)
		alpha := float32(math.Sin(w0)) / (2 * q)
		k := float32(math.Cos(w0))
		a0inv := 1 / (1 + alpha)
		return biquadCoefficients{
			b0: a0inv,
			b1: a0inv * -2 * k,
			b2: a0inv,
			a1: a0inv * -2 * k,
			a2: a0inv * (1 - alpha),
		}

	case BiquadPeaking:
		if freq <= 0 || freq >= 1 {
			return passthroughCoefficients()
		}
		a := float32(math.Pow(10, float64(gainDB)*0.025))
		if q <= 0 {
			return scaleCoefficients(a * a)
		}
		w0 := 2 * math.Pi * float64(freq)
		alpha := float32(math.Sin(w0)) / (2 * q)
		k := float32(math.Cos(w0))
		a0inv := 1 / (1 + alpha/a)
		return biquadCoefficients{
			b0: a0inv * (1 + alpha*a),
			b1: a0inv * -2 * k,
			b2: a0inv * (1 - alpha*a),
			a1: a0inv * -2 * k,
			a2: a0inv * (1 - alpha/a),
		}

	case BiquadAllpass:
		if freq <= 0 || freq >= 1 {
			return passthroughCoefficients()
		}
		if q <= 0 {
			return scaleCoefficients(-1)
		}
		w0 := 2 * math.Pi * float64(freq)
		alpha := float32(math.Sin(w0)) / (2 * q)
		k := float32(math.Cos(w0))
		a0inv := 1 / (1 + alpha)
		return biquadCoefficients{
			b0: a0inv * (1 - alpha),
			b1: a0inv * -2 * k,
			b2: a0inv * (1 + alpha),
			a1: a0inv * -2 * k,
			a2: a0inv * (1 - alpha),
		}

	case BiquadLowshelf:
		if freq <= 0 || q == 0 {
			return passthroughCoefficients()
		}
		a := float32(math.Pow(10, float64(gainDB)*0.025))
		if freq >= 1 {
			return scaleCoefficients(a * a)
		}
		w0 := 2 * math.Pi * float64(freq)
		ainn := (a + 1/a) * (1/q - 1) + 2
		if ainn < 0 {
			ainn = 0
		}
		alpha := 0.5 * float32(math.Sin(w0)) * float32(math.Sqrt(float64(ainn)))
		k := float32(math.Cos(w0))
		k2 := 2 * float32(math.Sqrt(float64(a))) * alpha
		ap1 := a + 1
		am1 := a - 1
		a0inv := 1 / (ap1 + am1*k + k2)
		return biquadCoefficients{
			b0: a0inv * a * (ap1 - am1*k + k2),
			b1: a0inv * 2 * a * (am1 - ap1*k),
			b2: a0inv * a * (ap1 - am1*k - k2),
			a1: a0inv * -2 * (am1 + ap1*k),
			a2: a0inv * (ap1 + am1*k - k2),
		}

	case BiquadHighshelf:
		if freq >= 1 || q == 0 {
			return passthroughCoefficients()
		}
		a := float32(math.Pow(10, float64(gainDB)*0.025))
		if freq <= 0 {
			return scaleCoefficients(a * a)
		}
		w0 := 2 * math.Pi * float64(freq)
		ainn := (a + 1/a) * (1/q - 1) + 2
		if ainn < 0 {
			ainn = 0
		}
		alpha := 0.5 * float32(math.Sin(w0)) * float32(math.Sqrt(float64(ainn)))
		k := float32(math.Cos(w0))
		k2 := 2 * float32(math.Sqrt(float64(a))) * alpha
		ap1 := a + 1
		am1 := a - 1
		a0inv := 1 / (ap1 - am1*k + k2)
		return biquadCoefficients{
			b0: a0inv * a * (ap1 + am1*k + k2),
			b1: a0inv * -2 * a * (am1 + ap1*k),
			b2: a0inv * a * (ap1 + am1*k - k2),
			a1: a0inv * 2 * (am1 - ap1*k),
			a2: a0inv * (ap1 - am1*k - k2),
		}

	default:
		return passthroughCoefficients()
	}
}

// Biquad is a second-order IIR filter processed in Direct Form II
// Transposed, the low-state-count form used throughout the reference
// DSP corpus.
type Biquad struct {
	baseProcessor
	in, out *Buffer

	Type       BiquadType
	Frequency  float32
	Q          float32
	Gain       float32
	Samplerate int

	coeffs   biquadCoefficients
	xn1, xn2 float32
	yn1, yn2 float32
}

// NewBiquad creates a Biquad and computes its initial coefficients.
func NewBiquad(t BiquadType, samplerate int, frequency, q, gainDB float32) *Biquad {
	b := &Biquad{Type: t, Samplerate: samplerate, Frequency: frequency, Q: q, Gain: gainDB}
	b.recompute()
	return b
}

func (b *Biquad) recompute() {
	b.coeffs = deriveBiquad(b.Type, b.Samplerate, b.Frequency, b.Q, b.Gain)
}

// Reset clears the filter's internal state (but not its coefficients).
func (b *Biquad) Reset() {
	b.xn1, b.xn2, b.yn1, b.yn2 = 0, 0, 0, 0
}

func (b *Biquad) Start() error { b.start(); return nil }
func (b *Biquad) End() error   { b.end(); return nil }

func (b *Biquad) Mix(samples int) error {
	if b.bypass {
		return CopyBuffer(b.out, b.in, samples)
	}
	if b.in == nil || b.out == nil {
		return newErr("Mix", KindMixingFailed, "biquad requires wired in/out")
	}
	in := b.in.RequestRead(samples)
	out := b.out.RequestWrite(len(in))
	n := len(out)
	if len(in) < n {
		n = len(in)
	}

	c := b.coeffs
	xn1, xn2, yn1, yn2 := b.xn1, b.xn2, b.yn1, b.yn2
	for i := 0; i < n; i++ {
		xn0 := in[i]
		y := c.b0*xn0 + c.b1*xn1 + c.b2*xn2 - c.a1*yn1 - c.a2*yn2
		xn2, xn1 = xn1, xn0
		yn2, yn1 = yn1, y
		out[i] = y
	}
	b.xn1, b.xn2, b.yn1, b.yn2 = xn1, xn2, yn1, yn2

	b.in.FinishRead(n)
	b.out.FinishWrite(n)
	return nil
}

func (b *Biquad) SetIn(index int, buffer *Buffer) error  { b.in = buffer; return nil }
func (b *Biquad) SetOut(index int, buffer *Buffer) error { b.out = buffer; return nil }

func (b *Biquad) Get(field Field) (any, error) {
	switch field {
	case FieldBypass:
		return b.getBypass()
	case FieldFilterType:
		return b.Type, nil
	case FieldFrequency:
		return b.Frequency, nil
	case FieldQ:
		return b.Q, nil
	case FieldGain:
		return b.Gain, nil
	default:
		return nil, newErr("Get", KindInvalidField, "Biquad has no field %v", field)
	}
}

func (b *Biquad) Set(field Field, value any) error {
	switch field {
	case FieldBypass:
		return b.setBypass(value)
	case FieldFilterType:
		t, ok := value.(BiquadType)
		if !ok {
			return newErr("Set", KindInvalidValue, "FieldFilterType wants BiquadType")
		}
		b.Type = t
		b.recompute()
		return nil
	case FieldFrequency:
		f, ok := value.(float32)
		if !ok {
			return newErr("Set", KindInvalidValue, "FieldFrequency wants float32")
		}
		b.Frequency = f
		b.recompute()
		return nil
	case FieldQ:
		f, ok := value.(float32)
		if !ok {
			return newErr("Set", KindInvalidValue, "FieldQ wants float32")
		}
		b.Q = f
		b.recompute()
		return nil
	case FieldGain:
		f, ok := value.(float32)
		if !ok {
			return newErr("Set", KindInvalidValue, "FieldGain wants float32")
		}
		b.Gain = f
		b.recompute()
		return nil
	default:
		return newErr("Set", KindInvalidField, "Biquad has no field %v", field)
	}
}

func (b *Biquad) Info() Info {
	return Info{Name: "biquad", Description: "Second-order IIR filter (low/high/band/notch/peak/allpass/shelf)."}
}
