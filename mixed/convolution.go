package mixed

import "gonum.org/v1/gonum/dsp/fourier"

// Convolution applies a (potentially long) finite impulse response to
// the signal using partitioned-block frequency-domain convolution:
// the impulse response is split into framesize-sized blocks, each
// pre-transformed to the frequency domain; every STFT analysis frame
// is multiplied against all IR blocks via a circular delay line and
// accumulated, giving block-convolution's effect without needing a
// single huge FFT per tick.
type Convolution struct {
	baseProcessor
	in, out *Buffer

	Samplerate int
	Mix        float32

	window     *fftWindow
	fir        [][]complex128 // one FFT'd block per IR segment
	history    [][]complex128 // circular delay line of analysis-frame FFTs
	historyIdx int
}

// NewConvolution builds a Convolution processor from a (non-FFT'd)
// impulse response, partitioned into framesize-sized blocks.
func NewConvolution(impulseResponse []float32, samplerate int) *Convolution {
	const framesize = 2048
	c := &Convolution{Samplerate: samplerate, Mix: 1.0}
	c.window = newFFTWindow(framesize, 4, samplerate)
	c.setImpulseResponse(impulseResponse, framesize)
	return c
}

func (c *Convolution) setImpulseResponse(ir []float32, framesize int) {
	fft := fourier.NewCmplxFFT(framesize)
	blockCount := (len(ir) + framesize - 1) / framesize
	if blockCount < 1 {
		blockCount = 1
	}
	c.fir = make([][]complex128, blockCount)
	c.history = make([][]complex128, blockCount)
	for b := 0; b < blockCount; b++ {
		block := make([]complex128, framesize)
		for k := 0; k < framesize; k++ {
			idx := b*framesize + k
			if idx < len(ir) {
				block[k] = complex(float64(ir[idx]), 0)
			}
		}
		fft.Coefficients(block, block)
		c.fir[b] = block
		c.history[b] = make([]complex128, framesize)
	}
	c.historyIdx = 0
}

func (c *Convolution) Start() error {
	for _, h := range c.history {
		for i := range h {
			h[i] = 0
		}
	}
	c.historyIdx = 0
	c.start()
	return nil
}
func (c *Convolution) End() error { c.end(); return nil }

func (c *Convolution) convolveFrame(w *fftWindow) {
	blockCount := len(c.fir)
	framesize := w.framesize

	copy(c.history[c.historyIdx], w.workspace)
	c.historyIdx = (c.historyIdx + 1) % blockCount

	for k := range w.workspace {
		w.workspace[k] = 0
	}
	for i := 0; i < blockCount; i++ {
		bufIdx := (c.historyIdx + blockCount - i) % blockCount
		hist := c.history[bufIdx]
		fir := c.fir[i]
		for k := 0; k < framesize; k++ {
			w.workspace[k] += hist[k] * fir[k]
		}
	}
}

func (c *Convolution) Mix(samples int) error {
	if c.bypass {
		return CopyBuffer(c.out, c.in, samples)
	}
	if c.in == nil || c.out == nil {
		return newErr("Mix", KindMixingFailed, "convolution requires wired in/out")
	}
	in := c.in.RequestRead(samples)
	out := c.out.RequestWrite(len(in))
	n := len(out)
	if len(in) < n {
		n = len(in)
	}
	in = in[:n]
	out = out[:n]

	c.window.process(in, out, c.convolveFrame)
	mix := c.Mix
	for i := range out {
		out[i] = lerp(in[i], out[i], mix)
	}

	c.in.FinishRead(n)
	c.out.FinishWrite(n)
	return nil
}

func (c *Convolution) SetIn(index int, buffer *Buffer) error {
	if index != 0 {
		return newErr("SetIn", KindInvalidLocation, "location %d", index)
	}
	c.in = buffer
	return nil
}

func (c *Convolution) SetOut(index int, buffer *Buffer) error {
	if index != 0 {
		return newErr("SetOut", KindInvalidLocation, "location %d", index)
	}
	c.out = buffer
	return nil
}

func (c *Convolution) Get(field Field) (any, error) {
	switch field {
	case FieldBypass:
		return c.getBypass()
	case FieldWet:
		return c.Mix, nil
	case FieldImpulseResponse:
		return c.fir, nil
	case FieldSamplerate:
		return c.Samplerate, nil
	default:
		return nil, newErr("Get", KindInvalidField, "Convolution has no field %v", field)
	}
}

func (c *Convolution) Set(field Field, value any) error {
	switch field {
	case FieldBypass:
		return c.setBypass(value)
	case FieldWet:
		v, ok := value.(float32)
		if !ok || v < 0 || v > 1 {
			return newErr("Set", KindInvalidValue, "FieldWet wants a float32 in [0,1]")
		}
		c.Mix = v
		c.bypass = v == 0
		return nil
	case FieldImpulseResponse:
		v, ok := value.([]float32)
		if !ok {
			return newErr("Set", KindInvalidValue, "FieldImpulseResponse wants []float32")
		}
		c.setImpulseResponse(v, c.window.framesize)
		return nil
	case FieldSamplerate:
		v, ok := value.(int)
		if !ok || v <= 0 {
			return newErr("Set", KindInvalidValue, "FieldSamplerate wants a positive int")
		}
		c.Samplerate = v
		framesize := c.window.framesize
		c.window = newFFTWindow(framesize, 4, v)
		return nil
	default:
		return newErr("Set", KindInvalidField, "Convolution has no field %v", field)
	}
}

func (c *Convolution) Info() Info {
	return Info{Name: "convolution", Description: "Convolve the audio signal with a finite impulse response."}
}
