package mixed

import (
	"math"

	"gonum.org/v1/gonum/dsp/fourier"
)

// fftWindowProcess operates on one analysis frame in the frequency
// domain. workspace is framesize complex bins (DC..Nyquist..mirror);
// implementations typically only touch the first framesize/2+1 bins
// and then fftWindow mirrors the windowing/overlap-add bookkeeping.
type fftWindowProcess func(w *fftWindow)

// fftWindow is a Hann-windowed overlap-add STFT engine: callers feed
// samples through Process, which accumulates input into an analysis
// frame, forward-FFTs it, invokes the processing callback on the
// frequency-domain workspace, inverse-FFTs, and overlap-adds into the
// output stream. This is the shared machinery behind the equalizer,
// convolution, and pitch shifter.
type fftWindow struct {
	framesize    int
	oversampling int
	samplerate   int
	step         int
	fifoLatency  int
	overlap      int

	inFifo      []float32
	outFifo     []float32
	workspace   []complex128
	accumulator []float64
	lastPhase   []float64
	phaseSum    []float64

	fft *fourier.CmplxFFT
}

// newFFTWindow creates an STFT engine with the given frame size (must
// be a power of two for efficient FFT), oversampling factor (hop =
// framesize/oversampling), and samplerate (used by phase-vocoder
// processors for bin-frequency bookkeeping).
func newFFTWindow(framesize, oversampling, samplerate int) *fftWindow {
	step := framesize / oversampling
	w := &fftWindow{
		framesize:    framesize,
		oversampling: oversampling,
		samplerate:   samplerate,
		step:         step,
		fifoLatency:  framesize - step,
		inFifo:       make([]float32, framesize),
		outFifo:      make([]float32, framesize),
		workspace:    make([]complex128, framesize),
		accumulator:  make([]float64, framesize*2),
		lastPhase:    make([]float64, framesize/2+1),
		phaseSum:     make([]float64, framesize/2+1),
		fft:          fourier.NewCmplxFFT(framesize),
	}
	w.overlap = w.fifoLatency
	return w
}

func hannWindow(k, framesize int) float64 {
	return -0.5*math.Cos(2*math.Pi*float64(k)/float64(framesize)) + 0.5
}

// process runs in, out through one STFT analysis/resynthesis cycle,
// invoking fn on every completed analysis frame.
func (w *fftWindow) process(in, out []float32, fn fftWindowProcess) {
	framesize2 := w.framesize / 2

	for i := range in {
		w.inFifo[w.overlap] = in[i]
		out[i] = w.outFifo[w.overlap-w.fifoLatency]
		w.overlap++

		if w.overlap >= w.framesize {
			w.overlap = w.fifoLatency

			for k := 0; k < w.framesize; k++ {
				win := hannWindow(k, w.framesize)
				w.workspace[k] = complex(float64(w.inFifo[k])*win, 0)
			}

			w.fft.Coefficients(w.workspace, w.workspace)
			fn(w)
			// gonum's Sequence is unnormalized, like the reference
			// algorithm's raw inverse FFT; the 2/(framesize/2*oversampling)
			// factor below supplies the scaling.
			w.fft.Sequence(w.workspace, w.workspace)

			for k := 0; k < w.framesize; k++ {
				win := hannWindow(k, w.framesize)
				re := real(w.workspace[k])
				w.accumulator[k] += 2 * win * re / float64(framesize2*w.oversampling)
			}
			for k := 0; k < w.step; k++ {
				w.outFifo[k] = float32(w.accumulator[k])
			}
			copy(w.accumulator, w.accumulator[w.step:w.step+w.framesize])
			for k := w.framesize; k < len(w.accumulator); k++ {
				w.accumulator[k] = 0
			}

			copy(w.inFifo[:w.fifoLatency], w.inFifo[w.step:w.step+w.fifoLatency])
		}
	}
}
