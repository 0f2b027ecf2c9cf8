package mixed

// FadeType selects the easing curve Fade uses to interpolate between
// its from/to volume over its configured duration.
type FadeType int

const (
	FadeLinear FadeType = iota
	FadeCubicIn
	FadeCubicOut
	FadeCubicInOut
)

func fadeEase(t FadeType, x float32) float32 {
	switch t {
	case FadeCubicIn:
		return x * x * x
	case FadeCubicOut:
		x = x - 1.0
		return x*x*x + 1.0
	case FadeCubicInOut:
		if x < 0.5 {
			x = 2.0 * x
			return x * x * x / 2.0
		}
		x = 2.0 * (x - 1.0)
		return x*x*x/2.0 + 1.0
	default:
		return x
	}
}

// Fade ramps a buffer's volume from From to To over Time seconds using
// one of the FadeType easing curves, then holds at To. Time tracking is
// in seconds of audio processed (time_passed / samplerate), so pausing
// the pipeline pauses the fade too.
type Fade struct {
	baseProcessor
	in, out *Buffer

	From, To   float32
	Time       float32
	Type       FadeType
	Samplerate int

	timePassed float32
}

// NewFade creates a Fade with a one-second linear ramp from 0 to 1.
func NewFade(samplerate int) *Fade {
	return &Fade{To: 1.0, Time: 1.0, Samplerate: samplerate}
}

func (f *Fade) Start() error { f.start(); return nil }
func (f *Fade) End() error   { f.end(); return nil }

func (f *Fade) Mix(samples int) error {
	if f.in == nil || f.out == nil {
		return newErr("Mix", KindMixingFailed, "fade requires wired in/out")
	}
	in := f.in.RequestRead(samples)
	n := len(in)
	out := f.out.RequestWrite(n)
	if len(out) < n {
		n = len(out)
	}

	sampleTime := float32(1.0)
	if f.Samplerate > 0 {
		sampleTime = 1.0 / float32(f.Samplerate)
	}
	time := f.timePassed
	rng := f.To - f.From

	for i := 0; i < n; i++ {
		x := float32(1.0)
		if time < f.Time {
			x = time / f.Time
		}
		gain := f.From + fadeEase(f.Type, x)*rng
		out[i] = in[i] * gain
		time += sampleTime
	}
	f.timePassed = time

	f.in.FinishRead(n)
	f.out.FinishWrite(n)
	return nil
}

func (f *Fade) SetIn(index int, buffer *Buffer) error  { f.in = buffer; return nil }
func (f *Fade) SetOut(index int, buffer *Buffer) error { f.out = buffer; return nil }

func (f *Fade) Get(field Field) (any, error) {
	switch field {
	case FieldBypass:
		return f.getBypass()
	default:
		return nil, newErr("Get", KindInvalidField, "Fade has no field %v", field)
	}
}

func (f *Fade) Set(field Field, value any) error {
	if field == FieldBypass {
		return f.setBypass(value)
	}
	return newErr("Set", KindInvalidField, "Fade has no field %v", field)
}

func (f *Fade) Info() Info {
	return Info{Name: "fade", Description: "Fades the volume of a buffer between two levels over time."}
}
