package mixed

// Speed changes the playback rate of its input without attempting to
// preserve pitch, by resampling at a ratio of 1/Factor (Factor > 1
// plays faster/higher, Factor < 1 plays slower/lower).
type Speed struct {
	baseProcessor
	in, out *Buffer

	Factor float32
	Method ResampleMethod
}

// NewSpeed creates a Speed processor at unity speed using cubic
// interpolation, the highest-quality ResampleMethod this package
// provides; no sinc-based kernel is implemented.
func NewSpeed() *Speed {
	return &Speed{Factor: 1.0, Method: ResampleCubic}
}

func (s *Speed) Start() error { s.start(); return nil }
func (s *Speed) End() error   { s.end(); return nil }

func (s *Speed) Mix(samples int) error {
	if s.bypass {
		return CopyBuffer(s.out, s.in, samples)
	}
	if s.in == nil || s.out == nil {
		return newErr("Mix", KindMixingFailed, "speed requires wired in/out")
	}
	if s.Factor <= 0 {
		return newErr("Mix", KindInvalidValue, "speed factor must be positive")
	}

	// Request an input window proportional to Factor so that a
	// requested `samples` output frames roughly consumes samples*Factor
	// input frames, mirroring the reference's streaming SRC_DATA ratio.
	want := int(float32(samples) * s.Factor)
	if want < 1 {
		want = 1
	}
	in := s.in.RequestRead(want)
	out := s.out.RequestWrite(samples)
	if len(in) == 0 || len(out) == 0 {
		s.in.FinishRead(0)
		s.out.FinishWrite(0)
		return nil
	}

	Resample(s.Method, in, int(s.Factor*1000), out, 1000)

	s.in.FinishRead(len(in))
	s.out.FinishWrite(len(out))
	return nil
}

func (s *Speed) SetIn(index int, buffer *Buffer) error {
	if index != 0 {
		return newErr("SetIn", KindInvalidLocation, "location %d", index)
	}
	s.in = buffer
	return nil
}

func (s *Speed) SetOut(index int, buffer *Buffer) error {
	if index != 0 {
		return newErr("SetOut", KindInvalidLocation, "location %d", index)
	}
	s.out = buffer
	return nil
}

func (s *Speed) Get(field Field) (any, error) {
	switch field {
	case FieldBypass:
		return s.getBypass()
	case FieldSpeedFactor:
		return s.Factor, nil
	default:
		return nil, newErr("Get", KindInvalidField, "Speed has no field %v", field)
	}
}

func (s *Speed) Set(field Field, value any) error {
	switch field {
	case FieldBypass:
		return s.setBypass(value)
	case FieldSpeedFactor:
		v, ok := value.(float32)
		if !ok || v <= 0.003 || v > 256.0 {
			return newErr("Set", KindInvalidValue, "FieldSpeedFactor wants a float32 in (0.003, 256]")
		}
		s.Factor = v
		return nil
	default:
		return newErr("Set", KindInvalidField, "Speed has no field %v", field)
	}
}

func (s *Speed) Info() Info {
	return Info{Name: "speed", Description: "Change the speed of the audio."}
}
