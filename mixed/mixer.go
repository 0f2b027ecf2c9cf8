package mixed

// mixerSource pairs one input buffer with its own volume, mirroring
// the original basic mixer's per-source gain.
type mixerSource struct {
	buffer *Buffer
	volume float32
}

// BasicMixer sums any number of input sources into a single output,
// each source scaled by its own volume. Mixing zeroes the output and
// then adds every wired source, scaled by its volume times the master
// volume.
type BasicMixer struct {
	baseProcessor
	sources []mixerSource
	out     *Buffer
	volume  float32
}

// NewBasicMixer creates a BasicMixer with unity master volume.
func NewBasicMixer() *BasicMixer {
	return &BasicMixer{volume: 1.0}
}

func (m *BasicMixer) Start() error { m.start(); return nil }
func (m *BasicMixer) End() error   { m.end(); return nil }

func (m *BasicMixer) Mix(samples int) error {
	if m.out == nil {
		return newErr("Mix", KindMixingFailed, "basic mixer requires a wired output")
	}
	out := m.out.RequestWrite(samples)
	n := len(out)
	if n == 0 {
		return nil
	}
	for i := range out {
		out[i] = 0
	}

	wiredAny := false
	for _, src := range m.sources {
		if src.buffer == nil {
			continue
		}
		in := src.buffer.RequestRead(n)
		gain := src.volume * m.volume
		for i := 0; i < len(in); i++ {
			out[i] += in[i] * gain
		}
		src.buffer.FinishRead(len(in))
		wiredAny = true
	}
	m.out.FinishWrite(n)
	if !wiredAny {
		return newErr("Mix", KindMixingFailed, "no sources wired")
	}
	return nil
}

func (m *BasicMixer) SetIn(index int, buffer *Buffer) error {
	for len(m.sources) <= index {
		m.sources = append(m.sources, mixerSource{volume: 1.0})
	}
	m.sources[index].buffer = buffer
	return nil
}

func (m *BasicMixer) SetOut(index int, buffer *Buffer) error {
	m.out = buffer
	return nil
}

func (m *BasicMixer) Get(field Field) (any, error) {
	switch field {
	case FieldBypass:
		return m.getBypass()
	case FieldVolume:
		return m.volume, nil
	case FieldSourceCount:
		return len(m.sources), nil
	default:
		return nil, newErr("Get", KindInvalidField, "BasicMixer has no field %v", field)
	}
}

func (m *BasicMixer) Set(field Field, value any) error {
	switch field {
	case FieldBypass:
		return m.setBypass(value)
	case FieldVolume:
		v, ok := value.(float32)
		if !ok {
			return newErr("Set", KindInvalidValue, "FieldVolume wants float32")
		}
		m.volume = v
		return nil
	default:
		return newErr("Set", KindInvalidField, "BasicMixer has no field %v", field)
	}
}

// SetSourceVolume sets the per-source gain for the source wired at
// index, independent of the master FieldVolume.
func (m *BasicMixer) SetSourceVolume(index int, volume float32) error {
	if index < 0 || index >= len(m.sources) {
		return newErr("SetSourceVolume", KindInvalidValue, "index %d out of range", index)
	}
	m.sources[index].volume = volume
	return nil
}

func (m *BasicMixer) Info() Info {
	return Info{
		Name:        "basic-mixer",
		Description: "Sums multiple input sources into one output.",
		Fields: []FieldDescriptor{
			{Field: FieldVolume, Name: "volume", Flags: FieldGettable | FieldSettable},
			{Field: FieldSourceCount, Name: "source-count", Flags: FieldGettable},
		},
	}
}
