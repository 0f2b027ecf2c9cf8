package mixed

import "math"

// Delay delays its input by a configured number of seconds, writing
// silence (then stale ring contents) until the delay line fills.
type Delay struct {
	baseProcessor
	in, out *Buffer

	line  []float32
	index int

	Time       float32
	Samplerate int
}

// NewDelay creates a Delay line sized for time seconds at samplerate.
func NewDelay(time float32, samplerate int) *Delay {
	d := &Delay{Time: time, Samplerate: samplerate}
	d.resize()
	return d
}

func (d *Delay) resize() {
	n := int(math.Ceil(float64(d.Time) * float64(d.Samplerate)))
	if n < 1 {
		n = 1
	}
	d.line = make([]float32, n)
	d.index = 0
}

func (d *Delay) Start() error {
	d.index = 0
	for i := range d.line {
		d.line[i] = 0
	}
	d.start()
	return nil
}
func (d *Delay) End() error { d.end(); return nil }

func (d *Delay) Mix(samples int) error {
	if d.bypass {
		return CopyBuffer(d.out, d.in, samples)
	}
	if d.in == nil || d.out == nil {
		return newErr("Mix", KindMixingFailed, "delay requires wired in/out")
	}
	in := d.in.RequestRead(samples)
	out := d.out.RequestWrite(len(in))
	n := len(out)
	if len(in) < n {
		n = len(in)
	}
	index := d.index
	line := d.line
	for i := 0; i < n; i++ {
		out[i] = line[index]
		line[index] = in[i]
		index = (index + 1) % len(line)
	}
	d.index = index
	d.in.FinishRead(n)
	d.out.FinishWrite(n)
	return nil
}

func (d *Delay) SetIn(index int, buffer *Buffer) error {
	if index != 0 {
		return newErr("SetIn", KindInvalidLocation, "location %d", index)
	}
	d.in = buffer
	return nil
}

func (d *Delay) SetOut(index int, buffer *Buffer) error {
	if index != 0 {
		return newErr("SetOut", KindInvalidLocation, "location %d", index)
	}
	d.out = buffer
	return nil
}

func (d *Delay) Get(field Field) (any, error) {
	switch field {
	case FieldBypass:
		return d.getBypass()
	case FieldDelaySeconds:
		return d.Time, nil
	case FieldSamplerate:
		return d.Samplerate, nil
	default:
		return nil, newErr("Get", KindInvalidField, "Delay has no field %v", field)
	}
}

func (d *Delay) Set(field Field, value any) error {
	switch field {
	case FieldBypass:
		return d.setBypass(value)
	case FieldDelaySeconds:
		t, ok := value.(float32)
		if !ok || t < 0 {
			return newErr("Set", KindInvalidValue, "FieldDelaySeconds wants a non-negative float32")
		}
		d.Time = t
		d.resize()
		return nil
	case FieldSamplerate:
		r, ok := value.(int)
		if !ok || r <= 0 {
			return newErr("Set", KindInvalidValue, "FieldSamplerate wants a positive int")
		}
		d.Samplerate = r
		d.resize()
		return nil
	default:
		return newErr("Set", KindInvalidField, "Delay has no field %v", field)
	}
}

func (d *Delay) Info() Info {
	return Info{Name: "delay", Description: "Delay the output by some time."}
}

// RepeatMode selects whether a Repeat processor is recording its delay
// line from the input or looping what it already holds.
type RepeatMode int

const (
	RepeatRecord RepeatMode = iota
	RepeatPlay
)

// Repeat records a window of input and then (once switched to
// RepeatPlay) loops it back indefinitely, independent of further input.
type Repeat struct {
	baseProcessor
	in, out *Buffer

	line  []float32
	index int

	Time       float32
	Samplerate int
	Mode       RepeatMode
}

// NewRepeat creates a Repeat buffer sized for time seconds at samplerate,
// starting in RepeatRecord mode.
func NewRepeat(time float32, samplerate int) *Repeat {
	r := &Repeat{Time: time, Samplerate: samplerate, Mode: RepeatRecord}
	r.resize()
	return r
}

func (r *Repeat) resize() {
	n := int(math.Ceil(float64(r.Time) * float64(r.Samplerate)))
	if n < 1 {
		n = 1
	}
	r.line = make([]float32, n)
	r.index = 0
}

func (r *Repeat) Start() error {
	r.index = 0
	for i := range r.line {
		r.line[i] = 0
	}
	r.start()
	return nil
}
func (r *Repeat) End() error { r.end(); return nil }

func (r *Repeat) Mix(samples int) error {
	if r.bypass {
		return CopyBuffer(r.out, r.in, samples)
	}
	if r.out == nil {
		return newErr("Mix", KindMixingFailed, "repeat requires a wired output")
	}
	out := r.out.RequestWrite(samples)
	index := r.index
	line := r.line

	switch r.Mode {
	case RepeatPlay:
		for i := range out {
			out[i] = line[index]
			index = (index + 1) % len(line)
		}
	default:
		if r.in == nil {
			return newErr("Mix", KindMixingFailed, "repeat requires a wired input while recording")
		}
		in := r.in.RequestRead(len(out))
		n := len(in)
		if n < len(out) {
			out = out[:n]
		}
		for i := 0; i < n; i++ {
			line[index] = in[i]
			out[i] = line[index]
			index = (index + 1) % len(line)
		}
		r.in.FinishRead(n)
	}
	r.index = index
	r.out.FinishWrite(len(out))
	return nil
}

func (r *Repeat) SetIn(index int, buffer *Buffer) error {
	if index != 0 {
		return newErr("SetIn", KindInvalidLocation, "location %d", index)
	}
	r.in = buffer
	return nil
}

func (r *Repeat) SetOut(index int, buffer *Buffer) error {
	if index != 0 {
		return newErr("SetOut", KindInvalidLocation, "location %d", index)
	}
	r.out = buffer
	return nil
}

func (r *Repeat) Get(field Field) (any, error) {
	switch field {
	case FieldBypass:
		return r.getBypass()
	case FieldDelaySeconds:
		return r.Time, nil
	case FieldRepeatMode:
		return r.Mode, nil
	case FieldSamplerate:
		return r.Samplerate, nil
	default:
		return nil, newErr("Get", KindInvalidField, "Repeat has no field %v", field)
	}
}

func (r *Repeat) Set(field Field, value any) error {
	switch field {
	case FieldBypass:
		return r.setBypass(value)
	case FieldDelaySeconds:
		t, ok := value.(float32)
		if !ok || t < 0 {
			return newErr("Set", KindInvalidValue, "FieldDelaySeconds wants a non-negative float32")
		}
		r.Time = t
		r.resize()
		return nil
	case FieldRepeatMode:
		m, ok := value.(RepeatMode)
		if !ok {
			return newErr("Set", KindInvalidValue, "FieldRepeatMode wants RepeatMode")
		}
		r.Mode = m
		return nil
	case FieldSamplerate:
		rate, ok := value.(int)
		if !ok || rate <= 0 {
			return newErr("Set", KindInvalidValue, "FieldSamplerate wants a positive int")
		}
		r.Samplerate = rate
		r.resize()
		return nil
	default:
		return newErr("Set", KindInvalidField, "Repeat has no field %v", field)
	}
}

func (r *Repeat) Info() Info {
	return Info{Name: "repeat", Description: "Record some input and then repeatedly play it back."}
}
