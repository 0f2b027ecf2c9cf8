package mixed

import "math"

// Quantize reduces the signal to a fixed number of discrete amplitude
// steps, a bitcrusher-style effect.
type Quantize struct {
	baseProcessor
	in, out *Buffer

	Steps float32
}

// NewQuantize creates a Quantize processor with the given step count.
func NewQuantize(steps uint32) *Quantize {
	return &Quantize{Steps: float32(steps)}
}

func (q *Quantize) Start() error { q.start(); return nil }
func (q *Quantize) End() error   { q.end(); return nil }

func (q *Quantize) Mix(samples int) error {
	if q.bypass {
		return CopyBuffer(q.out, q.in, samples)
	}
	if q.in == nil || q.out == nil {
		return newErr("Mix", KindMixingFailed, "quantize requires wired in/out")
	}
	in := q.in.RequestRead(samples)
	out := q.out.RequestWrite(len(in))
	n := len(out)
	if len(in) < n {
		n = len(in)
	}
	steps := q.Steps
	for i := 0; i < n; i++ {
		out[i] = float32(math.Floor(float64(in[i]*steps))) / steps
	}
	q.in.FinishRead(n)
	q.out.FinishWrite(n)
	return nil
}

func (q *Quantize) SetIn(index int, buffer *Buffer) error {
	if index != 0 {
		return newErr("SetIn", KindInvalidLocation, "location %d", index)
	}
	q.in = buffer
	return nil
}

func (q *Quantize) SetOut(index int, buffer *Buffer) error {
	if index != 0 {
		return newErr("SetOut", KindInvalidLocation, "location %d", index)
	}
	q.out = buffer
	return nil
}

func (q *Quantize) Get(field Field) (any, error) {
	switch field {
	case FieldBypass:
		return q.getBypass()
	case FieldQuantizeSteps:
		return uint32(q.Steps), nil
	default:
		return nil, newErr("Get", KindInvalidField, "Quantize has no field %v", field)
	}
}

func (q *Quantize) Set(field Field, value any) error {
	switch field {
	case FieldBypass:
		return q.setBypass(value)
	case FieldQuantizeSteps:
		v, ok := value.(uint32)
		if !ok || v == 0 {
			return newErr("Set", KindInvalidValue, "FieldQuantizeSteps wants a positive uint32")
		}
		q.Steps = float32(v)
		return nil
	default:
		return newErr("Set", KindInvalidField, "Quantize has no field %v", field)
	}
}

func (q *Quantize) Info() Info {
	return Info{Name: "quantize", Description: "Quantize the signal to a specified number of intervals."}
}
