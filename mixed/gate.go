package mixed

import "math"

func dbToLinear(db float32) float32 {
	return float32(math.Pow(10, float64(db)/20.0))
}

func linearToDB(linear float32) float32 {
	return float32(math.Log10(float64(linear))) * 20
}

type gateState int

const (
	gateClosed gateState = iota
	gateAttacking
	gateOpen
	gateHolding
	gateReleasing
)

// Gate is a noise gate: it mutes the signal until it crosses
// OpenThreshold, then attacks to full volume, holds through brief dips,
// and releases back to silence once it drops below CloseThreshold for
// long enough.
type Gate struct {
	baseProcessor
	in, out *Buffer

	OpenThreshold  float32
	CloseThreshold float32
	Attack         float32
	Hold           float32
	Release        float32
	Samplerate     int

	state gateState
	time  float32
}

// NewGate creates a Gate with the reference library's default envelope
// (-24dB open, -32dB close, 25ms attack, 200ms hold, 150ms release).
func NewGate(samplerate int) *Gate {
	return &Gate{
		Samplerate:     samplerate,
		OpenThreshold:  dbToLinear(-24.0),
		CloseThreshold: dbToLinear(-32.0),
		Attack:         0.025,
		Hold:           0.2,
		Release:        0.15,
		state:          gateClosed,
	}
}

func (g *Gate) Start() error {
	g.time = 0
	g.start()
	return nil
}
func (g *Gate) End() error { g.end(); return nil }

func (g *Gate) Mix(samples int) error {
	if g.bypass {
		return CopyBuffer(g.out, g.in, samples)
	}
	if g.in == nil || g.out == nil || g.Samplerate <= 0 {
		return newErr("Mix", KindMixingFailed, "gate requires wired in/out and a samplerate")
	}
	in := g.in.RequestRead(samples)
	out := g.out.RequestWrite(len(in))
	n := len(out)
	if len(in) < n {
		n = len(in)
	}

	stime := 1.0 / float32(g.Samplerate)
	time := g.time
	state := g.state
	open, closeT := g.OpenThreshold, g.CloseThreshold
	attack, hold, release := g.Attack, g.Hold, g.Release

	for i := 0; i < n; i++ {
		sample := in[i]
		volume := float32(1.0)
		switch state {
		case gateClosed:
			volume = 0.0
			if open <= sample {
				time = 0.0
				state = gateAttacking
			}
		case gateAttacking:
			if attack < time {
				state = gateOpen
				volume = 1.0
			} else {
				volume = time / attack
				time += stime
			}
		case gateOpen:
			if sample < closeT {
				time = hold
				state = gateHolding
			}
		case gateHolding:
			if open <= sample {
				state = gateOpen
			} else if time <= 0 {
				time = release
				state = gateReleasing
			} else {
				time -= stime
			}
		case gateReleasing:
			if open <= sample {
				volume = time / release
				time = time / release * attack
				state = gateAttacking
			} else if time <= 0 {
				volume = 0.0
				time = 0.0
				state = gateClosed
			} else {
				volume = time / release
				time -= stime
			}
		}
		out[i] = sample * volume
	}
	g.time = time
	g.state = state

	g.in.FinishRead(n)
	g.out.FinishWrite(n)
	return nil
}

func (g *Gate) SetIn(index int, buffer *Buffer) error {
	if index != 0 {
		return newErr("SetIn", KindInvalidLocation, "location %d", index)
	}
	g.in = buffer
	return nil
}

func (g *Gate) SetOut(index int, buffer *Buffer) error {
	if index != 0 {
		return newErr("SetOut", KindInvalidLocation, "location %d", index)
	}
	g.out = buffer
	return nil
}

func (g *Gate) Get(field Field) (any, error) {
	switch field {
	case FieldBypass:
		return g.getBypass()
	case FieldOpenThreshold:
		return linearToDB(g.OpenThreshold), nil
	case FieldCloseThreshold:
		return linearToDB(g.CloseThreshold), nil
	case FieldAttack:
		return g.Attack, nil
	case FieldHold:
		return g.Hold, nil
	case FieldRelease:
		return g.Release, nil
	case FieldSamplerate:
		return g.Samplerate, nil
	default:
		return nil, newErr("Get", KindInvalidField, "Gate has no field %v", field)
	}
}

func (g *Gate) Set(field Field, value any) error {
	switch field {
	case FieldBypass:
		return g.setBypass(value)
	case FieldOpenThreshold:
		v, ok := value.(float32)
		if !ok {
			return newErr("Set", KindInvalidValue, "FieldOpenThreshold wants float32 dB")
		}
		g.OpenThreshold = dbToLinear(v)
		return nil
	case FieldCloseThreshold:
		v, ok := value.(float32)
		if !ok {
			return newErr("Set", KindInvalidValue, "FieldCloseThreshold wants float32 dB")
		}
		g.CloseThreshold = dbToLinear(v)
		return nil
	case FieldAttack:
		v, ok := value.(float32)
		if !ok || v < 0 {
			return newErr("Set", KindInvalidValue, "FieldAttack wants a non-negative float32")
		}
		g.Attack = v
		return nil
	case FieldHold:
		v, ok := value.(float32)
		if !ok || v < 0 {
			return newErr("Set", KindInvalidValue, "FieldHold wants a non-negative float32")
		}
		g.Hold = v
		return nil
	case FieldRelease:
		v, ok := value.(float32)
		if !ok || v < 0 {
			return newErr("Set", KindInvalidValue, "FieldRelease wants a non-negative float32")
		}
		g.Release = v
		return nil
	case FieldSamplerate:
		v, ok := value.(int)
		if !ok || v <= 0 {
			return newErr("Set", KindInvalidValue, "FieldSamplerate wants a positive int")
		}
		g.Samplerate = v
		return nil
	default:
		return newErr("Set", KindInvalidField, "Gate has no field %v", field)
	}
}

func (g *Gate) Info() Info {
	return Info{Name: "gate", Description: "A noise gate segment to filter out low-volume passages."}
}
