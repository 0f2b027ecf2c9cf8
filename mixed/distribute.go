package mixed

// Distribute fans one input buffer out to many virtual output buffers
// without copying: each output shares the input's storage (see
// Buffer.bindVirtual) and advances at its own pace, and each Mix tick
// advances the shared input's read cursor only by the amount the
// slowest consumer has actually consumed, so no consumer ever loses
// data it hasn't read yet.
type Distribute struct {
	baseProcessor
	in       *Buffer
	out      []*Buffer
	wasAvail int
}

// NewDistribute creates an empty Distribute.
func NewDistribute() *Distribute { return &Distribute{} }

func (d *Distribute) Start() error {
	d.start()
	if d.in == nil {
		return newErr("Start", KindMixingFailed, "distribute requires a wired input")
	}
	read, write := d.in.cursors()
	for _, o := range d.out {
		o.setCursors(read, write)
	}
	// was_available starts at zero: the first Mix tick retires nothing
	// from the shared input until outputs have actually been drained at
	// least once, matching the reference distribute_start.
	d.wasAvail = 0
	return nil
}

func (d *Distribute) End() error { d.end(); return nil }

// Mix republishes cursor progress. samples is unused: distribute's pace
// is entirely buffer-state driven, not tick-size driven, matching the
// reference distribute_mix's signature. It computes the maximum number
// of samples any virtual output still has available to read (the
// laggiest consumer), and retires from the shared input only the
// difference between what was available before and what that consumer
// still needs.
func (d *Distribute) Mix(samples int) error {
	if d.in == nil {
		return newErr("Mix", KindMixingFailed, "distribute requires a wired input")
	}
	maxAvail := 0
	for _, o := range d.out {
		if a := o.Available(); a > maxAvail {
			maxAvail = a
		}
	}
	if advance := d.wasAvail - maxAvail; advance > 0 {
		d.in.Discard(advance)
	}

	read, write := d.in.cursors()
	for _, o := range d.out {
		o.setCursors(read, write)
	}
	d.wasAvail = d.in.Available()
	return nil
}

// SetIn wires the shared input buffer.
func (d *Distribute) SetIn(index int, buffer *Buffer) error {
	d.in = buffer
	return nil
}

// SetOut binds buffer as virtual output index, growing the output list
// as needed. buffer must not already be bound elsewhere.
func (d *Distribute) SetOut(index int, buffer *Buffer) error {
	if buffer.IsVirtual() {
		return newErr("SetOut", KindBufferAllocated, "buffer already virtual")
	}
	for len(d.out) <= index {
		d.out = append(d.out, nil)
	}
	if d.in != nil {
		buffer.bindVirtual(d.in)
	}
	d.out[index] = buffer
	return nil
}

func (d *Distribute) Get(field Field) (any, error) {
	switch field {
	case FieldBypass:
		return d.getBypass()
	case FieldSourceCount:
		return len(d.out), nil
	default:
		return nil, newErr("Get", KindInvalidField, "Distribute has no field %v", field)
	}
}

func (d *Distribute) Set(field Field, value any) error {
	if field == FieldBypass {
		return d.setBypass(value)
	}
	return newErr("Set", KindInvalidField, "Distribute has no field %v", field)
}

func (d *Distribute) Info() Info {
	return Info{
		Name:        "distribute",
		Description: "Fans one input out to many virtual, independently-paced outputs.",
	}
}
