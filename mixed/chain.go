package mixed

// Chain is a Sequence that is itself a Processor: SetIn wires the first
// member's input, SetOut wires the last member's output, and Mix either
// runs every member in order or, when bypassed, copies the first
// member's input straight to the last member's output, skipping every
// member in between.
type Chain struct {
	baseProcessor
	seq Sequence

	in, out *Buffer
}

// NewChain creates an empty Chain.
func NewChain() *Chain { return &Chain{} }

// Add appends processor to the chain.
func (c *Chain) Add(p Processor) { c.seq.Add(p) }

// AddAt inserts processor at position index.
func (c *Chain) AddAt(index int, p Processor) error { return c.seq.AddAt(index, p) }

// Remove deletes processor from the chain.
func (c *Chain) Remove(p Processor) { c.seq.Remove(p) }

// Len returns the number of members.
func (c *Chain) Len() int { return c.seq.Len() }

func (c *Chain) Start() error {
	c.baseProcessor.start()
	return c.seq.Start()
}

func (c *Chain) End() error {
	c.baseProcessor.end()
	return c.seq.End()
}

func (c *Chain) Mix(samples int) error {
	if c.bypass {
		return c.mixBypass(samples)
	}
	return c.seq.Mix(samples)
}

// mixBypass copies the chain's input straight to its output with
// CopyBuffer, skipping every member.
func (c *Chain) mixBypass(samples int) error {
	if c.in == nil || c.out == nil {
		return newErr("Mix", KindMixingFailed, "chain bypass requires wired in/out")
	}
	return CopyBuffer(c.out, c.in, samples)
}

func (c *Chain) SetIn(index int, buffer *Buffer) error {
	if c.seq.Len() == 0 {
		return newErr("SetIn", KindMixingFailed, "chain has no members")
	}
	c.in = buffer
	return c.seq.At(0).SetIn(index, buffer)
}

func (c *Chain) SetOut(index int, buffer *Buffer) error {
	if c.seq.Len() == 0 {
		return newErr("SetOut", KindMixingFailed, "chain has no members")
	}
	c.out = buffer
	return c.seq.At(c.seq.Len() - 1).SetOut(index, buffer)
}

func (c *Chain) Get(field Field) (any, error) {
	if field == FieldBypass {
		return c.getBypass()
	}
	if field == FieldSourceCount {
		return c.seq.Len(), nil
	}
	return nil, newErr("Get", KindInvalidField, "Chain has no field %v", field)
}

func (c *Chain) Set(field Field, value any) error {
	if field == FieldBypass {
		return c.setBypass(value)
	}
	return newErr("Set", KindInvalidField, "Chain has no field %v", field)
}

func (c *Chain) Info() Info {
	return Info{
		Name:        "chain",
		Description: "Runs an ordered list of processors as a single processor.",
		Fields: []FieldDescriptor{
			{Field: FieldBypass, Name: "bypass", Flags: FieldGettable | FieldSettable},
			{Field: FieldSourceCount, Name: "source-count", Flags: FieldGettable},
		},
	}
}
