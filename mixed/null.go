package mixed

// NullProcessor copies its input straight to its output every tick,
// unconditionally. It exists mostly as test scaffolding and as the
// trivial case documentation examples wire up first.
type NullProcessor struct {
	baseProcessor
	in, out *Buffer
}

// NewNullProcessor creates a NullProcessor.
func NewNullProcessor() *NullProcessor { return &NullProcessor{} }

func (n *NullProcessor) Start() error { n.start(); return nil }
func (n *NullProcessor) End() error   { n.end(); return nil }

func (n *NullProcessor) Mix(samples int) error {
	if n.in == nil || n.out == nil {
		return newErr("Mix", KindMixingFailed, "null processor requires wired in/out")
	}
	return CopyBuffer(n.out, n.in, samples)
}

func (n *NullProcessor) SetIn(index int, buffer *Buffer) error {
	n.in = buffer
	return nil
}

func (n *NullProcessor) SetOut(index int, buffer *Buffer) error {
	n.out = buffer
	return nil
}

func (n *NullProcessor) Get(field Field) (any, error) {
	if field == FieldBypass {
		return n.getBypass()
	}
	return nil, newErr("Get", KindInvalidField, "NullProcessor has no field %v", field)
}

func (n *NullProcessor) Set(field Field, value any) error {
	if field == FieldBypass {
		return n.setBypass(value)
	}
	return newErr("Set", KindInvalidField, "NullProcessor has no field %v", field)
}

func (n *NullProcessor) Info() Info {
	return Info{Name: "null", Description: "Copies input to output unchanged."}
}
