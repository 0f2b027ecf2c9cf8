package mixed

// Sequence is an ordered list of processors run one after another each
// tick, the plain "pipeline" container. Unlike Chain, a Sequence is not
// itself a Processor: it has no single input/output pair to wire into
// a larger graph, just a Mix-all-members operation. Use Chain when the
// ordered list itself needs to behave as one processor.
type Sequence struct {
	members []Processor
}

// NewSequence creates an empty Sequence.
func NewSequence() *Sequence { return &Sequence{} }

// Add appends processor to the end of the sequence.
func (s *Sequence) Add(p Processor) { s.members = append(s.members, p) }

// AddAt inserts processor at position index, shifting later members
// back.
func (s *Sequence) AddAt(index int, p Processor) error {
	if index < 0 || index > len(s.members) {
		return newErr("AddAt", KindInvalidValue, "index %d out of range", index)
	}
	s.members = append(s.members, nil)
	copy(s.members[index+1:], s.members[index:])
	s.members[index] = p
	return nil
}

// Remove deletes the first occurrence of processor from the sequence.
func (s *Sequence) Remove(p Processor) {
	for i, m := range s.members {
		if m == p {
			s.removeAt(i)
			return
		}
	}
}

// RemoveAt deletes the member at position index.
func (s *Sequence) RemoveAt(index int) error {
	if index < 0 || index >= len(s.members) {
		return newErr("RemoveAt", KindInvalidValue, "index %d out of range", index)
	}
	s.removeAt(index)
	return nil
}

func (s *Sequence) removeAt(index int) {
	s.members = append(s.members[:index], s.members[index+1:]...)
}

// Len returns the number of members in the sequence.
func (s *Sequence) Len() int { return len(s.members) }

// At returns the member at position index.
func (s *Sequence) At(index int) Processor { return s.members[index] }

// Start starts every member, in order.
func (s *Sequence) Start() error {
	for _, m := range s.members {
		if err := m.Start(); err != nil {
			return err
		}
	}
	return nil
}

// Mix runs one tick on every member, in order: each member's output
// buffer is expected to already be wired as the next member's input by
// the caller (Sequence does no implicit wiring).
func (s *Sequence) Mix(samples int) error {
	for _, m := range s.members {
		if err := m.Mix(samples); err != nil {
			return err
		}
	}
	return nil
}

// End ends every member, in order.
func (s *Sequence) End() error {
	for _, m := range s.members {
		if err := m.End(); err != nil {
			return err
		}
	}
	return nil
}
