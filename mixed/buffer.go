package mixed

// Buffer is a ring of 32-bit floats, the internal currency between
// processors in a pipeline: every processor's Mix step reads from input
// Buffers and writes to output Buffers, regardless of what Encoding the
// Pack at the edge of the pipeline uses.
//
// A Buffer can be "virtual": its storage is borrowed from another
// Buffer rather than separately allocated, the mechanism Distribute
// uses to hand the same underlying samples to several consumers
// without copying. See distribute.go.
type Buffer struct {
	ring      *ring[float32]
	isVirtual bool
}

// NewBuffer allocates a Buffer able to hold frameCapacity float
// samples.
func NewBuffer(frameCapacity int) *Buffer {
	return &Buffer{ring: newRing[float32](frameCapacity)}
}

// IsVirtual reports whether this Buffer's storage is borrowed from
// another Buffer (see Distribute.SetOut).
func (b *Buffer) IsVirtual() bool { return b.isVirtual }

// Available returns the number of readable float samples.
func (b *Buffer) Available() int { return b.ring.availableRead() }

// AvailableWrite returns the number of writable float samples.
func (b *Buffer) AvailableWrite() int { return b.ring.availableWrite() }

// RequestWrite returns a []float32 view of up to n writable samples.
// The caller fills the slice and calls FinishWrite with however many
// samples it actually produced.
func (b *Buffer) RequestWrite(n int) []float32 { return b.ring.requestWrite(n) }

// FinishWrite commits n samples (from the most recent RequestWrite) as
// readable.
func (b *Buffer) FinishWrite(n int) { b.ring.finishWrite(n) }

// RequestRead returns a []float32 view of up to n readable samples.
func (b *Buffer) RequestRead(n int) []float32 { return b.ring.requestRead(n) }

// FinishRead commits n samples (from the most recent RequestRead) as
// consumed.
func (b *Buffer) FinishRead(n int) { b.ring.finishRead(n) }

// Discard drops up to n unread samples, returning how many were
// actually discarded.
func (b *Buffer) Discard(n int) int { return b.ring.discard(n) }

// cursors exposes the raw ring cursor values so Distribute can stamp
// them onto virtual output buffers that share this buffer's storage.
func (b *Buffer) cursors() (read, write uint32) { return b.ring.cursors() }

func (b *Buffer) setCursors(read, write uint32) { b.ring.setCursors(read, write) }

// bindVirtual makes b a view over source's backing storage with its own
// independent cursors (initialized to source's current cursors), the
// mechanism Distribute uses to hand several consumers a view of the
// same samples without copying: each consumer advances its own read
// cursor at its own pace, and Distribute periodically republishes
// cursors into every virtual output (see distribute.go).
func (b *Buffer) bindVirtual(source *Buffer) {
	b.ring = cloneView(source.ring)
	b.isVirtual = true
}
