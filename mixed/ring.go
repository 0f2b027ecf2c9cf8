package mixed

import (
	"sync/atomic"

	"golang.org/x/sys/cpu"
)

// wrapBit marks the write cursor's top bit to record that the writer
// has wrapped around and a second contiguous region is active at the
// front of the backing array. This mirrors the packed READ/WRITE cursor
// layout of the original bip-buffer: a single atomic word carries both
// the offset and the wrap flag so readers and writers can publish state
// with one atomic store.
const wrapBit = uint32(1) << 31
const offsetMask = wrapBit - 1

// ring is a lock-free single-producer/single-consumer element ring
// (a "bip buffer"): one writer, one reader, sequentially consistent
// atomic cursors, no allocation and no blocking on the hot path. A
// region request that cannot currently be satisfied returns a
// zero-length slice rather than blocking; callers poll. The element
// type T is byte for Pack's wire-encoded rings and float32 for Buffer's
// internal sample rings.
type ring[T any] struct {
	data []T

	// readCursor and writeCursor are padded to their own cache lines so
	// the producer and consumer don't false-share.
	_           cpu.CacheLinePad
	readCursor  atomic.Uint32
	_           cpu.CacheLinePad
	writeCursor atomic.Uint32
	_           cpu.CacheLinePad
}

// newRing allocates a ring with the given element capacity.
func newRing[T any](capacity int) *ring[T] {
	return &ring[T]{data: make([]T, capacity)}
}

// cloneView returns a ring sharing src's backing storage but with its
// own independent cursors, initialized to src's current cursor values.
// This is the mechanism Buffer.bindVirtual uses to hand a consumer its
// own read pace over shared storage.
func cloneView[T any](src *ring[T]) *ring[T] {
	read, write := src.cursors()
	v := &ring[T]{data: src.data}
	v.readCursor.Store(read)
	v.writeCursor.Store(write)
	return v
}

func (r *ring[T]) capacity() int { return len(r.data) }

func (r *ring[T]) cursors() (read, write uint32) {
	return r.readCursor.Load(), r.writeCursor.Load()
}

func (r *ring[T]) setCursors(read, write uint32) {
	r.readCursor.Store(read)
	r.writeCursor.Store(write)
}

// state reads (read, write, secondRegionActive) from the two cursors in
// one pass, unpacking the write cursor's wrap bit.
func (r *ring[T]) state() (read, write uint32, secondRegion bool) {
	read = r.readCursor.Load()
	rawWrite := r.writeCursor.Load()
	secondRegion = rawWrite&wrapBit != 0
	write = rawWrite & offsetMask
	return
}

// availableRead returns the number of elements currently readable.
func (r *ring[T]) availableRead() int {
	read, write, secondRegion := r.state()
	if secondRegion {
		return int(uint32(len(r.data)) - read + write)
	}
	if write >= read {
		return int(write - read)
	}
	return 0
}

// availableWrite returns the number of elements currently writable.
func (r *ring[T]) availableWrite() int {
	return len(r.data) - r.availableRead()
}

// requestWrite returns a contiguous slice of up to n writable elements
// starting at the current write cursor. It may return fewer than n
// elements (or zero) if the ring doesn't currently have n contiguous
// elements available; the caller should write into the front of the
// slice and call finishWrite with however many it actually produced.
func (r *ring[T]) requestWrite(n int) []T {
	read, write, secondRegion := r.state()
	cap := uint32(len(r.data))

	var limit uint32
	if secondRegion {
		// Second region is active: writable space is bounded by the
		// read cursor, since wrapping again would overtake the reader.
		limit = read - write
	} else {
		// write never persists equal to cap: finishWrite always folds
		// a write that reaches the end into a wrap (write=0,
		// secondRegion=true), so cap-write here is always > 0.
		limit = cap - write
	}

	avail := int(limit)
	if avail > n {
		avail = n
	}
	if avail <= 0 {
		return nil
	}
	return r.data[write : write+uint32(avail)]
}

// finishWrite commits n elements (n <= the length returned by the most
// recent requestWrite) as now readable, advancing the write cursor and
// setting the wrap flag if the write reached the end of the backing
// array.
func (r *ring[T]) finishWrite(n int) {
	if n == 0 {
		return
	}
	_, write, secondRegion := r.state()
	cap := uint32(len(r.data))
	newWrite := write + uint32(n)

	if newWrite == cap {
		// Wrapping exactly to the end: flip to the front and mark the
		// second region active so requestWrite knows to bound future
		// writes by the read cursor.
		r.writeCursor.Store(wrapBit)
		return
	}
	if secondRegion {
		r.writeCursor.Store(wrapBit | newWrite)
	} else {
		r.writeCursor.Store(newWrite)
	}
}

// requestRead returns a contiguous slice of up to n readable elements
// starting at the current read cursor. As with requestWrite, it may
// return fewer elements than requested (or zero); finishRead commits
// however many were actually consumed.
func (r *ring[T]) requestRead(n int) []T {
	read, write, secondRegion := r.state()
	cap := uint32(len(r.data))

	var limit uint32
	if secondRegion {
		limit = cap - read
	} else if write >= read {
		limit = write - read
	} else {
		limit = 0
	}

	avail := int(limit)
	if avail > n {
		avail = n
	}
	if avail <= 0 {
		return nil
	}
	return r.data[read : read+uint32(avail)]
}

// finishRead commits n elements (n <= the length returned by the most
// recent requestRead) as consumed, advancing the read cursor. If the
// read cursor reaches the end of the backing array while the second
// region is active, it wraps to the front and clears the wrap flag.
func (r *ring[T]) finishRead(n int) {
	if n == 0 {
		return
	}
	read, _, secondRegion := r.state()
	cap := uint32(len(r.data))
	newRead := read + uint32(n)

	if secondRegion && newRead == cap {
		r.readCursor.Store(0)
		_, write, _ := r.state()
		r.writeCursor.Store(write)
		return
	}
	r.readCursor.Store(newRead)
}

// discard drops up to n readable elements without the caller copying
// them out, equivalent to requestRead(n) followed by finishRead of
// however many were actually available.
func (r *ring[T]) discard(n int) int {
	got := 0
	for got < n {
		chunk := r.requestRead(n - got)
		if len(chunk) == 0 {
			break
		}
		r.finishRead(len(chunk))
		got += len(chunk)
	}
	return got
}
