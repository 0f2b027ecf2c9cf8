package mixed

// Pack wraps a byte ring with the format metadata needed to interpret
// its contents: sample encoding, channel count, and sample rate. Packs
// are the boundary type external collaborators (device I/O, file
// decoders) write into and read out of; internally, processors work
// with Buffer instead.
type Pack struct {
	ring       *ring[byte]
	Encoding   Encoding
	Channels   int
	Samplerate int
}

// NewPack allocates a Pack with a byte ring sized to hold frameCapacity
// frames of the given format.
func NewPack(encoding Encoding, channels, samplerate, frameCapacity int) (*Pack, error) {
	if encoding.BytesPerSample() == 0 {
		return nil, newErr("NewPack", KindUnsupportedEncoding, "encoding %v", encoding)
	}
	if channels <= 0 {
		return nil, newErr("NewPack", KindUnsupportedChannels, "channels %d", channels)
	}
	if samplerate <= 0 {
		return nil, newErr("NewPack", KindUnsupportedSamplerate, "samplerate %d", samplerate)
	}
	bytesPerFrame := encoding.BytesPerSample() * channels
	return &Pack{
		ring:       newRing[byte](bytesPerFrame * frameCapacity),
		Encoding:   encoding,
		Channels:   channels,
		Samplerate: samplerate,
	}, nil
}

// bytesPerFrame is the byte stride of one interleaved frame (all
// channels of one sample instant).
func (p *Pack) bytesPerFrame() int {
	return p.Encoding.BytesPerSample() * p.Channels
}

// AvailableFrames returns the number of complete frames currently
// readable.
func (p *Pack) AvailableFrames() int {
	bpf := p.bytesPerFrame()
	if bpf == 0 {
		return 0
	}
	return p.ring.availableRead() / bpf
}

// AvailableWriteFrames returns the number of complete frames of space
// currently writable.
func (p *Pack) AvailableWriteFrames() int {
	bpf := p.bytesPerFrame()
	if bpf == 0 {
		return 0
	}
	return p.ring.availableWrite() / bpf
}

// Write copies raw encoded bytes into the pack's ring, returning the
// number of bytes actually accepted. Partial frames are never rejected
// here; callers writing frame-wise should size n to a frame multiple.
func (p *Pack) Write(src []byte) int {
	w := p.ring.requestWrite(len(src))
	n := copy(w, src)
	p.ring.finishWrite(n)
	return n
}

// Read copies up to len(dst) raw encoded bytes out of the pack's ring,
// returning the number of bytes actually read.
func (p *Pack) Read(dst []byte) int {
	r := p.ring.requestRead(len(dst))
	n := copy(dst, r)
	p.ring.finishRead(n)
	return n
}

// Discard drops up to n bytes of unread data, returning the number of
// bytes actually discarded.
func (p *Pack) Discard(n int) int {
	return p.ring.discard(n)
}
