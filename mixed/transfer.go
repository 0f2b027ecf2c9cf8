package mixed

// VolumeRamp tracks a single channel's current and target volume for
// click-free volume changes: transfer only steps to the target volume
// at a zero crossing (where out[i] is zero, or out[i-1] is nonzero and
// has the opposite sign of out[i]), the same rule the original transfer code uses
// to avoid audible stepping artifacts mid-waveform.
type VolumeRamp struct {
	current float32
	target  float32
	prev    float32
}

// NewVolumeRamp creates a ramp starting and targeting the given volume.
func NewVolumeRamp(volume float32) *VolumeRamp {
	return &VolumeRamp{current: volume, target: volume}
}

// SetTarget changes the volume the ramp steps to, at the next
// zero-crossing encountered during a transfer.
func (r *VolumeRamp) SetTarget(v float32) { r.target = v }

// Volume returns the ramp's current (not target) volume.
func (r *VolumeRamp) Volume() float32 { return r.current }

func (r *VolumeRamp) apply(sample float32) float32 {
	out := sample * r.current
	if r.current != r.target {
		if out == 0 || (r.prev != 0 && (r.prev < 0) != (out < 0)) {
			r.current = r.target
			out = sample * r.current
		}
	}
	r.prev = out
	return out
}

// BufferFromPack decodes up to count frames from pack into one Buffer
// per channel, applying each channel's VolumeRamp. buffers must have at
// least pack.Channels entries. It returns the number of frames actually
// transferred, bounded by the frames available in pack and the write
// space available in every destination buffer.
func BufferFromPack(pack *Pack, buffers []*Buffer, ramps []*VolumeRamp, count int) int {
	channels := pack.Channels
	bpf := pack.bytesPerFrame()
	bps := pack.Encoding.BytesPerSample()

	frames := count
	if a := pack.AvailableFrames(); a < frames {
		frames = a
	}
	for _, b := range buffers[:channels] {
		if a := b.AvailableWrite(); a < frames {
			frames = a
		}
	}
	if frames <= 0 {
		return 0
	}

	raw := pack.ring.requestRead(frames * bpf)
	got := len(raw) / bpf
	if got < frames {
		frames = got
	}

	outs := make([][]float32, channels)
	for c := 0; c < channels; c++ {
		outs[c] = buffers[c].RequestWrite(frames)
	}

	for i := 0; i < frames; i++ {
		base := i * bpf
		for c := 0; c < channels; c++ {
			sample := decodeSample(pack.Encoding, raw[base+c*bps:base+(c+1)*bps])
			if ramps != nil && ramps[c] != nil {
				sample = ramps[c].apply(sample)
			}
			if len(outs[c]) > i {
				outs[c][i] = sample
			}
		}
	}

	pack.ring.finishRead(frames * bpf)
	for c := 0; c < channels; c++ {
		buffers[c].FinishWrite(frames)
	}
	return frames
}

// BufferToPack encodes up to count frames from one Buffer per channel
// into pack, applying each channel's VolumeRamp. It returns the number
// of frames actually transferred, bounded by the frames readable from
// every source buffer and the write space available in pack.
func BufferToPack(buffers []*Buffer, ramps []*VolumeRamp, pack *Pack, count int) int {
	channels := pack.Channels
	bpf := pack.bytesPerFrame()
	bps := pack.Encoding.BytesPerSample()

	frames := count
	for _, b := range buffers[:channels] {
		if a := b.Available(); a < frames {
			frames = a
		}
	}
	if a := pack.AvailableWriteFrames(); a < frames {
		frames = a
	}
	if frames <= 0 {
		return 0
	}

	ins := make([][]float32, channels)
	for c := 0; c < channels; c++ {
		ins[c] = buffers[c].RequestRead(frames)
		if len(ins[c]) < frames {
			frames = len(ins[c])
		}
	}

	raw := pack.ring.requestWrite(frames * bpf)
	got := len(raw) / bpf
	if got < frames {
		frames = got
	}

	for i := 0; i < frames; i++ {
		base := i * bpf
		for c := 0; c < channels; c++ {
			sample := ins[c][i]
			if ramps != nil && ramps[c] != nil {
				sample = ramps[c].apply(sample)
			}
			encodeSample(pack.Encoding, sample, raw[base+c*bps:base+(c+1)*bps])
		}
	}

	for c := 0; c < channels; c++ {
		buffers[c].FinishRead(frames)
	}
	pack.ring.finishWrite(frames * bpf)
	return frames
}

// CopyBuffer copies exactly count samples from src to dst, failing if
// either side cannot supply/accept exactly that many: the Open Question
// in the spec over partial-size copy/transfer semantics is resolved by
// requiring equal size, rather than silently truncating.
func CopyBuffer(dst, src *Buffer, count int) error {
	if src.Available() < count || dst.AvailableWrite() < count {
		return newErr("CopyBuffer", KindInvalidFrameCount, "want %d frames", count)
	}
	s := src.RequestRead(count)
	d := dst.RequestWrite(count)
	n := copy(d, s)
	src.FinishRead(n)
	dst.FinishWrite(n)
	if n != count {
		return newErr("CopyBuffer", KindInvalidFrameCount, "copied %d of %d frames", n, count)
	}
	return nil
}
