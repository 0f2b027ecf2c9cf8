// Package mixed implements a real-time audio mixing and effects
// processing pipeline: lock-free rings, sample format conversion, and
// a uniform processor contract for composable DSP segments.
package mixed

import "fmt"

// Kind enumerates the taxonomy of failures a pipeline operation can
// report. The zero value never appears in a non-nil *Error.
type Kind int

const (
	_ Kind = iota

	// KindOutOfMemory signals an allocation failure during construction.
	KindOutOfMemory
	// KindUnsupportedEncoding signals an encoding no codec path handles.
	KindUnsupportedEncoding
	// KindUnsupportedSamplerate signals a samplerate a component rejects.
	KindUnsupportedSamplerate
	// KindUnsupportedChannels signals a channel count a component rejects.
	KindUnsupportedChannels
	// KindBufferAllocated signals an attempt to bind a buffer already
	// owned by another wiring (e.g. a virtual buffer bound twice).
	KindBufferAllocated
	// KindNotImplemented signals an optional operation a processor does
	// not support (e.g. SetIn on a source processor that has no inputs).
	KindNotImplemented
	// KindInvalidValue signals a Set call with an out-of-range value.
	KindInvalidValue
	// KindInvalidLocation signals an unknown speaker location.
	KindInvalidLocation
	// KindInvalidField signals a Get/Set call naming a field a
	// processor does not have.
	KindInvalidField
	// KindInvalidFrameCount signals a size mismatch between buffers
	// passed to an operation that requires equal frame counts.
	KindInvalidFrameCount
	// KindMixingFailed signals a processor's Mix step could not run,
	// typically because an upstream input was not wired.
	KindMixingFailed
	// KindDuplicateSegment signals a registry Register call for a name
	// already bound.
	KindDuplicateSegment
	// KindUnknownSegment signals a registry lookup for an unregistered
	// segment name.
	KindUnknownSegment
	// KindInternalError signals an invariant violation that should be
	// unreachable in correct code.
	KindInternalError
)

var kindNames = map[Kind]string{
	KindOutOfMemory:           "out of memory",
	KindUnsupportedEncoding:   "unsupported encoding",
	KindUnsupportedSamplerate: "unsupported samplerate",
	KindUnsupportedChannels:   "unsupported channel count",
	KindBufferAllocated:       "buffer already allocated",
	KindNotImplemented:        "not implemented",
	KindInvalidValue:          "invalid value",
	KindInvalidLocation:       "invalid speaker location",
	KindInvalidField:          "invalid field",
	KindInvalidFrameCount:     "invalid frame count",
	KindMixingFailed:          "mixing failed",
	KindDuplicateSegment:      "duplicate segment name",
	KindUnknownSegment:        "unknown segment name",
	KindInternalError:         "internal error",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "unknown error kind"
}

// Error is the concrete error type every fallible operation in this
// package returns. It carries the Kind taxonomy plus the operation name
// the failure occurred in, so callers can both switch on Kind and log a
// readable message.
type Error struct {
	Kind Kind
	Op   string
	Msg  string
}

func (e *Error) Error() string {
	if e.Msg != "" {
		return fmt.Sprintf("mixed: %s: %s: %s", e.Op, e.Kind, e.Msg)
	}
	return fmt.Sprintf("mixed: %s: %s", e.Op, e.Kind)
}

// newErr constructs an *Error for op/kind with an optional formatted
// message.
func newErr(op string, kind Kind, format string, args ...any) *Error {
	msg := ""
	if format != "" {
		msg = fmt.Sprintf(format, args...)
	}
	return &Error{Kind: kind, Op: op, Msg: msg}
}

// KindOf extracts the Kind from err if it is a *Error produced by this
// package, for the common switch-on-kind case.
func KindOf(err error) (Kind, bool) {
	if err == nil {
		return 0, false
	}
	if me, ok := err.(*Error); ok {
		return me.Kind, true
	}
	return 0, false
}
