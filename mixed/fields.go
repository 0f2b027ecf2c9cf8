package mixed

// Field identifies a gettable/settable parameter on a Processor. Not
// every Field applies to every processor; Get/Set return
// KindInvalidField for one a processor doesn't expose.
type Field int

const (
	_ Field = iota

	FieldBypass
	FieldVolume
	FieldPan
	FieldSamplerate
	FieldChannels
	FieldFrameSize

	// Mixer / chain
	FieldSourceCount

	// Biquad filter
	FieldFilterType
	FieldFrequency
	FieldGain
	FieldQ

	// Generator
	FieldGeneratorType

	// Delay family
	FieldDelaySeconds
	FieldFeedback
	FieldThreshold
	FieldStepSize

	// Repeat
	FieldRepeatMode

	// Gate
	FieldOpenThreshold
	FieldCloseThreshold
	FieldHold

	// Quantize
	FieldQuantizeSteps

	// Compressor
	FieldPregain
	FieldKnee
	FieldRatio
	FieldAttack
	FieldRelease
	FieldPredelay
	FieldReleaseZone
	FieldPostgain
	FieldWet
	FieldMeterGain

	// Pitch / speed
	FieldPitchShift
	FieldSpeedFactor
	FieldOversampling

	// Space / plane mixer
	FieldPosition
	FieldDirection
	FieldUp
	FieldVelocity
	FieldSoundspeed
	FieldDopplerFactor
	FieldMinDistance
	FieldMaxDistance
	FieldRolloff
	FieldAttenuation

	// Equalizer
	FieldBandCount
	FieldBandFrequency
	FieldBandGain

	// Convolution
	FieldImpulseResponse
)

// Encoding identifies a sample's on-the-wire representation inside a
// Pack. Encodings map 1:1 onto the codec functions in codec.go.
type Encoding int

const (
	_ Encoding = iota
	EncodingInt8
	EncodingUint8
	EncodingInt16
	EncodingUint16
	EncodingInt24
	EncodingUint24
	EncodingInt32
	EncodingUint32
	EncodingFloat32
	EncodingFloat64
)

// BytesPerSample returns the on-the-wire width of one sample in this
// encoding, or 0 for an unrecognized encoding.
func (e Encoding) BytesPerSample() int {
	switch e {
	case EncodingInt8, EncodingUint8:
		return 1
	case EncodingInt16, EncodingUint16:
		return 2
	case EncodingInt24, EncodingUint24:
		return 3
	case EncodingInt32, EncodingUint32, EncodingFloat32:
		return 4
	case EncodingFloat64:
		return 8
	default:
		return 0
	}
}

func (e Encoding) String() string {
	switch e {
	case EncodingInt8:
		return "int8"
	case EncodingUint8:
		return "uint8"
	case EncodingInt16:
		return "int16"
	case EncodingUint16:
		return "uint16"
	case EncodingInt24:
		return "int24"
	case EncodingUint24:
		return "uint24"
	case EncodingInt32:
		return "int32"
	case EncodingUint32:
		return "uint32"
	case EncodingFloat32:
		return "float32"
	case EncodingFloat64:
		return "float64"
	default:
		return "unknown"
	}
}

// AttenuationModel selects how the space mixer rolls off volume with
// distance.
type AttenuationModel int

const (
	AttenuationNone AttenuationModel = iota
	AttenuationInverse
	AttenuationLinear
	AttenuationExponential
)

// Location names a canonical speaker position, used by the speaker
// table and by VBAP/space/plane mixer channel wiring.
type Location int

const (
	_ Location = iota
	LocationLeft
	LocationRight
	LocationCenter
	LocationLFE
	LocationSubwoofer
	LocationRearLeft
	LocationRearRight
	LocationRearCenter
	LocationSideLeft
	LocationSideRight
	LocationFrontLeftOfCenter
	LocationFrontRightOfCenter
	LocationTopCenter
	LocationMono
)
