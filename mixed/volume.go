package mixed

// VolumeControl applies a master volume and left/right pan to a stereo
// pair of buffers in place: at pan > 0 the left channel attenuates
// toward the right, at pan < 0 the right channel attenuates toward the
// left, matching the reference's asymmetric pan law.
type VolumeControl struct {
	baseProcessor
	inL, inR, outL, outR *Buffer
	volume               float32
	pan                  float32
}

// NewVolumeControl creates a VolumeControl at unity volume, centered pan.
func NewVolumeControl() *VolumeControl {
	return &VolumeControl{volume: 1.0}
}

func (v *VolumeControl) Start() error { v.start(); return nil }
func (v *VolumeControl) End() error   { v.end(); return nil }

func (v *VolumeControl) Mix(samples int) error {
	if v.bypass {
		if err := CopyBuffer(v.outL, v.inL, samples); err != nil {
			return err
		}
		return CopyBuffer(v.outR, v.inR, samples)
	}
	if v.inL == nil || v.inR == nil || v.outL == nil || v.outR == nil {
		return newErr("Mix", KindMixingFailed, "volume control requires both channels wired")
	}

	lvol := v.volume
	rvol := v.volume
	if v.pan > 0 {
		lvol *= 1.0 - v.pan
	} else if v.pan < 0 {
		rvol *= 1.0 + v.pan
	}

	inL := v.inL.RequestRead(samples)
	inR := v.inR.RequestRead(samples)
	n := len(inL)
	if len(inR) < n {
		n = len(inR)
	}
	outL := v.outL.RequestWrite(n)
	outR := v.outR.RequestWrite(n)
	if len(outL) < n {
		n = len(outL)
	}
	if len(outR) < n {
		n = len(outR)
	}
	for i := 0; i < n; i++ {
		outL[i] = inL[i] * lvol
		outR[i] = inR[i] * rvol
	}
	v.inL.FinishRead(n)
	v.inR.FinishRead(n)
	v.outL.FinishWrite(n)
	v.outR.FinishWrite(n)
	return nil
}

func (v *VolumeControl) SetIn(index int, buffer *Buffer) error {
	switch Location(index) {
	case LocationLeft:
		v.inL = buffer
	case LocationRight:
		v.inR = buffer
	default:
		return newErr("SetIn", KindInvalidLocation, "location %d", index)
	}
	return nil
}

func (v *VolumeControl) SetOut(index int, buffer *Buffer) error {
	switch Location(index) {
	case LocationLeft:
		v.outL = buffer
	case LocationRight:
		v.outR = buffer
	default:
		return newErr("SetOut", KindInvalidLocation, "location %d", index)
	}
	return nil
}

func (v *VolumeControl) Get(field Field) (any, error) {
	switch field {
	case FieldBypass:
		return v.getBypass()
	case FieldVolume:
		return v.volume, nil
	case FieldPan:
		return v.pan, nil
	default:
		return nil, newErr("Get", KindInvalidField, "VolumeControl has no field %v", field)
	}
}

func (v *VolumeControl) Set(field Field, value any) error {
	switch field {
	case FieldBypass:
		return v.setBypass(value)
	case FieldVolume:
		f, ok := value.(float32)
		if !ok {
			return newErr("Set", KindInvalidValue, "FieldVolume wants float32")
		}
		v.volume = f
		return nil
	case FieldPan:
		f, ok := value.(float32)
		if !ok {
			return newErr("Set", KindInvalidValue, "FieldPan wants float32")
		}
		if f < -1 || f > 1 {
			return newErr("Set", KindInvalidValue, "FieldPan must be within [-1, 1]")
		}
		v.pan = f
		return nil
	default:
		return newErr("Set", KindInvalidField, "VolumeControl has no field %v", field)
	}
}

func (v *VolumeControl) Info() Info {
	return Info{
		Name:        "volume-control",
		Description: "General segment for volume adjustment and stereo panning.",
		Fields: []FieldDescriptor{
			{Field: FieldVolume, Name: "volume", Flags: FieldGettable | FieldSettable},
			{Field: FieldPan, Name: "pan", Flags: FieldGettable | FieldSettable},
			{Field: FieldBypass, Name: "bypass", Flags: FieldGettable | FieldSettable},
		},
	}
}
