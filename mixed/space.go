package mixed

import (
	"math"

	"github.com/golang/geo/r3"
)

// spaceAttenuate computes a source's volume falloff between
// MinDistance and MaxDistance according to an AttenuationModel.
func spaceAttenuate(model AttenuationModel, minD, maxD, distance, rolloff float32) float32 {
	switch model {
	case AttenuationNone:
		return 1.0
	case AttenuationInverse:
		return minD / (minD + rolloff*(distance-minD))
	case AttenuationLinear:
		return 1.0 - rolloff*(distance-minD)/(maxD-minD)
	default: // AttenuationExponential
		return float32(1.0 / math.Pow(float64(distance/minD), float64(rolloff)))
	}
}

func spaceClamp(lo, v, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// spaceSource is one positioned, velocity-tracked emitter wired into a
// Space mixer.
type spaceSource struct {
	buffer   *Buffer
	location r3.Vector
	velocity r3.Vector
}

// Space is a 3D binaural spatializer: it positions N mono sources
// around a listener, computing per-source stereo pan, distance
// attenuation, and Doppler pitch shift, then additively mixes all
// sources down to a stereo left/right pair.
type Space struct {
	baseProcessor
	sources []*spaceSource
	left    *Buffer
	right   *Buffer

	Location       r3.Vector
	Velocity       r3.Vector
	Direction      r3.Vector
	Up             r3.Vector
	Soundspeed     float32
	DopplerFactor  float32
	MinDistance    float32
	MaxDistance    float32
	Rolloff        float32
	Volume         float32
	Attenuation    AttenuationModel
}

// NewSpace creates a Space mixer with the reference library's default
// listener geometry and attenuation (exponential rolloff, speed of
// sound in cm/s, forward +Z / up +Y).
func NewSpace() *Space {
	return &Space{
		Direction:     r3.Vector{X: 0, Y: 0, Z: 1},
		Up:            r3.Vector{X: 0, Y: 1, Z: 0},
		Soundspeed:    34330.0,
		DopplerFactor: 1.0,
		MinDistance:   10.0,
		MaxDistance:   100000.0,
		Rolloff:       0.5,
		Attenuation:   AttenuationExponential,
		Volume:        1.0,
	}
}

func (s *Space) Start() error { s.start(); return nil }
func (s *Space) End() error   { s.end(); return nil }

func (s *Space) calculatePan(sourceLoc r3.Vector) float32 {
	side := s.Up.Cross(s.Direction).Normalize()
	toSource := sourceLoc.Sub(s.Location).Normalize()
	return float32(side.Dot(toSource))
}

func (s *Space) calculatePhase(sourceLoc r3.Vector) float32 {
	dir := s.Direction.Normalize()
	toListener := sourceLoc.Sub(s.Location).Normalize()
	return float32(dir.Dot(toListener))
}

func (s *Space) calculateVolumes(src *spaceSource) (lvolume, rvolume float32) {
	distance := spaceClamp(s.MinDistance, float32(src.location.Sub(s.Location).Norm()), s.MaxDistance)
	volume := s.Volume * spaceAttenuate(s.Attenuation, s.MinDistance, s.MaxDistance, distance, s.Rolloff)

	var pan float32
	if distance > s.MinDistance {
		pan = s.calculatePan(src.location)
	}
	lvolume = volume
	if pan > 0 {
		lvolume *= 1 - pan
	}
	rvolume = volume
	if pan < 0 {
		rvolume *= 1 + pan
	}
	if s.calculatePhase(src.location) < 0 {
		rvolume *= -1
	}
	return lvolume, rvolume
}

// calculateDopplerShift returns the playback-rate multiplier implied
// by relative listener/source velocity (OpenAL 1.1 §3.5.2).
func (s *Space) calculateDopplerShift(src *spaceSource) float32 {
	if s.DopplerFactor <= 0 {
		return 1.0
	}
	sl := s.Location.Sub(src.location)
	mag := sl.Norm()
	vls := sl.Dot(s.Velocity) * mag
	vss := sl.Dot(src.velocity) * mag
	ssdf := float64(s.Soundspeed) / float64(s.DopplerFactor)
	if vss > ssdf {
		vss = ssdf
	}
	if vls > ssdf {
		vls = ssdf
	}
	num := float64(s.Soundspeed) - float64(s.DopplerFactor)*vls
	den := float64(s.Soundspeed) - float64(s.DopplerFactor)*vss
	if den == 0 {
		return 1.0
	}
	return float32(num / den)
}

func (s *Space) Mix(samples int) error {
	if s.left == nil || s.right == nil {
		return newErr("Mix", KindMixingFailed, "space requires wired left/right outputs")
	}
	left := s.left.RequestWrite(samples)
	right := s.right.RequestWrite(samples)
	n := len(left)
	if len(right) < n {
		n = len(right)
	}

	if len(s.sources) == 0 {
		for i := 0; i < n; i++ {
			left[i] = 0
			right[i] = 0
		}
		s.left.FinishWrite(n)
		s.right.FinishWrite(n)
		return nil
	}

	scratch := make([]float32, n)
	for si, src := range s.sources {
		if src.buffer == nil {
			continue
		}
		pitch := spaceClamp(0.5, s.calculateDopplerShift(src), 2.0)
		in := src.buffer.RequestRead(n)
		m := len(in)
		if m < n {
			for i := m; i < n; i++ {
				scratch[i] = 0
			}
		}
		if pitch != 1.0 && m > 0 {
			Resample(ResampleLinear, in, int(pitch*1000), scratch[:m], 1000)
		} else {
			copy(scratch[:m], in)
		}
		src.buffer.FinishRead(m)

		lvolume, rvolume := s.calculateVolumes(src)
		if si == 0 {
			for i := 0; i < n; i++ {
				left[i] = scratch[i] * lvolume
				right[i] = scratch[i] * rvolume
			}
		} else {
			for i := 0; i < n; i++ {
				left[i] += scratch[i] * lvolume
				right[i] += scratch[i] * rvolume
			}
		}
	}

	s.left.FinishWrite(n)
	s.right.FinishWrite(n)
	return nil
}

func (s *Space) SetIn(index int, buffer *Buffer) error {
	for index >= len(s.sources) {
		s.sources = append(s.sources, &spaceSource{})
	}
	s.sources[index].buffer = buffer
	return nil
}

func (s *Space) SetOut(index int, buffer *Buffer) error {
	switch Location(index) {
	case LocationLeft:
		s.left = buffer
	case LocationRight:
		s.right = buffer
	default:
		return newErr("SetOut", KindInvalidLocation, "location %d", index)
	}
	return nil
}

// SetSourceLocation positions a wired source in listener space.
func (s *Space) SetSourceLocation(index int, location r3.Vector) error {
	if index < 0 || index >= len(s.sources) {
		return newErr("SetSourceLocation", KindInvalidLocation, "source %d", index)
	}
	s.sources[index].location = location
	return nil
}

// SetSourceVelocity sets a wired source's velocity for Doppler shift.
func (s *Space) SetSourceVelocity(index int, velocity r3.Vector) error {
	if index < 0 || index >= len(s.sources) {
		return newErr("SetSourceVelocity", KindInvalidLocation, "source %d", index)
	}
	s.sources[index].velocity = velocity
	return nil
}

func (s *Space) Get(field Field) (any, error) {
	switch field {
	case FieldBypass:
		return s.getBypass()
	case FieldPosition:
		return s.Location, nil
	case FieldDirection:
		return s.Direction, nil
	case FieldUp:
		return s.Up, nil
	case FieldVelocity:
		return s.Velocity, nil
	case FieldSoundspeed:
		return s.Soundspeed, nil
	case FieldDopplerFactor:
		return s.DopplerFactor, nil
	case FieldMinDistance:
		return s.MinDistance, nil
	case FieldMaxDistance:
		return s.MaxDistance, nil
	case FieldRolloff:
		return s.Rolloff, nil
	case FieldAttenuation:
		return s.Attenuation, nil
	case FieldVolume:
		return s.Volume, nil
	case FieldSourceCount:
		return len(s.sources), nil
	default:
		return nil, newErr("Get", KindInvalidField, "Space has no field %v", field)
	}
}

func (s *Space) Set(field Field, value any) error {
	switch field {
	case FieldBypass:
		return s.setBypass(value)
	case FieldPosition:
		v, ok := value.(r3.Vector)
		if !ok {
			return newErr("Set", KindInvalidValue, "FieldPosition wants r3.Vector")
		}
		s.Location = v
	case FieldDirection:
		v, ok := value.(r3.Vector)
		if !ok {
			return newErr("Set", KindInvalidValue, "FieldDirection wants r3.Vector")
		}
		s.Direction = v
	case FieldUp:
		v, ok := value.(r3.Vector)
		if !ok {
			return newErr("Set", KindInvalidValue, "FieldUp wants r3.Vector")
		}
		s.Up = v
	case FieldVelocity:
		v, ok := value.(r3.Vector)
		if !ok {
			return newErr("Set", KindInvalidValue, "FieldVelocity wants r3.Vector")
		}
		s.Velocity = v
	case FieldSoundspeed:
		v, ok := value.(float32)
		if !ok || v <= 0 {
			return newErr("Set", KindInvalidValue, "FieldSoundspeed wants a positive float32")
		}
		s.Soundspeed = v
	case FieldDopplerFactor:
		v, ok := value.(float32)
		if !ok || v < 0 {
			return newErr("Set", KindInvalidValue, "FieldDopplerFactor wants a non-negative float32")
		}
		s.DopplerFactor = v
	case FieldMinDistance:
		v, ok := value.(float32)
		if !ok || v < 0 {
			return newErr("Set", KindInvalidValue, "FieldMinDistance wants a non-negative float32")
		}
		s.MinDistance = v
	case FieldMaxDistance:
		v, ok := value.(float32)
		if !ok || v <= s.MinDistance {
			return newErr("Set", KindInvalidValue, "FieldMaxDistance wants a float32 greater than MinDistance")
		}
		s.MaxDistance = v
	case FieldRolloff:
		v, ok := value.(float32)
		if !ok {
			return newErr("Set", KindInvalidValue, "FieldRolloff wants float32")
		}
		s.Rolloff = v
	case FieldAttenuation:
		v, ok := value.(AttenuationModel)
		if !ok {
			return newErr("Set", KindInvalidValue, "FieldAttenuation wants AttenuationModel")
		}
		s.Attenuation = v
	case FieldVolume:
		v, ok := value.(float32)
		if !ok {
			return newErr("Set", KindInvalidValue, "FieldVolume wants float32")
		}
		s.Volume = v
	default:
		return newErr("Set", KindInvalidField, "Space has no field %v", field)
	}
	return nil
}

func (s *Space) Info() Info {
	return Info{Name: "space", Description: "3D spatial audio mixer with distance attenuation and Doppler shift."}
}
