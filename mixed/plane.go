package mixed

import (
	"math"

	"github.com/golang/geo/r2"
)

// planeSource is one positioned, velocity-tracked emitter wired into a
// Plane mixer. Unlike Space, each source carries its own distance
// falloff range since a 2D layout is commonly used for things like
// minimap-style per-entity audio with differing ranges.
type planeSource struct {
	buffer      *Buffer
	location    r2.Vector
	velocity    r2.Vector
	minDistance float32
	maxDistance float32
	rolloff     float32
}

// Plane is a 2D positional mixer: sources are placed on a flat plane
// around a listener and panned left/right purely by their signed
// horizontal offset, with per-source distance attenuation and
// Doppler pitch shift.
type Plane struct {
	baseProcessor
	sources []*planeSource
	left    *Buffer
	right   *Buffer

	Location      r2.Vector
	Velocity      r2.Vector
	Soundspeed    float32
	DopplerFactor float32
	MinDistance   float32
	MaxDistance   float32
	Rolloff       float32
	Volume        float32
	Attenuation   AttenuationModel
}

// NewPlane creates a Plane mixer with the reference library's default
// 2D geometry: doppler disabled, linear attenuation out to 100m.
func NewPlane() *Plane {
	return &Plane{
		Soundspeed:    34330.0,
		DopplerFactor: 0.0,
		MinDistance:   10.0,
		MaxDistance:   10000.0,
		Rolloff:       1.0,
		Attenuation:   AttenuationLinear,
		Volume:        1.0,
	}
}

func (p *Plane) Start() error {
	if p.left == nil || p.right == nil {
		return newErr("Start", KindMixingFailed, "plane requires wired left/right outputs")
	}
	p.start()
	return nil
}
func (p *Plane) End() error { p.end(); return nil }

func (p *Plane) calculateVolumes(src *planeSource) (lvolume, rvolume float32) {
	distance := spaceClamp(src.minDistance, float32(src.location.Sub(p.Location).Norm()), src.maxDistance)
	volume := p.Volume * spaceAttenuate(p.Attenuation, src.minDistance, src.maxDistance, distance, src.rolloff)

	xdiff := float32(src.location.X - p.Location.X)
	xdist := float32(math.Abs(float64(xdiff)))
	var pan float32
	if xdist > src.minDistance {
		span := float32(math.Min(float64(src.maxDistance), float64(xdist))) - src.minDistance
		pan = span / (src.maxDistance - src.minDistance)
		if xdiff < 0 {
			pan = -pan
		}
	}
	lvolume = volume
	if pan > 0 {
		lvolume *= 1 - pan
	}
	rvolume = volume
	if pan < 0 {
		rvolume *= 1 + pan
	}
	return lvolume, rvolume
}

func (p *Plane) calculateDopplerShift(src *planeSource) float32 {
	if p.DopplerFactor <= 0 {
		return 1.0
	}
	sl := p.Location.Sub(src.location)
	mag := sl.Norm()
	vls := sl.Dot(p.Velocity) * mag
	vss := sl.Dot(src.velocity) * mag
	ssdf := float64(p.Soundspeed) / float64(p.DopplerFactor)
	if vss > ssdf {
		vss = ssdf
	}
	if vls > ssdf {
		vls = ssdf
	}
	num := float64(p.Soundspeed) - float64(p.DopplerFactor)*vls
	den := float64(p.Soundspeed) - float64(p.DopplerFactor)*vss
	if den == 0 {
		return 1.0
	}
	return float32(num / den)
}

func (p *Plane) Mix(samples int) error {
	if p.left == nil || p.right == nil {
		return newErr("Mix", KindMixingFailed, "plane requires wired left/right outputs")
	}
	left := p.left.RequestWrite(samples)
	right := p.right.RequestWrite(samples)
	n := len(left)
	if len(right) < n {
		n = len(right)
	}

	for i := 0; i < n; i++ {
		left[i] = 0
		right[i] = 0
	}

	if len(p.sources) > 0 {
		scratch := make([]float32, n)
		for _, src := range p.sources {
			if src.buffer == nil {
				continue
			}
			pitch := spaceClamp(0.5, p.calculateDopplerShift(src), 2.0)
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

			lvolume, rvolume := p.calculateVolumes(src)
			for i := 0; i < n; i++ {
				left[i] += scratch[i] * lvolume
				right[i] += scratch[i] * rvolume
			}
		}
	}

	p.left.FinishWrite(n)
	p.right.FinishWrite(n)
	return nil
}

func (p *Plane) SetIn(index int, buffer *Buffer) error {
	for index >= len(p.sources) {
		p.sources = append(p.sources, &planeSource{
			minDistance: p.MinDistance,
			maxDistance: p.MaxDistance,
			rolloff:     p.Rolloff,
			location:    p.Location,
			velocity:    p.Velocity,
		})
	}
	p.sources[index].buffer = buffer
	return nil
}

func (p *Plane) SetOut(index int, buffer *Buffer) error {
	switch Location(index) {
	case LocationLeft:
		p.left = buffer
	case LocationRight:
		p.right = buffer
	default:
		return newErr("SetOut", KindInvalidLocation, "location %d", index)
	}
	return nil
}

// SetSourceLocation positions a wired source on the plane.
func (p *Plane) SetSourceLocation(index int, location r2.Vector) error {
	if index < 0 || index >= len(p.sources) {
		return newErr("SetSourceLocation", KindInvalidLocation, "source %d", index)
	}
	p.sources[index].location = location
	return nil
}

// SetSourceVelocity sets a wired source's velocity for Doppler shift.
func (p *Plane) SetSourceVelocity(index int, velocity r2.Vector) error {
	if index < 0 || index >= len(p.sources) {
		return newErr("SetSourceVelocity", KindInvalidLocation, "source %d", index)
	}
	p.sources[index].velocity = velocity
	return nil
}

// SetSourceRange overrides a wired source's own distance falloff
// range and rolloff, independent of the mixer's defaults.
func (p *Plane) SetSourceRange(index int, minDistance, maxDistance, rolloff float32) error {
	if index < 0 || index >= len(p.sources) {
		return newErr("SetSourceRange", KindInvalidLocation, "source %d", index)
	}
	p.sources[index].minDistance = minDistance
	p.sources[index].maxDistance = maxDistance
	p.sources[index].rolloff = rolloff
	return nil
}

func (p *Plane) Get(field Field) (any, error) {
	switch field {
	case FieldBypass:
		return p.getBypass()
	case FieldPosition:
		return p.Location, nil
	case FieldVelocity:
		return p.Velocity, nil
	case FieldSoundspeed:
		return p.Soundspeed, nil
	case FieldDopplerFactor:
		return p.DopplerFactor, nil
	case FieldMinDistance:
		return p.MinDistance, nil
	case FieldMaxDistance:
		return p.MaxDistance, nil
	case FieldRolloff:
		return p.Rolloff, nil
	case FieldAttenuation:
		return p.Attenuation, nil
	case FieldVolume:
		return p.Volume, nil
	case FieldSourceCount:
		return len(p.sources), nil
	default:
		return nil, newErr("Get", KindInvalidField, "Plane has no field %v", field)
	}
}

func (p *Plane) Set(field Field, value any) error {
	switch field {
	case FieldBypass:
		return p.setBypass(value)
	case FieldPosition:
		v, ok := value.(r2.Vector)
		if !ok {
			return newErr("Set", KindInvalidValue, "FieldPosition wants r2.Vector")
		}
		p.Location = v
	case FieldVelocity:
		v, ok := value.(r2.Vector)
		if !ok {
			return newErr("Set", KindInvalidValue, "FieldVelocity wants r2.Vector")
		}
		p.Velocity = v
	case FieldSoundspeed:
		v, ok := value.(float32)
		if !ok || v <= 0 {
			return newErr("Set", KindInvalidValue, "FieldSoundspeed wants a positive float32")
		}
		p.Soundspeed = v
	case FieldDopplerFactor:
		v, ok := value.(float32)
		if !ok || v < 0 {
			return newErr("Set", KindInvalidValue, "FieldDopplerFactor wants a non-negative float32")
		}
		p.DopplerFactor = v
	case FieldMinDistance:
		v, ok := value.(float32)
		if !ok || v < 0 {
			return newErr("Set", KindInvalidValue, "FieldMinDistance wants a non-negative float32")
		}
		p.MinDistance = v
	case FieldMaxDistance:
		v, ok := value.(float32)
		if !ok || v <= p.MinDistance {
			return newErr("Set", KindInvalidValue, "FieldMaxDistance wants a float32 greater than MinDistance")
		}
		p.MaxDistance = v
	case FieldRolloff:
		v, ok := value.(float32)
		if !ok {
			return newErr("Set", KindInvalidValue, "FieldRolloff wants float32")
		}
		p.Rolloff = v
	case FieldAttenuation:
		v, ok := value.(AttenuationModel)
		if !ok {
			return newErr("Set", KindInvalidValue, "FieldAttenuation wants AttenuationModel")
		}
		p.Attenuation = v
	case FieldVolume:
		v, ok := value.(float32)
		if !ok {
			return newErr("Set", KindInvalidValue, "FieldVolume wants float32")
		}
		p.Volume = v
	default:
		return newErr("Set", KindInvalidField, "Plane has no field %v", field)
	}
	return nil
}

func (p *Plane) Info() Info {
	return Info{Name: "plane_mixer", Description: "Mixes multiple sources while simulating a 2D plane."}
}
