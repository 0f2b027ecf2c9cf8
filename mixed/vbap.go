package mixed

import (
	"math"

	"github.com/golang/geo/r3"
	"gonum.org/v1/gonum/mat"
)

// vbapSet is one triangulated speaker base: the (2 or 3) channels
// that bound a region of the sound field, and the inverse of the
// matrix formed by their direction vectors, precomputed once so that
// ComputeGains only needs a matrix-vector multiply.
type vbapSet struct {
	speakers []int
	invMat   *mat.Dense // dims x dims
}

// VBAP implements vector-base amplitude panning: given a sound
// direction, it distributes gain across the 2 (planar) or 3
// (spatial) nearest speakers that bracket that direction so their
// combined perceived image sits exactly at the requested position,
// at constant total power.
type VBAP struct {
	dims      int
	positions []r3.Vector
	sets      []vbapSet
}

// NewVBAP builds a VBAP panner for an arbitrary arrangement of
// speakers. dims must be 2 (speakers and pan targets confined to the
// X/Z plane) or 3 (full spatial speaker array).
func NewVBAP(positions []r3.Vector, dims int) (*VBAP, error) {
	if dims != 2 && dims != 3 {
		return nil, newErr("NewVBAP", KindInvalidValue, "dims must be 2 or 3")
	}
	if len(positions) < dims {
		return nil, newErr("NewVBAP", KindInvalidValue, "need at least %d speakers", dims)
	}
	v := &VBAP{dims: dims, positions: positions}
	if dims == 2 {
		v.buildPairwiseSets()
	} else {
		v.buildTriangulatedSets()
	}
	if len(v.sets) == 0 {
		return nil, newErr("NewVBAP", KindMixingFailed, "no invertible speaker sets found")
	}
	return v, nil
}

// NewVBAPFromChannelCount builds a panner using the standard speaker
// layout for a given channel count (e.g. 6 for 5.1 surround).
func NewVBAPFromChannelCount(channels int) (*VBAP, error) {
	locations, err := DefaultChannelConfiguration(channels)
	if err != nil {
		return nil, err
	}
	return NewVBAPFromConfiguration(locations)
}

// NewVBAPFromConfiguration builds a panner from an explicit list of
// named speaker locations, using their default positions. The panner is
// planar (dims 2) when every position lies in the X/Z plane, and
// spatial (dims 3) otherwise.
func NewVBAPFromConfiguration(locations []Location) (*VBAP, error) {
	positions := make([]r3.Vector, 0, len(locations))
	dims := 2
	for _, loc := range locations {
		pos, err := DefaultSpeakerPosition(loc)
		if err != nil {
			return nil, err
		}
		if pos.Y != 0 {
			dims = 3
		}
		positions = append(positions, pos)
	}
	return NewVBAP(positions, dims)
}

func (v *VBAP) buildPairwiseSets() {
	n := len(v.positions)
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		a, b := v.positions[i], v.positions[j]
		m := mat.NewDense(2, 2, []float64{a.X, b.X, a.Z, b.Z})
		inv := mat.NewDense(2, 2, nil)
		if err := inv.Inverse(m); err != nil {
			continue
		}
		v.sets = append(v.sets, vbapSet{speakers: []int{i, j}, invMat: inv})
	}
}

// buildTriangulatedSets forms a speaker-fan triangulation anchored at
// speaker 0: every pair of the remaining speakers forms a
// triplet with speaker 0. This covers star-convex speaker
// arrangements (the common case for surround rigs) without requiring
// a full 3D convex hull solve.
func (v *VBAP) buildTriangulatedSets() {
	n := len(v.positions)
	for i := 1; i < n-1; i++ {
		for j := i + 1; j < n; j++ {
			speakers := []int{0, i, j}
			m := mat.NewDense(3, 3, nil)
			for col, s := range speakers {
				p := v.positions[s]
				m.Set(0, col, p.X)
				m.Set(1, col, p.Y)
				m.Set(2, col, p.Z)
			}
			inv := mat.NewDense(3, 3, nil)
			if err := inv.Inverse(m); err != nil {
				continue
			}
			v.sets = append(v.sets, vbapSet{speakers: speakers, invMat: inv})
		}
	}
}

const vbapGainEpsilon = -1e-4

// ComputeGains finds the speaker set that brackets direction and
// returns the per-speaker gains (normalized to constant power) needed
// to image a source there. direction need not be normalized.
func (v *VBAP) ComputeGains(direction r3.Vector) ([]int, []float32, error) {
	var pos mat.Vector
	if v.dims == 2 {
		pos = mat.NewVecDense(2, []float64{direction.X, direction.Z})
	} else {
		pos = mat.NewVecDense(3, []float64{direction.X, direction.Y, direction.Z})
	}

	for _, set := range v.sets {
		var g mat.VecDense
		g.MulVec(set.invMat, pos)

		ok := true
		for i := 0; i < g.Len(); i++ {
			if g.AtVec(i) < vbapGainEpsilon {
				ok = false
				break
			}
		}
		if !ok {
			continue
		}

		gains := make([]float32, g.Len())
		sumSq := 0.0
		for i := range gains {
			gv := math.Max(0, g.AtVec(i))
			gains[i] = float32(gv)
			sumSq += gv * gv
		}
		if sumSq > 0 {
			scale := float32(1.0 / math.Sqrt(sumSq))
			for i := range gains {
				gains[i] *= scale
			}
		}
		return append([]int{}, set.speakers...), gains, nil
	}

	return nil, nil, newErr("ComputeGains", KindMixingFailed, "direction is not bracketed by any speaker set")
}

// SpeakerCount reports how many speakers this panner was built with.
func (v *VBAP) SpeakerCount() int { return len(v.positions) }
