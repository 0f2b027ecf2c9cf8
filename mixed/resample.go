package mixed

import "gonum.org/v1/gonum/interp"

// ResampleMethod selects the interpolation kernel used when converting
// between sample rates or stretching a signal in time.
type ResampleMethod int

const (
	ResampleNearest ResampleMethod = iota
	ResampleLinear
	ResampleCubic
)

func resampleClamp(lo, x, hi int) int {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

// ResampleNearestInto fills out with in resampled from inRate to
// outRate using nearest-neighbor lookup.
func ResampleNearestInto(in []float32, inRate int, out []float32, outRate int) {
	for o := range out {
		i := (o * inRate) / outRate
		i = resampleClamp(0, i, len(in)-1)
		out[o] = in[i]
	}
}

// ResampleLinearInto fills out with in resampled from inRate to
// outRate using linear interpolation between adjacent samples.
func ResampleLinearInto(in []float32, inRate int, out []float32, outRate int) {
	if len(in) < 2 {
		ResampleNearestInto(in, inRate, out, outRate)
		return
	}
	ratio := float32(inRate) / float32(outRate)
	pos := float32(0)
	for o := range out {
		ii := resampleClamp(0, int(pos), len(in)-2)
		t := pos - float32(ii)
		out[o] = in[ii] + (in[ii+1]-in[ii])*t
		pos += ratio
	}
}

// ResampleCubicInto fills out with in resampled from inRate to
// outRate using an Akima spline fit over the whole input, falling back
// to a hand-rolled cubic Hermite (the reference algorithm's primitive
// four-point kernel) when the input is too short for Akima's minimum
// support of five points.
func ResampleCubicInto(in []float32, inRate int, out []float32, outRate int) {
	if len(in) < 5 {
		resampleCubicHermiteInto(in, inRate, out, outRate)
		return
	}

	xs := make([]float64, len(in))
	ys := make([]float64, len(in))
	for i, v := range in {
		xs[i] = float64(i)
		ys[i] = float64(v)
	}
	var spline interp.AkimaSpline
	if err := spline.Fit(xs, ys); err != nil {
		resampleCubicHermiteInto(in, inRate, out, outRate)
		return
	}

	last := float64(len(in) - 1)
	for o := range out {
		p := float64(o*inRate) / float64(outRate)
		if p < 0 {
			p = 0
		}
		if p > last {
			p = last
		}
		out[o] = float32(spline.Predict(p))
	}
}

// resampleCubicHermiteInto is the reference library's own primitive
// cubic Hermite spline through the four samples surrounding each
// output position.
func resampleCubicHermiteInto(in []float32, inRate int, out []float32, outRate int) {
	if len(in) < 2 {
		ResampleNearestInto(in, inRate, out, outRate)
		return
	}
	last := len(in) - 1
	for o := range out {
		p := float32(o*inRate) / float32(outRate)
		i := int(p)
		t := p - float32(i)

		a := in[resampleClamp(0, i-1, last)]
		b := in[resampleClamp(0, i+0, last)]
		c := in[resampleClamp(0, i+1, last)]
		d := in[resampleClamp(0, i+2, last)]

		ca := -a/2.0 + (3.0*b)/2.0 - (3.0*c)/2.0 + d/2.0
		cb := a - (5.0*b)/2.0 + 2.0*c - d/2.0
		cc := -a/2.0 + c/2.0
		cd := b

		out[o] = ca*t*t*t + cb*t*t + cc*t + cd
	}
}

// Resample writes len(out) resampled frames into out from in, using
// method to choose the interpolation kernel.
func Resample(method ResampleMethod, in []float32, inRate int, out []float32, outRate int) {
	switch method {
	case ResampleLinear:
		ResampleLinearInto(in, inRate, out, outRate)
	case ResampleCubic:
		ResampleCubicInto(in, inRate, out, outRate)
	default:
		ResampleNearestInto(in, inRate, out, outRate)
	}
}
