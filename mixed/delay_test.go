package mixed

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDelayOutputsSilenceThenDelayedSamples(t *testing.T) {
	d := NewDelay(0, 4) // ceil(0*4)=0 -> clamped to line length 1
	d.line = make([]float32, 2)
	d.index = 0

	in := NewBuffer(4)
	out := NewBuffer(4)
	assert.NoError(t, d.SetIn(0, in))
	assert.NoError(t, d.SetOut(0, out))

	w := in.RequestWrite(4)
	copy(w, []float32{1, 2, 3, 4})
	in.FinishWrite(4)

	assert.NoError(t, d.Mix(4))
	got := out.RequestRead(4)
	assert.Equal(t, []float32{0, 0, 1, 2}, got)
}

func TestDelayBypassCopiesDirectly(t *testing.T) {
	d := NewDelay(0.01, 100)
	assert.NoError(t, d.Set(FieldBypass, true))

	in := NewBuffer(4)
	out := NewBuffer(4)
	assert.NoError(t, d.SetIn(0, in))
	assert.NoError(t, d.SetOut(0, out))

	w := in.RequestWrite(4)
	copy(w, []float32{1, 2, 3, 4})
	in.FinishWrite(4)

	assert.NoError(t, d.Mix(4))
	got := out.RequestRead(4)
	assert.Equal(t, []float32{1, 2, 3, 4}, got)
}

func TestRepeatRecordsThenPlaysBack(t *testing.T) {
	r := NewRepeat(0, 4)
	r.line = make([]float32, 4)
	r.index = 0

	in := NewBuffer(8)
	out := NewBuffer(8)
	assert.NoError(t, r.SetIn(0, in))
	assert.NoError(t, r.SetOut(0, out))

	w := in.RequestWrite(4)
	copy(w, []float32{1, 2, 3, 4})
	in.FinishWrite(4)
	assert.NoError(t, r.Mix(4))
	recorded := out.RequestRead(4)
	assert.Equal(t, []float32{1, 2, 3, 4}, recorded)
	out.FinishRead(len(recorded))

	assert.NoError(t, r.Set(FieldRepeatMode, RepeatPlay))
	assert.NoError(t, r.Mix(4))
	played := out.RequestRead(4)
	assert.Equal(t, []float32{1, 2, 3, 4}, played)
}
