package mixed

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDistributeFansOutWithoutCopying(t *testing.T) {
	in := NewBuffer(16)
	d := NewDistribute()
	assert.NoError(t, d.SetIn(0, in))

	var outA, outB Buffer
	assert.NoError(t, d.SetOut(0, &outA))
	assert.NoError(t, d.SetOut(1, &outB))
	assert.True(t, outA.IsVirtual())
	assert.True(t, outB.IsVirtual())

	w := in.RequestWrite(4)
	copy(w, []float32{1, 2, 3, 4})
	in.FinishWrite(4)

	assert.NoError(t, d.Start())
	assert.NoError(t, d.Mix(4))

	assert.Equal(t, 4, outA.Available())
	assert.Equal(t, 4, outB.Available())

	// Consumer A reads 2, consumer B reads all 4: the shared input
	// should only advance by the slower consumer's progress (2) on the
	// next Mix tick, not by B's 4.
	gotA := outA.RequestRead(2)
	outA.FinishRead(len(gotA))
	gotB := outB.RequestRead(4)
	outB.FinishRead(len(gotB))

	assert.NoError(t, d.Mix(0))
	assert.Equal(t, 2, in.Available())
}

func TestDistributeRejectsAlreadyVirtualOutput(t *testing.T) {
	in := NewBuffer(8)
	d := NewDistribute()
	assert.NoError(t, d.SetIn(0, in))

	var out Buffer
	out.bindVirtual(in)
	err := d.SetOut(0, &out)
	assert.Error(t, err)
	kind, _ := KindOf(err)
	assert.Equal(t, KindBufferAllocated, kind)
}
