package mixed

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestChainRunsMembersInOrder(t *testing.T) {
	c := NewChain()
	a := NewNullProcessor()
	b := NewNullProcessor()
	c.Add(a)
	c.Add(b)

	in := NewBuffer(8)
	mid := NewBuffer(8)
	out := NewBuffer(8)

	assert.NoError(t, a.SetIn(0, in))
	assert.NoError(t, a.SetOut(0, mid))
	assert.NoError(t, b.SetIn(0, mid))
	assert.NoError(t, b.SetOut(0, out))

	assert.NoError(t, c.Start())

	w := in.RequestWrite(4)
	copy(w, []float32{1, 2, 3, 4})
	in.FinishWrite(4)

	assert.NoError(t, c.Mix(4))
	got := out.RequestRead(4)
	assert.Equal(t, []float32{1, 2, 3, 4}, got)
}

func TestChainBypassSkipsMembers(t *testing.T) {
	c := NewChain()
	c.Add(NewNullProcessor())

	in := NewBuffer(8)
	out := NewBuffer(8)
	assert.NoError(t, c.SetIn(0, in))
	assert.NoError(t, c.SetOut(0, out))
	assert.NoError(t, c.Set(FieldBypass, true))

	w := in.RequestWrite(2)
	copy(w, []float32{9, 8})
	in.FinishWrite(2)

	assert.NoError(t, c.Mix(2))
	got := out.RequestRead(2)
	assert.Equal(t, []float32{9, 8}, got)
}
