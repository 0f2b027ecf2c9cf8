package mixed

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBufferWriteReadRoundTrips(t *testing.T) {
	b := NewBuffer(8)
	w := b.RequestWrite(4)
	assert.Len(t, w, 4)
	copy(w, []float32{0.1, -0.2, 0.3, -0.4})
	b.FinishWrite(4)

	assert.Equal(t, 4, b.Available())
	got := b.RequestRead(4)
	assert.Equal(t, []float32{0.1, -0.2, 0.3, -0.4}, got)
	b.FinishRead(4)
	assert.Equal(t, 0, b.Available())
}

func TestBufferBindVirtualSharesStorageIndependentCursors(t *testing.T) {
	source := NewBuffer(8)
	w := source.RequestWrite(4)
	copy(w, []float32{1, 2, 3, 4})
	source.FinishWrite(4)

	var v1, v2 Buffer
	v1.bindVirtual(source)
	v2.bindVirtual(source)

	assert.True(t, v1.IsVirtual())
	assert.Equal(t, 4, v1.Available())
	assert.Equal(t, 4, v2.Available())

	got1 := v1.RequestRead(2)
	v1.FinishRead(len(got1))
	assert.Equal(t, 2, v1.Available())
	// v2 is unaffected by v1's independent read progress.
	assert.Equal(t, 4, v2.Available())
}
