package ringbuf

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBufferFIFOOrder(t *testing.T) {
	b := New(3)
	assert.True(t, b.Empty())

	b.PushBack(1)
	b.PushBack(2)
	b.PushBack(3)
	assert.True(t, b.Full())

	assert.Equal(t, uint64(1), b.PopFront())
	assert.Equal(t, uint64(2), b.PopFront())

	// Wrap around: the buffer has room again even though head != 0.
	b.PushBack(4)
	b.PushBack(5)
	assert.True(t, b.Full())

	assert.Equal(t, uint64(3), b.PopFront())
	assert.Equal(t, uint64(4), b.PopFront())
	assert.Equal(t, uint64(5), b.PopFront())
	assert.True(t, b.Empty())
}
