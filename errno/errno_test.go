package errno

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCodeOfMapsSentinels(t *testing.T) {
	assert.Equal(t, NoChannel, CodeOf(ErrNoChannel))
	assert.Equal(t, WouldBlock, CodeOf(ErrWouldBlock))
	assert.Equal(t, InvalidCapacity, CodeOf(ErrInvalidCapacity))
	assert.Equal(t, NotImplemented, CodeOf(ErrNotImplemented))
	assert.Equal(t, None, CodeOf(nil))
}

func TestGetSetRoundTrip(t *testing.T) {
	Set(WouldBlock)
	assert.Equal(t, WouldBlock, Get())

	SetFromError(ErrNoChannel)
	assert.Equal(t, NoChannel, Get())
}

func TestCodeStringer(t *testing.T) {
	assert.Equal(t, "NONE", None.String())
	assert.Equal(t, "NO_CHANNEL", NoChannel.String())
	assert.Equal(t, "WOULD_BLOCK", WouldBlock.String())
	assert.Equal(t, "INVALID_CAPACITY", InvalidCapacity.String())
	assert.Equal(t, "NOT_IMPLEMENTED", NotImplemented.String())
}
