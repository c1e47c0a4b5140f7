package corobus

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTableOpenReusesLowestFreeSlot(t *testing.T) {
	var tb table
	d0 := tb.open(newChannel(1))
	d1 := tb.open(newChannel(1))
	d2 := tb.open(newChannel(1))
	assert.Equal(t, 0, d0)
	assert.Equal(t, 1, d1)
	assert.Equal(t, 2, d2)

	tb.close(d1)
	reused := tb.open(newChannel(1))
	assert.Equal(t, d1, reused)
}

func TestTableGetOutOfRange(t *testing.T) {
	var tb table
	assert.Nil(t, tb.get(-1))
	assert.Nil(t, tb.get(0))
	tb.open(newChannel(1))
	assert.NotNil(t, tb.get(0))
	assert.Nil(t, tb.get(1))
}

func TestTableCloseToleratesStaleDescriptor(t *testing.T) {
	var tb table
	assert.NotPanics(t, func() {
		tb.close(-1)
		tb.close(0)
		tb.close(99)
	})
}

func TestTableEachVisitsOccupiedSlotsInOrder(t *testing.T) {
	var tb table
	tb.open(newChannel(1))
	d1 := tb.open(newChannel(1))
	tb.close(d1)
	tb.open(newChannel(1)) // reuses slot d1
	tb.open(newChannel(1)) // appended

	var seen []int
	tb.each(func(desc int, ch *channel) {
		seen = append(seen, desc)
	})
	assert.Equal(t, []int{0, 1, 2}, seen)
}
