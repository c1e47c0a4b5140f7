package corobus

// table is a bus's dynamically sized, reuse-on-reopen vector of channel
// slots. Grounded on runtime/proc.go's allgadd (a grow-only table of *g,
// appended to as goroutines are created) combined with the "reuse the
// lowest free index" idiom runtime/mheap.go applies to free spans: unlike
// allgadd, table.open actively scans for a hole before growing.
type table struct {
	slots []*channel
}

// open places ch in the first empty (nil) slot, scanning low to high, or
// appends a fresh slot if none is free. It returns the chosen descriptor,
// always non-negative.
func (t *table) open(ch *channel) int {
	for i, slot := range t.slots {
		if slot == nil {
			t.slots[i] = ch
			return i
		}
	}
	t.slots = append(t.slots, ch)
	return len(t.slots) - 1
}

// get bounds-checks desc and returns the slot's contents, which may be
// nil if the slot is empty or desc never referred to a channel.
func (t *table) get(desc int) *channel {
	if desc < 0 || desc >= len(t.slots) {
		return nil
	}
	return t.slots[desc]
}

// close removes the channel at desc from its slot. A no-op if desc is out
// of range or already empty.
func (t *table) close(desc int) {
	if desc < 0 || desc >= len(t.slots) {
		return
	}
	t.slots[desc] = nil
}

// each calls fn for every occupied slot, in ascending descriptor order.
// Used by TryBroadcast's two scans (check-all, then commit-all).
func (t *table) each(fn func(desc int, ch *channel)) {
	for i, slot := range t.slots {
		if slot != nil {
			fn(i, slot)
		}
	}
}
