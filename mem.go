package suffixindex

import "golang.org/x/exp/constraints"

// MemTracker tallies the bytes held by index arrays during suffix-array
// construction. Alloc and Free bracket each array's lifetime; Peak
// reports the largest footprint observed. A nil tracker records
// nothing, so accounting costs nothing when it is not wanted.
type MemTracker struct {
	cur  int64
	peak int64
}

// Alloc records an array of count elements of the given byte width.
func (m *MemTracker) Alloc(count, width int) {
	if m == nil {
		return
	}
	m.cur += int64(count) * int64(width)
	if m.cur > m.peak {
		m.peak = m.cur
	}
}

// Free records the release of an array previously passed to Alloc.
func (m *MemTracker) Free(count, width int) {
	if m == nil {
		return
	}
	m.cur -= int64(count) * int64(width)
}

// Current returns the bytes currently held.
func (m *MemTracker) Current() int64 {
	if m == nil {
		return 0
	}
	return m.cur
}

// Peak returns the largest number of bytes held at any point.
func (m *MemTracker) Peak() int64 {
	if m == nil {
		return 0
	}
	return m.peak
}

// indexWidth reports the size in bytes of the index type I.
func indexWidth[I constraints.Signed]() int {
	w := 1
	for v := I(1) << 7; v > 0; v <<= 8 {
		w++
	}
	return w
}
