// Package suffixindex builds suffix arrays and longest-common-prefix
// arrays for sentinel-terminated byte strings.
//
// The suffix array is constructed with the SA-IS induced-sorting
// algorithm in O(n) time. Three LCP constructions are provided: a naive
// pairwise scan, Kasai's algorithm and the Phi algorithm. All internal
// index arrays share one signed integer type, chosen from the input
// length (see WidthFor), so small inputs pay for small indexes.
package suffixindex

import (
	"sort"

	"golang.org/x/exp/constraints"
)

// empty marks a suffix-array slot that has not been filled yet.
const empty = -1

// SuffixArray computes the suffix array of text: the permutation of
// [0, len(text)) that lists all suffixes in lexicographic order.
//
// text must end with a single 0x00 sentinel byte that occurs nowhere
// else; the sentinel compares less than every other byte. The index
// type I must be wide enough to hold len(text).
//
// mem, if non-nil, records the working-set bytes of the construction.
func SuffixArray[I constraints.Signed](text []byte, mem *MemTracker) []I {
	if int(I(len(text))) != len(text) {
		panic("suffixindex: text length overflows index width")
	}
	return suffixArrayOf[I](text, 256, mem)
}

// suffixArrayOf builds the suffix array of text over the alphabet
// [0, sigma). It is generic over the character type so that the
// recursion can run on the renamed rank string with the same machinery.
func suffixArrayOf[I constraints.Signed, C constraints.Integer](text []C, sigma int, mem *MemTracker) []I {
	n := len(text)
	w := indexWidth[I]()
	sa := make([]I, n)
	mem.Alloc(n, w)
	if n <= 1 {
		// A lone sentinel has nothing to induce from.
		return sa
	}
	for i := range sa {
		sa[i] = empty
	}

	bounds := bucketBoundaries[I](text, sigma, mem)
	defer mem.Free(sigma+1, w)
	inserted := make([]I, sigma)
	mem.Alloc(sigma, w)
	defer mem.Free(sigma, w)

	// Classify types right to left and drop every LMS position at the
	// tail of its bucket. Position i is S-type if its character is
	// smaller than the successor's, or equal with an S-type successor;
	// an S-type position after an L-type one is LMS. The sentinel is
	// S-type and, for n > 1, always LMS. lms collects the positions
	// highest-first.
	lms := make([]I, 0, n/2)
	mem.Alloc(n/2, w)
	defer mem.Free(n/2, w)
	prev := text[n-1]
	prevIsS := true
	for i := n - 1; i >= 0; i-- {
		c := text[i]
		isS := c < prev || (prevIsS && c == prev)
		if prevIsS && !isS {
			lms = append(lms, I(i+1))
			cb := int(prev)
			inserted[cb]++
			sa[int(bounds[cb+1])-int(inserted[cb])] = I(i + 1)
		}
		prev, prevIsS = c, isS
	}

	induce(sa, inserted, text, bounds)

	// Rename the LMS substrings. After the induction the S-area of each
	// bucket (its top inserted[c] slots) holds that bucket's S-type
	// suffixes in sorted order; the LMS ones among them are those with
	// a strictly larger predecessor character. Walking them low to high
	// visits LMS substrings in sorted order, so each one either repeats
	// the previous substring exactly (reuse the rank, remember that the
	// order is not fully decided yet) or is strictly larger (next
	// rank). Two substrings are equal only if every character matches,
	// the closing LMS character included.
	numLMS := len(lms)
	ranks := make([]I, n)
	mem.Alloc(n, w)
	lmsSorted := make([]I, 0, numLMS)
	mem.Alloc(numLMS, w)
	defer mem.Free(numLMS, w)

	recursionRequired := false
	rank := I(1)
	ranks[n-1] = 1
	lmsSorted = append(lmsSorted, I(n-1))
	prevLMS, prevEnd := n-1, n-1
	for c := 1; c < sigma; c++ {
		end := int(bounds[c+1])
		for i := end - int(inserted[c]); i < end; i++ {
			p := int(sa[i])
			if p == 0 || text[p-1] <= text[p] {
				continue // S-type, but no L-type predecessor
			}
			// lms is sorted highest-first; the entry before p closes
			// the substring that starts at p.
			k := sort.Search(numLMS, func(j int) bool { return int(lms[j]) <= p })
			pEnd := int(lms[k-1])
			if pEnd-p == prevEnd-prevLMS && equalRange(text, p, prevLMS, pEnd-p) {
				recursionRequired = true
			} else {
				rank++
			}
			ranks[p] = rank
			prevLMS, prevEnd = p, pEnd
			lmsSorted = append(lmsSorted, I(p))
		}
	}

	if !recursionRequired {
		// All LMS substrings are distinct, so their induced order is
		// already the true LMS suffix order.
		mem.Free(n, w) // ranks
		reseedInduce(sa, inserted, text, bounds, lmsSorted)
		return sa
	}

	// Compact the ranks (text order) into the recursion string, with
	// its own 0 sentinel, and solve the half-size problem. The result
	// maps back to text positions through the LMS list.
	rstr := make([]I, 0, numLMS+1)
	mem.Alloc(numLMS+1, w)
	for _, rk := range ranks {
		if rk != 0 {
			rstr = append(rstr, rk)
		}
	}
	rstr = append(rstr, 0)
	mem.Free(n, w) // ranks

	order := suffixArrayOf[I, I](rstr, int(rank)+1, mem)
	// order[0] is the rank string's own sentinel; rank-string position
	// k is the k-th LMS position in text order, and lms is stored
	// highest-first.
	for k := 1; k < len(order); k++ {
		lmsSorted[k-1] = lms[numLMS-1-int(order[k])]
	}
	mem.Free(numLMS+1, w) // order
	mem.Free(numLMS+1, w) // rstr

	reseedInduce(sa, inserted, text, bounds, lmsSorted)
	return sa
}

// bucketBoundaries returns the exclusive prefix sums of the character
// histogram: bounds[c] counts the text positions holding a character
// smaller than c, so bucket c occupies sa[bounds[c]:bounds[c+1]] and
// bounds[sigma] == len(text).
func bucketBoundaries[I constraints.Signed, C constraints.Integer](text []C, sigma int, mem *MemTracker) []I {
	bounds := make([]I, sigma+1)
	mem.Alloc(sigma+1, indexWidth[I]())
	for _, c := range text {
		bounds[c]++
	}
	var sum I
	for i, count := range bounds {
		bounds[i] = sum
		sum += count
	}
	return bounds
}

// induce fills the suffix array from its seeded LMS positions with two
// bucket-respecting passes: left to right placing L-type suffixes at
// bucket heads, then right to left placing S-type suffixes at bucket
// tails. inserted is scratch space of length sigma and is clobbered.
func induce[I constraints.Signed, C constraints.Integer](sa, inserted []I, text []C, bounds []I) {
	clear(inserted)
	for i := 0; i < len(sa); i++ {
		e := sa[i]
		if e <= 0 {
			continue // empty slot, or position 0 with no predecessor
		}
		cp := text[e-1]
		// e-1 is L-type exactly when its character is >= the current
		// one: an equal character cannot belong to an S-type suffix
		// here, those are not in the array yet.
		if cp >= text[e] {
			b := int(cp)
			sa[int(bounds[b])+int(inserted[b])] = e - 1
			inserted[b]++
		}
	}

	clear(inserted)
	// Whether the suffix held at slot i is itself S-type is positional:
	// the top inserted[b] slots of bucket b are the S-area, and it only
	// ever grows downward ahead of the scan. The containing bucket b is
	// tracked by stepping down across every boundary the scan crosses,
	// runs of empty buckets included.
	entryIsS := true
	b := len(bounds) - 2
	for i := len(sa) - 1; i >= 0; i-- {
		pos := I(i + 1)
		for b > 0 && pos == bounds[b] {
			b--
			entryIsS = true
		}
		if pos == bounds[b+1]-inserted[b] {
			entryIsS = false
		}
		e := sa[i]
		if e <= 0 {
			continue
		}
		cp, ce := text[e-1], text[e]
		if cp < ce || (entryIsS && cp == ce) {
			bb := int(cp)
			inserted[bb]++
			sa[int(bounds[bb+1])-int(inserted[bb])] = e - 1
		}
	}
}

// reseedInduce clears the suffix array, re-seeds the LMS positions at
// their bucket tails in sorted order (largest at the tail of each
// bucket) and runs the final induction.
func reseedInduce[I constraints.Signed, C constraints.Integer](sa, inserted []I, text []C, bounds []I, lmsSorted []I) {
	for i := range sa {
		sa[i] = empty
	}
	clear(inserted)
	for k := len(lmsSorted) - 1; k >= 0; k-- {
		p := lmsSorted[k]
		c := int(text[p])
		inserted[c]++
		sa[int(bounds[c+1])-int(inserted[c])] = p
	}
	induce(sa, inserted, text, bounds)
}

// equalRange reports whether text[a:a+l] and text[b:b+l] match, the
// closing characters at offset l included.
func equalRange[C constraints.Integer](text []C, a, b, l int) bool {
	for k := 0; k <= l; k++ {
		if text[a+k] != text[b+k] {
			return false
		}
	}
	return true
}
