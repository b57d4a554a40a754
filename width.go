package suffixindex

import (
	"errors"
	"math"
	"strconv"
	"unsafe"

	"golang.org/x/exp/constraints"
)

var ErrTextTooLong = errors.New("suffixindex: text length overflows the platform int size")

// WidthFor returns the signed index width in bits for a text of length
// n: the narrowest of 16, 32 and 64 that can hold n. Halving the index
// width halves the working set, which dominates construction memory.
func WidthFor(n int) int {
	switch {
	case n <= math.MaxInt16:
		return 16
	case n <= math.MaxInt32:
		return 32
	default:
		return 64
	}
}

// BuildSuffixArray computes the suffix array of text as []int, picking
// the internal index width from the text length. text must end with a
// unique 0x00 sentinel byte, as for SuffixArray.
func BuildSuffixArray(text []byte) ([]int, error) {
	switch WidthFor(len(text)) {
	case 16:
		return widen(SuffixArray[int16](text, nil)), nil
	case 32:
		if strconv.IntSize == 32 {
			sa := SuffixArray[int32](text, nil)
			return *(*[]int)(unsafe.Pointer(&sa)), nil
		}
		return widen(SuffixArray[int32](text, nil)), nil
	default:
		if strconv.IntSize != 64 {
			return nil, ErrTextTooLong
		}
		sa := SuffixArray[int64](text, nil)
		return *(*[]int)(unsafe.Pointer(&sa)), nil
	}
}

func widen[I constraints.Signed](sa []I) []int {
	out := make([]int, len(sa))
	for i, v := range sa {
		out[i] = int(v)
	}
	return out
}
