package suffixindex

import (
	"bytes"
	"math/rand"
	"sort"
	"testing"

	"github.com/stretchr/testify/require"
)

// naiveSA sorts the suffixes directly. Oracle for small inputs.
func naiveSA(text []byte) []int {
	sa := make([]int, len(text))
	for i := range sa {
		sa[i] = i
	}
	sort.Slice(sa, func(a, b int) bool {
		return bytes.Compare(text[sa[a]:], text[sa[b]:]) < 0
	})
	return sa
}

// sanitize remaps interior NULs and appends the sentinel, the way the
// driver prepares raw input.
func sanitize(data []byte) []byte {
	text := make([]byte, 0, len(data)+1)
	for _, b := range data {
		if b == 0 {
			b = 0x03
		}
		text = append(text, b)
	}
	return append(text, 0)
}

func checkSuffixArray(t *testing.T, text []byte, sa []int32) {
	t.Helper()
	require.Len(t, sa, len(text))
	seen := make([]bool, len(text))
	for _, p := range sa {
		require.GreaterOrEqual(t, p, int32(0))
		require.Less(t, int(p), len(text))
		require.False(t, seen[p], "position %d appears twice", p)
		seen[p] = true
	}
	if len(sa) > 0 {
		require.EqualValues(t, len(text)-1, sa[0], "sentinel suffix must come first")
	}
	for i := 1; i < len(sa); i++ {
		require.Equal(t, -1, bytes.Compare(text[sa[i-1]:], text[sa[i]:]),
			"suffixes at sa[%d]=%d and sa[%d]=%d out of order", i-1, sa[i-1], i, sa[i])
	}
}

func TestSuffixArrayMississippi(t *testing.T) {
	text := []byte("mississippi\x00")
	sa := SuffixArray[int32](text, nil)
	require.Equal(t, []int32{11, 10, 7, 4, 1, 0, 9, 8, 6, 3, 5, 2}, sa)
}

func TestSuffixArrayAbracadabra(t *testing.T) {
	text := []byte("abracadabra\x00")
	sa := SuffixArray[int32](text, nil)
	require.Equal(t, []int32{11, 10, 7, 0, 3, 5, 8, 1, 4, 6, 9, 2}, sa)
}

func TestSuffixArrayAllEqual(t *testing.T) {
	text := []byte("aaaaaa\x00")
	sa := SuffixArray[int32](text, nil)
	require.Equal(t, []int32{6, 5, 4, 3, 2, 1, 0}, sa)
}

func TestSuffixArraySentinelOnly(t *testing.T) {
	text := []byte{0}
	sa := SuffixArray[int32](text, nil)
	require.Equal(t, []int32{0}, sa)
}

func TestSuffixArrayEmpty(t *testing.T) {
	require.Empty(t, SuffixArray[int32](nil, nil))
}

func TestSuffixArrayWidthInvariance(t *testing.T) {
	texts := [][]byte{
		[]byte("mississippi\x00"),
		[]byte("abracadabra\x00"),
		[]byte("aaaaaa\x00"),
		[]byte("banana\x00"),
		sanitize(bytes.Repeat([]byte("ab"), 300)),
	}
	for _, text := range texts {
		sa16 := SuffixArray[int16](text, nil)
		sa32 := SuffixArray[int32](text, nil)
		sa64 := SuffixArray[int64](text, nil)
		require.Equal(t, widen(sa16), widen(sa32), "16 vs 32 bit on %q", text)
		require.Equal(t, widen(sa32), widen(sa64), "32 vs 64 bit on %q", text)
	}
}

func TestSuffixArrayWidthOverflowPanics(t *testing.T) {
	text := sanitize(make([]byte, 1<<15))
	require.Panics(t, func() { SuffixArray[int16](text, nil) })
}

func TestSuffixArrayRandom(t *testing.T) {
	r := rand.New(rand.NewSource(1))
	for trial := 0; trial < 100; trial++ {
		n := r.Intn(300) + 1
		data := make([]byte, n)
		// Small alphabets force deep recursion, large ones wide buckets.
		span := []int{1, 2, 4, 26, 255}[trial%5]
		for i := range data {
			data[i] = byte(r.Intn(span) + 1)
		}
		text := append(data, 0)
		sa := SuffixArray[int32](text, nil)
		checkSuffixArray(t, text, sa)
		require.Equal(t, naiveSA(text), widen(sa), "input %q", text)
	}
}

func TestSuffixArrayTwoLetterStress(t *testing.T) {
	text := append(bytes.Repeat([]byte("ab"), 50000), 0)
	n := len(text)
	sa := SuffixArray[int32](text, nil)

	// The order is fully known: the sentinel, then the "a" suffixes
	// shortest first, then the "b" suffixes shortest first.
	expected := make([]int32, 0, n)
	expected = append(expected, int32(n-1))
	for p := n - 3; p >= 0; p -= 2 {
		expected = append(expected, int32(p))
	}
	for p := n - 2; p >= 1; p -= 2 {
		expected = append(expected, int32(p))
	}
	require.Equal(t, expected, sa)

	naive := LCPNaive(text, sa)
	kasai := LCPKasai(text, sa)
	phi := LCPPhi(text, sa)
	require.Equal(t, naive, kasai)
	require.Equal(t, naive, phi)
	for i, l := range naive {
		require.LessOrEqual(t, int(l), n-2, "lcp[%d]", i)
	}
}

func TestBuildSuffixArray(t *testing.T) {
	sa, err := BuildSuffixArray([]byte("mississippi\x00"))
	require.NoError(t, err)
	require.Equal(t, []int{11, 10, 7, 4, 1, 0, 9, 8, 6, 3, 5, 2}, sa)

	big := sanitize(bytes.Repeat([]byte("suffix"), 12000)) // past the int16 range
	sa, err = BuildSuffixArray(big)
	require.NoError(t, err)
	require.Equal(t, widen(SuffixArray[int32](big, nil)), sa)
}

func TestWidthFor(t *testing.T) {
	require.Equal(t, 16, WidthFor(1))
	require.Equal(t, 16, WidthFor(1<<15-1))
	require.Equal(t, 32, WidthFor(1<<15))
	require.Equal(t, 32, WidthFor(1<<31-1))
	require.Equal(t, 64, WidthFor(1<<31))
}

func FuzzSuffixArray(f *testing.F) {
	f.Add([]byte("mississippi"))
	f.Add([]byte("abracadabra"))
	f.Add(bytes.Repeat([]byte("ab"), 64))
	f.Add([]byte{1, 1, 2, 1, 1, 2, 1})
	f.Fuzz(func(t *testing.T, data []byte) {
		if len(data) > 4096 {
			return
		}
		text := sanitize(data)
		sa := SuffixArray[int32](text, nil)
		require.Equal(t, naiveSA(text), widen(sa))
		require.Equal(t, LCPNaive(text, sa), LCPKasai(text, sa))
		require.Equal(t, LCPNaive(text, sa), LCPPhi(text, sa))
	})
}
