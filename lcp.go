package suffixindex

import "golang.org/x/exp/constraints"

// ISA returns the inverse suffix array: ISA[SA[i]] = i.
func ISA[I constraints.Signed](sa []I) []I {
	isa := make([]I, len(sa))
	for i, p := range sa {
		isa[p] = I(i)
	}
	return isa
}

// LCPNaive builds the LCP array by comparing each pair of neighbouring
// suffixes character by character. O(n^2) in the worst case; it serves
// as the oracle for the linear algorithms and is fine for small inputs.
//
// For every LCP builder, lcp[0] is 0 and lcp[i] is the length of the
// longest common prefix of the suffixes at sa[i-1] and sa[i].
func LCPNaive[I constraints.Signed](text []byte, sa []I) []I {
	lcp := make([]I, len(sa))
	for i := 1; i < len(sa); i++ {
		a, b := int(sa[i-1]), int(sa[i])
		k := 0
		for a+k < len(text) && b+k < len(text) && text[a+k] == text[b+k] {
			k++
		}
		lcp[i] = I(k)
	}
	return lcp
}

// LCPKasai builds the LCP array with Kasai's algorithm: walk the text
// positions in order, reusing all but one character of the previous
// match. O(n) amortized.
func LCPKasai[I constraints.Signed](text []byte, sa []I) []I {
	isa := ISA(sa)
	lcp := make([]I, len(sa))
	l := 0
	for i := range sa {
		k := int(isa[i])
		if k == 0 {
			l = 0
			continue
		}
		j := int(sa[k-1])
		for i+l < len(text) && j+l < len(text) && text[i+l] == text[j+l] {
			l++
		}
		lcp[k] = I(l)
		if l > 0 {
			l--
		}
	}
	return lcp
}

// LCPPhi builds the LCP array through the Phi array: Phi[i] is the text
// position of the suffix preceding the suffix at i in sorted order.
// Match lengths are computed in text order (so the running length only
// ever drops by one) and gathered back into suffix-array order. O(n).
func LCPPhi[I constraints.Signed](text []byte, sa []I) []I {
	n := len(sa)
	lcp := make([]I, n)
	if n == 0 {
		return lcp
	}
	phi := make([]I, n)
	phi[sa[0]] = sa[n-1] // wrap-around; its length is discarded below
	for i := 1; i < n; i++ {
		phi[sa[i]] = sa[i-1]
	}
	l := 0
	for i := 0; i < n; i++ {
		j := int(phi[i])
		for i+l < n && j+l < n && text[i+l] == text[j+l] {
			l++
		}
		phi[i] = I(l)
		if l > 0 {
			l--
		}
	}
	for i := 1; i < n; i++ {
		lcp[i] = phi[sa[i]]
	}
	return lcp
}
