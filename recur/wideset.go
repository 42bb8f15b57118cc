package recur

import (
	"iter"
	"math/bits"
)

const wideWords = 12

// WideSet is the multi-word counterpart of Set for domains with more than
// 63 members (week numbers, year days and set positions). The top bit of the
// last word is the guard bit.
type WideSet[D Domain] struct {
	words [wideWords]uint64
}

func newWideSet[D Domain](values []int) (WideSet[D], error) {
	var d D
	var s WideSet[D]
	for _, v := range values {
		i, ok := indexOf[D](v)
		if !ok {
			return WideSet[D]{}, &OutOfRangeError{Value: v, Domain: d.Name()}
		}
		s.words[i/64] |= 1 << uint(i%64)
	}
	if s.Len() == 0 {
		return WideSet[D]{}, &EmptySetError{Domain: d.Name()}
	}
	s.words[wideWords-1] |= guardBit
	return s, nil
}

// Contains reports whether v is a member of the set.
func (s WideSet[D]) Contains(v int) bool {
	i, ok := indexOf[D](v)
	if !ok {
		return false
	}
	return s.words[i/64]&(1<<uint(i%64)) != 0
}

// Len returns the number of members.
func (s WideSet[D]) Len() int {
	n := 0
	for i, w := range s.words {
		if i == wideWords-1 {
			w &^= guardBit
		}
		n += bits.OnesCount64(w)
	}
	return n
}

// IsZero reports whether s is the zero value rather than a constructed set.
func (s WideSet[D]) IsZero() bool {
	return s.words[wideWords-1]&guardBit == 0
}

// Values yields the members in ascending order.
func (s WideSet[D]) Values() iter.Seq[int] {
	return func(yield func(int) bool) {
		for wi, w := range s.words {
			if wi == wideWords-1 {
				w &^= guardBit
			}
			for w != 0 {
				i := wi*64 + bits.TrailingZeros64(w)
				if !yield(valueAt[D](i)) {
					return
				}
				w &= w - 1
			}
		}
	}
}

// Slice returns the members in ascending order.
func (s WideSet[D]) Slice() []int {
	out := make([]int, 0, s.Len())
	for v := range s.Values() {
		out = append(out, v)
	}
	return out
}

// String renders the members as a comma separated list.
func (s WideSet[D]) String() string {
	return joinValues(s.Values())
}
