package recur

import (
	"iter"
	"math/bits"
	"strconv"
	"strings"
)

// guardBit is set in every constructed Set, so a non-empty set never has the
// same representation as the zero value.
const guardBit = uint64(1) << 63

// Set is a non-empty set of values from domain D packed into one word.
// Domains used with Set have at most 63 members.
//
// The zero value is not a valid set; it is what an absent qualifier looks like.
type Set[D Domain] struct {
	bits uint64
}

// newSet builds a Set from values, ignoring duplicates.
func newSet[D Domain](values []int) (Set[D], error) {
	var d D
	var payload uint64
	for _, v := range values {
		i, ok := indexOf[D](v)
		if !ok {
			return Set[D]{}, &OutOfRangeError{Value: v, Domain: d.Name()}
		}
		payload |= 1 << uint(i)
	}
	if payload == 0 {
		return Set[D]{}, &EmptySetError{Domain: d.Name()}
	}
	return Set[D]{bits: payload | guardBit}, nil
}

// Contains reports whether v is a member of the set.
func (s Set[D]) Contains(v int) bool {
	i, ok := indexOf[D](v)
	if !ok {
		return false
	}
	return s.bits&(1<<uint(i)) != 0
}

// Len returns the number of members.
func (s Set[D]) Len() int {
	return bits.OnesCount64(s.bits &^ guardBit)
}

// IsZero reports whether s is the zero value rather than a constructed set.
func (s Set[D]) IsZero() bool {
	return s.bits == 0
}

// Values yields the members in ascending order.
func (s Set[D]) Values() iter.Seq[int] {
	return func(yield func(int) bool) {
		payload := s.bits &^ guardBit
		for payload != 0 {
			i := bits.TrailingZeros64(payload)
			if !yield(valueAt[D](i)) {
				return
			}
			payload &= payload - 1
		}
	}
}

// Slice returns the members in ascending order.
func (s Set[D]) Slice() []int {
	out := make([]int, 0, s.Len())
	for v := range s.Values() {
		out = append(out, v)
	}
	return out
}

// String renders the members as a comma separated list.
func (s Set[D]) String() string {
	return joinValues(s.Values())
}

func joinValues(values iter.Seq[int]) string {
	var sb strings.Builder
	for v := range values {
		if sb.Len() > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(strconv.Itoa(v))
	}
	return sb.String()
}
