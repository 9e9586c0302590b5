package key

import (
	"math/bits"
	"strings"
)

// Set is a set of keys. The zero value is empty and ready to use.
// Sets are values: assignment copies.
type Set struct {
	words [2]uint64
}

// NewSet builds a set from keys. Invalid keys are dropped.
func NewSet(keys ...Key) Set {
	var s Set
	for _, k := range keys {
		s.Add(k)
	}
	return s
}

// Add inserts k. KeyUnknown and out-of-range keys are ignored.
func (s *Set) Add(k Key) {
	if !k.Valid() {
		return
	}
	s.words[k>>6] |= 1 << (k & 63)
}

// Remove deletes k.
func (s *Set) Remove(k Key) {
	if !k.Valid() {
		return
	}
	s.words[k>>6] &^= 1 << (k & 63)
}

// Has reports whether k is a member.
func (s Set) Has(k Key) bool {
	if !k.Valid() {
		return false
	}
	return s.words[k>>6]&(1<<(k&63)) != 0
}

// Len returns the number of members.
func (s Set) Len() int {
	return bits.OnesCount64(s.words[0]) + bits.OnesCount64(s.words[1])
}

// Empty reports whether the set has no members.
func (s Set) Empty() bool {
	return s.words[0] == 0 && s.words[1] == 0
}

// Clear removes every member.
func (s *Set) Clear() {
	s.words = [2]uint64{}
}

// Union returns s ∪ o.
func (s Set) Union(o Set) Set {
	return Set{words: [2]uint64{s.words[0] | o.words[0], s.words[1] | o.words[1]}}
}

// Intersect returns s ∩ o.
func (s Set) Intersect(o Set) Set {
	return Set{words: [2]uint64{s.words[0] & o.words[0], s.words[1] & o.words[1]}}
}

// Difference returns s \ o.
func (s Set) Difference(o Set) Set {
	return Set{words: [2]uint64{s.words[0] &^ o.words[0], s.words[1] &^ o.words[1]}}
}

// SubsetOf reports whether every member of s is in o.
func (s Set) SubsetOf(o Set) bool {
	return s.Difference(o).Empty()
}

// Keys returns the members in ascending order.
func (s Set) Keys() []Key {
	keys := make([]Key, 0, s.Len())
	for i, w := range s.words {
		for w != 0 {
			b := bits.TrailingZeros64(w)
			keys = append(keys, Key(i*64+b))
			w &^= 1 << b
		}
	}
	return keys
}

// String formats the set as {A, B}.
func (s Set) String() string {
	keys := s.Keys()
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = k.String()
	}
	return "{" + strings.Join(parts, ", ") + "}"
}
