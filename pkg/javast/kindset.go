package javast

import "strings"

// KindSet is a bit set of node kinds. The zero value is the empty set.
type KindSet uint64

// NewKindSet returns the set containing the given kinds.
func NewKindSet(kinds ...Kind) KindSet {
	var s KindSet
	for _, k := range kinds {
		s = s.Add(k)
	}

	return s
}

// Add returns the set with the kind included.
func (s KindSet) Add(k Kind) KindSet {
	return s | 1<<k
}

// Contains reports whether the kind is in the set.
func (s KindSet) Contains(k Kind) bool {
	return s&(1<<k) != 0
}

// Union returns the set containing every kind of either set.
func (s KindSet) Union(other KindSet) KindSet {
	return s | other
}

// IsSubset reports whether every kind of s is in other.
func (s KindSet) IsSubset(other KindSet) bool {
	return s&^other == 0
}

// Equal reports whether both sets contain exactly the same kinds.
func (s KindSet) Equal(other KindSet) bool {
	return s == other
}

// IsEmpty reports whether the set contains no kinds.
func (s KindSet) IsEmpty() bool {
	return s == 0
}

// Len returns the number of kinds in the set.
func (s KindSet) Len() int {
	n := 0
	for k := Kind(0); k < kindCount; k++ {
		if s.Contains(k) {
			n++
		}
	}

	return n
}

// Kinds returns the members in declaration order.
func (s KindSet) Kinds() []Kind {
	kinds := make([]Kind, 0, s.Len())

	for k := Kind(0); k < kindCount; k++ {
		if s.Contains(k) {
			kinds = append(kinds, k)
		}
	}

	return kinds
}

// String renders the set as a comma-separated kind list.
func (s KindSet) String() string {
	var b strings.Builder

	b.WriteByte('{')

	for i, k := range s.Kinds() {
		if i > 0 {
			b.WriteString(", ")
		}

		b.WriteString(k.String())
	}

	b.WriteByte('}')

	return b.String()
}
