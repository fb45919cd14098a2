package ecs

import "encoding/binary"

// Bits is a variable-width bitset over component or family indices. It
// grows on demand and never shrinks; a zero Bits is a valid empty set.
type Bits struct {
	words []uint64
}

func (b *Bits) ensure(word int) {
	if word < len(b.words) {
		return
	}
	grown := make([]uint64, word+1)
	copy(grown, b.words)
	b.words = grown
}

// Set marks bit i.
func (b *Bits) Set(i int) {
	b.ensure(i / 64)
	b.words[i/64] |= 1 << uint(i%64)
}

// Clear unmarks bit i.
func (b *Bits) Clear(i int) {
	if w := i / 64; w < len(b.words) {
		b.words[w] &^= 1 << uint(i%64)
	}
}

// Get reports whether bit i is set.
func (b Bits) Get(i int) bool {
	w := i / 64
	if w >= len(b.words) {
		return false
	}
	return b.words[w]&(1<<uint(i%64)) != 0
}

// IsEmpty reports whether no bit is set.
func (b Bits) IsEmpty() bool {
	for _, w := range b.words {
		if w != 0 {
			return false
		}
	}
	return true
}

// TestAll reports whether b is a superset of other (b ⊇ other).
func (b Bits) TestAll(other Bits) bool {
	for i, w := range other.words {
		if w == 0 {
			continue
		}
		if i >= len(b.words) {
			return false
		}
		if b.words[i]&w != w {
			return false
		}
	}
	return true
}

// TestAny reports whether b and other share any set bit.
func (b Bits) TestAny(other Bits) bool {
	n := len(b.words)
	if len(other.words) < n {
		n = len(other.words)
	}
	for i := 0; i < n; i++ {
		if b.words[i]&other.words[i] != 0 {
			return true
		}
	}
	return false
}

// Intersects is an alias for TestAny, matching spec.md §3 naming.
func (b Bits) Intersects(other Bits) bool { return b.TestAny(other) }

func (b Bits) trimmed() []uint64 {
	n := len(b.words)
	for n > 0 && b.words[n-1] == 0 {
		n--
	}
	return b.words[:n]
}

// Equals reports value equality, ignoring trailing all-zero words.
func (b Bits) Equals(other Bits) bool {
	a, o := b.trimmed(), other.trimmed()
	if len(a) != len(o) {
		return false
	}
	for i := range a {
		if a[i] != o[i] {
			return false
		}
	}
	return true
}

// Clone returns an independent copy.
func (b Bits) Clone() Bits {
	words := make([]uint64, len(b.words))
	copy(words, b.words)
	return Bits{words: words}
}

// key returns a comparable string suitable for use as a map key, used
// internally by the family registry to canonicalize (all, one, exclude)
// triples (spec.md §4.2).
func (b Bits) key() string {
	w := b.trimmed()
	buf := make([]byte, len(w)*8)
	for i, x := range w {
		binary.LittleEndian.PutUint64(buf[i*8:], x)
	}
	return string(buf)
}
