package ecs

import (
	"math/bits"
	"strconv"
	"strings"
)

// MaxComponentTypes is the width of ComponentMask and therefore the maximum
// number of distinct component types a single Scene can register.
const MaxComponentTypes = 64

// ComponentMask is a fixed-width set of component ids. Bit i is set when an
// entity carries a live component whose ComponentId is i.
type ComponentMask uint64

// MaskOf builds a mask with the given component ids set.
func MaskOf(ids ...ComponentId) ComponentMask {
	var m ComponentMask
	for _, id := range ids {
		m.Set(id)
	}
	return m
}

func checkBit(i ComponentId) {
	if int(i) >= MaxComponentTypes {
		panic(violation(ErrInvalidComponentId, "bit %d >= %d", i, MaxComponentTypes))
	}
}

// Set adds component id i to the mask.
func (m *ComponentMask) Set(i ComponentId) {
	checkBit(i)
	*m |= 1 << i
}

// Unset removes component id i from the mask.
func (m *ComponentMask) Unset(i ComponentId) {
	checkBit(i)
	*m &^= 1 << i
}

// Toggle flips component id i.
func (m *ComponentMask) Toggle(i ComponentId) {
	checkBit(i)
	*m ^= 1 << i
}

// Test reports whether component id i is in the mask.
func (m ComponentMask) Test(i ComponentId) bool {
	checkBit(i)
	return m&(1<<i) != 0
}

// TestAll reports whether every bit set in other is also set in m, i.e. m is
// a superset of other. This is the query predicate.
func (m ComponentMask) TestAll(other ComponentMask) bool {
	return m&other == other
}

func (m ComponentMask) IsZero() bool {
	return m == 0
}

// Count returns the number of component ids in the mask.
func (m ComponentMask) Count() int {
	return bits.OnesCount64(uint64(m))
}

// Or returns the union of both masks.
func (m ComponentMask) Or(other ComponentMask) ComponentMask {
	return m | other
}

// Each calls fn for every set bit in ascending order.
func (m ComponentMask) Each(fn func(ComponentId)) {
	word := uint64(m)
	for word != 0 {
		bit := bits.TrailingZeros64(word)
		fn(ComponentId(bit))
		word &^= 1 << bit
	}
}

func (m ComponentMask) String() string {
	var sb strings.Builder
	sb.WriteByte('{')
	first := true
	m.Each(func(id ComponentId) {
		if !first {
			sb.WriteByte(',')
		}
		first = false
		sb.WriteString(strconv.Itoa(int(id)))
	})
	sb.WriteByte('}')
	return sb.String()
}
