package ringmap

// Iterator is a position in a Map's traversal order: either an entry or
// End. Iterators are small values; compare them with Equal.
//
// An iterator stays valid until the entry it points to is erased. Using an
// invalidated iterator, the zero Iterator, or dereferencing End panics with
// an error matching ErrContractViolation.
type Iterator[K comparable, V any] struct {
	m    *Map[K, V]
	slot uint32
	gen  uint32
}

func (m *Map[K, V]) iter(slot uint32) Iterator[K, V] {
	return Iterator[K, V]{m: m, slot: slot, gen: m.nodes.at(slot).gen}
}

// checkIter validates that it belongs to m and still points to a live
// position, and returns its slot.
func (m *Map[K, V]) checkIter(it Iterator[K, V]) uint32 {
	m.checkInit()
	if it.m != m {
		m.violate("ringmap: iterator belongs to a different map")
	}
	if it.slot == sentinel {
		return sentinel
	}
	if it.slot >= m.nodes.used {
		m.violate("ringmap: iterator slot %d out of range", it.slot)
	}
	if n := m.nodes.at(it.slot); !n.live || n.gen != it.gen {
		m.violate("ringmap: iterator to an erased entry")
	}
	return it.slot
}

// node returns the entry node, panicking on End or an invalid iterator.
func (it Iterator[K, V]) node() *node[K, V] {
	if it.m == nil {
		panic(contractViolation("ringmap: use of a zero iterator"))
	}
	if it.m.checkIter(it) == sentinel {
		it.m.violate("ringmap: dereference of End")
	}
	return it.m.nodes.at(it.slot)
}

// Key returns the key of the entry.
func (it Iterator[K, V]) Key() K {
	return it.node().key
}

// Value returns the value of the entry.
func (it Iterator[K, V]) Value() V {
	return it.node().value
}

// Entry returns the key and value of the entry.
func (it Iterator[K, V]) Entry() (K, V) {
	n := it.node()
	return n.key, n.value
}

// ValuePtr returns a pointer to the stored value, valid until the entry is
// erased.
func (it Iterator[K, V]) ValuePtr() *V {
	return &it.node().value
}

// SetValue overwrites the value of the entry in place.
func (it Iterator[K, V]) SetValue(value V) {
	it.node().value = value
}

// Next returns the following position. The successor of the last entry is
// End and the successor of End is the first entry.
func (it Iterator[K, V]) Next() Iterator[K, V] {
	if it.m == nil {
		panic(contractViolation("ringmap: use of a zero iterator"))
	}
	return it.m.iter(it.m.nodes.at(it.m.checkIter(it)).ringNext)
}

// Prev returns the preceding position. The predecessor of the first entry
// is End and the predecessor of End is the last entry.
func (it Iterator[K, V]) Prev() Iterator[K, V] {
	if it.m == nil {
		panic(contractViolation("ringmap: use of a zero iterator"))
	}
	return it.m.iter(it.m.nodes.at(it.m.checkIter(it)).ringPrev)
}

// IsEnd reports whether it is the past-the-end position.
func (it Iterator[K, V]) IsEnd() bool {
	return it.m != nil && it.slot == sentinel
}

// Valid reports whether it can be used: it belongs to a map and points to
// End or to an entry that has not been erased.
func (it Iterator[K, V]) Valid() bool {
	if it.m == nil {
		return false
	}
	if it.slot == sentinel {
		return true
	}
	if it.slot >= it.m.nodes.used {
		return false
	}
	n := it.m.nodes.at(it.slot)
	return n.live && n.gen == it.gen
}

// Equal reports whether both iterators denote the same position of the
// same map.
func (it Iterator[K, V]) Equal(other Iterator[K, V]) bool {
	return it.m == other.m && it.slot == other.slot && it.gen == other.gen
}

// walk visits every entry slot from one end of the ring. After each yield
// it resumes from the visited entry if that is still live, otherwise from
// the neighbour recorded before the call. Entries erased by yield are thus
// never produced, and emptying the map ends the walk. Erasing both the
// visited entry and its recorded neighbour inside one yield loses the
// position and panics.
func (m *Map[K, V]) walk(backward bool, yield func(slot uint32) bool) {
	m.checkInit()
	step := func(n *node[K, V]) uint32 {
		if backward {
			return n.ringPrev
		}
		return n.ringNext
	}
	for slot := step(m.nodes.at(sentinel)); slot != sentinel; {
		n := m.nodes.at(slot)
		gen, next := n.gen, step(n)
		nextGen := m.nodes.at(next).gen
		if !yield(slot) {
			return
		}
		switch {
		case m.alive(slot, gen):
			slot = step(m.nodes.at(slot))
		case m.alive(next, nextGen):
			slot = next
		case m.size == 0:
			return
		default:
			m.violate("ringmap: range position lost, entry and its neighbour erased during yield")
		}
	}
}

// alive reports whether slot still holds the node generation gen.
func (m *Map[K, V]) alive(slot, gen uint32) bool {
	n := m.nodes.at(slot)
	return n.live && n.gen == gen
}

// Range calls yield for each entry in traversal order until yield returns
// false. yield may erase any entry; erased entries not yet visited are
// skipped. Entries inserted by yield go to the front and are not visited.
func (m *Map[K, V]) Range(yield func(key K, value V) bool) {
	m.walk(false, func(slot uint32) bool {
		n := m.nodes.at(slot)
		return yield(n.key, n.value)
	})
}

// RangeEntry is Range yielding iterators, in traversal order.
func (m *Map[K, V]) RangeEntry(yield func(it Iterator[K, V]) bool) {
	m.walk(false, func(slot uint32) bool {
		return yield(m.iter(slot))
	})
}

// All is the iterator version of Range, for use with range-over-func.
func (m *Map[K, V]) All() func(yield func(K, V) bool) {
	return m.Range
}

// Backward iterates from the oldest entry to the newest. Like Range it
// tolerates erasure inside the loop body; entries inserted meanwhile are
// visited last.
func (m *Map[K, V]) Backward() func(yield func(K, V) bool) {
	return func(yield func(K, V) bool) {
		m.walk(true, func(slot uint32) bool {
			n := m.nodes.at(slot)
			return yield(n.key, n.value)
		})
	}
}

// Keys is the iterator version for iterating over all keys.
func (m *Map[K, V]) Keys() func(yield func(K) bool) {
	return func(yield func(K) bool) {
		m.Range(func(key K, _ V) bool {
			return yield(key)
		})
	}
}

// Values is the iterator version for iterating over all values.
func (m *Map[K, V]) Values() func(yield func(V) bool) {
	return func(yield func(V) bool) {
		m.Range(func(_ K, value V) bool {
			return yield(value)
		})
	}
}
