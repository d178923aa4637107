package ringmap

import "unsafe"

// sentinel is the slot of the ring anchor. It never joins a bucket chain,
// so chains and bucket heads also use it as their "none" marker.
const sentinel uint32 = 0

// node is the unit of storage: one key/value pair plus its chain and ring
// links, all expressed as arena slots.
type node[K comparable, V any] struct {
	key   K
	value V

	chainNext uint32
	chainPrev uint32
	ringNext  uint32
	ringPrev  uint32

	bucket uint32 // cached hash(key); unlink never rehashes
	gen    uint32 // bumped on every release
	live   bool
}

// arena owns every node of a map. Nodes live in fixed-size slabs that are
// never reallocated, so a *V handed out by the map stays valid until the
// node is erased. Released slots are chained through chainNext on a free
// list and reused before new slabs are allocated.
type arena[K comparable, V any] struct {
	slabs    []*[slabLen]node[K, V]
	used     uint32 // slots ever handed out, sentinel included
	free     uint32 // head of the free list, sentinel when empty
	freeLen  int
	reserved int
}

func newArena[K comparable, V any](presize int) arena[K, V] {
	a := arena[K, V]{}
	a.reserve(presize + 1)
	s := a.at(a.alloc())
	s.ringNext, s.ringPrev = sentinel, sentinel
	return a
}

// reserve allocates enough slabs to hold n slots without further growth.
func (a *arena[K, V]) reserve(n int) {
	for a.reserved < n {
		a.slabs = append(a.slabs, new([slabLen]node[K, V]))
		a.reserved += int(slabLen)
	}
}

//go:nosplit
func (a *arena[K, V]) at(slot uint32) *node[K, V] {
	return &a.slabs[slot/slabLen][slot%slabLen]
}

// alloc returns a fresh, unlinked, live slot. The slot's generation is
// preserved across reuse so stale iterators stay detectable.
func (a *arena[K, V]) alloc() uint32 {
	var slot uint32
	if a.free != sentinel {
		slot = a.free
		a.free = a.at(slot).chainNext
		a.freeLen--
	} else {
		slot = a.used
		a.reserve(int(slot) + 1)
		a.used++
	}
	n := a.at(slot)
	gen := n.gen
	*n = node[K, V]{gen: gen, live: true}
	return slot
}

// release drops the node's key and value, invalidates outstanding
// iterators and pushes the slot on the free list.
func (a *arena[K, V]) release(slot uint32) {
	n := a.at(slot)
	*n = node[K, V]{gen: n.gen + 1, chainNext: a.free}
	a.free = slot
	a.freeLen++
}

// clone returns an independent copy holding equal nodes at equal slots.
func (a *arena[K, V]) clone() arena[K, V] {
	c := *a
	c.slabs = make([]*[slabLen]node[K, V], len(a.slabs))
	for i, s := range a.slabs {
		cp := *s
		c.slabs[i] = &cp
	}
	return c
}

func nodeSize[K comparable, V any]() int {
	return int(unsafe.Sizeof(node[K, V]{}))
}
