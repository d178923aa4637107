// Package ringmap provides a hash map with a fixed bucket table whose
// entries are also linked on a ring, giving deterministic traversal order
// (newest first) and O(1) erase through iterators.
package ringmap

import (
	"slices"

	"github.com/cockroachdb/errors"
	"github.com/hashicorp/go-hclog"
)

// maxCapacity bounds the bucket table so bucket indices fit a uint32.
const maxCapacity = 1 << 30

// Map is a hash map that also threads every entry on a traversal ring.
//
// Lookups go through a fixed-capacity bucket table of doubly-linked
// collision chains. Iteration follows the ring, which always yields the
// most recently inserted entry first. Both structures link the same nodes,
// so erasing through an iterator is O(1) and never invalidates iterators
// (or value pointers) to other entries.
//
// Key features:
//   - Fixed bucket table chosen at construction; no rehashing
//   - Pluggable hash and equality (see Hasher, HashFunc and the stock hashes)
//   - Insert never overwrites; Index and Store upsert
//   - Generation-checked iterators: using an iterator to an erased entry
//     panics instead of corrupting the map
//   - Deep copy with Clone
//
// A Map is not safe for concurrent use and must not be copied after first
// use; use Clone instead. A Map must be created with New, NewWithEqual or
// NewWithHasher: the zero Map has no hash function, and every operation
// on it except Size, IsZero, Capacity and End panics with an error
// matching ErrContractViolation.
type Map[K comparable, V any] struct {
	_ noCopy

	hasher  Hasher[K]
	buckets bucketIndex
	nodes   arena[K, V]
	size    int
	maxSize int // WithMaxSize, 0 is unbounded
	logger  hclog.Logger
}

// MapConfig defines configurable Map options.
type MapConfig struct {
	capacity int
	maxSize  int
	sizeHint int
	logger   hclog.Logger
}

// WithCapacity sets the number of buckets. The table never grows, so the
// hash function must return values in [0, capacity).
// Defaults to DefaultCapacity.
func WithCapacity(capacity int) func(*MapConfig) {
	return func(c *MapConfig) {
		c.capacity = capacity
	}
}

// WithMaxSize limits the number of entries. Inserting into a full map
// fails with ErrMapFull and leaves the map unchanged. Zero or negative
// means no limit.
func WithMaxSize(maxSize int) func(*MapConfig) {
	return func(c *MapConfig) {
		c.maxSize = maxSize
	}
}

// WithPresize reserves node storage for sizeHint entries up front.
func WithPresize(sizeHint int) func(*MapConfig) {
	return func(c *MapConfig) {
		c.sizeHint = sizeHint
	}
}

// WithLogger sets the logger used for diagnostics. The default discards
// everything.
func WithLogger(logger hclog.Logger) func(*MapConfig) {
	return func(c *MapConfig) {
		c.logger = logger
	}
}

// New creates a Map that hashes keys with hash and compares them with ==.
func New[K comparable, V any](
	hash HashFunc[K],
	options ...func(*MapConfig),
) *Map[K, V] {
	return NewWithEqual[K, V](hash, nil, options...)
}

// NewWithEqual creates a Map with custom hashing and key equality.
//
// Parameters:
//   - hash: required, must return values in [0, capacity)
//   - equal: nil uses ==; otherwise equal keys must hash alike
//   - WithCapacity, WithMaxSize, WithPresize, WithLogger options
func NewWithEqual[K comparable, V any](
	hash HashFunc[K],
	equal KeyEqualFunc[K],
	options ...func(*MapConfig),
) *Map[K, V] {
	if hash == nil {
		panic(contractViolation("ringmap: nil hash function"))
	}
	return NewWithHasher[K, V](funcHasher[K]{hash: hash, equal: equal}, options...)
}

// NewWithHasher creates a Map parameterized by a Hasher implementation.
func NewWithHasher[K comparable, V any](
	hasher Hasher[K],
	options ...func(*MapConfig),
) *Map[K, V] {
	if hasher == nil {
		panic(contractViolation("ringmap: nil hasher"))
	}
	c := &MapConfig{
		capacity: DefaultCapacity,
	}
	for _, o := range options {
		o(c)
	}
	checkCapacity(c.capacity)
	if c.logger == nil {
		c.logger = hclog.NewNullLogger()
	}

	m := &Map[K, V]{
		hasher:  hasher,
		buckets: make(bucketIndex, c.capacity),
		nodes:   newArena[K, V](max(c.sizeHint, 0)),
		maxSize: max(c.maxSize, 0),
		logger:  c.logger.Named("ringmap"),
	}
	m.logger.Debug("map created", "capacity", c.capacity, "max_size", m.maxSize)
	return m
}

// Insert adds key with value if key is absent.
// It returns an iterator to the entry holding key and whether an insertion
// was made. An existing entry is never overwritten.
//
// Insert panics with ErrMapFull when WithMaxSize is exceeded; use TryInsert
// to get the error instead.
func (m *Map[K, V]) Insert(key K, value V) (Iterator[K, V], bool) {
	it, inserted, err := m.TryInsert(key, value)
	if err != nil {
		panic(err)
	}
	return it, inserted
}

// TryInsert is Insert returning ErrMapFull instead of panicking.
// On error the map is unchanged.
func (m *Map[K, V]) TryInsert(key K, value V) (Iterator[K, V], bool, error) {
	b := m.bucketOf(key)
	if slot := m.locate(b, key); slot != sentinel {
		return m.iter(slot), false, nil
	}
	slot, err := m.add(b, key, value)
	if err != nil {
		return m.End(), false, err
	}
	return m.iter(slot), true, nil
}

// add allocates a node for an absent key and links it into both
// structures. The capacity check runs before anything is touched.
func (m *Map[K, V]) add(b uint32, key K, value V) (uint32, error) {
	if m.maxSize > 0 && m.size >= m.maxSize {
		m.logger.Warn("insert rejected", "size", m.size, "max_size", m.maxSize)
		return sentinel, errors.Wrapf(ErrMapFull, "holding %d entries", m.size)
	}
	slot := m.nodes.alloc()
	n := m.nodes.at(slot)
	n.key = key
	n.value = value
	m.linkIntoBucket(slot, b)
	m.spliceIntoRing(sentinel, slot)
	m.size++
	return slot, nil
}

// Find returns an iterator to the entry for key, or End if there is none.
func (m *Map[K, V]) Find(key K) Iterator[K, V] {
	return m.iter(m.locate(m.bucketOf(key), key))
}

// Load returns the value stored for key.
func (m *Map[K, V]) Load(key K) (value V, ok bool) {
	if slot := m.locate(m.bucketOf(key), key); slot != sentinel {
		return m.nodes.at(slot).value, true
	}
	return
}

// Index returns a pointer to the value for key, inserting the zero value
// first if key is absent. The pointer stays valid until the entry is
// erased.
//
// Index panics with ErrMapFull when an insertion is needed and WithMaxSize
// is exceeded.
func (m *Map[K, V]) Index(key K) *V {
	b := m.bucketOf(key)
	slot := m.locate(b, key)
	if slot == sentinel {
		var err error
		if slot, err = m.add(b, key, *new(V)); err != nil {
			panic(err)
		}
	}
	return &m.nodes.at(slot).value
}

// Store sets the value for key, inserting it if absent. An existing entry
// keeps its position in traversal order.
func (m *Map[K, V]) Store(key K, value V) {
	*m.Index(key) = value
}

// Erase removes the entry it points to and returns an iterator to its
// successor in traversal order (End if it was the last entry).
// Erasing End is a no-op that returns End.
func (m *Map[K, V]) Erase(it Iterator[K, V]) Iterator[K, V] {
	slot := m.checkIter(it)
	if slot == sentinel {
		return it
	}
	return m.iter(m.remove(slot))
}

// EraseRange removes every entry in [first, last) in traversal order and
// returns last. last may be End. The range is verified before anything is
// removed: last must be reachable from first without passing End.
func (m *Map[K, V]) EraseRange(first, last Iterator[K, V]) Iterator[K, V] {
	from, to := m.checkIter(first), m.checkIter(last)
	for slot := from; slot != to; slot = m.nodes.at(slot).ringNext {
		if slot == sentinel {
			m.violate("ringmap: erase range end is not reachable from its start")
		}
	}
	for slot := from; slot != to; {
		slot = m.remove(slot)
	}
	return last
}

// EraseKey removes the entry for key and returns the number of entries
// removed, 0 or 1.
func (m *Map[K, V]) EraseKey(key K) int {
	slot := m.locate(m.bucketOf(key), key)
	if slot == sentinel {
		return 0
	}
	m.remove(slot)
	return 1
}

// remove unlinks slot from its chain and the ring, frees it and returns
// the ring successor.
func (m *Map[K, V]) remove(slot uint32) uint32 {
	m.unlinkFromBucket(slot)
	next := m.unlinkFromRing(slot)
	m.nodes.release(slot)
	m.size--
	return next
}

// Clear removes all entries in O(Size()). Every outstanding iterator
// except End becomes invalid.
func (m *Map[K, V]) Clear() {
	m.checkInit()
	s := m.nodes.at(sentinel)
	for slot := s.ringNext; slot != sentinel; {
		n := m.nodes.at(slot)
		next := n.ringNext
		m.buckets[n.bucket] = sentinel
		m.nodes.release(slot)
		slot = next
	}
	s.ringNext, s.ringPrev = sentinel, sentinel
	m.logger.Debug("map cleared", "removed", m.size)
	m.size = 0
}

// Size returns the number of entries. This is an O(1) operation.
func (m *Map[K, V]) Size() int {
	return m.size
}

// IsZero reports whether the map holds no entries.
func (m *Map[K, V]) IsZero() bool {
	return m.size == 0
}

// Count returns the number of entries with key, 0 or 1.
func (m *Map[K, V]) Count(key K) int {
	if m.HasKey(key) {
		return 1
	}
	return 0
}

// HasKey to check if the key exist
func (m *Map[K, V]) HasKey(key K) bool {
	return m.locate(m.bucketOf(key), key) != sentinel
}

// Capacity returns the fixed number of buckets.
func (m *Map[K, V]) Capacity() int {
	return len(m.buckets)
}

// Begin returns an iterator to the first entry, which is the most recently
// inserted one, or End if the map is empty.
func (m *Map[K, V]) Begin() Iterator[K, V] {
	m.checkInit()
	return m.iter(m.nodes.at(sentinel).ringNext)
}

// Last returns an iterator to the oldest entry, or End if the map is empty.
func (m *Map[K, V]) Last() Iterator[K, V] {
	m.checkInit()
	return m.iter(m.nodes.at(sentinel).ringPrev)
}

// End returns the past-the-end iterator.
func (m *Map[K, V]) End() Iterator[K, V] {
	return Iterator[K, V]{m: m, slot: sentinel}
}

// Clone creates a deep copy of the map.
//
// Notes:
//   - The clone shares no entries with m: mutating one never affects the other.
//   - Traversal order, hash function and options are preserved.
//   - Iterators of m are not valid for the clone.
func (m *Map[K, V]) Clone() *Map[K, V] {
	m.checkInit()
	c := &Map[K, V]{
		hasher:  m.hasher,
		buckets: slices.Clone(m.buckets),
		nodes:   m.nodes.clone(),
		size:    m.size,
		maxSize: m.maxSize,
		logger:  m.logger,
	}
	m.logger.Debug("map cloned", "size", m.size)
	return c
}

// noCopy may be added to structs which must not be copied
// after the first use. See go vet's copylocks check.
type noCopy struct{}

func (*noCopy) Lock()   {}
func (*noCopy) Unlock() {}
