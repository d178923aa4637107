package ringmap

// bucketIndex is the fixed-capacity table of collision chain heads.
// A head of sentinel marks an empty bucket.
type bucketIndex []uint32

// bucketOf hashes key and checks the result against the table capacity.
func (m *Map[K, V]) bucketOf(key K) uint32 {
	m.checkInit()
	h := m.hasher.Hash(key)
	if h < 0 || h >= len(m.buckets) {
		m.violate("ringmap: hash %d out of range [0, %d)", h, len(m.buckets))
	}
	return uint32(h)
}

// locate walks the chain of bucket b for key and returns the matching slot
// or sentinel.
func (m *Map[K, V]) locate(b uint32, key K) uint32 {
	for slot := m.buckets[b]; slot != sentinel; {
		n := m.nodes.at(slot)
		if m.hasher.Equal(n.key, key) {
			return slot
		}
		slot = n.chainNext
	}
	return sentinel
}

// linkIntoBucket pushes slot at the head of the chain for bucket b.
// The caller has already verified that the key is absent.
func (m *Map[K, V]) linkIntoBucket(slot, b uint32) {
	n := m.nodes.at(slot)
	head := m.buckets[b]
	n.bucket = b
	n.chainPrev = sentinel
	n.chainNext = head
	if head != sentinel {
		m.nodes.at(head).chainPrev = slot
	}
	m.buckets[b] = slot
}

// unlinkFromBucket removes slot from its chain using only its own links.
func (m *Map[K, V]) unlinkFromBucket(slot uint32) {
	n := m.nodes.at(slot)
	if n.chainPrev == sentinel {
		m.buckets[n.bucket] = n.chainNext
	} else {
		m.nodes.at(n.chainPrev).chainNext = n.chainNext
	}
	if n.chainNext != sentinel {
		m.nodes.at(n.chainNext).chainPrev = n.chainPrev
	}
	n.chainNext, n.chainPrev = sentinel, sentinel
}
