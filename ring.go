package ringmap

// spliceIntoRing links slot immediately after anchor.
func (m *Map[K, V]) spliceIntoRing(anchor, slot uint32) {
	a := m.nodes.at(anchor)
	n := m.nodes.at(slot)
	n.ringPrev = anchor
	n.ringNext = a.ringNext
	m.nodes.at(a.ringNext).ringPrev = slot
	a.ringNext = slot
}

// unlinkFromRing removes slot from the ring and returns its successor.
func (m *Map[K, V]) unlinkFromRing(slot uint32) uint32 {
	if slot == sentinel {
		m.violate("ringmap: unlink of the ring sentinel")
	}
	n := m.nodes.at(slot)
	next := n.ringNext
	m.nodes.at(n.ringPrev).ringNext = next
	m.nodes.at(next).ringPrev = n.ringPrev
	n.ringNext, n.ringPrev = sentinel, sentinel
	return next
}
