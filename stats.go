package ringmap

import (
	"fmt"
	"math"
	"strings"

	"github.com/cockroachdb/errors"
)

// Stats returns statistics for the Map. It's an O(capacity + N) operation,
// so it should be used only for diagnostics or debugging purposes.
func (m *Map[K, V]) Stats() *MapStats {
	m.checkInit()
	stats := &MapStats{
		Buckets:      len(m.buckets),
		Counter:      m.size,
		Slabs:        len(m.nodes.slabs),
		Slots:        int(m.nodes.used) - 1,
		FreeSlots:    m.nodes.freeLen,
		MinChainLen:  math.MaxInt,
		StorageBytes: len(m.nodes.slabs) * int(slabLen) * nodeSize[K, V](),
	}
	for _, head := range m.buckets {
		if head == sentinel {
			stats.EmptyBuckets++
			continue
		}
		chain := 0
		for slot := head; slot != sentinel; slot = m.nodes.at(slot).chainNext {
			chain++
		}
		stats.Size += chain
		stats.MinChainLen = min(stats.MinChainLen, chain)
		stats.MaxChainLen = max(stats.MaxChainLen, chain)
	}
	if stats.MinChainLen == math.MaxInt {
		stats.MinChainLen = 0
	}
	for slot := m.nodes.at(sentinel).ringNext; slot != sentinel; slot = m.nodes.at(slot).ringNext {
		stats.RingLen++
	}
	return stats
}

// MapStats is Map statistics.
//
// Warning: map statistics are intended to be used for diagnostic
// purposes, not for production code. This means that breaking changes
// may be introduced into this struct even between minor releases.
type MapStats struct {
	// Buckets is the fixed capacity of the bucket table.
	Buckets int
	// EmptyBuckets is the number of buckets that hold no entries.
	EmptyBuckets int
	// Size is the number of entries found by walking every chain.
	Size int
	// RingLen is the number of entries found by walking the ring.
	RingLen int
	// Counter is the maintained entry counter returned by Size().
	// On a consistent map Size, RingLen and Counter are equal.
	Counter int
	// MinChainLen is the length of the shortest non-empty chain.
	MinChainLen int
	// MaxChainLen is the length of the longest chain.
	MaxChainLen int
	// Slabs is the number of node slabs allocated.
	Slabs int
	// Slots is the number of node slots ever handed out.
	Slots int
	// FreeSlots is the number of released slots awaiting reuse.
	FreeSlots int
	// StorageBytes approximates the memory held by node slabs.
	StorageBytes int
}

// LoadFactor returns entries per bucket.
func (s *MapStats) LoadFactor() float64 {
	if s.Buckets == 0 {
		return 0
	}
	return float64(s.Counter) / float64(s.Buckets)
}

// ToString returns string representation of map stats.
func (s *MapStats) ToString() string {
	var sb strings.Builder
	sb.WriteString("MapStats{\n")
	sb.WriteString(fmt.Sprintf("Buckets:      %d\n", s.Buckets))
	sb.WriteString(fmt.Sprintf("EmptyBuckets: %d\n", s.EmptyBuckets))
	sb.WriteString(fmt.Sprintf("Size:         %d\n", s.Size))
	sb.WriteString(fmt.Sprintf("RingLen:      %d\n", s.RingLen))
	sb.WriteString(fmt.Sprintf("Counter:      %d\n", s.Counter))
	sb.WriteString(fmt.Sprintf("MinChainLen:  %d\n", s.MinChainLen))
	sb.WriteString(fmt.Sprintf("MaxChainLen:  %d\n", s.MaxChainLen))
	sb.WriteString(fmt.Sprintf("Slabs:        %d\n", s.Slabs))
	sb.WriteString(fmt.Sprintf("Slots:        %d\n", s.Slots))
	sb.WriteString(fmt.Sprintf("FreeSlots:    %d\n", s.FreeSlots))
	sb.WriteString(fmt.Sprintf("StorageBytes: %d\n", s.StorageBytes))
	sb.WriteString("}\n")
	return sb.String()
}

// Validate walks the ring and every bucket chain and reports all broken
// structural invariants. A nil result means the counter, the ring and the
// chains agree, every link is mirrored by its neighbour, every entry sits
// in the bucket its key hashes to, and no key is stored twice.
func (m *Map[K, V]) Validate() error {
	m.checkInit()
	var errs error
	report := func(format string, args ...any) {
		errs = errors.CombineErrors(errs, errors.Newf(format, args...))
	}

	s := m.nodes.at(sentinel)
	ring := 0
	for prev, slot := sentinel, s.ringNext; slot != sentinel; prev, slot = slot, m.nodes.at(slot).ringNext {
		n := m.nodes.at(slot)
		if !n.live {
			report("ring slot %d is not live", slot)
			break
		}
		if n.ringPrev != prev {
			report("ring slot %d: prev link %d, want %d", slot, n.ringPrev, prev)
		}
		if ring++; ring > m.size {
			report("ring longer than size %d", m.size)
			break
		}
	}
	if ring != m.size {
		report("ring holds %d entries, size is %d", ring, m.size)
	}
	if (s.ringNext == sentinel) != (s.ringPrev == sentinel) {
		report("sentinel links disagree: next %d, prev %d", s.ringNext, s.ringPrev)
	}

	chained := 0
	for b, head := range m.buckets {
		for prev, slot := sentinel, head; slot != sentinel; prev, slot = slot, m.nodes.at(slot).chainNext {
			n := m.nodes.at(slot)
			if !n.live {
				report("bucket %d: slot %d is not live", b, slot)
				break
			}
			if n.chainPrev != prev {
				report("bucket %d: slot %d prev link %d, want %d", b, slot, n.chainPrev, prev)
			}
			if int(n.bucket) != b || m.hasher.Hash(n.key) != b {
				report("bucket %d: slot %d belongs to bucket %d", b, slot, m.hasher.Hash(n.key))
			}
			for other := n.chainNext; other != sentinel; other = m.nodes.at(other).chainNext {
				if m.hasher.Equal(n.key, m.nodes.at(other).key) {
					report("bucket %d: duplicate key %v", b, n.key)
				}
			}
			if chained++; chained > m.size {
				report("chains longer than size %d", m.size)
				return errs
			}
		}
	}
	if chained != m.size {
		report("chains hold %d entries, size is %d", chained, m.size)
	}
	return errs
}
