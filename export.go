package ringmap

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"github.com/cockroachdb/errors"
)

// EntryOf is a key/value pair as exposed by Entries and the JSON encoding.
type EntryOf[K comparable, V any] struct {
	Key   K
	Value V
}

// Entries collects all entries in traversal order.
func (m *Map[K, V]) Entries() []EntryOf[K, V] {
	a := make([]EntryOf[K, V], 0, m.size)
	m.Range(func(key K, value V) bool {
		a = append(a, EntryOf[K, V]{Key: key, Value: value})
		return true
	})
	return a
}

// ToMap collect all entries and return a map[K]V
func (m *Map[K, V]) ToMap() map[K]V {
	return m.ToMapWithLimit(-1)
}

// ToMapWithLimit collect up to limit entries into a map[K]V, limit < 0 is no limit
func (m *Map[K, V]) ToMapWithLimit(limit int) map[K]V {
	if limit == 0 {
		return map[K]V{}
	}
	if limit < 0 {
		limit = math.MaxInt
	}
	a := make(map[K]V, min(m.size, limit))
	m.Range(func(key K, value V) bool {
		a[key] = value
		limit--
		return limit > 0
	})
	return a
}

// String implement the formatting output interface fmt.Stringer.
// Entries are listed in traversal order.
func (m *Map[K, V]) String() string {
	const limit = 1024
	var sb strings.Builder
	sb.WriteString("RingMap[")
	n := 0
	m.Range(func(key K, value V) bool {
		if n > 0 {
			sb.WriteByte(' ')
		}
		if n == limit {
			sb.WriteString("...")
			return false
		}
		fmt.Fprintf(&sb, "%v:%v", key, value)
		n++
		return true
	})
	sb.WriteByte(']')
	return sb.String()
}

var (
	jsonMarshal   func(v any) ([]byte, error)
	jsonUnmarshal func(data []byte, v any) error
)

// SetDefaultJSONMarshal sets the default JSON serialization and deserialization functions.
// If not set, the standard library is used by default.
func SetDefaultJSONMarshal(marshal func(v any) ([]byte, error), unmarshal func(data []byte, v any) error) {
	jsonMarshal, jsonUnmarshal = marshal, unmarshal
}

// MarshalJSON encodes the map as an array of {"Key":..,"Value":..}
// objects in traversal order.
func (m *Map[K, V]) MarshalJSON() ([]byte, error) {
	if jsonMarshal != nil {
		return jsonMarshal(m.Entries())
	}
	return json.Marshal(m.Entries())
}

// UnmarshalJSON inserts the decoded entries so that they traverse in the
// encoded order, ahead of any entries already present. Keys already in the
// map keep their value. The map must have been created with New.
//
// Decoding is all or nothing: when the new keys would exceed WithMaxSize
// it fails with ErrMapFull before inserting any of them.
func (m *Map[K, V]) UnmarshalJSON(data []byte) error {
	m.checkInit()
	var a []EntryOf[K, V]
	if jsonUnmarshal != nil {
		if err := jsonUnmarshal(data, &a); err != nil {
			return err
		}
	} else {
		if err := json.Unmarshal(data, &a); err != nil {
			return err
		}
	}
	if m.maxSize > 0 {
		if added := m.countAbsent(a); m.size+added > m.maxSize {
			m.logger.Warn("decode rejected", "size", m.size, "new_keys", added, "max_size", m.maxSize)
			return errors.Wrapf(ErrMapFull, "decoding %d new keys into %d of %d entries",
				added, m.size, m.maxSize)
		}
	}
	for i := len(a) - 1; i >= 0; i-- {
		if _, _, err := m.TryInsert(a[i].Key, a[i].Value); err != nil {
			return err
		}
	}
	return nil
}

// countAbsent returns how many distinct keys of a are not in m, using m's
// own hashing and equality.
func (m *Map[K, V]) countAbsent(a []EntryOf[K, V]) int {
	seen := NewWithHasher[K, struct{}](m.hasher, WithCapacity(len(m.buckets)), WithPresize(len(a)))
	for _, e := range a {
		if !m.HasKey(e.Key) {
			seen.Insert(e.Key, struct{}{})
		}
	}
	return seen.Size()
}
