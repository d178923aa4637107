package ringmap

// Equal reports whether two maps hold the same keys with equal values.
// Traversal order is ignored.
func Equal[K comparable, V comparable](a, b *Map[K, V]) bool {
	return EqualFunc(a, b, func(v1, v2 V) bool { return v1 == v2 })
}

// EqualFunc is like Equal, but compares values using eq.
// Keys are looked up in b with b's Hasher.
func EqualFunc[K comparable, V1, V2 any](a *Map[K, V1], b *Map[K, V2], eq func(V1, V2) bool) bool {
	if a.Size() != b.Size() {
		return false
	}
	equal := true
	a.Range(func(key K, v1 V1) bool {
		v2, ok := b.Load(key)
		equal = ok && eq(v1, v2)
		return equal
	})
	return equal
}

// EqualOrdered reports whether two maps hold equal entries in the same
// traversal order.
func EqualOrdered[K comparable, V comparable](a, b *Map[K, V]) bool {
	if a.Size() != b.Size() {
		return false
	}
	ia, ib := a.Begin(), b.Begin()
	for !ia.IsEnd() {
		ka, va := ia.Entry()
		kb, vb := ib.Entry()
		if !a.hasher.Equal(ka, kb) || va != vb {
			return false
		}
		ia, ib = ia.Next(), ib.Next()
	}
	return true
}
