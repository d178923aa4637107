package ringmap

import (
	"github.com/cespare/xxhash/v2"
	"github.com/spaolacci/murmur3"
	"golang.org/x/exp/constraints"
)

// DefaultCapacity is the bucket table capacity used when WithCapacity is
// not given.
const DefaultCapacity = 65535

// hashPrime is the 64-bit Golden Ratio mixing constant.
const hashPrime = 0x9E3779B185EBCA87

// HashFunc maps a key to a bucket index. It must be deterministic and
// return a value in [0, capacity) for every key it is ever given.
type HashFunc[K any] func(key K) int

// KeyEqualFunc reports whether two keys are the same key. It must agree with
// the HashFunc it is paired with: equal keys hash to the same index.
type KeyEqualFunc[K any] func(a, b K) bool

// Hasher is the key capability a Map is parameterized by.
type Hasher[K any] interface {
	Hash(key K) int
	Equal(a, b K) bool
}

type funcHasher[K comparable] struct {
	hash  HashFunc[K]
	equal KeyEqualFunc[K]
}

func (h funcHasher[K]) Hash(key K) int { return h.hash(key) }

func (h funcHasher[K]) Equal(a, b K) bool {
	if h.equal == nil {
		return a == b
	}
	return h.equal(a, b)
}

// StringHash returns the rotate-xor string hash: the hash starts at the
// key length and folds every byte in with h = h<<5 ^ h>>27 ^ c, where c
// is the byte read as a signed char, so bytes >= 0x80 sign-extend.
func StringHash[K ~string](capacity int) HashFunc[K] {
	checkCapacity(capacity)
	return func(key K) int {
		h := uint32(len(key))
		for i := 0; i < len(key); i++ {
			h = (h << 5) ^ (h >> 27) ^ uint32(int8(key[i]))
		}
		return int(h % uint32(capacity))
	}
}

// SDBMHash returns the sdbm string hash reduced modulo capacity.
func SDBMHash[K ~string](capacity int) HashFunc[K] {
	checkCapacity(capacity)
	return func(key K) int {
		var h uint64
		for i := 0; i < len(key); i++ {
			h = uint64(key[i]) + (h << 6) + (h << 16) - h
		}
		return int(h % uint64(capacity))
	}
}

// Murmur3Hash returns a MurmurHash3 (32-bit) based string hash.
func Murmur3Hash[K ~string](capacity int) HashFunc[K] {
	checkCapacity(capacity)
	return func(key K) int {
		return int(murmur3.Sum32([]byte(key)) % uint32(capacity))
	}
}

// XXHash returns an xxHash64 based string hash.
func XXHash[K ~string](capacity int) HashFunc[K] {
	checkCapacity(capacity)
	return func(key K) int {
		return int(xxhash.Sum64String(string(key)) % uint64(capacity))
	}
}

// IntegerHash returns a Fibonacci hash for integer keys. Sequential keys
// are spread across the whole table.
func IntegerHash[K constraints.Integer](capacity int) HashFunc[K] {
	checkCapacity(capacity)
	return func(key K) int {
		h := uint64(key) * hashPrime
		return int((h >> 32) % uint64(capacity))
	}
}

func checkCapacity(capacity int) {
	if capacity <= 0 || capacity > maxCapacity {
		panic(contractViolation("ringmap: capacity %d out of range (0, %d]", capacity, maxCapacity))
	}
}
