package ringmap

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStringHash_MatchesRotateXor(t *testing.T) {
	h := StringHash[string](65535)
	// h=len=2; 'a': 64^97 = 33; 'b': 1056^98 = 1090
	assert.Equal(t, 1090, h("ab"))
	assert.Equal(t, 0, h(""))
}

func TestStringHash_SignExtendsHighBytes(t *testing.T) {
	h := StringHash[string](65535)
	// h=1; 32 ^ 0xffffffff = 0xffffffdf, and 0xffffffff % 65535 == 0
	assert.Equal(t, 65535-32, h("\xff"))
	assert.NotEqual(t, 32^0xff, h("\xff"))
}

func TestSDBMHash_Known(t *testing.T) {
	h := SDBMHash[string](1 << 30)
	// 'a' = 97 -> 97
	assert.Equal(t, 97, h("a"))
	// "ab" -> 98 + (97<<6) + (97<<16) - 97
	assert.Equal(t, 98+(97<<6)+(97<<16)-97, h("ab"))
}

func TestHashes_StayInRange(t *testing.T) {
	type named struct {
		name string
		hash func(capacity int) HashFunc[string]
	}
	hashes := []named{
		{"string", StringHash[string]},
		{"sdbm", SDBMHash[string]},
		{"murmur3", Murmur3Hash[string]},
		{"xxhash", XXHash[string]},
	}
	for _, tc := range hashes {
		for _, capacity := range []int{1, 7, 64, 65535, 65599} {
			t.Run(fmt.Sprintf("%s/%d", tc.name, capacity), func(t *testing.T) {
				h := tc.hash(capacity)
				for i := 0; i < 2000; i++ {
					k := fmt.Sprintf("key-%d", i)
					v := h(k)
					require.GreaterOrEqual(t, v, 0)
					require.Less(t, v, capacity)
					require.Equal(t, v, h(k), "hash must be deterministic")
				}
			})
		}
	}
}

func TestIntegerHash_Spreads(t *testing.T) {
	const capacity = 64
	h := IntegerHash[uint16](capacity)
	used := map[int]bool{}
	for i := uint16(0); i < 1000; i++ {
		v := h(i)
		require.GreaterOrEqual(t, v, 0)
		require.Less(t, v, capacity)
		used[v] = true
	}
	assert.Greater(t, len(used), capacity/2, "sequential keys should spread")

	neg := IntegerHash[int8](capacity)
	for i := -128; i < 128; i++ {
		v := neg(int8(i))
		require.GreaterOrEqual(t, v, 0)
		require.Less(t, v, capacity)
	}
}

func TestHashes_UsableAsMapHash(t *testing.T) {
	type key string
	m := New[key, int](Murmur3Hash[key](101), WithCapacity(101))
	x := New[key, int](XXHash[key](101), WithCapacity(101))
	for i := 0; i < 500; i++ {
		m.Insert(key(fmt.Sprint(i)), i)
		x.Insert(key(fmt.Sprint(i)), i)
	}
	require.NoError(t, m.Validate())
	require.NoError(t, x.Validate())
	assert.True(t, Equal(m, x))
}

func TestHashes_RejectBadCapacity(t *testing.T) {
	for _, capacity := range []int{0, -1, maxCapacity + 1} {
		assert.Panics(t, func() { StringHash[string](capacity) })
		assert.Panics(t, func() { IntegerHash[int](capacity) })
	}
}
