package ringmap

import (
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatsCollector(t *testing.T) {
	m := New[string, int](collidingHash, WithCapacity(4))
	for _, k := range []string{"a", "b", "c"} {
		m.Insert(k, 0)
	}
	c := NewStatsCollector("test", prometheus.Labels{"map": "sessions"}, m)

	reg := prometheus.NewPedanticRegistry()
	require.NoError(t, reg.Register(c))
	assert.Equal(t, 7, testutil.CollectAndCount(c))

	expected := `
# HELP test_ringmap_entries Number of entries in the map.
# TYPE test_ringmap_entries gauge
test_ringmap_entries{map="sessions"} 3
# HELP test_ringmap_empty_buckets Number of buckets holding no entries.
# TYPE test_ringmap_empty_buckets gauge
test_ringmap_empty_buckets{map="sessions"} 3
# HELP test_ringmap_max_chain_length Length of the longest collision chain.
# TYPE test_ringmap_max_chain_length gauge
test_ringmap_max_chain_length{map="sessions"} 3
`
	require.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected),
		"test_ringmap_entries", "test_ringmap_empty_buckets", "test_ringmap_max_chain_length"))

	m.EraseKey("b")
	m.EraseKey("c")
	expected = `
# HELP test_ringmap_entries Number of entries in the map.
# TYPE test_ringmap_entries gauge
test_ringmap_entries{map="sessions"} 1
# HELP test_ringmap_free_slots Released node slots awaiting reuse.
# TYPE test_ringmap_free_slots gauge
test_ringmap_free_slots{map="sessions"} 2
`
	require.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected),
		"test_ringmap_entries", "test_ringmap_free_slots"))
}
