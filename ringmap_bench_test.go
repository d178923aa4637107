package ringmap

import (
	"fmt"
	"testing"
)

var (
	benchDataSmall [8]string
	benchData      [128]string
	benchDataLarge [128 << 10]string
)

func init() {
	for i := range benchDataSmall {
		benchDataSmall[i] = fmt.Sprintf("%b", i)
	}
	for i := range benchData {
		benchData[i] = fmt.Sprintf("%b", i)
	}
	for i := range benchDataLarge {
		benchDataLarge[i] = fmt.Sprintf("%b", i)
	}
}

func benchHashes() map[string]HashFunc[string] {
	return map[string]HashFunc[string]{
		"string":  StringHash[string](DefaultCapacity),
		"sdbm":    SDBMHash[string](DefaultCapacity),
		"murmur3": Murmur3Hash[string](DefaultCapacity),
		"xxhash":  XXHash[string](DefaultCapacity),
	}
}

func BenchmarkMapFindSmall(b *testing.B) {
	benchmarkMapFind(b, benchDataSmall[:])
}

func BenchmarkMapFind(b *testing.B) {
	benchmarkMapFind(b, benchData[:])
}

func BenchmarkMapFindLarge(b *testing.B) {
	benchmarkMapFind(b, benchDataLarge[:])
}

func benchmarkMapFind(b *testing.B, data []string) {
	for name, hash := range benchHashes() {
		b.Run(name, func(b *testing.B) {
			b.ReportAllocs()
			m := New[string, int](hash)
			for i := range data {
				m.Insert(data[i], i)
			}
			b.ResetTimer()
			i := 0
			for n := 0; n < b.N; n++ {
				_ = m.Find(data[i])
				i++
				if i >= len(data) {
					i = 0
				}
			}
		})
	}
}

func BenchmarkMapInsertErase(b *testing.B) {
	benchmarkMapInsertErase(b, benchData[:])
}

func BenchmarkMapInsertEraseLarge(b *testing.B) {
	benchmarkMapInsertErase(b, benchDataLarge[:])
}

func benchmarkMapInsertErase(b *testing.B, data []string) {
	b.ReportAllocs()
	m := New[string, int](StringHash[string](DefaultCapacity), WithPresize(len(data)))
	b.ResetTimer()
	i := 0
	for n := 0; n < b.N; n++ {
		it, _ := m.Insert(data[i], i)
		if n%2 == 1 {
			m.Erase(it)
		}
		i++
		if i >= len(data) {
			i = 0
		}
	}
}

func BenchmarkMapIndex(b *testing.B) {
	b.ReportAllocs()
	m := New[string, int](StringHash[string](DefaultCapacity))
	b.ResetTimer()
	i := 0
	for n := 0; n < b.N; n++ {
		*m.Index(benchData[i])++
		i++
		if i >= len(benchData) {
			i = 0
		}
	}
}

func BenchmarkMapRange(b *testing.B) {
	for _, size := range []int{100, 10_000} {
		b.Run(fmt.Sprintf("size_%d", size), func(b *testing.B) {
			b.ReportAllocs()
			m := New[string, int](StringHash[string](DefaultCapacity))
			for i := 0; i < size; i++ {
				m.Insert(benchDataLarge[i], i)
			}
			b.ResetTimer()
			for n := 0; n < b.N; n++ {
				sum := 0
				m.Range(func(_ string, v int) bool {
					sum += v
					return true
				})
			}
		})
	}
}

func BenchmarkMapClone(b *testing.B) {
	b.ReportAllocs()
	m := New[string, int](StringHash[string](DefaultCapacity))
	for i := range benchData {
		m.Insert(benchData[i], i)
	}
	b.ResetTimer()
	for n := 0; n < b.N; n++ {
		_ = m.Clone()
	}
}
