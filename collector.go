package ringmap

import (
	"github.com/prometheus/client_golang/prometheus"
)

// StatsSource is anything that reports MapStats, typically a *Map.
type StatsSource interface {
	Stats() *MapStats
}

// StatsCollector exports MapStats as Prometheus gauges. Stats are taken on
// every scrape, so the source must not be mutated concurrently with
// Collect: register the collector with a registry that is gathered from
// the goroutine owning the map, or guard both with the same lock.
type StatsCollector struct {
	src StatsSource

	size         *prometheus.Desc
	buckets      *prometheus.Desc
	emptyBuckets *prometheus.Desc
	maxChainLen  *prometheus.Desc
	loadFactor   *prometheus.Desc
	freeSlots    *prometheus.Desc
	storageBytes *prometheus.Desc
}

var _ prometheus.Collector = (*StatsCollector)(nil)

// NewStatsCollector creates a collector for src. Metric names are
// prefixed with namespace and "ringmap"; constLabels tell several maps
// apart.
func NewStatsCollector(namespace string, constLabels prometheus.Labels, src StatsSource) *StatsCollector {
	desc := func(name, help string) *prometheus.Desc {
		return prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "ringmap", name), help, nil, constLabels)
	}
	return &StatsCollector{
		src:          src,
		size:         desc("entries", "Number of entries in the map."),
		buckets:      desc("buckets", "Fixed capacity of the bucket table."),
		emptyBuckets: desc("empty_buckets", "Number of buckets holding no entries."),
		maxChainLen:  desc("max_chain_length", "Length of the longest collision chain."),
		loadFactor:   desc("load_factor", "Entries per bucket."),
		freeSlots:    desc("free_slots", "Released node slots awaiting reuse."),
		storageBytes: desc("storage_bytes", "Approximate bytes held by node storage."),
	}
}

// Describe implements prometheus.Collector.
func (c *StatsCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.size
	ch <- c.buckets
	ch <- c.emptyBuckets
	ch <- c.maxChainLen
	ch <- c.loadFactor
	ch <- c.freeSlots
	ch <- c.storageBytes
}

// Collect implements prometheus.Collector.
func (c *StatsCollector) Collect(ch chan<- prometheus.Metric) {
	s := c.src.Stats()
	gauge := func(d *prometheus.Desc, v float64) {
		ch <- prometheus.MustNewConstMetric(d, prometheus.GaugeValue, v)
	}
	gauge(c.size, float64(s.Counter))
	gauge(c.buckets, float64(s.Buckets))
	gauge(c.emptyBuckets, float64(s.EmptyBuckets))
	gauge(c.maxChainLen, float64(s.MaxChainLen))
	gauge(c.loadFactor, s.LoadFactor())
	gauge(c.freeSlots, float64(s.FreeSlots))
	gauge(c.storageBytes, float64(s.StorageBytes))
}
