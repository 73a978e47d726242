// control/metrics.go
// Author: momentics <momentics@gmail.com>
//
// Prometheus collector exporting occupancy of named rings.
// Values are sampled at scrape time, so the rings pay nothing per operation.

package control

import (
	"fmt"
	"sort"
	"sync"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/momentics/hioload-ring/api"
)

// RingRegistry holds named rings and implements prometheus.Collector.
type RingRegistry struct {
	mu      sync.RWMutex
	rings   map[string]api.Sizer
	lenDesc *prometheus.Desc
	capDesc *prometheus.Desc
}

var _ prometheus.Collector = (*RingRegistry)(nil)

// NewRingRegistry creates an empty registry.
func NewRingRegistry() *RingRegistry {
	return &RingRegistry{
		rings: make(map[string]api.Sizer),
		lenDesc: prometheus.NewDesc(
			"hioload_ring_length",
			"Number of live elements currently held by the ring",
			[]string{"ring"}, nil,
		),
		capDesc: prometheus.NewDesc(
			"hioload_ring_capacity",
			"Fixed capacity of the ring",
			[]string{"ring"}, nil,
		),
	}
}

// Register adds a ring under name. The ring is sampled from the scrape
// goroutine, so only rings safe for concurrent Len (Locked, SPSC) or rings
// that are idle during scrapes should be registered.
func (r *RingRegistry) Register(name string, ring api.Sizer) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.rings[name]; ok {
		return fmt.Errorf("ring %q: %w", name, api.ErrAlreadyExists)
	}
	r.rings[name] = ring
	return nil
}

// Unregister removes a ring.
func (r *RingRegistry) Unregister(name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.rings[name]; !ok {
		return fmt.Errorf("ring %q: %w", name, api.ErrNotFound)
	}
	delete(r.rings, name)
	return nil
}

// Names returns registered ring names in sorted order.
func (r *RingRegistry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.rings))
	for name := range r.rings {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Describe implements prometheus.Collector.
func (r *RingRegistry) Describe(ch chan<- *prometheus.Desc) {
	ch <- r.lenDesc
	ch <- r.capDesc
}

// Collect implements prometheus.Collector.
func (r *RingRegistry) Collect(ch chan<- prometheus.Metric) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for name, ring := range r.rings {
		ch <- prometheus.MustNewConstMetric(r.lenDesc, prometheus.GaugeValue, float64(ring.Len()), name)
		ch <- prometheus.MustNewConstMetric(r.capDesc, prometheus.GaugeValue, float64(ring.Cap()), name)
	}
}
