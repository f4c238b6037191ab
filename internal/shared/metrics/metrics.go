package metrics

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"sync/atomic"

	"github.com/gin-gonic/gin"
)

var (
	classificationStartedTotal   atomic.Uint64
	classificationCompletedTotal atomic.Uint64
	classificationDegradedTotal  atomic.Uint64
	classificationFailedTotal    atomic.Uint64

	classificationDuration = newHistogram([]float64{100, 250, 500, 1000, 2000, 5000, 10000, 30000, 60000})
)

// IncClassificationStarted increments the started counter.
func IncClassificationStarted() {
	classificationStartedTotal.Add(1)
}

// IncClassificationCompleted increments the completed counter.
func IncClassificationCompleted() {
	classificationCompletedTotal.Add(1)
}

// IncClassificationDegraded increments the degraded counter. A degraded run
// still completes, but at least one stage took its fallback path.
func IncClassificationDegraded() {
	classificationDegradedTotal.Add(1)
}

// IncClassificationFailed increments the failed counter.
func IncClassificationFailed() {
	classificationFailedTotal.Add(1)
}

// ObserveClassificationDurationMs records a pipeline duration in milliseconds.
func ObserveClassificationDurationMs(value float64) {
	if value < 0 {
		value = 0
	}
	classificationDuration.Observe(value)
}

// Handler exposes metrics in Prometheus text format.
func Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Content-Type", "text/plain; version=0.0.4")
		c.String(http.StatusOK, Render())
	}
}

// Render renders metrics in Prometheus text format.
func Render() string {
	var buf bytes.Buffer
	writeCounter(&buf, "classification_started_total", "Total classifications started", classificationStartedTotal.Load())
	writeCounter(&buf, "classification_completed_total", "Total classifications completed", classificationCompletedTotal.Load())
	writeCounter(&buf, "classification_degraded_total", "Total classifications completed via a fallback path", classificationDegradedTotal.Load())
	writeCounter(&buf, "classification_failed_total", "Total classifications failed", classificationFailedTotal.Load())
	writeHistogram(&buf, "classification_duration_ms", "Classification pipeline duration in milliseconds", classificationDuration.Snapshot())
	return buf.String()
}

type histogram struct {
	mu      sync.Mutex
	buckets []float64
	counts  []uint64
	sum     float64
	count   uint64
}

type histogramSnapshot struct {
	buckets []float64
	counts  []uint64
	sum     float64
	count   uint64
}

func newHistogram(buckets []float64) *histogram {
	return &histogram{
		buckets: buckets,
		counts:  make([]uint64, len(buckets)+1),
	}
}

func (h *histogram) Observe(value float64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	idx := len(h.buckets)
	for i, bound := range h.buckets {
		if value <= bound {
			idx = i
			break
		}
	}
	h.counts[idx]++
	h.sum += value
	h.count++
}

func (h *histogram) Snapshot() histogramSnapshot {
	h.mu.Lock()
	defer h.mu.Unlock()
	counts := make([]uint64, len(h.counts))
	copy(counts, h.counts)
	return histogramSnapshot{
		buckets: h.buckets,
		counts:  counts,
		sum:     h.sum,
		count:   h.count,
	}
}

func writeCounter(buf *bytes.Buffer, name, help string, value uint64) {
	fmt.Fprintf(buf, "# HELP %s %s\n", name, help)
	fmt.Fprintf(buf, "# TYPE %s counter\n", name)
	fmt.Fprintf(buf, "%s %d\n", name, value)
}

func writeHistogram(buf *bytes.Buffer, name, help string, snap histogramSnapshot) {
	fmt.Fprintf(buf, "# HELP %s %s\n", name, help)
	fmt.Fprintf(buf, "# TYPE %s histogram\n", name)
	var cumulative uint64
	for i, bound := range snap.buckets {
		cumulative += snap.counts[i]
		fmt.Fprintf(buf, "%s_bucket{le=%q} %d\n", name, strconv.FormatFloat(bound, 'f', -1, 64), cumulative)
	}
	cumulative += snap.counts[len(snap.buckets)]
	fmt.Fprintf(buf, "%s_bucket{le=\"+Inf\"} %d\n", name, cumulative)
	fmt.Fprintf(buf, "%s_sum %s\n", name, strconv.FormatFloat(snap.sum, 'f', -1, 64))
	fmt.Fprintf(buf, "%s_count %d\n", name, snap.count)
}
