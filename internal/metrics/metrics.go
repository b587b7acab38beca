// Package metrics records pipeline counters with Prometheus. Runs are
// batch jobs, so the registry is exported to a node-exporter textfile
// rather than scraped.
package metrics

import (
	"fmt"
	"time"

	"pet-pulse/internal/model"

	"github.com/prometheus/client_golang/prometheus"
)

// Recorder is the metrics surface used by fetchers and the pipeline.
type Recorder interface {
	RecordFetched(kind model.Kind, count int)
	RecordFetchFailure(source string)
	RecordAccepted(kind model.Kind, count int)
	ObserveRanked(items []model.Item)
	RecordRun(finished time.Time, duration time.Duration)
}

// Collector is the Prometheus-backed Recorder.
type Collector struct {
	fetched     *prometheus.CounterVec
	fetchFail   *prometheus.CounterVec
	accepted    *prometheus.CounterVec
	trending    prometheus.Histogram
	relevance   prometheus.Histogram
	lastRun     prometheus.Gauge
	runDuration prometheus.Gauge
}

// NewCollector creates a Collector and registers it with reg.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		fetched: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "petpulse_items_fetched_total",
			Help: "Items fetched from upstream sources",
		}, []string{"kind"}),
		fetchFail: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "petpulse_fetch_fail_total",
			Help: "Failed fetches per source",
		}, []string{"source"}),
		accepted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "petpulse_items_accepted_total",
			Help: "Items that passed the relevance filter",
		}, []string{"kind"}),
		trending: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "petpulse_trending_score",
			Help:    "Trending scores of ranked items",
			Buckets: []float64{0.5, 1, 2, 3, 4, 5, 6, 8},
		}),
		relevance: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "petpulse_relevance_score",
			Help:    "Relevance scores of ranked items",
			Buckets: []float64{0.15, 0.3, 0.5, 0.7, 0.9, 1},
		}),
		lastRun: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "petpulse_last_run_timestamp_seconds",
			Help: "Unix time the last pipeline run finished",
		}),
		runDuration: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "petpulse_last_run_duration_seconds",
			Help: "Wall time of the last pipeline run",
		}),
	}
	reg.MustRegister(
		c.fetched,
		c.fetchFail,
		c.accepted,
		c.trending,
		c.relevance,
		c.lastRun,
		c.runDuration,
	)
	return c
}

func (c *Collector) RecordFetched(kind model.Kind, count int) {
	c.fetched.WithLabelValues(string(kind)).Add(float64(count))
}

func (c *Collector) RecordFetchFailure(source string) {
	c.fetchFail.WithLabelValues(source).Inc()
}

func (c *Collector) RecordAccepted(kind model.Kind, count int) {
	c.accepted.WithLabelValues(string(kind)).Add(float64(count))
}

// ObserveRanked records the score distribution of a ranked stream.
func (c *Collector) ObserveRanked(items []model.Item) {
	for _, it := range items {
		c.trending.Observe(it.TrendingScore)
		c.relevance.Observe(it.RelevanceScore)
	}
}

func (c *Collector) RecordRun(finished time.Time, duration time.Duration) {
	c.lastRun.Set(float64(finished.Unix()))
	c.runDuration.Set(duration.Seconds())
}

// WriteTextfile writes every metric in g to path in the text exposition
// format. The write is atomic.
func WriteTextfile(path string, g prometheus.Gatherer) error {
	if err := prometheus.WriteToTextfile(path, g); err != nil {
		return fmt.Errorf("write metrics textfile: %w", err)
	}
	return nil
}

// Nop discards everything.
type Nop struct{}

func (Nop) RecordFetched(model.Kind, int) {}
func (Nop) RecordFetchFailure(string) {}
func (Nop) RecordAccepted(model.Kind, int) {}
func (Nop) ObserveRanked([]model.Item) {}
func (Nop) RecordRun(time.Time, time.Duration) {}
