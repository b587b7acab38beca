package metrics

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"pet-pulse/internal/model"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestCollectorCounters(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	c.RecordFetched(model.KindSocial, 30)
	c.RecordFetched(model.KindSocial, 5)
	c.RecordFetched(model.KindNews, 4)
	c.RecordAccepted(model.KindSocial, 12)
	c.RecordFetchFailure("r/cats")

	if got := testutil.ToFloat64(c.fetched.WithLabelValues("reddit")); got != 35 {
		t.Errorf("fetched reddit = %v, want 35", got)
	}
	if got := testutil.ToFloat64(c.fetched.WithLabelValues("news")); got != 4 {
		t.Errorf("fetched news = %v, want 4", got)
	}
	if got := testutil.ToFloat64(c.accepted.WithLabelValues("reddit")); got != 12 {
		t.Errorf("accepted = %v, want 12", got)
	}
	if got := testutil.ToFloat64(c.fetchFail.WithLabelValues("r/cats")); got != 1 {
		t.Errorf("fetch failures = %v, want 1", got)
	}
}

func TestCollectorRunAndHistograms(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	c.ObserveRanked([]model.Item{
		{TrendingScore: 3.9, RelevanceScore: 1},
		{TrendingScore: 0.5, RelevanceScore: 0.3},
	})
	finished := time.Unix(1750000000, 0)
	c.RecordRun(finished, 1500*time.Millisecond)

	if got := testutil.ToFloat64(c.lastRun); got != 1750000000 {
		t.Errorf("last run = %v", got)
	}
	if got := testutil.ToFloat64(c.runDuration); got != 1.5 {
		t.Errorf("duration = %v", got)
	}
	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}
	for _, f := range families {
		if f.GetName() == "petpulse_trending_score" {
			if n := f.GetMetric()[0].GetHistogram().GetSampleCount(); n != 2 {
				t.Errorf("trending samples = %d, want 2", n)
			}
			return
		}
	}
	t.Fatalf("trending histogram not gathered")
}

func TestWriteTextfile(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)
	c.RecordFetched(model.KindNews, 3)

	path := filepath.Join(t.TempDir(), "petpulse.prom")
	if err := WriteTextfile(path, reg); err != nil {
		t.Fatalf("WriteTextfile: %v", err)
	}
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !strings.Contains(string(b), `petpulse_items_fetched_total{kind="news"} 3`) {
		t.Errorf("textfile missing fetched counter:\n%s", b)
	}
}
