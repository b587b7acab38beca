package review

import (
	"fmt"
	"time"

	"pet-pulse/internal/model"
	"pet-pulse/internal/pipeline"
)

// Metadata describes how much of the candidate stream was approved.
type Metadata struct {
	TotalCandidates int      `json:"total_candidates"`
	ApprovedCount   int      `json:"approved_count"`
	ApprovalRate    string   `json:"approval_rate"`
	Unknown         []string `json:"unknown_keys,omitempty"`
}

// Approved is the editor-approved subset of a run.
type Approved struct {
	RunID       string         `json:"run_id"`
	Date        string         `json:"date"`
	GeneratedAt time.Time      `json:"generated_at"`
	ReviewedAt  time.Time      `json:"reviewed_at"`
	Stats       pipeline.Stats `json:"stats"`
	Summary     string         `json:"summary,omitempty"`
	Content     []model.Item   `json:"content"`
	Review      Metadata       `json:"review_metadata"`
}

// Approve keeps the candidates whose keys are in checked. Ranked order is
// kept; keys that match no candidate are reported in Review.Unknown.
func Approve(c *pipeline.Candidates, checked []string, now time.Time) Approved {
	want := make(map[string]bool, len(checked))
	for _, k := range checked {
		want[k] = false
	}
	var kept []model.Item
	stats := pipeline.Stats{
		SourcesSucceeded: c.Stats.SourcesSucceeded,
		SourcesFailed:    c.Stats.SourcesFailed,
	}
	for _, it := range c.Content {
		k := it.Key()
		if _, ok := want[k]; !ok {
			continue
		}
		want[k] = true
		kept = append(kept, it)
		if it.Kind == model.KindSocial {
			stats.RedditPosts++
		} else {
			stats.NewsArticles++
		}
	}
	stats.TotalItems = len(kept)

	var unknown []string
	for _, k := range checked {
		if !want[k] {
			unknown = append(unknown, k)
		}
	}
	rate := 0.0
	if len(c.Content) > 0 {
		rate = float64(len(kept)) / float64(len(c.Content)) * 100
	}
	return Approved{
		RunID:       c.RunID,
		Date:        c.Date,
		GeneratedAt: c.GeneratedAt,
		ReviewedAt:  now.UTC(),
		Stats:       stats,
		Summary:     c.Summary,
		Content:     kept,
		Review: Metadata{
			TotalCandidates: len(c.Content),
			ApprovedCount:   len(kept),
			ApprovalRate:    fmt.Sprintf("%.1f%%", rate),
			Unknown:         unknown,
		},
	}
}
