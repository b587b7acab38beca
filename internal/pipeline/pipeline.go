// Package pipeline turns fetched posts and articles into the ranked
// candidate stream: quality gates, relevance filtering, ranking and the
// candidates snapshot.
package pipeline

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"pet-pulse/internal/metrics"
	"pet-pulse/internal/model"
	"pet-pulse/internal/ranking"
	"pet-pulse/internal/relevance"
	"pet-pulse/internal/snapshot"

	"github.com/google/uuid"
)

var (
	ErrTooFewSources = errors.New("pipeline: too few sources succeeded")
	ErrTooFewItems   = errors.New("pipeline: too few relevant items")
)

// Source names used in SourceStatus.
const (
	SourceReddit = "reddit"
	SourceNews   = "news"
)

// SourceStatus records which fetch collaborators delivered data.
type SourceStatus struct {
	Succeeded []string
	Failed    []string
}

// Options are the run thresholds.
type Options struct {
	NewsThreshold float64
	MinTotalItems int
	MinSources    int
}

// Stats is the run summary stored with the candidates.
type Stats struct {
	RedditPosts      int      `json:"reddit_posts"`
	NewsArticles     int      `json:"news_articles"`
	TotalItems       int      `json:"total_items"`
	SourcesSucceeded []string `json:"sources_succeeded"`
	SourcesFailed    []string `json:"sources_failed"`
	DurationSeconds  float64  `json:"duration_seconds,omitempty"`
}

// Candidates is the ranked stream handed to reviewers and renderers.
type Candidates struct {
	RunID           string          `json:"run_id"`
	Date            string          `json:"date"`
	GeneratedAt     time.Time       `json:"generated_at"`
	Stats           Stats           `json:"stats"`
	RedditRelevance relevance.Stats `json:"reddit_relevance"`
	NewsRelevance   relevance.Stats `json:"news_relevance"`
	Ranking         ranking.Stats   `json:"ranking"`
	Summary         string          `json:"summary,omitempty"`
	SummaryByModel  bool            `json:"summary_by_model,omitempty"`
	Content         []model.Item    `json:"content"`
}

// Pipeline filters and ranks one run's content.
type Pipeline struct {
	Scorer  *relevance.Scorer
	Ranker  *ranking.Ranker
	Metrics metrics.Recorder
	Opts    Options
	Now     func() time.Time
}

func (p *Pipeline) now() time.Time {
	if p.Now == nil {
		return time.Now()
	}
	return p.Now()
}

func (p *Pipeline) recorder() metrics.Recorder {
	if p.Metrics == nil {
		return metrics.Nop{}
	}
	return p.Metrics
}

// Process gates, filters and ranks. Social posts go through the origin
// policy and news through NewsThreshold.
func (p *Pipeline) Process(social, news []model.Item, sources SourceStatus) (*Candidates, error) {
	if len(sources.Succeeded) < p.Opts.MinSources {
		slog.Error("pipeline: too few sources", "succeeded", sources.Succeeded, "failed", sources.Failed)
		return nil, fmt.Errorf("%w: %d of %d required", ErrTooFewSources, len(sources.Succeeded), p.Opts.MinSources)
	}

	socialRes := p.Scorer.FilterByOrigin(social)
	newsRes := p.Scorer.Filter(news, p.Opts.NewsThreshold)
	rec := p.recorder()
	rec.RecordAccepted(model.KindSocial, len(socialRes.Accepted))
	rec.RecordAccepted(model.KindNews, len(newsRes.Accepted))
	slog.Info("pipeline: relevance filter",
		"reddit_in", len(social), "reddit_kept", len(socialRes.Accepted),
		"news_in", len(news), "news_kept", len(newsRes.Accepted),
		"news_threshold", p.Opts.NewsThreshold,
	)

	total := len(socialRes.Accepted) + len(newsRes.Accepted)
	if total < p.Opts.MinTotalItems || total == 0 {
		return nil, fmt.Errorf("%w: %d of %d required", ErrTooFewItems, total, p.Opts.MinTotalItems)
	}

	ranked := p.Ranker.Rank(socialRes.Accepted, newsRes.Accepted)
	rec.ObserveRanked(ranked)
	rankStats := ranking.Statistics(ranked)
	slog.Info("pipeline: ranked", "items", len(ranked), "top", rankStats.Max, "bottom", rankStats.Min)
	for i, it := range ranking.Top(ranked, 5) {
		slog.Debug("pipeline: top item", "pos", i+1, "kind", it.Kind, "title", it.Title, "trending", it.TrendingScore, "relevance", it.RelevanceScore)
	}

	now := p.now().UTC()
	return &Candidates{
		RunID:       uuid.NewString(),
		Date:        snapshot.DayKey(now),
		GeneratedAt: now,
		Stats: Stats{
			RedditPosts:      len(socialRes.Accepted),
			NewsArticles:     len(newsRes.Accepted),
			TotalItems:       len(ranked),
			SourcesSucceeded: sources.Succeeded,
			SourcesFailed:    sources.Failed,
		},
		RedditRelevance: relevance.Statistics(socialRes.Scored),
		NewsRelevance:   relevance.Statistics(newsRes.Scored),
		Ranking:         rankStats,
		Content:         ranked,
	}, nil
}
