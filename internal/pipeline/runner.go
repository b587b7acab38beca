package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"pet-pulse/internal/ai"
	"pet-pulse/internal/metrics"
	"pet-pulse/internal/model"
	"pet-pulse/internal/news"
	"pet-pulse/internal/ranking"
	"pet-pulse/internal/reddit"
	"pet-pulse/internal/snapshot"
)

// SocialFetcher is implemented by *reddit.Client.
type SocialFetcher interface {
	FetchAll(ctx context.Context, subreddits []string, timeFilter string, limitPerSub int) reddit.FetchResult
}

// NewsFetcher is implemented by *news.Scraper.
type NewsFetcher interface {
	FetchAll(ctx context.Context, feeds map[string]string) news.FetchResult
}

// Publisher is implemented by *storage.RedisStore.
type Publisher interface {
	PublishRanked(ctx context.Context, day string, items []model.Item, ttl time.Duration) error
	MarkPublished(ctx context.Context, day, runID string, ttl time.Duration) error
}

// Runner wires fetchers, the Pipeline and the optional sinks into one run.
type Runner struct {
	Pipeline *Pipeline

	Social     SocialFetcher
	Subreddits []string
	TimeFilter string
	LimitPer   int

	News  NewsFetcher
	Feeds map[string]string

	DataDir string
	Digest  *ai.Digest // nil skips the summary

	Publisher  Publisher // nil skips publishing
	PublishTTL time.Duration
	PublishTop int

	Metrics      metrics.Recorder
	MetricsFlush func() error // called after every run when set
}

// Fetched holds one day's raw content.
type Fetched struct {
	Day     string // YYYYMMDD the snapshots are filed under
	Social  []model.Item
	News    []model.Item
	Sources SourceStatus
}

func (r *Runner) recorder() metrics.Recorder {
	if r.Metrics == nil {
		return metrics.Nop{}
	}
	return r.Metrics
}

// Fetch reads both sources and writes the raw snapshots. The social
// source counts as succeeded when any subreddit answered, the news source
// when any article came back.
func (r *Runner) Fetch(ctx context.Context) (Fetched, error) {
	now := r.Pipeline.now().UTC()
	day := snapshot.DayKey(now)
	out := Fetched{Day: day}
	rec := r.recorder()

	if r.Social != nil {
		res := r.Social.FetchAll(ctx, r.Subreddits, r.TimeFilter, r.LimitPer)
		for _, f := range res.Failed {
			rec.RecordFetchFailure("r/" + f)
		}
		rec.RecordFetched(model.KindSocial, len(res.Items))
		if len(res.Succeeded) > 0 {
			out.Social = res.Items
			out.Sources.Succeeded = append(out.Sources.Succeeded, SourceReddit)
			raw := snapshot.RawReddit{
				ScrapedAt:  now,
				Source:     SourceReddit,
				ItemCount:  len(res.Items),
				Subreddits: res.Succeeded,
				Failed:     res.Failed,
				Posts:      res.Items,
			}
			if err := snapshot.Write(snapshot.RedditPath(r.DataDir, day), raw); err != nil {
				return out, fmt.Errorf("save reddit snapshot: %w", err)
			}
		} else {
			out.Sources.Failed = append(out.Sources.Failed, SourceReddit)
		}
	}

	if r.News != nil {
		res := r.News.FetchAll(ctx, r.Feeds)
		for _, f := range res.Failed {
			rec.RecordFetchFailure(f)
		}
		rec.RecordFetched(model.KindNews, len(res.Items))
		if len(res.Items) > 0 {
			out.News = res.Items
			out.Sources.Succeeded = append(out.Sources.Succeeded, SourceNews)
			raw := snapshot.RawNews{
				ScrapedAt: now,
				Source:    SourceNews,
				ItemCount: len(res.Items),
				Sources:   res.Succeeded,
				Failed:    res.Failed,
				Articles:  res.Items,
			}
			if err := snapshot.Write(snapshot.NewsPath(r.DataDir, day), raw); err != nil {
				return out, fmt.Errorf("save news snapshot: %w", err)
			}
		} else {
			out.Sources.Failed = append(out.Sources.Failed, SourceNews)
		}
	}

	slog.Info("pipeline: fetch summary",
		"reddit", len(out.Social), "news", len(out.News),
		"succeeded", out.Sources.Succeeded, "failed", out.Sources.Failed,
	)
	return out, nil
}

// LoadFetched reads the raw snapshots of day. A missing snapshot marks
// that source as failed.
func LoadFetched(dataDir, day string) (Fetched, error) {
	out := Fetched{Day: day}
	var rr snapshot.RawReddit
	switch err := snapshot.Read(snapshot.RedditPath(dataDir, day), &rr); {
	case err == nil:
		out.Social = rr.Posts
		out.Sources.Succeeded = append(out.Sources.Succeeded, SourceReddit)
	case errors.Is(err, os.ErrNotExist):
		out.Sources.Failed = append(out.Sources.Failed, SourceReddit)
	default:
		return out, err
	}
	var rn snapshot.RawNews
	switch err := snapshot.Read(snapshot.NewsPath(dataDir, day), &rn); {
	case err == nil && len(rn.Articles) > 0:
		out.News = rn.Articles
		out.Sources.Succeeded = append(out.Sources.Succeeded, SourceNews)
	case err == nil, errors.Is(err, os.ErrNotExist):
		out.Sources.Failed = append(out.Sources.Failed, SourceNews)
	default:
		return out, err
	}
	return out, nil
}

// Rank processes already fetched content, then summarizes, saves and
// publishes the candidates.
func (r *Runner) Rank(ctx context.Context, f Fetched) (*Candidates, error) {
	start := time.Now()
	c, err := r.Pipeline.Process(f.Social, f.News, f.Sources)
	if err != nil {
		return nil, err
	}
	if f.Day != "" {
		c.Date = f.Day
	}
	if r.Digest != nil {
		c.Summary, c.SummaryByModel = r.Digest.Generate(ctx, c.Content)
	}
	c.Stats.DurationSeconds = time.Since(start).Seconds()

	path := snapshot.CandidatesPath(r.DataDir, c.Date)
	if err := snapshot.Write(path, c); err != nil {
		return nil, fmt.Errorf("save candidates: %w", err)
	}
	slog.Info("pipeline: candidates saved", "path", path, "items", len(c.Content), "run_id", c.RunID)

	if r.Publisher != nil {
		top := ranking.Top(c.Content, r.PublishTop)
		if err := r.Publisher.PublishRanked(ctx, c.Date, top, r.PublishTTL); err != nil {
			return c, err
		}
		if err := r.Publisher.MarkPublished(ctx, c.Date, c.RunID, r.PublishTTL); err != nil {
			return c, err
		}
		slog.Info("pipeline: ranked stream published", "day", c.Date, "items", len(top))
	}
	return c, nil
}

// Run fetches and ranks in one pass.
func (r *Runner) Run(ctx context.Context) (*Candidates, error) {
	start := time.Now()
	defer r.flushMetrics(start)
	f, err := r.Fetch(ctx)
	if err != nil {
		return nil, err
	}
	c, err := r.Rank(ctx, f)
	if err != nil {
		return c, err
	}
	slog.Info("pipeline: run complete", "duration", time.Since(start).Round(time.Millisecond), "candidates", len(c.Content))
	return c, nil
}

func (r *Runner) flushMetrics(start time.Time) {
	r.recorder().RecordRun(time.Now(), time.Since(start))
	if r.MetricsFlush == nil {
		return
	}
	if err := r.MetricsFlush(); err != nil {
		slog.Warn("pipeline: metrics flush failed", "error", err)
	}
}
