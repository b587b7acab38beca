package cmd

import (
	"fmt"
	"log/slog"
	"time"

	"pet-pulse/internal/ai"
	"pet-pulse/internal/config"
	"pet-pulse/internal/metrics"
	"pet-pulse/internal/news"
	"pet-pulse/internal/pipeline"
	"pet-pulse/internal/ranking"
	"pet-pulse/internal/reddit"
	"pet-pulse/internal/redisclient"
	"pet-pulse/internal/relevance"
	"pet-pulse/internal/storage"

	"github.com/prometheus/client_golang/prometheus"
)

// runnerOptions selects the optional stages of a run.
type runnerOptions struct {
	summary bool
	publish bool
}

func newScorer(cfg config.Config) (*relevance.Scorer, error) {
	vocab, err := relevance.LoadVocabulary(cfg.Relevance.VocabularyFile)
	if err != nil {
		return nil, err
	}
	policy := relevance.DefaultPolicy()
	if len(cfg.Relevance.HomeOrigins) > 0 {
		policy.HomeOrigins = cfg.Relevance.HomeOrigins
	}
	if len(cfg.Relevance.AdjacentOrigins) > 0 {
		policy.AdjacentOrigins = cfg.Relevance.AdjacentOrigins
	}
	policy.AdjacentThreshold = cfg.Relevance.AdjacentThreshold
	policy.DefaultThreshold = cfg.Relevance.DefaultThreshold
	return relevance.New(vocab, policy, nil), nil
}

func parseDuration(name, s string) (time.Duration, error) {
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", name, s, err)
	}
	return d, nil
}

// buildRunner assembles a pipeline.Runner from cfg. The returned close
// func releases the Redis connection when publishing is enabled.
func buildRunner(cfg config.Config, opts runnerOptions) (*pipeline.Runner, func(), error) {
	scorer, err := newScorer(cfg)
	if err != nil {
		return nil, nil, err
	}
	redditTimeout, err := parseDuration("sources.reddit.timeout", cfg.Sources.Reddit.Timeout)
	if err != nil {
		return nil, nil, err
	}
	newsTimeout, err := parseDuration("sources.news.timeout", cfg.Sources.News.Timeout)
	if err != nil {
		return nil, nil, err
	}

	reg := prometheus.NewRegistry()
	collector := metrics.NewCollector(reg)

	p := &pipeline.Pipeline{
		Scorer:  scorer,
		Ranker:  ranking.New(cfg.Ranking.MajorSources),
		Metrics: collector,
		Opts: pipeline.Options{
			NewsThreshold: cfg.Pipeline.NewsThreshold,
			MinTotalItems: cfg.Pipeline.MinTotalItems,
			MinSources:    cfg.Pipeline.MinSources,
		},
	}

	r := &pipeline.Runner{
		Pipeline: p,
		Social: reddit.NewClient(reddit.Options{
			BaseURL:    cfg.Sources.Reddit.BaseURL,
			UserAgent:  cfg.Sources.Reddit.UserAgent,
			Timeout:    redditTimeout,
			RatePerSec: cfg.Sources.Reddit.RatePerSec,
		}),
		Subreddits: cfg.Sources.Reddit.Subreddits,
		TimeFilter: cfg.Sources.Reddit.TimeFilter,
		LimitPer:   cfg.Sources.Reddit.LimitPerSub,
		News: news.NewScraper(news.Options{
			UserAgent:  cfg.Sources.Reddit.UserAgent,
			Timeout:    newsTimeout,
			Keywords:   cfg.Sources.News.PetKeywords,
			MaxSummary: cfg.Sources.News.MaxSummary,
		}),
		Feeds:      cfg.Sources.News.Feeds,
		DataDir:    cfg.Pipeline.DataDir,
		PublishTop: cfg.Redis.TopN,
		Metrics:    collector,
	}
	if path := cfg.Pipeline.MetricsFile; path != "" {
		r.MetricsFlush = func() error { return metrics.WriteTextfile(path, reg) }
	}

	if opts.summary {
		d := &ai.Digest{
			Origins:  cfg.Summary.Origins,
			Keywords: cfg.Summary.PetKeywords,
			Language: cfg.OpenAI.Language,
			MaxItems: cfg.Summary.MaxItems,
		}
		if cfg.OpenAI.APIKey != "" {
			client, err := ai.NewOpenAI(ai.Config{APIKey: cfg.OpenAI.APIKey, Model: cfg.OpenAI.Model, BaseURL: cfg.OpenAI.BaseURL})
			if err != nil {
				return nil, nil, err
			}
			d.Summarizer = client
		} else {
			slog.Info("openai: no api key, digest uses the fallback text")
		}
		r.Digest = d
	}

	closeFn := func() {}
	if opts.publish {
		ttl, err := parseDuration("redis.ttl", cfg.Redis.TTL)
		if err != nil {
			return nil, nil, err
		}
		rdb := redisclient.New(cfg.Redis)
		r.Publisher = storage.NewRedisStore(rdb, cfg.Redis.KeyScope)
		r.PublishTTL = ttl
		closeFn = func() { _ = rdb.Close() }
	}
	return r, closeFn, nil
}
