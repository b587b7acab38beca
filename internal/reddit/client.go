package reddit

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"pet-pulse/internal/model"

	"golang.org/x/time/rate"
)

// MaxLimit is the largest page the listing endpoint returns.
const MaxLimit = 100

// Options configures a Client. Zero values fall back to defaults.
type Options struct {
	BaseURL        string
	UserAgent      string
	Timeout        time.Duration
	RatePerSec     float64 // <= 0 disables pacing
	MaxAttempts    int
	InitialBackoff time.Duration
}

// Client reads public subreddit listings.
type Client struct {
	baseURL     string
	userAgent   string
	client      *http.Client
	limiter     *rate.Limiter
	maxAttempts int
	backoff     time.Duration
}

// NewClient creates a new Reddit client.
func NewClient(opts Options) *Client {
	base := strings.TrimSpace(opts.BaseURL)
	if base == "" {
		base = "https://www.reddit.com"
	}
	if opts.UserAgent == "" {
		opts.UserAgent = "pet-pulse/1.0"
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 10 * time.Second
	}
	if opts.MaxAttempts <= 0 {
		opts.MaxAttempts = 3
	}
	if opts.InitialBackoff <= 0 {
		opts.InitialBackoff = 5 * time.Second
	}
	limit := rate.Inf
	if opts.RatePerSec > 0 {
		limit = rate.Limit(opts.RatePerSec)
	}
	return &Client{
		baseURL:     strings.TrimRight(base, "/"),
		userAgent:   opts.UserAgent,
		client:      &http.Client{Timeout: opts.Timeout},
		limiter:     rate.NewLimiter(limit, 1),
		maxAttempts: opts.MaxAttempts,
		backoff:     opts.InitialBackoff,
	}
}

type listing struct {
	Data struct {
		Children []struct {
			Data post `json:"data"`
		} `json:"children"`
	} `json:"data"`
}

type post struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Selftext    string  `json:"selftext"`
	Score       int     `json:"score"`
	NumComments int     `json:"num_comments"`
	CreatedUTC  float64 `json:"created_utc"`
	URL         string  `json:"url"`
	Permalink   string  `json:"permalink"`
	Author      string  `json:"author"`
	Flair       string  `json:"link_flair_text"`
}

// statusError is returned for non-2xx responses.
type statusError struct {
	subreddit string
	code      int
}

func (e *statusError) Error() string {
	return fmt.Sprintf("reddit: r/%s status %d", e.subreddit, e.code)
}

func retryable(err error) bool {
	var se *statusError
	if errors.As(err, &se) {
		return se.code == http.StatusTooManyRequests || se.code >= 500
	}
	return !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded)
}

// Backoff returns the delay before retry number attempt (0-based),
// doubling from initial.
func Backoff(initial time.Duration, attempt int) time.Duration {
	d := initial
	for i := 0; i < attempt; i++ {
		d *= 2
	}
	return d
}

// TopPosts returns the top posts of a subreddit for timeFilter
// (hour, day, week, month, year, all). limit is capped at MaxLimit.
func (c *Client) TopPosts(ctx context.Context, subreddit, timeFilter string, limit int) ([]model.Item, error) {
	sub := strings.TrimPrefix(strings.TrimSpace(subreddit), "r/")
	if limit <= 0 || limit > MaxLimit {
		limit = MaxLimit
	}
	var lastErr error
	for attempt := 0; attempt < c.maxAttempts; attempt++ {
		if attempt > 0 {
			d := Backoff(c.backoff, attempt-1)
			slog.Warn("reddit: retrying", "subreddit", sub, "attempt", attempt+1, "delay", d, "error", lastErr)
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(d):
			}
		}
		items, err := c.topOnce(ctx, sub, timeFilter, limit)
		if err == nil {
			return items, nil
		}
		lastErr = err
		if !retryable(err) {
			break
		}
	}
	return nil, lastErr
}

func (c *Client) topOnce(ctx context.Context, sub, timeFilter string, limit int) ([]model.Item, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	q := url.Values{}
	q.Set("t", timeFilter)
	q.Set("limit", strconv.Itoa(limit))
	endpoint := fmt.Sprintf("%s/r/%s/top.json?%s", c.baseURL, url.PathEscape(sub), q.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", c.userAgent)
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &statusError{subreddit: sub, code: resp.StatusCode}
	}
	var l listing
	if err := json.NewDecoder(resp.Body).Decode(&l); err != nil {
		return nil, fmt.Errorf("reddit: decode r/%s: %w", sub, err)
	}
	items := make([]model.Item, 0, len(l.Data.Children))
	for _, ch := range l.Data.Children {
		if ch.Data.ID == "" {
			continue
		}
		items = append(items, c.convert(ch.Data, sub))
	}
	return items, nil
}

func (c *Client) convert(p post, sub string) model.Item {
	author := p.Author
	if author == "" {
		author = "[deleted]"
	}
	var tags []string
	if f := cleanWhitespace(p.Flair); f != "" {
		tags = []string{f}
	}
	return model.Item{
		Kind:        model.KindSocial,
		ID:          p.ID,
		Title:       cleanWhitespace(p.Title),
		Body:        cleanWhitespace(p.Selftext),
		Origin:      sub,
		URL:         p.URL,
		Permalink:   c.baseURL + p.Permalink,
		Author:      author,
		Tags:        tags,
		CreatedUTC:  p.CreatedUTC,
		Score:       p.Score,
		NumComments: p.NumComments,
	}
}

func cleanWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// FetchResult is the outcome of FetchAll.
type FetchResult struct {
	Items     []model.Item
	Succeeded []string
	Failed    []string
}

// FetchAll reads every subreddit in order. A failing subreddit is logged
// and skipped.
func (c *Client) FetchAll(ctx context.Context, subreddits []string, timeFilter string, limitPerSub int) FetchResult {
	var res FetchResult
	for i, sub := range subreddits {
		if ctx.Err() != nil {
			res.Failed = append(res.Failed, subreddits[i:]...)
			break
		}
		items, err := c.TopPosts(ctx, sub, timeFilter, limitPerSub)
		if err != nil {
			slog.Error("reddit: fetch subreddit failed", "subreddit", sub, "error", err)
			res.Failed = append(res.Failed, sub)
			continue
		}
		res.Items = append(res.Items, items...)
		res.Succeeded = append(res.Succeeded, sub)
		slog.Info("reddit: fetched subreddit", "subreddit", sub, "progress", fmt.Sprintf("%d/%d", i+1, len(subreddits)), "posts", len(items))
	}
	slog.Info("reddit: fetch complete", "posts", len(res.Items), "succeeded", len(res.Succeeded), "failed", len(res.Failed))
	return res
}
