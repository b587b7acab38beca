package news

import (
	"context"
	"fmt"
	"html"
	"io"
	"log/slog"
	"net/http"
	"sort"
	"strings"
	"time"

	"pet-pulse/internal/model"

	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"
	"github.com/mmcdole/gofeed"
)

// Options configures a Scraper.
type Options struct {
	UserAgent  string
	Timeout    time.Duration
	Keywords   []string // an entry must mention one of these to be kept
	MaxSummary int      // in runes, including the ellipsis
	Now        func() time.Time
}

// Scraper reads RSS and Atom feeds and keeps pet-related entries.
type Scraper struct {
	client     *http.Client
	userAgent  string
	keywords   []string
	maxSummary int
	policy     *bluemonday.Policy
	now        func() time.Time
}

func NewScraper(opts Options) *Scraper {
	if opts.Timeout <= 0 {
		opts.Timeout = 15 * time.Second
	}
	if opts.MaxSummary <= 0 {
		opts.MaxSummary = 500
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	kw := make([]string, 0, len(opts.Keywords))
	for _, k := range opts.Keywords {
		if k = strings.ToLower(strings.TrimSpace(k)); k != "" {
			kw = append(kw, k)
		}
	}
	return &Scraper{
		client:     &http.Client{Timeout: opts.Timeout},
		userAgent:  opts.UserAgent,
		keywords:   kw,
		maxSummary: opts.MaxSummary,
		policy:     bluemonday.StrictPolicy(),
		now:        opts.Now,
	}
}

// FetchFeed downloads and parses one feed.
func (s *Scraper) FetchFeed(ctx context.Context, name, feedURL string) ([]model.Item, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, feedURL, nil)
	if err != nil {
		return nil, err
	}
	if s.userAgent != "" {
		req.Header.Set("User-Agent", s.userAgent)
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("news: %s status %d", name, resp.StatusCode)
	}
	return s.Parse(name, resp.Body)
}

// Parse reads a feed document and returns its pet-related entries.
func (s *Scraper) Parse(name string, r io.Reader) ([]model.Item, error) {
	feed, err := gofeed.NewParser().Parse(r)
	if err != nil {
		return nil, fmt.Errorf("news: parse %s: %w", name, err)
	}
	if len(feed.Items) == 0 {
		slog.Warn("news: feed has no entries", "source", name)
		return nil, nil
	}
	items := make([]model.Item, 0, len(feed.Items))
	for _, e := range feed.Items {
		if e == nil {
			continue
		}
		summary := e.Description
		if summary == "" {
			summary = e.Content
		}
		summary = s.CleanHTML(summary)
		title := cleanWhitespace(html.UnescapeString(e.Title))
		if !s.isPetRelated(title, summary, e.Categories) {
			continue
		}
		items = append(items, s.convert(name, e, title, summary))
	}
	return items, nil
}

func (s *Scraper) isPetRelated(title, summary string, categories []string) bool {
	text := strings.ToLower(title + " " + summary + " " + strings.Join(categories, " "))
	for _, k := range s.keywords {
		if strings.Contains(text, k) {
			return true
		}
	}
	return false
}

func (s *Scraper) convert(name string, e *gofeed.Item, title, summary string) model.Item {
	published := s.now().UTC()
	switch {
	case e.PublishedParsed != nil:
		published = e.PublishedParsed.UTC()
	case e.UpdatedParsed != nil:
		published = e.UpdatedParsed.UTC()
	}
	author := ""
	if e.Author != nil {
		author = e.Author.Name
	}
	key := e.Link
	if key == "" {
		key = e.GUID
	}
	if key == "" {
		key = name + "|" + title
	}
	return model.Item{
		Kind:      model.KindNews,
		ID:        uuid.NewSHA1(uuid.NameSpaceURL, []byte(key)).String(),
		Title:     title,
		Body:      Truncate(summary, s.maxSummary),
		Origin:    name,
		URL:       e.Link,
		Author:    author,
		Tags:      e.Categories,
		Published: published.Format(time.RFC3339),
	}
}

// CleanHTML strips all markup and collapses whitespace.
func (s *Scraper) CleanHTML(in string) string {
	if strings.TrimSpace(in) == "" {
		return ""
	}
	// keep words on either side of block tags apart
	spaced := strings.NewReplacer("<", " <", ">", "> ").Replace(in)
	return cleanWhitespace(html.UnescapeString(s.policy.Sanitize(spaced)))
}

// Truncate shortens s to max runes, ending in "..." when cut.
func Truncate(s string, max int) string {
	const suffix = "..."
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	if max <= len(suffix) {
		return string(r[:max])
	}
	return string(r[:max-len(suffix)]) + suffix
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

// FetchAll reads every feed, ordered by source name. A failing feed is
// logged and skipped.
func (s *Scraper) FetchAll(ctx context.Context, feeds map[string]string) FetchResult {
	names := make([]string, 0, len(feeds))
	for n := range feeds {
		names = append(names, n)
	}
	sort.Strings(names)

	var res FetchResult
	for _, name := range names {
		items, err := s.FetchFeed(ctx, name, feeds[name])
		if err != nil {
			slog.Error("news: fetch feed failed", "source", name, "error", err)
			res.Failed = append(res.Failed, name)
			continue
		}
		res.Items = append(res.Items, items...)
		res.Succeeded = append(res.Succeeded, name)
		slog.Info("news: fetched feed", "source", name, "articles", len(items))
	}
	slog.Info("news: fetch complete", "articles", len(res.Items), "succeeded", len(res.Succeeded), "failed", len(res.Failed))
	return res
}
