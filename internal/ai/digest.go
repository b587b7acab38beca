package ai

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"pet-pulse/internal/model"
)

// DefaultDigestOrigins are the community subreddits whose posts may open
// the digest.
var DefaultDigestOrigins = []string{
	"canada", "onguardforthee",
	"toronto", "vancouver", "montreal", "calgary", "ottawa",
	"edmonton", "winnipeg", "halifax", "victoriabc", "saskatoon",
	"regina", "kingstonontario", "londonontario", "guelph",
	"barrie", "kelowna", "waterloo", "windsorontario", "hamilton",
	"kitchener", "stjohnsnl", "quebec", "britishcolumbia",
	"ontario", "alberta",
}

// Digest picks the posts worth summarizing and produces the summary text.
type Digest struct {
	Summarizer Summarizer // nil uses the fallback text
	Origins    []string
	Keywords   []string
	Language   string
	MaxItems   int // 0 keeps every selected post
}

// Select keeps social posts from the given origins whose title mentions
// one of keywords. Order is preserved.
func Select(items []model.Item, origins, keywords []string) []model.Item {
	allowed := make(map[string]struct{}, len(origins))
	for _, o := range origins {
		allowed[strings.ToLower(strings.TrimSpace(o))] = struct{}{}
	}
	var out []model.Item
	for _, it := range items {
		if it.Kind != model.KindSocial {
			continue
		}
		if _, ok := allowed[strings.ToLower(it.Origin)]; !ok {
			continue
		}
		title := strings.ToLower(it.Title)
		for _, k := range keywords {
			if k != "" && strings.Contains(title, strings.ToLower(k)) {
				out = append(out, it)
				break
			}
		}
	}
	return out
}

// Fallback builds a plain summary without a model.
func Fallback(selected []model.Item) string {
	if len(selected) == 0 {
		return "Pet owners across Canada are sharing stories today. Here is what is trending."
	}
	top := selected[0]
	titles := make([]string, 0, 3)
	for i, it := range selected {
		if i >= 3 {
			break
		}
		titles = append(titles, truncateRunes(it.Title, 60))
	}
	return fmt.Sprintf("Pet owners in r/%s and beyond are talking about %q. Top highlights: %s.",
		top.Origin, truncateRunes(top.Title, 60), strings.Join(titles, "; "))
}

// Generate returns the digest text and whether a model wrote it.
func (d *Digest) Generate(ctx context.Context, ranked []model.Item) (string, bool) {
	origins := d.Origins
	if len(origins) == 0 {
		origins = DefaultDigestOrigins
	}
	selected := Select(ranked, origins, d.Keywords)
	if d.MaxItems > 0 && len(selected) > d.MaxItems {
		selected = selected[:d.MaxItems]
	}
	if len(selected) == 0 || d.Summarizer == nil {
		slog.Info("digest: using fallback summary", "selected", len(selected), "model", d.Summarizer != nil)
		return Fallback(selected), false
	}
	text, err := d.Summarizer.SummarizeDigest(ctx, selected, d.Language)
	if err != nil || strings.TrimSpace(text) == "" {
		slog.Warn("digest: model summary failed, using fallback", "error", err)
		return Fallback(selected), false
	}
	slog.Info("digest: model summary generated", "chars", len(text), "selected", len(selected))
	return text, true
}
