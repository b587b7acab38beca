// Package ranking merges social posts and news articles into one stream
// ordered by a comparable trending score.
//
// Social posts score on engagement (upvotes plus twice the comments) on a
// log scale, decayed by age. News articles start from a fixed base, decay
// faster and get a credibility boost for major outlets. Both are boosted by
// up to 50% from their relevance score.
//
// A Ranker holds no mutable state once built. Rank copies its inputs and
// never writes to caller-owned items.
package ranking

import (
	"math"
	"sort"
	"strings"
	"time"

	"pet-pulse/internal/model"
)

const (
	// NewsBaseScore is the starting trending score of every news article.
	NewsBaseScore = 5.0
	// MissingAgeHours is the age assumed for social posts without a timestamp.
	MissingAgeHours = 999.0
	// MajorSourceBoost multiplies news from allow-listed outlets.
	MajorSourceBoost = 1.3
	// DefaultTopLimit is the display limit used when Top gets no limit.
	DefaultTopLimit = 50
)

// DefaultMajorSources returns the outlets that earn MajorSourceBoost.
func DefaultMajorSources() []string {
	return []string{"CBC", "CTV", "Global News", "Toronto Star", "Globe and Mail"}
}

// Ranker computes trending scores.
type Ranker struct {
	// Now is the clock used for ages. Defaults to time.Now.
	Now          func() time.Time
	majorSources []string
}

// New returns a Ranker. An empty majorSources uses DefaultMajorSources.
func New(majorSources []string) *Ranker {
	if len(majorSources) == 0 {
		majorSources = DefaultMajorSources()
	}
	lowered := make([]string, 0, len(majorSources))
	for _, s := range majorSources {
		if s = strings.ToLower(strings.TrimSpace(s)); s != "" {
			lowered = append(lowered, s)
		}
	}
	return &Ranker{Now: time.Now, majorSources: lowered}
}

func (r *Ranker) now() time.Time {
	if r.Now == nil {
		return time.Now()
	}
	return r.Now()
}

func round3(x float64) float64 {
	return math.Round(x*1000) / 1000
}

func relevanceBoost(relevance float64) float64 {
	return 1.0 + relevance*0.5
}

func socialDecay(ageHours float64) float64 {
	switch {
	case ageHours < 6:
		return 1.0
	case ageHours < 12:
		return 0.8
	case ageHours < 24:
		return 0.5
	default:
		return 0.2
	}
}

func newsDecay(ageHours float64) float64 {
	switch {
	case ageHours < 6:
		return 1.0
	case ageHours < 12:
		return 0.7
	case ageHours < 24:
		return 0.4
	default:
		return 0.1
	}
}

// ScoreSocial scores a social post.
func (r *Ranker) ScoreSocial(it model.Item) float64 {
	engagement := float64(it.Score) + float64(it.NumComments)*2.0
	age := MissingAgeHours
	it.Kind = model.KindSocial
	if ts, ok := it.Timestamp(); ok {
		age = r.now().Sub(ts).Hours()
	}
	score := math.Log10(math.Max(engagement, 1)) * socialDecay(age) * relevanceBoost(it.RelevanceScore)
	return round3(score)
}

// ScoreNews scores a news article. Articles without a parseable
// publication time are treated as fresh.
func (r *Ranker) ScoreNews(it model.Item) float64 {
	age := 0.0
	it.Kind = model.KindNews
	if ts, ok := it.Timestamp(); ok {
		age = r.now().Sub(ts).Hours()
	}
	score := NewsBaseScore * newsDecay(age) * r.sourceBoost(it.Origin) * relevanceBoost(it.RelevanceScore)
	return round3(score)
}

func (r *Ranker) sourceBoost(origin string) float64 {
	o := strings.ToLower(origin)
	for _, s := range r.majorSources {
		if strings.Contains(o, s) {
			return MajorSourceBoost
		}
	}
	return 1.0
}

// Rank scores both streams and returns one slice sorted by trending score,
// highest first. Equal scores keep input order, which places social posts
// ahead of news articles. The result is never truncated.
func (r *Ranker) Rank(social, news []model.Item) []model.Item {
	out := make([]model.Item, 0, len(social)+len(news))
	for _, it := range social {
		it.Kind = model.KindSocial
		it.TrendingScore = r.ScoreSocial(it)
		out = append(out, it)
	}
	for _, it := range news {
		it.Kind = model.KindNews
		it.TrendingScore = r.ScoreNews(it)
		out = append(out, it)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].TrendingScore > out[j].TrendingScore
	})
	return out
}

// Top returns at most limit items from a ranked slice. A limit <= 0 uses
// DefaultTopLimit.
func Top(ranked []model.Item, limit int) []model.Item {
	if limit <= 0 {
		limit = DefaultTopLimit
	}
	if len(ranked) <= limit {
		return ranked
	}
	return ranked[:limit]
}
