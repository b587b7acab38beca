package relevance

import (
	"math"
	"regexp"
	"strings"

	"pet-pulse/internal/model"
)

// RE2's \b only treats ASCII as word characters, so accented neighbours
// would count as boundaries. These classes cover every letter and digit.
const (
	wordStart = `(?:^|[^\p{L}\p{N}_])`
	wordEnd   = `(?:$|[^\p{L}\p{N}_])`
)

var postalCodeRe = regexp.MustCompile(`(?i)` + wordStart + `[A-Z]\d[A-Z]\s?\d[A-Z]\d` + wordEnd)

// Scorer computes relevance scores and applies the origin policy.
// It is immutable after New.
type Scorer struct {
	weights   Weights
	primary   []*regexp.Regexp
	secondary []*regexp.Regexp
	keywords  []*regexp.Regexp

	home              map[string]struct{}
	adjacent          map[string]struct{}
	adjacentThreshold float64
	defaultThreshold  float64
}

// Decision is the outcome of classifying one item.
type Decision struct {
	Score    float64
	Accepted bool
}

// Result holds every scored item and the accepted subset. Rejected items
// keep their score in Scored.
type Result struct {
	Scored   []model.Item
	Accepted []model.Item
}

// New compiles the vocabulary. A nil w uses DefaultWeights.
func New(v Vocabulary, p Policy, w *Weights) *Scorer {
	if w == nil {
		w = DefaultWeights()
	}
	secondary := make([]string, 0, len(v.SecondaryLocalities)+len(v.RegionCodes))
	secondary = append(secondary, v.SecondaryLocalities...)
	secondary = append(secondary, v.RegionCodes...)
	return &Scorer{
		weights:           *w,
		primary:           compileTerms(v.PrimaryLocalities),
		secondary:         compileTerms(secondary),
		keywords:          compileTerms(v.Keywords),
		home:              originSet(p.HomeOrigins),
		adjacent:          originSet(p.AdjacentOrigins),
		adjacentThreshold: p.AdjacentThreshold,
		defaultThreshold:  p.DefaultThreshold,
	}
}

// NewDefault returns a Scorer with the built-in vocabulary, policy and weights.
func NewDefault() *Scorer {
	return New(DefaultVocabulary(), DefaultPolicy(), nil)
}

func compileTerms(terms []string) []*regexp.Regexp {
	seen := make(map[string]struct{}, len(terms))
	out := make([]*regexp.Regexp, 0, len(terms))
	for _, t := range terms {
		t = strings.ToLower(strings.TrimSpace(t))
		if t == "" {
			continue
		}
		if _, dup := seen[t]; dup {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, regexp.MustCompile(`(?i)`+wordStart+regexp.QuoteMeta(t)+wordEnd))
	}
	return out
}

func countMatches(res []*regexp.Regexp, text string) int {
	n := 0
	for _, re := range res {
		if re.MatchString(text) {
			n++
		}
	}
	return n
}

func capped(n int, each, limit float64) float64 {
	return math.Min(float64(n)*each, limit)
}

// Score returns the relevance of text in [0, 1].
func (s *Scorer) Score(text string) float64 {
	if strings.TrimSpace(text) == "" {
		return 0
	}
	w := s.weights
	score := capped(countMatches(s.primary, text), w.PrimaryEach, w.PrimaryCap)
	score += capped(countMatches(s.secondary, text), w.SecondaryEach, w.SecondaryCap)
	score += capped(countMatches(s.keywords, text), w.KeywordEach, w.KeywordCap)
	if postalCodeRe.MatchString(text) {
		score += w.PostalCode
	}
	return math.Min(score, 1.0)
}

// Classify scores an item's title and body and compares against threshold.
func (s *Scorer) Classify(it model.Item, threshold float64) Decision {
	score := s.Score(it.Text())
	return Decision{Score: score, Accepted: score >= threshold}
}

// Filter classifies every item against one threshold.
func (s *Scorer) Filter(items []model.Item, threshold float64) Result {
	res := Result{Scored: make([]model.Item, 0, len(items))}
	for _, it := range items {
		d := s.Classify(it, threshold)
		it.RelevanceScore = d.Score
		res.Scored = append(res.Scored, it)
		if d.Accepted {
			res.Accepted = append(res.Accepted, it)
		}
	}
	return res
}

// TierOf reports which policy tier an origin belongs to.
func (s *Scorer) TierOf(origin string) Tier {
	o := NormalizeOrigin(origin)
	if _, ok := s.home[o]; ok {
		return TierHome
	}
	if _, ok := s.adjacent[o]; ok {
		return TierAdjacent
	}
	return TierDefault
}

// FilterByOrigin applies the three-tier origin policy. Home items skip
// text analysis and are accepted at HomeScore.
func (s *Scorer) FilterByOrigin(items []model.Item) Result {
	res := Result{Scored: make([]model.Item, 0, len(items))}
	for _, it := range items {
		var d Decision
		switch s.TierOf(it.Origin) {
		case TierHome:
			d = Decision{Score: HomeScore, Accepted: true}
		case TierAdjacent:
			d = s.Classify(it, s.adjacentThreshold)
		default:
			d = s.Classify(it, s.defaultThreshold)
		}
		it.RelevanceScore = d.Score
		res.Scored = append(res.Scored, it)
		if d.Accepted {
			res.Accepted = append(res.Accepted, it)
		}
	}
	return res
}
