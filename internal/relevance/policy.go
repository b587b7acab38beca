package relevance

import "strings"

// HomeScore is the relevance assigned to items from home origins.
const HomeScore = 1.0

// Weights are the per-match contributions and caps of each category.
type Weights struct {
	PrimaryEach   float64
	PrimaryCap    float64
	SecondaryEach float64
	SecondaryCap  float64
	KeywordEach   float64
	KeywordCap    float64
	PostalCode    float64
}

// DefaultWeights returns the standard category weights.
func DefaultWeights() *Weights {
	return &Weights{
		PrimaryEach:   0.3,
		PrimaryCap:    0.5,
		SecondaryEach: 0.2,
		SecondaryCap:  0.3,
		KeywordEach:   0.15,
		KeywordCap:    0.3,
		PostalCode:    0.2,
	}
}

// Policy is the three-tier origin acceptance policy. Home origins are
// always accepted at HomeScore, adjacent origins use AdjacentThreshold and
// every other origin uses DefaultThreshold.
type Policy struct {
	HomeOrigins       []string
	AdjacentOrigins   []string
	AdjacentThreshold float64
	DefaultThreshold  float64
}

// DefaultPolicy returns the built-in subreddit tiers.
func DefaultPolicy() Policy {
	return Policy{
		HomeOrigins: []string{
			"canada", "toronto", "vancouver", "montreal", "calgary",
			"ottawa", "edmonton", "winnipeg", "onguardforthee",
			"britishcolumbia", "ontario", "quebec", "alberta",
		},
		AdjacentOrigins: []string{
			"dogs", "puppy101", "dogtraining", "cats", "catadvice",
			"pets", "aww",
		},
		AdjacentThreshold: 0.15,
		DefaultThreshold:  0.3,
	}
}

// Tier names an origin's policy bucket.
type Tier int

const (
	TierDefault Tier = iota
	TierAdjacent
	TierHome
)

func (t Tier) String() string {
	switch t {
	case TierHome:
		return "home"
	case TierAdjacent:
		return "adjacent"
	default:
		return "default"
	}
}

// NormalizeOrigin lowercases an origin and strips an "r/" prefix.
func NormalizeOrigin(origin string) string {
	o := strings.ToLower(strings.TrimSpace(origin))
	o = strings.TrimPrefix(o, "/")
	o = strings.TrimPrefix(o, "r/")
	return o
}

func originSet(origins []string) map[string]struct{} {
	m := make(map[string]struct{}, len(origins))
	for _, o := range origins {
		if n := NormalizeOrigin(o); n != "" {
			m[n] = struct{}{}
		}
	}
	return m
}
