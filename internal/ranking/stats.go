package ranking

import "pet-pulse/internal/model"

// Stats is a diagnostic summary of a ranked stream.
type Stats struct {
	Total     int       `json:"total_items"`
	Social    int       `json:"reddit_items"`
	News      int       `json:"news_items"`
	Avg       float64   `json:"avg_score"`
	Max       float64   `json:"max_score"`
	Min       float64   `json:"min_score"`
	TopScores []float64 `json:"top_5_scores"`
}

// Statistics summarizes trending scores. TopScores holds the first five
// scores in the order given.
func Statistics(ranked []model.Item) Stats {
	st := Stats{TopScores: []float64{}}
	if len(ranked) == 0 {
		return st
	}
	st.Total = len(ranked)
	st.Min = ranked[0].TrendingScore
	st.Max = ranked[0].TrendingScore
	sum := 0.0
	for i, it := range ranked {
		s := it.TrendingScore
		sum += s
		if s < st.Min {
			st.Min = s
		}
		if s > st.Max {
			st.Max = s
		}
		switch it.Kind {
		case model.KindSocial:
			st.Social++
		case model.KindNews:
			st.News++
		}
		if i < 5 {
			st.TopScores = append(st.TopScores, s)
		}
	}
	st.Avg = sum / float64(len(ranked))
	return st
}
