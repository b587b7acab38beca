package relevance

import "pet-pulse/internal/model"

// Stats summarizes relevance scores across a batch.
type Stats struct {
	Total  int     `json:"total"`
	Avg    float64 `json:"avg_score"`
	Max    float64 `json:"max_score"`
	Min    float64 `json:"min_score"`
	High   int     `json:"high_relevance"`
	Medium int     `json:"medium_relevance"`
	Low    int     `json:"low_relevance"`
}

// Statistics computes Stats over items' RelevanceScore. High is >= 0.7,
// medium is [0.3, 0.7) and low is below 0.3.
func Statistics(items []model.Item) Stats {
	var st Stats
	if len(items) == 0 {
		return st
	}
	st.Total = len(items)
	st.Min = items[0].RelevanceScore
	st.Max = items[0].RelevanceScore
	sum := 0.0
	for _, it := range items {
		r := it.RelevanceScore
		sum += r
		if r < st.Min {
			st.Min = r
		}
		if r > st.Max {
			st.Max = r
		}
		switch {
		case r >= 0.7:
			st.High++
		case r >= 0.3:
			st.Medium++
		default:
			st.Low++
		}
	}
	st.Avg = sum / float64(len(items))
	return st
}
