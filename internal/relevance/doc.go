// Package relevance scores free text for Canadian regional relevance and
// decides which items are kept for ranking.
//
// A score is the sum of four capped categories:
//   - primary localities (cities), 0.3 per distinct match, capped at 0.5
//   - secondary localities (provinces and their two-letter codes), 0.2 per
//     distinct match, capped at 0.3
//   - domain keywords, 0.15 per distinct match, capped at 0.3
//   - a postal code anywhere in the text, a flat 0.2
//
// The total is clamped to 1.0. Every term is matched case-insensitively on
// word boundaries, so "on" counts in "Ottawa, ON" but not in "pontoon".
//
// Scoring is pure. Classify and the filters return decisions and copies
// instead of writing into caller-owned items, so one Scorer may be shared
// across goroutines. Callers that mutate their own item slices while a
// filter reads them must synchronize on their side.
package relevance
