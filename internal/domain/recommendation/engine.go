package recommendation

import (
	"sort"

	"career-guidance/internal/domain/career"
	"career-guidance/internal/domain/riasec"
)

const (
	DefaultLimit = 5
	TopCategoryN = 3
)

type Entry struct {
	CareerID   string `json:"career_id"`
	Title      string `json:"title"`
	MatchScore int    `json:"match_score"`
}

// TopCategories ranks categories by score, highest first. Equal scores keep
// the canonical RIASEC order.
func TopCategories(scores riasec.ScoreVector, k int) []riasec.Category {
	ranked := make([]riasec.Category, len(riasec.Categories))
	copy(ranked, riasec.Categories)
	sort.SliceStable(ranked, func(i, j int) bool {
		return scores.Get(ranked[i]) > scores.Get(ranked[j])
	})
	if k < 0 {
		k = 0
	}
	if k > len(ranked) {
		k = len(ranked)
	}
	return ranked[:k]
}

// Recommend ranks careers sharing at least one of the top three categories.
// Candidates are capped to limit in catalog order before scoring.
func Recommend(scores riasec.ScoreVector, careers []career.Career, limit int) []Entry {
	if limit <= 0 {
		limit = DefaultLimit
	}
	top := TopCategories(scores, TopCategoryN)

	out := make([]Entry, 0, limit)
	for _, c := range careers {
		if len(out) >= limit {
			break
		}
		if !c.HasAny(top) {
			continue
		}
		out = append(out, Entry{
			CareerID:   c.ID,
			Title:      c.Title,
			MatchScore: MatchScore(scores, c.Categories),
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].MatchScore > out[j].MatchScore
	})
	return out
}

// MatchScore sums the scores of the distinct categories on a career,
// including categories outside the top three.
func MatchScore(scores riasec.ScoreVector, cats []riasec.Category) int {
	seen := make(map[riasec.Category]struct{}, len(cats))
	total := 0
	for _, c := range cats {
		if _, ok := seen[c]; ok {
			continue
		}
		seen[c] = struct{}{}
		if v := scores.Get(c); v > 0 {
			total += v
		}
	}
	return total
}
