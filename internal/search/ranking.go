package search

import (
	"sort"
	"strings"

	"career-guidance/internal/domain/career"
)

const maxRelevance = 10

// Relevance scores a career against query variants: a title hit is worth
// three points, a category name hit two and a description hit one.
func Relevance(c career.Career, variants []string) float64 {
	if len(variants) == 0 {
		return 0
	}

	title := strings.ToLower(c.Title)
	desc := strings.ToLower(c.Description)
	cats := make([]string, 0, len(c.Categories))
	for _, cat := range c.Categories {
		cats = append(cats, strings.ToLower(cat.Name()))
	}

	score := 0.0
	for _, v := range variants {
		v = strings.ToLower(strings.TrimSpace(v))
		if v == "" {
			continue
		}
		if strings.Contains(title, v) {
			score += 3
			if title == v {
				score += 2
			}
		}
		for _, name := range cats {
			if name == v {
				score += 2
			}
		}
		if strings.Contains(desc, v) {
			score++
		}
		if score >= maxRelevance {
			return maxRelevance
		}
	}
	return score
}

// Completeness counts the descriptive fields a career carries, 0..4.
func Completeness(c career.Career) float64 {
	score := 0.0
	for _, s := range []string{c.Description, c.Education, c.SalaryRange, c.Outlook} {
		if strings.TrimSpace(s) != "" {
			score++
		}
	}
	return score
}

func Score(c career.Career, variants []string) float64 {
	return Relevance(c, variants)*2 + Completeness(c)*0.5
}

// RankCareers orders careers by Score, highest first. Equal scores keep the
// input order, and the input is returned untouched when nothing matches.
func RankCareers(careers []career.Career, variants []string) []career.Career {
	if len(careers) == 0 || len(variants) == 0 {
		return careers
	}

	type scored struct {
		idx   int
		score float64
	}
	items := make([]scored, len(careers))
	anyHit := false
	for i := range careers {
		if Relevance(careers[i], variants) > 0 {
			anyHit = true
		}
		items[i] = scored{idx: i, score: Score(careers[i], variants)}
	}
	if !anyHit {
		return careers
	}

	sort.SliceStable(items, func(i, j int) bool { return items[i].score > items[j].score })

	out := make([]career.Career, 0, len(careers))
	for _, it := range items {
		out = append(out, careers[it.idx])
	}
	return out
}
