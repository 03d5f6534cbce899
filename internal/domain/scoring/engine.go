package scoring

import (
	"math"

	"career-guidance/internal/domain/assessment"
	"career-guidance/internal/domain/riasec"
)

// Score turns answers into a percentage per category.
//
// Every category is normalized against the total number of answered
// questions, not the number answered in that category, so a category only
// reaches 100 when every answered question belongs to it at the top value.
func Score(questions []assessment.Question, answers assessment.AnswerMap) riasec.ScoreVector {
	out := riasec.NewScoreVector()
	if len(questions) == 0 || len(answers) == 0 {
		return out
	}

	acc := make(map[riasec.Category]int, len(riasec.Categories))
	answered := 0
	seen := make(map[string]struct{}, len(questions))
	for _, q := range questions {
		if _, dup := seen[q.ID]; dup {
			continue
		}
		seen[q.ID] = struct{}{}

		v, ok := answers[q.ID]
		if !ok || v < assessment.MinValue {
			continue
		}
		if !q.Category.Valid() {
			continue
		}
		acc[q.Category] += clampInt(v, assessment.MinValue, assessment.MaxValue)
		answered++
	}

	if answered == 0 {
		return out
	}

	denom := float64(answered * assessment.MaxValue)
	for _, c := range riasec.Categories {
		pct := int(math.Round(float64(acc[c]) / denom * 100))
		out[c] = clampInt(pct, 0, 100)
	}
	return out
}

func clampInt(v, minV, maxV int) int {
	if v < minV {
		return minV
	}
	if v > maxV {
		return maxV
	}
	return v
}
